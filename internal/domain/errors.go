package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable marks network or timeout failures reaching the
	// LLM provider.
	ErrProviderUnavailable = errors.New("llm provider unavailable")
	// ErrProviderRejected marks non-2xx responses and in-band API errors from
	// the LLM provider.
	ErrProviderRejected = errors.New("llm provider rejected request")
	// ErrParseFailure marks an LLM reply that contains no well-formed
	// decision object.
	ErrParseFailure = errors.New("no valid decision in llm reply")
)

// StorageError wraps a failure from the host memory storage API.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("host store %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
