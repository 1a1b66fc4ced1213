package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Memory is a persisted fact extracted from conversation. Memories are owned
// and persisted entirely by the host platform; the sidecar reads and writes
// them through the host API and never caches or indexes them locally.
type Memory struct {
	ID        uuid.UUID `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemoryStore is the host platform's memory storage API. Every operation is a
// direct passthrough; failures surface as *StorageError and are never retried.
type MemoryStore interface {
	Add(ctx context.Context, owner, content string) (*Memory, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*Memory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the owner's memories newest-first.
	List(ctx context.Context, owner string) ([]Memory, error)
}

// LLMClient sends one prompt to the configured completion endpoint and
// returns the raw reply text.
type LLMClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
