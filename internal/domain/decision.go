package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Action string

const (
	ActionNew    Action = "NEW"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionNone   Action = "NONE"
)

func ValidAction(a string) bool {
	switch Action(a) {
	case ActionNew, ActionUpdate, ActionDelete, ActionNone:
		return true
	}
	return false
}

var (
	ErrUnknownAction  = errors.New("unknown decision action")
	ErrMissingTarget  = errors.New("decision requires a valid target_id")
	ErrMissingContent = errors.New("decision requires content")
)

// Decision is the classified memory action derived from one LLM call.
// It is ephemeral: produced per message, consumed immediately, never persisted.
type Decision struct {
	Action   Action    `json:"action"`
	Content  string    `json:"content,omitempty"`
	TargetID uuid.UUID `json:"target_id,omitempty"`
}

// NewDecision validates the raw fields extracted from an LLM reply.
// UPDATE and DELETE must carry a parseable target id; NEW and UPDATE must
// carry content. Anything malformed is rejected so the caller can discard it.
func NewDecision(action, content, targetID string) (Decision, error) {
	a := Action(strings.ToUpper(strings.TrimSpace(action)))
	if !ValidAction(string(a)) {
		return Decision{}, ErrUnknownAction
	}

	d := Decision{Action: a, Content: strings.TrimSpace(content)}

	switch a {
	case ActionNew:
		if d.Content == "" {
			return Decision{}, ErrMissingContent
		}
	case ActionUpdate, ActionDelete:
		id, err := uuid.Parse(strings.TrimSpace(targetID))
		if err != nil || id == uuid.Nil {
			return Decision{}, ErrMissingTarget
		}
		d.TargetID = id
		if a == ActionUpdate && d.Content == "" {
			return Decision{}, ErrMissingContent
		}
	}

	return d, nil
}

// Mutates reports whether applying the decision would touch the host store.
func (d Decision) Mutates() bool {
	return d.Action == ActionNew || d.Action == ActionUpdate || d.Action == ActionDelete
}
