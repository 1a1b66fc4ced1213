package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/calebmh/mnemo/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrDisabled   = errors.New("save action is disabled")
	ErrNoExchange = errors.New("need a user/assistant exchange to save")
)

// Options are the action's valves.
type Options struct {
	Enabled    bool
	ShowStatus bool
}

// SaveAction is the "add to memory" button: it stores the latest
// user/assistant exchange as a single memory through the host store.
type SaveAction struct {
	store  domain.MemoryStore
	opts   Options
	logger *zap.Logger
}

func NewSaveAction(store domain.MemoryStore, opts Options, logger *zap.Logger) *SaveAction {
	return &SaveAction{store: store, opts: opts, logger: logger}
}

// Save expects messages to end with the assistant's reply to the user's
// message. Storage failure is reported as an error citation event and
// returned; the conversation itself is unaffected.
func (a *SaveAction) Save(ctx context.Context, owner string, messages []domain.Message, notify domain.Notifier) (*domain.Memory, error) {
	if !a.opts.Enabled {
		return nil, ErrDisabled
	}
	if len(messages) < 2 {
		return nil, ErrNoExchange
	}

	userMsg := messages[len(messages)-2]
	assistantMsg := messages[len(messages)-1]

	a.notifyStatus(notify, "Adding to Memories", false)

	content := fmt.Sprintf("User: %s\nAssistant: %s", userMsg.Content, assistantMsg.Content)
	mem, err := a.store.Add(ctx, owner, content)
	if err != nil {
		a.logger.Warn("failed to save memory", zap.Error(err))
		a.notifyStatus(notify, "Error Adding Memory", true)
		if notify != nil {
			notify.Notify(domain.ErrorCitationEvent("Add to Memory", err))
		}
		return nil, err
	}

	a.notifyStatus(notify, "Memory Saved", true)
	return mem, nil
}

func (a *SaveAction) notifyStatus(notify domain.Notifier, description string, done bool) {
	if notify == nil || !a.opts.ShowStatus {
		return
	}
	notify.Notify(domain.StatusEvent(description, done))
}
