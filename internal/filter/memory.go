package filter

import (
	"context"
	"strings"

	"github.com/calebmh/mnemo/internal/decision"
	"github.com/calebmh/mnemo/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stage identifies where in the per-message flow processing stopped.
type Stage string

const (
	StagePrompting   Stage = "prompting"
	StageAwaitingLLM Stage = "awaiting_llm"
	StageParsing     Stage = "parsing"
	StageApplying    Stage = "applying"
	StageDone        Stage = "done"
)

// Options are the filter's valves, loaded once at plugin activation.
type Options struct {
	Enabled            bool
	ShowStatus         bool
	MaxRelatedMemories int
	DedupThreshold     float64
}

// MemoryFilter runs the per-message memory decision flow: build a prompt
// from the message and the owner's existing memories, ask the model for one
// NEW/UPDATE/DELETE/NONE decision, and apply it through the host store.
// Stateless across messages; every failure is fail-open.
type MemoryFilter struct {
	store  domain.MemoryStore
	llm    domain.LLMClient
	opts   Options
	logger *zap.Logger
}

func NewMemoryFilter(store domain.MemoryStore, llm domain.LLMClient, opts Options, logger *zap.Logger) *MemoryFilter {
	if opts.MaxRelatedMemories <= 0 {
		opts.MaxRelatedMemories = 5
	}
	return &MemoryFilter{store: store, llm: llm, opts: opts, logger: logger}
}

// Outcome records how far a message got and what, if anything, changed.
// Err is recorded for the caller but never escalated: the conversation
// continues regardless.
type Outcome struct {
	Stage    Stage           `json:"stage"`
	Decision domain.Decision `json:"decision"`
	Applied  bool            `json:"applied"`
	Memory   *domain.Memory  `json:"memory,omitempty"`
	Err      error           `json:"-"`
}

// ProcessMessage classifies one incoming message and applies the resulting
// decision. At most one LLM call and at most one store mutation per message,
// sequentially; the mutation only happens after a decision has been parsed.
// notify may be nil.
func (f *MemoryFilter) ProcessMessage(ctx context.Context, owner, text string, notify domain.Notifier) Outcome {
	out := Outcome{Stage: StageDone, Decision: domain.Decision{Action: domain.ActionNone}}

	if !f.opts.Enabled || owner == "" || strings.TrimSpace(text) == "" {
		return out
	}

	// Prompting: bound the related-memory context by recency.
	existing, err := f.store.List(ctx, owner)
	if err != nil {
		return f.fail(out, StagePrompting, err, "Memory lookup failed", notify)
	}
	if len(existing) > f.opts.MaxRelatedMemories {
		existing = existing[:f.opts.MaxRelatedMemories]
	}
	system, user := decision.BuildPrompt(text, existing, f.opts.DedupThreshold)

	raw, err := f.llm.Complete(ctx, system, user)
	if err != nil {
		return f.fail(out, StageAwaitingLLM, err, "Memory processing unavailable", notify)
	}

	d, err := decision.Parse(raw)
	if err != nil {
		// Malformed replies are a silent no-op, not an error surfaced to
		// the conversation.
		f.logger.Debug("discarding unparseable decision", zap.Error(err), zap.String("raw", raw))
		return out
	}

	// Discard UPDATE/DELETE decisions aimed at memories the model was never
	// shown: the target may belong to another owner or not exist at all.
	if d.TargetID != uuid.Nil && !containsID(existing, d.TargetID) {
		f.logger.Debug("discarding decision with unknown target",
			zap.String("action", string(d.Action)),
			zap.String("target_id", d.TargetID.String()))
		return out
	}

	out.Decision = d
	if !d.Mutates() {
		return out
	}

	f.notifyStatus(notify, "Processing memories...", false)

	mem, err := f.apply(ctx, owner, d)
	if err != nil {
		return f.fail(out, StageApplying, err, "Memory update failed", notify)
	}

	out.Applied = true
	out.Memory = mem
	f.notifyStatus(notify, appliedStatus(d.Action), true)
	return out
}

func (f *MemoryFilter) apply(ctx context.Context, owner string, d domain.Decision) (*domain.Memory, error) {
	switch d.Action {
	case domain.ActionNew:
		return f.store.Add(ctx, owner, d.Content)
	case domain.ActionUpdate:
		return f.store.Update(ctx, d.TargetID, d.Content)
	case domain.ActionDelete:
		return nil, f.store.Delete(ctx, d.TargetID)
	}
	return nil, nil
}

// fail records the error and the stage it occurred at, emits a single status
// notification, and returns. No retries, no rollback.
func (f *MemoryFilter) fail(out Outcome, stage Stage, err error, status string, notify domain.Notifier) Outcome {
	f.logger.Warn("memory filter stage failed", zap.String("stage", string(stage)), zap.Error(err))
	f.notifyStatus(notify, status, true)
	out.Stage = stage
	out.Err = err
	out.Applied = false
	return out
}

func (f *MemoryFilter) notifyStatus(notify domain.Notifier, description string, done bool) {
	if notify == nil || !f.opts.ShowStatus {
		return
	}
	notify.Notify(domain.StatusEvent(description, done))
}

func appliedStatus(a domain.Action) string {
	switch a {
	case domain.ActionUpdate:
		return "Memory updated"
	case domain.ActionDelete:
		return "Memory removed"
	default:
		return "Memory saved"
	}
}

func containsID(memories []domain.Memory, id uuid.UUID) bool {
	for _, m := range memories {
		if m.ID == id {
			return true
		}
	}
	return false
}
