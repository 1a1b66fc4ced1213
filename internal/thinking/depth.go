package thinking

import (
	"context"
	"fmt"
	"strings"

	"github.com/calebmh/mnemo/internal/domain"
	"go.uber.org/zap"
)

// Depth controls how much structured reasoning the model is asked to show
// before answering.
type Depth string

const (
	DepthAuto          Depth = "auto"
	DepthQuick         Depth = "quick"
	DepthBalanced      Depth = "balanced"
	DepthComprehensive Depth = "comprehensive"
)

func ValidDepth(d string) bool {
	switch Depth(d) {
	case DepthAuto, DepthQuick, DepthBalanced, DepthComprehensive:
		return true
	}
	return false
}

// Once a system prompt grows past this, it is assumed to be a deliberate
// custom prompt and the thinking protocol would conflict with it.
const customPromptThreshold = 500

const baseProtocol = `Before responding, think through the request inside a code block with a "thinking" header. Your thinking must be %s.

While thinking:
- rephrase the request in your own words and map out what is known and unknown
- consider multiple interpretations and approaches before committing to one
- question your own assumptions and check conclusions against the evidence
- keep the thinking connected to the original request

The thinking block is hidden from the user; the response that follows it must stand on its own, answer the request fully, and use clear, precise language.`

const quickAddendum = `

Focus on the key points and keep the analysis concise; prioritize speed.`

const depthSelectionPrompt = `Analyze the conversation context and determine the appropriate thinking depth needed.
Return only one word: "quick", "balanced", or "comprehensive" based on these criteria:

quick: simple questions, clarifications, basic information requests, time-sensitive queries
balanced: multi-step problems, moderate complexity, several factors to consider
comprehensive: complex reasoning, critical decisions, deep analysis, many interdependent factors, high-stakes situations`

// Protocol returns the thinking-protocol system prompt for a resolved depth.
func Protocol(d Depth) string {
	switch d {
	case DepthQuick:
		return fmt.Sprintf(baseProtocol, "brief but structured") + quickAddendum
	case DepthComprehensive:
		return fmt.Sprintf(baseProtocol, "extensively comprehensive and extremely thorough")
	default:
		return fmt.Sprintf(baseProtocol, "well-balanced and appropriately thorough")
	}
}

// Options are the selector's valves.
type Options struct {
	Depth        Depth
	ShowThinking bool
}

// Selector rewrites a conversation's system prompt to carry the thinking
// protocol at the configured (or auto-detected) depth.
type Selector struct {
	llm    domain.LLMClient
	opts   Options
	logger *zap.Logger
}

func NewSelector(llm domain.LLMClient, opts Options, logger *zap.Logger) *Selector {
	if !ValidDepth(string(opts.Depth)) {
		opts.Depth = DepthAuto
	}
	return &Selector{llm: llm, opts: opts, logger: logger}
}

// DetermineDepth asks the model to pick a depth from the last few messages.
// Invalid or failed replies fall back to balanced.
func (s *Selector) DetermineDepth(ctx context.Context, messages []domain.Message) Depth {
	recent := messages
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	var sb strings.Builder
	for _, m := range recent {
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}

	reply, err := s.llm.Complete(ctx, depthSelectionPrompt, "Context:\n"+sb.String())
	if err != nil {
		s.logger.Warn("depth detection failed, defaulting to balanced", zap.Error(err))
		return DepthBalanced
	}

	depth := Depth(strings.ToLower(strings.TrimSpace(reply)))
	switch depth {
	case DepthQuick, DepthBalanced, DepthComprehensive:
		return depth
	}
	return DepthBalanced
}

// Apply rewrites the message list so the leading system message carries the
// thinking protocol for the resolved depth. A short existing system message
// is mixed with the protocol; a long one is assumed custom and left alone.
// notify may be nil.
func (s *Selector) Apply(ctx context.Context, messages []domain.Message, notify domain.Notifier) ([]domain.Message, Depth) {
	depth := s.opts.Depth
	if depth == DepthAuto {
		depth = s.DetermineDepth(ctx, messages)
	}
	if notify != nil && s.opts.ShowThinking {
		notify.Notify(domain.StatusEvent(fmt.Sprintf("Thinking depth: %s", depth), true))
	}

	system, rest := popSystemMessage(messages)

	var content string
	switch {
	case system == nil:
		content = Protocol(depth)
	case len(system.Content) < customPromptThreshold:
		content = mixSystemMessages(Protocol(depth), system.Content)
	default:
		content = system.Content
	}

	out := make([]domain.Message, 0, len(rest)+1)
	out = append(out, domain.Message{Role: "system", Content: content})
	out = append(out, rest...)
	return out, depth
}

func popSystemMessage(messages []domain.Message) (*domain.Message, []domain.Message) {
	for i, m := range messages {
		if m.Role == "system" {
			sys := m
			rest := make([]domain.Message, 0, len(messages)-1)
			rest = append(rest, messages[:i]...)
			rest = append(rest, messages[i+1:]...)
			return &sys, rest
		}
	}
	return nil, messages
}

func mixSystemMessages(a, b string) string {
	return fmt.Sprintf("You need to comply with the following two constitutions:\n%s\n\n%s", a, b)
}
