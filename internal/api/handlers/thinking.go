package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/calebmh/mnemo/internal/domain"
	"github.com/calebmh/mnemo/internal/thinking"
)

type ThinkingHandler struct {
	selector *thinking.Selector
}

func NewThinkingHandler(s *thinking.Selector) *ThinkingHandler {
	return &ThinkingHandler{selector: s}
}

type thinkingResponse struct {
	Depth    thinking.Depth   `json:"depth"`
	Messages []domain.Message `json:"messages"`
	Events   []domain.Event   `json:"events"`
}

// Apply injects the thinking protocol into the conversation's system
// message and reports which depth was selected.
func (h *ThinkingHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req hookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages are required")
		return
	}

	events := &domain.EventBuffer{}
	messages, depth := h.selector.Apply(r.Context(), req.Messages, events)

	writeJSON(w, http.StatusOK, thinkingResponse{
		Depth:    depth,
		Messages: messages,
		Events:   events.Events(),
	})
}
