package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/calebmh/mnemo/internal/domain"
	"github.com/calebmh/mnemo/internal/filter"
)

type MemoryFilterHandler struct {
	filter *filter.MemoryFilter
}

func NewMemoryFilterHandler(f *filter.MemoryFilter) *MemoryFilterHandler {
	return &MemoryFilterHandler{filter: f}
}

type hookRequest struct {
	UserID   string           `json:"user_id"`
	Messages []domain.Message `json:"messages"`
}

type filterOutcomeResponse struct {
	Stage   filter.Stage   `json:"stage"`
	Action  domain.Action  `json:"action"`
	Applied bool           `json:"applied"`
	Memory  *domain.Memory `json:"memory,omitempty"`
	Error   string         `json:"error,omitempty"`
	Events  []domain.Event `json:"events"`
}

// Inlet is the pre-completion hook. Memory extraction happens on the
// outlet, so this just validates and echoes the message list back to
// the host unchanged.
func (h *MemoryFilterHandler) Inlet(w http.ResponseWriter, r *http.Request) {
	var req hookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, hookRequest{})
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// Outlet runs memory extraction against the latest user message in the
// conversation. Processing failures are reported in the outcome body,
// never as an HTTP error: the host must always get its reply through.
func (h *MemoryFilterHandler) Outlet(w http.ResponseWriter, r *http.Request) {
	var req hookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	text := latestUserMessage(req.Messages)

	events := &domain.EventBuffer{}
	outcome := h.filter.ProcessMessage(r.Context(), req.UserID, text, events)

	resp := filterOutcomeResponse{
		Stage:   outcome.Stage,
		Action:  outcome.Decision.Action,
		Applied: outcome.Applied,
		Memory:  outcome.Memory,
		Events:  events.Events(),
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

func latestUserMessage(messages []domain.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return strings.TrimSpace(messages[i].Content)
		}
	}
	return ""
}
