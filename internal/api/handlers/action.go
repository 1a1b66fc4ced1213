package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calebmh/mnemo/internal/action"
	"github.com/calebmh/mnemo/internal/domain"
)

type SaveActionHandler struct {
	action *action.SaveAction
}

func NewSaveActionHandler(a *action.SaveAction) *SaveActionHandler {
	return &SaveActionHandler{action: a}
}

type saveActionResponse struct {
	Memory *domain.Memory `json:"memory,omitempty"`
	Error  string         `json:"error,omitempty"`
	Events []domain.Event `json:"events"`
}

// Save stores the most recent user/assistant exchange as a memory. The
// user triggers this explicitly, so validation failures come back as
// HTTP errors rather than fail-open outcomes.
func (h *SaveActionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req hookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	events := &domain.EventBuffer{}
	memory, err := h.action.Save(r.Context(), req.UserID, req.Messages, events)

	resp := saveActionResponse{Memory: memory, Events: events.Events()}
	if err != nil {
		resp.Error = err.Error()
		switch {
		case errors.Is(err, action.ErrDisabled):
			writeJSON(w, http.StatusOK, resp)
		case errors.Is(err, action.ErrNoExchange):
			writeJSON(w, http.StatusBadRequest, resp)
		default:
			writeJSON(w, http.StatusBadGateway, resp)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
