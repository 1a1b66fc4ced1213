package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/calebmh/mnemo/internal/artifact"
	"github.com/calebmh/mnemo/internal/domain"
)

type ArtifactHandler struct{}

func NewArtifactHandler() *ArtifactHandler {
	return &ArtifactHandler{}
}

type artifactResponse struct {
	Rendered bool               `json:"rendered"`
	Artifact *artifact.Artifact `json:"artifact,omitempty"`
	Events   []domain.Event     `json:"events"`
}

// Outlet scans the latest assistant reply for html/css/js code fences
// and, when found, returns the assembled document as an artifact event.
func (h *ArtifactHandler) Outlet(w http.ResponseWriter, r *http.Request) {
	var req hookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply := latestAssistantMessage(req.Messages)

	events := &domain.EventBuffer{}
	art, ok := artifact.Extract(reply)
	if ok {
		events.Notify(domain.ArtifactEvent(art.Title, art.HTML))
	}

	resp := artifactResponse{Rendered: ok, Events: events.Events()}
	if ok {
		resp.Artifact = art
	}

	writeJSON(w, http.StatusOK, resp)
}

func latestAssistantMessage(messages []domain.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "assistant" {
			return messages[i].Content
		}
	}
	return ""
}
