package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/calebmh/mnemo/internal/tools"
)

type PlantUMLHandler struct {
	plantuml *tools.PlantUML
}

func NewPlantUMLHandler(p *tools.PlantUML) *PlantUMLHandler {
	return &PlantUMLHandler{plantuml: p}
}

type plantumlRequest struct {
	Diagram string `json:"diagram"`
}

type plantumlResponse struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// Render encodes PlantUML source into a rendered-diagram URL.
func (h *PlantUMLHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req plantumlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Diagram) == "" {
		writeError(w, http.StatusBadRequest, "diagram is required")
		return
	}

	url, err := h.plantuml.DiagramURL(req.Diagram)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode diagram")
		return
	}

	writeJSON(w, http.StatusOK, plantumlResponse{
		URL:      url,
		Markdown: h.plantuml.Markdown(url),
	})
}
