package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lucasbecker/upload-ai/services/prompt"
)

type PromptHandler struct {
	service prompt.Service
	logger  *logrus.Logger
}

func NewPromptHandler(service prompt.Service) *PromptHandler {
	return &PromptHandler{
		service: service,
		logger:  logrus.StandardLogger(),
	}
}

// HandleList handles GET /prompts. The response is the bare ordered array
// of templates, placeholders included verbatim.
func (h *PromptHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.service.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list prompts")
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, prompts)
}

// HandleGet handles GET /prompts/{promptId}.
func (h *PromptHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), r.PathValue("promptId"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}
