package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lucasbecker/upload-ai/models"
	"github.com/lucasbecker/upload-ai/services/completion"
	"github.com/lucasbecker/upload-ai/validation"
)

type CompletionHandler struct {
	service   completion.Service
	validator *validation.Validator
	logger    *logrus.Logger
}

func NewCompletionHandler(service completion.Service, validator *validation.Validator) *CompletionHandler {
	return &CompletionHandler{
		service:   service,
		validator: validator,
		logger:    logrus.StandardLogger(),
	}
}

// HandleCreate handles POST /ai/completion. Tokens are written to the
// response as they arrive from the backend; a mid-stream failure leaves the
// body visibly truncated, since the status line is already out.
func (h *CompletionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "CompletionHandler.HandleCreate"

	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: 1024 * 1024, // 1MB
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      true,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	var req models.CompletionRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	flusher, _ := w.(http.Flusher)
	wrote := false

	onChunk := func(chunk string) error {
		if !wrote {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("X-Accel-Buffering", "no")
			w.WriteHeader(http.StatusOK)
			wrote = true
		}
		if _, err := w.Write([]byte(chunk)); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	if err := h.service.Generate(r.Context(), req, onChunk); err != nil {
		if !wrote {
			respondError(w, r, err)
			return
		}
		h.logger.WithError(err).Warn("Completion stream truncated")
		// Ending the chunked body here would look like a complete stream.
		// Killing the connection makes the truncation an error on the wire.
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, hjErr := hj.Hijack(); hjErr == nil {
				conn.Close()
			}
		}
		return
	}

	if !wrote {
		// Backend produced no tokens; still a successful empty stream.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
	}
}
