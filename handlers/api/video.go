package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/models"
	"github.com/lucasbecker/upload-ai/services/video"
	"github.com/lucasbecker/upload-ai/validation"
)

type VideoHandler struct {
	service   video.Service
	validator *validation.Validator
	logger    *logrus.Logger
}

func NewVideoHandler(service video.Service, validator *validation.Validator) *VideoHandler {
	return &VideoHandler{
		service:   service,
		validator: validator,
		logger:    logrus.StandardLogger(),
	}
}

// HandleUpload handles POST /videos: a single multipart body with field
// "file" carrying the audio artifact.
func (h *VideoHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "VideoHandler.HandleUpload"
	logger := h.logger.WithField("path", r.URL.Path)

	r.Body = http.MaxBytesReader(w, r.Body, h.validator.MaxUploadSize())

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errors.InvalidInput(op, err, "multipart field 'file' is required"))
		return
	}
	defer file.Close()

	v, err := h.service.Upload(r.Context(), header.Filename, file)
	if err != nil {
		logger.WithError(err).Error("Failed to store upload")
		respondError(w, r, err)
		return
	}

	logger.WithFields(logrus.Fields{
		"video_id": v.ID,
		"size":     header.Size,
	}).Info("Video uploaded")

	respondJSON(w, http.StatusCreated, models.UploadResponse{ID: v.ID})
}

// HandleCreateTranscription handles POST /videos/{videoId}/transcription.
func (h *VideoHandler) HandleCreateTranscription(w http.ResponseWriter, r *http.Request) {
	const op = "VideoHandler.HandleCreateTranscription"

	if err := h.validator.ValidateRequest(r, validation.RequestValidationOpts{
		MaxContentLength: 1024 * 1024, // 1MB
		AllowedMethods:   []string{http.MethodPost},
		RequireJSON:      true,
	}); err != nil {
		respondError(w, r, err)
		return
	}

	videoID := r.PathValue("videoId")
	if err := h.validator.ValidateVideoID(videoID); err != nil {
		respondError(w, r, err)
		return
	}

	var req models.TranscriptionRequest
	if err := readJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	text, err := h.service.Transcribe(r.Context(), videoID, req.Prompt)
	if err != nil {
		h.logger.WithError(err).WithField("video_id", videoID).Error("Failed to transcribe")
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, models.TranscriptionResponse{Transcription: text})
}
