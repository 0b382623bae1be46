package completion

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/generation"
	"github.com/lucasbecker/upload-ai/models"
	"github.com/lucasbecker/upload-ai/validation"
)

// Service orchestrates streamed completions. The videoId on the request is
// informational only: no server-side placeholder substitution happens here,
// a leftover "{transcription}" token goes to the backend literally.
type Service interface {
	Generate(ctx context.Context, req models.CompletionRequest, onChunk func(string) error) error
}

type service struct {
	streamer  generation.Streamer
	validator *validation.Validator
	logger    *logrus.Logger
}

func NewService(streamer generation.Streamer, validator *validation.Validator) Service {
	return &service{
		streamer:  streamer,
		validator: validator,
		logger:    logrus.StandardLogger(),
	}
}

func (s *service) Generate(ctx context.Context, req models.CompletionRequest, onChunk func(string) error) error {
	const op = "CompletionService.Generate"

	if err := s.validate(req); err != nil {
		return err
	}

	logger := s.logger.WithFields(logrus.Fields{
		"prompt_length": len(req.Prompt),
		"temperature":   req.Temperature,
	})
	if req.VideoID != "" {
		logger = logger.WithField("video_id", req.VideoID)
	}
	logger.Info("Starting completion stream")

	err := s.streamer.Stream(ctx, generation.Request{
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
	}, onChunk)
	if err != nil {
		logger.WithError(err).Error("Completion stream failed")
		return err
	}

	logger.Info("Completion stream finished")
	return nil
}

func (s *service) validate(req models.CompletionRequest) error {
	const op = "CompletionService.validate"

	if req.Prompt == "" {
		return errors.InvalidInput(op, nil, "prompt is required")
	}
	if err := s.validator.ValidateTemperature(req.Temperature); err != nil {
		return err
	}
	if req.VideoID != "" {
		if err := s.validator.ValidateVideoID(req.VideoID); err != nil {
			return err
		}
	}
	return nil
}
