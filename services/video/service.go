package video

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/pemistahl/lingua-go"
	"github.com/sirupsen/logrus"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/models"
	"github.com/lucasbecker/upload-ai/repository"
	"github.com/lucasbecker/upload-ai/speech"
	"github.com/lucasbecker/upload-ai/storage"
	"github.com/lucasbecker/upload-ai/textutil"
	"github.com/lucasbecker/upload-ai/validation"
)

type service struct {
	repo      repository.VideoRepository
	store     storage.Store
	stt       speech.Backend
	validator *validation.Validator
	config    Config
	logger    *logrus.Logger
	detector  lingua.LanguageDetector
}

func NewService(
	repo repository.VideoRepository,
	store storage.Store,
	stt speech.Backend,
	validator *validation.Validator,
	config Config,
) Service {
	if config.ArtifactPrefix == "" {
		config.ArtifactPrefix = "audio"
	}
	return &service{
		repo:      repo,
		store:     store,
		stt:       stt,
		validator: validator,
		config:    config,
		logger:    logrus.StandardLogger(),
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Portuguese, lingua.Spanish).
			Build(),
	}
}

func (s *service) Upload(ctx context.Context, filename string, audio io.Reader) (*models.Video, error) {
	const op = "VideoService.Upload"

	id := uuid.New().String()
	key := path.Join(s.config.ArtifactPrefix, id+path.Ext(filename))

	location, err := s.store.Save(ctx, key, audio)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	video := &models.Video{
		ID:        id,
		Path:      location,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Save(ctx, video); err != nil {
		// The artifact is unreachable without a record; don't orphan it.
		if rmErr := s.store.Remove(ctx, location); rmErr != nil {
			s.logger.WithError(rmErr).WithField("location", location).
				Warn("Failed to remove orphaned artifact")
		}
		return nil, errors.Internal(op, err, "failed to save video record")
	}

	s.logger.WithFields(logrus.Fields{
		"video_id": video.ID,
		"filename": filename,
	}).Info("Audio artifact stored")

	return video, nil
}

func (s *service) Transcribe(ctx context.Context, id, hint string) (string, error) {
	const op = "VideoService.Transcribe"
	logger := s.logger.WithField("video_id", id)

	if err := s.validator.ValidateVideoID(id); err != nil {
		return "", err
	}

	video, err := s.repo.Find(ctx, id)
	if err != nil {
		return "", err
	}

	artifact, err := s.store.Open(ctx, video.Path)
	if err != nil {
		return "", err
	}
	defer artifact.Close()

	text, err := s.stt.Transcribe(ctx, artifact, path.Base(video.Path), hint)
	if err != nil {
		logger.WithError(err).Error("Transcription failed")
		return "", err
	}

	// Last write wins; no versioning of prior transcriptions.
	video.Transcription = text
	video.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, video); err != nil {
		return "", errors.Internal(op, err, "failed to persist transcription")
	}

	fields := logrus.Fields{
		"transcription_length": len(text),
		"excerpt":              textutil.Excerpt(text, 1),
	}
	if lang, ok := s.detector.DetectLanguageOf(text); ok {
		fields["language"] = lang.String()
	}
	logger.WithFields(fields).Info("Transcription persisted")

	return text, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Video, error) {
	if err := s.validator.ValidateVideoID(id); err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, id)
}
