package repository

import (
	"context"

	"github.com/lucasbecker/upload-ai/models"
)

type VideoRepository interface {
	Save(ctx context.Context, video *models.Video) error
	Find(ctx context.Context, id string) (*models.Video, error)
}

type PromptRepository interface {
	List(ctx context.Context) ([]models.Prompt, error)
	Find(ctx context.Context, id string) (*models.Prompt, error)
}
