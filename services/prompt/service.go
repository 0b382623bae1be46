package prompt

import (
	"context"
	"strings"

	"github.com/lucasbecker/upload-ai/models"
	"github.com/lucasbecker/upload-ai/repository"
)

// Placeholder is the literal substitution token inside a template.
const Placeholder = "{transcription}"

type Service interface {
	// List returns the template catalog in its stable order. Templates are
	// returned verbatim, placeholder included; substitution is the caller's
	// responsibility.
	List(ctx context.Context) ([]models.Prompt, error)

	// Get returns one template by id.
	Get(ctx context.Context, id string) (*models.Prompt, error)
}

// Fill replaces every literal Placeholder occurrence with the
// transcription. Templates without the token are returned unchanged.
func Fill(template, transcription string) string {
	return strings.ReplaceAll(template, Placeholder, transcription)
}

type service struct {
	repo repository.PromptRepository
}

func NewService(repo repository.PromptRepository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]models.Prompt, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*models.Prompt, error) {
	return s.repo.Find(ctx, id)
}
