package sqlite

import (
	"context"
	"database/sql"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/models"
)

const (
	listPromptsQuery = `SELECT id, title, template FROM prompts ORDER BY title`
	findPromptQuery  = `SELECT id, title, template FROM prompts WHERE id = ?`
)

// PromptRepository is read-only: templates are seeded at startup and have no
// mutation path.
type PromptRepository struct {
	db *sql.DB
}

func NewPromptRepository(db *sql.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) List(ctx context.Context) ([]models.Prompt, error) {
	const op = "PromptRepository.List"

	rows, err := r.db.QueryContext(ctx, listPromptsQuery)
	if err != nil {
		return nil, errors.Internal(op, err, "failed to query prompts")
	}
	defer rows.Close()

	prompts := make([]models.Prompt, 0)
	for rows.Next() {
		var p models.Prompt
		if err := rows.Scan(&p.ID, &p.Title, &p.Template); err != nil {
			return nil, errors.Internal(op, err, "failed to scan prompt")
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "failed to iterate prompts")
	}

	return prompts, nil
}

func (r *PromptRepository) Find(ctx context.Context, id string) (*models.Prompt, error) {
	const op = "PromptRepository.Find"

	p := &models.Prompt{}
	err := r.db.QueryRowContext(ctx, findPromptQuery, id).Scan(&p.ID, &p.Title, &p.Template)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "prompt not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "failed to query prompt")
	}

	return p, nil
}
