package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lucasbecker/upload-ai/errors"
	"github.com/lucasbecker/upload-ai/models"
)

const (
	saveVideoQuery = `
        INSERT INTO videos (id, path, transcription, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            path = excluded.path,
            transcription = excluded.transcription,
            updated_at = excluded.updated_at
    `

	findVideoQuery = `
        SELECT id, path, transcription, created_at, updated_at
        FROM videos WHERE id = ?
    `
)

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Save upserts the record. Re-saving after transcription overwrites the
// prior value: last write wins, no versioning.
func (r *VideoRepository) Save(ctx context.Context, video *models.Video) error {
	const op = "VideoRepository.Save"

	for i := 0; i < 3; i++ {
		err := r.save(ctx, video)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return errors.Internal(op, err, "failed to save video")
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return errors.Internal(op, nil, "failed to save video after retries")
}

func (r *VideoRepository) save(ctx context.Context, video *models.Video) error {
	var transcription sql.NullString
	if video.Transcription != "" {
		transcription = sql.NullString{String: video.Transcription, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, saveVideoQuery,
		video.ID,
		video.Path,
		transcription,
		video.CreatedAt,
		video.UpdatedAt,
	)
	return err
}

func (r *VideoRepository) Find(ctx context.Context, id string) (*models.Video, error) {
	const op = "VideoRepository.Find"

	video := &models.Video{}
	var transcription sql.NullString

	err := r.db.QueryRowContext(ctx, findVideoQuery, id).Scan(
		&video.ID,
		&video.Path,
		&transcription,
		&video.CreatedAt,
		&video.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "video not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "failed to query video")
	}

	video.Transcription = transcription.String
	return video, nil
}

func isLockError(err error) bool {
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "busy")
}
