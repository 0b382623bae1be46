package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lucasbecker/upload-ai/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS videos (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL,
    transcription TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS prompts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    template TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_prompts_title ON prompts(title);
`

// seedPrompts are the two built-in generation templates. INSERT OR IGNORE
// keeps restarts idempotent.
var seedPrompts = []struct {
	id, title, template string
}{
	{
		id:    "2292f646-54ac-4dab-a2ea-552e70a23fd3",
		title: "YouTube title",
		template: "Generate a short, catchy YouTube title for the video below.\n\n" +
			"'''\n{transcription}\n'''",
	},
	{
		id:    "51213aab-65b2-4d57-819c-0e9467a8b0dd",
		title: "YouTube description",
		template: "Generate a concise YouTube description for the video below, " +
			"written in the first person and highlighting the main topics.\n\n" +
			"'''\n{transcription}\n'''",
	},
}

func InitDB(dbPath string) (*sql.DB, error) {
	const op = "sqlite.InitDB"

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Internal(op, err, "failed to create database directory")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Internal(op, err, "failed to open database")
	}

	if err := configurePragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := execStatements(db, schema); err != nil {
		db.Close()
		return nil, err
	}

	if err := seedDB(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func seedDB(db *sql.DB) error {
	const op = "sqlite.seedDB"

	tx, err := db.Begin()
	if err != nil {
		return errors.Internal(op, err, "failed to begin seed transaction")
	}
	defer tx.Rollback()

	for _, p := range seedPrompts {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO prompts (id, title, template) VALUES (?, ?, ?)",
			p.id, p.title, p.template,
		); err != nil {
			return errors.Internal(op, err, "failed to seed prompt "+p.title)
		}
	}

	return tx.Commit()
}

func configurePragmas(db *sql.DB) error {
	const op = "sqlite.configurePragmas"

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errors.Internal(op, err, fmt.Sprintf("failed to set pragma: %s", pragma))
		}
	}

	return nil
}

func execStatements(db *sql.DB, script string) error {
	const op = "sqlite.execStatements"

	tx, err := db.Begin()
	if err != nil {
		return errors.Internal(op, err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return errors.Internal(op, err, fmt.Sprintf("failed to execute statement: %s", stmt))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Internal(op, err, "failed to commit transaction")
	}

	return nil
}
