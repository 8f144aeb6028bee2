package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-parser/internal/entity"
)

// ResumeRepository persists parsed resumes. Rows are insert-only; this
// system never updates or deletes them.
type ResumeRepository interface {
	Insert(ctx context.Context, r *entity.Resume) error
	ListResumes(ctx context.Context, from, to *time.Time) ([]*entity.Resume, error)
}

type resumeRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewResumeRepository(db *DB, logger *slog.Logger) ResumeRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &resumeRepository{db: db, logger: logger}
}

func (r *resumeRepository) Insert(ctx context.Context, row *entity.Resume) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.ParsedAt.IsZero() {
		row.ParsedAt = time.Now().UTC()
	}

	skills, err := marshalList(row.Skills)
	if err != nil {
		return err
	}
	experience, err := marshalList(row.Experience)
	if err != nil {
		return err
	}
	education, err := marshalList(row.Education)
	if err != nil {
		return err
	}

	const q = `INSERT INTO resumes
		(id, file_id, name, email, phone, skills, experience, education, parsed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, q,
		row.ID.String(), row.FileID, row.Name, row.Email, row.Phone,
		skills, experience, education, row.ParsedAt,
	); err != nil {
		r.logger.Error("failed to insert resume", "file_id", row.FileID, "error", err)
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) ListResumes(ctx context.Context, from, to *time.Time) ([]*entity.Resume, error) {
	q := `SELECT id, file_id, name, email, phone, skills, experience, education, parsed_at
		FROM resumes`
	var args []any
	switch {
	case from != nil && to != nil:
		q += ` WHERE parsed_at >= $1 AND parsed_at <= $2`
		args = append(args, *from, *to)
	case from != nil:
		q += ` WHERE parsed_at >= $1`
		args = append(args, *from)
	case to != nil:
		q += ` WHERE parsed_at <= $1`
		args = append(args, *to)
	}
	q += ` ORDER BY parsed_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to list resumes", "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []*entity.Resume
	for rows.Next() {
		var (
			row                           entity.Resume
			id                            string
			skills, experience, education string
		)
		if err := rows.Scan(&id, &row.FileID, &row.Name, &row.Email, &row.Phone,
			&skills, &experience, &education, &row.ParsedAt); err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		if row.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse resume id %q: %w", id, err)
		}
		if row.Skills, err = unmarshalList(skills); err != nil {
			return nil, err
		}
		if row.Experience, err = unmarshalList(experience); err != nil {
			return nil, err
		}
		if row.Education, err = unmarshalList(education); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}

// Multi-value fields are stored as JSON text columns so they round-trip
// unchanged through either dialect.
func marshalList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal list: %w", err)
	}
	return string(b), nil
}

func unmarshalList(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}
