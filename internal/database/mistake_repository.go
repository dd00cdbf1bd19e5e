package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eugendimant/vivalingo/internal/spaced_repetition"
	"github.com/eugendimant/vivalingo/pkg/models"
)

// MistakeRepository handles database operations for logged learner errors
type MistakeRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewMistakeRepository creates a new repository instance
func NewMistakeRepository(db *sqlx.DB) *MistakeRepository {
	return &MistakeRepository{db: db, now: time.Now}
}

// Log stores a newly detected mistake. Unlike vocab and grammar there is no
// natural key: the same error made twice is logged twice, and the review
// queue surfaces whichever copy is due.
func (r *MistakeRepository) Log(ctx context.Context, m *models.Mistake) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO mistakes
			(profile_id, user_text, corrected_text, error_type, error_tag, pattern, explanation, examples, confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	res, err := r.db.ExecContext(ctx, query,
		m.ProfileID,
		m.UserText,
		m.CorrectedText,
		m.ErrorType,
		m.ErrorTag,
		m.Pattern,
		m.Explanation,
		m.Examples,
		m.Confidence,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to log mistake: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		// postgres doesn't report LastInsertId; the id only matters for sqlite
		return 0, nil
	}
	return id, nil
}

// GetByID returns one mistake, or nil if it doesn't exist
func (r *MistakeRepository) GetByID(ctx context.Context, profileID, id int64) (*models.Mistake, error) {
	var m models.Mistake
	query := r.db.Rebind(`SELECT * FROM mistakes WHERE profile_id = ? AND id = ?`)
	err := r.db.GetContext(ctx, &m, query, profileID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mistake: %w", err)
	}
	return &m, nil
}

// List returns logged mistakes for a profile, newest first
func (r *MistakeRepository) List(ctx context.Context, profileID int64, errorType string, limit int) ([]models.Mistake, error) {
	query := `SELECT * FROM mistakes WHERE profile_id = ?`
	args := []interface{}{profileID}
	if errorType != "" {
		query += ` AND error_type = ?`
		args = append(args, errorType)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	var out []models.Mistake
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list mistakes: %w", err)
	}
	return out, nil
}

// GetDue returns up to limit mistakes due for review
func (r *MistakeRepository) GetDue(ctx context.Context, profileID int64, limit int) ([]models.Mistake, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT * FROM mistakes
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
		ORDER BY next_review ASC NULLS FIRST, ease_factor ASC
		LIMIT ?
	`)
	var out []models.Mistake
	if err := r.db.SelectContext(ctx, &out, query, profileID, today, limit); err != nil {
		return nil, fmt.Errorf("failed to get due mistakes: %w", err)
	}
	return out, nil
}

// CountDue returns how many mistakes are currently due
func (r *MistakeRepository) CountDue(ctx context.Context, profileID int64) (int, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM mistakes
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
	`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID, today); err != nil {
		return 0, fmt.Errorf("failed to count due mistakes: %w", err)
	}
	return count, nil
}

// RecordReview applies one review outcome. An unknown id is a silent no-op.
func (r *MistakeRepository) RecordReview(ctx context.Context, profileID, id int64, quality int) (*models.ReviewUpdate, error) {
	m, err := r.GetByID(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	newEase, newInterval := spaced_repetition.Grade(quality, m.EaseFactor, m.IntervalDays)
	today := r.now().Format("2006-01-02")
	nextReview := spaced_repetition.NextDue(r.now(), newInterval)

	query := r.db.Rebind(`
		UPDATE mistakes SET
			review_count = review_count + 1,
			last_reviewed = ?,
			next_review = ?,
			ease_factor = ?,
			interval_days = ?
		WHERE profile_id = ? AND id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, today, nextReview, newEase, newInterval, profileID, id); err != nil {
		return nil, fmt.Errorf("failed to update mistake review: %w", err)
	}

	return &models.ReviewUpdate{
		Quality:     quality,
		NewEase:     newEase,
		NewInterval: newInterval,
		NextReview:  nextReview,
	}, nil
}

// StatsByType aggregates mistakes by error type, most frequent first
func (r *MistakeRepository) StatsByType(ctx context.Context, profileID int64) ([]models.MistakeTypeStats, error) {
	query := r.db.Rebind(`
		SELECT error_type, COUNT(*) AS count, AVG(ease_factor) AS avg_ease
		FROM mistakes
		WHERE profile_id = ?
		GROUP BY error_type
		ORDER BY count DESC
	`)
	var stats []models.MistakeTypeStats
	if err := r.db.SelectContext(ctx, &stats, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to get mistake stats: %w", err)
	}
	return stats, nil
}

// Delete removes a logged mistake
func (r *MistakeRepository) Delete(ctx context.Context, profileID, id int64) error {
	query := r.db.Rebind(`DELETE FROM mistakes WHERE profile_id = ? AND id = ?`)
	if _, err := r.db.ExecContext(ctx, query, profileID, id); err != nil {
		return fmt.Errorf("failed to delete mistake: %w", err)
	}
	return nil
}
