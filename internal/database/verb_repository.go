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

// VerbRepository handles database operations for conjugation drills
type VerbRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewVerbRepository creates a new repository instance
func NewVerbRepository(db *sqlx.DB) *VerbRepository {
	return &VerbRepository{db: db, now: time.Now}
}

// Upsert inserts a conjugation or updates its payload fields, leaving any
// existing scheduling state untouched.
func (r *VerbRepository) Upsert(ctx context.Context, v *models.VerbConjugation) error {
	query := r.db.Rebind(`
		INSERT INTO verb_conjugations
			(profile_id, infinitive, meaning, tense, person, form, irregular)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, infinitive, tense, person) DO UPDATE SET
			meaning = excluded.meaning,
			form = excluded.form,
			irregular = excluded.irregular
	`)
	_, err := r.db.ExecContext(ctx, query,
		v.ProfileID,
		v.Infinitive,
		v.Meaning,
		v.Tense,
		v.Person,
		v.Form,
		v.Irregular,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert verb conjugation: %w", err)
	}
	return nil
}

// GetByID returns one conjugation, or nil if it doesn't exist
func (r *VerbRepository) GetByID(ctx context.Context, profileID, id int64) (*models.VerbConjugation, error) {
	var v models.VerbConjugation
	query := r.db.Rebind(`SELECT * FROM verb_conjugations WHERE profile_id = ? AND id = ?`)
	err := r.db.GetContext(ctx, &v, query, profileID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verb conjugation: %w", err)
	}
	return &v, nil
}

// List returns conjugations for a profile, optionally filtered by
// infinitive, grouped by verb then tense.
func (r *VerbRepository) List(ctx context.Context, profileID int64, infinitive string) ([]models.VerbConjugation, error) {
	query := `SELECT * FROM verb_conjugations WHERE profile_id = ?`
	args := []interface{}{profileID}
	if infinitive != "" {
		query += ` AND infinitive = ?`
		args = append(args, infinitive)
	}
	query += ` ORDER BY infinitive ASC, tense ASC, person ASC`

	var out []models.VerbConjugation
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list verb conjugations: %w", err)
	}
	return out, nil
}

// GetDue returns up to limit conjugations due for review. NULLS FIRST keeps
// never-scheduled forms ahead on both sqlite and postgres.
func (r *VerbRepository) GetDue(ctx context.Context, profileID int64, limit int) ([]models.VerbConjugation, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT * FROM verb_conjugations
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
		ORDER BY next_review ASC NULLS FIRST, ease_factor ASC
		LIMIT ?
	`)
	var out []models.VerbConjugation
	if err := r.db.SelectContext(ctx, &out, query, profileID, today, limit); err != nil {
		return nil, fmt.Errorf("failed to get due verb conjugations: %w", err)
	}
	return out, nil
}

// CountDue returns how many conjugations are currently due
func (r *VerbRepository) CountDue(ctx context.Context, profileID int64) (int, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM verb_conjugations
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
	`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID, today); err != nil {
		return 0, fmt.Errorf("failed to count due verb conjugations: %w", err)
	}
	return count, nil
}

// RecordReview applies one review outcome to the conjugation's scheduling
// state. An unknown id is a silent no-op, like the other stores.
func (r *VerbRepository) RecordReview(ctx context.Context, profileID, id int64, quality int) (*models.ReviewUpdate, error) {
	v, err := r.GetByID(ctx, profileID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}

	newEase, newInterval := spaced_repetition.Grade(quality, v.EaseFactor, v.IntervalDays)
	today := r.now().Format("2006-01-02")
	nextReview := spaced_repetition.NextDue(r.now(), newInterval)

	status := "learning"
	if quality >= 4 && newInterval > 21 {
		status = "mastered"
	}

	query := r.db.Rebind(`
		UPDATE verb_conjugations SET
			exposure_count = exposure_count + 1,
			last_reviewed = ?,
			next_review = ?,
			ease_factor = ?,
			interval_days = ?,
			status = ?
		WHERE profile_id = ? AND id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, today, nextReview, newEase, newInterval, status, profileID, id); err != nil {
		return nil, fmt.Errorf("failed to update verb review: %w", err)
	}

	return &models.ReviewUpdate{
		Quality:     quality,
		NewEase:     newEase,
		NewInterval: newInterval,
		NextReview:  nextReview,
	}, nil
}
