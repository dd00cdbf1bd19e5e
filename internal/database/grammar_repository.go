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

// GrammarRepository handles database operations for grammar microdrills
type GrammarRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewGrammarRepository creates a new repository instance
func NewGrammarRepository(db *sqlx.DB) *GrammarRepository {
	return &GrammarRepository{db: db, now: time.Now}
}

// Upsert inserts a drill or refreshes its content, preserving scheduling
// state for drills already in rotation.
func (r *GrammarRepository) Upsert(ctx context.Context, p *models.GrammarPattern) error {
	query := r.db.Rebind(`
		INSERT INTO grammar_patterns
			(profile_id, pattern_name, category, prompt, options, answer, explanation, examples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, pattern_name) DO UPDATE SET
			category = excluded.category,
			prompt = excluded.prompt,
			options = excluded.options,
			answer = excluded.answer,
			explanation = excluded.explanation,
			examples = excluded.examples
	`)
	_, err := r.db.ExecContext(ctx, query,
		p.ProfileID,
		p.PatternName,
		p.Category,
		p.Prompt,
		p.Options,
		p.Answer,
		p.Explanation,
		p.Examples,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert grammar pattern: %w", err)
	}
	return nil
}

// GetByName returns one drill, or nil if it doesn't exist
func (r *GrammarRepository) GetByName(ctx context.Context, profileID int64, patternName string) (*models.GrammarPattern, error) {
	var p models.GrammarPattern
	query := r.db.Rebind(`SELECT * FROM grammar_patterns WHERE profile_id = ? AND pattern_name = ?`)
	err := r.db.GetContext(ctx, &p, query, profileID, patternName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grammar pattern: %w", err)
	}
	return &p, nil
}

// List returns all drills for a profile, optionally filtered by category
func (r *GrammarRepository) List(ctx context.Context, profileID int64, category string) ([]models.GrammarPattern, error) {
	query := `SELECT * FROM grammar_patterns WHERE profile_id = ?`
	args := []interface{}{profileID}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY pattern_name ASC`

	var patterns []models.GrammarPattern
	if err := r.db.SelectContext(ctx, &patterns, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list grammar patterns: %w", err)
	}
	return patterns, nil
}

// GetDue returns up to limit drills due for review, hardest first within a day
func (r *GrammarRepository) GetDue(ctx context.Context, profileID int64, limit int) ([]models.GrammarPattern, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT * FROM grammar_patterns
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
		ORDER BY next_review ASC NULLS FIRST, ease_factor ASC
		LIMIT ?
	`)
	var patterns []models.GrammarPattern
	if err := r.db.SelectContext(ctx, &patterns, query, profileID, today, limit); err != nil {
		return nil, fmt.Errorf("failed to get due grammar patterns: %w", err)
	}
	return patterns, nil
}

// CountDue returns how many drills are currently due
func (r *GrammarRepository) CountDue(ctx context.Context, profileID int64) (int, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM grammar_patterns
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
	`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID, today); err != nil {
		return 0, fmt.Errorf("failed to count due grammar patterns: %w", err)
	}
	return count, nil
}

// RecordReview applies one review outcome. An unknown pattern name is a
// silent no-op.
func (r *GrammarRepository) RecordReview(ctx context.Context, profileID int64, patternName string, quality int) (*models.ReviewUpdate, error) {
	p, err := r.GetByName(ctx, profileID, patternName)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	newEase, newInterval := spaced_repetition.Grade(quality, p.EaseFactor, p.IntervalDays)
	today := r.now().Format("2006-01-02")
	nextReview := spaced_repetition.NextDue(r.now(), newInterval)

	status := "learning"
	if quality >= 4 && newInterval > 21 {
		status = "mastered"
	}

	query := r.db.Rebind(`
		UPDATE grammar_patterns SET
			exposure_count = exposure_count + 1,
			last_reviewed = ?,
			next_review = ?,
			ease_factor = ?,
			interval_days = ?,
			status = ?
		WHERE profile_id = ? AND pattern_name = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, today, nextReview, newEase, newInterval, status, profileID, patternName); err != nil {
		return nil, fmt.Errorf("failed to update grammar review: %w", err)
	}

	return &models.ReviewUpdate{
		Quality:     quality,
		NewEase:     newEase,
		NewInterval: newInterval,
		NextReview:  nextReview,
	}, nil
}

// WeakestCategories returns categories ordered by average ease, weakest
// first, considering only drills that have actually been reviewed.
func (r *GrammarRepository) WeakestCategories(ctx context.Context, profileID int64, limit int) ([]string, error) {
	query := r.db.Rebind(`
		SELECT category FROM grammar_patterns
		WHERE profile_id = ? AND exposure_count > 0
		GROUP BY category
		ORDER BY AVG(ease_factor) ASC
		LIMIT ?
	`)
	var categories []string
	if err := r.db.SelectContext(ctx, &categories, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("failed to get weakest categories: %w", err)
	}
	return categories, nil
}
