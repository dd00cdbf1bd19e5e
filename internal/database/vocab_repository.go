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

// VocabRepository handles database operations for vocabulary items
type VocabRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewVocabRepository creates a new repository instance
func NewVocabRepository(db *sqlx.DB) *VocabRepository {
	return &VocabRepository{db: db, now: time.Now}
}

// Upsert inserts a vocabulary item or updates its payload fields, leaving
// any existing scheduling state untouched.
func (r *VocabRepository) Upsert(ctx context.Context, item *models.VocabItem) error {
	query := r.db.Rebind(`
		INSERT INTO vocab_items
			(profile_id, term, meaning, example, domain, register, part_of_speech, collocations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, term) DO UPDATE SET
			meaning = excluded.meaning,
			example = excluded.example,
			domain = excluded.domain,
			register = excluded.register,
			part_of_speech = excluded.part_of_speech,
			collocations = excluded.collocations
	`)
	_, err := r.db.ExecContext(ctx, query,
		item.ProfileID,
		item.Term,
		item.Meaning,
		item.Example,
		item.Domain,
		item.Register,
		item.PartOfSpeech,
		item.Collocations,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vocab item: %w", err)
	}
	return nil
}

// GetByTerm returns one vocabulary item, or nil if it doesn't exist
func (r *VocabRepository) GetByTerm(ctx context.Context, profileID int64, term string) (*models.VocabItem, error) {
	var item models.VocabItem
	query := r.db.Rebind(`SELECT * FROM vocab_items WHERE profile_id = ? AND term = ?`)
	err := r.db.GetContext(ctx, &item, query, profileID, term)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocab item: %w", err)
	}
	return &item, nil
}

// List returns vocabulary items for a profile, optionally filtered by
// domain and/or status, newest first.
func (r *VocabRepository) List(ctx context.Context, profileID int64, domain, status string) ([]models.VocabItem, error) {
	query := `SELECT * FROM vocab_items WHERE profile_id = ?`
	args := []interface{}{profileID}
	if domain != "" {
		query += ` AND domain = ?`
		args = append(args, domain)
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	var items []models.VocabItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list vocab items: %w", err)
	}
	return items, nil
}

// GetDue returns up to limit items due for review, ordered by due date
// then by ease factor so the hardest items come first. Never-scheduled
// items (next_review NULL) sort before everything else; NULLS FIRST makes
// that hold on the postgres branch too, not just sqlite.
func (r *VocabRepository) GetDue(ctx context.Context, profileID int64, limit int) ([]models.VocabItem, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT * FROM vocab_items
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
		ORDER BY next_review ASC NULLS FIRST, ease_factor ASC
		LIMIT ?
	`)
	var items []models.VocabItem
	if err := r.db.SelectContext(ctx, &items, query, profileID, today, limit); err != nil {
		return nil, fmt.Errorf("failed to get due vocab items: %w", err)
	}
	return items, nil
}

// CountDue returns how many items are currently due
func (r *VocabRepository) CountDue(ctx context.Context, profileID int64) (int, error) {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		SELECT COUNT(*) FROM vocab_items
		WHERE profile_id = ? AND (next_review IS NULL OR next_review <= ?)
	`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID, today); err != nil {
		return 0, fmt.Errorf("failed to count due vocab items: %w", err)
	}
	return count, nil
}

// CountActive returns how many items have left the 'new' status
func (r *VocabRepository) CountActive(ctx context.Context, profileID int64) (int, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM vocab_items WHERE profile_id = ? AND status <> 'new'`)
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID); err != nil {
		return 0, fmt.Errorf("failed to count active vocab items: %w", err)
	}
	return count, nil
}

// RecordReview applies one review outcome to the item's scheduling state.
// An unknown term is a silent no-op (nil update, nil error): the UI may
// hold a stale reference and that shouldn't surface as a failure.
func (r *VocabRepository) RecordReview(ctx context.Context, profileID int64, term string, quality int) (*models.ReviewUpdate, error) {
	item, err := r.GetByTerm(ctx, profileID, term)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	newEase, newInterval := spaced_repetition.Grade(quality, item.EaseFactor, item.IntervalDays)
	today := r.now().Format("2006-01-02")
	nextReview := spaced_repetition.NextDue(r.now(), newInterval)

	status := "learning"
	if quality >= 4 && newInterval > 21 {
		status = "mastered"
	}

	query := r.db.Rebind(`
		UPDATE vocab_items SET
			exposure_count = exposure_count + 1,
			last_reviewed = ?,
			next_review = ?,
			ease_factor = ?,
			interval_days = ?,
			status = ?
		WHERE profile_id = ? AND term = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, today, nextReview, newEase, newInterval, status, profileID, term); err != nil {
		return nil, fmt.Errorf("failed to update vocab review: %w", err)
	}

	return &models.ReviewUpdate{
		Quality:     quality,
		NewEase:     newEase,
		NewInterval: newInterval,
		NextReview:  nextReview,
	}, nil
}

// Delete removes a vocabulary item
func (r *VocabRepository) Delete(ctx context.Context, profileID int64, id int) error {
	query := r.db.Rebind(`DELETE FROM vocab_items WHERE profile_id = ? AND id = ?`)
	if _, err := r.db.ExecContext(ctx, query, profileID, id); err != nil {
		return fmt.Errorf("failed to delete vocab item: %w", err)
	}
	return nil
}
