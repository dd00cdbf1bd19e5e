package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// ProfileRepository handles database operations for learner profiles
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new repository instance
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile and returns its id
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO profiles
			(name, level, weekly_goal, focus_areas, dialect_preference, grading_mode, accent_tolerance, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Level,
		p.WeeklyGoal,
		p.FocusAreas,
		p.DialectPreference,
		p.GradingMode,
		p.AccentTolerance,
		p.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// GetByID returns one profile, or nil if it doesn't exist
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	var p models.Profile
	query := r.db.Rebind(`SELECT * FROM profiles WHERE id = ?`)
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// GetActive returns the active profile, or nil if none is marked active
func (r *ProfileRepository) GetActive(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	query := `SELECT * FROM profiles WHERE is_active = true ORDER BY id ASC LIMIT 1`
	err := r.db.GetContext(ctx, &p, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}
	return &p, nil
}

// List returns all profiles
func (r *ProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	if err := r.db.SelectContext(ctx, &out, `SELECT * FROM profiles ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return out, nil
}

// SetActive marks one profile active and clears the flag on every other
func (r *ProfileRepository) SetActive(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE profiles SET is_active = false`); err != nil {
		return fmt.Errorf("failed to clear active profiles: %w", err)
	}
	query := tx.Rebind(`UPDATE profiles SET is_active = true, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to set active profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateSettings persists the editable profile fields
func (r *ProfileRepository) UpdateSettings(ctx context.Context, p *models.Profile) error {
	query := r.db.Rebind(`
		UPDATE profiles SET
			name = ?,
			level = ?,
			weekly_goal = ?,
			focus_areas = ?,
			dialect_preference = ?,
			grading_mode = ?,
			accent_tolerance = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Level,
		p.WeeklyGoal,
		p.FocusAreas,
		p.DialectPreference,
		p.GradingMode,
		p.AccentTolerance,
		p.ID,
	); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// RecordPlacement stores the placement test result
func (r *ProfileRepository) RecordPlacement(ctx context.Context, id int64, score float64, level string) error {
	query := r.db.Rebind(`
		UPDATE profiles SET
			placement_completed = true,
			placement_score = ?,
			level = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, score, level, id); err != nil {
		return fmt.Errorf("failed to record placement: %w", err)
	}
	return nil
}

// Delete removes a profile. Learner data in other tables is scoped by
// profile id and becomes unreachable; a cleanup job could reap it later.
func (r *ProfileRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM profiles WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
