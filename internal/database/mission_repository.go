package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// MissionRepository persists the one-per-day practice assignments
type MissionRepository struct {
	db *sqlx.DB
}

// NewMissionRepository creates a new repository instance
func NewMissionRepository(db *sqlx.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// GetByDate returns the mission for a date, or nil if none exists yet
func (r *MissionRepository) GetByDate(ctx context.Context, profileID int64, date string) (*models.DailyMission, error) {
	var m models.DailyMission
	query := r.db.Rebind(`SELECT * FROM daily_missions WHERE profile_id = ? AND mission_date = ?`)
	err := r.db.GetContext(ctx, &m, query, profileID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission: %w", err)
	}
	return &m, nil
}

// Create stores a new mission. The (profile_id, mission_date) uniqueness
// constraint guarantees at most one mission per day.
func (r *MissionRepository) Create(ctx context.Context, m *models.DailyMission) error {
	query := r.db.Rebind(`
		INSERT INTO daily_missions (profile_id, mission_date, mission_type, title, prompt, constraints)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query,
		m.ProfileID,
		m.MissionDate,
		m.MissionType,
		m.Title,
		m.Prompt,
		m.Constraints,
	); err != nil {
		return fmt.Errorf("failed to create mission: %w", err)
	}
	return nil
}

// Complete stores the learner's response and scoring for a mission
func (r *MissionRepository) Complete(ctx context.Context, profileID int64, date, response, feedback string, score float64) error {
	query := r.db.Rebind(`
		UPDATE daily_missions SET
			user_response = ?,
			feedback = ?,
			score = ?,
			completed = true
		WHERE profile_id = ? AND mission_date = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, response, feedback, score, profileID, date); err != nil {
		return fmt.Errorf("failed to complete mission: %w", err)
	}
	return nil
}

// History returns recent missions, newest first
func (r *MissionRepository) History(ctx context.Context, profileID int64, limit int) ([]models.DailyMission, error) {
	query := r.db.Rebind(`
		SELECT * FROM daily_missions
		WHERE profile_id = ?
		ORDER BY mission_date DESC
		LIMIT ?
	`)
	var out []models.DailyMission
	if err := r.db.SelectContext(ctx, &out, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("failed to list mission history: %w", err)
	}
	return out, nil
}
