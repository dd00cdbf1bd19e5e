package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// ConversationRepository persists roleplay sessions
type ConversationRepository struct {
	db *sqlx.DB
}

// NewConversationRepository creates a new repository instance
func NewConversationRepository(db *sqlx.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create stores a new conversation and returns its id
func (r *ConversationRepository) Create(ctx context.Context, c *models.Conversation) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO conversations (profile_id, scenario_title, hidden_targets, messages)
		VALUES (?, ?, ?, ?)
	`)
	res, err := r.db.ExecContext(ctx, query, c.ProfileID, c.ScenarioTitle, c.HiddenTargets, c.Messages)
	if err != nil {
		return 0, fmt.Errorf("failed to create conversation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, nil
	}
	return id, nil
}

// GetByID returns one conversation, or nil if it doesn't exist
func (r *ConversationRepository) GetByID(ctx context.Context, profileID, id int64) (*models.Conversation, error) {
	var c models.Conversation
	query := r.db.Rebind(`SELECT * FROM conversations WHERE profile_id = ? AND id = ?`)
	err := r.db.GetContext(ctx, &c, query, profileID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &c, nil
}

// List returns recent conversations, newest first
func (r *ConversationRepository) List(ctx context.Context, profileID int64, limit int) ([]models.Conversation, error) {
	query := r.db.Rebind(`
		SELECT * FROM conversations
		WHERE profile_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`)
	var out []models.Conversation
	if err := r.db.SelectContext(ctx, &out, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return out, nil
}

// UpdateTranscript replaces the stored dialogue and achieved targets
func (r *ConversationRepository) UpdateTranscript(ctx context.Context, profileID, id int64, messages, achievedTargets string) error {
	query := r.db.Rebind(`
		UPDATE conversations SET messages = ?, achieved_targets = ?
		WHERE profile_id = ? AND id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, messages, achievedTargets, profileID, id); err != nil {
		return fmt.Errorf("failed to update conversation transcript: %w", err)
	}
	return nil
}

// Complete marks a conversation finished and stores the closing feedback
func (r *ConversationRepository) Complete(ctx context.Context, profileID, id int64, feedback string) error {
	query := r.db.Rebind(`
		UPDATE conversations SET completed = true, feedback = ?
		WHERE profile_id = ? AND id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, feedback, profileID, id); err != nil {
		return fmt.Errorf("failed to complete conversation: %w", err)
	}
	return nil
}
