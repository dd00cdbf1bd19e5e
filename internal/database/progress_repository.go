package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// ProgressRepository handles the per-day activity counters
type ProgressRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db, now: time.Now}
}

// Metric names accepted by AddToday. Kept in one place so handlers and the
// review session agree on spelling.
const (
	MetricSpeakingMinutes   = "speaking_minutes"
	MetricWritingWords      = "writing_words"
	MetricVocabReviewed     = "vocab_reviewed"
	MetricGrammarReviewed   = "grammar_reviewed"
	MetricVerbsReviewed     = "verbs_reviewed"
	MetricErrorsFixed       = "errors_fixed"
	MetricMissionsCompleted = "missions_completed"
)

var metricColumns = map[string]bool{
	MetricSpeakingMinutes:   true,
	MetricWritingWords:      true,
	MetricVocabReviewed:     true,
	MetricGrammarReviewed:   true,
	MetricVerbsReviewed:     true,
	MetricErrorsFixed:       true,
	MetricMissionsCompleted: true,
}

// AddToday increments one of today's counters, creating the day row on
// first touch.
func (r *ProgressRepository) AddToday(ctx context.Context, profileID int64, metric string, amount float64) error {
	if !metricColumns[metric] {
		return fmt.Errorf("unknown progress metric %q", metric)
	}
	today := r.now().Format("2006-01-02")

	// column name is validated against the whitelist above
	query := r.db.Rebind(fmt.Sprintf(`
		INSERT INTO progress_metrics (profile_id, metric_date, %[1]s)
		VALUES (?, ?, ?)
		ON CONFLICT(profile_id, metric_date) DO UPDATE SET
			%[1]s = progress_metrics.%[1]s + excluded.%[1]s
	`, metric))
	if _, err := r.db.ExecContext(ctx, query, profileID, today, amount); err != nil {
		return fmt.Errorf("failed to record progress metric: %w", err)
	}
	return nil
}

// SetActiveVocabCount snapshots the active-vocab size onto today's row
func (r *ProgressRepository) SetActiveVocabCount(ctx context.Context, profileID int64, count int) error {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		INSERT INTO progress_metrics (profile_id, metric_date, active_vocab_count)
		VALUES (?, ?, ?)
		ON CONFLICT(profile_id, metric_date) DO UPDATE SET
			active_vocab_count = excluded.active_vocab_count
	`)
	if _, err := r.db.ExecContext(ctx, query, profileID, today, count); err != nil {
		return fmt.Errorf("failed to set active vocab count: %w", err)
	}
	return nil
}

// GetDay returns one day's metrics, or nil if nothing was recorded
func (r *ProgressRepository) GetDay(ctx context.Context, profileID int64, date string) (*models.ProgressMetrics, error) {
	var m models.ProgressMetrics
	query := r.db.Rebind(`SELECT * FROM progress_metrics WHERE profile_id = ? AND metric_date = ?`)
	err := r.db.GetContext(ctx, &m, query, profileID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day metrics: %w", err)
	}
	return &m, nil
}

// GetRecent returns the last n recorded days, newest first
func (r *ProgressRepository) GetRecent(ctx context.Context, profileID int64, days int) ([]models.ProgressMetrics, error) {
	query := r.db.Rebind(`
		SELECT * FROM progress_metrics
		WHERE profile_id = ?
		ORDER BY metric_date DESC
		LIMIT ?
	`)
	var out []models.ProgressMetrics
	if err := r.db.SelectContext(ctx, &out, query, profileID, days); err != nil {
		return nil, fmt.Errorf("failed to get recent metrics: %w", err)
	}
	return out, nil
}

// GetTotals aggregates lifetime activity
func (r *ProgressRepository) GetTotals(ctx context.Context, profileID int64) (*models.TotalStats, error) {
	query := r.db.Rebind(`
		SELECT
			COALESCE(SUM(speaking_minutes), 0) AS speaking_minutes,
			COALESCE(SUM(writing_words), 0) AS writing_words,
			COALESCE(SUM(vocab_reviewed), 0) AS vocab_reviewed,
			COALESCE(SUM(grammar_reviewed), 0) AS grammar_reviewed,
			COALESCE(SUM(verbs_reviewed), 0) AS verbs_reviewed,
			COALESCE(SUM(errors_fixed), 0) AS errors_fixed,
			COALESCE(SUM(missions_completed), 0) AS missions_completed,
			COUNT(*) AS active_days
		FROM progress_metrics
		WHERE profile_id = ?
	`)
	var totals models.TotalStats
	if err := r.db.GetContext(ctx, &totals, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}
	return &totals, nil
}

// Streak counts consecutive active days ending today or yesterday. A day
// counts as active if any metric row exists for it.
func (r *ProgressRepository) Streak(ctx context.Context, profileID int64) (int, error) {
	query := r.db.Rebind(`
		SELECT metric_date FROM progress_metrics
		WHERE profile_id = ?
		ORDER BY metric_date DESC
	`)
	var dates []string
	if err := r.db.SelectContext(ctx, &dates, query, profileID); err != nil {
		return 0, fmt.Errorf("failed to get streak dates: %w", err)
	}
	if len(dates) == 0 {
		return 0, nil
	}

	active := make(map[string]bool, len(dates))
	for _, d := range dates {
		active[d] = true
	}

	day := r.now()
	// a streak survives until the end of today, so missing today doesn't
	// break it yet
	if !active[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for active[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}
