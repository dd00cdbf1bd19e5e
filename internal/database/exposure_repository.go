package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// ExposureRepository tracks how much practice each topic domain has received
type ExposureRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewExposureRepository creates a new repository instance
func NewExposureRepository(db *sqlx.DB) *ExposureRepository {
	return &ExposureRepository{db: db, now: time.Now}
}

// Touch bumps the exposure counter for a domain
func (r *ExposureRepository) Touch(ctx context.Context, profileID int64, domain string) error {
	today := r.now().Format("2006-01-02")
	query := r.db.Rebind(`
		INSERT INTO domain_exposure (profile_id, domain, exposure_count, last_exposure)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(profile_id, domain) DO UPDATE SET
			exposure_count = domain_exposure.exposure_count + 1,
			last_exposure = excluded.last_exposure
	`)
	if _, err := r.db.ExecContext(ctx, query, profileID, domain, today); err != nil {
		return fmt.Errorf("failed to touch domain exposure: %w", err)
	}
	return nil
}

// SyncCounts recomputes per-domain item totals from the vocab table
func (r *ExposureRepository) SyncCounts(ctx context.Context, profileID int64) error {
	query := r.db.Rebind(`
		SELECT domain,
			COUNT(*) AS total,
			SUM(CASE WHEN status = 'mastered' THEN 1 ELSE 0 END) AS mastered
		FROM vocab_items
		WHERE profile_id = ? AND domain <> ''
		GROUP BY domain
	`)
	rows := []struct {
		Domain   string `db:"domain"`
		Total    int    `db:"total"`
		Mastered int    `db:"mastered"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, profileID); err != nil {
		return fmt.Errorf("failed to aggregate domain counts: %w", err)
	}

	update := r.db.Rebind(`
		INSERT INTO domain_exposure (profile_id, domain, total_items, mastered_items)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile_id, domain) DO UPDATE SET
			total_items = excluded.total_items,
			mastered_items = excluded.mastered_items
	`)
	for _, row := range rows {
		if _, err := r.db.ExecContext(ctx, update, profileID, row.Domain, row.Total, row.Mastered); err != nil {
			return fmt.Errorf("failed to sync domain %s: %w", row.Domain, err)
		}
	}
	return nil
}

// List returns exposure rows for a profile, most practiced first
func (r *ExposureRepository) List(ctx context.Context, profileID int64) ([]models.DomainExposure, error) {
	query := r.db.Rebind(`
		SELECT * FROM domain_exposure
		WHERE profile_id = ?
		ORDER BY exposure_count DESC, domain ASC
	`)
	var out []models.DomainExposure
	if err := r.db.SelectContext(ctx, &out, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list domain exposure: %w", err)
	}
	return out, nil
}

// LeastPracticed returns the domains with the lowest exposure, used to
// steer mission and scenario selection toward neglected topics.
func (r *ExposureRepository) LeastPracticed(ctx context.Context, profileID int64, limit int) ([]string, error) {
	query := r.db.Rebind(`
		SELECT domain FROM domain_exposure
		WHERE profile_id = ?
		ORDER BY exposure_count ASC, domain ASC
		LIMIT ?
	`)
	var domains []string
	if err := r.db.SelectContext(ctx, &domains, query, profileID, limit); err != nil {
		return nil, fmt.Errorf("failed to get least practiced domains: %w", err)
	}
	return domains, nil
}
