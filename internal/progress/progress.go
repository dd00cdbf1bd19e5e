// Package progress aggregates the dashboard view: streaks, lifetime
// totals, recent activity, domain coverage and what's currently due.
package progress

import (
	"context"
	"time"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// MetricsStore is the slice of the progress repository the service needs
type MetricsStore interface {
	GetDay(ctx context.Context, profileID int64, date string) (*models.ProgressMetrics, error)
	GetRecent(ctx context.Context, profileID int64, days int) ([]models.ProgressMetrics, error)
	GetTotals(ctx context.Context, profileID int64) (*models.TotalStats, error)
	Streak(ctx context.Context, profileID int64) (int, error)
	SetActiveVocabCount(ctx context.Context, profileID int64, count int) error
}

// ExposureStore is the slice of the exposure repository the service needs
type ExposureStore interface {
	List(ctx context.Context, profileID int64) ([]models.DomainExposure, error)
	SyncCounts(ctx context.Context, profileID int64) error
	LeastPracticed(ctx context.Context, profileID int64, limit int) ([]string, error)
}

// DueCounter is implemented by every review store
type DueCounter interface {
	CountDue(ctx context.Context, profileID int64) (int, error)
}

// VocabCounter additionally reports the active-vocab size
type VocabCounter interface {
	DueCounter
	CountActive(ctx context.Context, profileID int64) (int, error)
}

// DueCounts is the per-kind backlog shown on the hub and in reminders
type DueCounts struct {
	Vocab    int `json:"vocab"`
	Grammar  int `json:"grammar"`
	Mistakes int `json:"mistakes"`
}

// Total sums the backlog across kinds
func (d DueCounts) Total() int {
	return d.Vocab + d.Grammar + d.Mistakes
}

// Dashboard is everything the progress page renders
type Dashboard struct {
	Streak          int                      `json:"streak"`
	Today           *models.ProgressMetrics  `json:"today,omitempty"`
	Totals          *models.TotalStats       `json:"totals"`
	Recent          []models.ProgressMetrics `json:"recent"`
	Domains         []models.DomainExposure  `json:"domains"`
	Due             DueCounts                `json:"due"`
	ActiveVocab     int                      `json:"active_vocab"`
	WeakDomains     []string                 `json:"weak_domains"`
	WeeklyGoalDays  int                      `json:"weekly_goal_days"`
	WeeklyActiveDays int                     `json:"weekly_active_days"`
}

// Service builds dashboards
type Service struct {
	metrics  MetricsStore
	exposure ExposureStore
	vocab    VocabCounter
	grammar  DueCounter
	mistakes DueCounter
	now      func() time.Time
}

// NewService creates a progress service
func NewService(metrics MetricsStore, exposure ExposureStore, vocab VocabCounter, grammar, mistakes DueCounter) *Service {
	return &Service{
		metrics:  metrics,
		exposure: exposure,
		vocab:    vocab,
		grammar:  grammar,
		mistakes: mistakes,
		now:      time.Now,
	}
}

// CountDue gathers the per-kind backlog
func (s *Service) CountDue(ctx context.Context, profileID int64) (DueCounts, error) {
	var counts DueCounts
	var err error
	if counts.Vocab, err = s.vocab.CountDue(ctx, profileID); err != nil {
		return counts, err
	}
	if counts.Grammar, err = s.grammar.CountDue(ctx, profileID); err != nil {
		return counts, err
	}
	if counts.Mistakes, err = s.mistakes.CountDue(ctx, profileID); err != nil {
		return counts, err
	}
	return counts, nil
}

// Dashboard assembles the progress page for a profile. It also refreshes
// the derived numbers (domain counts, active-vocab snapshot) so the page
// always reflects the current stores.
func (s *Service) Dashboard(ctx context.Context, profileID int64, weeklyGoal int) (*Dashboard, error) {
	if err := s.exposure.SyncCounts(ctx, profileID); err != nil {
		return nil, err
	}

	active, err := s.vocab.CountActive(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := s.metrics.SetActiveVocabCount(ctx, profileID, active); err != nil {
		return nil, err
	}

	streak, err := s.metrics.Streak(ctx, profileID)
	if err != nil {
		return nil, err
	}
	totals, err := s.metrics.GetTotals(ctx, profileID)
	if err != nil {
		return nil, err
	}
	recent, err := s.metrics.GetRecent(ctx, profileID, 14)
	if err != nil {
		return nil, err
	}
	today, err := s.metrics.GetDay(ctx, profileID, s.now().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	domains, err := s.exposure.List(ctx, profileID)
	if err != nil {
		return nil, err
	}
	weak, err := s.exposure.LeastPracticed(ctx, profileID, 3)
	if err != nil {
		return nil, err
	}
	due, err := s.CountDue(ctx, profileID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Streak:           streak,
		Today:            today,
		Totals:           totals,
		Recent:           recent,
		Domains:          domains,
		Due:              due,
		ActiveVocab:      active,
		WeakDomains:      weak,
		WeeklyGoalDays:   weeklyGoal,
		WeeklyActiveDays: s.weeklyActiveDays(recent),
	}, nil
}

// weeklyActiveDays counts distinct active days in the last seven,
// including today.
func (s *Service) weeklyActiveDays(recent []models.ProgressMetrics) int {
	weekAgo := s.now().AddDate(0, 0, -6).Format("2006-01-02")
	n := 0
	for _, day := range recent {
		if day.MetricDate >= weekAgo {
			n++
		}
	}
	return n
}
