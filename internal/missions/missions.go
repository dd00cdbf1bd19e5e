// Package missions hands out one practice assignment per day and scores
// the learner's response against the mission constraints.
package missions

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eugendimant/vivalingo/internal/content"
	"github.com/eugendimant/vivalingo/internal/writing"
	"github.com/eugendimant/vivalingo/pkg/models"
)

// MissionStore is the slice of the mission repository the service needs
type MissionStore interface {
	GetByDate(ctx context.Context, profileID int64, date string) (*models.DailyMission, error)
	Create(ctx context.Context, m *models.DailyMission) error
	Complete(ctx context.Context, profileID int64, date, response, feedback string, score float64) error
	History(ctx context.Context, profileID int64, limit int) ([]models.DailyMission, error)
}

// ProgressRecorder receives activity counters when a mission completes
type ProgressRecorder interface {
	AddToday(ctx context.Context, profileID int64, metric string, amount float64) error
}

// Service owns mission selection and scoring
type Service struct {
	store    MissionStore
	progress ProgressRecorder
	now      func() time.Time
}

// NewService creates a mission service
func NewService(store MissionStore, progress ProgressRecorder) *Service {
	return &Service{store: store, progress: progress, now: time.Now}
}

// Outcome is the scored result of a mission response
type Outcome struct {
	Mission     *models.DailyMission                `json:"mission"`
	Constraints map[string]writing.ConstraintResult `json:"constraints"`
	Score       float64                             `json:"score"`
	Feedback    string                              `json:"feedback"`
}

// Today returns the mission for the current date, creating it on first
// access. The template pick is seeded by the date so reloads see the same
// mission.
func (s *Service) Today(ctx context.Context, profileID int64) (*models.DailyMission, error) {
	date := s.now().Format("2006-01-02")
	existing, err := s.store.GetByDate(ctx, profileID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	tpl := content.MissionTemplates[seedForDay(date)%uint64(len(content.MissionTemplates))]
	constraints, err := json.Marshal(tpl.Constraints)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mission constraints: %w", err)
	}

	mission := &models.DailyMission{
		ProfileID:   profileID,
		MissionDate: date,
		MissionType: tpl.Type,
		Title:       tpl.Title,
		Prompt:      tpl.Prompt,
		Constraints: string(constraints),
	}
	if err := s.store.Create(ctx, mission); err != nil {
		return nil, err
	}
	return s.store.GetByDate(ctx, profileID, date)
}

// Respond scores the learner's response against today's mission and marks
// it completed.
func (s *Service) Respond(ctx context.Context, profileID int64, response string) (*Outcome, error) {
	date := s.now().Format("2006-01-02")
	mission, err := s.store.GetByDate(ctx, profileID, date)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("no mission assigned for %s", date)
	}
	if mission.Completed {
		return nil, fmt.Errorf("mission for %s is already completed", date)
	}

	constraints := mission.ConstraintList()
	results := writing.AnalyzeConstraints(response, constraints)

	met := 0
	var unmet []string
	for constraint, res := range results {
		if res.Met {
			met++
		} else {
			unmet = append(unmet, constraint)
		}
	}

	score := 1.0
	if len(constraints) > 0 {
		score = float64(met) / float64(len(constraints))
	}
	feedback := buildFeedback(met, len(constraints), unmet)

	if err := s.store.Complete(ctx, profileID, date, response, feedback, score); err != nil {
		return nil, err
	}
	s.recordProgress(ctx, profileID, mission.MissionType, response)

	mission, err = s.store.GetByDate(ctx, profileID, date)
	if err != nil {
		return nil, err
	}
	return &Outcome{Mission: mission, Constraints: results, Score: score, Feedback: feedback}, nil
}

// History returns recently assigned missions, newest first
func (s *Service) History(ctx context.Context, profileID int64, limit int) ([]models.DailyMission, error) {
	return s.store.History(ctx, profileID, limit)
}

func (s *Service) recordProgress(ctx context.Context, profileID int64, missionType, response string) {
	if s.progress == nil {
		return
	}
	_ = s.progress.AddToday(ctx, profileID, "missions_completed", 1)
	if missionType == "writing" {
		_ = s.progress.AddToday(ctx, profileID, "writing_words", float64(len(strings.Fields(response))))
	}
}

func buildFeedback(met, total int, unmet []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cumpliste %d de %d condiciones.", met, total)
	if len(unmet) > 0 {
		b.WriteString(" Por trabajar: ")
		b.WriteString(strings.Join(unmet, " | "))
	} else {
		b.WriteString(" Mision redonda.")
	}
	return b.String()
}

// seedForDay derives a stable numeric seed from a YYYY-MM-DD date
func seedForDay(date string) uint64 {
	sum := sha256.Sum256([]byte(date))
	return binary.BigEndian.Uint64(sum[:8])
}
