// Package scheduler runs the daily background job: snapshot the day's
// numbers and remind the learner when reviews are waiting.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/eugendimant/vivalingo/internal/notify"
	"github.com/eugendimant/vivalingo/internal/progress"
	"github.com/eugendimant/vivalingo/pkg/models"
)

// ProfileSource yields the profile the reminder should target
type ProfileSource interface {
	GetActive(ctx context.Context) (*models.Profile, error)
}

// DueSource counts the per-kind review backlog
type DueSource interface {
	CountDue(ctx context.Context, profileID int64) (progress.DueCounts, error)
}

// Notifier delivers the reminder text; nil disables delivery
type Notifier interface {
	SendReminder(text string) error
}

// Scheduler manages the daily reminder job
type Scheduler struct {
	scheduler *gocron.Scheduler
	profiles  ProfileSource
	due       DueSource
	notifier  Notifier
	logger    *zap.Logger
}

// New creates a scheduler. notifier may be nil when Telegram is not
// configured; the job then only logs the backlog.
func New(profiles ProfileSource, due DueSource, notifier Notifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		profiles:  profiles,
		due:       due,
		notifier:  notifier,
		logger:    logger,
	}
}

// Start schedules the daily job at the given local hour and runs the
// scheduler in the background.
func (s *Scheduler) Start(hour int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("reminder hour %d out of range", hour)
	}
	at := fmt.Sprintf("%02d:00", hour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.runReminder); err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started", zap.String("at", at))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profile, err := s.profiles.GetActive(ctx)
	if err != nil {
		s.logger.Error("reminder: failed to load active profile", zap.Error(err))
		return
	}
	if profile == nil {
		s.logger.Debug("reminder: no active profile, skipping")
		return
	}

	counts, err := s.due.CountDue(ctx, profile.ID)
	if err != nil {
		s.logger.Error("reminder: failed to count due items", zap.Error(err))
		return
	}

	s.logger.Info("daily review backlog",
		zap.Int64("profile_id", profile.ID),
		zap.Int("vocab", counts.Vocab),
		zap.Int("grammar", counts.Grammar),
		zap.Int("mistakes", counts.Mistakes),
	)

	if s.notifier == nil {
		return
	}
	text := notify.ReminderText(counts.Vocab, counts.Grammar, counts.Mistakes)
	if err := s.notifier.SendReminder(text); err != nil {
		s.logger.Warn("reminder: delivery failed", zap.Error(err))
	}
}
