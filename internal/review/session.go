package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eugendimant/vivalingo/internal/grading"
	"github.com/eugendimant/vivalingo/internal/spaced_repetition"
	"github.com/eugendimant/vivalingo/pkg/models"
)

// ErrSessionNotFound is returned for unknown or already-finished sessions
var ErrSessionNotFound = errors.New("review session not found")

// ProgressRecorder receives activity counters as cards are answered
type ProgressRecorder interface {
	AddToday(ctx context.Context, profileID int64, metric string, amount float64) error
}

// ExposureRecorder receives a domain ping for every answered card whose
// item carries a topic domain, feeding the coverage dashboard.
type ExposureRecorder interface {
	Touch(ctx context.Context, profileID int64, domain string) error
}

// Metric names the session reports. They match the progress store's
// column whitelist.
const (
	metricVocabReviewed   = "vocab_reviewed"
	metricGrammarReviewed = "grammar_reviewed"
	metricVerbsReviewed   = "verbs_reviewed"
	metricErrorsFixed     = "errors_fixed"
)

// Session is one in-flight run through a review queue
type Session struct {
	ID          string       `json:"id"`
	ProfileID   int64        `json:"profile_id"`
	Mode        string       `json:"mode"`
	GradingMode grading.Mode `json:"grading_mode"`
	Cards       []Card       `json:"cards"`
	Index       int          `json:"index"`
	Correct     int          `json:"correct"`
	Close       int          `json:"close"`
	Incorrect   int          `json:"incorrect"`
	StartedAt   time.Time    `json:"started_at"`
}

// Current returns the card waiting for an answer, or nil when the session
// is finished.
func (s *Session) Current() *Card {
	if s.Index >= len(s.Cards) {
		return nil
	}
	return &s.Cards[s.Index]
}

// Finished reports whether every card has been answered
func (s *Session) Finished() bool {
	return s.Index >= len(s.Cards)
}

// Summary is the end-of-session report: verdict counts plus how many
// cards of each kind were reviewed.
type Summary struct {
	Total     int           `json:"total"`
	Correct   int           `json:"correct"`
	Close     int           `json:"close"`
	Incorrect int           `json:"incorrect"`
	Vocab     int           `json:"vocab"`
	Grammar   int           `json:"grammar"`
	Verbs     int           `json:"verbs"`
	Mistakes  int           `json:"mistakes"`
	Accuracy  float64       `json:"accuracy"`
	Duration  time.Duration `json:"duration"`
}

// AnswerResult is what the UI shows after each card
type AnswerResult struct {
	Verdict       string               `json:"verdict"` // correct / close / incorrect
	CorrectAnswer string               `json:"correct_answer"`
	Explanation   string               `json:"explanation,omitempty"`
	Update        *models.ReviewUpdate `json:"update,omitempty"`
	Done          bool                 `json:"done"`
	Next          *Card                `json:"next,omitempty"`
	Summary       *Summary             `json:"summary,omitempty"`
}

// Runner owns the live sessions. Sessions are in-memory only: scheduling
// state is persisted per card, so an abandoned session costs nothing.
// mu guards the session map and all session state mutation.
type Runner struct {
	builder  *Builder
	progress ProgressRecorder
	exposure ExposureRecorder

	mu       sync.Mutex
	sessions map[string]*Session

	now func() time.Time
}

// NewRunner creates a session runner. progress and exposure may be nil;
// the session then only records scheduling state.
func NewRunner(builder *Builder, progress ProgressRecorder, exposure ExposureRecorder) *Runner {
	return &Runner{
		builder:  builder,
		progress: progress,
		exposure: exposure,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Start builds a queue and opens a session over it. An empty queue still
// yields a session so the UI can show "nothing due".
func (r *Runner) Start(ctx context.Context, profileID int64, mode string, length int, gradingMode grading.Mode) (*Session, error) {
	cards, err := r.builder.Build(ctx, profileID, mode, length)
	if err != nil {
		return nil, fmt.Errorf("failed to build review queue: %w", err)
	}

	s := &Session{
		ID:          uuid.NewString(),
		ProfileID:   profileID,
		Mode:        mode,
		GradingMode: gradingMode,
		Cards:       cards,
		StartedAt:   r.now(),
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns a live session
func (r *Runner) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// SubmitAnswer grades a typed answer against the current card and applies
// the outcome. Correct answers rate 4, near misses 2, wrong answers 1.
func (r *Runner) SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResult, error) {
	s, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}
	card := s.Current()
	if card == nil {
		return nil, fmt.Errorf("session %s has no card to answer", sessionID)
	}

	result := grading.Compare(answer, card.Answer, s.GradingMode)
	return r.apply(ctx, s, *card, result.Quality())
}

// SubmitRating applies a self-assessed 0-5 rating to the current card,
// used for show-then-rate cards like logged mistakes.
func (r *Runner) SubmitRating(ctx context.Context, sessionID string, quality int) (*AnswerResult, error) {
	s, err := r.Get(sessionID)
	if err != nil {
		return nil, err
	}
	card := s.Current()
	if card == nil {
		return nil, fmt.Errorf("session %s has no card to rate", sessionID)
	}
	return r.apply(ctx, s, *card, quality)
}

func (r *Runner) apply(ctx context.Context, s *Session, card Card, quality int) (*AnswerResult, error) {
	update, err := r.builder.RecordOutcome(ctx, s.ProfileID, card, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to record review outcome: %w", err)
	}

	res := &AnswerResult{
		CorrectAnswer: card.Answer,
		Explanation:   card.Explanation,
		Update:        update,
	}

	r.mu.Lock()
	switch {
	case quality >= spaced_repetition.PassThreshold:
		res.Verdict = "correct"
		s.Correct++
	case quality == 2:
		res.Verdict = "close"
		s.Close++
	default:
		res.Verdict = "incorrect"
		s.Incorrect++
	}
	s.Index++
	if s.Finished() {
		res.Done = true
		res.Summary = r.summarize(s)
		delete(r.sessions, s.ID)
	} else {
		res.Next = s.Current()
	}
	r.mu.Unlock()

	r.recordProgress(ctx, s.ProfileID, card, quality)
	return res, nil
}

func (r *Runner) recordProgress(ctx context.Context, profileID int64, card Card, quality int) {
	if r.progress != nil {
		switch card.Kind {
		case KindVocab:
			_ = r.progress.AddToday(ctx, profileID, metricVocabReviewed, 1)
		case KindGrammar:
			_ = r.progress.AddToday(ctx, profileID, metricGrammarReviewed, 1)
		case KindVerb:
			_ = r.progress.AddToday(ctx, profileID, metricVerbsReviewed, 1)
		case KindMistake:
			if quality >= spaced_repetition.PassThreshold {
				_ = r.progress.AddToday(ctx, profileID, metricErrorsFixed, 1)
			}
		}
	}
	if r.exposure != nil && card.Domain != "" {
		_ = r.exposure.Touch(ctx, profileID, card.Domain)
	}
}

// summarize builds the end-of-session report. Caller holds r.mu.
func (r *Runner) summarize(s *Session) *Summary {
	summary := &Summary{
		Total:     len(s.Cards),
		Correct:   s.Correct,
		Close:     s.Close,
		Incorrect: s.Incorrect,
		Duration:  r.now().Sub(s.StartedAt),
	}
	for i := range s.Cards {
		switch s.Cards[i].Kind {
		case KindVocab:
			summary.Vocab++
		case KindGrammar:
			summary.Grammar++
		case KindVerb:
			summary.Verbs++
		case KindMistake:
			summary.Mistakes++
		}
	}
	if summary.Total > 0 {
		summary.Accuracy = float64(s.Correct) / float64(summary.Total)
	}
	return summary
}
