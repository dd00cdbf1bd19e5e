package models

// ReviewState holds the SM-2 scheduling fields shared by every reviewable kind.
// A nil NextReview means the item has never been scheduled and is due now.
type ReviewState struct {
	EaseFactor   float64 `json:"ease_factor" db:"ease_factor"`
	IntervalDays int     `json:"interval_days" db:"interval_days"`
	NextReview   *string `json:"next_review" db:"next_review"`     // YYYY-MM-DD
	LastReviewed *string `json:"last_reviewed" db:"last_reviewed"` // YYYY-MM-DD
}

// IsDue reports whether the item is due on the given date (YYYY-MM-DD).
func (s ReviewState) IsDue(today string) bool {
	return s.NextReview == nil || *s.NextReview <= today
}

// ReviewUpdate is the result of applying one review outcome, surfaced to the
// UI after each card.
type ReviewUpdate struct {
	Quality      int     `json:"quality"`
	NewEase      float64 `json:"new_ease"`
	NewInterval  int     `json:"new_interval"`
	NextReview   string  `json:"next_review"`
}
