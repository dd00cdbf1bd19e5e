package models

// ProgressMetrics is one day's activity counters for a profile
type ProgressMetrics struct {
	ID                int64   `json:"id" db:"id"`
	ProfileID         int64   `json:"profile_id" db:"profile_id"`
	MetricDate        string  `json:"metric_date" db:"metric_date"` // YYYY-MM-DD
	SpeakingMinutes   float64 `json:"speaking_minutes" db:"speaking_minutes"`
	WritingWords      int     `json:"writing_words" db:"writing_words"`
	VocabReviewed     int     `json:"vocab_reviewed" db:"vocab_reviewed"`
	GrammarReviewed   int     `json:"grammar_reviewed" db:"grammar_reviewed"`
	VerbsReviewed     int     `json:"verbs_reviewed" db:"verbs_reviewed"`
	ErrorsFixed       int     `json:"errors_fixed" db:"errors_fixed"`
	MissionsCompleted int     `json:"missions_completed" db:"missions_completed"`
	ActiveVocabCount  int     `json:"active_vocab_count" db:"active_vocab_count"`
	CreatedAt         string  `json:"created_at" db:"created_at"`
}

// TotalStats aggregates lifetime activity for a profile
type TotalStats struct {
	SpeakingMinutes   float64 `json:"speaking_minutes" db:"speaking_minutes"`
	WritingWords      int     `json:"writing_words" db:"writing_words"`
	VocabReviewed     int     `json:"vocab_reviewed" db:"vocab_reviewed"`
	GrammarReviewed   int     `json:"grammar_reviewed" db:"grammar_reviewed"`
	VerbsReviewed     int     `json:"verbs_reviewed" db:"verbs_reviewed"`
	ErrorsFixed       int     `json:"errors_fixed" db:"errors_fixed"`
	MissionsCompleted int     `json:"missions_completed" db:"missions_completed"`
	ActiveDays        int     `json:"active_days" db:"active_days"`
}

// DomainExposure tracks how much practice a topic domain has received
type DomainExposure struct {
	ID            int64   `json:"id" db:"id"`
	ProfileID     int64   `json:"profile_id" db:"profile_id"`
	Domain        string  `json:"domain" db:"domain"`
	ExposureCount int     `json:"exposure_count" db:"exposure_count"`
	LastExposure  *string `json:"last_exposure" db:"last_exposure"`
	TotalItems    int     `json:"total_items" db:"total_items"`
	MasteredItems int     `json:"mastered_items" db:"mastered_items"`
}
