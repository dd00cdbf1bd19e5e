package models

import "encoding/json"

// Mistake represents a logged learner error tracked by the SRS
type Mistake struct {
	ID            int     `json:"id" db:"id"`
	ProfileID     int64   `json:"profile_id" db:"profile_id"`
	UserText      string  `json:"user_text" db:"user_text"`
	CorrectedText string  `json:"corrected_text" db:"corrected_text"`
	ErrorType     string  `json:"error_type" db:"error_type"`
	ErrorTag      string  `json:"error_tag" db:"error_tag"` // gender / copula / preposition / calque / ...
	Pattern       string  `json:"pattern" db:"pattern"`     // the offending fragment
	Explanation   string  `json:"explanation" db:"explanation"`
	Examples      string  `json:"examples" db:"examples"` // JSON-encoded list
	Confidence    float64 `json:"confidence" db:"confidence"`
	ReviewCount   int     `json:"review_count" db:"review_count"`
	ReviewState
	CreatedAt string `json:"created_at" db:"created_at"`
}

// ExampleList decodes the stored correct-usage examples.
func (m *Mistake) ExampleList() []string {
	var out []string
	if err := json.Unmarshal([]byte(m.Examples), &out); err != nil {
		return nil
	}
	return out
}

// MistakeTypeStats aggregates logged mistakes by error type
type MistakeTypeStats struct {
	ErrorType string  `json:"error_type" db:"error_type"`
	Count     int     `json:"count" db:"count"`
	AvgEase   float64 `json:"avg_ease" db:"avg_ease"`
}
