package models

import "encoding/json"

// GrammarPattern represents a grammar microdrill tracked by the SRS.
// The drill is a multiple-choice prompt; Options and Examples are stored
// JSON-encoded.
type GrammarPattern struct {
	ID          int    `json:"id" db:"id"`
	ProfileID   int64  `json:"profile_id" db:"profile_id"`
	PatternName string `json:"pattern_name" db:"pattern_name"`
	Category    string `json:"category" db:"category"` // agreement / tense / copula / ...
	Prompt      string `json:"prompt" db:"prompt"`
	Options     string `json:"options" db:"options"`
	Answer      string `json:"answer" db:"answer"`
	Explanation string `json:"explanation" db:"explanation"`
	Examples    string `json:"examples" db:"examples"`
	ExposureCount int  `json:"exposure_count" db:"exposure_count"`
	Status      string `json:"status" db:"status"`
	ReviewState
	CreatedAt string `json:"created_at" db:"created_at"`
}

// OptionList decodes the stored answer options.
func (g *GrammarPattern) OptionList() []string {
	var out []string
	if err := json.Unmarshal([]byte(g.Options), &out); err != nil {
		return nil
	}
	return out
}

// ExampleList decodes the stored usage examples.
func (g *GrammarPattern) ExampleList() []string {
	var out []string
	if err := json.Unmarshal([]byte(g.Examples), &out); err != nil {
		return nil
	}
	return out
}
