package models

import "encoding/json"

// Profile represents a learner profile. Exactly one profile is active at a
// time; all SRS tables are scoped by profile id.
type Profile struct {
	ID                 int64   `json:"id" db:"id"`
	Name               string  `json:"name" db:"name"`
	Level              string  `json:"level" db:"level"` // CEFR level, e.g. B2, C1
	WeeklyGoal         int     `json:"weekly_goal" db:"weekly_goal"`
	PlacementCompleted bool    `json:"placement_completed" db:"placement_completed"`
	PlacementScore     *float64 `json:"placement_score" db:"placement_score"`
	FocusAreas         string  `json:"focus_areas" db:"focus_areas"` // JSON-encoded list
	DialectPreference  string  `json:"dialect_preference" db:"dialect_preference"`
	GradingMode        string  `json:"grading_mode" db:"grading_mode"` // strict / balanced / lenient
	AccentTolerance    bool    `json:"accent_tolerance" db:"accent_tolerance"`
	IsActive           bool    `json:"is_active" db:"is_active"`
	CreatedAt          string  `json:"created_at" db:"created_at"`
	UpdatedAt          string  `json:"updated_at" db:"updated_at"`
}

// FocusAreaList decodes the stored focus areas.
func (p *Profile) FocusAreaList() []string {
	var out []string
	if err := json.Unmarshal([]byte(p.FocusAreas), &out); err != nil {
		return nil
	}
	return out
}
