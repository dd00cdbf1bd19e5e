package models

import "encoding/json"

// DailyMission is one day's practice assignment for a profile
type DailyMission struct {
	ID           int64    `json:"id" db:"id"`
	ProfileID    int64    `json:"profile_id" db:"profile_id"`
	MissionDate  string   `json:"mission_date" db:"mission_date"` // YYYY-MM-DD
	MissionType  string   `json:"mission_type" db:"mission_type"` // speaking / writing
	Title        string   `json:"title" db:"title"`
	Prompt       string   `json:"prompt" db:"prompt"`
	Constraints  string   `json:"constraints" db:"constraints"` // JSON-encoded list
	UserResponse string   `json:"user_response" db:"user_response"`
	Feedback     string   `json:"feedback" db:"feedback"`
	Score        *float64 `json:"score" db:"score"`
	Completed    bool     `json:"completed" db:"completed"`
	CreatedAt    string   `json:"created_at" db:"created_at"`
}

// ConstraintList decodes the stored mission constraints.
func (m *DailyMission) ConstraintList() []string {
	var out []string
	if err := json.Unmarshal([]byte(m.Constraints), &out); err != nil {
		return nil
	}
	return out
}
