package models

import "encoding/json"

// VocabItem represents a Spanish vocabulary entry tracked by the SRS
type VocabItem struct {
	ID           int    `json:"id" db:"id"`
	ProfileID    int64  `json:"profile_id" db:"profile_id"`
	Term         string `json:"term" db:"term"`
	Meaning      string `json:"meaning" db:"meaning"`
	Example      string `json:"example" db:"example"`
	Domain       string `json:"domain" db:"domain"`         // topic domain, e.g. Healthcare
	Register     string `json:"register" db:"register"`     // formal / neutral / informal
	PartOfSpeech string `json:"part_of_speech" db:"part_of_speech"`
	Collocations string `json:"collocations" db:"collocations"` // JSON-encoded list
	ExposureCount int   `json:"exposure_count" db:"exposure_count"`
	Status       string `json:"status" db:"status"` // new / learning / mastered
	ReviewState
	CreatedAt string `json:"created_at" db:"created_at"`
}

// CollocationList decodes the stored collocations. Malformed data yields an
// empty list rather than an error.
func (v *VocabItem) CollocationList() []string {
	var out []string
	if err := json.Unmarshal([]byte(v.Collocations), &out); err != nil {
		return nil
	}
	return out
}
