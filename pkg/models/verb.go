package models

// VerbConjugation is one conjugated form tracked by the SRS. Each
// (infinitive, tense, person) triple is its own reviewable item, so a
// learner can master "hablar / presente / yo" independently of the
// subjunctive forms.
type VerbConjugation struct {
	ID            int64  `json:"id" db:"id"`
	ProfileID     int64  `json:"profile_id" db:"profile_id"`
	Infinitive    string `json:"infinitive" db:"infinitive"`
	Meaning       string `json:"meaning" db:"meaning"`
	Tense         string `json:"tense" db:"tense"`   // presente / indefinido / subjuntivo ...
	Person        string `json:"person" db:"person"` // yo / tu / el / nosotros / ellos
	Form          string `json:"form" db:"form"`
	Irregular     bool   `json:"irregular" db:"irregular"`
	ExposureCount int    `json:"exposure_count" db:"exposure_count"`
	Status        string `json:"status" db:"status"`
	ReviewState
	CreatedAt string `json:"created_at" db:"created_at"`
}
