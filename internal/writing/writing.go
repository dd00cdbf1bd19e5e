// Package writing grades free-form learner text: mistake findings,
// register scoring and constraint checks used by the writing coach, the
// daily missions and the conversation roleplay.
package writing

import (
	"fmt"
	"strings"

	"github.com/eugendimant/vivalingo/internal/content"
	"github.com/eugendimant/vivalingo/internal/mistakes"
)

// Feedback is the full analysis of a writing submission
type Feedback struct {
	Findings    []mistakes.Finding `json:"findings"`
	Corrected   string             `json:"corrected"`
	Register    map[string]int     `json:"register"`
	Strengths   []string           `json:"strengths"`
	Suggestions []string           `json:"suggestions"`
	WordCount   int                `json:"word_count"`
}

// ConstraintResult reports whether one constraint was met
type ConstraintResult struct {
	Met      bool     `json:"met"`
	Found    []string `json:"found,omitempty"`
	Count    int      `json:"count"`
	Required int      `json:"required,omitempty"`
	Note     string   `json:"note,omitempty"`
}

// Analyzer bundles the detector so the rule tables compile once
type Analyzer struct {
	detector *mistakes.Detector
}

// NewAnalyzer creates a writing analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{detector: mistakes.NewDetector()}
}

// Analyze checks the text against the mistake rules and scores its register
// against targetRegister. An empty target defaults to formal.
func (a *Analyzer) Analyze(text, targetRegister string) Feedback {
	if targetRegister == "" {
		targetRegister = "formal"
	}
	findings := a.detector.Check(text)

	fb := Feedback{
		Findings:  findings,
		Corrected: mistakes.ApplyCorrections(text, findings),
		Register:  ScoreRegister(text, targetRegister),
		WordCount: len(strings.Fields(text)),
	}

	if len(findings) == 0 {
		fb.Strengths = append(fb.Strengths, "Sin errores detectados por las reglas.")
	}
	if countMarkers(strings.ToLower(text), content.RegisterMarkers["hedging"]) > 0 {
		fb.Strengths = append(fb.Strengths, "Buen uso de mitigadores.")
	}

	seen := map[string]bool{}
	for _, f := range findings {
		if seen[f.Tag] {
			continue
		}
		seen[f.Tag] = true
		fb.Suggestions = append(fb.Suggestions, fmt.Sprintf("Repasa los errores de tipo %s: %s", f.Tag, f.Explanation))
	}

	return fb
}

// Detector exposes the underlying rule matcher for callers that only need
// findings.
func (a *Analyzer) Detector() *mistakes.Detector {
	return a.detector
}

// ScoreRegister counts register markers and normalizes each dimension to a
// 1-5 scale.
func ScoreRegister(text, targetRegister string) map[string]int {
	lower := strings.ToLower(text)
	scores := map[string]int{
		"politeness":   countMarkers(lower, content.RegisterMarkers["politeness"]),
		"hedging":      countMarkers(lower, content.RegisterMarkers["hedging"]),
		"directness":   countMarkers(lower, content.RegisterMarkers["direct"]),
		"idiomaticity": countMarkers(lower, content.RegisterMarkers["idiomatic"]),
	}

	switch targetRegister {
	case "formal":
		scores["audience_fit"] = scores["politeness"]*2 + scores["hedging"] - scores["directness"]
	case "informal":
		scores["audience_fit"] = countMarkers(lower, content.RegisterMarkers["whatsapp"])
	case "academic":
		scores["audience_fit"] = countMarkers(lower, content.RegisterMarkers["academic"])
	default:
		scores["audience_fit"] = 0
	}

	for k, v := range scores {
		v += 2
		if v > 5 {
			v = 5
		}
		if v < 1 {
			v = 1
		}
		scores[k] = v
	}
	return scores
}

// AnalyzeConstraints checks the text against a list of natural-language
// constraints. Constraints are recognized by keyword; anything unrecognized
// is marked met with a manual-review note.
func AnalyzeConstraints(text string, constraints []string) map[string]ConstraintResult {
	results := make(map[string]ConstraintResult, len(constraints))
	lower := strings.ToLower(text)

	for _, constraint := range constraints {
		cl := strings.ToLower(constraint)

		switch {
		case strings.Contains(cl, "mitigador") || strings.Contains(cl, "suavizador") || strings.Contains(cl, "mitigacion"):
			found := markersIn(lower, content.RegisterMarkers["hedging"])
			required := 1
			if strings.Contains(cl, "2") {
				required = 2
			}
			results[constraint] = ConstraintResult{
				Met:      len(found) >= required,
				Found:    found,
				Count:    len(found),
				Required: required,
			}
		case strings.Contains(cl, "concesi") || strings.Contains(cl, "aunque"):
			found := markersIn(lower, content.ConcessiveMarkers)
			results[constraint] = ConstraintResult{Met: len(found) > 0, Found: found, Count: len(found)}
		case strings.Contains(cl, "verbo preciso") || strings.Contains(cl, "verbos del banco") || strings.Contains(cl, "verbo de negociacion"):
			found := markersIn(lower, content.PreciseVerbs)
			results[constraint] = ConstraintResult{Met: len(found) > 0, Found: found, Count: len(found)}
		case strings.Contains(cl, "usted") || strings.Contains(cl, "formal"):
			found := markersIn(lower, content.FormalMarkers)
			results[constraint] = ConstraintResult{Met: len(found) > 0, Found: found, Count: len(found)}
		case strings.Contains(cl, "calco") || strings.Contains(cl, "ingles"):
			found := markersIn(lower, content.EnglishCalques)
			results[constraint] = ConstraintResult{Met: len(found) == 0, Found: found, Count: len(found)}
		default:
			results[constraint] = ConstraintResult{Met: true, Note: "Revision manual recomendada"}
		}
	}

	return results
}

// DetectLanguage flags turns written largely in English. Returns
// "spanish", "english" or "mixed" with a rough confidence.
func DetectLanguage(text string) (string, float64) {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return "spanish", 0
	}

	english := 0
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?¡¿\"'()")
		for _, stop := range content.CommonEnglishWords {
			if w == stop {
				english++
				break
			}
		}
	}

	ratio := float64(english) / float64(len(words))
	switch {
	case ratio > 0.4:
		return "english", ratio
	case ratio > 0.15:
		return "mixed", ratio
	default:
		return "spanish", ratio
	}
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			n++
		}
	}
	return n
}

func markersIn(lower string, markers []string) []string {
	var found []string
	for _, m := range markers {
		if strings.Contains(lower, m) {
			found = append(found, m)
		}
	}
	return found
}
