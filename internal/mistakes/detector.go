// Package mistakes implements the rule-based mistake detector: an ordered
// table of literal and regex patterns evaluated against learner text.
package mistakes

import (
	"regexp"
	"sort"
	"strings"

	"github.com/eugendimant/vivalingo/internal/content"
)

// Finding is one detected mistake with its location in the original text
type Finding struct {
	Original    string   `json:"original"`
	Correction  string   `json:"correction"`
	Explanation string   `json:"explanation"`
	Tag         string   `json:"tag"`
	Examples    []string `json:"examples,omitempty"`
	Position    int      `json:"position"`
}

type compiledRule struct {
	rule   content.MistakeRule
	re     *regexp.Regexp // nil for literal rules
	unless *regexp.Regexp
}

// Detector matches learner text against the built-in rule tables
type Detector struct {
	rules []compiledRule
}

// NewDetector compiles the rule tables. Rules with invalid regexes are
// skipped rather than failing the whole detector.
func NewDetector() *Detector {
	d := &Detector{}
	for _, r := range append(append([]content.MistakeRule{}, content.CommonMistakes...), content.GrammarRules...) {
		cr := compiledRule{rule: r}
		if r.Regex {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				continue
			}
			cr.re = re
		}
		if r.Unless != "" {
			if unless, err := regexp.Compile(r.Unless); err == nil {
				cr.unless = unless
			}
		}
		d.rules = append(d.rules, cr)
	}
	return d
}

// Check returns every rule match in the text, ordered by position. Matching
// is case-insensitive; positions index into the original text.
func (d *Detector) Check(text string) []Finding {
	lower := strings.ToLower(text)
	// Case folding can change byte length (e.g. U+0130). When it does,
	// positions computed on lower no longer index text, so slice from
	// lower instead.
	source := text
	if len(lower) != len(text) {
		source = lower
	}
	var findings []Finding

	for _, cr := range d.rules {
		var pos, length int
		if cr.re != nil {
			loc := cr.re.FindStringIndex(lower)
			if loc == nil {
				continue
			}
			pos, length = loc[0], loc[1]-loc[0]
		} else {
			p := strings.Index(lower, strings.ToLower(cr.rule.Pattern))
			if p < 0 {
				continue
			}
			pos, length = p, len(cr.rule.Pattern)
		}

		if cr.unless != nil && cr.unless.MatchString(lower[pos+length:]) {
			continue
		}

		findings = append(findings, Finding{
			Original:    source[pos : pos+length],
			Correction:  cr.rule.Correction,
			Explanation: cr.rule.Explanation,
			Tag:         cr.rule.Tag,
			Examples:    cr.rule.Examples,
			Position:    pos,
		})
	}

	sort.Slice(findings, func(i, j int) bool { return findings[i].Position < findings[j].Position })
	return findings
}

// ApplyCorrections splices the corrections into the text, back to front so
// earlier positions stay valid.
func ApplyCorrections(text string, findings []Finding) string {
	if len(findings) == 0 {
		return text
	}

	ordered := make([]Finding, len(findings))
	copy(ordered, findings)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position > ordered[j].Position })

	corrected := text
	for _, f := range ordered {
		if f.Position < 0 || f.Position+len(f.Original) > len(corrected) {
			continue
		}
		corrected = corrected[:f.Position] + f.Correction + corrected[f.Position+len(f.Original):]
	}
	return corrected
}
