package grading

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mode controls how tolerant answer comparison is
type Mode string

const (
	// ModeStrict requires the exact answer; accent slips are flagged but
	// not accepted
	ModeStrict Mode = "strict"
	// ModeBalanced ignores case and surrounding punctuation
	ModeBalanced Mode = "balanced"
	// ModeLenient additionally ignores accents and single-character typos
	ModeLenient Mode = "lenient"
)

// Verdict classifies a submitted answer
type Verdict int

const (
	Incorrect Verdict = iota
	// Close means wrong but near: accents only, or one typo in lenient mode
	Close
	Correct
)

// Result describes how a submitted answer compared against the expected one
type Result struct {
	Verdict    Verdict
	AccentOnly bool // the only difference was accent marks
	Distance   int  // edit distance between the folded forms
}

// Quality maps the verdict onto the 0-5 SM-2 rating scale the session
// runner feeds into the scheduler: correct recalls rate 4, near misses 2,
// wrong answers 1.
func (r Result) Quality() int {
	switch r.Verdict {
	case Correct:
		return 4
	case Close:
		return 2
	default:
		return 1
	}
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips accent marks, so "Qué" folds to "que".
func Fold(s string) string {
	out, _, err := transform.String(accentStripper, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Compare checks a free-text answer against the expected one under the
// given grading mode.
func Compare(answer, expected string, mode Mode) Result {
	a := normalize(answer)
	e := normalize(expected)

	if a == e {
		return Result{Verdict: Correct}
	}

	caseEqual := strings.EqualFold(a, e)
	foldedA, foldedE := Fold(a), Fold(e)
	accentOnly := !caseEqual && foldedA == foldedE
	dist := levenshtein(foldedA, foldedE)

	switch mode {
	case ModeStrict:
		if accentOnly {
			return Result{Verdict: Close, AccentOnly: true, Distance: dist}
		}
		if caseEqual {
			return Result{Verdict: Close, Distance: dist}
		}
		return Result{Verdict: Incorrect, Distance: dist}
	case ModeLenient:
		if caseEqual || foldedA == foldedE {
			return Result{Verdict: Correct, AccentOnly: accentOnly, Distance: dist}
		}
		if dist <= 1 {
			return Result{Verdict: Close, Distance: dist}
		}
		return Result{Verdict: Incorrect, Distance: dist}
	default: // balanced
		if caseEqual {
			return Result{Verdict: Correct, Distance: dist}
		}
		if accentOnly {
			return Result{Verdict: Close, AccentOnly: true, Distance: dist}
		}
		return Result{Verdict: Incorrect, Distance: dist}
	}
}

// normalize trims surrounding space and terminal punctuation and collapses
// internal whitespace.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!?¡¿ ")
	return strings.Join(strings.Fields(s), " ")
}

// levenshtein computes the edit distance between two strings by rune.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
