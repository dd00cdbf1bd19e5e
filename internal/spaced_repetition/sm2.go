package spaced_repetition

import "time"

// Scheduling constants shared by every reviewable kind
const (
	// InitialEase is the ease factor assigned to newly created items
	InitialEase = 2.5
	// MinEase is the floor applied to the ease factor on every update
	MinEase = 1.3
	// InitialInterval is the interval in days assigned to newly created items
	InitialInterval = 1
	// PassThreshold is the lowest quality rating counted as a successful recall
	PassThreshold = 3
)

// Quality rating scale for recall quality, 0-5
const (
	// Complete blackout, unable to recall
	QualityBlackout = 0
	// Incorrect response, remembered upon seeing the correct answer
	QualityIncorrect = 1
	// Incorrect response but close (e.g. only accents wrong)
	QualityClose = 2
	// Correct response with significant effort
	QualityDifficult = 3
	// Correct response after some hesitation
	QualityGood = 4
	// Perfect response with no hesitation
	QualityPerfect = 5
)

// Grade applies the SM-2 update rule to the current scheduling state and
// returns the next ease factor and interval in days.
//
// Quality outside 0-5 is clamped before entering the formula; an unchecked
// rating would otherwise distort the ease arithmetic. On a failed recall
// (quality < 3) the interval resets to 1 and the ease factor is left as is.
func Grade(quality int, ease float64, interval int) (float64, int) {
	if quality < 0 {
		quality = 0
	}
	if quality > 5 {
		quality = 5
	}

	newEase := ease
	var newInterval int

	if quality >= PassThreshold {
		if interval <= 1 {
			newInterval = 6
		} else {
			newInterval = int(float64(interval) * ease)
		}
		newEase = ease + (0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02))
	} else {
		newInterval = 1
	}

	if newEase < MinEase {
		newEase = MinEase
	}
	if newInterval < 1 {
		newInterval = 1
	}

	return newEase, newInterval
}

// NextDue returns the review date that follows an interval of the given
// number of days, formatted YYYY-MM-DD.
func NextDue(from time.Time, intervalDays int) string {
	return from.AddDate(0, 0, intervalDays).Format("2006-01-02")
}
