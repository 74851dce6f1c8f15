// Package grading maps a compensation ratio to a letter grade and feedback.
package grading

import (
	"fmt"
	"math"
)

// Band is the severity band shown alongside a grade.
type Band string

// Severity bands, most favourable first.
const (
	BandStrongPositive Band = "strong-positive"
	BandPositive       Band = "positive"
	BandMildPositive   Band = "mild-positive"
	BandNeutral        Band = "neutral"
	BandMildNegative   Band = "mild-negative"
	BandNegative       Band = "negative"
	BandStrongNegative Band = "strong-negative"
)

// Result is the outcome of grading one compensation.
type Result struct {
	Grade    string  `json:"grade"`
	Band     Band    `json:"severity_band"`
	Feedback string  `json:"feedback"`
	Ratio    float64 `json:"ratio"`
}

type threshold struct {
	min      float64
	grade    string
	band     Band
	feedback string
}

// thresholds are evaluated top-down; a ratio at or above min matches.
var thresholds = []threshold{
	{1.2, "A+", BandStrongPositive, "Your compensation is significantly above market for your peers."},
	{1.1, "A", BandPositive, "Your compensation is well above market for your peers."},
	{1.0, "B+", BandMildPositive, "Your compensation is above market and fair for your peers."},
	{0.9, "B", BandNeutral, "Your compensation is slightly below market but within a reasonable range."},
	{0.8, "C+", BandMildNegative, "Your compensation is below market; consider negotiating a raise."},
	{0.7, "C", BandNegative, "Your compensation is significantly below market; consider exploring other opportunities."},
}

var lowest = threshold{0, "D", BandStrongNegative, "Your compensation is well below market; we recommend evaluating alternative positions."}

// Grade rates userValue against cohortAverage. cohortAverage must be positive.
func Grade(userValue, cohortAverage float64) (Result, error) {
	if cohortAverage <= 0 || math.IsNaN(cohortAverage) || math.IsInf(cohortAverage, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidAverage, cohortAverage)
	}
	return ForRatio(userValue / cohortAverage), nil
}

// ForRatio grades a precomputed ratio.
func ForRatio(ratio float64) Result {
	t := lowest
	for _, candidate := range thresholds {
		if ratio >= candidate.min {
			t = candidate
			break
		}
	}
	return Result{Grade: t.grade, Band: t.band, Feedback: t.feedback, Ratio: ratio}
}
