package srs

import (
	"math"

	"github.com/apprendo/revise/internal/domain"
)

// estimateQuality converts one exercise attempt into a normalized quality
// score in [0, 5], in half-point steps.
//
// The score rewards engagement over raw correctness: an incorrect answer
// still earns credit, more when the student worked without leaning on hints.
// Components:
//
//   - correctness: +3 if correct; otherwise +1 with at most one hint, +0.5
//     with more (never 0)
//   - pacing: +1 when time spent is between half and twice the expected time
//     for the difficulty, +0.5 up to three times
//   - autonomy: +1 with no hints, +0.5 with at most two
//   - confidence: up to +0.5 scaled from an optional 0-5 self-assessment
//
// Malformed numeric input is clamped, never rejected. The total is clamped to
// [0, 5] and rounded half-up to the nearest 0.5.
func estimateQuality(attempt domain.ExerciseAttempt, params *Params) float64 {
	score := 0.0

	hints := attempt.HintsUsed
	if hints < 0 {
		hints = 0
	}

	if attempt.IsCorrect {
		score += 3
	} else if hints <= 1 {
		score += 1
	} else {
		score += 0.5
	}

	timeSpent := attempt.TimeSpentSeconds
	if timeSpent < 0 || math.IsNaN(timeSpent) {
		timeSpent = 0
	}

	expected := params.expectedSecondsFor(attempt.Difficulty)
	ratio := timeSpent / expected
	switch {
	case ratio >= 0.5 && ratio <= 2.0:
		score += 1
	case ratio > 2.0 && ratio <= 3.0:
		score += 0.5
	}

	switch {
	case hints == 0:
		score += 1
	case hints <= 2:
		score += 0.5
	}

	if attempt.Confidence != nil {
		confidence := *attempt.Confidence
		if confidence < 0 || math.IsNaN(confidence) {
			confidence = 0
		}
		if confidence > 5 {
			confidence = 5
		}
		score += confidence / 5 * 0.5
	}

	if score < 0 {
		score = 0
	}
	if score > 5 {
		score = 5
	}

	return roundHalfStep(score)
}

// roundHalfStep rounds to the nearest 0.5, half-up. Half-up matters: the
// platform's published score tables use it, and banker's rounding would
// drift from them at exact quarter points.
func roundHalfStep(x float64) float64 {
	return math.Floor(x*2+0.5) / 2
}

// round2 rounds to two decimal places, half-up.
func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
