// Package alignment scores how closely tracked time matches the expected
// distribution derived from node bounding boxes. All functions are pure;
// the engine supplies aggregated times and targets.
package alignment

import "math"

// FeedbackMinTrackedSeconds is the total tracked time below which alignment
// feedback stays suppressed, to avoid reacting to near-zero-data noise.
const FeedbackMinTrackedSeconds = 300

// RootTimes pairs a main node's aggregated actual seconds with its
// size-derived target seconds.
type RootTimes struct {
	Actual float64
	Target float64
}

// Overall computes the cross-root alignment percentage: total actual over
// total target, capped at 100. A zero target sum scores 0.
func Overall(roots []RootTimes) int {
	var actual, target float64
	for _, r := range roots {
		actual += r.Actual
		target += r.Target
	}
	if target == 0 {
		return 0
	}
	pct := int(math.Round(actual / target * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Internal computes alignment within one root's direct children as distance
// of the actual/target ratio from 1, so both under- and over-working a
// subtree lower the score. A root with no children is vacuously aligned.
func Internal(children []RootTimes) int {
	if len(children) == 0 {
		return 100
	}
	var actual, target float64
	for _, c := range children {
		actual += c.Actual
		target += c.Target
	}
	if target == 0 {
		return 100
	}
	ratio := actual / target
	score := 100 - int(math.Round(math.Abs(ratio-1)*100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// StarRating buckets an alignment percentage into zero to five stars.
func StarRating(score int) int {
	switch {
	case score >= 90:
		return 5
	case score >= 80:
		return 4
	case score >= 70:
		return 3
	case score >= 60:
		return 2
	case score >= 50:
		return 1
	default:
		return 0
	}
}

// FeedbackEligible reports whether enough time has been tracked overall for
// alignment feedback (achievements and penalties) to fire.
func FeedbackEligible(totalTrackedSeconds int64) bool {
	return totalTrackedSeconds > FeedbackMinTrackedSeconds
}
