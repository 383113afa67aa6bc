// Package progress holds the indicator formulas that turn a raw source
// metric into a bounded 0-100 progress percentage. All functions are pure
// and total: degenerate inputs (target <= 0, division by zero) yield 0,
// and every result is clamped to [0, 100].
package progress

import "math"

// Clamp bounds a raw percentage to [0, 100] and rounds to the nearest
// integer.
func Clamp(pct float64) int {
	if math.IsNaN(pct) || pct <= 0 {
		return 0
	}
	if pct >= 100 {
		return 100
	}
	return int(math.Round(pct))
}

// Weight computes directional weight progress. When an initial baseline is
// present and differs from the target, progress measures the distance
// covered from initial toward target, for both losing (initial > target)
// and gaining (initial < target) goals. Without a usable baseline it falls
// back to current/target.
func Weight(current, target float64, initial *float64) int {
	if initial != nil && *initial != target {
		if *initial > target {
			return Clamp((*initial - current) / (*initial - target) * 100)
		}
		return Clamp((current - *initial) / (target - *initial) * 100)
	}
	return ratio(current, target)
}

// Frequency computes progress for "n times per week" goals from the count
// of qualifying events in the trailing 7-day window.
func Frequency(count int, target float64) int {
	return ratio(float64(count), target)
}

// Percentage passes through a source-reported 0-100 value, clamped. Used
// for every linked-progress source (study tracks, roadmap steps); the
// owning module is trusted to report the percentage.
func Percentage(value float64) int {
	return Clamp(value)
}

// Monetary computes progress of an aggregated amount toward a target
// amount.
func Monetary(amount, target float64) int {
	return ratio(amount, target)
}

func ratio(value, target float64) int {
	if target <= 0 {
		return 0
	}
	return Clamp(value / target * 100)
}
