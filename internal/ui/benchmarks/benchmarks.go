// Package benchmarks provides timing estimates for provisioning steps.
package benchmarks

import "time"

// DefaultTimings are typical step durations against github.com (seconds).
var DefaultTimings = map[string]int{
	"GITHUB_CREATE":  3,
	"GITHUB_PUSHED":  10,
	"GITHUB_WEBHOOK": 4,
}

// EstimateRemaining calculates the estimated time remaining for steps,
// given the step currently running, its elapsed time, and the durations of
// the completed steps.
func EstimateRemaining(steps []string, current string, elapsed time.Duration, completed map[string]time.Duration) time.Duration {
	return EstimateRemainingWithScale(steps, current, elapsed, completed, PerformanceScale(current, elapsed, completed))
}

// EstimateRemainingWithScale calculates ETA while applying a performance scale factor.
func EstimateRemainingWithScale(
	steps []string,
	current string,
	elapsed time.Duration,
	completed map[string]time.Duration,
	scale float64,
) time.Duration {
	currentIdx := -1
	for i, s := range steps {
		if s == current {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return 0
	}

	var remaining time.Duration

	// For the current step: max(0, expected - elapsed)
	if expected, ok := expectedDuration(current); ok {
		expected = time.Duration(float64(expected) * scale)
		if expected > elapsed {
			remaining += expected - elapsed
		}
	}

	for _, s := range steps[currentIdx+1:] {
		if _, done := completed[s]; done {
			continue
		}
		if expected, ok := expectedDuration(s); ok {
			remaining += time.Duration(float64(expected) * scale)
		}
	}

	return remaining
}

// PerformanceScale derives a speed multiplier from observed-vs-expected durations.
// Example: expected 10s, observed 15s => scale=1.5 (future ETAs are stretched by 50%).
func PerformanceScale(current string, elapsed time.Duration, completed map[string]time.Duration) float64 {
	var expectedTotal, actualTotal time.Duration

	for step, actual := range completed {
		expected, ok := expectedDuration(step)
		if !ok {
			continue
		}
		expectedTotal += expected
		actualTotal += actual
	}

	// An overrunning current step counts immediately so the ETA adapts quickly.
	if expected, ok := expectedDuration(current); ok && elapsed > expected {
		expectedTotal += expected
		actualTotal += elapsed
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.5 {
		return 0.5
	}
	if scale > 5.0 {
		return 5.0
	}
	return scale
}

// TotalEstimate returns the total estimated duration of steps.
func TotalEstimate(steps []string) time.Duration {
	var total time.Duration
	for _, s := range steps {
		if d, ok := expectedDuration(s); ok {
			total += d
		}
	}
	return total
}

func expectedDuration(step string) (time.Duration, bool) {
	secs, ok := DefaultTimings[step]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
