package benchmarks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var steps = []string{"GITHUB_CREATE", "GITHUB_PUSHED", "GITHUB_WEBHOOK"}

func TestTotalEstimate(t *testing.T) {
	assert.Equal(t, 17*time.Second, TotalEstimate(steps))
	assert.Equal(t, time.Duration(0), TotalEstimate([]string{"unknown"}))
}

func TestEstimateRemaining_FirstStep(t *testing.T) {
	got := EstimateRemaining(steps, "GITHUB_CREATE", time.Second, nil)
	// 2s left of create, then 10s push and 4s webhook
	assert.Equal(t, 16*time.Second, got)
}

func TestEstimateRemaining_UnknownStep(t *testing.T) {
	assert.Equal(t, time.Duration(0), EstimateRemaining(steps, "OTHER", time.Second, nil))
}

func TestEstimateRemaining_SkipsCompleted(t *testing.T) {
	completed := map[string]time.Duration{"GITHUB_WEBHOOK": 4 * time.Second}
	got := EstimateRemainingWithScale(steps, "GITHUB_PUSHED", 5*time.Second, completed, 1.0)
	assert.Equal(t, 5*time.Second, got)
}

func TestEstimateRemaining_Overrun(t *testing.T) {
	got := EstimateRemainingWithScale(steps, "GITHUB_WEBHOOK", time.Minute, nil, 1.0)
	assert.Equal(t, time.Duration(0), got)
}

func TestPerformanceScale(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		elapsed   time.Duration
		completed map[string]time.Duration
		want      float64
	}{
		{"no history", "GITHUB_CREATE", 0, nil, 1.0},
		{"slow create", "GITHUB_PUSHED", 0, map[string]time.Duration{"GITHUB_CREATE": 6 * time.Second}, 2.0},
		{"clamped low", "GITHUB_PUSHED", 0, map[string]time.Duration{"GITHUB_CREATE": 100 * time.Millisecond}, 0.5},
		{"clamped high", "GITHUB_PUSHED", 0, map[string]time.Duration{"GITHUB_CREATE": time.Minute}, 5.0},
		{"overrunning current", "GITHUB_PUSHED", 15 * time.Second, nil, 1.5},
		{"unknown steps ignored", "OTHER", time.Hour, map[string]time.Duration{"OTHER": time.Hour}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PerformanceScale(tt.current, tt.elapsed, tt.completed), 0.001)
		})
	}
}
