package feature

import (
	"errors"
	"testing"
	"time"

	"github.com/lazypower/cadence/internal/activity"
)

func TestRegistryComputeUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Compute("nope", activity.UserActivity{}, testNow)
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("err = %v, want ErrNotRegistered", err)
	}
}

func TestRegistryReRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register("f", func(activity.UserActivity, time.Time) float64 { return 1 })
	r.Register("f", func(activity.UserActivity, time.Time) float64 { return 2 })

	got, err := r.Compute("f", activity.UserActivity{}, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got != 2 {
		t.Errorf("Compute = %v, want 2", got)
	}
}

func TestRegistryPipelineLastStepWins(t *testing.T) {
	// Multi-step pipelines overwrite rather than fold: every step runs,
	// but only the last step's result is returned.
	r := NewRegistry()
	ran := []string{}
	r.Register("f",
		func(activity.UserActivity, time.Time) float64 { ran = append(ran, "first"); return 10 },
		func(activity.UserActivity, time.Time) float64 { ran = append(ran, "second"); return 2 },
	)

	got, err := r.Compute("f", activity.UserActivity{}, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got != 2 {
		t.Errorf("Compute = %v, want last step's 2", got)
	}
	if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
		t.Errorf("steps ran = %v, want both in order", ran)
	}
}

func TestRegistrySamplesClockOnce(t *testing.T) {
	r := NewRegistry()
	var seen []time.Time
	r.Register("f",
		func(_ activity.UserActivity, now time.Time) float64 { seen = append(seen, now); return 0 },
		func(_ activity.UserActivity, now time.Time) float64 { seen = append(seen, now); return 0 },
	)

	if _, err := r.Compute("f", activity.UserActivity{}, testNow); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !seen[0].Equal(testNow) || !seen[1].Equal(testNow) {
		t.Errorf("steps saw %v, want the single sampled instant %v", seen, testNow)
	}
}
