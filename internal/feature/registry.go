package feature

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lazypower/cadence/internal/activity"
)

// ErrNotRegistered is returned when a feature name has no computation
// steps. Callers test for it with errors.Is.
var ErrNotRegistered = errors.New("feature not registered")

// Step is one computation stage: a pure function of the activity and a
// single sampled "now". Determinism comes from the injected instant —
// steps never read the wall clock themselves.
type Step func(a activity.UserActivity, now time.Time) float64

// Registry maps feature names to ordered step pipelines.
//
// Pipeline semantics are overwrite, not fold: each step runs over the
// same activity and its result replaces the running result, so only
// the final step's return value is observable. No built-in registers
// more than one step; whether multi-step composition was ever meant to
// accumulate is an open question, and the overwrite behavior is kept
// literally until that is settled.
type Registry struct {
	mu    sync.RWMutex
	steps map[string][]Step
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{steps: make(map[string][]Step)}
}

// Register binds an ordered step pipeline to a name. Re-registering a
// name replaces its pipeline.
func (r *Registry) Register(name string, steps ...Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[name] = steps
}

// Registered reports whether the name has a non-empty pipeline.
func (r *Registry) Registered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps[name]) > 0
}

// Names returns the registered feature names in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.steps))
	for name := range r.steps {
		out = append(out, name)
	}
	return out
}

// Compute runs the pipeline for name over the activity. Returns an
// error wrapping ErrNotRegistered for unknown names.
func (r *Registry) Compute(name string, a activity.UserActivity, now time.Time) (float64, error) {
	r.mu.RLock()
	steps := r.steps[name]
	r.mu.RUnlock()

	if len(steps) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}

	var result float64
	for _, step := range steps {
		result = step(a, now)
	}
	return result, nil
}
