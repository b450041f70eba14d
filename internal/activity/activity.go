package activity

import (
	"encoding/json"
	"sort"
	"time"
)

// Event is a single timestamped action in a user's history: a goal
// completion, a daily check-in, a social interaction, and so on. The
// Type tag is an open string; unknown tags are valid and score with
// default weights. Events are treated as immutable once created.
type Event struct {
	Type string         `json:"type"`
	Time time.Time      `json:"time"`
	Data map[string]any `json:"data,omitempty"`
}

// UserActivity is the fully materialized input to every feature
// computation: the user's events plus a free-form profile attribute
// map. Callers supply it per call; the store never fetches activity
// itself. Event order is not guaranteed — algorithms that care about
// order sort a copy.
type UserActivity struct {
	UserID  string         `json:"user_id"`
	Events  []Event        `json:"events"`
	Profile map[string]any `json:"profile,omitempty"`
}

// ProfileNumber reads a numeric profile attribute, coercing the loose
// types a decoded JSON map can hold. Missing keys and non-numeric
// values yield the default.
func (a UserActivity) ProfileNumber(key string, def float64) float64 {
	v, ok := a.Profile[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return def
	default:
		return def
	}
}

// EventsOfType returns the events carrying the given type tag, in
// input order.
func (a UserActivity) EventsOfType(t string) []Event {
	var out []Event
	for _, e := range a.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// CountType counts events carrying the given type tag.
func (a UserActivity) CountType(t string) int {
	n := 0
	for _, e := range a.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// SortedAsc returns a copy of the events sorted by ascending
// timestamp. The caller's slice is never reordered.
func SortedAsc(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// SortedDesc returns a copy of the events sorted by descending
// timestamp.
func SortedDesc(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.Slice(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out
}

// Since returns the events strictly newer than the cutoff, in input
// order.
func Since(events []Event, cutoff time.Time) []Event {
	var out []Event
	for _, e := range events {
		if e.Time.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
