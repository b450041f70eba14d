package feature

import (
	"encoding/json"
	"time"
)

// Snapshot wire format: one JSON object mapping cache keys to entries,
// stored as a single string in the key-value adapter. TTLs travel as
// whole seconds and timestamps as unix milliseconds.
type snapshotEntry struct {
	Value    float64          `json:"value"`
	Metadata snapshotMetadata `json:"metadata"`
}

type snapshotMetadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	ComputedAt   int64    `json:"computedAt"`
	TTLSeconds   int64    `json:"ttlSeconds"`
	Dependencies []string `json:"dependencies,omitempty"`
}

func encodeSnapshot(entries map[string]Cached) (string, error) {
	out := make(map[string]snapshotEntry, len(entries))
	for k, e := range entries {
		out[k] = snapshotEntry{
			Value: e.Value,
			Metadata: snapshotMetadata{
				Name:         e.Meta.Name,
				Version:      e.Meta.Version,
				ComputedAt:   e.Meta.ComputedAt.UnixMilli(),
				TTLSeconds:   int64(e.Meta.TTL / time.Second),
				Dependencies: e.Meta.Dependencies,
			},
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeSnapshot parses a persisted snapshot. Individually corrupt
// entries are skipped (counted, not fatal); entries already expired at
// the given instant are dropped before admission. A top-level parse
// failure is the only hard error.
func decodeSnapshot(data string, now time.Time) (entries map[string]Cached, skipped int, err error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, 0, err
	}

	entries = make(map[string]Cached, len(raw))
	for k, msg := range raw {
		var e snapshotEntry
		if err := json.Unmarshal(msg, &e); err != nil {
			skipped++
			continue
		}
		meta := Metadata{
			Name:         e.Metadata.Name,
			Version:      e.Metadata.Version,
			ComputedAt:   time.UnixMilli(e.Metadata.ComputedAt),
			TTL:          time.Duration(e.Metadata.TTLSeconds) * time.Second,
			Dependencies: e.Metadata.Dependencies,
		}
		if meta.Expired(now) {
			skipped++
			continue
		}
		entries[k] = Cached{Value: e.Value, Meta: meta}
	}
	return entries, skipped, nil
}
