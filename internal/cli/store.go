package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lazypower/cadence/internal/activity"
	"github.com/lazypower/cadence/internal/config"
	"github.com/lazypower/cadence/internal/feature"
	"github.com/lazypower/cadence/internal/kvstore"
)

// openStore builds an initialized feature store over the configured
// SQLite database. The caller owns the returned DB handle.
func openStore() (*feature.Store, *kvstore.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = kvstore.DefaultDBPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := kvstore.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	store := feature.New(db,
		feature.WithDefaultTTL(cfg.Features.DefaultTTL()),
		feature.WithSnapshotKey(cfg.Features.SnapshotKey),
	)
	store.Initialize()
	return store, db, nil
}

// loadActivity reads a UserActivity from a JSON file. Event times are
// RFC 3339.
func loadActivity(path string) (activity.UserActivity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return activity.UserActivity{}, fmt.Errorf("read activity: %w", err)
	}
	var a activity.UserActivity
	if err := json.Unmarshal(data, &a); err != nil {
		return activity.UserActivity{}, fmt.Errorf("parse activity: %w", err)
	}
	return a, nil
}
