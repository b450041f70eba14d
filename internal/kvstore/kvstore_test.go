package kvstore

import (
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMemory(t *testing.T) {
	db := testDB(t)
	if db.Path != ":memory:" {
		t.Errorf("Path = %q, want :memory:", db.Path)
	}

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 1 {
		t.Errorf("SchemaVersion = %d, want 1", v)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	db := testDB(t)

	if _, ok, err := db.GetString("missing"); err != nil || ok {
		t.Fatalf("GetString(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := db.SetString("snapshot", `{"a":1}`); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	v, ok, err := db.GetString("snapshot")
	if err != nil {
		t.Fatalf("GetString: %v", err)
	}
	if !ok || v != `{"a":1}` {
		t.Errorf("GetString = %q ok=%v, want stored value", v, ok)
	}

	// Overwrite replaces in place.
	if err := db.SetString("snapshot", `{"a":2}`); err != nil {
		t.Fatalf("SetString overwrite: %v", err)
	}
	v, _, _ = db.GetString("snapshot")
	if v != `{"a":2}` {
		t.Errorf("GetString after overwrite = %q, want {\"a\":2}", v)
	}

	if err := db.Remove("snapshot"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := db.GetString("snapshot"); ok {
		t.Error("expected absent after Remove")
	}

	// Removing an absent key is a no-op.
	if err := db.Remove("snapshot"); err != nil {
		t.Errorf("Remove absent: %v", err)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	var s Store = NewMemory()

	if _, ok, _ := s.GetString("k"); ok {
		t.Fatal("expected absent before write")
	}
	if err := s.SetString("k", "v"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	v, ok, _ := s.GetString("k")
	if !ok || v != "v" {
		t.Errorf("GetString = %q ok=%v, want v", v, ok)
	}
	if err := s.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.GetString("k"); ok {
		t.Error("expected absent after Remove")
	}
}
