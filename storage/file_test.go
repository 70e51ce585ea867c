package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "users.json"))
}

func TestLoadMissingFileYieldsEmpty(t *testing.T) {
	s := tempStore(t)
	for i := 0; i < 2; i++ {
		data, err := s.Load()
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if len(data) != 0 {
			t.Fatalf("load %d: expected empty map, got %v", i, data)
		}
	}
}

func TestLoadCorruptFileYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	s := NewFileStore(path)
	data, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty map from corrupt file, got %v", data)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	want := map[string]Record{
		"100": {Correct: 7, LockedUntil: 0, Verified: false},
		"200": {Correct: -3, LockedUntil: 1700000000, Verified: false},
		"300": {Correct: 15, LockedUntil: 0, Verified: true},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, want)
	}
}

func TestGetPut(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t)

	if _, ok, err := s.Get(ctx, 42); err != nil || ok {
		t.Fatalf("get on empty store: ok=%v err=%v", ok, err)
	}

	rec := Record{Correct: 11}
	if err := s.Put(ctx, 42, rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.Get(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != rec {
		t.Fatalf("get after put: ok=%v got=%+v want %+v", ok, got, rec)
	}

	rec.Verified = true
	if err := s.Put(ctx, 42, rec); err != nil {
		t.Fatalf("put update: %v", err)
	}
	got, ok, _ = s.Get(ctx, 42)
	if !ok || !got.Verified {
		t.Fatalf("update not persisted: ok=%v got=%+v", ok, got)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := tempStore(t)
	if err := s.Put(ctx, 1, Record{Correct: 5}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, 2, Record{Verified: true}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, 3, Record{LockedUntil: 1 << 40}); err != nil {
		t.Fatalf("put: %v", err)
	}
	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 3 || st.Verified != 1 || st.Locked != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
