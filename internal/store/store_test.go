package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/kolam/internal/pattern"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	rec := pattern.Simulate("kolam.png", time.Now())

	id, err := st.Save(&rec, "kolam.png", []byte("fake image bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty id")
	}

	loaded, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != rec.ID {
		t.Errorf("expected pattern id %s, got %s", rec.ID, loaded.ID)
	}
	if len(loaded.Paths) != len(rec.Paths) {
		t.Errorf("expected %d paths, got %d", len(rec.Paths), len(loaded.Paths))
	}

	img, err := os.ReadFile(filepath.Join(tmpDir, id, "kolam.png"))
	if err != nil {
		t.Fatalf("stored image missing: %v", err)
	}
	if string(img) != "fake image bytes" {
		t.Error("stored image content mismatch")
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	entries, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty listing, got %d entries", len(entries))
	}

	rec := pattern.Simulate("a.png", time.Now())
	first, err := st.Save(&rec, "a.png", nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	time.Sleep(time.Millisecond)
	second, err := st.Save(&rec, "b.png", nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != second || entries[1].ID != first {
		t.Errorf("expected newest first, got %s then %s", entries[0].ID, entries[1].ID)
	}
}

func TestStoreListSkipsGarbage(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "not-a-record"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected garbage to be skipped, got %d entries", len(entries))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing record")
	}
}
