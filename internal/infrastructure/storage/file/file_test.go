package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New(filepath.Join(t.TempDir(), "nested", "storage.json"))

	if _, ok, err := s.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected absent key on missing file, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened := New(s.Path())
	v, ok, err := reopened.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("get after reopen = %q, %v, %v", v, ok, err)
	}

	if err := reopened.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := reopened.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatal("expected key to be gone")
	}
}

func TestStore_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".medapp")
	s := New(filepath.Join(dir, "storage.json"))
	if err := s.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != filePerm {
		t.Errorf("file perm = %o, want %o", perm, filePerm)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the storage file, found %d entries", len(entries))
	}
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := New(path).Get(context.Background(), "k"); err == nil {
		t.Fatal("expected decode error")
	}
}
