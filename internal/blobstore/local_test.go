package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalCreateOpenExists(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	ok, err := store.Exists(ctx, "blob-1")
	if err != nil {
		t.Fatalf("exists before create: %v", err)
	}
	if ok {
		t.Fatal("blob should not exist before create")
	}

	n, err := store.Create(ctx, "blob-1", bytes.NewBufferString("hello"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}

	ok, err = store.Exists(ctx, "blob-1")
	if err != nil {
		t.Fatalf("exists after create: %v", err)
	}
	if !ok {
		t.Fatal("blob should exist after create")
	}

	rc, err := store.Open(ctx, "blob-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected hello, got %q", string(data))
	}
}

func TestLocalCreateRefusesExistingName(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Create(ctx, "blob-1", bytes.NewBufferString("first")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, "blob-1", bytes.NewBufferString("second")); err == nil {
		t.Fatal("expected create to fail for a name already in use")
	}

	rc, err := store.Open(ctx, "blob-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "first" {
		t.Fatalf("original blob was overwritten: %q", string(data))
	}
}

func TestLocalOpenMissingBlob(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	_, err = store.Open(context.Background(), "missing")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLocalUsageCountsRegularFilesOnly(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocal(root)
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()

	usage, err := store.Usage(ctx)
	if err != nil {
		t.Fatalf("usage on empty store: %v", err)
	}
	if usage.FileCount != 0 || usage.TotalBytes != 0 {
		t.Fatalf("expected empty usage, got %+v", usage)
	}

	if _, err := store.Create(ctx, "blob-1", bytes.NewBufferString("abc")); err != nil {
		t.Fatalf("create blob-1: %v", err)
	}
	if _, err := store.Create(ctx, "blob-2", bytes.NewBufferString("defgh")); err != nil {
		t.Fatalf("create blob-2: %v", err)
	}
	// Directories are excluded from the accounting.
	if err := os.Mkdir(filepath.Join(root, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	usage, err = store.Usage(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage.FileCount != 2 {
		t.Fatalf("expected 2 files, got %d", usage.FileCount)
	}
	if usage.TotalBytes != 8 {
		t.Fatalf("expected 8 bytes, got %d", usage.TotalBytes)
	}
}

func TestLocalRejectsInvalidNames(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	ctx := context.Background()
	for _, name := range []string{"", " ", "..", "a/b", "../escape"} {
		if _, err := store.Create(ctx, name, bytes.NewBufferString("x")); err == nil {
			t.Fatalf("expected create to reject name %q", name)
		}
	}
}
