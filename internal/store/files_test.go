package store

import (
	"context"
	"path/filepath"
	"testing"

	"fshare/internal/models"
)

func newStoreForTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestInsertFileAssignsMonotonicIDs(t *testing.T) {
	st := newStoreForTest(t)
	ctx := context.Background()

	first, err := st.InsertFile(ctx, &models.StoredFile{
		BlobName:     "blob-a",
		OriginalName: "a.txt",
		MediaType:    "text/plain",
		Fingerprint:  "aaaa",
	})
	if err != nil {
		t.Fatalf("insert first: %v", err)
	}
	second, err := st.InsertFile(ctx, &models.StoredFile{
		BlobName:     "blob-b",
		OriginalName: "b.txt",
		MediaType:    "text/plain",
		Fingerprint:  "bbbb",
	})
	if err != nil {
		t.Fatalf("insert second: %v", err)
	}
	if second <= first {
		t.Fatalf("expected monotonic ids, got %d then %d", first, second)
	}
}

func TestGetFileRoundTrip(t *testing.T) {
	st := newStoreForTest(t)
	ctx := context.Background()

	id, err := st.InsertFile(ctx, &models.StoredFile{
		BlobName:     "blob-a",
		OriginalName: "report.png",
		MediaType:    "image/png",
		Fingerprint:  "cafe",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := st.GetFile(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if got.BlobName != "blob-a" || got.OriginalName != "report.png" || got.MediaType != "image/png" || got.Fingerprint != "cafe" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not persisted")
	}

	missing, err := st.GetFile(ctx, id+1000)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v", missing)
	}
}

func TestFindFirstByFingerprintReturnsLowestID(t *testing.T) {
	st := newStoreForTest(t)
	ctx := context.Background()

	firstID, err := st.InsertFile(ctx, &models.StoredFile{
		BlobName:     "blob-shared",
		OriginalName: "one.txt",
		MediaType:    "text/plain",
		Fingerprint:  "feed",
	})
	if err != nil {
		t.Fatalf("insert first: %v", err)
	}
	if _, err := st.InsertFile(ctx, &models.StoredFile{
		BlobName:     "blob-shared",
		OriginalName: "two.txt",
		MediaType:    "text/plain",
		Fingerprint:  "feed",
	}); err != nil {
		t.Fatalf("insert second: %v", err)
	}

	got, err := st.FindFirstByFingerprint(ctx, "feed")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || got.ID != firstID {
		t.Fatalf("expected lowest id %d, got %+v", firstID, got)
	}

	none, err := st.FindFirstByFingerprint(ctx, "absent")
	if err != nil {
		t.Fatalf("find absent: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for unknown fingerprint, got %+v", none)
	}
}

func TestInsertFileRequiresBlobNameAndFingerprint(t *testing.T) {
	st := newStoreForTest(t)
	ctx := context.Background()

	if _, err := st.InsertFile(ctx, &models.StoredFile{Fingerprint: "aa"}); err == nil {
		t.Fatal("expected error for missing blob_name")
	}
	if _, err := st.InsertFile(ctx, &models.StoredFile{BlobName: "b"}); err == nil {
		t.Fatal("expected error for missing fingerprint")
	}
}

func TestSchemaVersion(t *testing.T) {
	st := newStoreForTest(t)
	version, err := st.SchemaVersion()
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if version == 0 {
		t.Fatal("expected schema version > 0 after migrations")
	}
}
