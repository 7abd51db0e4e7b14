package memory

import (
	"context"
	"testing"

	"fshare/internal/models"
)

func newCatalogForTest(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog()
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	c := newCatalogForTest(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		file := &models.StoredFile{BlobName: "blob", OriginalName: "a.txt", Fingerprint: "fp"}
		id, err := c.InsertFile(ctx, file)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if id <= last {
			t.Fatalf("expected id > %d, got %d", last, id)
		}
		if file.ID != id {
			t.Fatalf("expected file.ID set to %d, got %d", id, file.ID)
		}
		last = id
	}
}

func TestGetFileRoundTrip(t *testing.T) {
	c := newCatalogForTest(t)
	ctx := context.Background()

	in := &models.StoredFile{
		BlobName:     "blob-1",
		OriginalName: "photo.png",
		MediaType:    "image/png",
		Fingerprint:  "abc123",
	}
	id, err := c.InsertFile(ctx, in)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := c.GetFile(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected record")
	}
	if got.OriginalName != "photo.png" || got.MediaType != "image/png" || got.Fingerprint != "abc123" {
		t.Fatalf("unexpected record: %+v", got)
	}

	missing, err := c.GetFile(ctx, id+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown id, got %+v", missing)
	}
}

func TestFindFirstByFingerprintPicksLowestID(t *testing.T) {
	c := newCatalogForTest(t)
	ctx := context.Background()

	first := &models.StoredFile{BlobName: "blob-a", OriginalName: "a.txt", Fingerprint: "same"}
	if _, err := c.InsertFile(ctx, first); err != nil {
		t.Fatalf("insert first: %v", err)
	}
	second := &models.StoredFile{BlobName: "blob-a", OriginalName: "b.txt", Fingerprint: "same"}
	if _, err := c.InsertFile(ctx, second); err != nil {
		t.Fatalf("insert second: %v", err)
	}
	other := &models.StoredFile{BlobName: "blob-b", OriginalName: "c.txt", Fingerprint: "other"}
	if _, err := c.InsertFile(ctx, other); err != nil {
		t.Fatalf("insert other: %v", err)
	}

	got, err := c.FindFirstByFingerprint(ctx, "same")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("expected id %d, got %+v", first.ID, got)
	}

	none, err := c.FindFirstByFingerprint(ctx, "absent")
	if err != nil {
		t.Fatalf("find absent: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil, got %+v", none)
	}
}

func TestInsertDoesNotAliasCallerRecord(t *testing.T) {
	c := newCatalogForTest(t)
	ctx := context.Background()

	in := &models.StoredFile{BlobName: "blob", OriginalName: "orig.txt", Fingerprint: "fp"}
	id, err := c.InsertFile(ctx, in)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	in.OriginalName = "mutated.txt"

	got, err := c.GetFile(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OriginalName != "orig.txt" {
		t.Fatalf("stored record mutated: %+v", got)
	}
}
