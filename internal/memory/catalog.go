// Package memory provides an ephemeral, transactional catalog backed by
// go-memdb. It implements the same interface as the SQLite store and is
// used where durability is not needed, such as service tests.
package memory

import (
	"context"
	"sync/atomic"

	memdb "github.com/hashicorp/go-memdb"

	"fshare/internal/models"
)

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"file": {
			Name: "file",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "ID"},
				},
				"fingerprint": {
					Name:    "fingerprint",
					Unique:  false,
					Indexer: &memdb.StringFieldIndex{Field: "Fingerprint", Lowercase: true},
				},
			},
		},
	},
}

type record struct {
	ID          uint64
	Fingerprint string
	File        models.StoredFile
}

// Catalog is an in-memory catalog with MVCC transactions.
type Catalog struct {
	db     *memdb.MemDB
	nextID atomic.Int64
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog() (*Catalog, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// InsertFile assigns the next identifier and stores the record. The insert
// commits atomically, so concurrent readers never observe a partial record.
func (c *Catalog) InsertFile(ctx context.Context, file *models.StoredFile) (int64, error) {
	id := c.nextID.Add(1)

	stored := *file
	stored.ID = id

	txn := c.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert("file", &record{ID: uint64(id), Fingerprint: stored.Fingerprint, File: stored}); err != nil {
		return 0, err
	}
	txn.Commit()

	file.ID = id
	return id, nil
}

// GetFile returns one record by identifier, or nil when absent.
func (c *Catalog) GetFile(ctx context.Context, id int64) (*models.StoredFile, error) {
	if id < 1 {
		return nil, nil
	}
	txn := c.db.Txn(false)
	raw, err := txn.First("file", "id", uint64(id))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	file := raw.(*record).File
	return &file, nil
}

// FindFirstByFingerprint returns the matching record with the lowest
// identifier, or nil when none match.
func (c *Catalog) FindFirstByFingerprint(ctx context.Context, fp string) (*models.StoredFile, error) {
	txn := c.db.Txn(false)
	it, err := txn.Get("file", "fingerprint", fp)
	if err != nil {
		return nil, err
	}

	var best *record
	for raw := it.Next(); raw != nil; raw = it.Next() {
		rec := raw.(*record)
		if best == nil || rec.ID < best.ID {
			best = rec
		}
	}
	if best == nil {
		return nil, nil
	}
	file := best.File
	return &file, nil
}
