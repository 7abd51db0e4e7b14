package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores blobs as flat files under a root directory. Names are
// server-generated opaque tokens, never user input, so the store only
// defends against the obviously malformed.
type Local struct {
	root string
}

// NewLocal creates a local blob store rooted at root, creating the
// directory if absent. A root that cannot be created is a hard error: a
// store without a writable root cannot honor any later write.
func NewLocal(root string) (*Local, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Local{root: abs}, nil
}

// Exists reports whether a blob with the given name is present.
func (l *Local) Exists(ctx context.Context, name string) (bool, error) {
	if l == nil {
		return false, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := l.pathFromName(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Create writes a new blob and returns its size. The destination is opened
// exclusively; a name already in use fails rather than overwriting.
func (l *Local) Create(ctx context.Context, name string, r io.Reader) (int64, error) {
	if l == nil {
		return 0, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return 0, fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path, err := l.pathFromName(name)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return n, nil
}

// Open returns a reader over the named blob. A missing blob yields
// os.ErrNotExist.
func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if l == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := l.pathFromName(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Usage walks the storage root and sums the sizes of regular files. It is a
// live recount, so quota checks always see physical reality.
func (l *Local) Usage(ctx context.Context) (Usage, error) {
	var usage Usage
	if l == nil {
		return usage, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return usage, err
	}

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		usage.FileCount++
		usage.TotalBytes += info.Size()
		return nil
	})
	if err != nil {
		return Usage{}, err
	}
	return usage, nil
}

func (l *Local) pathFromName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("blob name is required")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid blob name")
	}
	return filepath.Join(l.root, name), nil
}
