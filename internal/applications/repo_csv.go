package applications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"scholarship-intake/internal/shared/telemetry"
)

// CSVRepo stores records in a single CSV file. Each Append rewrites the
// whole file through a temp file and rename, so readers never see a partial
// write. The mutex serializes writers within this process only.
type CSVRepo struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewCSVRepo(path string) *CSVRepo {
	return &CSVRepo{path: path, now: time.Now}
}

// Append reads the existing rows, adds rec and writes everything back. A
// missing file is an empty store. A file that cannot be parsed is moved to
// <path>.corrupt-<timestamp> and the store starts fresh.
func (r *CSVRepo) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.read()
	if errors.Is(err, ErrCorruptStore) {
		if qerr := r.quarantine(err); qerr != nil {
			return qerr
		}
		existing, err = nil, nil
	}
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, append(existing, rec)); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return r.replace(buf.Bytes())
}

// List returns all rows, oldest first. A missing file is an empty store.
func (r *CSVRepo) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

// Ping checks that the directory holding the store exists.
func (r *CSVRepo) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(r.dir())
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir())
	}
	return nil
}

func (r *CSVRepo) read() ([]Record, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	recs, err := ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, r.path, err)
	}
	return recs, nil
}

func (r *CSVRepo) quarantine(cause error) error {
	target := fmt.Sprintf("%s.corrupt-%s", r.path, r.now().UTC().Format("20060102T150405.000000000"))
	if err := os.Rename(r.path, target); err != nil {
		return fmt.Errorf("quarantine corrupt store: %w", err)
	}
	telemetry.Warn("store.csv.quarantined", map[string]any{
		"path":        r.path,
		"moved_to":    target,
		"parse_error": cause,
	})
	return nil
}

func (r *CSVRepo) replace(data []byte) error {
	dir := r.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func (r *CSVRepo) dir() string {
	return filepath.Dir(r.path)
}
