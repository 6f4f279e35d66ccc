package object

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"scholarship-intake/internal/shared/util"
)

// Store saves and retrieves binary objects by key.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// DatedKey namespaces fileName under prefix/YYYY/MM/DD with a timestamp so
// repeated exports never overwrite each other.
func DatedKey(prefix string, at time.Time, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	at = at.UTC()
	return path.Join(prefix, at.Format("2006/01/02"), at.Format("150405.000000000")+"_"+name), nil
}
