package exporter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caresoft-ricent/beaverbuild/internal/config"
)

// ExportDatabase copies the active history database to dstPath.
func ExportDatabase(dstPath string) error {
	src, err := config.DBPath()
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source db: %w", err)
	}
	defer func() { _ = in.Close() }()
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create dst db: %w", err)
	}
	defer func() { _ = out.Close() }()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy db: %w", err)
	}
	return out.Close()
}

// DefaultDatabaseDst returns ./beaverbuild-YYYY-MM-DD.db in dir, suffixed
// with -N to avoid overwriting an existing file. Stat failures other than
// "does not exist" are returned.
func DefaultDatabaseDst(dir string, now time.Time) (string, error) {
	date := now.UTC().Format("2006-01-02")
	dst := filepath.Join(dir, fmt.Sprintf("beaverbuild-%s.db", date))
	for i := 1; ; i++ {
		_, err := os.Stat(dst)
		if errors.Is(err, fs.ErrNotExist) {
			return dst, nil
		}
		if err != nil {
			return "", fmt.Errorf("check export destination: %w", err)
		}
		dst = filepath.Join(dir, fmt.Sprintf("beaverbuild-%s-%d.db", date, i))
	}
}
