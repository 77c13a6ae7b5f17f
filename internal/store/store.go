package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gbfs-station-scraper/internal/gbfs"

	"github.com/spf13/afero"
)

const fileSuffix = "_station_status.json"

var (
	ErrCreateDir = errors.New("error creating snapshot directory")
	ErrWriteFile = errors.New("error writing snapshot file")
	ErrReadFile  = errors.New("error reading snapshot file")
	ErrNotFound  = errors.New("snapshot not found")
)

type Config struct {
	// Fs defaults to the OS filesystem.
	Fs        afero.Fs
	Dir       string
	CreateDir bool
}

// FileStore keeps one file per snapshot, named after its last_updated value.
type FileStore struct {
	fs  afero.Fs
	dir string
}

func New(cfg Config) (*FileStore, error) {
	const fn = "Store:New"
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if cfg.CreateDir {
		if err := fs.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s:%w:%w", fn, ErrCreateDir, err)
		}
	}
	return &FileStore{fs: fs, dir: cfg.Dir}, nil
}

func FileName(lastUpdated int64) string {
	return fmt.Sprintf("%d%s", lastUpdated, fileSuffix)
}

func (s *FileStore) Path(lastUpdated int64) string {
	return filepath.Join(s.dir, FileName(lastUpdated))
}

// Save writes the raw snapshot body and records the file name on the
// snapshot. An existing file for the same timestamp is overwritten.
func (s *FileStore) Save(ctx context.Context, snap *gbfs.Snapshot) (string, error) {
	const fn = "Store:Save"
	path := s.Path(snap.LastUpdated)
	if err := afero.WriteFile(s.fs, path, snap.Body, 0o644); err != nil {
		return "", fmt.Errorf("%s:%w:%w", fn, ErrWriteFile, err)
	}
	snap.File = FileName(snap.LastUpdated)
	slog.DebugContext(ctx, "Snapshot file written", "path", path, "bytes", len(snap.Body))
	return path, nil
}

func (s *FileStore) Read(lastUpdated int64) ([]byte, error) {
	const fn = "Store:Read"
	body, err := afero.ReadFile(s.fs, s.Path(lastUpdated))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s:%w", fn, ErrNotFound)
		}
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrReadFile, err)
	}
	return body, nil
}
