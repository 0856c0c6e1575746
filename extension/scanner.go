package extension

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReservedPrefix marks source files excluded from scanning, e.g. "_draft.json".
const ReservedPrefix = "_"

// Snapshot maps candidate extension ids to their source mod times. The key
// set is the scan result; the timestamps feed modification detection.
type Snapshot map[string]time.Time

// Scanner enumerates the current extension candidates. Implementations must
// return a consistent snapshot per invocation and never mutate the registry.
type Scanner interface {
	Scan(ctx context.Context) (Snapshot, error)
}

// SourceResolver maps an id back to its backing source file.
type SourceResolver interface {
	Resolve(id string) (Source, error)
}

// DirScanner enumerates extension sources by listing a directory. Valid
// candidates carry the configured suffix and do not start with the reserved
// prefix; the id is the file name without the suffix.
type DirScanner struct {
	dir    string
	suffix string
}

// NewDirScanner creates a scanner over dir for files ending in suffix.
func NewDirScanner(dir, suffix string) *DirScanner {
	return &DirScanner{dir: dir, suffix: suffix}
}

// Dir returns the scanned directory.
func (s *DirScanner) Dir() string {
	return s.dir
}

// Scan lists the directory and returns the candidate snapshot. A missing
// directory yields an empty snapshot and is created so later drops are seen.
func (s *DirScanner) Scan(_ context.Context) (Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(s.dir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("create source dir: %w", mkErr)
			}
			return Snapshot{}, nil
		}
		return nil, fmt.Errorf("read source dir: %w", err)
	}

	snap := make(Snapshot)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, s.suffix) || strings.HasPrefix(name, ReservedPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// File vanished between list and stat; skip this cycle.
			continue
		}
		snap[strings.TrimSuffix(name, s.suffix)] = info.ModTime()
	}
	return snap, nil
}

// Resolve stats the source file backing id.
func (s *DirScanner) Resolve(id string) (Source, error) {
	path := filepath.Join(s.dir, id+s.suffix)
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("resolve source %s: %w", id, err)
	}
	return Source{ID: id, Path: path, ModTime: info.ModTime()}, nil
}
