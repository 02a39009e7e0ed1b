package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSystemArchive is a filesystem-based implementation of the Archive
// interface. Snapshots are stored as JSON files, one directory per
// repository:
//
//	<root>/
//	  <repositoryID>/
//	    <created>_<id>.json
type FileSystemArchive struct {
	codec
	name string
	root string
}

// NewFileSystemArchive creates a new filesystem archive rooted at the given path.
func NewFileSystemArchive(name, root string) (*FileSystemArchive, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive root: %w", err)
	}
	return &FileSystemArchive{name: name, root: root}, nil
}

func (a *FileSystemArchive) Name() string {
	return a.name
}

func (a *FileSystemArchive) path(key string) string {
	return filepath.Join(a.root, filepath.FromSlash(key))
}

// PutSnapshot writes s to its own file.
func (a *FileSystemArchive) PutSnapshot(_ context.Context, s *Snapshot) error {
	data, err := a.encode(s)
	if err != nil {
		return err
	}
	destPath := a.path(snapshotKey(s))
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create repository directory: %w", err)
	}
	return a.writeFile(destPath, bytes.NewReader(data), int64(len(data)))
}

func (a *FileSystemArchive) GetSnapshot(ctx context.Context, repositoryID, id string) (*Snapshot, error) {
	return a.get(ctx, repositoryID, id)
}

func (a *FileSystemArchive) LatestSnapshot(ctx context.Context, repositoryID string) (*Snapshot, error) {
	return a.get(ctx, repositoryID, "")
}

func (a *FileSystemArchive) get(ctx context.Context, repositoryID, id string) (*Snapshot, error) {
	infos, err := a.ListSnapshots(ctx, repositoryID)
	if err != nil {
		return nil, err
	}
	info, err := findInfo(infos, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := a.readFile(a.path(keyForInfo(repositoryID, info)), &buf); err != nil {
		return nil, err
	}
	return a.decode(buf.Bytes())
}

func (a *FileSystemArchive) ListSnapshots(_ context.Context, repositoryID string) ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(a.path(repositoryPrefix(repositoryID)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return infosFromNames(names), nil
}

// ValidateSetup verifies that the archive root is a writable directory.
func (a *FileSystemArchive) ValidateSetup(_ context.Context) error {
	info, err := os.Stat(a.root)
	if err != nil {
		return fmt.Errorf("archive root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("archive root is not a directory: %s", a.root)
	}

	f, err := os.CreateTemp(a.root, ".probe-*")
	if err != nil {
		return fmt.Errorf("archive root not writable: %w", err)
	}
	f.Close()
	return os.Remove(f.Name())
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func (a *FileSystemArchive) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Create temp file in the same directory to ensure atomic rename works
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	success = true
	return nil
}

func (a *FileSystemArchive) readFile(srcPath string, w io.Writer) error {
	f, err := os.Open(srcPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrSnapshotNotFound
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return nil
}

// Compile-time check that FileSystemArchive implements the Archive interface
var _ Archive = (*FileSystemArchive)(nil)
