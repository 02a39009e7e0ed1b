package archive

import (
	"context"
	"strings"
	"sync"
)

// MemoryArchive is an in-memory implementation of the Archive interface.
// It keeps encoded snapshots in a map, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryArchive struct {
	codec
	name    string
	objects map[string][]byte // key -> encoded snapshot
	mu      sync.RWMutex
}

// NewMemoryArchive creates a new in-memory archive with the given name.
func NewMemoryArchive(name string) *MemoryArchive {
	return &MemoryArchive{
		name:    name,
		objects: make(map[string][]byte),
	}
}

func (m *MemoryArchive) Name() string {
	return m.name
}

// PutSnapshot stores an encoded copy of s.
func (m *MemoryArchive) PutSnapshot(_ context.Context, s *Snapshot) error {
	data, err := m.encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[snapshotKey(s)] = data
	return nil
}

func (m *MemoryArchive) GetSnapshot(ctx context.Context, repositoryID, id string) (*Snapshot, error) {
	return m.get(ctx, repositoryID, id)
}

func (m *MemoryArchive) LatestSnapshot(ctx context.Context, repositoryID string) (*Snapshot, error) {
	return m.get(ctx, repositoryID, "")
}

func (m *MemoryArchive) get(ctx context.Context, repositoryID, id string) (*Snapshot, error) {
	infos, err := m.ListSnapshots(ctx, repositoryID)
	if err != nil {
		return nil, err
	}
	info, err := findInfo(infos, id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	data, ok := m.objects[keyForInfo(repositoryID, info)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return m.decode(data)
}

func (m *MemoryArchive) ListSnapshots(_ context.Context, repositoryID string) ([]SnapshotInfo, error) {
	prefix := repositoryPrefix(repositoryID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for key := range m.objects {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			names = append(names, name)
		}
	}
	return infosFromNames(names), nil
}

// ValidateSetup always succeeds for in-memory archive.
func (m *MemoryArchive) ValidateSetup(_ context.Context) error {
	return nil
}

// Compile-time check that MemoryArchive implements the Archive interface
var _ Archive = (*MemoryArchive)(nil)
