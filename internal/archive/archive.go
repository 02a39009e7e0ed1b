// Package archive stores point-in-time snapshots of a repository's custom
// types in a memory, filesystem or S3 backend.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"cmis-go/internal/cmis"
)

// ErrSnapshotNotFound is returned when no snapshot matches a lookup.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrSealed is returned when reading an encrypted snapshot from an archive
// that has no sealer.
var ErrSealed = errors.New("snapshot is encrypted and no sealer is set")

// Sealer encrypts encoded snapshots before they are stored and decrypts
// them after they are read.
type Sealer interface {
	Seal(data []byte) ([]byte, error)
	Unseal(data []byte) ([]byte, error)
}

// Archive stores snapshots per repository.
type Archive interface {
	// Name returns the configured archive name.
	Name() string

	// PutSnapshot stores s. Snapshots are immutable; storing the same id
	// twice overwrites the first copy.
	PutSnapshot(ctx context.Context, s *Snapshot) error

	// GetSnapshot returns the snapshot with the given id.
	GetSnapshot(ctx context.Context, repositoryID, id string) (*Snapshot, error)

	// LatestSnapshot returns the most recently created snapshot.
	LatestSnapshot(ctx context.Context, repositoryID string) (*Snapshot, error)

	// ListSnapshots returns the snapshots of a repository, oldest first.
	ListSnapshots(ctx context.Context, repositoryID string) ([]SnapshotInfo, error)

	// ValidateSetup verifies that the backend is reachable and writable.
	ValidateSetup(ctx context.Context) error

	// SetSealer makes the archive seal new snapshots and unseal encrypted
	// ones. Plain snapshots stay readable.
	SetSealer(s Sealer)
}

// Snapshot is the set of custom types of one repository at a point in time.
type Snapshot struct {
	ID           string                 `json:"id"`
	RepositoryID string                 `json:"repositoryId"`
	CMISVersion  cmis.Version           `json:"cmisVersion"`
	CreatedAt    time.Time              `json:"createdAt"`
	Types        []*cmis.TypeDefinition `json:"types"`
}

// SnapshotInfo identifies a stored snapshot.
type SnapshotInfo struct {
	ID        string
	CreatedAt time.Time
}

// NewSnapshot captures types, which should be listed parents first.
func NewSnapshot(repositoryID string, v cmis.Version, types []*cmis.TypeDefinition, clock cmis.Clock, ids cmis.IDGenerator) *Snapshot {
	if clock == nil {
		clock = cmis.RealClock{}
	}
	if ids == nil {
		ids = cmis.UUIDGenerator{}
	}
	return &Snapshot{
		ID:           ids.New(),
		RepositoryID: repositoryID,
		CMISVersion:  v,
		CreatedAt:    clock.Now().UTC(),
		Types:        types,
	}
}

// keyTimeFormat has a fixed width so keys sort chronologically.
const keyTimeFormat = "20060102T150405.000000000Z"

// snapshotKey is "<repository>/<created>_<id>.json" relative to the archive root.
func snapshotKey(s *Snapshot) string {
	return repositoryPrefix(s.RepositoryID) + s.CreatedAt.UTC().Format(keyTimeFormat) + "_" + s.ID + ".json"
}

func repositoryPrefix(repositoryID string) string {
	return url.PathEscape(repositoryID) + "/"
}

// parseKey extracts the snapshot info from a key below a repository prefix.
func parseKey(name string) (SnapshotInfo, bool) {
	name = strings.TrimSuffix(name, ".json")
	ts, id, ok := strings.Cut(name, "_")
	if !ok || id == "" {
		return SnapshotInfo{}, false
	}
	created, err := time.Parse(keyTimeFormat, ts)
	if err != nil {
		return SnapshotInfo{}, false
	}
	return SnapshotInfo{ID: id, CreatedAt: created}, true
}

// infosFromNames turns the object names below a repository prefix into
// snapshot infos, oldest first. Names that are not snapshots are ignored.
func infosFromNames(names []string) []SnapshotInfo {
	sort.Strings(names)
	infos := make([]SnapshotInfo, 0, len(names))
	for _, n := range names {
		if info, ok := parseKey(n); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

func keyForInfo(repositoryID string, info SnapshotInfo) string {
	return repositoryPrefix(repositoryID) + info.CreatedAt.UTC().Format(keyTimeFormat) + "_" + info.ID + ".json"
}

// findInfo returns the info with the given id, or the newest one when id is empty.
func findInfo(infos []SnapshotInfo, id string) (SnapshotInfo, error) {
	if len(infos) == 0 {
		return SnapshotInfo{}, ErrSnapshotNotFound
	}
	if id == "" {
		return infos[len(infos)-1], nil
	}
	for _, info := range infos {
		if info.ID == id {
			return info, nil
		}
	}
	return SnapshotInfo{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
}

// codec turns snapshots into stored bytes and back. Backends embed it.
type codec struct {
	sealer Sealer
}

func (c *codec) SetSealer(s Sealer) {
	c.sealer = s
}

func (c *codec) encode(s *Snapshot) ([]byte, error) {
	data, err := encodeSnapshot(s)
	if err != nil || c.sealer == nil {
		return data, err
	}
	sealed, err := c.sealer.Seal(data)
	if err != nil {
		return nil, fmt.Errorf("sealing snapshot %s: %w", s.ID, err)
	}
	return sealed, nil
}

func (c *codec) decode(data []byte) (*Snapshot, error) {
	if !isPlain(data) {
		if c.sealer == nil {
			return nil, ErrSealed
		}
		plain, err := c.sealer.Unseal(data)
		if err != nil {
			return nil, fmt.Errorf("unsealing snapshot: %w", err)
		}
		data = plain
	}
	return decodeSnapshot(data)
}

// isPlain reports whether data is an unencrypted JSON snapshot.
func isPlain(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func encodeSnapshot(s *Snapshot) ([]byte, error) {
	if s.ID == "" || s.RepositoryID == "" {
		return nil, fmt.Errorf("snapshot needs an id and a repository id")
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot %s: %w", s.ID, err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	for _, td := range s.Types {
		if err := cmis.NormalizeTypeDefinition(td); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", s.ID, err)
		}
	}
	return &s, nil
}
