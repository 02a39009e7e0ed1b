package cmis

import (
	"context"
	"time"
)

// TypeChangeKind records what happened to a type.
type TypeChangeKind string

const (
	TypeChangeCreated TypeChangeKind = "created"
	TypeChangeUpdated TypeChangeKind = "updated"
	TypeChangeDeleted TypeChangeKind = "deleted"
)

// TypeChange is one entry of the type change log.
type TypeChange struct {
	ID        int64
	TypeID    string
	Kind      TypeChangeKind
	ChangedAt time.Time
}

// TypeStore persists custom (non-base) type definitions.
type TypeStore interface {
	// LoadTypeDefinitions returns all stored types in the order they were
	// first saved, so parents precede children.
	LoadTypeDefinitions(ctx context.Context) ([]*TypeDefinition, error)

	// SaveTypeDefinition inserts or replaces td.
	SaveTypeDefinition(ctx context.Context, td *TypeDefinition) error

	// DeleteTypeDefinition removes a type. Deleting an unknown id is not an error.
	DeleteTypeDefinition(ctx context.Context, typeID string) error

	// ListTypeChanges returns the newest changes first. limit <= 0 means all.
	ListTypeChanges(ctx context.Context, limit int) ([]*TypeChange, error)

	Close() error
}
