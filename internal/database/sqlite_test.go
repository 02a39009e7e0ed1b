package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cmis-go/internal/cmis"
	"cmis-go/internal/testutil"
)

// newTestStore creates a new in-memory store with schema applied.
func newTestStore(t *testing.T, clock cmis.Clock) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:", clock)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.MigrateUp(); err != nil {
		s.Close()
		t.Fatalf("failed to migrate store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func invoiceType() *cmis.TypeDefinition {
	td := &cmis.TypeDefinition{
		ID:           "custom:invoice",
		LocalName:    "invoice",
		QueryName:    "custom:invoice",
		DisplayName:  "Invoice",
		BaseTypeID:   cmis.BaseTypeDocument,
		ParentTypeID: "cmis:document",
		Creatable:    true,
		Fileable:     true,
		Queryable:    true,
		TypeMutability: &cmis.TypeMutability{
			CanCreate: true,
			CanDelete: true,
		},
		ContentStreamAllowed: cmis.ContentStreamPermitted,
		Versionable:          true,
	}
	td.AddPropertyDefinition(&cmis.PropertyDefinition{
		ID:           "custom:amount",
		QueryName:    "custom:amount",
		PropertyType: cmis.PropertyTypeDecimal,
		Cardinality:  cmis.CardinalitySingle,
		Updatability: cmis.UpdatabilityReadWrite,
		MinDecimal:   cmis.DecimalPtr(decimal.Zero),
		MaxDecimal:   cmis.DecimalPtr(decimal.RequireFromString("99999.99")),
		DefaultValue: []any{decimal.RequireFromString("1.50")},
	})
	td.AddPropertyDefinition(&cmis.PropertyDefinition{
		ID:           "custom:priority",
		QueryName:    "custom:priority",
		PropertyType: cmis.PropertyTypeInteger,
		Cardinality:  cmis.CardinalitySingle,
		Updatability: cmis.UpdatabilityReadWrite,
		MinInteger:   cmis.Int64Ptr(1),
		MaxInteger:   cmis.Int64Ptr(3),
		Choices: []*cmis.Choice{
			{DisplayName: "low", Value: []any{int64(1)}},
			{DisplayName: "high", Value: []any{int64(3)}},
		},
	})
	td.AddPropertyDefinition(&cmis.PropertyDefinition{
		ID:           "custom:due",
		QueryName:    "custom:due",
		PropertyType: cmis.PropertyTypeDateTime,
		Cardinality:  cmis.CardinalitySingle,
		Updatability: cmis.UpdatabilityReadWrite,
		DefaultValue: []any{time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
	})
	return td
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, testutil.FixedClock())

	if err := s.SaveTypeDefinition(ctx, invoiceType()); err != nil {
		t.Fatalf("SaveTypeDefinition() error = %v", err)
	}

	types, err := s.LoadTypeDefinitions(ctx)
	if err != nil {
		t.Fatalf("LoadTypeDefinitions() error = %v", err)
	}
	if len(types) != 1 {
		t.Fatalf("len(types) = %d, want 1", len(types))
	}

	got := types[0]
	if got.ID != "custom:invoice" || got.ParentTypeID != "cmis:document" {
		t.Errorf("ID = %q, ParentTypeID = %q", got.ID, got.ParentTypeID)
	}
	if got.TypeMutability == nil || !got.TypeMutability.CanDelete {
		t.Errorf("TypeMutability = %+v, want CanDelete", got.TypeMutability)
	}
	if got.ContentStreamAllowed != cmis.ContentStreamPermitted {
		t.Errorf("ContentStreamAllowed = %q, want %q", got.ContentStreamAllowed, cmis.ContentStreamPermitted)
	}

	amount := got.PropertyDefinition("custom:amount")
	if amount == nil {
		t.Fatal("custom:amount not loaded")
	}
	if !amount.MaxDecimal.Equal(decimal.RequireFromString("99999.99")) {
		t.Errorf("MaxDecimal = %v, want 99999.99", amount.MaxDecimal)
	}
	if d, ok := amount.DefaultValue[0].(decimal.Decimal); !ok || !d.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("DefaultValue = %#v, want decimal 1.5", amount.DefaultValue)
	}

	priority := got.PropertyDefinition("custom:priority")
	if v, ok := priority.Choices[1].Value[0].(int64); !ok || v != 3 {
		t.Errorf("Choices[1].Value = %#v, want int64 3", priority.Choices[1].Value)
	}
	if *priority.MaxInteger != 3 {
		t.Errorf("MaxInteger = %d, want 3", *priority.MaxInteger)
	}

	due := got.PropertyDefinition("custom:due")
	if v, ok := due.DefaultValue[0].(time.Time); !ok || !v.Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DefaultValue = %#v, want 2024-06-30", due.DefaultValue)
	}
}

func TestSQLiteStore_LoadOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, nil)

	parent := &cmis.TypeDefinition{ID: "custom:a", BaseTypeID: cmis.BaseTypeFolder, ParentTypeID: "cmis:folder"}
	child := &cmis.TypeDefinition{ID: "custom:b", BaseTypeID: cmis.BaseTypeFolder, ParentTypeID: "custom:a"}
	for _, td := range []*cmis.TypeDefinition{parent, child} {
		if err := s.SaveTypeDefinition(ctx, td); err != nil {
			t.Fatalf("SaveTypeDefinition(%s) error = %v", td.ID, err)
		}
	}

	// Updating the parent must not move it behind its child.
	parent.DisplayName = "A"
	if err := s.SaveTypeDefinition(ctx, parent); err != nil {
		t.Fatalf("SaveTypeDefinition() update error = %v", err)
	}

	types, err := s.LoadTypeDefinitions(ctx)
	if err != nil {
		t.Fatalf("LoadTypeDefinitions() error = %v", err)
	}
	if len(types) != 2 || types[0].ID != "custom:a" || types[1].ID != "custom:b" {
		t.Fatalf("LoadTypeDefinitions() order wrong: %v", types)
	}
	if types[0].DisplayName != "A" {
		t.Errorf("DisplayName = %q, want %q", types[0].DisplayName, "A")
	}
}

func TestSQLiteStore_DeleteAndChanges(t *testing.T) {
	ctx := context.Background()
	clock := testutil.FixedClock()
	s := newTestStore(t, clock)

	td := invoiceType()
	if err := s.SaveTypeDefinition(ctx, td); err != nil {
		t.Fatalf("SaveTypeDefinition() error = %v", err)
	}
	clock.Advance(time.Minute)
	if err := s.SaveTypeDefinition(ctx, td); err != nil {
		t.Fatalf("SaveTypeDefinition() error = %v", err)
	}
	clock.Advance(time.Minute)
	if err := s.DeleteTypeDefinition(ctx, td.ID); err != nil {
		t.Fatalf("DeleteTypeDefinition() error = %v", err)
	}
	if err := s.DeleteTypeDefinition(ctx, "custom:unknown"); err != nil {
		t.Errorf("DeleteTypeDefinition(unknown) error = %v", err)
	}

	types, err := s.LoadTypeDefinitions(ctx)
	if err != nil {
		t.Fatalf("LoadTypeDefinitions() error = %v", err)
	}
	if len(types) != 0 {
		t.Errorf("len(types) = %d after delete, want 0", len(types))
	}

	changes, err := s.ListTypeChanges(ctx, 0)
	if err != nil {
		t.Fatalf("ListTypeChanges() error = %v", err)
	}
	wantKinds := []cmis.TypeChangeKind{cmis.TypeChangeDeleted, cmis.TypeChangeUpdated, cmis.TypeChangeCreated}
	if len(changes) != len(wantKinds) {
		t.Fatalf("len(changes) = %d, want %d", len(changes), len(wantKinds))
	}
	for i, want := range wantKinds {
		if changes[i].Kind != want {
			t.Errorf("changes[%d].Kind = %q, want %q", i, changes[i].Kind, want)
		}
		if changes[i].TypeID != td.ID {
			t.Errorf("changes[%d].TypeID = %q, want %q", i, changes[i].TypeID, td.ID)
		}
	}
	wantTime := time.Date(2024, 1, 15, 10, 32, 0, 0, time.UTC)
	if !changes[0].ChangedAt.Equal(wantTime) {
		t.Errorf("changes[0].ChangedAt = %v, want %v", changes[0].ChangedAt, wantTime)
	}

	limited, err := s.ListTypeChanges(ctx, 1)
	if err != nil {
		t.Fatalf("ListTypeChanges(1) error = %v", err)
	}
	if len(limited) != 1 || limited[0].Kind != cmis.TypeChangeDeleted {
		t.Errorf("ListTypeChanges(1) = %v, want only the deletion", limited)
	}
}

func TestSQLiteStore_FilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "types.db")

	s, err := NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.CheckMigrations(); err == nil {
		t.Error("CheckMigrations() on a fresh file succeeded, want error")
	}
	if err := s.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}
	if err := s.SaveTypeDefinition(ctx, invoiceType()); err != nil {
		t.Fatalf("SaveTypeDefinition() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore() reopen error = %v", err)
	}
	defer reopened.Close()

	if err := reopened.CheckMigrations(); err != nil {
		t.Errorf("CheckMigrations() error = %v", err)
	}
	types, err := reopened.LoadTypeDefinitions(ctx)
	if err != nil {
		t.Fatalf("LoadTypeDefinitions() error = %v", err)
	}
	if len(types) != 1 {
		t.Errorf("len(types) = %d, want 1", len(types))
	}
	if reopened.Path() != path {
		t.Errorf("Path() = %q, want %q", reopened.Path(), path)
	}
}
