// Package typemanager keeps the type system of one repository in memory.
package typemanager

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cmis-go/internal/cmis"
	"cmis-go/internal/typedef"
	"cmis-go/internal/validator"
)

// Manager is a concurrency-safe cmis.TypeManager that starts with the base
// types of its CMIS version and accepts custom types derived from them.
// When a store is set, custom types are loaded from it and every change is
// written to it before the in-memory tree is modified.
//
// Containers returned by the lookup methods are shared with the manager and
// must not be modified. The manager never modifies them either: every change
// publishes a new container tree, so readers may keep walking a tree they
// obtained before the change.
type Manager struct {
	mu      sync.RWMutex
	version cmis.Version
	factory *typedef.Factory
	store   cmis.TypeStore
	logger  cmis.Logger

	// defs lists every type, parents before children.
	defs  []*cmis.TypeDefinition
	types map[string]*cmis.TypeDefinitionContainer
	order []*cmis.TypeDefinitionContainer
	roots []*cmis.TypeDefinitionContainer
}

var _ cmis.TypeManager = (*Manager)(nil)

// New creates a Manager holding the base types for v. store and logger may be nil.
func New(factory *typedef.Factory, v cmis.Version, store cmis.TypeStore, logger cmis.Logger) (*Manager, error) {
	if factory == nil {
		factory = typedef.New()
	}
	if logger == nil {
		logger = cmis.NewNopLogger()
	}
	m := &Manager{
		version: v,
		factory: factory,
		store:   store,
		logger:  logger,
	}

	bases, err := factory.CreateBaseTypeDefinitions(v)
	if err != nil {
		return nil, fmt.Errorf("creating base types: %w", err)
	}
	m.defs = bases
	m.publish()
	return m, nil
}

// Version returns the CMIS version of the type system.
func (m *Manager) Version() cmis.Version {
	return m.version
}

// Factory returns the factory used to build base and child types.
func (m *Manager) Factory() *typedef.Factory {
	return m.factory
}

// Load adds the custom types found in the store. Types whose parent is
// unknown are skipped with a warning.
func (m *Manager) Load(ctx context.Context) (int, error) {
	if m.store == nil {
		return 0, nil
	}
	types, err := m.store.LoadTypeDefinitions(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading types: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, td := range types {
		if _, ok := m.types[td.ID]; ok {
			m.logger.Warn("skipping stored type", "type", td.ID, "reason", "already defined")
			continue
		}
		if _, ok := m.types[td.ParentTypeID]; !ok {
			m.logger.Warn("skipping stored type", "type", td.ID, "reason", "unknown parent "+td.ParentTypeID)
			continue
		}
		if td.BaseTypeID.Since11() && m.version == cmis.Version10 {
			m.logger.Warn("skipping stored type", "type", td.ID, "reason", "base type requires CMIS 1.1")
			continue
		}
		m.defs = append(m.defs, td)
		m.publish()
		n++
	}
	m.logger.Debug("loaded stored types", "count", n)
	return n, nil
}

// publish builds a fresh container tree from defs and swaps it in. The
// caller holds the write lock or has exclusive access.
func (m *Manager) publish() {
	types := make(map[string]*cmis.TypeDefinitionContainer, len(m.defs))
	order := make([]*cmis.TypeDefinitionContainer, 0, len(m.defs))
	var roots []*cmis.TypeDefinitionContainer
	for _, td := range m.defs {
		tc := &cmis.TypeDefinitionContainer{TypeDefinition: td}
		types[td.ID] = tc
		order = append(order, tc)
		if parent, ok := types[td.ParentTypeID]; ok && td.ParentTypeID != "" {
			parent.Children = append(parent.Children, tc)
		} else {
			roots = append(roots, tc)
		}
	}
	m.types, m.order, m.roots = types, order, roots
}

// AddTypeDefinition validates td, completes it with the parent's property
// definitions, persists it and adds it. The stored copy is returned.
func (m *Manager) AddTypeDefinition(ctx context.Context, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := view{m}
	if err := validator.ValidateTypeDefinition(v, td); err != nil {
		return nil, err
	}
	if td.BaseTypeID.Since11() && m.version == cmis.Version10 {
		return nil, cmis.NewInvalidArgumentError("Base type %s is not available in CMIS 1.0!", td.BaseTypeID)
	}

	added, err := m.factory.Copy(td, true)
	if err != nil {
		return nil, err
	}
	if added.QueryName == "" {
		added.QueryName = added.ID
		if v.GetTypeByQueryName(added.QueryName) != nil {
			return nil, cmis.NewConstraintError("Query name %s is already in use!", added.QueryName)
		}
	}
	if added.LocalName == "" {
		added.LocalName = added.ID
	}
	if added.DisplayName == "" {
		added.DisplayName = added.ID
	}
	if m.version == cmis.Version10 {
		added.TypeMutability = nil
	}
	parent := m.types[td.ParentTypeID].TypeDefinition
	if err := m.inheritProperties(added, parent); err != nil {
		return nil, err
	}

	if m.store != nil {
		if err := m.store.SaveTypeDefinition(ctx, added); err != nil {
			return nil, cmis.NewStorageError(err, "Could not store type %s: %v", added.ID, err)
		}
	}
	m.defs = append(m.defs, added)
	m.publish()
	m.logger.Info("type created", "type", added.ID, "parent", added.ParentTypeID)
	return added, nil
}

// inheritProperties adds copies of the parent's property definitions that
// td does not declare, marked inherited.
func (m *Manager) inheritProperties(td, parent *cmis.TypeDefinition) error {
	for _, id := range parent.PropertyDefinitionIDs() {
		if td.PropertyDefinition(id) != nil {
			continue
		}
		pd, err := m.factory.CopyPropertyDefinition(parent.PropertyDefinitions[id])
		if err != nil {
			return err
		}
		pd.Inherited = true
		td.AddPropertyDefinition(pd)
	}
	return nil
}

// UpdateTypeDefinition replaces the attributes and declared property
// definitions of an existing custom type. Id, base type and parent are
// fixed; the type must allow updates.
func (m *Manager) UpdateTypeDefinition(ctx context.Context, td *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if td == nil {
		return nil, cmis.NewInvalidArgumentError("Type definition must be set!")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tc, ok := m.types[td.ID]
	if !ok {
		return nil, cmis.NewObjectNotFoundError("Type %s is unknown!", td.ID)
	}
	current := tc.TypeDefinition
	if current.IsBaseType() {
		return nil, cmis.NewConstraintError("Base type %s cannot be updated!", td.ID)
	}
	if current.TypeMutability == nil || !current.TypeMutability.CanUpdate {
		return nil, cmis.NewConstraintError("Type %s cannot be updated!", td.ID)
	}
	if td.BaseTypeID != current.BaseTypeID || td.ParentTypeID != current.ParentTypeID {
		return nil, cmis.NewConstraintError("Base type and parent of type %s cannot be changed!", td.ID)
	}
	if td.QueryName != "" && !strings.EqualFold(td.QueryName, current.QueryName) {
		if other := (view{m}).GetTypeByQueryName(td.QueryName); other != nil {
			return nil, cmis.NewConstraintError("Query name %s is already in use!", td.QueryName)
		}
	}

	updated, err := m.factory.Copy(td, true)
	if err != nil {
		return nil, err
	}
	if updated.QueryName == "" {
		updated.QueryName = current.QueryName
	}
	parent := m.types[current.ParentTypeID].TypeDefinition
	for _, id := range updated.PropertyDefinitionIDs() {
		pd := updated.PropertyDefinitions[id]
		if !pd.Inherited && parent.PropertyDefinition(id) != nil {
			return nil, cmis.NewConstraintError("Property %s is already defined by parent type %s", id, parent.ID)
		}
	}
	if err := m.inheritProperties(updated, parent); err != nil {
		return nil, err
	}

	if m.store != nil {
		if err := m.store.SaveTypeDefinition(ctx, updated); err != nil {
			return nil, cmis.NewStorageError(err, "Could not store type %s: %v", updated.ID, err)
		}
	}
	defs := make([]*cmis.TypeDefinition, len(m.defs))
	for i, d := range m.defs {
		if d.ID == updated.ID {
			d = updated
		}
		defs[i] = d
	}
	m.defs = defs
	m.publish()
	m.logger.Info("type updated", "type", updated.ID)
	return updated, nil
}

// DeleteTypeDefinition removes a custom type that has no subtypes and
// allows deletion.
func (m *Manager) DeleteTypeDefinition(ctx context.Context, typeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tc, ok := m.types[typeID]
	if !ok {
		return cmis.NewObjectNotFoundError("Type %s is unknown!", typeID)
	}
	td := tc.TypeDefinition
	if td.IsBaseType() {
		return cmis.NewConstraintError("Base type %s cannot be deleted!", typeID)
	}
	if td.TypeMutability != nil && !td.TypeMutability.CanDelete {
		return cmis.NewConstraintError("Type %s cannot be deleted!", typeID)
	}
	if len(tc.Children) > 0 {
		return cmis.NewConstraintError("Type %s has subtypes!", typeID)
	}

	if m.store != nil {
		if err := m.store.DeleteTypeDefinition(ctx, typeID); err != nil {
			return cmis.NewStorageError(err, "Could not delete type %s: %v", typeID, err)
		}
	}

	defs := make([]*cmis.TypeDefinition, 0, len(m.defs))
	for _, d := range m.defs {
		if d.ID != typeID {
			defs = append(defs, d)
		}
	}
	m.defs = defs
	m.publish()
	m.logger.Info("type deleted", "type", typeID)
	return nil
}

// CustomTypes returns the non-base types, parents before children.
func (m *Manager) CustomTypes() []*cmis.TypeDefinition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*cmis.TypeDefinition
	for _, td := range m.defs {
		if !td.IsBaseType() {
			out = append(out, td)
		}
	}
	return out
}

func (m *Manager) GetTypeByID(typeID string) *cmis.TypeDefinitionContainer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return view{m}.GetTypeByID(typeID)
}

func (m *Manager) GetTypeByQueryName(queryName string) *cmis.TypeDefinition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return view{m}.GetTypeByQueryName(queryName)
}

func (m *Manager) GetTypeDefinitionList() []*cmis.TypeDefinitionContainer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return view{m}.GetTypeDefinitionList()
}

func (m *Manager) GetRootTypes() []*cmis.TypeDefinitionContainer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return view{m}.GetRootTypes()
}

func (m *Manager) GetPropertyIDForQueryName(typeDef *cmis.TypeDefinition, propQueryName string) (string, bool) {
	return view{m}.GetPropertyIDForQueryName(typeDef, propQueryName)
}

// view reads the manager without locking, for use while the lock is held.
type view struct {
	m *Manager
}

func (v view) GetTypeByID(typeID string) *cmis.TypeDefinitionContainer {
	return v.m.types[typeID]
}

func (v view) GetTypeByQueryName(queryName string) *cmis.TypeDefinition {
	for _, tc := range v.m.order {
		if strings.EqualFold(tc.TypeDefinition.QueryName, queryName) {
			return tc.TypeDefinition
		}
	}
	return nil
}

func (v view) GetTypeDefinitionList() []*cmis.TypeDefinitionContainer {
	return append([]*cmis.TypeDefinitionContainer(nil), v.m.order...)
}

func (v view) GetRootTypes() []*cmis.TypeDefinitionContainer {
	return append([]*cmis.TypeDefinitionContainer(nil), v.m.roots...)
}

func (v view) GetPropertyIDForQueryName(typeDef *cmis.TypeDefinition, propQueryName string) (string, bool) {
	if typeDef == nil {
		return "", false
	}
	for _, id := range typeDef.PropertyDefinitionIDs() {
		if strings.EqualFold(typeDef.PropertyDefinitions[id].QueryName, propQueryName) {
			return id, true
		}
	}
	return "", false
}
