package testutil

import (
	"strings"

	"cmis-go/internal/cmis"
)

// TypeManager is a minimal read-only cmis.TypeManager over a fixed set of
// types. Types are linked into a tree by ParentTypeID; types without a
// parent are roots. It performs no validation and is not safe for
// concurrent modification.
type TypeManager struct {
	types map[string]*cmis.TypeDefinitionContainer
	roots []*cmis.TypeDefinitionContainer
	order []*cmis.TypeDefinitionContainer
}

var _ cmis.TypeManager = (*TypeManager)(nil)

// NewTypeManager builds a TypeManager. Parents must be listed before their children.
func NewTypeManager(types ...*cmis.TypeDefinition) *TypeManager {
	tm := &TypeManager{types: make(map[string]*cmis.TypeDefinitionContainer)}
	for _, td := range types {
		tm.Add(td)
	}
	return tm
}

// Add registers td below its parent, or as a root.
func (tm *TypeManager) Add(td *cmis.TypeDefinition) {
	tc := &cmis.TypeDefinitionContainer{TypeDefinition: td}
	tm.types[td.ID] = tc
	tm.order = append(tm.order, tc)
	if parent, ok := tm.types[td.ParentTypeID]; ok && td.ParentTypeID != "" {
		parent.Children = append(parent.Children, tc)
		return
	}
	tm.roots = append(tm.roots, tc)
}

func (tm *TypeManager) GetTypeByID(typeID string) *cmis.TypeDefinitionContainer {
	return tm.types[typeID]
}

func (tm *TypeManager) GetTypeByQueryName(queryName string) *cmis.TypeDefinition {
	for _, tc := range tm.order {
		if strings.EqualFold(tc.TypeDefinition.QueryName, queryName) {
			return tc.TypeDefinition
		}
	}
	return nil
}

func (tm *TypeManager) GetTypeDefinitionList() []*cmis.TypeDefinitionContainer {
	return tm.order
}

func (tm *TypeManager) GetRootTypes() []*cmis.TypeDefinitionContainer {
	return tm.roots
}

func (tm *TypeManager) GetPropertyIDForQueryName(typeDef *cmis.TypeDefinition, propQueryName string) (string, bool) {
	if typeDef == nil {
		return "", false
	}
	for _, pd := range typeDef.PropertyDefinitions {
		if strings.EqualFold(pd.QueryName, propQueryName) {
			return pd.ID, true
		}
	}
	return "", false
}
