package cmis

import (
	"sort"
)

// TypeMutability describes which type operations are permitted on a type.
// It only exists from CMIS 1.1 on.
type TypeMutability struct {
	CanCreate bool `json:"canCreate"`
	CanUpdate bool `json:"canUpdate"`
	CanDelete bool `json:"canDelete"`
}

// TypeDefinition describes an object type. The document attributes
// (Versionable, ContentStreamAllowed) only apply to document types and the
// allowed source/target ids only to relationship types.
type TypeDefinition struct {
	ID                       string          `json:"id"`
	LocalName                string          `json:"localName,omitempty"`
	LocalNamespace           string          `json:"localNamespace,omitempty"`
	DisplayName              string          `json:"displayName,omitempty"`
	QueryName                string          `json:"queryName,omitempty"`
	Description              string          `json:"description,omitempty"`
	BaseTypeID               BaseTypeID      `json:"baseId"`
	ParentTypeID             string          `json:"parentId,omitempty"`
	Creatable                bool            `json:"creatable"`
	Fileable                 bool            `json:"fileable"`
	Queryable                bool            `json:"queryable"`
	FulltextIndexed          bool            `json:"fulltextIndexed"`
	IncludedInSupertypeQuery bool            `json:"includedInSupertypeQuery"`
	ControllablePolicy       bool            `json:"controllablePolicy"`
	ControllableACL          bool            `json:"controllableACL"`
	TypeMutability           *TypeMutability `json:"typeMutability,omitempty"`

	PropertyDefinitions map[string]*PropertyDefinition `json:"propertyDefinitions,omitempty"`

	Versionable          bool                 `json:"versionable,omitempty"`
	ContentStreamAllowed ContentStreamAllowed `json:"contentStreamAllowed,omitempty"`

	AllowedSourceTypeIDs []string `json:"allowedSourceTypes,omitempty"`
	AllowedTargetTypeIDs []string `json:"allowedTargetTypes,omitempty"`
}

// IsBaseType reports whether td is one of the root types.
func (td *TypeDefinition) IsBaseType() bool {
	return td.ParentTypeID == ""
}

// PropertyDefinition returns the definition for id, or nil.
func (td *TypeDefinition) PropertyDefinition(id string) *PropertyDefinition {
	if td.PropertyDefinitions == nil {
		return nil
	}
	return td.PropertyDefinitions[id]
}

// AddPropertyDefinition adds or replaces a property definition.
func (td *TypeDefinition) AddPropertyDefinition(pd *PropertyDefinition) {
	if td.PropertyDefinitions == nil {
		td.PropertyDefinitions = make(map[string]*PropertyDefinition)
	}
	td.PropertyDefinitions[pd.ID] = pd
}

// RemovePropertyDefinition removes the definition for id if present.
func (td *TypeDefinition) RemovePropertyDefinition(id string) {
	delete(td.PropertyDefinitions, id)
}

// PropertyDefinitionIDs returns the property ids in sorted order.
func (td *TypeDefinition) PropertyDefinitionIDs() []string {
	ids := make([]string, 0, len(td.PropertyDefinitions))
	for id := range td.PropertyDefinitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TypeDefinitionContainer is a node of the type tree.
type TypeDefinitionContainer struct {
	TypeDefinition *TypeDefinition            `json:"type"`
	Children       []*TypeDefinitionContainer `json:"children,omitempty"`
}

// TypeDefinitionList is one page of type definitions.
type TypeDefinitionList struct {
	List         []*TypeDefinition `json:"list"`
	HasMoreItems bool              `json:"hasMoreItems"`
	NumItems     int64             `json:"numItems"`
}
