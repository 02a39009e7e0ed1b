package cmis

// TypeManager is the read-only view of a repository's type system consumed
// by the validator and by repository implementations.
//
// Lookups that find nothing return nil (or false) rather than an error.
// Implementations must be safe for concurrent use.
type TypeManager interface {
	// GetTypeByID returns the type and its direct and indirect children.
	GetTypeByID(typeID string) *TypeDefinitionContainer

	// GetTypeByQueryName matches query names case-insensitively.
	GetTypeByQueryName(queryName string) *TypeDefinition

	// GetTypeDefinitionList returns every known type.
	GetTypeDefinitionList() []*TypeDefinitionContainer

	// GetRootTypes returns the base types.
	GetRootTypes() []*TypeDefinitionContainer

	// GetPropertyIDForQueryName maps a property query name of typeDef to the
	// property id, comparing case-insensitively.
	GetPropertyIDForQueryName(typeDef *TypeDefinition, propQueryName string) (string, bool)
}
