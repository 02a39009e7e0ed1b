package typedef

import (
	"cmis-go/internal/cmis"
)

// Options holds the attribute values the factory applies to every type it
// creates.
type Options struct {
	Namespace                string
	ControllableACL          bool
	ControllablePolicy       bool
	Queryable                bool
	FulltextIndexed          bool
	IncludedInSupertypeQuery bool
	TypeMutability           cmis.TypeMutability
}

// DefaultOptions returns the factory defaults: queryable types that are
// included in supertype queries, with ACL and policy control switched off,
// and types that may be subtyped but not updated or deleted.
func DefaultOptions() Options {
	return Options{
		Queryable:                true,
		IncludedInSupertypeQuery: true,
		TypeMutability:           cmis.TypeMutability{CanCreate: true},
	}
}

// Constructor allocates an empty type definition for one base type. Callers
// can register their own to pre-populate fields on every created or copied
// type.
type Constructor func() *cmis.TypeDefinition

// Option configures a Factory.
type Option func(*Factory)

// WithOptions replaces the default attribute values.
func WithOptions(o Options) Option {
	return func(f *Factory) { f.opts = o }
}

// WithConstructor registers the constructor used for types of base type b.
func WithConstructor(b cmis.BaseTypeID, c Constructor) Option {
	return func(f *Factory) {
		if c != nil {
			f.constructors[b] = c
		}
	}
}

// Factory creates base type definitions and derives and copies types. It is
// immutable after New and safe for concurrent use.
type Factory struct {
	opts         Options
	constructors map[cmis.BaseTypeID]Constructor
}

func newTypeDefinition() *cmis.TypeDefinition {
	return &cmis.TypeDefinition{}
}

// New creates a Factory with DefaultOptions, modified by opts.
func New(opts ...Option) *Factory {
	f := &Factory{
		opts:         DefaultOptions(),
		constructors: make(map[cmis.BaseTypeID]Constructor, len(cmis.BaseTypeIDs)),
	}
	for _, b := range cmis.BaseTypeIDs {
		f.constructors[b] = newTypeDefinition
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Options returns the attribute values in effect.
func (f *Factory) Options() Options {
	return f.opts
}

// allocate returns a fresh definition for base type b. Unknown base types are
// a programming error and reported as a runtime error.
func (f *Factory) allocate(b cmis.BaseTypeID) (*cmis.TypeDefinition, error) {
	c, ok := f.constructors[b]
	if !ok {
		return nil, cmis.NewRuntimeError("Unknown base type: "+string(b), nil)
	}
	td := c()
	if td == nil {
		return nil, cmis.NewRuntimeError("constructor for "+string(b)+" returned nil", nil)
	}
	return td, nil
}

func (f *Factory) newTypeMutability() *cmis.TypeMutability {
	tm := f.opts.TypeMutability
	return &tm
}

// checkVersion rejects CMIS 1.1 base types for CMIS 1.0 repositories.
func checkVersion(v cmis.Version, b cmis.BaseTypeID) error {
	switch v {
	case cmis.Version10:
		if b.Since11() {
			return cmis.NewInvalidArgumentError("%s types are not supported in CMIS 1.0", b)
		}
	case cmis.Version11:
	default:
		return cmis.NewInvalidArgumentError("unknown CMIS version: %s", v)
	}
	return nil
}

// baseInfo holds the naming attributes of each base type.
var baseInfo = map[cmis.BaseTypeID]struct {
	localName   string
	displayName string
}{
	cmis.BaseTypeDocument:     {"document", "Document"},
	cmis.BaseTypeFolder:       {"folder", "Folder"},
	cmis.BaseTypeRelationship: {"relationship", "Relationship"},
	cmis.BaseTypePolicy:       {"policy", "Policy"},
	cmis.BaseTypeItem:         {"item", "Item"},
	cmis.BaseTypeSecondary:    {"secondary", "Secondary Type"},
}

// createTypeDefinition builds a type of base type b with the factory
// defaults. A type with an empty parentID is a base type and is named after
// the base type; other types are left unnamed for the caller.
func (f *Factory) createTypeDefinition(v cmis.Version, b cmis.BaseTypeID, parentID string) (*cmis.TypeDefinition, error) {
	if err := checkVersion(v, b); err != nil {
		return nil, err
	}
	td, err := f.allocate(b)
	if err != nil {
		return nil, err
	}

	td.BaseTypeID = b
	td.ParentTypeID = parentID
	td.LocalNamespace = f.opts.Namespace
	td.Creatable = true
	td.Fileable = true
	td.Queryable = f.opts.Queryable
	td.FulltextIndexed = f.opts.FulltextIndexed
	td.IncludedInSupertypeQuery = f.opts.IncludedInSupertypeQuery
	td.ControllableACL = f.opts.ControllableACL
	td.ControllablePolicy = f.opts.ControllablePolicy
	if v != cmis.Version10 {
		td.TypeMutability = f.newTypeMutability()
	}

	if parentID == "" {
		info := baseInfo[b]
		td.ID = string(b)
		td.LocalName = info.localName
		td.QueryName = string(b)
		td.DisplayName = info.displayName
		td.Description = info.displayName
	}

	inherited := parentID != ""
	switch b {
	case cmis.BaseTypeDocument:
		td.ContentStreamAllowed = cmis.ContentStreamPermitted
		f.addBasePropertyDefinitions(td, v, inherited)
		f.addDocumentPropertyDefinitions(td, v, inherited)
	case cmis.BaseTypeFolder:
		f.addBasePropertyDefinitions(td, v, inherited)
		f.addFolderPropertyDefinitions(td, v, inherited)
	case cmis.BaseTypeRelationship:
		td.Fileable = false
		f.addBasePropertyDefinitions(td, v, inherited)
		f.addRelationshipPropertyDefinitions(td, v, inherited)
	case cmis.BaseTypePolicy:
		td.Fileable = false
		f.addBasePropertyDefinitions(td, v, inherited)
		f.addPolicyPropertyDefinitions(td, v, inherited)
	case cmis.BaseTypeItem:
		f.addBasePropertyDefinitions(td, v, inherited)
	case cmis.BaseTypeSecondary:
		// Secondary types only carry the properties they add to an object.
		td.Creatable = false
		td.Fileable = false
		td.ControllableACL = false
		td.ControllablePolicy = false
	}
	return td, nil
}

// CreateTypeDefinition builds a type of base type b for version v.
func (f *Factory) CreateTypeDefinition(v cmis.Version, b cmis.BaseTypeID, parentID string) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, b, parentID)
}

// CreateBaseTypeDefinition builds the root type of base type b for version v.
func (f *Factory) CreateBaseTypeDefinition(v cmis.Version, b cmis.BaseTypeID) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, b, "")
}

// CreateBaseTypeDefinitions builds every root type that exists in version v,
// in registration order.
func (f *Factory) CreateBaseTypeDefinitions(v cmis.Version) ([]*cmis.TypeDefinition, error) {
	var types []*cmis.TypeDefinition
	for _, b := range cmis.BaseTypeIDs {
		if v == cmis.Version10 && b.Since11() {
			continue
		}
		td, err := f.createTypeDefinition(v, b, "")
		if err != nil {
			return nil, err
		}
		types = append(types, td)
	}
	return types, nil
}

func (f *Factory) CreateBaseDocumentTypeDefinition(v cmis.Version) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeDocument, "")
}

func (f *Factory) CreateBaseFolderTypeDefinition(v cmis.Version) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeFolder, "")
}

func (f *Factory) CreateBaseRelationshipTypeDefinition(v cmis.Version) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeRelationship, "")
}

func (f *Factory) CreateBasePolicyTypeDefinition(v cmis.Version) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypePolicy, "")
}

func (f *Factory) CreateBaseItemTypeDefinition(v cmis.Version) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeItem, "")
}

func (f *Factory) CreateBaseSecondaryTypeDefinition(v cmis.Version) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeSecondary, "")
}

// CreateDocumentTypeDefinition builds an unnamed document type below parentID.
func (f *Factory) CreateDocumentTypeDefinition(v cmis.Version, parentID string) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeDocument, parentID)
}

func (f *Factory) CreateFolderTypeDefinition(v cmis.Version, parentID string) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeFolder, parentID)
}

func (f *Factory) CreateRelationshipTypeDefinition(v cmis.Version, parentID string) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeRelationship, parentID)
}

func (f *Factory) CreatePolicyTypeDefinition(v cmis.Version, parentID string) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypePolicy, parentID)
}

func (f *Factory) CreateItemTypeDefinition(v cmis.Version, parentID string) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeItem, parentID)
}

func (f *Factory) CreateSecondaryTypeDefinition(v cmis.Version, parentID string) (*cmis.TypeDefinition, error) {
	return f.createTypeDefinition(v, cmis.BaseTypeSecondary, parentID)
}

// CreateChildTypeDefinition derives a new type from parent. The child keeps
// the parent's attributes and property definitions, with every property
// definition marked inherited. Id, local name, query name, display name and
// description are cleared and must be set by the caller.
func (f *Factory) CreateChildTypeDefinition(parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if parent == nil {
		return nil, cmis.NewInvalidArgumentError("Parent type definition must be set!")
	}
	if parent.ID == "" {
		return nil, cmis.NewInvalidArgumentError("Parent type definition has no id!")
	}

	child, err := f.Copy(parent, true)
	if err != nil {
		return nil, err
	}
	child.ID = ""
	child.LocalName = ""
	child.QueryName = ""
	child.DisplayName = ""
	child.Description = ""
	child.ParentTypeID = parent.ID
	for _, pd := range child.PropertyDefinitions {
		pd.Inherited = true
	}
	return child, nil
}

func (f *Factory) createChildOf(b cmis.BaseTypeID, parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if parent != nil && parent.BaseTypeID != b {
		return nil, cmis.NewInvalidArgumentError("Parent type definition %s is not a %s type!", parent.ID, b)
	}
	return f.CreateChildTypeDefinition(parent)
}

func (f *Factory) CreateChildDocumentTypeDefinition(parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	return f.createChildOf(cmis.BaseTypeDocument, parent)
}

func (f *Factory) CreateChildFolderTypeDefinition(parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	return f.createChildOf(cmis.BaseTypeFolder, parent)
}

func (f *Factory) CreateChildRelationshipTypeDefinition(parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	return f.createChildOf(cmis.BaseTypeRelationship, parent)
}

func (f *Factory) CreateChildPolicyTypeDefinition(parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	return f.createChildOf(cmis.BaseTypePolicy, parent)
}

func (f *Factory) CreateChildItemTypeDefinition(parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	return f.createChildOf(cmis.BaseTypeItem, parent)
}

func (f *Factory) CreateChildSecondaryTypeDefinition(parent *cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	return f.createChildOf(cmis.BaseTypeSecondary, parent)
}
