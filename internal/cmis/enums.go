package cmis

// Version identifies the CMIS specification version a type system follows.
type Version string

const (
	Version10 Version = "1.0"
	Version11 Version = "1.1"
)

// ParseVersion accepts "1.0" and "1.1". An empty string selects 1.1.
func ParseVersion(s string) (Version, error) {
	switch Version(s) {
	case "", Version11:
		return Version11, nil
	case Version10:
		return Version10, nil
	default:
		return "", NewInvalidArgumentError("unknown CMIS version: %s", s)
	}
}

// BaseTypeID names one of the six root object types.
type BaseTypeID string

const (
	BaseTypeDocument     BaseTypeID = "cmis:document"
	BaseTypeFolder       BaseTypeID = "cmis:folder"
	BaseTypeRelationship BaseTypeID = "cmis:relationship"
	BaseTypePolicy       BaseTypeID = "cmis:policy"
	BaseTypeItem         BaseTypeID = "cmis:item"
	BaseTypeSecondary    BaseTypeID = "cmis:secondary"
)

// BaseTypeIDs lists the base types in the order they are registered.
var BaseTypeIDs = []BaseTypeID{
	BaseTypeDocument,
	BaseTypeFolder,
	BaseTypeRelationship,
	BaseTypePolicy,
	BaseTypeItem,
	BaseTypeSecondary,
}

func (b BaseTypeID) Valid() bool {
	switch b {
	case BaseTypeDocument, BaseTypeFolder, BaseTypeRelationship, BaseTypePolicy, BaseTypeItem, BaseTypeSecondary:
		return true
	}
	return false
}

// Since11 reports whether the base type only exists from CMIS 1.1 on.
func (b BaseTypeID) Since11() bool {
	return b == BaseTypeItem || b == BaseTypeSecondary
}

func (b BaseTypeID) String() string { return string(b) }

// PropertyType is the datatype of a property.
type PropertyType string

const (
	PropertyTypeBoolean  PropertyType = "boolean"
	PropertyTypeDateTime PropertyType = "datetime"
	PropertyTypeDecimal  PropertyType = "decimal"
	PropertyTypeHTML     PropertyType = "html"
	PropertyTypeID       PropertyType = "id"
	PropertyTypeInteger  PropertyType = "integer"
	PropertyTypeString   PropertyType = "string"
	PropertyTypeURI      PropertyType = "uri"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyTypeBoolean, PropertyTypeDateTime, PropertyTypeDecimal, PropertyTypeHTML,
		PropertyTypeID, PropertyTypeInteger, PropertyTypeString, PropertyTypeURI:
		return true
	}
	return false
}

func (p PropertyType) String() string { return string(p) }

type Cardinality string

const (
	CardinalitySingle Cardinality = "single"
	CardinalityMulti  Cardinality = "multi"
)

type Updatability string

const (
	UpdatabilityReadOnly       Updatability = "readonly"
	UpdatabilityReadWrite      Updatability = "readwrite"
	UpdatabilityOnCreate       Updatability = "oncreate"
	UpdatabilityWhenCheckedOut Updatability = "whencheckedout"
)

type ContentStreamAllowed string

const (
	ContentStreamNotAllowed ContentStreamAllowed = "notallowed"
	ContentStreamPermitted  ContentStreamAllowed = "allowed"
	ContentStreamRequired   ContentStreamAllowed = "required"
)

type DecimalPrecision int

const (
	DecimalPrecision32 DecimalPrecision = 32
	DecimalPrecision64 DecimalPrecision = 64
)

type DateTimeResolution string

const (
	DateTimeResolutionYear DateTimeResolution = "year"
	DateTimeResolutionDate DateTimeResolution = "date"
	DateTimeResolutionTime DateTimeResolution = "time"
)

type VersioningState string

const (
	VersioningStateNone       VersioningState = "none"
	VersioningStateCheckedOut VersioningState = "checkedout"
	VersioningStateMajor      VersioningState = "major"
	VersioningStateMinor      VersioningState = "minor"
)

type IncludeRelationships string

const (
	IncludeRelationshipsNone   IncludeRelationships = "none"
	IncludeRelationshipsSource IncludeRelationships = "source"
	IncludeRelationshipsTarget IncludeRelationships = "target"
	IncludeRelationshipsBoth   IncludeRelationships = "both"
)

type UnfileObjects string

const (
	UnfileObjectsUnfile            UnfileObjects = "unfile"
	UnfileObjectsDeleteSingleFiled UnfileObjects = "deletesinglefiled"
	UnfileObjectsDelete            UnfileObjects = "delete"
)

type ACLPropagation string

const (
	ACLPropagationRepositoryDetermined ACLPropagation = "repositorydetermined"
	ACLPropagationObjectOnly           ACLPropagation = "objectonly"
	ACLPropagationPropagate            ACLPropagation = "propagate"
)

type RelationshipDirection string

const (
	RelationshipDirectionSource RelationshipDirection = "source"
	RelationshipDirectionTarget RelationshipDirection = "target"
	RelationshipDirectionEither RelationshipDirection = "either"
)

// RenditionFilterNone is the rendition filter that selects no renditions.
const RenditionFilterNone = "cmis:none"
