package cmis

import (
	"github.com/shopspring/decimal"
)

// Well-known property ids.
const (
	PropName                      = "cmis:name"
	PropDescription               = "cmis:description"
	PropObjectID                  = "cmis:objectId"
	PropBaseTypeID                = "cmis:baseTypeId"
	PropObjectTypeID              = "cmis:objectTypeId"
	PropSecondaryObjectTypeIDs    = "cmis:secondaryObjectTypeIds"
	PropCreatedBy                 = "cmis:createdBy"
	PropCreationDate              = "cmis:creationDate"
	PropLastModifiedBy            = "cmis:lastModifiedBy"
	PropLastModificationDate      = "cmis:lastModificationDate"
	PropChangeToken               = "cmis:changeToken"
	PropIsImmutable               = "cmis:isImmutable"
	PropIsLatestVersion           = "cmis:isLatestVersion"
	PropIsMajorVersion            = "cmis:isMajorVersion"
	PropIsLatestMajorVersion      = "cmis:isLatestMajorVersion"
	PropIsPrivateWorkingCopy      = "cmis:isPrivateWorkingCopy"
	PropVersionLabel              = "cmis:versionLabel"
	PropVersionSeriesID           = "cmis:versionSeriesId"
	PropIsVersionSeriesCheckedOut = "cmis:isVersionSeriesCheckedOut"
	PropVersionSeriesCheckedOutBy = "cmis:versionSeriesCheckedOutBy"
	PropVersionSeriesCheckedOutID = "cmis:versionSeriesCheckedOutId"
	PropCheckinComment            = "cmis:checkinComment"
	PropContentStreamLength       = "cmis:contentStreamLength"
	PropContentStreamMimeType     = "cmis:contentStreamMimeType"
	PropContentStreamFileName     = "cmis:contentStreamFileName"
	PropContentStreamID           = "cmis:contentStreamId"
	PropParentID                  = "cmis:parentId"
	PropPath                      = "cmis:path"
	PropAllowedChildObjectTypeIDs = "cmis:allowedChildObjectTypeIds"
	PropSourceID                  = "cmis:sourceId"
	PropTargetID                  = "cmis:targetId"
	PropPolicyText                = "cmis:policyText"
)

// Choice is one entry of a (possibly hierarchical) choice list.
type Choice struct {
	DisplayName string    `json:"displayName,omitempty"`
	Value       []any     `json:"value,omitempty"`
	Choices     []*Choice `json:"choices,omitempty"`
}

// PropertyDefinition describes one property of a type. The constraint fields
// that apply depend on PropertyType: MinInteger/MaxInteger for integers,
// MinDecimal/MaxDecimal/Precision for decimals, MaxLength for strings and
// Resolution for date-times.
type PropertyDefinition struct {
	ID             string       `json:"id"`
	LocalName      string       `json:"localName,omitempty"`
	LocalNamespace string       `json:"localNamespace,omitempty"`
	DisplayName    string       `json:"displayName,omitempty"`
	Description    string       `json:"description,omitempty"`
	QueryName      string       `json:"queryName,omitempty"`
	PropertyType   PropertyType `json:"propertyType"`
	Cardinality    Cardinality  `json:"cardinality"`
	Updatability   Updatability `json:"updatability"`
	Inherited      bool         `json:"inherited"`
	Required       bool         `json:"required"`
	Queryable      bool         `json:"queryable"`
	Orderable      bool         `json:"orderable"`
	OpenChoice     *bool        `json:"openChoice,omitempty"`
	DefaultValue   []any        `json:"defaultValue,omitempty"`
	Choices        []*Choice    `json:"choices,omitempty"`

	MinInteger *int64 `json:"minInteger,omitempty"`
	MaxInteger *int64 `json:"maxInteger,omitempty"`

	MinDecimal *decimal.Decimal `json:"minDecimal,omitempty"`
	MaxDecimal *decimal.Decimal `json:"maxDecimal,omitempty"`
	Precision  DecimalPrecision `json:"precision,omitempty"`

	MaxLength *int64 `json:"maxLength,omitempty"`

	Resolution DateTimeResolution `json:"resolution,omitempty"`
}

// HasChoices reports whether the definition restricts values to a choice list.
func (pd *PropertyDefinition) HasChoices() bool {
	return len(pd.Choices) > 0
}

// Int64Ptr is a convenience for setting integer constraints.
func Int64Ptr(v int64) *int64 { return &v }

// DecimalPtr is a convenience for setting decimal constraints.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

// BoolPtr is a convenience for optional boolean parameters.
func BoolPtr(b bool) *bool { return &b }
