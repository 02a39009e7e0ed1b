package typedef

import (
	"cmis-go/internal/cmis"
)

// PropertyFlags are the boolean attributes of a property definition.
type PropertyFlags struct {
	Inherited bool
	Required  bool
	Queryable bool
	Orderable bool
}

// NewPropertyDefinition creates a property definition in the factory's
// namespace. Local name and query name are set to id.
func (f *Factory) NewPropertyDefinition(id, displayName, description string, pt cmis.PropertyType, card cmis.Cardinality, upd cmis.Updatability, flags PropertyFlags) *cmis.PropertyDefinition {
	return &cmis.PropertyDefinition{
		ID:             id,
		LocalName:      id,
		LocalNamespace: f.opts.Namespace,
		QueryName:      id,
		DisplayName:    displayName,
		Description:    description,
		PropertyType:   pt,
		Cardinality:    card,
		Updatability:   upd,
		Inherited:      flags.Inherited,
		Required:       flags.Required,
		Queryable:      flags.Queryable,
		Orderable:      flags.Orderable,
	}
}

type propSpec struct {
	id          string
	displayName string
	pt          cmis.PropertyType
	card        cmis.Cardinality
	upd         cmis.Updatability
	required    bool
	queryable   bool
	orderable   bool
	since11     bool
}

const (
	single = cmis.CardinalitySingle
	multi  = cmis.CardinalityMulti

	readOnly  = cmis.UpdatabilityReadOnly
	readWrite = cmis.UpdatabilityReadWrite
	onCreate  = cmis.UpdatabilityOnCreate
)

var baseProperties = []propSpec{
	{cmis.PropName, "Name", cmis.PropertyTypeString, single, readWrite, true, true, true, false},
	{cmis.PropDescription, "Description", cmis.PropertyTypeString, single, readWrite, false, true, true, true},
	{cmis.PropObjectID, "Object Id", cmis.PropertyTypeID, single, readOnly, false, true, true, false},
	{cmis.PropBaseTypeID, "Base Type Id", cmis.PropertyTypeID, single, readOnly, false, true, true, false},
	{cmis.PropObjectTypeID, "Object Type Id", cmis.PropertyTypeID, single, onCreate, true, true, true, false},
	{cmis.PropSecondaryObjectTypeIDs, "Secondary Type Ids", cmis.PropertyTypeID, multi, readWrite, false, true, false, true},
	{cmis.PropCreatedBy, "Created By", cmis.PropertyTypeString, single, readOnly, false, true, true, false},
	{cmis.PropCreationDate, "Creation Date", cmis.PropertyTypeDateTime, single, readOnly, false, true, true, false},
	{cmis.PropLastModifiedBy, "Last Modified By", cmis.PropertyTypeString, single, readOnly, false, true, true, false},
	{cmis.PropLastModificationDate, "Last Modification Date", cmis.PropertyTypeDateTime, single, readOnly, false, true, true, false},
	{cmis.PropChangeToken, "Change Token", cmis.PropertyTypeString, single, readOnly, false, false, false, false},
}

var documentProperties = []propSpec{
	{cmis.PropIsImmutable, "Is Immutable", cmis.PropertyTypeBoolean, single, readOnly, false, false, false, false},
	{cmis.PropIsLatestVersion, "Is Latest Version", cmis.PropertyTypeBoolean, single, readOnly, false, false, false, false},
	{cmis.PropIsMajorVersion, "Is Major Version", cmis.PropertyTypeBoolean, single, readOnly, false, false, false, false},
	{cmis.PropIsLatestMajorVersion, "Is Latest Major Version", cmis.PropertyTypeBoolean, single, readOnly, false, false, false, false},
	{cmis.PropIsPrivateWorkingCopy, "Is Private Working Copy", cmis.PropertyTypeBoolean, single, readOnly, false, true, false, true},
	{cmis.PropVersionLabel, "Version Label", cmis.PropertyTypeString, single, readOnly, false, true, false, false},
	{cmis.PropVersionSeriesID, "Version Series Id", cmis.PropertyTypeID, single, readOnly, false, true, false, false},
	{cmis.PropIsVersionSeriesCheckedOut, "Is Version Series Checked Out", cmis.PropertyTypeBoolean, single, readOnly, false, true, false, false},
	{cmis.PropVersionSeriesCheckedOutBy, "Version Series Checked Out By", cmis.PropertyTypeString, single, readOnly, false, false, false, false},
	{cmis.PropVersionSeriesCheckedOutID, "Version Series Checked Out Id", cmis.PropertyTypeID, single, readOnly, false, false, false, false},
	{cmis.PropCheckinComment, "Checkin Comment", cmis.PropertyTypeString, single, readOnly, false, false, false, false},
	{cmis.PropContentStreamLength, "Content Stream Length", cmis.PropertyTypeInteger, single, readOnly, false, false, false, false},
	{cmis.PropContentStreamMimeType, "MIME Type", cmis.PropertyTypeString, single, readOnly, false, false, false, false},
	{cmis.PropContentStreamFileName, "Filename", cmis.PropertyTypeString, single, readOnly, false, false, false, false},
	{cmis.PropContentStreamID, "Content Stream Id", cmis.PropertyTypeID, single, readOnly, false, false, false, false},
}

var folderProperties = []propSpec{
	{cmis.PropParentID, "Parent Id", cmis.PropertyTypeID, single, readOnly, false, false, false, false},
	{cmis.PropPath, "Path", cmis.PropertyTypeString, single, readOnly, false, false, false, false},
	{cmis.PropAllowedChildObjectTypeIDs, "Allowed Child Object Type Ids", cmis.PropertyTypeID, multi, readOnly, false, false, false, false},
}

var relationshipProperties = []propSpec{
	{cmis.PropSourceID, "Source Id", cmis.PropertyTypeID, single, onCreate, true, true, true, false},
	{cmis.PropTargetID, "Target Id", cmis.PropertyTypeID, single, onCreate, true, true, true, false},
}

var policyProperties = []propSpec{
	{cmis.PropPolicyText, "Policy Text", cmis.PropertyTypeString, single, readWrite, false, false, false, false},
}

func (f *Factory) addPropertyDefinitions(td *cmis.TypeDefinition, v cmis.Version, inherited bool, specs []propSpec) {
	for _, s := range specs {
		if s.since11 && v == cmis.Version10 {
			continue
		}
		td.AddPropertyDefinition(f.NewPropertyDefinition(s.id, s.displayName, s.displayName, s.pt, s.card, s.upd, PropertyFlags{
			Inherited: inherited,
			Required:  s.required,
			Queryable: s.queryable,
			Orderable: s.orderable,
		}))
	}
}

func (f *Factory) addBasePropertyDefinitions(td *cmis.TypeDefinition, v cmis.Version, inherited bool) {
	f.addPropertyDefinitions(td, v, inherited, baseProperties)
}

func (f *Factory) addDocumentPropertyDefinitions(td *cmis.TypeDefinition, v cmis.Version, inherited bool) {
	f.addPropertyDefinitions(td, v, inherited, documentProperties)
}

func (f *Factory) addFolderPropertyDefinitions(td *cmis.TypeDefinition, v cmis.Version, inherited bool) {
	f.addPropertyDefinitions(td, v, inherited, folderProperties)
}

func (f *Factory) addRelationshipPropertyDefinitions(td *cmis.TypeDefinition, v cmis.Version, inherited bool) {
	f.addPropertyDefinitions(td, v, inherited, relationshipProperties)
}

func (f *Factory) addPolicyPropertyDefinitions(td *cmis.TypeDefinition, v cmis.Version, inherited bool) {
	f.addPropertyDefinitions(td, v, inherited, policyProperties)
}

// Since11PropertyIDs lists the property ids that only exist from CMIS 1.1 on.
func Since11PropertyIDs() []string {
	var ids []string
	for _, group := range [][]propSpec{baseProperties, documentProperties} {
		for _, s := range group {
			if s.since11 {
				ids = append(ids, s.id)
			}
		}
	}
	return ids
}
