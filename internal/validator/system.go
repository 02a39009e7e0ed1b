package validator

import (
	mapset "github.com/deckarep/golang-set/v2"

	"cmis-go/internal/cmis"
)

// System properties are maintained by the repository. They are exempt from
// structural checks and never count as missing mandatory properties.
// cmis:description and cmis:secondaryObjectTypeIds are client settable and
// checked against their definitions like any other property.
var (
	commonSystemProperties = []string{
		cmis.PropName,
		cmis.PropObjectID,
		cmis.PropObjectTypeID,
		cmis.PropBaseTypeID,
		cmis.PropCreatedBy,
		cmis.PropCreationDate,
		cmis.PropLastModifiedBy,
		cmis.PropLastModificationDate,
		cmis.PropChangeToken,
	}

	systemProperties = map[cmis.BaseTypeID]mapset.Set[string]{
		cmis.BaseTypeDocument: systemSet(
			cmis.PropIsImmutable,
			cmis.PropIsLatestVersion,
			cmis.PropIsMajorVersion,
			cmis.PropIsLatestMajorVersion,
			cmis.PropVersionLabel,
			cmis.PropVersionSeriesID,
			cmis.PropIsVersionSeriesCheckedOut,
			cmis.PropVersionSeriesCheckedOutBy,
			cmis.PropVersionSeriesCheckedOutID,
			cmis.PropCheckinComment,
			cmis.PropContentStreamLength,
			cmis.PropContentStreamMimeType,
			cmis.PropContentStreamFileName,
			cmis.PropContentStreamID,
			cmis.PropIsPrivateWorkingCopy,
		),
		cmis.BaseTypeFolder: systemSet(
			cmis.PropParentID,
			cmis.PropPath,
			cmis.PropAllowedChildObjectTypeIDs,
		),
		cmis.BaseTypePolicy: systemSet(
			cmis.PropPolicyText,
		),
		cmis.BaseTypeRelationship: systemSet(
			cmis.PropSourceID,
			cmis.PropTargetID,
		),
		cmis.BaseTypeItem:      systemSet(),
		cmis.BaseTypeSecondary: systemSet(),
	}
)

func systemSet(ids ...string) mapset.Set[string] {
	s := mapset.NewSet(commonSystemProperties...)
	s.Append(ids...)
	return s
}

// IsSystemProperty reports whether propertyID is maintained by the
// repository for objects of base type b.
func IsSystemProperty(b cmis.BaseTypeID, propertyID string) bool {
	s, ok := systemProperties[b]
	if !ok {
		return false
	}
	return s.Contains(propertyID)
}
