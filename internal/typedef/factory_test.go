package typedef

import (
	"testing"

	"cmis-go/internal/cmis"
)

func TestCreateBaseTypeDefinition(t *testing.T) {
	f := New()

	for _, v := range []cmis.Version{cmis.Version10, cmis.Version11} {
		for _, b := range cmis.BaseTypeIDs {
			t.Run(string(v)+"/"+string(b), func(t *testing.T) {
				td, err := f.CreateBaseTypeDefinition(v, b)
				if v == cmis.Version10 && b.Since11() {
					if !cmis.IsInvalidArgument(err) {
						t.Fatalf("CreateBaseTypeDefinition() error = %v, want invalid argument", err)
					}
					return
				}
				if err != nil {
					t.Fatalf("CreateBaseTypeDefinition() error = %v", err)
				}
				if td.ParentTypeID != "" {
					t.Errorf("ParentTypeID = %q, want empty", td.ParentTypeID)
				}
				if td.ID != string(b) || td.BaseTypeID != b || td.QueryName != string(b) {
					t.Errorf("ID = %q, BaseTypeID = %q, QueryName = %q, want %q", td.ID, td.BaseTypeID, td.QueryName, b)
				}
				want := expectedPropertyIDs(v, b)
				got := td.PropertyDefinitionIDs()
				if len(got) != len(want) {
					t.Fatalf("property ids = %v, want %v", got, want)
				}
				for id := range want {
					pd := td.PropertyDefinition(id)
					if pd == nil {
						t.Errorf("missing property definition %s", id)
						continue
					}
					if pd.Inherited {
						t.Errorf("%s.Inherited = true on a base type", id)
					}
				}
				if (td.TypeMutability != nil) != (v == cmis.Version11) {
					t.Errorf("TypeMutability = %v for version %s", td.TypeMutability, v)
				}
			})
		}
	}
}

var (
	commonIDs10 = []string{
		"cmis:name", "cmis:objectId", "cmis:baseTypeId", "cmis:objectTypeId",
		"cmis:createdBy", "cmis:creationDate", "cmis:lastModifiedBy",
		"cmis:lastModificationDate", "cmis:changeToken",
	}
	commonIDs11 = append([]string{"cmis:description", "cmis:secondaryObjectTypeIds"}, commonIDs10...)

	documentIDs10 = []string{
		"cmis:isImmutable", "cmis:isLatestVersion", "cmis:isMajorVersion",
		"cmis:isLatestMajorVersion", "cmis:versionLabel", "cmis:versionSeriesId",
		"cmis:isVersionSeriesCheckedOut", "cmis:versionSeriesCheckedOutBy",
		"cmis:versionSeriesCheckedOutId", "cmis:checkinComment",
		"cmis:contentStreamLength", "cmis:contentStreamMimeType",
		"cmis:contentStreamFileName", "cmis:contentStreamId",
	}
	documentIDs11 = append([]string{"cmis:isPrivateWorkingCopy"}, documentIDs10...)

	folderIDs       = []string{"cmis:parentId", "cmis:path", "cmis:allowedChildObjectTypeIds"}
	relationshipIDs = []string{"cmis:sourceId", "cmis:targetId"}
	policyIDs       = []string{"cmis:policyText"}
)

// expectedPropertyIDs lists the property definitions each base type must
// carry in each CMIS version.
func expectedPropertyIDs(v cmis.Version, b cmis.BaseTypeID) map[string]bool {
	common, document := commonIDs11, documentIDs11
	if v == cmis.Version10 {
		common, document = commonIDs10, documentIDs10
	}

	var lists [][]string
	switch b {
	case cmis.BaseTypeDocument:
		lists = [][]string{common, document}
	case cmis.BaseTypeFolder:
		lists = [][]string{common, folderIDs}
	case cmis.BaseTypeRelationship:
		lists = [][]string{common, relationshipIDs}
	case cmis.BaseTypePolicy:
		lists = [][]string{common, policyIDs}
	case cmis.BaseTypeItem:
		lists = [][]string{common}
	case cmis.BaseTypeSecondary:
	}

	ids := make(map[string]bool)
	for _, l := range lists {
		for _, id := range l {
			ids[id] = true
		}
	}
	return ids
}

func TestExpectedPropertyIDs_Counts(t *testing.T) {
	tests := []struct {
		version cmis.Version
		base    cmis.BaseTypeID
		want    int
	}{
		{cmis.Version10, cmis.BaseTypeDocument, 23},
		{cmis.Version11, cmis.BaseTypeDocument, 26},
		{cmis.Version10, cmis.BaseTypeFolder, 12},
		{cmis.Version11, cmis.BaseTypeFolder, 14},
		{cmis.Version11, cmis.BaseTypeRelationship, 13},
		{cmis.Version11, cmis.BaseTypePolicy, 12},
		{cmis.Version11, cmis.BaseTypeItem, 11},
		{cmis.Version11, cmis.BaseTypeSecondary, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.version)+"/"+string(tt.base), func(t *testing.T) {
			if got := len(expectedPropertyIDs(tt.version, tt.base)); got != tt.want {
				t.Errorf("len(expectedPropertyIDs()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCreateBaseDocumentTypeDefinition_VersionDifferences(t *testing.T) {
	f := New()

	td11, err := f.CreateBaseDocumentTypeDefinition(cmis.Version11)
	if err != nil {
		t.Fatalf("CreateBaseDocumentTypeDefinition(1.1) error = %v", err)
	}
	if td11.TypeMutability == nil {
		t.Error("1.1 document type has no type mutability")
	}
	for _, id := range []string{cmis.PropIsPrivateWorkingCopy, cmis.PropDescription, cmis.PropSecondaryObjectTypeIDs} {
		if td11.PropertyDefinition(id) == nil {
			t.Errorf("1.1 document type is missing %s", id)
		}
	}

	td10, err := f.CreateBaseDocumentTypeDefinition(cmis.Version10)
	if err != nil {
		t.Fatalf("CreateBaseDocumentTypeDefinition(1.0) error = %v", err)
	}
	if td10.TypeMutability != nil {
		t.Errorf("1.0 document type has type mutability %+v", td10.TypeMutability)
	}
	for _, id := range []string{cmis.PropIsPrivateWorkingCopy, cmis.PropDescription, cmis.PropSecondaryObjectTypeIDs} {
		if td10.PropertyDefinition(id) != nil {
			t.Errorf("1.0 document type has %s", id)
		}
	}
}

func TestCreateBaseTypeDefinition_Flags(t *testing.T) {
	f := New()
	tests := []struct {
		base      cmis.BaseTypeID
		creatable bool
		fileable  bool
	}{
		{cmis.BaseTypeDocument, true, true},
		{cmis.BaseTypeFolder, true, true},
		{cmis.BaseTypeRelationship, true, false},
		{cmis.BaseTypePolicy, true, false},
		{cmis.BaseTypeItem, true, true},
		{cmis.BaseTypeSecondary, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.base), func(t *testing.T) {
			td, err := f.CreateBaseTypeDefinition(cmis.Version11, tt.base)
			if err != nil {
				t.Fatalf("CreateBaseTypeDefinition() error = %v", err)
			}
			if td.Creatable != tt.creatable {
				t.Errorf("Creatable = %v, want %v", td.Creatable, tt.creatable)
			}
			if td.Fileable != tt.fileable {
				t.Errorf("Fileable = %v, want %v", td.Fileable, tt.fileable)
			}
			if !td.Queryable || !td.IncludedInSupertypeQuery {
				t.Errorf("Queryable = %v, IncludedInSupertypeQuery = %v, want both true", td.Queryable, td.IncludedInSupertypeQuery)
			}
		})
	}
}

func TestNew_WithOptions(t *testing.T) {
	f := New(WithOptions(Options{
		Namespace:       "urn:example",
		ControllableACL: true,
		Queryable:       false,
		TypeMutability:  cmis.TypeMutability{CanCreate: true, CanUpdate: true, CanDelete: true},
	}))

	td, err := f.CreateBaseFolderTypeDefinition(cmis.Version11)
	if err != nil {
		t.Fatalf("CreateBaseFolderTypeDefinition() error = %v", err)
	}
	if td.LocalNamespace != "urn:example" {
		t.Errorf("LocalNamespace = %q, want %q", td.LocalNamespace, "urn:example")
	}
	if !td.ControllableACL {
		t.Error("ControllableACL = false, want true")
	}
	if td.Queryable {
		t.Error("Queryable = true, want false")
	}
	if !td.TypeMutability.CanDelete {
		t.Error("TypeMutability.CanDelete = false, want true")
	}
	if ns := td.PropertyDefinition(cmis.PropName).LocalNamespace; ns != "urn:example" {
		t.Errorf("property LocalNamespace = %q, want %q", ns, "urn:example")
	}
}

func TestNew_WithConstructor(t *testing.T) {
	f := New(WithConstructor(cmis.BaseTypeDocument, func() *cmis.TypeDefinition {
		return &cmis.TypeDefinition{Versionable: true}
	}))

	base, err := f.CreateBaseDocumentTypeDefinition(cmis.Version11)
	if err != nil {
		t.Fatalf("CreateBaseDocumentTypeDefinition() error = %v", err)
	}
	if !base.Versionable {
		t.Error("Versionable = false, want constructor value true")
	}

	folder, err := f.CreateBaseFolderTypeDefinition(cmis.Version11)
	if err != nil {
		t.Fatalf("CreateBaseFolderTypeDefinition() error = %v", err)
	}
	if folder.Versionable {
		t.Error("folder picked up the document constructor")
	}
}

func TestCreateTypeDefinition_WithParent(t *testing.T) {
	f := New()

	td, err := f.CreateDocumentTypeDefinition(cmis.Version11, "cmis:document")
	if err != nil {
		t.Fatalf("CreateDocumentTypeDefinition() error = %v", err)
	}
	if td.ID != "" || td.DisplayName != "" {
		t.Errorf("ID = %q, DisplayName = %q, want both empty", td.ID, td.DisplayName)
	}
	if td.ParentTypeID != "cmis:document" {
		t.Errorf("ParentTypeID = %q, want %q", td.ParentTypeID, "cmis:document")
	}
	for _, id := range td.PropertyDefinitionIDs() {
		if !td.PropertyDefinition(id).Inherited {
			t.Errorf("%s.Inherited = false, want true", id)
		}
	}
}

func TestCreateChildTypeDefinition(t *testing.T) {
	f := New()

	for _, b := range cmis.BaseTypeIDs {
		t.Run(string(b), func(t *testing.T) {
			parent, err := f.CreateBaseTypeDefinition(cmis.Version11, b)
			if err != nil {
				t.Fatalf("CreateBaseTypeDefinition() error = %v", err)
			}
			parent.AddPropertyDefinition(f.NewPropertyDefinition("x:custom", "Custom", "", cmis.PropertyTypeString, cmis.CardinalitySingle, cmis.UpdatabilityReadWrite, PropertyFlags{}))

			child, err := f.CreateChildTypeDefinition(parent)
			if err != nil {
				t.Fatalf("CreateChildTypeDefinition() error = %v", err)
			}
			if child.ID != "" || child.DisplayName != "" || child.LocalName != "" || child.QueryName != "" || child.Description != "" {
				t.Errorf("child naming not cleared: %+v", child)
			}
			if child.ParentTypeID != parent.ID {
				t.Errorf("ParentTypeID = %q, want %q", child.ParentTypeID, parent.ID)
			}
			if child.BaseTypeID != b {
				t.Errorf("BaseTypeID = %q, want %q", child.BaseTypeID, b)
			}
			if len(child.PropertyDefinitions) != len(parent.PropertyDefinitions) {
				t.Fatalf("len(PropertyDefinitions) = %d, want %d", len(child.PropertyDefinitions), len(parent.PropertyDefinitions))
			}
			for id, pd := range child.PropertyDefinitions {
				if !pd.Inherited {
					t.Errorf("%s.Inherited = false, want true", id)
				}
				if pd == parent.PropertyDefinitions[id] {
					t.Errorf("%s shares its definition with the parent", id)
				}
			}
			if parent.PropertyDefinition("x:custom").Inherited {
				t.Error("deriving a child changed the parent's definition")
			}
		})
	}
}

func TestCreateChildTypeDefinition_Errors(t *testing.T) {
	f := New()
	folder, err := f.CreateBaseFolderTypeDefinition(cmis.Version11)
	if err != nil {
		t.Fatalf("CreateBaseFolderTypeDefinition() error = %v", err)
	}

	if _, err := f.CreateChildTypeDefinition(nil); !cmis.IsInvalidArgument(err) {
		t.Errorf("CreateChildTypeDefinition(nil) error = %v, want invalid argument", err)
	}
	if _, err := f.CreateChildDocumentTypeDefinition(folder); !cmis.IsInvalidArgument(err) {
		t.Errorf("CreateChildDocumentTypeDefinition(folder) error = %v, want invalid argument", err)
	}
	if _, err := f.CreateChildFolderTypeDefinition(folder); err != nil {
		t.Errorf("CreateChildFolderTypeDefinition(folder) error = %v", err)
	}
}

func TestCreateBaseTypeDefinitions(t *testing.T) {
	f := New()

	tests := []struct {
		version cmis.Version
		want    int
	}{
		{cmis.Version10, 4},
		{cmis.Version11, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.version), func(t *testing.T) {
			types, err := f.CreateBaseTypeDefinitions(tt.version)
			if err != nil {
				t.Fatalf("CreateBaseTypeDefinitions() error = %v", err)
			}
			if len(types) != tt.want {
				t.Errorf("len(types) = %d, want %d", len(types), tt.want)
			}
		})
	}

	if _, err := f.CreateBaseTypeDefinitions("2.0"); !cmis.IsInvalidArgument(err) {
		t.Errorf("CreateBaseTypeDefinitions(2.0) error = %v, want invalid argument", err)
	}
}
