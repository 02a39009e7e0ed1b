// Package validator checks property sets and type relationships against
// CMIS type definitions. All checks are synchronous preconditions that a
// repository runs once before creating or updating an object.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"cmis-go/internal/cmis"
)

// ValidateRequiredSystemProperties checks the minimum a property set needs
// before its type can be looked up.
func ValidateRequiredSystemProperties(props *cmis.Properties) error {
	if props.Len() == 0 {
		return cmis.NewInvalidArgumentError("No properties.")
	}
	if objectTypeID(props) == "" {
		return cmis.NewInvalidArgumentError("No type id in properties.")
	}
	return nil
}

func objectTypeID(props *cmis.Properties) string {
	p := props.Get(cmis.PropObjectTypeID)
	if p == nil {
		return ""
	}
	s, _ := p.FirstValue().(string)
	return s
}

// ValidateProperties checks props against typeDef. System properties are
// skipped; every other property must be defined by the type and satisfy its
// definition. With checkMandatory set, all required non-system properties
// must be present.
func ValidateProperties(typeDef *cmis.TypeDefinition, props *cmis.Properties, checkMandatory bool) error {
	return ValidatePropertiesWithSecondaryTypes(typeDef, nil, props, checkMandatory)
}

// ValidatePropertiesWithSecondaryTypes is ValidateProperties where the
// property definitions of the given secondary types also apply.
func ValidatePropertiesWithSecondaryTypes(typeDef *cmis.TypeDefinition, secondaryTypes []*cmis.TypeDefinition, props *cmis.Properties, checkMandatory bool) error {
	if typeDef == nil {
		return cmis.NewInvalidArgumentError("Type definition must be set!")
	}

	lookup := func(id string) *cmis.PropertyDefinition {
		if pd := typeDef.PropertyDefinition(id); pd != nil {
			return pd
		}
		for _, st := range secondaryTypes {
			if pd := st.PropertyDefinition(id); pd != nil {
				return pd
			}
		}
		return nil
	}

	for _, prop := range props.List() {
		if IsSystemProperty(typeDef.BaseTypeID, prop.ID) {
			continue
		}
		pd := lookup(prop.ID)
		if pd == nil {
			return cmis.NewConstraintError("Unknown property %s in type %s", prop.ID, typeDef.ID)
		}
		if err := validateProperty(pd, prop); err != nil {
			return err
		}
	}

	if !checkMandatory {
		return nil
	}

	var missing []string
	checkRequired := func(td *cmis.TypeDefinition) {
		for _, pd := range td.PropertyDefinitions {
			if !pd.Required || IsSystemProperty(typeDef.BaseTypeID, pd.ID) {
				continue
			}
			if p := props.Get(pd.ID); p == nil || len(p.Values) == 0 {
				missing = append(missing, pd.ID)
			}
		}
	}
	checkRequired(typeDef)
	for _, st := range secondaryTypes {
		checkRequired(st)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		missing = compactSorted(missing)
		return cmis.NewConstraintError("The following mandatory properties are missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

func compactSorted(ids []string) []string {
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// ValidateObjectProperties resolves the object type and the secondary types
// named in props through tm and validates props against them.
func ValidateObjectProperties(tm cmis.TypeManager, props *cmis.Properties, checkMandatory bool) error {
	if err := ValidateRequiredSystemProperties(props); err != nil {
		return err
	}
	typeID := objectTypeID(props)
	tc := tm.GetTypeByID(typeID)
	if tc == nil {
		return cmis.NewObjectNotFoundError("Type %s is unknown!", typeID)
	}

	var secondaryTypes []*cmis.TypeDefinition
	if p := props.Get(cmis.PropSecondaryObjectTypeIDs); p != nil {
		for _, v := range p.Values {
			id, ok := v.(string)
			if !ok {
				return cmis.NewInvalidArgumentError("Property %s has the wrong data type!", cmis.PropSecondaryObjectTypeIDs)
			}
			st := tm.GetTypeByID(id)
			if st == nil {
				return cmis.NewObjectNotFoundError("Secondary type %s is unknown!", id)
			}
			if st.TypeDefinition.BaseTypeID != cmis.BaseTypeSecondary {
				return cmis.NewConstraintError("Type %s is not a secondary type!", id)
			}
			secondaryTypes = append(secondaryTypes, st.TypeDefinition)
		}
	}
	return ValidatePropertiesWithSecondaryTypes(tc.TypeDefinition, secondaryTypes, props, checkMandatory)
}

// ValidateVersionStateForCreate checks that a versionable type is not
// created unversioned and a non-versionable type is. An empty state is not
// checked.
func ValidateVersionStateForCreate(typeDef *cmis.TypeDefinition, vs cmis.VersioningState) error {
	if vs == "" {
		return nil
	}
	if typeDef.Versionable && vs == cmis.VersioningStateNone {
		return cmis.NewConstraintError("The versioning state flag is incompatible with type %s: versionable types must not be created with versioning state none", typeDef.ID)
	}
	if !typeDef.Versionable && vs != cmis.VersioningStateNone {
		return cmis.NewConstraintError("The versioning state flag is incompatible with type %s: non-versionable types must be created with versioning state none", typeDef.ID)
	}
	return nil
}

// ValidateAllowedChildObjectTypes checks that objects of childTypeDef may be
// filed in a folder restricted to allowedChildTypes.
func ValidateAllowedChildObjectTypes(childTypeDef *cmis.TypeDefinition, allowedChildTypes []string) error {
	return validateAllowedTypes(childTypeDef, allowedChildTypes, "in this folder")
}

// ValidateAllowedRelationshipTypes checks the source and target types of a
// relationship against the relationship type's allow-lists.
func ValidateAllowedRelationshipTypes(relTypeDef, sourceTypeDef, targetTypeDef *cmis.TypeDefinition) error {
	if err := validateAllowedTypes(sourceTypeDef, relTypeDef.AllowedSourceTypeIDs, "as source type in this relationship"); err != nil {
		return err
	}
	return validateAllowedTypes(targetTypeDef, relTypeDef.AllowedTargetTypeIDs, "as target type in this relationship")
}

// validateAllowedTypes treats an empty allow-list as allowing every type.
func validateAllowedTypes(typeDef *cmis.TypeDefinition, allowed []string, description string) error {
	if len(allowed) == 0 {
		return nil
	}
	if !newStringSet(allowed).Contains(typeDef.ID) {
		return cmis.NewConstraintError("The requested type %s is not allowed %s", typeDef.ID, description)
	}
	return nil
}

// ValidateACL rejects ACEs for types whose ACL cannot be controlled.
func ValidateACL(typeDef *cmis.TypeDefinition, addACEs, removeACEs *cmis.ACL) error {
	if typeDef.ControllableACL {
		return nil
	}
	if addACEs.Len() > 0 || removeACEs.Len() > 0 {
		return cmis.NewConstraintError("ACL set for type %s that is not controllableACL", typeDef.ID)
	}
	return nil
}

// ValidateContentAllowed checks the presence of content against the type's
// content stream policy.
func ValidateContentAllowed(typeDef *cmis.TypeDefinition, hasContent bool) error {
	switch typeDef.ContentStreamAllowed {
	case cmis.ContentStreamNotAllowed:
		if hasContent {
			return cmis.NewConstraintError("Type %s does not allow content", typeDef.ID)
		}
	case cmis.ContentStreamRequired:
		if !hasContent {
			return cmis.NewConstraintError("Type %s requires content", typeDef.ID)
		}
	}
	return nil
}

func describeValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
