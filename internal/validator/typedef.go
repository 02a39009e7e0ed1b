package validator

import (
	"cmis-go/internal/cmis"
)

// ValidateTypeDefinition checks a new type before it is added to tm: it must
// be named, unused, and derived from an existing parent of the same base
// type that allows subtypes. Property definitions the type declares itself
// must not redefine a parent property.
func ValidateTypeDefinition(tm cmis.TypeManager, td *cmis.TypeDefinition) error {
	if td == nil {
		return cmis.NewInvalidArgumentError("Type definition must be set!")
	}
	if td.ID == "" {
		return cmis.NewInvalidArgumentError("Type id must be set!")
	}
	if !td.BaseTypeID.Valid() {
		return cmis.NewInvalidArgumentError("Type %s has an invalid base type: %q", td.ID, td.BaseTypeID)
	}
	if tm.GetTypeByID(td.ID) != nil {
		return cmis.NewConstraintError("Type %s already exists!", td.ID)
	}
	if td.ParentTypeID == "" {
		return cmis.NewInvalidArgumentError("Parent type id must be set!")
	}

	ptc := tm.GetTypeByID(td.ParentTypeID)
	if ptc == nil {
		return cmis.NewInvalidArgumentError("Parent type %s does not exist!", td.ParentTypeID)
	}
	parent := ptc.TypeDefinition
	if parent.BaseTypeID != td.BaseTypeID {
		return cmis.NewInvalidArgumentError("Type %s has base type %s but its parent %s has base type %s", td.ID, td.BaseTypeID, parent.ID, parent.BaseTypeID)
	}
	if parent.TypeMutability != nil && !parent.TypeMutability.CanCreate {
		return cmis.NewConstraintError("Parent type %s does not allow subtypes!", parent.ID)
	}
	if td.QueryName != "" && tm.GetTypeByQueryName(td.QueryName) != nil {
		return cmis.NewConstraintError("Query name %s is already in use!", td.QueryName)
	}

	for _, id := range td.PropertyDefinitionIDs() {
		pd := td.PropertyDefinitions[id]
		if err := validatePropertyDefinition(pd); err != nil {
			return err
		}
		if !pd.Inherited && parent.PropertyDefinition(id) != nil {
			return cmis.NewConstraintError("Property %s is already defined by parent type %s", id, parent.ID)
		}
	}
	return nil
}

func validatePropertyDefinition(pd *cmis.PropertyDefinition) error {
	if pd.ID == "" {
		return cmis.NewInvalidArgumentError("Property definition id must be set!")
	}
	if !pd.PropertyType.Valid() {
		return cmis.NewInvalidArgumentError("Property %s has an invalid datatype: %q", pd.ID, pd.PropertyType)
	}
	switch pd.Cardinality {
	case cmis.CardinalitySingle, cmis.CardinalityMulti:
	default:
		return cmis.NewInvalidArgumentError("Property %s has an invalid cardinality: %q", pd.ID, pd.Cardinality)
	}
	if pd.MinInteger != nil && pd.MaxInteger != nil && *pd.MinInteger > *pd.MaxInteger {
		return cmis.NewInvalidArgumentError("Property %s: minimum is greater than maximum", pd.ID)
	}
	if pd.MinDecimal != nil && pd.MaxDecimal != nil && pd.MinDecimal.GreaterThan(*pd.MaxDecimal) {
		return cmis.NewInvalidArgumentError("Property %s: minimum is greater than maximum", pd.ID)
	}
	if pd.MaxLength != nil && *pd.MaxLength < 0 {
		return cmis.NewInvalidArgumentError("Property %s: max length must not be negative", pd.ID)
	}
	return nil
}
