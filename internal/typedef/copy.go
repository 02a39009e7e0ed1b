package typedef

import (
	"slices"

	"cmis-go/internal/cmis"
)

// Copy returns a deep copy of td allocated through the constructor
// registered for its base type. Property definitions are only copied when
// includePropertyDefinitions is set.
func (f *Factory) Copy(td *cmis.TypeDefinition, includePropertyDefinitions bool) (*cmis.TypeDefinition, error) {
	if td == nil {
		return nil, nil
	}
	if !td.BaseTypeID.Valid() {
		return nil, cmis.NewRuntimeError("Unknown base type: "+string(td.BaseTypeID), nil)
	}
	c, err := f.allocate(td.BaseTypeID)
	if err != nil {
		return nil, err
	}

	c.ID = td.ID
	c.LocalName = td.LocalName
	c.LocalNamespace = td.LocalNamespace
	c.DisplayName = td.DisplayName
	c.QueryName = td.QueryName
	c.Description = td.Description
	c.BaseTypeID = td.BaseTypeID
	c.ParentTypeID = td.ParentTypeID
	c.Creatable = td.Creatable
	c.Fileable = td.Fileable
	c.Queryable = td.Queryable
	c.FulltextIndexed = td.FulltextIndexed
	c.IncludedInSupertypeQuery = td.IncludedInSupertypeQuery
	c.ControllablePolicy = td.ControllablePolicy
	c.ControllableACL = td.ControllableACL
	if td.TypeMutability != nil {
		tm := *td.TypeMutability
		c.TypeMutability = &tm
	}

	switch td.BaseTypeID {
	case cmis.BaseTypeDocument:
		c.Versionable = td.Versionable
		c.ContentStreamAllowed = td.ContentStreamAllowed
	case cmis.BaseTypeRelationship:
		c.AllowedSourceTypeIDs = slices.Clone(td.AllowedSourceTypeIDs)
		c.AllowedTargetTypeIDs = slices.Clone(td.AllowedTargetTypeIDs)
	}

	if includePropertyDefinitions {
		for _, pd := range td.PropertyDefinitions {
			pc, err := f.CopyPropertyDefinition(pd)
			if err != nil {
				return nil, err
			}
			c.AddPropertyDefinition(pc)
		}
	}
	return c, nil
}

// CopyPropertyDefinition returns a deep copy of pd. Constraint fields are
// only carried over when they apply to the datatype.
func (f *Factory) CopyPropertyDefinition(pd *cmis.PropertyDefinition) (*cmis.PropertyDefinition, error) {
	if pd == nil {
		return nil, nil
	}

	c := &cmis.PropertyDefinition{
		ID:             pd.ID,
		LocalName:      pd.LocalName,
		LocalNamespace: pd.LocalNamespace,
		DisplayName:    pd.DisplayName,
		Description:    pd.Description,
		QueryName:      pd.QueryName,
		PropertyType:   pd.PropertyType,
		Cardinality:    pd.Cardinality,
		Updatability:   pd.Updatability,
		Inherited:      pd.Inherited,
		Required:       pd.Required,
		Queryable:      pd.Queryable,
		Orderable:      pd.Orderable,
		DefaultValue:   slices.Clone(pd.DefaultValue),
		Choices:        copyChoices(pd.Choices),
	}
	if pd.OpenChoice != nil {
		c.OpenChoice = cmis.BoolPtr(*pd.OpenChoice)
	}

	switch pd.PropertyType {
	case cmis.PropertyTypeBoolean, cmis.PropertyTypeHTML, cmis.PropertyTypeID, cmis.PropertyTypeURI:
	case cmis.PropertyTypeDateTime:
		c.Resolution = pd.Resolution
	case cmis.PropertyTypeDecimal:
		if pd.MinDecimal != nil {
			c.MinDecimal = cmis.DecimalPtr(*pd.MinDecimal)
		}
		if pd.MaxDecimal != nil {
			c.MaxDecimal = cmis.DecimalPtr(*pd.MaxDecimal)
		}
		c.Precision = pd.Precision
	case cmis.PropertyTypeInteger:
		if pd.MinInteger != nil {
			c.MinInteger = cmis.Int64Ptr(*pd.MinInteger)
		}
		if pd.MaxInteger != nil {
			c.MaxInteger = cmis.Int64Ptr(*pd.MaxInteger)
		}
	case cmis.PropertyTypeString:
		if pd.MaxLength != nil {
			c.MaxLength = cmis.Int64Ptr(*pd.MaxLength)
		}
	default:
		return nil, cmis.NewRuntimeError("Unknown datatype: "+string(pd.PropertyType), nil)
	}
	return c, nil
}

func copyChoices(choices []*cmis.Choice) []*cmis.Choice {
	if choices == nil {
		return nil
	}
	out := make([]*cmis.Choice, len(choices))
	for i, ch := range choices {
		out[i] = &cmis.Choice{
			DisplayName: ch.DisplayName,
			Value:       slices.Clone(ch.Value),
			Choices:     copyChoices(ch.Choices),
		}
	}
	return out
}

// CopyForVersion copies td and removes everything version v does not know
// about. Item and secondary types cannot be expressed in CMIS 1.0.
func (f *Factory) CopyForVersion(td *cmis.TypeDefinition, includePropertyDefinitions bool, v cmis.Version) (*cmis.TypeDefinition, error) {
	if td == nil {
		return nil, nil
	}
	if err := checkVersion(v, td.BaseTypeID); err != nil {
		return nil, err
	}
	c, err := f.Copy(td, includePropertyDefinitions)
	if err != nil {
		return nil, err
	}
	if v == cmis.Version10 {
		c.TypeMutability = nil
		for _, id := range Since11PropertyIDs() {
			c.RemovePropertyDefinition(id)
		}
	}
	return c, nil
}
