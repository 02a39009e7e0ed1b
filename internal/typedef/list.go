package typedef

import (
	"cmis-go/internal/cmis"
)

// CreateTypeDefinitionList pages through the children of typeID, or through
// the base types when typeID is empty. A nil maxItems returns every
// remaining type and a nil skipCount starts at the first.
func (f *Factory) CreateTypeDefinitionList(tm cmis.TypeManager, typeID string, includePropertyDefinitions bool, maxItems, skipCount *int64) (*cmis.TypeDefinitionList, error) {
	var children []*cmis.TypeDefinitionContainer
	if typeID == "" {
		children = tm.GetRootTypes()
	} else {
		tc := tm.GetTypeByID(typeID)
		if tc == nil {
			return nil, cmis.NewObjectNotFoundError("Type '%s' does not exist!", typeID)
		}
		children = tc.Children
	}

	skip := int64(0)
	if skipCount != nil && *skipCount > 0 {
		skip = *skipCount
	}
	limit := int64(len(children))
	if maxItems != nil && *maxItems >= 0 {
		limit = *maxItems
	}

	result := &cmis.TypeDefinitionList{
		List:     []*cmis.TypeDefinition{},
		NumItems: int64(len(children)),
	}
	for i := skip; i < int64(len(children)); i++ {
		if int64(len(result.List)) >= limit {
			result.HasMoreItems = true
			break
		}
		c, err := f.Copy(children[i].TypeDefinition, includePropertyDefinitions)
		if err != nil {
			return nil, err
		}
		result.List = append(result.List, c)
	}
	return result, nil
}

// CreateTypeDescendants returns the descendants of typeID up to depth
// levels, or the base types and their descendants when typeID is empty.
// A nil depth or -1 means unlimited.
func (f *Factory) CreateTypeDescendants(tm cmis.TypeManager, typeID string, depth *int64, includePropertyDefinitions bool) ([]*cmis.TypeDefinitionContainer, error) {
	d := int64(-1)
	if depth != nil {
		d = *depth
		if d == 0 {
			return nil, cmis.NewInvalidArgumentError("depth must not be 0!")
		}
		if d < -1 {
			return nil, cmis.NewInvalidArgumentError("depth must not be < -1!")
		}
	}

	if typeID == "" {
		// The base types themselves count as the first level.
		roots := tm.GetRootTypes()
		result := make([]*cmis.TypeDefinitionContainer, 0, len(roots))
		for _, tc := range roots {
			c, err := f.copyTree(tc, d-1, includePropertyDefinitions)
			if err != nil {
				return nil, err
			}
			result = append(result, c)
		}
		return result, nil
	}

	tc := tm.GetTypeByID(typeID)
	if tc == nil {
		return nil, cmis.NewObjectNotFoundError("Type '%s' does not exist!", typeID)
	}
	return f.copyChildren(tc.Children, d, includePropertyDefinitions)
}

func (f *Factory) copyChildren(children []*cmis.TypeDefinitionContainer, depth int64, includePropertyDefinitions bool) ([]*cmis.TypeDefinitionContainer, error) {
	result := make([]*cmis.TypeDefinitionContainer, 0, len(children))
	for _, child := range children {
		c, err := f.copyTree(child, depth-1, includePropertyDefinitions)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// copyTree copies tc and up to depth further levels below it.
func (f *Factory) copyTree(tc *cmis.TypeDefinitionContainer, depth int64, includePropertyDefinitions bool) (*cmis.TypeDefinitionContainer, error) {
	td, err := f.Copy(tc.TypeDefinition, includePropertyDefinitions)
	if err != nil {
		return nil, err
	}
	c := &cmis.TypeDefinitionContainer{TypeDefinition: td}
	if depth == 0 || len(tc.Children) == 0 {
		return c, nil
	}
	c.Children, err = f.copyChildren(tc.Children, depth, includePropertyDefinitions)
	if err != nil {
		return nil, err
	}
	return c, nil
}
