package typefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"cmis-go/internal/cmis"
)

// PropertySet maps property ids to a single value or a list of values:
//
//	cmis:objectTypeId: custom:invoice
//	custom:amount: "12.50"
//	custom:tags: [red, green]
type PropertySet map[string]any

// ParseProperties decodes a property set.
func ParseProperties(data []byte) (PropertySet, error) {
	var ps PropertySet
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&ps); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding property set: %w", err)
	}
	if ps == nil {
		ps = PropertySet{}
	}
	return ps, nil
}

// ReadPropertiesFile parses the property set at path.
func ReadPropertiesFile(path string) (PropertySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read property file %q: %w", path, err)
	}
	ps, err := ParseProperties(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

// Build converts the set into typed properties. The datatype of each
// property comes from the object type and secondary types the set names;
// properties neither defines are kept as strings so validation can report
// them.
func (ps PropertySet) Build(tm cmis.TypeManager) (*cmis.Properties, error) {
	typeID, _ := ps[cmis.PropObjectTypeID].(string)
	if typeID == "" {
		return nil, cmis.NewInvalidArgumentError("No type id in properties.")
	}
	tc := tm.GetTypeByID(typeID)
	if tc == nil {
		return nil, cmis.NewObjectNotFoundError("Type %s is unknown!", typeID)
	}
	defs := []*cmis.TypeDefinition{tc.TypeDefinition}
	for _, v := range toList(ps[cmis.PropSecondaryObjectTypeIDs]) {
		id, _ := v.(string)
		if st := tm.GetTypeByID(id); st != nil {
			defs = append(defs, st.TypeDefinition)
		}
	}

	ids := make([]string, 0, len(ps))
	for id := range ps {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	props := cmis.NewProperties()
	for _, id := range ids {
		values := toList(ps[id])
		pd := lookup(defs, id)
		if pd == nil {
			strs := make([]any, len(values))
			for i, v := range values {
				strs[i] = fmt.Sprint(v)
			}
			props.Add(&cmis.PropertyData{ID: id, PropertyType: cmis.PropertyTypeString, Values: strs})
			continue
		}
		converted, err := cmis.ConvertValues(pd.PropertyType, values)
		if err != nil {
			return nil, cmis.NewInvalidArgumentError("Property %s: %v", id, err)
		}
		props.Add(&cmis.PropertyData{
			ID:           id,
			LocalName:    pd.LocalName,
			DisplayName:  pd.DisplayName,
			QueryName:    pd.QueryName,
			PropertyType: pd.PropertyType,
			Values:       converted,
		})
	}
	return props, nil
}

func lookup(defs []*cmis.TypeDefinition, id string) *cmis.PropertyDefinition {
	for _, td := range defs {
		if pd := td.PropertyDefinition(id); pd != nil {
			return pd
		}
	}
	return nil
}

func toList(v any) []any {
	switch x := v.(type) {
	case nil:
		return []any{}
	case []any:
		return x
	default:
		return []any{x}
	}
}
