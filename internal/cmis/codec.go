package cmis

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalTypeDefinition encodes td as JSON.
func MarshalTypeDefinition(td *TypeDefinition) ([]byte, error) {
	b, err := json.Marshal(td)
	if err != nil {
		return nil, fmt.Errorf("encoding type %s: %w", td.ID, err)
	}
	return b, nil
}

// UnmarshalTypeDefinition decodes a type definition written by
// MarshalTypeDefinition. Default values and choice values are converted
// back to the Go types of their property's datatype.
func UnmarshalTypeDefinition(data []byte) (*TypeDefinition, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var td TypeDefinition
	if err := dec.Decode(&td); err != nil {
		return nil, fmt.Errorf("decoding type definition: %w", err)
	}
	if err := NormalizeTypeDefinition(&td); err != nil {
		return nil, err
	}
	return &td, nil
}

// NormalizeTypeDefinition converts loosely typed default and choice values
// in place, as left behind by JSON or YAML decoding.
func NormalizeTypeDefinition(td *TypeDefinition) error {
	for _, pd := range td.PropertyDefinitions {
		vs, err := ConvertValues(pd.PropertyType, pd.DefaultValue)
		if err != nil {
			return fmt.Errorf("type %s: default value of %s: %w", td.ID, pd.ID, err)
		}
		pd.DefaultValue = vs
		if err := normalizeChoices(pd.PropertyType, pd.Choices); err != nil {
			return fmt.Errorf("type %s: choices of %s: %w", td.ID, pd.ID, err)
		}
	}
	return nil
}

func normalizeChoices(pt PropertyType, choices []*Choice) error {
	for _, c := range choices {
		vs, err := ConvertValues(pt, c.Value)
		if err != nil {
			return err
		}
		c.Value = vs
		if err := normalizeChoices(pt, c.Choices); err != nil {
			return err
		}
	}
	return nil
}
