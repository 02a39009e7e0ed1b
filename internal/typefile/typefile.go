// Package typefile reads and writes YAML documents describing custom types
// and property sets.
//
// A type document lists types in dependency order; a type may name a parent
// declared earlier in the same document:
//
//	types:
//	  - id: custom:invoice
//	    parent: cmis:document
//	    display_name: Invoice
//	    properties:
//	      - id: custom:amount
//	        type: decimal
//	        min_value: "0"
//	        default: ["1.50"]
package typefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"cmis-go/internal/cmis"
	"cmis-go/internal/typedef"
)

// Document is a list of custom types.
type Document struct {
	Types []TypeDoc `yaml:"types"`
}

// TypeDoc describes one type. Unset flags are inherited from the parent.
type TypeDoc struct {
	ID                       string         `yaml:"id"`
	Parent                   string         `yaml:"parent"`
	LocalName                string         `yaml:"local_name,omitempty"`
	LocalNamespace           string         `yaml:"local_namespace,omitempty"`
	QueryName                string         `yaml:"query_name,omitempty"`
	DisplayName              string         `yaml:"display_name,omitempty"`
	Description              string         `yaml:"description,omitempty"`
	Creatable                *bool          `yaml:"creatable,omitempty"`
	Fileable                 *bool          `yaml:"fileable,omitempty"`
	Queryable                *bool          `yaml:"queryable,omitempty"`
	FulltextIndexed          *bool          `yaml:"fulltext_indexed,omitempty"`
	IncludedInSupertypeQuery *bool          `yaml:"included_in_supertype_query,omitempty"`
	ControllablePolicy       *bool          `yaml:"controllable_policy,omitempty"`
	ControllableACL          *bool          `yaml:"controllable_acl,omitempty"`
	Versionable              *bool          `yaml:"versionable,omitempty"`
	ContentStreamAllowed     string         `yaml:"content_stream_allowed,omitempty"`
	AllowedSourceTypes       []string       `yaml:"allowed_source_types,omitempty"`
	AllowedTargetTypes       []string       `yaml:"allowed_target_types,omitempty"`
	TypeMutability           *MutabilityDoc `yaml:"type_mutability,omitempty"`
	Properties               []PropertyDoc  `yaml:"properties,omitempty"`
}

type MutabilityDoc struct {
	CanCreate bool `yaml:"can_create"`
	CanUpdate bool `yaml:"can_update"`
	CanDelete bool `yaml:"can_delete"`
}

// PropertyDoc describes a property definition declared by a type.
// Cardinality defaults to single and updatability to readwrite.
type PropertyDoc struct {
	ID           string      `yaml:"id"`
	LocalName    string      `yaml:"local_name,omitempty"`
	QueryName    string      `yaml:"query_name,omitempty"`
	DisplayName  string      `yaml:"display_name,omitempty"`
	Description  string      `yaml:"description,omitempty"`
	Type         string      `yaml:"type"`
	Cardinality  string      `yaml:"cardinality,omitempty"`
	Updatability string      `yaml:"updatability,omitempty"`
	Required     bool        `yaml:"required,omitempty"`
	Queryable    *bool       `yaml:"queryable,omitempty"`
	Orderable    bool        `yaml:"orderable,omitempty"`
	OpenChoice   *bool       `yaml:"open_choice,omitempty"`
	Default      []any       `yaml:"default,omitempty"`
	Choices      []ChoiceDoc `yaml:"choices,omitempty"`
	MinValue     any         `yaml:"min_value,omitempty"`
	MaxValue     any         `yaml:"max_value,omitempty"`
	MaxLength    *int64      `yaml:"max_length,omitempty"`
	Precision    int         `yaml:"precision,omitempty"`
	Resolution   string      `yaml:"resolution,omitempty"`
}

type ChoiceDoc struct {
	DisplayName string      `yaml:"display_name"`
	Value       []any       `yaml:"value,omitempty"`
	Choices     []ChoiceDoc `yaml:"choices,omitempty"`
}

// Parse decodes a type document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding type document: %w", err)
	}
	return &doc, nil
}

// ReadFile parses the type document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read type file %q: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Build derives a type definition for every entry. Parents are looked up in
// earlier entries first and then in tm. The results are not validated
// against tm; adding them to a type manager does that.
func (d *Document) Build(tm cmis.TypeManager, f *typedef.Factory) ([]*cmis.TypeDefinition, error) {
	built := make(map[string]*cmis.TypeDefinition, len(d.Types))
	out := make([]*cmis.TypeDefinition, 0, len(d.Types))
	for i := range d.Types {
		td, err := d.Types[i].build(tm, f, built)
		if err != nil {
			return nil, err
		}
		built[td.ID] = td
		out = append(out, td)
	}
	return out, nil
}

func (t *TypeDoc) build(tm cmis.TypeManager, f *typedef.Factory, built map[string]*cmis.TypeDefinition) (*cmis.TypeDefinition, error) {
	if t.ID == "" {
		return nil, cmis.NewInvalidArgumentError("Type without id in type document!")
	}
	parent, ok := built[t.Parent]
	if !ok {
		tc := tm.GetTypeByID(t.Parent)
		if tc == nil {
			return nil, cmis.NewInvalidArgumentError("Type %s: parent type '%s' does not exist!", t.ID, t.Parent)
		}
		parent = tc.TypeDefinition
	}

	td, err := f.CreateChildTypeDefinition(parent)
	if err != nil {
		return nil, err
	}
	td.ID = t.ID
	td.LocalName = t.LocalName
	td.QueryName = t.QueryName
	td.DisplayName = t.DisplayName
	td.Description = t.Description
	if t.LocalNamespace != "" {
		td.LocalNamespace = t.LocalNamespace
	}
	setBool(&td.Creatable, t.Creatable)
	setBool(&td.Fileable, t.Fileable)
	setBool(&td.Queryable, t.Queryable)
	setBool(&td.FulltextIndexed, t.FulltextIndexed)
	setBool(&td.IncludedInSupertypeQuery, t.IncludedInSupertypeQuery)
	setBool(&td.ControllablePolicy, t.ControllablePolicy)
	setBool(&td.ControllableACL, t.ControllableACL)
	setBool(&td.Versionable, t.Versionable)
	if t.ContentStreamAllowed != "" {
		td.ContentStreamAllowed = cmis.ContentStreamAllowed(t.ContentStreamAllowed)
	}
	if t.AllowedSourceTypes != nil {
		td.AllowedSourceTypeIDs = t.AllowedSourceTypes
	}
	if t.AllowedTargetTypes != nil {
		td.AllowedTargetTypeIDs = t.AllowedTargetTypes
	}
	if t.TypeMutability != nil {
		td.TypeMutability = &cmis.TypeMutability{
			CanCreate: t.TypeMutability.CanCreate,
			CanUpdate: t.TypeMutability.CanUpdate,
			CanDelete: t.TypeMutability.CanDelete,
		}
	}

	for i := range t.Properties {
		pd, err := t.Properties[i].build(f)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", t.ID, err)
		}
		td.AddPropertyDefinition(pd)
	}
	return td, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func (p *PropertyDoc) build(f *typedef.Factory) (*cmis.PropertyDefinition, error) {
	if p.ID == "" {
		return nil, cmis.NewInvalidArgumentError("Property without id!")
	}
	pt := cmis.PropertyType(p.Type)
	if !pt.Valid() {
		return nil, cmis.NewInvalidArgumentError("Property %s has an invalid type: %q", p.ID, p.Type)
	}
	card := cmis.CardinalitySingle
	if p.Cardinality != "" {
		card = cmis.Cardinality(p.Cardinality)
	}
	upd := cmis.UpdatabilityReadWrite
	if p.Updatability != "" {
		upd = cmis.Updatability(p.Updatability)
	}
	queryable := f.Options().Queryable
	if p.Queryable != nil {
		queryable = *p.Queryable
	}

	pd := f.NewPropertyDefinition(p.ID, p.DisplayName, p.Description, pt, card, upd, typedef.PropertyFlags{
		Required:  p.Required,
		Queryable: queryable,
		Orderable: p.Orderable,
	})
	if p.LocalName != "" {
		pd.LocalName = p.LocalName
	}
	if p.QueryName != "" {
		pd.QueryName = p.QueryName
	}
	if pd.DisplayName == "" {
		pd.DisplayName = p.ID
	}
	pd.OpenChoice = p.OpenChoice
	pd.MaxLength = p.MaxLength
	pd.Precision = cmis.DecimalPrecision(p.Precision)
	pd.Resolution = cmis.DateTimeResolution(p.Resolution)

	var err error
	if pd.DefaultValue, err = cmis.ConvertValues(pt, p.Default); err != nil {
		return nil, fmt.Errorf("default value of %s: %w", p.ID, err)
	}
	if pd.Choices, err = buildChoices(pt, p.Choices); err != nil {
		return nil, fmt.Errorf("choices of %s: %w", p.ID, err)
	}
	if err := setRange(pd, p.MinValue, p.MaxValue); err != nil {
		return nil, fmt.Errorf("range of %s: %w", p.ID, err)
	}
	return pd, nil
}

func buildChoices(pt cmis.PropertyType, docs []ChoiceDoc) ([]*cmis.Choice, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]*cmis.Choice, len(docs))
	for i, c := range docs {
		vs, err := cmis.ConvertValues(pt, c.Value)
		if err != nil {
			return nil, err
		}
		children, err := buildChoices(pt, c.Choices)
		if err != nil {
			return nil, err
		}
		out[i] = &cmis.Choice{DisplayName: c.DisplayName, Value: vs, Choices: children}
	}
	return out, nil
}

// setRange applies min_value and max_value to integer and decimal
// properties. Other datatypes have no range.
func setRange(pd *cmis.PropertyDefinition, lo, hi any) error {
	if lo == nil && hi == nil {
		return nil
	}
	switch pd.PropertyType {
	case cmis.PropertyTypeInteger:
		for _, b := range []struct {
			v   any
			dst **int64
		}{{lo, &pd.MinInteger}, {hi, &pd.MaxInteger}} {
			if b.v == nil {
				continue
			}
			c, err := cmis.ConvertValue(cmis.PropertyTypeInteger, b.v)
			if err != nil {
				return err
			}
			*b.dst = cmis.Int64Ptr(c.(int64))
		}
	case cmis.PropertyTypeDecimal:
		for _, b := range []struct {
			v   any
			dst **decimal.Decimal
		}{{lo, &pd.MinDecimal}, {hi, &pd.MaxDecimal}} {
			if b.v == nil {
				continue
			}
			c, err := cmis.ConvertValue(cmis.PropertyTypeDecimal, b.v)
			if err != nil {
				return err
			}
			*b.dst = cmis.DecimalPtr(c.(decimal.Decimal))
		}
	default:
		return fmt.Errorf("%s properties have no range", pd.PropertyType)
	}
	return nil
}

// FromTypeDefinitions builds a document from types. Only the property
// definitions a type declares itself are written.
func FromTypeDefinitions(types []*cmis.TypeDefinition) *Document {
	doc := &Document{Types: make([]TypeDoc, 0, len(types))}
	for _, td := range types {
		t := TypeDoc{
			ID:                       td.ID,
			Parent:                   td.ParentTypeID,
			LocalName:                td.LocalName,
			LocalNamespace:           td.LocalNamespace,
			QueryName:                td.QueryName,
			DisplayName:              td.DisplayName,
			Description:              td.Description,
			Creatable:                cmis.BoolPtr(td.Creatable),
			Fileable:                 cmis.BoolPtr(td.Fileable),
			Queryable:                cmis.BoolPtr(td.Queryable),
			FulltextIndexed:          cmis.BoolPtr(td.FulltextIndexed),
			IncludedInSupertypeQuery: cmis.BoolPtr(td.IncludedInSupertypeQuery),
			ControllablePolicy:       cmis.BoolPtr(td.ControllablePolicy),
			ControllableACL:          cmis.BoolPtr(td.ControllableACL),
			ContentStreamAllowed:     string(td.ContentStreamAllowed),
			AllowedSourceTypes:       td.AllowedSourceTypeIDs,
			AllowedTargetTypes:       td.AllowedTargetTypeIDs,
		}
		if td.BaseTypeID == cmis.BaseTypeDocument {
			t.Versionable = cmis.BoolPtr(td.Versionable)
		}
		if td.TypeMutability != nil {
			t.TypeMutability = &MutabilityDoc{
				CanCreate: td.TypeMutability.CanCreate,
				CanUpdate: td.TypeMutability.CanUpdate,
				CanDelete: td.TypeMutability.CanDelete,
			}
		}
		for _, id := range td.PropertyDefinitionIDs() {
			pd := td.PropertyDefinitions[id]
			if pd.Inherited {
				continue
			}
			t.Properties = append(t.Properties, propertyDoc(pd))
		}
		doc.Types = append(doc.Types, t)
	}
	return doc
}

func propertyDoc(pd *cmis.PropertyDefinition) PropertyDoc {
	p := PropertyDoc{
		ID:           pd.ID,
		LocalName:    pd.LocalName,
		QueryName:    pd.QueryName,
		DisplayName:  pd.DisplayName,
		Description:  pd.Description,
		Type:         string(pd.PropertyType),
		Cardinality:  string(pd.Cardinality),
		Updatability: string(pd.Updatability),
		Required:     pd.Required,
		Queryable:    cmis.BoolPtr(pd.Queryable),
		Orderable:    pd.Orderable,
		OpenChoice:   pd.OpenChoice,
		Default:      formatValues(pd.DefaultValue),
		Choices:      choiceDocs(pd.Choices),
		MaxLength:    pd.MaxLength,
		Precision:    int(pd.Precision),
		Resolution:   string(pd.Resolution),
	}
	switch {
	case pd.MinInteger != nil || pd.MaxInteger != nil:
		if pd.MinInteger != nil {
			p.MinValue = *pd.MinInteger
		}
		if pd.MaxInteger != nil {
			p.MaxValue = *pd.MaxInteger
		}
	case pd.MinDecimal != nil || pd.MaxDecimal != nil:
		if pd.MinDecimal != nil {
			p.MinValue = pd.MinDecimal.String()
		}
		if pd.MaxDecimal != nil {
			p.MaxValue = pd.MaxDecimal.String()
		}
	}
	return p
}

func choiceDocs(choices []*cmis.Choice) []ChoiceDoc {
	if len(choices) == 0 {
		return nil
	}
	out := make([]ChoiceDoc, len(choices))
	for i, c := range choices {
		out[i] = ChoiceDoc{
			DisplayName: c.DisplayName,
			Value:       formatValues(c.Value),
			Choices:     choiceDocs(c.Choices),
		}
	}
	return out
}

// formatValues turns decimals and timestamps into strings that read back
// through cmis.ConvertValue without loss.
func formatValues(vs []any) []any {
	if len(vs) == 0 {
		return nil
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		switch x := v.(type) {
		case decimal.Decimal:
			out[i] = x.String()
		case time.Time:
			out[i] = x.Format(time.RFC3339Nano)
		default:
			out[i] = v
		}
	}
	return out
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding type document: %w", err)
	}
	return enc.Close()
}
