package typefile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cmis-go/internal/cmis"
	"cmis-go/internal/typedef"
	"cmis-go/internal/typemanager"
)

const invoiceDoc = `
types:
  - id: custom:invoice
    parent: cmis:document
    display_name: Invoice
    versionable: false
    content_stream_allowed: required
    type_mutability:
      can_create: true
      can_update: true
      can_delete: true
    properties:
      - id: custom:amount
        type: decimal
        required: true
        min_value: "0"
        max_value: "99999.99"
        default: ["1.50"]
      - id: custom:priority
        type: integer
        min_value: 1
        max_value: 3
        choices:
          - display_name: low
            value: [1]
          - display_name: high
            value: [3]
      - id: custom:due
        type: datetime
        default: ["2024-06-30T00:00:00Z"]
      - id: custom:tags
        type: string
        cardinality: multi
        max_length: 10
  - id: custom:creditnote
    parent: custom:invoice
    display_name: Credit Note
`

func newBaseTypes(t *testing.T) *typemanager.Manager {
	t.Helper()
	m, err := typemanager.New(nil, cmis.Version11, nil, nil)
	if err != nil {
		t.Fatalf("typemanager.New() error = %v", err)
	}
	return m
}

func TestParseAndBuild(t *testing.T) {
	doc, err := Parse([]byte(invoiceDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Types) != 2 {
		t.Fatalf("len(Types) = %d, want 2", len(doc.Types))
	}

	tm := newBaseTypes(t)
	types, err := doc.Build(tm, typedef.New())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	invoice := types[0]
	if invoice.BaseTypeID != cmis.BaseTypeDocument || invoice.ParentTypeID != "cmis:document" {
		t.Errorf("BaseTypeID = %q, ParentTypeID = %q", invoice.BaseTypeID, invoice.ParentTypeID)
	}
	if invoice.Versionable || invoice.ContentStreamAllowed != cmis.ContentStreamRequired {
		t.Errorf("Versionable = %v, ContentStreamAllowed = %q", invoice.Versionable, invoice.ContentStreamAllowed)
	}
	if name := invoice.PropertyDefinition(cmis.PropName); name == nil || !name.Inherited {
		t.Errorf("cmis:name = %+v, want inherited", name)
	}

	amount := invoice.PropertyDefinition("custom:amount")
	if amount == nil || amount.Inherited || !amount.Required {
		t.Fatalf("custom:amount = %+v, want declared and required", amount)
	}
	if amount.Cardinality != cmis.CardinalitySingle || amount.Updatability != cmis.UpdatabilityReadWrite {
		t.Errorf("Cardinality = %q, Updatability = %q, want defaults", amount.Cardinality, amount.Updatability)
	}
	if !amount.MaxDecimal.Equal(decimal.RequireFromString("99999.99")) || !amount.MinDecimal.Equal(decimal.Zero) {
		t.Errorf("range = [%v, %v]", amount.MinDecimal, amount.MaxDecimal)
	}
	if d, ok := amount.DefaultValue[0].(decimal.Decimal); !ok || !d.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("DefaultValue = %#v, want decimal 1.5", amount.DefaultValue)
	}

	priority := invoice.PropertyDefinition("custom:priority")
	if *priority.MinInteger != 1 || *priority.MaxInteger != 3 {
		t.Errorf("range = [%d, %d], want [1, 3]", *priority.MinInteger, *priority.MaxInteger)
	}
	if v, ok := priority.Choices[1].Value[0].(int64); !ok || v != 3 {
		t.Errorf("Choices[1].Value = %#v, want int64 3", priority.Choices[1].Value)
	}

	due := invoice.PropertyDefinition("custom:due")
	if v, ok := due.DefaultValue[0].(time.Time); !ok || !v.Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DefaultValue = %#v, want 2024-06-30", due.DefaultValue)
	}

	credit := types[1]
	if credit.ParentTypeID != "custom:invoice" {
		t.Errorf("ParentTypeID = %q, want custom:invoice", credit.ParentTypeID)
	}
	if pd := credit.PropertyDefinition("custom:amount"); pd == nil || !pd.Inherited {
		t.Errorf("custom:amount on child = %+v, want inherited", pd)
	}
	if credit.ContentStreamAllowed != cmis.ContentStreamRequired {
		t.Errorf("ContentStreamAllowed = %q, want inherited %q", credit.ContentStreamAllowed, cmis.ContentStreamRequired)
	}
}

func TestBuild_AddsToTypeManager(t *testing.T) {
	doc, err := Parse([]byte(invoiceDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	m := newBaseTypes(t)
	types, err := doc.Build(m, m.Factory())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, td := range types {
		if _, err := m.AddTypeDefinition(context.Background(), td); err != nil {
			t.Fatalf("AddTypeDefinition(%s) error = %v", td.ID, err)
		}
	}
	if m.GetTypeByID("custom:creditnote") == nil {
		t.Error("custom:creditnote not added")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "types:\n  - id: a\n    parent: cmis:document\n    colour: red\n"},
		{name: "not yaml", doc: "types: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}

	doc, err := Parse(nil)
	if err != nil || len(doc.Types) != 0 {
		t.Errorf("Parse(nil) = %v, %v, want empty document", doc, err)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing id", doc: "types:\n  - parent: cmis:document\n"},
		{name: "unknown parent", doc: "types:\n  - id: a\n    parent: custom:none\n"},
		{name: "bad property type", doc: "types:\n  - id: a\n    parent: cmis:document\n    properties:\n      - id: p\n        type: money\n"},
		{name: "bad default", doc: "types:\n  - id: a\n    parent: cmis:document\n    properties:\n      - id: p\n        type: integer\n        default: [abc]\n"},
		{name: "range on string", doc: "types:\n  - id: a\n    parent: cmis:document\n    properties:\n      - id: p\n        type: string\n        min_value: 1\n"},
	}

	tm := newBaseTypes(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := doc.Build(tm, typedef.New()); err == nil {
				t.Error("Build() error = nil, want error")
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(invoiceDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	tm := newBaseTypes(t)
	types, err := doc.Build(tm, typedef.New())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := FromTypeDefinitions(types).Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	again, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse() of encoded document error = %v\n%s", err, buf.String())
	}
	if len(again.Types[1].Properties) != 0 {
		t.Errorf("child exported %d properties, want only declared ones", len(again.Types[1].Properties))
	}

	rebuilt, err := again.Build(tm, typedef.New())
	if err != nil {
		t.Fatalf("Build() of encoded document error = %v", err)
	}
	amount := rebuilt[0].PropertyDefinition("custom:amount")
	if amount == nil || !amount.MaxDecimal.Equal(decimal.RequireFromString("99999.99")) {
		t.Errorf("custom:amount = %+v after round trip", amount)
	}
	if pd := rebuilt[0].PropertyDefinition("custom:priority"); pd == nil || *pd.MaxInteger != 3 || len(pd.Choices) != 2 {
		t.Errorf("custom:priority = %+v after round trip", pd)
	}
	if rebuilt[0].TypeMutability == nil || !rebuilt[0].TypeMutability.CanDelete {
		t.Errorf("TypeMutability = %+v after round trip", rebuilt[0].TypeMutability)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.yaml")
	if err := os.WriteFile(path, []byte(invoiceDoc), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(doc.Types) != 2 {
		t.Errorf("len(Types) = %d, want 2", len(doc.Types))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("ReadFile() of a missing file succeeded")
	}
}
