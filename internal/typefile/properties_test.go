package typefile

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"cmis-go/internal/cmis"
	"cmis-go/internal/validator"
)

func TestPropertySet_Build(t *testing.T) {
	m := newBaseTypes(t)
	doc, err := Parse([]byte(invoiceDoc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	types, err := doc.Build(m, m.Factory())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for _, td := range types {
		if _, err := m.AddTypeDefinition(context.Background(), td); err != nil {
			t.Fatalf("AddTypeDefinition() error = %v", err)
		}
	}

	ps, err := ParseProperties([]byte(`
cmis:objectTypeId: custom:invoice
cmis:name: march.pdf
custom:amount: "12.50"
custom:priority: 3
custom:tags: [red, green]
`))
	if err != nil {
		t.Fatalf("ParseProperties() error = %v", err)
	}
	props, err := ps.Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := props.Get("custom:amount").FirstValue(); !got.(decimal.Decimal).Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("custom:amount = %v, want 12.5", got)
	}
	if got := props.Get("custom:priority").FirstValue(); got != int64(3) {
		t.Errorf("custom:priority = %#v, want int64 3", got)
	}
	if got := props.Get("custom:tags").Values; len(got) != 2 {
		t.Errorf("custom:tags = %v, want 2 values", got)
	}
	if pt := props.Get(cmis.PropObjectTypeID).PropertyType; pt != cmis.PropertyTypeID {
		t.Errorf("cmis:objectTypeId type = %q, want id", pt)
	}
	if err := validator.ValidateObjectProperties(m, props, true); err != nil {
		t.Errorf("ValidateObjectProperties() error = %v", err)
	}

	tests := []struct {
		name  string
		yaml  string
		check func(error) bool
	}{
		{name: "no type", yaml: "cmis:name: x\n", check: cmis.IsInvalidArgument},
		{name: "unknown type", yaml: "cmis:objectTypeId: custom:none\n", check: cmis.IsObjectNotFound},
		{name: "bad value", yaml: "cmis:objectTypeId: custom:invoice\ncustom:priority: high\n", check: cmis.IsInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := ParseProperties([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseProperties() error = %v", err)
			}
			if _, err := ps.Build(m); !tt.check(err) {
				t.Errorf("Build() error = %v", err)
			}
		})
	}
}

func TestPropertySet_UnknownPropertyKeptForValidation(t *testing.T) {
	m := newBaseTypes(t)
	ps := PropertySet{
		cmis.PropObjectTypeID: "cmis:document",
		"custom:nothing":      42,
	}
	props, err := ps.Build(m)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := props.Get("custom:nothing").FirstValue(); got != "42" {
		t.Errorf("custom:nothing = %#v, want \"42\"", got)
	}
	if err := validator.ValidateObjectProperties(m, props, false); !cmis.IsConstraint(err) {
		t.Errorf("ValidateObjectProperties() error = %v, want constraint", err)
	}
}
