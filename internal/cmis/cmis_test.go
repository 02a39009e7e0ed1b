package cmis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("loading type: %w", NewObjectNotFoundError("Type %s is unknown!", "x"))

	if !errors.Is(err, &Error{Kind: KindObjectNotFound}) {
		t.Error("errors.Is() by kind = false, want true")
	}
	if !errors.Is(err, &Error{Kind: KindObjectNotFound, Message: "Type x is unknown!"}) {
		t.Error("errors.Is() by kind and message = false, want true")
	}
	if errors.Is(err, &Error{Kind: KindObjectNotFound, Message: "other"}) {
		t.Error("errors.Is() with other message = true, want false")
	}
	if errors.Is(err, &Error{Kind: KindConstraint}) {
		t.Error("errors.Is() with other kind = true, want false")
	}
	if !IsObjectNotFound(err) {
		t.Error("IsObjectNotFound() = false, want true")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf(plain error) is not empty")
	}
}

func TestNewRuntimeError(t *testing.T) {
	cause := errors.New("boom")
	err := NewRuntimeError(cause.Error(), cause)
	if !IsRuntime(err) {
		t.Errorf("IsRuntime() = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Error("runtime error does not unwrap to its cause")
	}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{in: "", want: Version11},
		{in: "1.1", want: Version11},
		{in: "1.0", want: Version10},
		{in: "2.0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				if !IsInvalidArgument(err) {
					t.Fatalf("ParseVersion() error = %v, want invalid argument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		pt      PropertyType
		in      any
		want    any
		wantErr bool
	}{
		{name: "bool", pt: PropertyTypeBoolean, in: true, want: true},
		{name: "bool from string", pt: PropertyTypeBoolean, in: "false", want: false},
		{name: "int", pt: PropertyTypeInteger, in: 7, want: int64(7)},
		{name: "integral float", pt: PropertyTypeInteger, in: 3.0, want: int64(3)},
		{name: "fractional float", pt: PropertyTypeInteger, in: 3.5, wantErr: true},
		{name: "float above int64", pt: PropertyTypeInteger, in: 1e20, wantErr: true},
		{name: "float below int64", pt: PropertyTypeInteger, in: -1e20, wantErr: true},
		{name: "float at 2^63", pt: PropertyTypeInteger, in: 9223372036854775808.0, wantErr: true},
		{name: "float at min int64", pt: PropertyTypeInteger, in: -9223372036854775808.0, want: int64(math.MinInt64)},
		{name: "infinite float", pt: PropertyTypeInteger, in: math.Inf(1), wantErr: true},
		{name: "json number", pt: PropertyTypeInteger, in: json.Number("42"), want: int64(42)},
		{name: "integer string", pt: PropertyTypeInteger, in: "-9", want: int64(-9)},
		{name: "decimal string", pt: PropertyTypeDecimal, in: "1.25", want: decimal.RequireFromString("1.25")},
		{name: "decimal int", pt: PropertyTypeDecimal, in: 2, want: decimal.NewFromInt(2)},
		{name: "datetime", pt: PropertyTypeDateTime, in: "2024-03-01T12:00:00Z", want: ts},
		{name: "bad datetime", pt: PropertyTypeDateTime, in: "yesterday", wantErr: true},
		{name: "id", pt: PropertyTypeID, in: "abc", want: "abc"},
		{name: "string from int", pt: PropertyTypeString, in: 1, wantErr: true},
		{name: "unknown type", pt: PropertyType("blob"), in: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertValue(tt.pt, tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ConvertValue() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConvertValue() error = %v", err)
			}
			if !ValuesEqual(got, tt.want) {
				t.Errorf("ConvertValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestValueKey(t *testing.T) {
	if !ValuesEqual(decimal.RequireFromString("1.50"), decimal.RequireFromString("1.5")) {
		t.Error("decimals 1.50 and 1.5 are not equal")
	}
	if !ValuesEqual(3, int64(3)) {
		t.Error("int 3 and int64 3 are not equal")
	}
	if ValuesEqual("1", int64(1)) {
		t.Error("string 1 and integer 1 are equal")
	}
	berlin := time.FixedZone("CET", 3600)
	if !ValuesEqual(time.Date(2024, 1, 1, 13, 0, 0, 0, berlin), time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)) {
		t.Error("the same instant in different zones is not equal")
	}
}

func TestProperties(t *testing.T) {
	props := NewProperties(
		NewIDProperty(PropObjectTypeID, "cmis:document"),
		NewStringProperty(PropName, "a"),
	)
	props.Add(NewStringProperty(PropName, "b"))

	if props.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", props.Len())
	}
	if got := props.Get(PropName).FirstValue(); got != "b" {
		t.Errorf("Get(name) = %v, want b", got)
	}
	if got := props.List()[0].ID; got != PropObjectTypeID {
		t.Errorf("List()[0] = %q, want %q", got, PropObjectTypeID)
	}
	if props.Get("missing") != nil {
		t.Error("Get(missing) is not nil")
	}

	var empty *Properties
	if empty.Get(PropName) != nil || empty.Len() != 0 || empty.List() != nil {
		t.Error("nil Properties is not empty")
	}
}

func TestTypeDefinition_PropertyDefinitions(t *testing.T) {
	td := &TypeDefinition{ID: "t", BaseTypeID: BaseTypeDocument}
	td.AddPropertyDefinition(&PropertyDefinition{ID: "z"})
	td.AddPropertyDefinition(&PropertyDefinition{ID: "a"})

	if got := td.PropertyDefinitionIDs(); len(got) != 2 || got[0] != "a" || got[1] != "z" {
		t.Errorf("PropertyDefinitionIDs() = %v, want [a z]", got)
	}
	td.RemovePropertyDefinition("z")
	if td.PropertyDefinition("z") != nil {
		t.Error("PropertyDefinition(z) still present after removal")
	}
	if !td.IsBaseType() {
		t.Error("IsBaseType() = false for a type without parent")
	}
}

func TestUnsupportedService(t *testing.T) {
	var s Service = UnsupportedService{}
	if _, err := s.GetObject(context.Background(), &GetObjectRequest{}); !IsNotSupported(err) {
		t.Errorf("GetObject() error = %v, want not supported", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
