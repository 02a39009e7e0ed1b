package validator

import (
	"slices"
	"time"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/shopspring/decimal"

	"cmis-go/internal/cmis"
)

func newStringSet(vals []string) mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(vals...)
}

// validateProperty runs the checks shared by all datatypes, then the
// datatype-specific bounds.
func validateProperty(pd *cmis.PropertyDefinition, prop *cmis.PropertyData) error {
	if prop.PropertyType != "" && prop.PropertyType != pd.PropertyType {
		return cmis.NewConstraintError("Property %s has the wrong data type: %s, expected %s", prop.ID, prop.PropertyType, pd.PropertyType)
	}
	if pd.Cardinality == cmis.CardinalitySingle && len(prop.Values) > 1 {
		return cmis.NewConstraintError("Property %s is single valued but %d values were given", prop.ID, len(prop.Values))
	}
	for _, v := range prop.Values {
		if v == nil {
			continue
		}
		if !hasGoType(pd.PropertyType, v) {
			return cmis.NewConstraintError("Property %s has a value of type %T, expected %s", prop.ID, v, pd.PropertyType)
		}
	}
	if pd.HasChoices() && (pd.OpenChoice == nil || !*pd.OpenChoice) {
		if err := validateChoices(pd, prop); err != nil {
			return err
		}
	}

	switch pd.PropertyType {
	case cmis.PropertyTypeInteger:
		return validateIntegerRange(pd, prop)
	case cmis.PropertyTypeDecimal:
		return validateDecimalRange(pd, prop)
	case cmis.PropertyTypeString:
		return validateStringLength(pd, prop)
	}
	return nil
}

func hasGoType(pt cmis.PropertyType, v any) bool {
	switch pt {
	case cmis.PropertyTypeBoolean:
		_, ok := v.(bool)
		return ok
	case cmis.PropertyTypeDateTime:
		_, ok := v.(time.Time)
		return ok
	case cmis.PropertyTypeDecimal:
		_, ok := v.(decimal.Decimal)
		return ok
	case cmis.PropertyTypeInteger:
		_, ok := v.(int64)
		return ok
	case cmis.PropertyTypeHTML, cmis.PropertyTypeID, cmis.PropertyTypeString, cmis.PropertyTypeURI:
		_, ok := v.(string)
		return ok
	}
	return false
}

// Bounds are only enforced when both ends of the range are defined.
func validateIntegerRange(pd *cmis.PropertyDefinition, prop *cmis.PropertyData) error {
	if pd.MinInteger == nil || pd.MaxInteger == nil {
		return nil
	}
	for _, v := range prop.Values {
		n, ok := v.(int64)
		if !ok {
			continue
		}
		if n < *pd.MinInteger || n > *pd.MaxInteger {
			return cmis.NewConstraintError("Property %s: value %d is out of range [%d, %d]", prop.ID, n, *pd.MinInteger, *pd.MaxInteger)
		}
	}
	return nil
}

func validateDecimalRange(pd *cmis.PropertyDefinition, prop *cmis.PropertyData) error {
	if pd.MinDecimal == nil || pd.MaxDecimal == nil {
		return nil
	}
	for _, v := range prop.Values {
		d, ok := v.(decimal.Decimal)
		if !ok {
			continue
		}
		if d.LessThan(*pd.MinDecimal) || d.GreaterThan(*pd.MaxDecimal) {
			return cmis.NewConstraintError("Property %s: value %s is out of range [%s, %s]", prop.ID, d, pd.MinDecimal, pd.MaxDecimal)
		}
	}
	return nil
}

// String length is measured in characters.
func validateStringLength(pd *cmis.PropertyDefinition, prop *cmis.PropertyData) error {
	if pd.MaxLength == nil {
		return nil
	}
	for _, v := range prop.Values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if n := utf8.RuneCountInString(s); int64(n) > *pd.MaxLength {
			return cmis.NewConstraintError("Property %s: value is %d characters long, maximum is %d", prop.ID, n, *pd.MaxLength)
		}
	}
	return nil
}

// validateChoices checks values against the choice list. When every choice
// holds at most one value, each supplied value must appear somewhere in the
// choice tree. Otherwise the supplied values must equal, in order, the value
// list of one choice.
func validateChoices(pd *cmis.PropertyDefinition, prop *cmis.PropertyData) error {
	if len(prop.Values) == 0 {
		return nil
	}
	choices := flattenChoices(pd.Choices, nil)

	if !hasMultiValueChoice(choices) {
		allowed := mapset.NewThreadUnsafeSet[string]()
		for _, ch := range choices {
			for _, v := range ch.Value {
				allowed.Add(cmis.ValueKey(v))
			}
		}
		for _, v := range prop.Values {
			if !allowed.Contains(cmis.ValueKey(v)) {
				return cmis.NewConstraintError("Property %s: value %v is not in the list of allowed choices", prop.ID, v)
			}
		}
		return nil
	}

	for _, ch := range choices {
		if slices.EqualFunc(ch.Value, prop.Values, cmis.ValuesEqual) {
			return nil
		}
	}
	return cmis.NewConstraintError("Property %s: values %s do not match any allowed choice", prop.ID, describeValues(prop.Values))
}

// flattenChoices returns every choice of the tree in depth-first order.
func flattenChoices(choices []*cmis.Choice, out []*cmis.Choice) []*cmis.Choice {
	for _, ch := range choices {
		out = append(out, ch)
		out = flattenChoices(ch.Choices, out)
	}
	return out
}

func hasMultiValueChoice(choices []*cmis.Choice) bool {
	for _, ch := range choices {
		if len(ch.Value) > 1 {
			return true
		}
	}
	return false
}
