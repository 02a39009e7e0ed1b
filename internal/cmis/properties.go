package cmis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// PropertyData is one property of an object instance. Values are typed by
// PropertyType: bool, time.Time, decimal.Decimal, int64 or string.
type PropertyData struct {
	ID           string
	LocalName    string
	DisplayName  string
	QueryName    string
	PropertyType PropertyType
	Values       []any
}

// FirstValue returns the first value, or nil when the property is empty.
func (p *PropertyData) FirstValue() any {
	if len(p.Values) == 0 {
		return nil
	}
	return p.Values[0]
}

func newPropertyData[T any](pt PropertyType, id string, values []T) *PropertyData {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return &PropertyData{ID: id, PropertyType: pt, Values: vs}
}

func NewStringProperty(id string, values ...string) *PropertyData {
	return newPropertyData(PropertyTypeString, id, values)
}

func NewIDProperty(id string, values ...string) *PropertyData {
	return newPropertyData(PropertyTypeID, id, values)
}

func NewHTMLProperty(id string, values ...string) *PropertyData {
	return newPropertyData(PropertyTypeHTML, id, values)
}

func NewURIProperty(id string, values ...string) *PropertyData {
	return newPropertyData(PropertyTypeURI, id, values)
}

func NewIntegerProperty(id string, values ...int64) *PropertyData {
	return newPropertyData(PropertyTypeInteger, id, values)
}

func NewDecimalProperty(id string, values ...decimal.Decimal) *PropertyData {
	return newPropertyData(PropertyTypeDecimal, id, values)
}

func NewBooleanProperty(id string, values ...bool) *PropertyData {
	return newPropertyData(PropertyTypeBoolean, id, values)
}

func NewDateTimeProperty(id string, values ...time.Time) *PropertyData {
	return newPropertyData(PropertyTypeDateTime, id, values)
}

// Properties is an ordered set of properties keyed by id. A later Add with
// an existing id replaces the earlier property in place.
type Properties struct {
	list  []*PropertyData
	index map[string]int
}

func NewProperties(props ...*PropertyData) *Properties {
	p := &Properties{index: make(map[string]int)}
	for _, pd := range props {
		p.Add(pd)
	}
	return p
}

func (p *Properties) Add(pd *PropertyData) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	if i, ok := p.index[pd.ID]; ok {
		p.list[i] = pd
		return
	}
	p.index[pd.ID] = len(p.list)
	p.list = append(p.list, pd)
}

// Get returns the property with the given id, or nil.
func (p *Properties) Get(id string) *PropertyData {
	if p == nil {
		return nil
	}
	i, ok := p.index[id]
	if !ok {
		return nil
	}
	return p.list[i]
}

// List returns the properties in insertion order.
func (p *Properties) List() []*PropertyData {
	if p == nil {
		return nil
	}
	return p.list
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.list)
}

// ConvertValue coerces a loosely typed value (as produced by JSON or YAML
// decoding) into the Go representation used for pt.
func ConvertValue(pt PropertyType, v any) (any, error) {
	switch pt {
	case PropertyTypeBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			return strconv.ParseBool(b)
		}
	case PropertyTypeInteger:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case uint64:
			if n > math.MaxInt64 {
				return nil, fmt.Errorf("integer value %d overflows int64", n)
			}
			return int64(n), nil
		case float64:
			if n != math.Trunc(n) {
				return nil, fmt.Errorf("integer value %v has a fraction", n)
			}
			// 2^63 is the first float64 above MaxInt64.
			if n < math.MinInt64 || n >= -math.MinInt64 {
				return nil, fmt.Errorf("integer value %v overflows int64", n)
			}
			return int64(n), nil
		case json.Number:
			return n.Int64()
		case string:
			return strconv.ParseInt(n, 10, 64)
		}
	case PropertyTypeDecimal:
		switch d := v.(type) {
		case decimal.Decimal:
			return d, nil
		case float64:
			return decimal.NewFromFloat(d), nil
		case int:
			return decimal.NewFromInt(int64(d)), nil
		case int64:
			return decimal.NewFromInt(d), nil
		case json.Number:
			return decimal.NewFromString(d.String())
		case string:
			return decimal.NewFromString(d)
		}
	case PropertyTypeDateTime:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			return time.Parse(time.RFC3339Nano, t)
		}
	case PropertyTypeHTML, PropertyTypeID, PropertyTypeString, PropertyTypeURI:
		if s, ok := v.(string); ok {
			return s, nil
		}
	default:
		return nil, fmt.Errorf("unknown property type: %s", pt)
	}
	return nil, fmt.Errorf("cannot convert %T to %s", v, pt)
}

// ConvertValues applies ConvertValue to each element.
func ConvertValues(pt PropertyType, vs []any) ([]any, error) {
	if vs == nil {
		return nil, nil
	}
	out := make([]any, len(vs))
	for i, v := range vs {
		c, err := ConvertValue(pt, v)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// ValueKey returns a canonical string for a property value such that two
// values are equal exactly when their keys are equal.
func ValueKey(v any) string {
	switch x := v.(type) {
	case decimal.Decimal:
		return "d:" + x.String()
	case time.Time:
		return "t:" + x.UTC().Format(time.RFC3339Nano)
	case int:
		return "i:" + strconv.FormatInt(int64(x), 10)
	case int64:
		return "i:" + strconv.FormatInt(x, 10)
	case bool:
		return "b:" + strconv.FormatBool(x)
	case string:
		return "s:" + x
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// ValuesEqual compares two property values by value.
func ValuesEqual(a, b any) bool {
	return ValueKey(a) == ValueKey(b)
}
