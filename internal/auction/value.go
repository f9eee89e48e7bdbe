package auction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// ValueKind tags the variant held by a FieldValue
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

// ParseValueKind maps a type name given on the command line or in a query
// string to a ValueKind. An empty name means string.
func ParseValueKind(name string) (ValueKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "string", "str", "text":
		return KindString, nil
	case "int", "integer":
		return KindInt, nil
	default:
		return KindString, fmt.Errorf("unknown value type %q (want string or int)", name)
	}
}

// FieldValue is either a string or an integer. Equality filters on the store
// match on stored type, so the variant is always chosen explicitly.
type FieldValue struct {
	Kind ValueKind
	Str  string
	Int  int64
}

// StringValue wraps s
func StringValue(s string) FieldValue {
	return FieldValue{Kind: KindString, Str: s}
}

// IntValue wraps n
func IntValue(n int64) FieldValue {
	return FieldValue{Kind: KindInt, Int: n}
}

// ParseValue converts raw into a FieldValue of the given kind
func ParseValue(raw string, kind ValueKind) (FieldValue, error) {
	if kind == KindInt {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return FieldValue{}, fmt.Errorf("value %q is not an integer", raw)
		}
		return IntValue(n), nil
	}
	return StringValue(raw), nil
}

// Interface returns the underlying Go value
func (v FieldValue) Interface() interface{} {
	if v.Kind == KindInt {
		return v.Int
	}
	return v.Str
}

func (v FieldValue) String() string {
	if v.Kind == KindInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return v.Str
}

// UnmarshalJSON accepts a JSON string or an integral JSON number
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("value %s is not an integer", data)
		}
		*v = IntValue(n)
		return nil
	default:
		return fmt.Errorf("value must be a string or an integer, got %s", data)
	}
}

// MarshalJSON writes the variant as a JSON string or number
func (v FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Filter is a single-field equality filter
type Filter struct {
	Field string
	Value FieldValue
}

// NewFilter builds an equality filter on field
func NewFilter(field string, value FieldValue) Filter {
	return Filter{Field: field, Value: value}
}

// Document renders the filter for the store driver. A zero Filter matches
// every document.
func (f Filter) Document() bson.D {
	if f.Field == "" {
		return bson.D{}
	}
	return bson.D{{Key: f.Field, Value: f.Value.Interface()}}
}

func (f Filter) String() string {
	if f.Field == "" {
		return "{}"
	}
	return fmt.Sprintf("%s = %s", f.Field, f.Value)
}
