package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ScalarKind tags the variant held by a Scalar
type ScalarKind uint8

const (
	KindNull ScalarKind = iota
	KindString
	KindNumber
	KindBool
)

func (k ScalarKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Scalar is a property value: string, number, boolean or null
type Scalar struct {
	kind ScalarKind
	str  string
	num  float64
	b    bool
}

// Null returns the null scalar
func Null() Scalar { return Scalar{} }

// String returns a string scalar
func String(s string) Scalar { return Scalar{kind: KindString, str: s} }

// Number returns a numeric scalar
func Number(n float64) Scalar { return Scalar{kind: KindNumber, num: n} }

// Bool returns a boolean scalar
func Bool(b bool) Scalar { return Scalar{kind: KindBool, b: b} }

// ScalarOf converts a decoded JSON or YAML value into a Scalar.
// Composite values (maps, slices) are kept as their compact JSON text.
func ScalarOf(v any) Scalar {
	switch x := v.(type) {
	case nil:
		return Null()
	case Scalar:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return String(x.String())
	case fmt.Stringer:
		return String(x.String())
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return String(fmt.Sprintf("%v", x))
		}
		return String(string(data))
	}
}

// Kind reports which variant is held
func (s Scalar) Kind() ScalarKind { return s.kind }

// IsNull reports whether the scalar is null
func (s Scalar) IsNull() bool { return s.kind == KindNull }

// Str returns the string variant and whether it was held
func (s Scalar) Str() (string, bool) { return s.str, s.kind == KindString }

// Num returns the numeric variant and whether it was held
func (s Scalar) Num() (float64, bool) { return s.num, s.kind == KindNumber }

// Boolean returns the boolean variant and whether it was held
func (s Scalar) Boolean() (bool, bool) { return s.b, s.kind == KindBool }

// Equal reports whether two scalars hold the same variant and value
func (s Scalar) Equal(o Scalar) bool { return s == o }

// Value returns the held value as a plain Go value (nil, string, float64, bool)
func (s Scalar) Value() any {
	switch s.kind {
	case KindString:
		return s.str
	case KindNumber:
		return s.num
	case KindBool:
		return s.b
	default:
		return nil
	}
}

// Text renders the scalar for display. Whole numbers print without a
// fractional part so vertex ids like 4096 stay readable.
func (s Scalar) Text() string {
	switch s.kind {
	case KindString:
		return s.str
	case KindNumber:
		if s.num == math.Trunc(s.num) && math.Abs(s.num) < 1e15 {
			return strconv.FormatInt(int64(s.num), 10)
		}
		return strconv.FormatFloat(s.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.b)
	default:
		return ""
	}
}

// MarshalJSON encodes the held value
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value())
}

// UnmarshalJSON accepts any JSON value; composites are kept as text
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = ScalarOf(v)
	return nil
}

// MarshalYAML encodes the held value
func (s Scalar) MarshalYAML() (interface{}, error) {
	return s.Value(), nil
}

// UnmarshalYAML accepts any YAML value; composites are kept as text
func (s *Scalar) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	*s = ScalarOf(v)
	return nil
}

// Properties is the open attribute bag of a vertex or edge
type Properties map[string]Scalar

// PropertiesOf converts a decoded map into Properties
func PropertiesOf(m map[string]any) Properties {
	if m == nil {
		return Properties{}
	}
	props := make(Properties, len(m))
	for k, v := range m {
		props[k] = ScalarOf(v)
	}
	return props
}

// Plain returns the bag as plain Go values
func (p Properties) Plain() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v.Value()
	}
	return out
}

// Clone returns an independent copy
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
