package volta

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// A Value is a constant known at validation time.  Exactly one of the payload
// fields is meaningful, selected by Type.  Values are immutable by
// convention: helpers return new Values rather than editing in place.
type Value struct {
	Type  ValueType
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Time  time.Time
	List  []Value
	Map   map[string]Value
}

// Null is the singleton null constant.
var Null = Value{Type: TypeNull}

func NewBool(b bool) Value       { return Value{Type: TypeBool, Bool: b} }
func NewInt(i int64) Value       { return Value{Type: TypeInt64, Int: i} }
func NewFloat(f float64) Value   { return Value{Type: TypeDouble, Float: f} }
func NewString(s string) Value   { return Value{Type: TypeString, Str: s} }
func NewList(vals []Value) Value { return Value{Type: TypeList, List: vals} }

func NewMap(entries map[string]Value) Value {
	return Value{Type: TypeMap, Map: entries}
}

func NewDate(t time.Time) Value      { return Value{Type: TypeDate, Time: t} }
func NewTime(t time.Time) Value      { return Value{Type: TypeTime, Time: t} }
func NewDateTime(t time.Time) Value  { return Value{Type: TypeDateTime, Time: t} }
func NewTimestamp(t time.Time) Value { return Value{Type: TypeTimestamp, Time: t} }

// IsNull reports whether v is the null constant.
func (v Value) IsNull() bool { return v.Type == TypeNull }

// AsFloat returns the numeric payload widened to float64.  It is only
// meaningful for numeric values.
func (v Value) AsFloat() float64 {
	if v.Type.IsIntFamily() {
		return float64(v.Int)
	}
	return v.Float
}

// Equal reports deep equality of two constants.  Int and float values of
// equal magnitude are not considered equal; the types must agree.
func (v Value) Equal(w Value) bool {
	if v.Type != w.Type {
		return false
	}
	switch v.Type {
	case TypeNull, TypeUnknown:
		return true
	case TypeBool:
		return v.Bool == w.Bool
	case TypeString, TypeFixedString:
		return v.Str == w.Str
	case TypeDate, TypeTime, TypeDateTime, TypeTimestamp:
		return v.Time.Equal(w.Time)
	case TypeList, TypeSet:
		if len(v.List) != len(w.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(w.List[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if len(v.Map) != len(w.Map) {
			return false
		}
		for k, vv := range v.Map {
			wv, ok := w.Map[k]
			if !ok || !vv.Equal(wv) {
				return false
			}
		}
		return true
	case TypeFloat, TypeDouble:
		return v.Float == w.Float
	default:
		return v.Int == w.Int
	}
}

// String renders v the way it would appear in query text, quoting strings
// and bracketing collections.
func (v Value) String() string {
	switch v.Type {
	case TypeNull:
		return "NULL"
	case TypeUnknown:
		return "__UNKNOWN__"
	case TypeBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeString, TypeFixedString:
		return strconv.Quote(v.Str)
	case TypeFloat, TypeDouble:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeDate:
		return v.Time.Format("2006-01-02")
	case TypeTime:
		return v.Time.Format("15:04:05")
	case TypeDateTime, TypeTimestamp:
		return v.Time.Format("2006-01-02T15:04:05")
	case TypeList, TypeSet:
		elems := make([]string, len(v.List))
		for i, e := range v.List {
			elems[i] = e.String()
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case TypeMap:
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", k, v.Map[k].String())
		}
		b.WriteByte('}')
		return b.String()
	default:
		return strconv.FormatInt(v.Int, 10)
	}
}
