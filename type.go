// Package volta defines the value and type model shared by the Volta graph
// query compiler.  A ValueType classifies both schema properties and the
// results of expressions; a Value is a concrete constant produced by
// compile-time evaluation.
package volta

import "strings"

// ValueType enumerates every type a column, property, or constant can take.
// TypeUnknown and TypeNull are wildcards: an actual value of either type is
// accepted wherever any other type is expected.
type ValueType int

const (
	TypeUnknown ValueType = iota
	TypeNull
	TypeBool
	TypeInt
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat
	TypeDouble
	TypeString
	TypeFixedString
	TypeVID
	TypeDate
	TypeTime
	TypeDateTime
	TypeTimestamp
	TypeVertex
	TypeEdge
	TypePath
	TypeList
	TypeMap
	TypeSet
)

var typeNames = map[ValueType]string{
	TypeUnknown:     "unknown",
	TypeNull:        "null",
	TypeBool:        "bool",
	TypeInt:         "int",
	TypeInt8:        "int8",
	TypeInt16:       "int16",
	TypeInt32:       "int32",
	TypeInt64:       "int64",
	TypeFloat:       "float",
	TypeDouble:      "double",
	TypeString:      "string",
	TypeFixedString: "fixed_string",
	TypeVID:         "vid",
	TypeDate:        "date",
	TypeTime:        "time",
	TypeDateTime:    "datetime",
	TypeTimestamp:   "timestamp",
	TypeVertex:      "vertex",
	TypeEdge:        "edge",
	TypePath:        "path",
	TypeList:        "list",
	TypeMap:         "map",
	TypeSet:         "set",
}

func (t ValueType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// TypeByName maps a type name (as written in DDL, case-insensitive) back to
// its ValueType.  Unrecognized names map to TypeUnknown.
func TypeByName(name string) ValueType {
	name = strings.ToLower(name)
	for t, s := range typeNames {
		if s == name {
			return t
		}
	}
	return TypeUnknown
}

// IsIntFamily reports whether t is one of the integer types.
func (t ValueType) IsIntFamily() bool {
	switch t {
	case TypeInt, TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	}
	return false
}

// IsStringFamily reports whether t is a string type.
func (t ValueType) IsStringFamily() bool {
	return t == TypeString || t == TypeFixedString
}

// IsFloatFamily reports whether t is a floating-point type.
func (t ValueType) IsFloatFamily() bool {
	return t == TypeFloat || t == TypeDouble
}

// IsNumeric reports whether t participates in arithmetic.
func (t ValueType) IsNumeric() bool {
	return t.IsIntFamily() || t.IsFloatFamily()
}

// IsTemporal reports whether t is one of the date/time types.
func (t ValueType) IsTemporal() bool {
	switch t {
	case TypeDate, TypeTime, TypeDateTime, TypeTimestamp:
		return true
	}
	return false
}

// Widen returns the common type of a pair of column types when merging the
// two sides of a set operation.  Exact matches pass through, Unknown and Null
// widen to the other side, and mixed int/float arithmetic types widen to the
// float side.  Incompatible pairs return TypeUnknown.
func Widen(a, b ValueType) ValueType {
	switch {
	case a == b:
		return a
	case a == TypeUnknown || a == TypeNull:
		return b
	case b == TypeUnknown || b == TypeNull:
		return a
	case a.IsIntFamily() && b.IsIntFamily():
		return TypeInt64
	case a.IsNumeric() && b.IsNumeric():
		return TypeDouble
	case a.IsStringFamily() && b.IsStringFamily():
		return TypeString
	}
	return TypeUnknown
}
