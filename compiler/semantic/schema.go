package semantic

import (
	"errors"

	"github.com/voltadb/volta"
	"github.com/voltadb/volta/compiler/ast"
	"github.com/voltadb/volta/schema"
)

// TypeCompatible reports whether a value of type actual is acceptable where
// expected is declared.  Exact matches always pass; the integer family,
// the float family, and the string family are bidirectionally compatible
// within themselves; VID accepts the string and integer literal types; and
// Null or Unknown on the actual side passes as a wildcard.  The matrix is
// not symmetric in general, so callers must pass (expected, actual) in that
// order.
func TypeCompatible(expected, actual volta.ValueType) bool {
	if expected == actual {
		return true
	}
	if actual == volta.TypeNull || actual == volta.TypeUnknown {
		return true
	}
	switch expected {
	case volta.TypeInt, volta.TypeInt64:
		return actual.IsIntFamily()
	case volta.TypeInt32, volta.TypeInt16, volta.TypeInt8:
		return actual == volta.TypeInt || actual == volta.TypeInt64
	case volta.TypeFloat:
		return actual == volta.TypeDouble
	case volta.TypeDouble:
		return actual == volta.TypeFloat
	case volta.TypeFixedString:
		return actual == volta.TypeString
	case volta.TypeString:
		return actual == volta.TypeFixedString
	case volta.TypeVID:
		return actual.IsStringFamily() || actual == volta.TypeInt || actual == volta.TypeInt64
	case volta.TypeTimestamp:
		return actual.IsIntFamily()
	}
	return false
}

// fillDefaults completes a value row against the declared properties.
// names and values hold the columns the statement provided, already
// count-checked.  Each declared property missing from names takes its
// declared default, or null when nullable; a non-nullable property with
// neither is a constraint violation.  The returned slice is ordered by the
// schema's property declaration order.
func fillDefaults(props []schema.Property, names []string, values []volta.Value) ([]volta.Value, error) {
	provided := make(map[string]volta.Value, len(names))
	for i, name := range names {
		provided[name] = values[i]
	}
	out := make([]volta.Value, 0, len(props))
	for _, prop := range props {
		if v, ok := provided[prop.Name]; ok {
			out = append(out, v)
			continue
		}
		switch {
		case prop.Default != nil:
			out = append(out, *prop.Default)
		case prop.Nullable:
			out = append(out, volta.Null)
		default:
			return nil, newError(ErrConstraint,
				"property %q has no default and is not nullable", prop.Name)
		}
	}
	return out, nil
}

// validateVID checks an expression used as a vertex id.  Only literals and
// bare variable references are accepted; variables resolve at execution
// time and pass unconditionally.  When a space is known, literal types must
// additionally match the space's declared VID family; with no space the
// shape check alone runs, so validation degrades gracefully.
func validateVID(e ast.Expr, space *schema.Space) error {
	switch e := e.(type) {
	case *ast.Variable:
		return nil
	case *ast.Literal:
		v := e.Value
		switch {
		case v.Type.IsStringFamily():
			if v.Str == "" {
				return semanticErrorf("vertex id must not be empty")
			}
			if space != nil && !space.VidType.IsStringFamily() {
				return typeErrorf("vertex id %s does not match the space vid type %s",
					v, space.VidType)
			}
		case v.Type.IsIntFamily():
			if space != nil && !space.VidType.IsIntFamily() {
				return typeErrorf("vertex id %s does not match the space vid type %s",
					v, space.VidType)
			}
		default:
			return typeErrorf("vertex id must be a string or integer, got %s", v.Type)
		}
		return nil
	default:
		return semanticErrorf("vertex id must be a literal or variable, got %s", ast.Format(e))
	}
}

// maxAutoStringLen bounds the inferred fixed_string length for auto-created
// schemas; longer strings infer an unbounded string.
const maxAutoStringLen = 256

// inferProperty derives a property declaration from a sample value, the way
// Cypher-style CREATE does when no schema was declared.  Every inferred
// property is nullable.
func inferProperty(name string, v volta.Value) schema.Property {
	prop := schema.Property{Name: name, Nullable: true}
	switch {
	case v.Type == volta.TypeBool:
		prop.Type = volta.TypeBool
	case v.Type.IsIntFamily():
		prop.Type = volta.TypeInt64
	case v.Type.IsFloatFamily():
		prop.Type = volta.TypeDouble
	case v.Type.IsStringFamily():
		if len(v.Str) <= maxAutoStringLen {
			prop.Type = volta.TypeFixedString
			prop.Len = maxAutoStringLen
		} else {
			prop.Type = volta.TypeString
		}
	case v.Type.IsTemporal():
		prop.Type = v.Type
	default:
		prop.Type = volta.TypeUnknown
	}
	return prop
}

// EnsureSchema makes sure the named tag or edge type exists in space,
// inferring a schema from a sample row when it does not.  propNames and
// values must be the same length.  The call is idempotent: an existing
// schema is left untouched, so it is safe to call once per write.
func EnsureSchema(sm schema.Manager, space, name string, isEdge bool, propNames []string, values []volta.Value) error {
	if len(propNames) != len(values) {
		return semanticErrorf("wrong number of values, expected %d but got %d",
			len(propNames), len(values))
	}
	if isEdge {
		return autoCreateEdge(sm, space, name, propNames, values)
	}
	return autoCreateTag(sm, space, name, propNames, values)
}

// autoCreateTag persists an inferred tag schema if the name is absent.  The
// call is idempotent: an existing tag is left untouched.
func autoCreateTag(sm schema.Manager, space, name string, propNames []string, values []volta.Value) error {
	if _, err := sm.GetTag(space, name); err == nil {
		return nil
	} else if !errors.Is(err, schema.ErrNotFound) {
		return err
	}
	tag := &schema.Tag{Name: name}
	for i, propName := range propNames {
		tag.Props = append(tag.Props, inferProperty(propName, values[i]))
	}
	if err := sm.CreateTag(space, tag); err != nil && !errors.Is(err, schema.ErrExists) {
		return err
	}
	return nil
}

// autoCreateEdge is the edge-type counterpart of autoCreateTag.
func autoCreateEdge(sm schema.Manager, space, name string, propNames []string, values []volta.Value) error {
	if _, err := sm.GetEdge(space, name); err == nil {
		return nil
	} else if !errors.Is(err, schema.ErrNotFound) {
		return err
	}
	edge := &schema.Edge{Name: name}
	for i, propName := range propNames {
		edge.Props = append(edge.Props, inferProperty(propName, values[i]))
	}
	if err := sm.CreateEdge(space, edge); err != nil && !errors.Is(err, schema.ErrExists) {
		return err
	}
	return nil
}
