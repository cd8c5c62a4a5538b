// Package specdoc implements the Spec Loader (C1): parsing raw JSON or
// YAML text, or an already-decoded tree, into the generic document shape
// the rest of the engine walks.
//
// A [Doc] is a heterogeneous tree of ordered string-keyed maps ([OMap]),
// ordered slices ([]any), strings, numbers (float64), booleans, and nil
// — the tagged-variant shape §9's design notes call for, matched
// exhaustively via the accessor helpers below rather than ad hoc type
// assertions scattered through the codebase.
package specdoc

// Doc is the generic, opaque tree an OpenAPI document decodes into.
// Unknown keys are ignored by every reader in this module; missing keys
// behave as absent, never as errors.
type Doc = *OMap

// AsMap returns v as an *OMap and whether the assertion succeeded. A
// non-map value (including nil) reports false rather than panicking,
// matching the engine-wide rule that malformed sub-trees degrade to
// "absent" rather than aborting a walk.
func AsMap(v any) (*OMap, bool) {
	m, ok := v.(*OMap)
	return m, ok
}

// AsSeq returns v as an ordered slice and whether the assertion
// succeeded.
func AsSeq(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// AsString returns v as a string and whether the assertion succeeded.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsBool returns v as a bool and whether the assertion succeeded.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsNumber returns v as a float64 regardless of its concrete numeric
// type. Both loaders already yield float64 (the YAML decoder converts
// integral scalars); the other numeric cases cover trees built by hand.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// IsNull reports whether v is the absent/null value.
func IsNull(v any) bool {
	return v == nil
}

// StringAt reads a string-valued key from m, returning "" if absent or
// not a string.
func StringAt(m *OMap, key string) string {
	v, _ := m.Get(key)
	s, _ := AsString(v)
	return s
}

// BoolAt reads a bool-valued key from m, returning false if absent or
// not a bool.
func BoolAt(m *OMap, key string) bool {
	v, _ := m.Get(key)
	b, _ := AsBool(v)
	return b
}

// MapAt reads a map-valued key from m, returning (nil, false) if absent
// or not a map.
func MapAt(m *OMap, key string) (*OMap, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return AsMap(v)
}

// SeqAt reads a slice-valued key from m, returning (nil, false) if absent
// or not a slice.
func SeqAt(m *OMap, key string) ([]any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return AsSeq(v)
}
