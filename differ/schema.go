package differ

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/truespec/truespec/internal/severity"
	"github.com/truespec/truespec/specdoc"
)

// SchemaContext tells the comparator which side of the wire a schema
// governs, since the same shape change carries different weight for a
// request body than for a response body. Unlike the brittle "derive it
// from a string prefix of the path" trick, this is carried as an
// explicit parameter through the whole recursion.
type SchemaContext int

const (
	ContextRequest SchemaContext = iota
	ContextResponse
	ContextOther
)

// pairKey identifies one (base, head) node pair for the cycle guard.
// *specdoc.OMap values are themselves Go pointers, so the two addresses
// already form a stable identity without any extra hashing.
type pairKey struct {
	base *specdoc.OMap
	head *specdoc.OMap
}

type schemaWalk struct {
	ctx     SchemaContext
	visited map[pairKey]bool
	items   []Finding
}

// CompareSchema implements the Schema Comparator (C4). It walks base and
// head in lockstep, in this fixed order at every node:
//
//  1. nullability
//  2. type signature (mismatch here short-circuits the rest of this node)
//  3. union alternatives (oneOf ∪ anyOf)
//  4. enum values
//  5. array items, under path+"[]"
//  6. object shape: allOf-merged required-added, field-removed,
//     recurse-shared, field-added, in that order
//
// A nil base or nil head (schema absent on one side) is treated as an
// empty object schema rather than a special case, so the same six steps
// apply uniformly.
func CompareSchema(base, head *specdoc.OMap, ctx SchemaContext, path string) []Finding {
	w := &schemaWalk{ctx: ctx, visited: make(map[pairKey]bool)}
	w.compare(base, head, path)
	return w.items
}

func (w *schemaWalk) emit(sev severity.Severity, code, message string) {
	w.items = append(w.items, Finding{Severity: sev, Code: code, Message: message})
}

func (w *schemaWalk) compare(base, head *specdoc.OMap, path string) {
	key := pairKey{base: base, head: head}
	if w.visited[key] {
		return
	}
	w.visited[key] = true

	baseSig, baseNullable := typeSignature(base)
	headSig, headNullable := typeSignature(head)

	switch {
	case baseNullable && !headNullable:
		w.emit(severity.Breaking, CodeNullableRemoved, fmt.Sprintf("Nullable removed at %s", path))
	case !baseNullable && headNullable:
		w.emit(severity.Info, CodeNullableAdded, fmt.Sprintf("Nullable added at %s", path))
	}

	if baseSig != "" && headSig != "" && baseSig != headSig {
		w.emit(severity.Breaking, CodeTypeChanged,
			fmt.Sprintf("Type changed at %s (%s -> %s)", path, baseSig, headSig))
		return
	}

	w.compareUnion(base, head, path)
	w.compareEnum(base, head, path)
	w.compareArrayItems(base, head, path)
	w.compareObjectShape(base, head, path)
}

// typeSignature returns the sorted, "|"-joined non-null type names
// declared by schema.type (string or, per 3.1, an array of strings),
// plus whether "null" appears either there or via the 3.0-style
// nullable flag. An absent type declaration yields "" (unconstrained).
func typeSignature(schema *specdoc.OMap) (signature string, nullable bool) {
	if schema == nil {
		return "", false
	}

	var types []string
	if v, ok := schema.Get("type"); ok {
		switch t := v.(type) {
		case string:
			types = append(types, t)
		default:
			if seq, ok := specdoc.AsSeq(v); ok {
				for _, item := range seq {
					if s, ok := specdoc.AsString(item); ok {
						types = append(types, s)
					}
				}
			}
		}
	}

	nullable = specdoc.BoolAt(schema, "nullable")

	var kept []string
	for _, t := range types {
		if t == "null" {
			nullable = true
			continue
		}
		kept = append(kept, t)
	}
	sort.Strings(kept)

	return strings.Join(kept, "|"), nullable
}

// compareUnion diffs the oneOf ∪ anyOf alternative set by
// schemaSignature identity. A branch that might condition severity on
// SchemaContext here would be dead code in practice: schema-union-added
// is always info regardless of context, matching observed behavior
// rather than an apparent but unreachable context-sensitive intent.
func (w *schemaWalk) compareUnion(base, head *specdoc.OMap, path string) {
	baseAlts := unionSignatures(base)
	headAlts := unionSignatures(head)

	for _, sig := range baseAlts {
		if !containsString(headAlts, sig) {
			w.emit(severity.Breaking, CodeUnionRemoved, fmt.Sprintf("Union alternative removed at %s (%s)", path, sig))
		}
	}
	for _, sig := range headAlts {
		if !containsString(baseAlts, sig) {
			w.emit(severity.Info, CodeUnionAdded, fmt.Sprintf("Union alternative added at %s (%s)", path, sig))
		}
	}
}

func unionSignatures(schema *specdoc.OMap) []string {
	if schema == nil {
		return nil
	}
	var sigs []string
	for _, key := range []string{"oneOf", "anyOf"} {
		seq, ok := specdoc.SeqAt(schema, key)
		if !ok {
			continue
		}
		for _, alt := range seq {
			altNode, ok := specdoc.AsMap(alt)
			if !ok {
				continue
			}
			sigs = append(sigs, schemaSignature(altNode))
		}
	}
	return sigs
}

// schemaSignature is the identity a union alternative is compared by: a
// $ref schema signs as "ref:<value>" so structurally-different-but-
// unresolved references are still distinguishable (the engine never
// resolves $ref into a concrete schema, per the Non-goals), otherwise
// "type:<typeSignature>[|nullable][|format:<format>][|title:<title>]",
// with a missing type signature rendered as "unknown" rather than
// empty.
func schemaSignature(schema *specdoc.OMap) string {
	if schema == nil {
		return "type:unknown"
	}
	if ref := specdoc.StringAt(schema, "$ref"); ref != "" {
		return "ref:" + ref
	}

	sig, nullable := typeSignature(schema)
	if sig == "" {
		sig = "unknown"
	}
	out := "type:" + sig
	if nullable {
		out += "|nullable"
	}
	if format := specdoc.StringAt(schema, "format"); format != "" {
		out += "|format:" + format
	}
	if title := specdoc.StringAt(schema, "title"); title != "" {
		out += "|title:" + title
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// compareEnum diffs enum value sets using a JSON-canonicalized form of
// each value as its identity, so 1 and 1.0, or differently-ordered
// object values, compare equal where JSON semantics say they should. Any
// removed and added values surface as a single schema-enum-changed
// finding, never one finding per value.
func (w *schemaWalk) compareEnum(base, head *specdoc.OMap, path string) {
	baseVals, baseCanon := enumValues(base)
	headVals, headCanon := enumValues(head)
	if baseCanon == nil && headCanon == nil {
		return
	}

	var removed, added []string
	for i, c := range baseCanon {
		if !containsString(headCanon, c) {
			removed = append(removed, baseVals[i])
		}
	}
	for i, c := range headCanon {
		if !containsString(baseCanon, c) {
			added = append(added, headVals[i])
		}
	}
	if len(removed) == 0 && len(added) == 0 {
		return
	}

	var parts []string
	if len(removed) > 0 {
		parts = append(parts, "removed: "+strings.Join(removed, ", "))
	}
	if len(added) > 0 {
		parts = append(parts, "added: "+strings.Join(added, ", "))
	}
	w.emit(severity.Breaking, CodeEnumChanged,
		fmt.Sprintf("Enum changed at %s (%s)", path, strings.Join(parts, "; ")))
}

// enumValues returns each enum value both in its JSON-canonicalized form
// (used for equality) and for rendering; the two happen to coincide
// since the rendered form in messages is itself the JSON encoding.
func enumValues(schema *specdoc.OMap) (rendered []string, canonical []string) {
	seq, ok := specdoc.SeqAt(schema, "enum")
	if !ok {
		return nil, nil
	}
	for _, v := range seq {
		b, err := json.Marshal(v)
		if err != nil {
			continue
		}
		canonical = append(canonical, string(b))
		rendered = append(rendered, string(b))
	}
	return rendered, canonical
}

func (w *schemaWalk) compareArrayItems(base, head *specdoc.OMap, path string) {
	baseItems, baseHas := itemsOf(base)
	headItems, headHas := itemsOf(head)
	if !baseHas || !headHas {
		return
	}
	w.compare(baseItems, headItems, path+"[]")
}

func itemsOf(schema *specdoc.OMap) (*specdoc.OMap, bool) {
	if schema == nil {
		return nil, false
	}
	items, ok := specdoc.MapAt(schema, "items")
	return items, ok
}

// compareObjectShape merges allOf into an effective property map and
// required set for base and head, then reports in this order:
// required-added, field-removed, recurse-shared, field-added. The step
// is skipped only when neither side declares any property at all;
// a schema gaining its very first property is exactly the case
// schema-field-added exists to report, so that case is not suppressed.
func (w *schemaWalk) compareObjectShape(base, head *specdoc.OMap, path string) {
	baseProps, baseRequired := mergedShape(base)
	headProps, headRequired := mergedShape(head)

	var baseNames, headNames []string
	if baseProps != nil {
		baseNames = baseProps.Keys()
	}
	if headProps != nil {
		headNames = headProps.Keys()
	}
	if len(baseNames) == 0 && len(headNames) == 0 {
		return
	}

	for _, name := range headRequired {
		if !containsString(baseRequired, name) {
			sev := severity.Info
			if w.ctx == ContextRequest {
				sev = severity.Warning
			}
			w.emit(sev, CodeRequiredAdded, fmt.Sprintf("New required field %s.%s", path, name))
		}
	}

	for _, name := range baseNames {
		if headProps == nil || !headProps.Has(name) {
			w.emit(severity.Breaking, CodeFieldRemoved, fmt.Sprintf("Removed field %s.%s", path, name))
			continue
		}
		bv, _ := baseProps.Get(name)
		hv, _ := headProps.Get(name)
		bm, _ := specdoc.AsMap(bv)
		hm, _ := specdoc.AsMap(hv)
		w.compare(bm, hm, path+"."+name)
	}

	if w.ctx == ContextResponse {
		for _, name := range headNames {
			if baseProps == nil || !baseProps.Has(name) {
				w.emit(severity.Info, CodeFieldAdded, fmt.Sprintf("Added field %s.%s", path, name))
			}
		}
	}
}

// mergedShape flattens allOf into a single ordered property map and
// required list: allOf entries contribute first, in sequence order,
// followed by the schema's own properties/required, so a schema that
// redeclares an inherited property overrides its value but keeps the
// position the allOf member gave that key.
// allOf members are merged for shape purposes only; they are not
// diffed element-wise, so a change to an allOf member invisible in the
// merged map produces no finding (§9 design note b).
func mergedShape(schema *specdoc.OMap) (*specdoc.OMap, []string) {
	if schema == nil {
		return nil, nil
	}

	merged := specdoc.NewOMap()
	var required []string

	var apply func(s *specdoc.OMap)
	apply = func(s *specdoc.OMap) {
		if s == nil {
			return
		}
		if allOf, ok := specdoc.SeqAt(s, "allOf"); ok {
			for _, sub := range allOf {
				subNode, ok := specdoc.AsMap(sub)
				if !ok {
					continue
				}
				apply(subNode)
			}
		}
		if props, ok := specdoc.MapAt(s, "properties"); ok {
			for _, name := range props.Keys() {
				v, _ := props.Get(name)
				merged.Set(name, v)
			}
		}
		if req, ok := specdoc.SeqAt(s, "required"); ok {
			for _, v := range req {
				if name, ok := specdoc.AsString(v); ok && !containsString(required, name) {
					required = append(required, name)
				}
			}
		}
	}
	apply(schema)

	return merged, required
}
