package differ

import (
	"strings"

	"github.com/truespec/truespec/specdoc"
)

// httpMethods is the fixed, ordered list of methods the indexer checks
// under each path item (§3 OperationKey, §4.2 determinism: the inner
// loop follows this list, not map iteration order).
var httpMethods = []string{
	"get", "put", "post", "delete", "options", "head", "patch", "trace",
}

// OperationKey identifies one (method, path) entry. Two keys are equal
// iff both components are equal byte-for-byte; METHOD is always
// uppercased, PATH is kept exactly as it appears under `paths`.
type OperationKey struct {
	Method string
	Path   string
}

// OperationView is a reference (not a copy) into the two sub-trees that
// make up one operation: its own node and its sibling path-item node,
// which carries path-level parameters shared across methods.
type OperationView struct {
	Key           OperationKey
	OperationNode *specdoc.OMap
	PathItemNode  *specdoc.OMap
}

// operationIndex maps each key to its view for lookup and records the
// keys in discovery order; a plain Go map keyed by OperationKey would be
// fine for lookup but would randomize iteration, so callers needing
// determinism iterate the ordered keys() slice.
type operationIndex struct {
	byKey map[OperationKey]OperationView
	order []OperationKey
}

// IndexOperations implements the Operation Indexer (C2):
//
//	indexOperations(spec) → Map<OperationKey, OperationView>
//
// For each (path, pathItem) entry under spec.paths where pathItem is a
// map, and for each method in the fixed HTTP method list where
// pathItem[method] is a map, it emits (UPPER(method), path) → view.
// Non-map entries are skipped silently. Iteration order follows the
// input's paths insertion order for the outer loop and httpMethods for
// the inner loop.
func IndexOperations(doc *specdoc.OMap) *operationIndex {
	idx := &operationIndex{byKey: make(map[OperationKey]OperationView)}

	paths, ok := specdoc.MapAt(doc, "paths")
	if !ok {
		return idx
	}

	for _, path := range paths.Keys() {
		pathItemVal, _ := paths.Get(path)
		pathItem, ok := specdoc.AsMap(pathItemVal)
		if !ok {
			continue
		}
		for _, method := range httpMethods {
			opVal, ok := pathItem.Get(method)
			if !ok {
				continue
			}
			opNode, ok := specdoc.AsMap(opVal)
			if !ok {
				continue
			}
			key := OperationKey{Method: strings.ToUpper(method), Path: path}
			idx.byKey[key] = OperationView{Key: key, OperationNode: opNode, PathItemNode: pathItem}
			idx.order = append(idx.order, key)
		}
	}

	return idx
}

// get looks up a key.
func (idx *operationIndex) get(key OperationKey) (OperationView, bool) {
	v, ok := idx.byKey[key]
	return v, ok
}

// has reports whether key is indexed.
func (idx *operationIndex) has(key OperationKey) bool {
	_, ok := idx.byKey[key]
	return ok
}

// keys returns indexed keys in discovery order.
func (idx *operationIndex) keys() []OperationKey {
	return idx.order
}
