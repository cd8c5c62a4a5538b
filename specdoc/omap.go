package specdoc

// OMap is an insertion-order-preserving string-keyed map: the Go
// equivalent of the "ordered sequence of key/value pairs" a generic
// OpenAPI tree's objects are specified to be (§3, §4.2 Determinism).
//
// Plain Go maps are intentionally randomized on iteration, which would
// make every component that walks `paths` or an object's properties
// non-deterministic from run to run. OMap's pointer identity also
// doubles as the cycle-guard key for the schema comparator (§4.4): two
// OMap values are the same node iff they are the same pointer.
type OMap struct {
	keys  []string
	index map[string]int
	vals  []any
}

// NewOMap returns an empty OMap.
func NewOMap() *OMap {
	return &OMap{index: make(map[string]int)}
}

// Set inserts or updates key. Updating an existing key does not change
// its position in iteration order, matching standard object-assignment
// semantics.
func (m *OMap) Set(key string, val any) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = val
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Get returns the value at key and whether it was present.
func (m *OMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Has reports whether key is present.
func (m *OMap) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Keys returns the keys in insertion order. Callers must not mutate the
// returned slice.
func (m *OMap) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Len returns the number of entries.
func (m *OMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}
