package specdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONBytes(t *testing.T) {
	doc, err := Load([]byte(`{"openapi":"3.0.3","paths":{}}`))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "3.0.3", StringAt(doc, "openapi"))
}

func TestLoadJSONPreservesKeyOrder(t *testing.T) {
	doc, err := Load([]byte(`{"/b":1,"/a":2,"/c":3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/b", "/a", "/c"}, doc.Keys())
}

func TestLoadYAMLString(t *testing.T) {
	doc, err := Load("openapi: 3.0.3\npaths: {}\n")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "3.0.3", StringAt(doc, "openapi"))
}

func TestLoadYAMLPreservesKeyOrder(t *testing.T) {
	doc, err := Load("/b: 1\n/a: 2\n/c: 3\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"/b", "/a", "/c"}, doc.Keys())
}

func TestLoadMapVerbatim(t *testing.T) {
	src := NewOMap()
	src.Set("openapi", "3.1.0")
	doc, err := Load(src)
	require.NoError(t, err)
	assert.Same(t, src, doc, "map input must round-trip by reference, not copy")
}

func TestLoadEmptyYieldsNull(t *testing.T) {
	doc, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = Load("   \n\t ")
	require.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = Load(nil)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestLoadNonMapRootYieldsNull(t *testing.T) {
	doc, err := Load([]byte(`["a","b"]`))
	require.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = Load(`"just a string"`)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestLoadMalformedJSONFallsBackToYAML(t *testing.T) {
	// Not valid JSON (unquoted key), but valid YAML flow-mapping syntax,
	// so it must fall through to the YAML decoder.
	doc, err := Load("{openapi: 3.0.3}")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "3.0.3", StringAt(doc, "openapi"))
}

func TestLoadMalformedYAMLYieldsNullNotError(t *testing.T) {
	doc, err := Load("openapi: [unterminated")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestLoadYAMLUnavailable(t *testing.T) {
	doc, err := Load("openapi: 3.0.3\n", WithYAMLDecoder(nil))
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.ErrorContains(t, err, "yaml decoder unavailable")
}

func TestLoadJSONDoesNotNeedYAMLDecoder(t *testing.T) {
	doc, err := Load([]byte(`{"openapi":"3.0.3"}`), WithYAMLDecoder(nil))
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", StringAt(doc, "openapi"))
}

func TestAccessorHelpers(t *testing.T) {
	inner := NewOMap()
	inner.Set("k", "v")

	doc := NewOMap()
	doc.Set("str", "x")
	doc.Set("bool", true)
	doc.Set("num", float64(3))
	doc.Set("map", inner)
	doc.Set("seq", []any{1, 2})

	assert.Equal(t, "x", StringAt(doc, "str"))
	assert.Equal(t, "", StringAt(doc, "missing"))
	assert.True(t, BoolAt(doc, "bool"))
	assert.False(t, BoolAt(doc, "missing"))

	m, ok := MapAt(doc, "map")
	assert.True(t, ok)
	v, _ := m.Get("k")
	assert.Equal(t, "v", v)

	_, ok = MapAt(doc, "str")
	assert.False(t, ok)

	s, ok := SeqAt(doc, "seq")
	assert.True(t, ok)
	assert.Len(t, s, 2)

	numVal, _ := doc.Get("num")
	n, ok := AsNumber(numVal)
	assert.True(t, ok)
	assert.Equal(t, float64(3), n)

	assert.True(t, IsNull(nil))
	assert.False(t, IsNull(0))
}
