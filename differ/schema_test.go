package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truespec/truespec/internal/severity"
	"github.com/truespec/truespec/specdoc"
)

func loadSchema(t *testing.T, yaml string) *specdoc.OMap {
	t.Helper()
	doc, err := specdoc.Load(yaml)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func codesOf(items []Finding) []string {
	var out []string
	for _, f := range items {
		out = append(out, f.Code)
	}
	return out
}

func TestCompareSchemaIdentical(t *testing.T) {
	s := loadSchema(t, `type: object
properties:
  name:
    type: string`)
	items := CompareSchema(s, s, ContextOther, "schema")
	assert.Empty(t, items)
}

func TestCompareSchemaTypeChangedShortCircuits(t *testing.T) {
	base := loadSchema(t, `type: string`)
	head := loadSchema(t, `type: object
properties:
  x:
    type: string`)

	items := CompareSchema(base, head, ContextOther, "schema")
	require.Len(t, items, 1)
	assert.Equal(t, CodeTypeChanged, items[0].Code)
	assert.Equal(t, severity.Breaking, items[0].Severity)
	assert.Contains(t, items[0].Message, "schema (string -> object)")
}

func TestCompareSchemaNullableRemovedIsBreaking(t *testing.T) {
	base := loadSchema(t, `type: string
nullable: true`)
	head := loadSchema(t, `type: string
nullable: false`)

	items := CompareSchema(base, head, ContextOther, "schema")
	require.Len(t, items, 1)
	assert.Equal(t, CodeNullableRemoved, items[0].Code)
	assert.Equal(t, severity.Breaking, items[0].Severity)
}

func TestCompareSchemaNullableAddedIsInfo(t *testing.T) {
	base := loadSchema(t, `type: string
nullable: false`)
	head := loadSchema(t, `type: string
nullable: true`)

	items := CompareSchema(base, head, ContextOther, "schema")
	require.Len(t, items, 1)
	assert.Equal(t, CodeNullableAdded, items[0].Code)
	assert.Equal(t, severity.Info, items[0].Severity)
}

func TestCompareSchemaEnumChangedIsSingleFinding(t *testing.T) {
	base := loadSchema(t, `type: string
enum: [a, b]`)
	head := loadSchema(t, `type: string
enum: [b, c]`)

	items := CompareSchema(base, head, ContextOther, "schema")
	require.Len(t, items, 1)
	assert.Equal(t, CodeEnumChanged, items[0].Code)
	assert.Equal(t, severity.Breaking, items[0].Severity)
	assert.Contains(t, items[0].Message, `removed: "a"`)
	assert.Contains(t, items[0].Message, `added: "c"`)
}

func TestCompareSchemaEnumChangedSeverityIsAlwaysBreaking(t *testing.T) {
	base := loadSchema(t, `type: string
enum: [a]`)
	head := loadSchema(t, `type: string
enum: [a, b]`)

	reqItems := CompareSchema(base, head, ContextRequest, "schema")
	require.Len(t, reqItems, 1)
	assert.Equal(t, severity.Breaking, reqItems[0].Severity)

	respItems := CompareSchema(base, head, ContextResponse, "schema")
	require.Len(t, respItems, 1)
	assert.Equal(t, severity.Breaking, respItems[0].Severity)
}

func TestCompareSchemaUnionAlternativeRemovedAndAdded(t *testing.T) {
	base := loadSchema(t, `oneOf:
  - type: string
  - type: integer`)
	head := loadSchema(t, `oneOf:
  - type: string
  - type: boolean`)

	items := CompareSchema(base, head, ContextRequest, "schema")
	require.Len(t, items, 2)
	assert.Equal(t, CodeUnionRemoved, items[0].Code)
	assert.Equal(t, severity.Breaking, items[0].Severity)
	assert.Equal(t, CodeUnionAdded, items[1].Code)
	assert.Equal(t, severity.Info, items[1].Severity)
}

func TestCompareSchemaUnionRefAlternativeChangeIsDetected(t *testing.T) {
	base := loadSchema(t, `oneOf:
  - $ref: "#/components/schemas/Cat"
  - $ref: "#/components/schemas/Dog"`)
	head := loadSchema(t, `oneOf:
  - $ref: "#/components/schemas/Cat"
  - $ref: "#/components/schemas/Bird"`)

	items := CompareSchema(base, head, ContextRequest, "schema")
	require.Len(t, items, 2)
	assert.Equal(t, CodeUnionRemoved, items[0].Code)
	assert.Contains(t, items[0].Message, "ref:#/components/schemas/Dog")
	assert.Equal(t, CodeUnionAdded, items[1].Code)
	assert.Contains(t, items[1].Message, "ref:#/components/schemas/Bird")
}

func TestCompareSchemaArrayItemsRecurse(t *testing.T) {
	base := loadSchema(t, `type: array
items:
  type: string`)
	head := loadSchema(t, `type: array
items:
  type: integer`)

	items := CompareSchema(base, head, ContextOther, "schema")
	require.Len(t, items, 1)
	assert.Equal(t, CodeTypeChanged, items[0].Code)
	assert.Contains(t, items[0].Message, "schema[]")
}

func TestCompareSchemaObjectShapeOrdering(t *testing.T) {
	base := loadSchema(t, `type: object
required: [id]
properties:
  id:
    type: string
  name:
    type: string`)
	head := loadSchema(t, `type: object
required: [id, name]
properties:
  name:
    type: integer
  extra:
    type: boolean`)

	items := CompareSchema(base, head, ContextResponse, "schema")
	// required-added, field-removed(id), recurse-shared(name: type changed), field-added(extra)
	assert.Equal(t, []string{
		CodeRequiredAdded,
		CodeFieldRemoved,
		CodeTypeChanged,
		CodeFieldAdded,
	}, codesOf(items))
}

func TestCompareSchemaFieldRemovedIsAlwaysBreaking(t *testing.T) {
	base := loadSchema(t, `type: object
properties:
  id:
    type: string
  name:
    type: string`)
	head := loadSchema(t, `type: object
properties:
  id:
    type: string`)

	reqItems := CompareSchema(base, head, ContextRequest, "schema")
	require.Len(t, reqItems, 1)
	assert.Equal(t, CodeFieldRemoved, reqItems[0].Code)
	assert.Equal(t, severity.Breaking, reqItems[0].Severity)

	respItems := CompareSchema(base, head, ContextResponse, "schema")
	require.Len(t, respItems, 1)
	assert.Equal(t, severity.Breaking, respItems[0].Severity)
}

func TestCompareSchemaFieldAddedOnlyReportedForResponse(t *testing.T) {
	base := loadSchema(t, `type: object
properties:
  id:
    type: string`)
	head := loadSchema(t, `type: object
properties:
  id:
    type: string
  name:
    type: string`)

	reqItems := CompareSchema(base, head, ContextRequest, "schema")
	assert.Empty(t, reqItems)

	respItems := CompareSchema(base, head, ContextResponse, "schema")
	require.Len(t, respItems, 1)
	assert.Equal(t, CodeFieldAdded, respItems[0].Code)
	assert.Equal(t, severity.Info, respItems[0].Severity)
}

func TestCompareSchemaRequiredAddedSeverityByContext(t *testing.T) {
	base := loadSchema(t, `type: object
properties:
  id:
    type: string`)
	head := loadSchema(t, `type: object
required: [id]
properties:
  id:
    type: string`)

	reqItems := CompareSchema(base, head, ContextRequest, "schema")
	require.Len(t, reqItems, 1)
	assert.Equal(t, severity.Warning, reqItems[0].Severity)

	respItems := CompareSchema(base, head, ContextResponse, "schema")
	require.Len(t, respItems, 1)
	assert.Equal(t, severity.Info, respItems[0].Severity)

	otherItems := CompareSchema(base, head, ContextOther, "schema")
	require.Len(t, otherItems, 1)
	assert.Equal(t, severity.Info, otherItems[0].Severity)
}

func TestCompareSchemaAllOfMergesProperties(t *testing.T) {
	base := loadSchema(t, `allOf:
  - type: object
    properties:
      id:
        type: string`)
	head := loadSchema(t, `allOf:
  - type: object
    properties:
      id:
        type: string
      name:
        type: string`)

	items := CompareSchema(base, head, ContextResponse, "schema")
	require.Len(t, items, 1)
	assert.Equal(t, CodeFieldAdded, items[0].Code)
}

func TestCompareSchemaCycleSafe(t *testing.T) {
	node := specdoc.NewOMap()
	props := specdoc.NewOMap()
	node.Set("type", "object")
	node.Set("properties", props)
	self := specdoc.NewOMap()
	self.Set("self", node)
	props.Set("self", self)

	assert.NotPanics(t, func() {
		CompareSchema(node, node, ContextOther, "schema")
	})
}

func TestCompareSchemaMissingSideTreatedAsEmptyObject(t *testing.T) {
	head := loadSchema(t, `type: object
properties:
  name:
    type: string`)

	items := CompareSchema(nil, head, ContextResponse, "schema")
	assert.Equal(t, []string{CodeFieldAdded}, codesOf(items))
}
