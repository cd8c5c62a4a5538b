package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredParametersPathAlwaysRequired(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: false
      responses: {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "GET", Path: "/pets/{id}"})

	assert.Equal(t, []ParameterId{"path:id"}, RequiredParameters(view))
}

func TestRequiredParametersCombinesPathItemAndOperation(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    parameters:
      - name: X-Trace
        in: header
        required: true
    get:
      parameters:
        - name: limit
          in: query
          required: true
        - name: verbose
          in: query
          required: false
      responses: {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "GET", Path: "/pets"})

	assert.Equal(t, []ParameterId{"header:X-Trace", "query:limit"}, RequiredParameters(view))
}

func TestRequiredParametersDedups(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    parameters:
      - name: id
        in: path
    get:
      parameters:
        - name: id
          in: path
      responses: {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "GET", Path: "/pets"})

	assert.Equal(t, []ParameterId{"path:id"}, RequiredParameters(view))
}

func TestRequestBodyRequired(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    post:
      requestBody:
        required: true
      responses: {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "POST", Path: "/pets"})
	assert.True(t, RequestBodyRequired(view.OperationNode))

	doc2 := mustLoad(t, `
paths:
  /pets:
    post:
      responses: {}
`)
	idx2 := IndexOperations(doc2)
	view2, _ := idx2.get(OperationKey{Method: "POST", Path: "/pets"})
	assert.False(t, RequestBodyRequired(view2.OperationNode))
}

func TestRequestSchemaPrefersApplicationJSON(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    post:
      requestBody:
        content:
          text/plain:
            schema:
              type: string
          application/json:
            schema:
              type: object
      responses: {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "POST", Path: "/pets"})

	schema, ok := RequestSchema(view.OperationNode)
	require.True(t, ok)
	v, _ := schema.Get("type")
	assert.Equal(t, "object", v)
}

func TestRequestSchemaFallsBackToJSONVariant(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    post:
      requestBody:
        content:
          application/vnd.api+json:
            schema:
              type: object
      responses: {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "POST", Path: "/pets"})

	_, ok := RequestSchema(view.OperationNode)
	assert.True(t, ok)
}

func TestRequestSchemaFallsBackToFirstContentEntry(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    post:
      requestBody:
        content:
          text/plain:
            schema:
              type: string
      responses: {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "POST", Path: "/pets"})

	schema, ok := RequestSchema(view.OperationNode)
	require.True(t, ok)
	v, _ := schema.Get("type")
	assert.Equal(t, "string", v)
}

func TestResponseSchemasPreservesStatusOrder(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    get:
      responses:
        "404":
          content:
            application/json:
              schema:
                type: object
        "200":
          content:
            application/json:
              schema:
                type: array
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "GET", Path: "/pets"})

	schemas := ResponseSchemas(view.OperationNode)
	require.Len(t, schemas, 2)
	assert.Equal(t, "404", schemas[0].Status)
	assert.Equal(t, "200", schemas[1].Status)
}

func TestResponseSchemasSkipsStatusesWithoutContent(t *testing.T) {
	doc := mustLoad(t, `
paths:
  /pets:
    get:
      responses:
        "204": {}
`)
	idx := IndexOperations(doc)
	view, _ := idx.get(OperationKey{Method: "GET", Path: "/pets"})

	assert.Empty(t, ResponseSchemas(view.OperationNode))
}
