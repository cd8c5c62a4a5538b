package differ

import (
	"strings"

	"github.com/truespec/truespec/specdoc"
)

// ParameterId is "<in>:<name>" where in ∈ {query, path, header, cookie}.
type ParameterId string

// statusSchema pairs a response status key with the schema extracted
// for it.
type statusSchema struct {
	Status string
	Schema *specdoc.OMap
}

// RequiredParameters implements the required-parameter half of the
// Parameter & Body Analyzer (C3): concatenate pathItem.parameters then
// operation.parameters (both empty if absent or not a sequence), and
// emit the ParameterId of every parameter that is required=true or
// in="path" (path parameters are required regardless of the declared
// flag). The result is a set; duplicates coalesce, keeping first
// occurrence order for deterministic downstream iteration.
func RequiredParameters(view OperationView) []ParameterId {
	seen := make(map[ParameterId]bool)
	var ordered []ParameterId

	addFrom := func(holder *specdoc.OMap) {
		seq, ok := specdoc.SeqAt(holder, "parameters")
		if !ok {
			return
		}
		for _, item := range seq {
			param, ok := specdoc.AsMap(item)
			if !ok {
				continue
			}
			in := specdoc.StringAt(param, "in")
			name := specdoc.StringAt(param, "name")
			if name == "" || in == "" {
				continue
			}
			required := specdoc.BoolAt(param, "required") || in == "path"
			if !required {
				continue
			}
			id := ParameterId(in + ":" + name)
			if !seen[id] {
				seen[id] = true
				ordered = append(ordered, id)
			}
		}
	}

	addFrom(view.PathItemNode)
	addFrom(view.OperationNode)
	return ordered
}

// RequestBodyRequired reports requestBody.required === true. A missing
// requestBody is false.
func RequestBodyRequired(opNode *specdoc.OMap) bool {
	body, ok := specdoc.MapAt(opNode, "requestBody")
	if !ok {
		return false
	}
	return specdoc.BoolAt(body, "required")
}

// RequestSchema extracts the request body's schema via the same
// content-negotiation rule as ResponseSchemas.
func RequestSchema(opNode *specdoc.OMap) (*specdoc.OMap, bool) {
	body, ok := specdoc.MapAt(opNode, "requestBody")
	if !ok {
		return nil, false
	}
	content, ok := specdoc.MapAt(body, "content")
	if !ok {
		return nil, false
	}
	return schemaFromContent(content)
}

// ResponseSchemas extracts the first applicable schema for each declared
// response status, preserving the responses object's key order.
func ResponseSchemas(opNode *specdoc.OMap) []statusSchema {
	responses, ok := specdoc.MapAt(opNode, "responses")
	if !ok {
		return nil
	}

	var out []statusSchema
	for _, status := range responses.Keys() {
		v, _ := responses.Get(status)
		respNode, ok := specdoc.AsMap(v)
		if !ok {
			continue
		}
		content, ok := specdoc.MapAt(respNode, "content")
		if !ok {
			continue
		}
		schema, ok := schemaFromContent(content)
		if !ok {
			continue
		}
		out = append(out, statusSchema{Status: status, Schema: schema})
	}
	return out
}

// schemaFromContent picks the first applicable schema from a content
// map: prefer application/json, else the first key containing "json" or
// ending "+json", else the first content entry at all (§4.3).
func schemaFromContent(content *specdoc.OMap) (*specdoc.OMap, bool) {
	if v, ok := content.Get("application/json"); ok {
		if media, ok := specdoc.AsMap(v); ok {
			if schema, ok := specdoc.MapAt(media, "schema"); ok {
				return schema, true
			}
		}
	}

	for _, key := range content.Keys() {
		if key == "application/json" {
			continue
		}
		if containsJSON(key) {
			v, _ := content.Get(key)
			if media, ok := specdoc.AsMap(v); ok {
				if schema, ok := specdoc.MapAt(media, "schema"); ok {
					return schema, true
				}
			}
		}
	}

	for _, key := range content.Keys() {
		v, _ := content.Get(key)
		if media, ok := specdoc.AsMap(v); ok {
			if schema, ok := specdoc.MapAt(media, "schema"); ok {
				return schema, true
			}
		}
	}

	return nil, false
}

func containsJSON(contentType string) bool {
	return strings.Contains(contentType, "json") || strings.HasSuffix(contentType, "+json")
}
