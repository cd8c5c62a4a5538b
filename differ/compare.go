package differ

import (
	"fmt"

	"github.com/truespec/truespec/internal/severity"
	"github.com/truespec/truespec/specdoc"
)

// Compare implements the Operation Comparator (C5), the top-level entry
// point of the diff engine. It indexes both documents' operations (C2),
// then for every shared operation runs the parameter/body analysis (C3)
// and schema comparison (C4) that produce the bulk of a Report's
// findings.
//
// Removed and shared operations are visited in base's discovery order
// and added operations in head's, so two runs over the same pair of
// documents always produce the same Report in the same order (§8
// determinism).
func Compare(base, head specdoc.Doc) Report {
	baseIdx := IndexOperations(base)
	headIdx := IndexOperations(head)

	var items []Finding

	for _, key := range baseIdx.keys() {
		if !headIdx.has(key) {
			items = append(items, Finding{
				Severity:  severity.Breaking,
				Code:      CodeOperationRemoved,
				Message:   fmt.Sprintf("Removed operation %s %s", key.Method, key.Path),
				Operation: &OperationRef{Path: key.Path, Method: key.Method},
			})
		}
	}

	for _, key := range headIdx.keys() {
		if !baseIdx.has(key) {
			items = append(items, Finding{
				Severity:  severity.Info,
				Code:      CodeOperationAdded,
				Message:   fmt.Sprintf("Added operation %s %s", key.Method, key.Path),
				Operation: &OperationRef{Path: key.Path, Method: key.Method},
			})
		}
	}

	for _, key := range baseIdx.keys() {
		headView, ok := headIdx.get(key)
		if !ok {
			continue
		}
		baseView, _ := baseIdx.get(key)
		items = append(items, compareOperation(baseView, headView)...)
	}

	return newReport(items)
}

func compareOperation(base, head OperationView) []Finding {
	var items []Finding
	ref := &OperationRef{Path: base.Key.Path, Method: base.Key.Method}

	items = append(items, compareResponseStatuses(base, head, ref)...)
	items = append(items, compareRequiredParams(base, head, ref)...)
	items = append(items, compareRequestBodyRequired(base, head, ref)...)
	items = append(items, compareRequestBodySchema(base, head, ref)...)
	items = append(items, compareResponseSchemas(base, head, ref)...)

	return items
}

func compareResponseStatuses(base, head OperationView, ref *OperationRef) []Finding {
	var items []Finding

	baseResponses, _ := specdoc.MapAt(base.OperationNode, "responses")
	headResponses, _ := specdoc.MapAt(head.OperationNode, "responses")

	var baseStatuses, headStatuses []string
	if baseResponses != nil {
		baseStatuses = baseResponses.Keys()
	}
	if headResponses != nil {
		headStatuses = headResponses.Keys()
	}

	for _, status := range baseStatuses {
		if !containsString(headStatuses, status) {
			items = append(items, Finding{
				Severity:  severity.Breaking,
				Code:      CodeResponseRemoved,
				Message:   fmt.Sprintf("Removed response %s for %s %s", status, ref.Method, ref.Path),
				Operation: ref,
			})
		}
	}
	for _, status := range headStatuses {
		if !containsString(baseStatuses, status) {
			items = append(items, Finding{
				Severity:  severity.Info,
				Code:      CodeResponseAdded,
				Message:   fmt.Sprintf("Added response %s for %s %s", status, ref.Method, ref.Path),
				Operation: ref,
			})
		}
	}

	return items
}

// compareRequiredParams emits only additions: H_required \ B_required.
// There is no finding code for a required parameter being relaxed, so
// that direction is intentionally not reported (§4.5 step 3b).
func compareRequiredParams(base, head OperationView, ref *OperationRef) []Finding {
	var items []Finding

	baseRequired := RequiredParameters(base)
	headRequired := RequiredParameters(head)

	baseSet := make(map[ParameterId]bool, len(baseRequired))
	for _, id := range baseRequired {
		baseSet[id] = true
	}

	for _, id := range headRequired {
		if !baseSet[id] {
			items = append(items, Finding{
				Severity:  severity.Warning,
				Code:      CodeRequiredParamAdded,
				Message:   fmt.Sprintf("New required parameter %s for %s %s", id, ref.Method, ref.Path),
				Operation: ref,
			})
		}
	}

	return items
}

func compareRequestBodyRequired(base, head OperationView, ref *OperationRef) []Finding {
	if !RequestBodyRequired(base.OperationNode) && RequestBodyRequired(head.OperationNode) {
		return []Finding{{
			Severity:  severity.Warning,
			Code:      CodeRequestBodyRequired,
			Message:   fmt.Sprintf("Request body became required for %s %s", ref.Method, ref.Path),
			Operation: ref,
		}}
	}
	return nil
}

// compareRequestBodySchema only compares the two request schemas when
// both sides declare one (§4.5 step 3d). An asymmetric requestBody
// (added or removed entirely) has no finding code of its own and is
// intentionally not reported, mirroring the status intersection in
// compareResponseSchemas.
func compareRequestBodySchema(base, head OperationView, ref *OperationRef) []Finding {
	baseSchema, baseOK := RequestSchema(base.OperationNode)
	headSchema, headOK := RequestSchema(head.OperationNode)
	if !baseOK || !headOK {
		return nil
	}
	return withOperation(CompareSchema(baseSchema, headSchema, ContextRequest, "request.body"), ref)
}

func compareResponseSchemas(base, head OperationView, ref *OperationRef) []Finding {
	baseSchemas := ResponseSchemas(base.OperationNode)
	headByStatus := make(map[string]*specdoc.OMap, len(ResponseSchemas(head.OperationNode)))
	for _, s := range ResponseSchemas(head.OperationNode) {
		headByStatus[s.Status] = s.Schema
	}

	var items []Finding
	for _, bs := range baseSchemas {
		hs, ok := headByStatus[bs.Status]
		if !ok {
			continue
		}
		path := fmt.Sprintf("response.%s.body", bs.Status)
		items = append(items, withOperation(CompareSchema(bs.Schema, hs, ContextResponse, path), ref)...)
	}
	return items
}

func withOperation(items []Finding, ref *OperationRef) []Finding {
	for i := range items {
		items[i].Operation = ref
	}
	return items
}
