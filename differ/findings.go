package differ

import "github.com/truespec/truespec/internal/severity"

// Finding codes form a closed set; no comparison step may emit a code
// outside this list (§4.5, §8 closed-code-set property). Codes are
// preserved verbatim from the data contract downstream tooling parses,
// so they stay kebab-case rather than following Go's usual SCREAMING_CASE
// constant style.
const (
	CodeOperationRemoved    = "operation-removed"
	CodeOperationAdded      = "operation-added"
	CodeResponseRemoved     = "response-removed"
	CodeResponseAdded       = "response-added"
	CodeRequiredParamAdded  = "required-param-added"
	CodeRequestBodyRequired = "request-body-required"
	CodeTypeChanged         = "schema-type-changed"
	CodeNullableRemoved     = "schema-nullable-removed"
	CodeNullableAdded       = "schema-nullable-added"
	CodeUnionRemoved        = "schema-union-removed"
	CodeUnionAdded          = "schema-union-added"
	CodeEnumChanged         = "schema-enum-changed"
	CodeFieldRemoved        = "schema-field-removed"
	CodeFieldAdded          = "schema-field-added"
	CodeRequiredAdded       = "schema-required-added"
)

// OperationRef identifies the operation a Finding belongs to. It is nil
// for findings that are not scoped to a single operation (none exist
// today, but the pointer leaves room without breaking callers).
type OperationRef struct {
	Path   string
	Method string
}

// Finding is one severity-classified, stably-coded deviation between
// base and head (§4.6).
type Finding struct {
	Severity  severity.Severity
	Code      string
	Message   string
	Operation *OperationRef
}

// Summary tallies a Report's items by severity. It is always derived
// from Items, never tracked incrementally, so it can never drift out of
// sync with the findings it summarizes.
type Summary struct {
	Breaking int
	Warning  int
	Info     int
	Total    int
}

// Report is the output of Compare: every finding plus a derived tally.
type Report struct {
	Summary Summary
	Items   []Finding
}

func summarize(items []Finding) Summary {
	var s Summary
	for _, f := range items {
		switch f.Severity {
		case severity.Breaking:
			s.Breaking++
		case severity.Warning:
			s.Warning++
		case severity.Info:
			s.Info++
		}
	}
	s.Total = len(items)
	return s
}

func newReport(items []Finding) Report {
	if items == nil {
		items = []Finding{}
	}
	return Report{Summary: summarize(items), Items: items}
}
