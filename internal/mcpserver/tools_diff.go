package mcpserver

import (
	"context"
	"regexp"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/truespec/truespec/differ"
	"github.com/truespec/truespec/internal/severity"
	"github.com/truespec/truespec/report"
)

type diffInput struct {
	Base         specInput `json:"base"                    jsonschema:"The base/original OAS document"`
	Head         specInput `json:"head"                    jsonschema:"The revised OAS document to compare against the base"`
	BreakingOnly bool      `json:"breaking_only,omitempty" jsonschema:"Only show breaking changes"`
}

type diffFinding struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

type diffOutput struct {
	BreakingCount int           `json:"breaking_count"`
	WarningCount  int           `json:"warning_count"`
	InfoCount     int           `json:"info_count"`
	Findings      []diffFinding `json:"findings,omitempty"`
	Summary       string        `json:"summary"`
	Markdown      string        `json:"markdown"`
}

func handleDiff(_ context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	baseDoc, err := input.Base.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	headDoc, err := input.Head.resolve()
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	rep := differ.Compare(baseDoc, headDoc)

	output := diffOutput{
		BreakingCount: rep.Summary.Breaking,
		WarningCount:  rep.Summary.Warning,
		InfoCount:     rep.Summary.Info,
		Markdown:      report.RenderMarkdown(rep),
	}

	for _, f := range rep.Items {
		if input.BreakingOnly && f.Severity != severity.Breaking {
			continue
		}
		output.Findings = append(output.Findings, diffFinding{
			Severity: f.Severity.String(),
			Code:     f.Code,
			Message:  f.Message,
		})
	}

	output.Summary = buildDiffSummary(rep.Summary.Total, output.BreakingCount)
	return nil, output, nil
}

func buildDiffSummary(total, breaking int) string {
	if total == 0 {
		return "No differences found."
	}

	summary := formatCount(total, "difference") + " found"
	if breaking > 0 {
		summary += " (" + formatCount(breaking, "breaking change") + ")"
	}
	return summary + "."
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// pathPattern strips absolute filesystem paths from error messages so a
// resolve failure on specInput.File does not leak local directory
// structure back to an MCP client.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
