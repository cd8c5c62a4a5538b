// Package report renders a [differ.Report] to the Markdown summary
// format consumers of the /reports API and CLI both read: a header, a
// three-line severity tally, and one section per severity that actually
// produced findings, in fixed breaking/warning/info order.
package report

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/truespec/truespec/differ"
	"github.com/truespec/truespec/internal/severity"
)

var titleCaser = cases.Title(language.English)

// RenderMarkdown renders r as GitHub-flavored Markdown.
func RenderMarkdown(r differ.Report) string {
	var b strings.Builder

	b.WriteString("## TrueSpec Summary\n\n")
	b.WriteString("- Breaking: " + strconv.Itoa(r.Summary.Breaking) + "\n")
	b.WriteString("- Warning: " + strconv.Itoa(r.Summary.Warning) + "\n")
	b.WriteString("- Info: " + strconv.Itoa(r.Summary.Info) + "\n")

	if len(r.Items) == 0 {
		b.WriteString("\nNo differences found.\n")
		return b.String()
	}

	for _, sev := range severity.Ordered() {
		items := itemsOf(r.Items, sev)
		if len(items) == 0 {
			continue
		}
		b.WriteString("\n### " + titleCaser.String(sev.String()) + " (" + strconv.Itoa(len(items)) + ")\n")
		for _, f := range items {
			b.WriteString("- " + f.Message + "\n")
		}
	}

	return b.String()
}

func itemsOf(items []differ.Finding, sev severity.Severity) []differ.Finding {
	var out []differ.Finding
	for _, f := range items {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}
