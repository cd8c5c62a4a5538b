// Package differ implements the Operation Indexer (C2), Parameter & Body
// Analyzer (C3), Schema Comparator (C4), and Operation Comparator (C5) of
// the TrueSpec diff engine: given two already-loaded [specdoc.Doc] trees,
// it produces a [Report] of severity-classified, stably-coded [Finding]
// values describing how the head document deviates from the base.
//
// Compare is the package's single entry point; everything else here
// supports it. The [engine] package is a thin façade over Compare plus
// [specdoc.Load] and [report.RenderMarkdown] for callers who want the
// whole pipeline behind one call.
package differ
