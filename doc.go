// Package truespec is the root of the TrueSpec OpenAPI differential engine.
//
// TrueSpec compares two OpenAPI documents — a base and a head revision —
// and produces a structured [differ.Report]: a severity-classified,
// stably-coded list of findings describing how the head deviates from the
// base. It underlies a CI-facing workflow whose product is a short
// machine- and human-readable report summarizing API drift.
//
// # Packages
//
//   - specdoc: loads JSON or YAML input into a generic document tree (C1).
//   - differ: indexes operations, analyzes parameters/bodies, recursively
//     compares schemas, and drives the operation comparator (C2-C5).
//   - report: renders a Report to Markdown (C6).
//   - engine: the top-level façade, Diff(base, head) -> Report (C7).
//   - internal/reportstore: the abstract persistence boundary for computed
//     reports (§6 ReportStore).
//   - internal/httpapi: the HTTP adapter exposing POST/GET /reports and the
//     waitlist capture endpoint.
//
// # Quick start
//
//	base, _ := specdoc.Load(baseBytes)
//	head, _ := specdoc.Load(headBytes)
//	rep, _ := engine.Diff(base, head)
//	fmt.Println(report.RenderMarkdown(rep))
//
// # Determinism
//
// A single Diff call is purely in-memory and CPU-bound: it reads its
// inputs, produces a fresh Report, and holds no mutable state outside the
// call. Identical byte input always produces an identical rendered
// report; every iteration step derives from ordered input maps and the
// closed, ordered finding-code set documented in the differ package.
package truespec
