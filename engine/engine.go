// Package engine is the thin façade (C7) that ties the loader, differ,
// and renderer together for callers who want the whole pipeline behind
// one call: [Diff] for two already-loaded documents, [DiffText] for raw
// JSON/YAML bytes or strings, and [Markdown] to render the result.
package engine

import (
	"github.com/truespec/truespec/differ"
	"github.com/truespec/truespec/internal/logging"
	"github.com/truespec/truespec/oaserrors"
	"github.com/truespec/truespec/report"
	"github.com/truespec/truespec/specdoc"
)

type config struct {
	logger logging.Logger
}

// Option configures Diff and DiffText.
type Option func(*config)

// WithLogger sets the logger used for debug-level tracing during a
// comparison. The default is [logging.NopLogger].
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts ...Option) *config {
	c := &config{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Diff compares two already-loaded documents and returns the resulting
// report. Either argument being nil or not a map is an [oaserrors.InputError];
// the engine never guesses at a partial document.
func Diff(base, head specdoc.Doc, opts ...Option) (differ.Report, error) {
	cfg := newConfig(opts...)

	if base == nil {
		return differ.Report{}, &oaserrors.InputError{Source: "base", Message: "document is empty or not an object"}
	}
	if head == nil {
		return differ.Report{}, &oaserrors.InputError{Source: "head", Message: "document is empty or not an object"}
	}

	cfg.logger.Debug("comparing documents", "base_keys", base.Len(), "head_keys", head.Len())
	r := differ.Compare(base, head)
	cfg.logger.Info("comparison complete", "total", r.Summary.Total, "breaking", r.Summary.Breaking)
	return r, nil
}

// DiffText loads base and head from raw input (JSON/YAML bytes, string,
// or an already-decoded specdoc.Doc) and compares the results.
func DiffText(base, head any, opts ...Option) (differ.Report, error) {
	cfg := newConfig(opts...)

	baseDoc, err := specdoc.Load(base, specdoc.WithLogger(cfg.logger), specdoc.WithSourceName("base"))
	if err != nil {
		return differ.Report{}, err
	}
	headDoc, err := specdoc.Load(head, specdoc.WithLogger(cfg.logger), specdoc.WithSourceName("head"))
	if err != nil {
		return differ.Report{}, err
	}

	return Diff(baseDoc, headDoc, opts...)
}

// Markdown renders r via [report.RenderMarkdown].
func Markdown(r differ.Report) string {
	return report.RenderMarkdown(r)
}
