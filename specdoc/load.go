package specdoc

import (
	"strings"

	"github.com/truespec/truespec/internal/logging"
	"github.com/truespec/truespec/oaserrors"
)

// YAMLDecoder decodes YAML bytes into the generic tree shape. The core
// never couples itself to a specific YAML library beyond this signature
// (§9 design notes); set it to nil via [WithYAMLDecoder] to model a
// build with no YAML decoder linked in.
type YAMLDecoder func(data []byte) (any, error)

// defaultYAMLDecoder walks a go.yaml.in/yaml/v4 node tree, the same
// library the teacher links, preserving mapping key order.
var defaultYAMLDecoder YAMLDecoder = decodeYAMLNode

type config struct {
	logger      logging.Logger
	source      string
	yamlDecoder YAMLDecoder
}

// Option configures a Load call.
type Option func(*config)

// WithLogger injects a logger for diagnostic output during loading (e.g.
// a JSON-then-YAML fallback).
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSourceName labels the input for log lines (e.g. "base", "head", or
// a file path).
func WithSourceName(name string) Option {
	return func(c *config) { c.source = name }
}

// WithYAMLDecoder overrides the YAML decoder, or disables YAML decoding
// entirely when d is nil.
func WithYAMLDecoder(d YAMLDecoder) Option {
	return func(c *config) { c.yamlDecoder = d }
}

// Load implements the C1 Spec Loader contract:
//
//	loadSpec(input) → SpecDoc | null | LoadError
//
// input may be a generic tree (returned verbatim if it is a map), raw
// bytes, or a string containing JSON or YAML. A nil Doc with a nil error
// means the loader could not produce a map (empty input, or a decoded
// scalar/sequence at the root) — the caller treats that as an input
// error. A non-nil error is only returned when YAML decoding was
// required and unavailable.
func Load(input any, opts ...Option) (Doc, error) {
	cfg := &config{logger: logging.NopLogger{}, yamlDecoder: defaultYAMLDecoder}
	for _, opt := range opts {
		opt(cfg)
	}

	switch v := input.(type) {
	case nil:
		return nil, nil
	case *OMap:
		return v, nil
	case []byte:
		return loadText(string(v), cfg)
	case string:
		return loadText(v, cfg)
	default:
		// Already decoded, but not a map: per §4.1(e), that's a null result.
		return nil, nil
	}
}

func loadText(text string, cfg *config) (Doc, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	looksJSON := strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
	if looksJSON {
		if v, err := decodeJSON([]byte(trimmed)); err == nil {
			return asDoc(v), nil
		}
		cfg.logger.Debug("json decode failed, falling back to yaml", "source", cfg.source)
	}

	if cfg.yamlDecoder == nil {
		return nil, &oaserrors.YamlUnavailableError{Source: cfg.source}
	}

	v, err := cfg.yamlDecoder([]byte(trimmed))
	if err != nil {
		cfg.logger.Debug("yaml decode failed", "source", cfg.source, "error", err.Error())
		return nil, nil
	}
	return asDoc(v), nil
}

func asDoc(v any) Doc {
	if m, ok := v.(*OMap); ok {
		return m
	}
	return nil
}
