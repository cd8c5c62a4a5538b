package httpapi

import (
	"log/slog"
	"os"
	"strconv"
)

// Config holds the HTTP adapter's environment-derived settings, per the
// TRUESPEC_REPORTS_* family of variables.
type Config struct {
	// WriteToken, if non-empty, must be presented (via X-Report-Token or
	// an Authorization: Bearer header) to POST /reports or /waitlist.
	// Empty disables the check, which is only appropriate in local dev.
	WriteToken string
	// AdminToken gates GET /reports and GET /admin/waitlist.
	AdminToken string
	// MaxMarkdownBytes truncates a stored report's rendered Markdown (and
	// its persisted items JSON), appending "..." when truncation occurs.
	MaxMarkdownBytes int
	// DefaultPageSize is used when a list request omits page_size.
	DefaultPageSize int
	// MaxPageSize clamps an explicit page_size request.
	MaxPageSize int
	// Debug, when true, includes the underlying error message in 500
	// responses instead of a generic "internal error".
	Debug bool
}

// LoadConfig reads TRUESPEC_REPORTS_* environment variables, falling
// back to defaults for anything unset or invalid.
func LoadConfig() Config {
	return Config{
		WriteToken:       os.Getenv("TRUESPEC_REPORTS_TOKEN"),
		AdminToken:       os.Getenv("TRUESPEC_REPORTS_ADMIN_TOKEN"),
		MaxMarkdownBytes: envInt("TRUESPEC_REPORTS_MAX_MARKDOWN_BYTES", 60000),
		DefaultPageSize:  envInt("TRUESPEC_REPORTS_PAGE_SIZE", 50),
		MaxPageSize:      envInt("TRUESPEC_REPORTS_MAX_PAGE_SIZE", 200),
		Debug:            envBool("TRUESPEC_REPORTS_DEBUG"),
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
