package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds the MCP server's configurable defaults, loaded once
// from TRUESPEC_* environment variables at package init.
type serverConfig struct {
	MaxInlineSize int
}

var cfg = loadConfig()

func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize: envInt("TRUESPEC_MCP_MAX_INLINE_SIZE", 2*1024*1024),
	}
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
