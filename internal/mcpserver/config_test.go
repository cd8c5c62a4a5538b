package mcpserver

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("TRUESPEC_MCP_MAX_INLINE_SIZE")
	c := loadConfig()
	assert.Equal(t, 2*1024*1024, c.MaxInlineSize)
}

func TestLoadConfigOverride(t *testing.T) {
	t.Setenv("TRUESPEC_MCP_MAX_INLINE_SIZE", "1024")
	c := loadConfig()
	assert.Equal(t, 1024, c.MaxInlineSize)
}

func TestLoadConfigInvalidFallsBackToDefault(t *testing.T) {
	t.Setenv("TRUESPEC_MCP_MAX_INLINE_SIZE", "not-a-number")
	c := loadConfig()
	assert.Equal(t, 2*1024*1024, c.MaxInlineSize)
}
