package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suru-lang/suru/internal/config"
	"github.com/suru-lang/suru/lang/parser"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.ParserMaxDepth())
	assert.False(t, cfg.SortDiagnostics)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SURU_MAX_PARSE_DEPTH", "12")
	t.Setenv("SURU_SORT_DIAGNOSTICS", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.ParserMaxDepth())
	assert.True(t, cfg.SortDiagnostics)
}
