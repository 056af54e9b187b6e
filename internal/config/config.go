// Package config loads the driver layer's environment-tunable settings.
// The core (lang/parser, lang/sema, ...) never reads the environment
// directly, per spec.md §6 — only cmd/suru's driver consults this
// package before constructing a parser/printer.
package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/suru-lang/suru/lang/parser"
)

// Config holds the driver's environment-tunable settings, bound with
// struct tags the way internal/maincmd.Cmd binds CLI flags.
type Config struct {
	// MaxParseDepth caps the parser's recursion depth (spec.md §4.3).
	// Zero means "use parser.DefaultMaxDepth".
	MaxParseDepth int `env:"SURU_MAX_PARSE_DEPTH" envDefault:"0"`

	// SortDiagnostics sorts diagnostics by line then column before they
	// are printed, instead of the detection order spec.md §5 guarantees
	// by default.
	SortDiagnostics bool `env:"SURU_SORT_DIAGNOSTICS" envDefault:"false"`
}

// Load reads an optional .env file from the working directory, then binds
// Config from the process environment. A missing .env file is not an
// error; godotenv.Load's error is intentionally discarded for that case,
// matching the termfx-morfx pack entry's test-setup idiom.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParserMaxDepth returns the configured max parse depth, or
// parser.DefaultMaxDepth if unset.
func (c Config) ParserMaxDepth() int {
	if c.MaxParseDepth <= 0 {
		return parser.DefaultMaxDepth
	}
	return c.MaxParseDepth
}
