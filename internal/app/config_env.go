package app

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from NPCHUNK_* environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, envKey string) {
		if *dst == "" {
			*dst = strings.TrimSpace(os.Getenv(envKey))
		}
	}
	setString(&cfg.InputPath, "NPCHUNK_INPUT")
	setString(&cfg.GrammarPath, "NPCHUNK_GRAMMAR")
	setString(&cfg.OutputPath, "NPCHUNK_OUTPUT")
	setString(&cfg.OutputPDFPath, "NPCHUNK_OUTPUT_PDF")
	setString(&cfg.Format, "NPCHUNK_FORMAT")
	setString(&cfg.Addr, "NPCHUNK_ADDR")

	if cfg.MaxTrees == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("NPCHUNK_MAX_TREES"))); err == nil && n > 0 {
			cfg.MaxTrees = n
		}
	}

	// Booleans
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.Verbose, "NPCHUNK_VERBOSE")
	setBool(&cfg.Serve, "NPCHUNK_SERVE")
}
