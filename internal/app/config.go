package app

// Output formats accepted by Config.Format.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Config holds runtime configuration for the application.
type Config struct {
	// InputPath is the file holding the sentence. Empty means prompt on stdin.
	InputPath string
	// GrammarPath overrides the built-in English grammar.
	GrammarPath string

	// OutputPath receives the report. Empty or "-" means stdout.
	OutputPath    string
	OutputPDFPath string
	Format        string

	// MaxTrees caps the number of parses reported. Zero means all, except in
	// serve mode where ApplyDefaults sets DefaultServeMaxTrees.
	MaxTrees int

	Verbose bool

	// HTTP mode
	Serve bool
	Addr  string
}

// ApplyDefaults fills whatever flags, env and config file left empty.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Format == "" {
		cfg.Format = FormatText
	}
	if cfg.Serve && cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	// Bound per-request work in serve mode.
	if cfg.Serve && cfg.MaxTrees == 0 {
		cfg.MaxTrees = DefaultServeMaxTrees
	}
}
