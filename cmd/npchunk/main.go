package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/npchunk/internal/api"
	"github.com/hyperifyio/npchunk/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath   string
		grammarPath string
		outputPath  string
		outputPDF   string
		format      string
		maxTrees    int
		configPath  string
		envFiles    string
		verbose     bool
		serve       bool
		addr        string
		showVersion bool
	)

	flag.StringVar(&inputPath, "input", "", "File holding the sentence (.txt, .md, .html, .docx, .pdf); prompts on stdin when empty")
	flag.StringVar(&grammarPath, "grammar", "", "Grammar file overriding the built-in English grammar")
	flag.StringVar(&outputPath, "output", "", "Output path; stdout when empty or '-'")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional PDF report path")
	flag.StringVar(&format, "format", "", "Output format: text, yaml or json (default text)")
	flag.IntVar(&maxTrees, "max.trees", 0, "Maximum number of parse trees to report (0 = all)")
	flag.StringVar(&configPath, "config", os.Getenv("NPCHUNK_CONFIG"), "Optional YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Dotenv file loaded before reading NPCHUNK_* variables")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&serve, "serve", false, "Serve the HTTP API instead of parsing one sentence")
	flag.StringVar(&addr, "addr", "", "Listen address for -serve (default :8090)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}
	// A single positional argument names the input file.
	if inputPath == "" && flag.NArg() == 1 {
		inputPath = flag.Arg(0)
	}

	cfg := app.Config{
		InputPath:     inputPath,
		GrammarPath:   grammarPath,
		OutputPath:    outputPath,
		OutputPDFPath: outputPDF,
		Format:        format,
		MaxTrees:      maxTrees,
		Verbose:       verbose,
		Serve:         serve,
		Addr:          addr,
	}

	// Precedence: flags > env (incl. dotenv) > config file > defaults
	if err := app.LoadEnvFiles(envFiles); err != nil {
		log.Warn().Err(err).Str("path", envFiles).Msg("dotenv load failed; continuing")
	}
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyDefaults(&cfg)
	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		// Exit code policy: 2 when the sentence has no parse, 1 otherwise.
		// Uncovered words are reported on stdout and do not reach here.
		if errors.Is(err, app.ErrNoParse) {
			os.Exit(2)
		}
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	if cfg.Serve {
		return serveHTTP(ctx, a, cfg.Addr)
	}
	return a.Run(ctx)
}

func serveHTTP(ctx context.Context, a *app.App, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(a, app.BuildVersion),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
