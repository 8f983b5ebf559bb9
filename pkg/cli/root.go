package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/pactcore/internal/matching"
	"github.com/getmockd/pactcore/pkg/cli/internal/output"
	"github.com/getmockd/pactcore/pkg/config"
	"github.com/getmockd/pactcore/pkg/contract"
	"github.com/getmockd/pactcore/pkg/generate"
	"github.com/getmockd/pactcore/pkg/logging"
	"github.com/getmockd/pactcore/pkg/metrics"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootOptions holds the persistent flags and the state built from them
// before a subcommand runs.
type rootOptions struct {
	jsonOutput  bool
	configPath  string
	logLevel    string
	logFormat   string
	showMetrics bool

	cfg     *config.Config
	log     *slog.Logger
	logFile io.Closer
	engine  *generate.Engine
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pactcore",
		Short: "pactcore evaluates contract matching rules and generators",
		Long: `pactcore is the comparison and generation core of a consumer-driven
contract testing tool. It parses path expressions, selects matching rules,
compares bodies under those rules and regenerates values in JSON and XML
documents.

Configuration is read from --config, $PACTCORE_CONFIG or ./pactcore.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.teardown(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")
	flags.StringVar(&opts.configPath, "config", "", "Configuration file (default: $PACTCORE_CONFIG or ./pactcore.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the configuration)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json (overrides the configuration)")
	flags.BoolVar(&opts.showMetrics, "metrics", false, "Print generation and selection counters to stderr after the command")

	cmd.AddCommand(
		newParsePathCmd(opts),
		newSelectCmd(opts),
		newGenerateCmd(opts),
		newMatchCmd(opts),
		newValidateCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Resolve(o.configPath, ".")
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	console := cfg.Logging.Logging()
	console.Output = cmd.ErrOrStderr()
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		o.logFile = f
		o.log = logging.NewTee(console, logging.Config{
			Level:  logging.LevelDebug,
			Format: logging.FormatJSON,
			Output: f,
		})
	} else {
		o.log = logging.New(console)
	}

	contract.SetLogger(o.log)
	matching.SetLogger(o.log)
	o.engine = generate.New(generate.WithLogger(o.log))

	if o.showMetrics {
		metrics.Init()
	}
	o.log.Debug("configuration resolved", "path", cfg.Path(), "mode", cfg.Mode)
	return nil
}

func (o *rootOptions) teardown(cmd *cobra.Command) error {
	if o.logFile != nil {
		defer func() { _ = o.logFile.Close() }()
	}
	if !o.showMetrics {
		return nil
	}
	return o.printMetrics(cmd.ErrOrStderr())
}

func (o *rootOptions) printMetrics(w io.Writer) error {
	reg := metrics.DefaultRegistry()
	if reg == nil {
		return nil
	}
	samples, err := reg.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	tw := output.Table(w)
	for _, s := range samples {
		if !strings.HasPrefix(s.Name, "pactcore_") {
			continue
		}
		fmt.Fprintf(tw, "%s\t%g\n", s.Key(), s.Value)
	}
	return tw.Flush()
}

// stdout is where command results go.
func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
