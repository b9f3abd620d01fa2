package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wml-taglinks/config"
	"wml-taglinks/fetcher"
	"wml-taglinks/scraper"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	baseURL     string
	targetPath  string
	output      string
	missingHref string
	escape      bool
	timeout     time.Duration
	verbose     bool
}

// reportedError marks a failure that has already been logged
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func main() {
	if err := execute(newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and makes sure every failure reaches stderr. Usage errors
// raised by cobra before RunE are printed here; RunE logs its own.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\nRun '%s --help' for usage.\n", err, cmd.CommandPath())
	}
	return err
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wml-taglinks",
		Short: "Scrape the WML reference page into a tag links properties file",
		Long: "Fetches the WML reference page, collects the links from every table row\n" +
			"after the header and writes them as text=url lines.\n\n" + config.EnvHelp(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				slog.Error("configuration failed", "err", err)
				return &reportedError{err: err}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	flags.StringVar(&opts.baseURL, "base-url", "", "Wiki root prefixed to every link")
	flags.StringVar(&opts.targetPath, "path", "", "Path of the reference page under the wiki root")
	flags.StringVarP(&opts.output, "output", "o", "", "Properties file to overwrite")
	flags.StringVar(&opts.missingHref, "missing-href", "", "Policy for anchors without href: skip or fail")
	flags.BoolVar(&opts.escape, "escape", false, "Escape properties delimiters in keys and values")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// setupLogging sends structured logs to stderr so stdout only carries the summary
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// loadConfig layers defaults, config file, environment and explicit flags
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("path") {
		cfg.TargetPath = opts.targetPath
	}
	if flags.Changed("output") {
		cfg.OutputPath = opts.output
	}
	if flags.Changed("missing-href") {
		cfg.MissingHref = opts.missingHref
	}
	if flags.Changed("escape") {
		cfg.Escape = opts.escape
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	s := scraper.NewScraper(cfg, fetcher.NewCollyFetcher(cfg.UserAgent, cfg.Timeout))

	res, err := s.Run(ctx)
	if err != nil {
		var stageErr *scraper.StageError
		if errors.As(err, &stageErr) {
			slog.Error(stageErr.Stage+" failed", "err", stageErr.Err)
		} else {
			slog.Error("scrape failed", "err", err)
		}
		return &reportedError{err: err}
	}

	if res.Skipped > 0 {
		slog.Warn("some anchors had no href and were skipped", "skipped", res.Skipped)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d links to '%s'.\n", res.Written, res.Path)
	return nil
}
