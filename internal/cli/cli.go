// Package cli implements the resource-processor command line.
//
//	resource-processor <output_dir> [input_pattern ...] [-t transformer[,transformer...]]
//
// The transformer list decides precedence: for every input the first listed
// transformer that accepts it wins. Without -t every input is skipped.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/handiism/resource-pipeline/internal/config"
	"github.com/handiism/resource-pipeline/internal/pipeline"
	"github.com/handiism/resource-pipeline/internal/transform"
)

// Exit codes returned by Run.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

const usageLine = "resource-processor <output_dir> [input_pattern ...] [-t transformer[,transformer...]]"

type options struct {
	transformers string
	configPath   string
	jobs         int
	exclude      []string
	manifest     string
	mirror       bool
	failOnError  bool
	verbose      bool
	logLevel     string
	logFormat    string
}

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// Run executes the command with args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Names only; factories are rebuilt from the loaded settings.
	registry := transform.DefaultRegistry(nil)

	cmd := newCommand(stdout, stderr)
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		printUsage(stdout, c, registry)
	})

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %v\n\n", ue.err)
		printUsage(stderr, cmd, registry)
		return ExitUsage
	}

	var unknown *transform.UnknownTransformerError
	if errors.As(err, &unknown) {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr, cmd, registry)
		return ExitFailure
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitFailure
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Route resource files through a chain of transformers into an output directory",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 2 {
				return &usageError{err: fmt.Errorf("expected an output directory and at least one input pattern, got %d argument(s)", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], args[1:], stdout, stderr)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.transformers, "transformers", "t", "", "comma-separated transformer chain, first match wins")
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML or JSON settings file")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "number of inputs processed in parallel (overrides config)")
	flags.StringArrayVarP(&opts.exclude, "exclude", "x", nil, "glob of inputs to leave out (repeatable)")
	flags.StringVar(&opts.manifest, "manifest", "", "write a YAML manifest of the per-input outcomes")
	flags.BoolVar(&opts.mirror, "mirror", false, "recreate sub-directories when processing directories")
	flags.BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero when any transformer fails")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose output")
	flags.StringVar(&opts.logLevel, "loglevel", "warn", "set the log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "logformat", "text", "set the log format (text, json)")

	return cmd
}

func run(cmd *cobra.Command, opts *options, outputDir string, patterns []string, stdout, stderr io.Writer) error {
	ctx := cmd.Context()

	logger, err := newLogger(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		return &usageError{err: err}
	}
	ctx = slogcontext.NewCtx(ctx, logger)

	// Load config
	settings := config.DefaultSettings()
	if opts.configPath != "" {
		settings, err = config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Apply flags
	if opts.jobs > 0 {
		settings.MaxConcurrentInputs = opts.jobs
	}
	if len(opts.exclude) > 0 {
		settings.Exclude = append(settings.Exclude, opts.exclude...)
	}
	if opts.manifest != "" {
		settings.ManifestPath = opts.manifest
	}
	if opts.mirror {
		settings.MirrorDirectoryTree = true
	}

	// Resolve the chain before anything touches the filesystem.
	registry := transform.DefaultRegistry(settings.ToTransformOptions())
	chain, err := registry.ResolveChain(opts.transformers)
	if err != nil {
		return err
	}

	out := newPrinter(stdout, opts.verbose)
	out.field("output", outputDir)
	out.field("inputs", strings.Join(patterns, " "))

	processor := pipeline.NewProcessor(settings, chain, out.event)
	out.field("transformers", strings.Join(processor.ChainNames(), " "))

	if err := processor.Initialize(ctx, patterns); err != nil {
		if ctx.Err() != nil {
			return &exitError{code: ExitInterrupted, err: errors.New("interrupted")}
		}
		return err
	}

	result, err := processor.Process(ctx, outputDir)
	if err != nil {
		if ctx.Err() != nil {
			return &exitError{code: ExitInterrupted, err: errors.New("interrupted")}
		}
		return err
	}

	if opts.failOnError && result.HasFailures() {
		return &exitError{code: ExitFailure, err: fmt.Errorf("%d input(s) failed", len(result.Failed()))}
	}
	return nil
}

func printUsage(w io.Writer, cmd *cobra.Command, registry *transform.Registry) {
	fmt.Fprintf(w, "Usage:\n  %s\n\n", usageLine)
	fmt.Fprintf(w, "Flags:\n%s\n", cmd.Flags().FlagUsages())
	fmt.Fprintln(w, "Transformers available:")
	for _, info := range registry.Infos() {
		fmt.Fprintf(w, "  %-15s %s\n", info.Name, info.Description)
	}
}
