package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid arguments")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// commands are dispatched before flag parsing.
var commands = map[string]bool{
	"version": true,
	"help":    true,
	"doctor":  true,
}

// isCommand reports whether arg names a subcommand rather than an input file.
func isCommand(arg string) bool {
	return commands[arg]
}

// runMain dispatches args (including the program name) and returns the
// process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	rest := args[1:]
	if isCommand(rest[0]) {
		switch rest[0] {
		case "version":
			fmt.Fprintf(env.Stdout, "invoice2pdf %s\n", Version)
			return ExitSuccess
		case "help":
			return runHelp(rest[1:], env)
		case "doctor":
			return runDoctorCmd(rest[1:], env)
		}
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	flags, positional, err := parseGenerateFlags(rest, io.Discard)
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'invoice2pdf help' for usage.")
		return ExitUsage
	}

	configRef, err := runGenerate(ctx, positional, flags, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configRef))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate runs one batch and prints the archive path as the last
// stdout line. It returns the config reference it used so hints can name it.
func runGenerate(ctx context.Context, positional []string, flags *generateFlags, env *Environment) (string, error) {
	start := env.Now()

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	configRef := flags.common.config
	if configRef == "" {
		configRef = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if configRef != "" {
		var err error
		if cfg, err = config.LoadConfig(configRef); err != nil {
			return configRef, fmt.Errorf("loading config: %w", err)
		}
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	req, err := resolveRequest(positional, cfg)
	if err != nil {
		return configRef, err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return configRef, err
	}

	var progress io.Writer = env.Stdout
	if flags.common.quiet {
		progress = io.Discard
	}

	opts := invoice2pdf.OptionsFromConfig(cfg)
	opts = append(opts, invoice2pdf.WithClock(env.Now), invoice2pdf.WithProgress(progress))
	if timeout > 0 {
		opts = append(opts, invoice2pdf.WithTimeout(timeout))
	}

	gen, err := env.NewGenerator(opts...)
	if err != nil {
		return configRef, err
	}
	defer func() { _ = gen.Close() }()

	result, err := gen.Generate(ctx, req)
	if err != nil {
		if cause := systemicFailure(result); cause != nil {
			err = errors.Join(err, cause)
		}
		return configRef, err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%d generated, %d skipped in %v\n",
			len(result.Documents), len(result.Failures), env.Now().Sub(start).Round(time.Millisecond))
	}
	fmt.Fprintln(env.Stdout, result.ArchivePath)
	return configRef, nil
}

// systemicFailure returns the first row error when every row failed on the
// browser, so the exit code and hint point at Chrome instead of the data.
func systemicFailure(result *invoice2pdf.BatchResult) error {
	if result == nil || len(result.Documents) > 0 || len(result.Failures) == 0 {
		return nil
	}
	for _, f := range result.Failures {
		if !isBrowserError(f.Err) {
			return nil
		}
	}
	return result.Failures[0].Err
}

func isBrowserError(err error) bool {
	return errors.Is(err, invoice2pdf.ErrBrowserConnect) ||
		errors.Is(err, invoice2pdf.ErrPageCreate) ||
		errors.Is(err, invoice2pdf.ErrPageLoad) ||
		errors.Is(err, invoice2pdf.ErrPDFGeneration)
}

// mergeFlags applies explicitly set flags over the config (flags win).
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.date != "" {
		cfg.Invoice.Date = flags.date
	}
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin > 0 {
		cfg.Page.Margin = flags.page.margin
	}
	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Assets.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// resolveRequest maps <input-path> <output-dir> [logo-path] to a request.
// The output directory may come from output.defaultDir instead.
func resolveRequest(positional []string, cfg *config.Config) (invoice2pdf.Request, error) {
	switch len(positional) {
	case 1:
		if cfg.Output.DefaultDir == "" {
			return invoice2pdf.Request{}, fmt.Errorf("%w: missing output directory", ErrUsage)
		}
		return invoice2pdf.Request{InputPath: positional[0], OutputDir: cfg.Output.DefaultDir}, nil
	case 2:
		return invoice2pdf.Request{InputPath: positional[0], OutputDir: positional[1]}, nil
	case 3:
		return invoice2pdf.Request{InputPath: positional[0], OutputDir: positional[1], LogoPath: positional[2]}, nil
	case 0:
		return invoice2pdf.Request{}, fmt.Errorf("%w: missing input path", ErrUsage)
	default:
		return invoice2pdf.Request{}, fmt.Errorf("%w: expected at most 3 arguments, got %d", ErrUsage, len(positional))
	}
}

// resolveTimeout picks the --timeout flag over the environment value.
// Zero means the library default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}
