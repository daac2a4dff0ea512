package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/config"
	"github.com/alnah/go-csvblocks/internal/fileutil"
	"github.com/alnah/go-csvblocks/internal/hints"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoInputFiles       = errors.New("no .csv or .xlsx files found")
	ErrReadInput          = errors.New("failed to read input file")
	ErrReadMapping        = errors.New("failed to read mapping file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrConverterInit      = errors.New("failed to initialize converter")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	mapping  *csvblocks.Mapping // nil = built-in defaults
	fragment bool
	pdf      bool
	preview  bool
	sheet    string
	siteRoot string
	logger   *zap.Logger
}

// runConvertCmd parses convert flags, runs the conversion and maps the
// outcome to an exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	defer func() { _ = logger.Sync() }()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, logger *zap.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoInputFiles, inputPath)
	}

	warn := newWarner(env.Stderr, flags.common.quiet)
	mapping, err := resolveMapping(cfg, warn)
	if err != nil {
		return err
	}

	params := &conversionParams{
		mapping:  mapping,
		fragment: cfg.Output.Fragment,
		pdf:      cfg.Output.PDF,
		preview:  cfg.Output.Preview,
		sheet:    cfg.Sheet,
		siteRoot: cfg.Output.SiteRoot,
		logger:   logger,
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	size := csvblocks.ResolvePoolSize(workers)
	logger.Debug("converter pool", zap.Int("size", size), zap.Int("files", len(files)))

	pool := env.NewPool(size, converterOptions(cfg, timeout, page)...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	results := convertBatch(ctx, pool, files, params)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if flags.watch {
		return runWatch(ctx, &watchSession{
			files:   files,
			cfg:     cfg,
			pool:    pool,
			params:  params,
			env:     env,
			warn:    warn,
			quiet:   flags.common.quiet,
			verbose: flags.common.verbose,
		})
	}

	if failed > 0 {
		return &batchError{failed: failed, total: len(results), first: firstError(results)}
	}
	return nil
}

// loadConfig loads the named config (flag first, then CSVBLOCKS_CONFIG) or
// falls back to the environment's default config.
func loadConfig(name string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		if env.Config == nil {
			return config.DefaultConfig(), nil
		}
		cfg := *env.Config
		return &cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.mapping != "" {
		cfg.MappingFile = flags.mapping
		cfg.Mapping = nil
	}
	if flags.sheet != "" {
		cfg.Sheet = flags.sheet
	}
	if flags.siteRoot != "" {
		cfg.Output.SiteRoot = flags.siteRoot
	}
	if flags.assetsDir != "" {
		cfg.Assets.BasePath = flags.assetsDir
	}
	if flags.sanitize {
		cfg.Sanitize = true
	}

	// Output mode flags only switch artifacts on.
	if flags.outputMode.fragment {
		cfg.Output.Fragment = true
	}
	if flags.outputMode.pdf {
		cfg.Output.PDF = true
	}
	if flags.outputMode.preview {
		cfg.Output.Preview = true
	}

	// Page flags
	if flags.page.size != "" {
		cfg.Page.Size = flags.page.size
	}
	if flags.page.orientation != "" {
		cfg.Page.Orientation = flags.page.orientation
	}
	if flags.page.margin != 0 {
		cfg.Page.Margin = flags.page.margin
	}
}

// buildPageSettings fills unset page fields with defaults and validates.
func buildPageSettings(cfg *config.Config) (*csvblocks.PageSettings, error) {
	page := csvblocks.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// converterOptions turns resolved settings into library options. The
// mapping travels with each Input so watch mode can reload it.
func converterOptions(cfg *config.Config, timeout time.Duration, page *csvblocks.PageSettings) []csvblocks.Option {
	opts := []csvblocks.Option{
		csvblocks.WithPageSettings(page),
		csvblocks.WithSanitize(cfg.Sanitize),
	}
	if timeout > 0 {
		opts = append(opts, csvblocks.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, csvblocks.WithAssetsDir(cfg.Assets.BasePath))
	}
	return opts
}

// resolveMapping returns the inline config mapping, or parses the mapping
// file. A file that cannot be parsed yields a warning and the defaults; a
// file that cannot be read is an error.
func resolveMapping(cfg *config.Config, warn warnFunc) (*csvblocks.Mapping, error) {
	if cfg.Mapping != nil {
		m := csvblocks.Mapping(*cfg.Mapping)
		return &m, nil
	}
	if cfg.MappingFile == "" {
		return nil, nil
	}

	text, err := fileutil.ReadText(cfg.MappingFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMapping, err)
	}

	m, err := csvblocks.ParseMapping([]byte(text))
	if err != nil {
		warn("ignoring mapping %s: %v%s", cfg.MappingFile, err, hints.ForMapping())
		m = csvblocks.DefaultMapping()
	}
	return &m, nil
}

// resolveTimeout returns the --timeout value, else the env timeout. Zero
// means the library default.
func resolveTimeout(flagValue string, envTimeout time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s (must be positive)", ErrInvalidTimeout, d)
	}
	return d, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", errUnexpectedArgs(args[1:])
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > csvblocks.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, csvblocks.MaxPoolSize)
	}
	return nil
}

// warnFunc prints a user-facing warning.
type warnFunc func(format string, args ...any)

func newWarner(w io.Writer, quiet bool) warnFunc {
	if quiet {
		return func(string, ...any) {}
	}
	return func(format string, args ...any) {
		fmt.Fprintf(w, "warning: "+format+"\n", args...)
	}
}
