// Package cli provides the command-line interface for linecount.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/linecount/internal/config"
	"github.com/dshills/linecount/internal/counter"
	"github.com/dshills/linecount/internal/logging"
	"github.com/dshills/linecount/internal/mcp"
	"github.com/dshills/linecount/internal/report"
	"github.com/dshills/linecount/internal/traverser"
)

// BuildInfo is set by main from linker flags
type BuildInfo struct {
	Version   string
	BuildTime string
}

// NewRootCmd creates the root command. Files are read from fsys, which is
// the host filesystem rooted at "/" outside of tests. Roots are made absolute
// against the working directory before walking.
func NewRootCmd(info BuildInfo, fsys billy.Filesystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linecount",
		Short: "Count source lines across directories",
		Long: `linecount walks each root directory, counts the lines of every file whose
name ends in one of the configured extensions, skips any path containing an
excluded substring, and prints a total per root and for the whole project.

Settings come from flags, then LINECOUNT_* environment variables
(LINECOUNT_ROOTS, LINECOUNT_EXTENSIONS, LINECOUNT_EXCLUSIONS take comma
separated lists), then built-in defaults.`,
		Version: info.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return runCount(cmd.Context(), cmd.OutOrStdout(), fsys, cfg, logger)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}}\nBuild Time: %s\n", info.BuildTime))

	flags := rootCmd.PersistentFlags()
	flags.StringArray(config.FlagRoot, nil, "root directory to count (repeatable)")
	flags.StringArray(config.FlagExt, nil, "file extension to count, without leading dot (repeatable)")
	flags.StringArray(config.FlagExclude, nil, "skip paths containing this substring (repeatable)")
	flags.IntP(config.FlagWorkers, "w", config.DefaultWorkers, "number of roots counted concurrently")
	flags.BoolP(config.FlagVerbose, "v", false, "verbose diagnostics")
	flags.String(config.FlagLogFormat, config.DefaultLogFormat, "diagnostic log format (console|json)")

	_ = rootCmd.RegisterFlagCompletionFunc(config.FlagLogFormat, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{logging.FormatConsole, logging.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newServeCmd(fsys))

	return rootCmd
}

// Execute runs the root command against the real filesystem
func Execute(ctx context.Context, info BuildInfo) error {
	rootCmd := NewRootCmd(info, osfs.New("/"))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newServeCmd(fsys billy.Filesystem) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run an MCP server on stdio exposing the count_lines tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			server := mcp.NewServer(fsys, cfg, logger)
			if err := server.Serve(cmd.Context()); err != nil && cmd.Context().Err() == nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("server stopped")
			return nil
		},
	}
}

// setup loads configuration and builds the diagnostic logger on stderr
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Format:  cfg.LogFormat,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// runCount counts every configured root and writes the report to out
func runCount(ctx context.Context, out io.Writer, fsys billy.Filesystem, cfg *config.Config, logger *zap.Logger) error {
	if cwd, err := os.Getwd(); err == nil {
		logger.Debug("current working directory", zap.String("cwd", cwd))
	}
	logger.Debug("configuration",
		zap.Strings("roots", cfg.Roots),
		zap.Strings("extensions", cfg.Extensions),
		zap.Strings("exclusions", cfg.Exclusions),
		zap.Int("workers", cfg.Workers),
	)

	c := counter.New(fsys, traverser.NewFilter(cfg.Extensions, cfg.Exclusions),
		counter.WithLogger(logger),
		counter.WithWorkers(cfg.Workers),
		counter.WithRootResolver(filepath.Abs),
	)

	rep, err := c.CountAll(ctx, cfg.Roots)
	if err != nil {
		return err
	}

	return report.Write(out, rep)
}
