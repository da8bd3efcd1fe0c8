// Package main provides the CLI entry point for nbheader.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/nbheader-go/internal/config"
	"github.com/ukaji3/nbheader-go/internal/logging"
	"github.com/ukaji3/nbheader-go/pkg/nbheader"
	"go.uber.org/zap"
)

var (
	extension  string
	atomic     bool
	renewIDs   bool
	configPath string
	verbose    bool

	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nbheader [header_notebook] [notebook_dir]",
		Short: "Insert a header notebook's cells into every notebook of a directory",
		Long: `nbheader inserts the cells of a header notebook (dependency installation
and setup cells) into every notebook directly inside a directory, right after
each notebook's first cell. Notebooks are rewritten in place.

Without arguments, header_colab.ipynb and src/ next to the executable are used.`,
		Args: cobra.MaximumNArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: run,
	}

	rootCmd.Flags().StringVar(&extension, "ext", nbheader.DefaultExtension, "Extension of the notebooks to rewrite")
	rootCmd.Flags().BoolVar(&atomic, "atomic", false, "Write nothing unless every notebook can be processed")
	rootCmd.Flags().BoolVar(&renewIDs, "renew-ids", false, "Give inserted header cells fresh cell ids")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (.toml, .yaml or .yml)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every rewritten notebook")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	s, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}

	opts := nbheader.Options{
		Extension: s.extension,
		Atomic:    s.atomic,
		RenewIDs:  s.renewIDs,
		Logger:    logger,
	}

	rewritten, err := nbheader.Inject(s.header, s.notebookDir, opts)
	if err != nil {
		return fmt.Errorf("injection failed: %w", err)
	}

	logger.Debug("run complete",
		zap.String("header", s.header),
		zap.String("notebook_dir", s.notebookDir),
		zap.Int("rewritten", len(rewritten)))
	return nil
}

// settings is the merged result of defaults, config file, arguments and flags.
type settings struct {
	header      string
	notebookDir string
	extension   string
	atomic      bool
	renewIDs    bool
}

func resolveSettings(cmd *cobra.Command, args []string) (settings, error) {
	s := settings{extension: nbheader.DefaultExtension}

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return settings{}, err
		}
		s.header = cfg.Header
		s.notebookDir = cfg.NotebookDir
		if cfg.Extension != "" {
			s.extension = cfg.Extension
		}
		if cfg.Atomic != nil {
			s.atomic = *cfg.Atomic
		}
		if cfg.RenewIDs != nil {
			s.renewIDs = *cfg.RenewIDs
		}
	}

	if len(args) > 0 {
		s.header = args[0]
	}
	if len(args) > 1 {
		s.notebookDir = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("ext") {
		s.extension = extension
	}
	if flags.Changed("atomic") {
		s.atomic = atomic
	}
	if flags.Changed("renew-ids") {
		s.renewIDs = renewIDs
	}

	if err := config.Validate(config.Config{Extension: s.extension}); err != nil {
		return settings{}, err
	}

	if s.header == "" || s.notebookDir == "" {
		dir, err := executableDir()
		if err != nil {
			return settings{}, fmt.Errorf("resolve default paths: %w", err)
		}
		header, notebookDir := defaultPaths(dir)
		if s.header == "" {
			s.header = header
		}
		if s.notebookDir == "" {
			s.notebookDir = notebookDir
		}
	}

	return s, nil
}
