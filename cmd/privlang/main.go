// Package main provides the privlang binary entry point.
// Privlang validates, queries, and exports privacy taxonomy datasets.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/privlang/privlang/config"
	"github.com/privlang/privlang/defaults"
	"github.com/privlang/privlang/export"
	"github.com/privlang/privlang/loader"
	"github.com/privlang/privlang/taxonomy"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "privlang"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Privacy taxonomy toolkit",
		Long: `Privlang manages privacy taxonomy datasets: controlled vocabularies of
data categories, data uses, data qualifiers, and data subjects.

It provides:
- Batch validation of dataset files (key uniqueness, lineage, cycles)
- Hierarchy queries over built taxonomies
- Export to YAML or JSON with stable ordering

Datasets are YAML files; the shipped default taxonomy is embedded in the
binary and can be merged with project-defined vocabularies.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(validateCmd(&configPath, &logLevel))
	cmd.AddCommand(exportCmd(&configPath, &logLevel))
	cmd.AddCommand(treeCmd(&configPath, &logLevel))
	cmd.AddCommand(watchCmd(&configPath, &logLevel))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup configures logging and loads the layered configuration, applying
// CLI overrides.
func setup(configPath, logLevel string) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
		if err == nil {
			err = cfg.Validate()
		}
	} else {
		cfg, err = config.NewLoader(logger).Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, logger, nil
}

// loadTaxonomy loads the dataset at path (or the configured path) and
// merges the shipped taxonomy when configured.
func loadTaxonomy(cfg *config.Config, logger *slog.Logger, path string) (*taxonomy.Taxonomy, error) {
	if path == "" {
		path = cfg.Taxonomy.Path
	}

	l := loader.New(logger)

	var tax *taxonomy.Taxonomy
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		tax, err = l.LoadDir(path, cfg.Taxonomy.Include)
	} else {
		tax, err = l.LoadPath(path)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Taxonomy.WithDefaults {
		shipped, err := defaults.Load()
		if err != nil {
			return nil, err
		}
		tax, err = taxonomy.Merge(shipped, tax)
		if err != nil {
			return nil, fmt.Errorf("merge with shipped taxonomy: %w", err)
		}
	}

	return tax, nil
}

func validateCmd(configPath, logLevel *string) *cobra.Command {
	var defaultsOnly bool

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a taxonomy dataset",
		Long: `Validate loads a dataset directory or file, checks every record against
the field schema, and verifies key uniqueness, parent references, and
acyclicity. Dotted keys that do not mirror their parent lineage are
reported as warnings; the convention is informational, not enforced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			var tax *taxonomy.Taxonomy
			if defaultsOnly {
				tax, err = defaults.Load()
			} else {
				path := ""
				if len(args) == 1 {
					path = args[0]
				}
				tax, err = loadTaxonomy(cfg, logger, path)
			}
			if err != nil {
				return err
			}

			for _, kind := range taxonomy.Kinds {
				fmt.Printf("%-15s %d entries, %d roots\n",
					kind, tax.Collection(kind).Len(), len(tax.Collection(kind).Roots()))
			}

			for _, drift := range conventionDrift(tax) {
				logger.Warn("Key does not mirror parent lineage", "fides_key", drift)
			}

			fmt.Printf("OK: %d entries validated\n", tax.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&defaultsOnly, "defaults", false, "Validate only the shipped taxonomy")
	return cmd
}

func exportCmd(configPath, logLevel *string) *cobra.Command {
	var (
		formatName string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export a taxonomy in a serialization format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			if formatName == "" {
				formatName = cfg.Export.Format
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			if output == "" {
				output = cfg.Export.Output
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			tax, err := loadTaxonomy(cfg, logger, path)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			return export.Write(out, tax, format)
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Export format (yaml, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}

func treeCmd(configPath, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <kind> <fides_key>",
		Short: "Show an entry's lineage and subtree",
		Long: `Tree prints the root-to-parent lineage of an entry followed by its
subtree. Kind is one of: data_category, data_use, data_qualifier,
data_subject.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			kind := taxonomy.Kind(args[0])
			key := args[1]

			tax, err := loadTaxonomy(cfg, logger, "")
			if err != nil {
				return err
			}

			collection := tax.Collection(kind)
			if collection == nil {
				return fmt.Errorf("unknown vocabulary kind: %s", kind)
			}

			entry, err := collection.Get(key)
			if err != nil {
				return err
			}

			ancestors, err := collection.AncestorsOf(key)
			if err != nil {
				return err
			}
			for i, a := range ancestors {
				fmt.Printf("%s%s\n", strings.Repeat("  ", i), a.FidesKey)
			}
			fmt.Printf("%s%s  (%s)\n", strings.Repeat("  ", len(ancestors)), entry.FidesKey, entry.Name)

			descendants, err := collection.DescendantsOf(key)
			if err != nil {
				return err
			}
			for _, d := range descendants {
				depth := len(ancestors) + 1
				if chain, err := collection.AncestorsOf(d.FidesKey); err == nil {
					depth = len(chain)
				}
				fmt.Printf("%s%s\n", strings.Repeat("  ", depth), d.FidesKey)
			}
			return nil
		},
	}
	return cmd
}

func watchCmd(configPath, logLevel *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Revalidate a dataset directory on changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			root := cfg.Taxonomy.Path
			if len(args) == 1 {
				root = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			l := loader.New(logger)
			watcher, err := loader.NewWatcher(cfg.Watch, root, l, logger)
			if err != nil {
				return err
			}
			defer watcher.Stop()

			// Validate once up front so the first report doesn't wait for a change.
			if tax, err := l.LoadDir(root, cfg.Taxonomy.Include); err != nil {
				logger.Warn("Initial validation failed", "error", err)
			} else {
				fmt.Printf("OK: %d entries validated\n", tax.Len())
			}

			if err := watcher.Start(ctx); err != nil {
				return err
			}

			for result := range watcher.Results() {
				if result.Err != nil {
					fmt.Printf("FAIL: %v\n", result.Err)
					continue
				}
				fmt.Printf("OK: %d entries validated\n", result.Taxonomy.Len())
			}
			return nil
		},
	}
	return cmd
}

// conventionDrift lists entries whose dotted fides_key does not extend the
// parent's key. The dataset convention says "a.b.c" sits under "a.b"; drift
// is legal but usually a mistake.
func conventionDrift(tax *taxonomy.Taxonomy) []string {
	var drifted []string
	for _, kind := range taxonomy.Kinds {
		for _, entry := range tax.Collection(kind).Entries() {
			if entry.ParentKey == "" {
				continue
			}
			if !strings.HasPrefix(entry.FidesKey, entry.ParentKey+".") {
				drifted = append(drifted, string(kind)+"/"+entry.FidesKey)
			}
		}
	}
	return drifted
}
