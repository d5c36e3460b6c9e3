package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enigma/internal/catalog"
	"enigma/internal/config"
	"enigma/internal/format"
	"enigma/internal/keysheet"
	"enigma/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	catalog    []string
	dbPath     string
	logLevel   string
	logFormat  string
}

// cfg is the resolved configuration for the running command.
var cfg = config.Default()

// tableStyle is cfg.Table parsed by setup.
var tableStyle = format.ASCII

var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "Enigma rotor cipher machine simulator",
	Long: "enigma simulates the Wehrmacht and Kriegsmarine rotor cipher machines.\n" +
		"Machines come from a catalog: the built-in Enigma I, M3 and M4, plus any\n" +
		"YAML or JSON catalog files given with --catalog.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "Config file (YAML/JSON); default "+config.DefaultPath+" if present")
	f.StringSliceVar(&rootFlags.catalog, "catalog", nil, "Extra catalog file or directory (repeatable)")
	f.StringVar(&rootFlags.dbPath, "db", "", "Key-sheet database path (default "+config.DefaultDBPath+")")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(encipherCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

// setup resolves file, environment and flag configuration, in that order of
// precedence from lowest to highest, and installs the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Resolve(rootFlags.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("catalog") {
		c.Catalog = append(c.Catalog, rootFlags.catalog...)
	}
	if flags.Changed("db") {
		c.DBPath = rootFlags.dbPath
	}
	if flags.Changed("log-level") {
		c.LogLevel = rootFlags.logLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = rootFlags.logFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}
	style, err := format.ParseMode(c.Table)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := logging.ParseLevel(c.LogLevel)
	logFormat, _ := logging.ParseFormat(c.LogFormat)
	logging.Init(level, logFormat, cmd.ErrOrStderr())
	cfg = c
	tableStyle = style
	return nil
}

func openCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Open(cfg.Catalog...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func openStore() (*keysheet.SqlStore, error) {
	st, err := keysheet.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open key sheets: %w", err)
	}
	return st, nil
}

// tableMode returns markdown when forced, otherwise the configured style.
func tableMode(markdown bool) format.Mode {
	if markdown {
		return format.Markdown
	}
	return tableStyle
}
