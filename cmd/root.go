// =============================================================================
// Standard 18 Reader - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (std18)
//   ├── parseCmd   (std18 parse FILE)
//   ├── processCmd (std18 process)
//   ├── layoutsCmd (std18 layouts [ROW])
//   └── versionCmd (std18 version)
//
// CONFIGURATION:
//   The configuration file is chosen in this order:
//   1. The --config flag
//   2. The STD18_CONFIG environment variable
//   3. std18.yaml in the working directory, if present
//   Variables from a .env file are loaded before the lookup.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bacs-std18/internal/config"
	"github.com/ginjaninja78/bacs-std18/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file given with --config.
var cfgFile string

// envFile names the dotenv file loaded before configuration.
var envFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "std18",
	Short: "Standard 18 Reader - Decode BACS Standard 18 payment files",
	Long: `Standard 18 Reader decodes BACS Standard 18 interchange files: the
fixed-width volume, header, payment instruction, contra and trailer records
exchanged with the UK clearing system.

Key Features:
  - Classification of every line by record label or transaction code
  - Typed decoding of each record with line and business numbering
  - JSON output for single files
  - Concurrent batch conversion to Excel workbooks

Example Usage:
  std18 parse payments.std18            # Print every record as JSON
  std18 process                         # Convert every file in the input directory
  std18 process --config ./prod.yaml    # Use a custom configuration file
  std18 layouts INSTR                   # Show the column layout of a record`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default $STD18_CONFIG or std18.yaml)",
	)

	rootCmd.PersistentFlags().StringVar(
		&envFile,
		"env-file",
		".env",
		"Path to a dotenv file loaded at startup, if it exists",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadEnv loads the dotenv file. A missing file is not an error.
func loadEnv() error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return nil
}

// loadConfig resolves and loads the configuration file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	if path == "" {
		return config.LoadOrDefault(config.DefaultPath)
	}
	return config.Load(path)
}

// newLogger builds the command logger, writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.Setup(level, cfg.LogFormat, cmd.ErrOrStderr())
}
