package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ponymatrix/internal/config"
	"ponymatrix/internal/logging"
)

const version = "v1.4.0"

var (
	// Global flags
	configPath   string
	dataDir      string
	outputFile   string
	outputFormat string
	themeMode    string
	seed         int64
	useTUI       bool
	noClear      bool
	verbose      bool

	// Resolved configuration
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ponymatrix",
	Short: "Pony Diffusion stability matrix prompt generator",
	Long: `ponymatrix assembles positive/negative prompt pairs for Pony Diffusion V6 XL
from CSV tag tables (characters, groups, styles, environments, actions, outfits,
themes, base tags) and appends them to a prompt file.

Run without arguments to start the interactive session. Run "ponymatrix init"
once to create a sample data/ directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = resolveConfig(cmd)
		if err != nil {
			return err
		}

		logOpts := cfg.Logging
		if verbose {
			logOpts.Level = "debug"
		}
		if err := logging.Initialize(logOpts); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Boot("ponymatrix %s: data=%s output=%s format=%s", version, cfg.Data.Dir, cfg.Output.File, cfg.Output.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runSession,
}

// initCmd writes the sample catalog
var initCmd = &cobra.Command{
	Use:   "init [data-dir]",
	Short: "Create a sample data directory and config file",
	Long: `Writes the built-in sample tag tables into the data directory (default: the
configured data dir) and a starter ponymatrix.yaml. Existing files are never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// validateCmd checks the data tables
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate every data table",
	RunE:  runValidate,
}

// historyCmd shows previously generated prompts
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the most recent prompts from the prompt file",
	RunE:  runHistory,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "ponymatrix "+version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Data directory with the CSV tables")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Prompt file to append to")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Block format: fenced or break")
	rootCmd.PersistentFlags().StringVar(&themeMode, "themes", "", "Theme overlay: auto, on or off")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for random picks (0 = random seed)")
	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "Use arrow-key menus")
	rootCmd.Flags().BoolVar(&noClear, "no-clear", false, "Do not clear the screen between menus")

	historyCmd.Flags().IntP("count", "n", 5, "Number of prompts to show")
	historyCmd.Flags().Bool("raw", false, "Print blocks exactly as stored instead of rendering markdown")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig loads the config file and applies flags the user set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.Data.Dir = dataDir
	}
	if flags.Changed("output") {
		c.Output.File = outputFile
	}
	if flags.Changed("format") {
		c.Output.Format = outputFormat
	}
	if flags.Changed("themes") {
		c.Data.Themes = themeMode
	}
	if flags.Changed("seed") {
		c.Session.Seed = seed
	}
	if flags.Changed("tui") && useTUI {
		c.Session.Interface = "tui"
	}
	if flags.Changed("no-clear") && noClear {
		c.Session.ClearScreen = false
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}
