// Package commands implements the CLI commands for pasteclean.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pasteclean/internal/logger"
	"github.com/jmylchreest/pasteclean/pkg/cleaner/paste"
)

var rootCmd = &cobra.Command{
	Use:   "pasteclean",
	Short: "Clean rich text pasted from Google Docs and Word for HubSpot",
	Long: `Pasteclean turns the markup a word processor puts on the clipboard into
the plain paragraphs the HubSpot rich text editor keeps.

Bold and italic styling become <strong> and <em>, divs and line breaks
become paragraphs separated by spacing paragraphs, runs of emoji-led lines
are indented like a list, and straight quotes are curled.

Examples:
  # Clean a saved paste
  pasteclean clean paste.html

  # Clean stdin, copy the result back to the clipboard
  xclip -o -t text/html | pasteclean clean --copy

  # Re-clean on every save
  pasteclean watch draft.html -o clean.html

  # Paste into a browser page and copy the result
  pasteclean serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.pasteclean.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides --debug/--quiet)")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pasteclean")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. PASTECLEAN_LOG_LEVEL
	viper.SetEnvPrefix("PASTECLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

func initLogger() error {
	err := logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
		Level: viper.GetString("log_level"),
	})
	if err != nil {
		logger.Warn("ignoring log level", "error", err)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return nil
}

// cleanerConfig builds the cleaner configuration: defaults, then the
// "cleaner" section of the config file. Lists in the file replace the
// defaults.
func cleanerConfig() (*paste.Config, error) {
	cfg := paste.DefaultConfig()

	// mapstructure decodes into existing slices element by element, which
	// would keep trailing defaults behind a shorter list.
	lists := map[string]*[]string{
		"wrapper_selectors":    &cfg.WrapperSelectors,
		"paragraph_attributes": &cfg.ParagraphAttributes,
		"anchor_attributes":    &cfg.AnchorAttributes,
		"artifact_attributes":  &cfg.ArtifactAttributes,
	}
	for key, list := range lists {
		if viper.IsSet("cleaner." + key) {
			*list = nil
		}
	}

	if err := viper.UnmarshalKey("cleaner", cfg); err != nil {
		return nil, fmt.Errorf("failed to read cleaner config: %w", err)
	}
	cfg.Debug = cfg.Debug || viper.GetBool("debug")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logError("%v", err)
	}
	return err
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
