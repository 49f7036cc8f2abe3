package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tessro/ytplay/internal/config"
	"github.com/tessro/ytplay/internal/display"
	apperrors "github.com/tessro/ytplay/internal/errors"
	"github.com/tessro/ytplay/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ytplay [playlist-url]",
	Short: "Stream a YouTube playlist from the terminal",
	Long: `ytplay streams a YouTube playlist through mpv and reads playback
commands from the terminal while it plays.

Without a playlist URL, the playlist, API key and player directory from the
previous run are reused.

Examples:
  ytplay "https://www.youtube.com/playlist?list=PL..."
  ytplay -y YOUR_API_KEY "https://www.youtube.com/playlist?list=PL..."
  ytplay --shuffle
  ytplay -p /opt/mpv/bin`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return logging.Init(cfg.Log, verbose)
	},
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.ytplayrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, err)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, display.ErrorText(apperrors.Format(err)))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
