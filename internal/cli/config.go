package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/ytplay/internal/config"
)

const configHeader = "# ytplay configuration\n# https://github.com/tessro/ytplay\n\n"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing ytplay configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(getConfigPath())
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Supported keys:
  player.path               mpv binary or directory
  player.volume             Starting volume (0-100)
  youtube.api_key           YouTube Data API v3 key
  youtube.format            yt-dlp format selector
  youtube.proxy             Proxy passed to yt-dlp
  playback.poll_interval_ms Playback status poll interval
  playback.loop             Start with looping enabled (true/false)
  playback.shuffle          Start with shuffle enabled (true/false)
  playback.show_info        Show the song info panel (true/false)
  lyrics.enabled            Allow lyrics lookups (true/false)
  lyrics.timeout_seconds    Lyrics lookup timeout
  log.level                 debug, info, warn or error

Examples:
  ytplay config set player.volume 60
  ytplay config set playback.shuffle true`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetFormatCmd = &cobra.Command{
	Use:   "set-format",
	Short: "Interactively select the stream format",
	Long:  `Shows a picker to select the yt-dlp format used for streams.`,
	RunE:  runConfigSetFormat,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetFormatCmd)
	rootCmd.AddCommand(configCmd)
}

// configKinds lists the keys accepted by config set and how their values
// are typed.
var configKinds = map[string]string{
	"player.path":               "string",
	"player.socket":             "string",
	"player.volume":             "int",
	"player.start_timeout":      "int",
	"player.load_timeout":       "int",
	"youtube.api_key":           "string",
	"youtube.ytdlp_path":        "string",
	"youtube.format":            "string",
	"youtube.proxy":             "string",
	"playback.poll_interval_ms": "int",
	"playback.loop":             "bool",
	"playback.shuffle":          "bool",
	"playback.show_info":        "bool",
	"playback.format":           "string",
	"playback.timestamps":       "bool",
	"playback.emoji":            "bool",
	"lyrics.enabled":            "bool",
	"lyrics.timeout_seconds":    "int",
	"lyrics.base_url":           "string",
	"log.level":                 "string",
	"log.file":                  "string",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(cfg)
	}

	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found at %s. Run 'ytplay config init' first", configPath)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"nano", "vim", "vi", "notepad"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists at %s", configPath)
	}

	if err := writeConfigFile(configPath, config.Default()); err != nil {
		return err
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	} else {
		fmt.Printf("Created config file: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Install mpv and yt-dlp, then run 'ytplay check'")
		fmt.Println("  2. Run 'ytplay <playlist-url>' to start playing")
	}

	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}

func writeConfigFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprint(f, configHeader)

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	configPath := getConfigPath()

	if err := setConfigValue(configPath, key, value); err != nil {
		return err
	}

	if JSONOutput() {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	} else {
		fmt.Printf("Set %s = %s\n", key, value)
	}

	return nil
}

// setConfigValue updates one key in the config file at path, creating the
// file if needed. The result must still validate.
func setConfigValue(path, key, value string) error {
	kind, ok := configKinds[key]
	if !ok {
		return fmt.Errorf("unknown key %q. Run 'ytplay config set --help' for the list", key)
	}

	rawConfig := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if _, err := toml.Decode(string(data), &rawConfig); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read config: %w", err)
	}

	section, field, _ := strings.Cut(key, ".")
	sectionMap, ok := rawConfig[section].(map[string]interface{})
	if !ok {
		sectionMap = make(map[string]interface{})
		rawConfig[section] = sectionMap
	}

	typedValue, err := parseConfigValue(kind, value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	sectionMap[field] = typedValue

	// Round-trip through the typed config so bad values never reach disk.
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(rawConfig); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	var check config.Config
	if _, err := toml.Decode(buf.String(), &check); err != nil {
		return fmt.Errorf("failed to check config: %w", err)
	}
	check.ApplyDefaults()
	if err := check.Validate(); err != nil {
		return err
	}

	return writeConfigFile(path, rawConfig)
}

func parseConfigValue(kind, value string) (interface{}, error) {
	switch kind {
	case "int":
		i, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("value must be an integer")
		}
		return i, nil
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			switch strings.ToLower(value) {
			case "yes", "on":
				return true, nil
			case "no", "off":
				return false, nil
			}
			return nil, fmt.Errorf("value must be true or false")
		}
		return b, nil
	default:
		return value, nil
	}
}

func runConfigSetFormat(cmd *cobra.Command, args []string) error {
	if !canInteract() {
		return fmt.Errorf("set-format needs an interactive terminal. Use 'ytplay config set youtube.format <selector>'")
	}

	selected := cfg.YouTube.Format
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select stream format").
				Description("Passed to yt-dlp as -f when resolving each video").
				Options(
					huh.NewOption("Best audio, fall back to best combined", "bestaudio/best"),
					huh.NewOption("Best audio (opus/webm)", "bestaudio[ext=webm]/bestaudio"),
					huh.NewOption("Best audio (m4a/aac)", "bestaudio[ext=m4a]/bestaudio"),
					huh.NewOption("Smallest audio", "worstaudio/worst"),
					huh.NewOption("Best combined audio and video", "best"),
				).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	return runConfigSet(cmd, []string{"youtube.format", selected})
}
