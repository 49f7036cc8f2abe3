// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tessro/ytplay/internal/config"
)

// LogFilename is the file name used when no log file is configured.
const LogFilename = "ytplay.log"

// DefaultPath returns the log file location under $XDG_STATE_HOME.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join("ytplay", LogFilename))
}

// Init routes the global logger to a rotating log file. When verbose is set,
// log lines are also written to stderr in console format.
func Init(cfg config.LogConfig, verbose bool) error {
	logFile := cfg.File
	if logFile == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		logFile = p
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return err
	}

	writers := []io.Writer{&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    1,
		MaxBackups: 2,
	}}
	if verbose {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	log.Logger = log.Output(io.MultiWriter(writers...))

	return nil
}
