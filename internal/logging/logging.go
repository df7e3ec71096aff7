// Package logging sets up the application wide slog logger. Log lines
// go to stdout and, when enabled, to a size-rotated log file so that
// unattended sync runs leave a persistent trail.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/mkettu/runsync/internal/conf"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the default slog logger according to the settings.
// It returns a closer for the log file, which may be a no-op.
func Init(settings *conf.Settings) io.Closer {
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if settings.Log.Enabled {
		fileWriter := &lumberjack.Logger{
			Filename:   settings.Log.Path,
			MaxSize:    settings.Log.MaxSize,
			MaxAge:     settings.Log.MaxAge,
			MaxBackups: settings.Log.MaxBackups,
		}
		w = io.MultiWriter(os.Stdout, fileWriter)
		closer = fileWriter
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
