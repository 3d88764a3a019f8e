/*
Package log provides leveled console logging with file/line information.

Features:
- Colored console output through zerolog
- Automatic caller file/line detection
- Customizable call depth tracking
- Optional rotated log file
*/
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the package logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives a copy of every entry and is rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Out defaults to os.Stdout.
	Out     io.Writer
	NoColor bool
}

var logger = newLogger(os.Stdout, false, nil)

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}
}

func newLogger(out io.Writer, noColor bool, file io.Writer) zerolog.Logger {
	var w io.Writer = zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
	}
	if file != nil {
		w = zerolog.MultiLevelWriter(w, file)
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Setup replaces the package logger. It is meant to be called once at startup.
func Setup(opts Options) error {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	var file io.Writer
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			LocalTime:  true,
		}
	}

	logger = newLogger(out, opts.NoColor, file).Level(level)
	return nil
}

// SetDebug toggles the debug level on the package logger.
func SetDebug(on bool) {
	if on {
		logger = logger.Level(zerolog.DebugLevel)
		return
	}

	logger = logger.Level(zerolog.InfoLevel)
}

// Logger returns the package logger for structured fields.
func Logger() *zerolog.Logger {
	return &logger
}

func write(level zerolog.Level, skip int, args ...any) {
	// 2 frames: write and the exported wrapper
	logger.WithLevel(level).Caller(skip + 2).Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Info logs informational messages
func Info(args ...any) {
	write(zerolog.InfoLevel, 0, args...)
}

// InfoSkip logs info reporting the caller skip frames further up
func InfoSkip(skip int, args ...any) {
	write(zerolog.InfoLevel, skip, args...)
}

// Warn logs warning messages
func Warn(args ...any) {
	write(zerolog.WarnLevel, 0, args...)
}

// WarnSkip logs warnings reporting the caller skip frames further up
func WarnSkip(skip int, args ...any) {
	write(zerolog.WarnLevel, skip, args...)
}

// Error logs error messages
func Error(args ...any) {
	write(zerolog.ErrorLevel, 0, args...)
}

// ErrorSkip logs errors reporting the caller skip frames further up
func ErrorSkip(skip int, args ...any) {
	write(zerolog.ErrorLevel, skip, args...)
}

// Debug logs debug messages
func Debug(args ...any) {
	write(zerolog.DebugLevel, 0, args...)
}

// DebugSkip logs debug messages reporting the caller skip frames further up
func DebugSkip(skip int, args ...any) {
	write(zerolog.DebugLevel, skip, args...)
}
