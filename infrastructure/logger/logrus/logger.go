// ABOUTME: Structured logger backed by logrus with optional rotated file output
// ABOUTME: Adapts the core Logger interface to logrus fields and levels

package logrus

import (
	"io"
	"os"

	lr "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is one of debug, info, warn, error (default info)
	Level string

	// Format is json or text (default json)
	Format string

	// File enables rotated file output in addition to stdout
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *lr.Entry
}

// New creates a logger from options. An unknown level falls back to info.
func New(opts Options) *Logger {
	base := lr.New()

	level, err := lr.ParseLevel(opts.Level)
	if err != nil {
		level = lr.InfoLevel
	}
	base.SetLevel(level)

	if opts.Format == "text" {
		base.SetFormatter(&lr.TextFormatter{FullTimestamp: true})
	} else {
		base.SetFormatter(&lr.JSONFormatter{})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}
	base.SetOutput(out)

	return &Logger{entry: lr.NewEntry(base)}
}

// NewWithWriter creates a JSON logger writing to w, for tests and tools
func NewWithWriter(w io.Writer, level string) *Logger {
	l := New(Options{Level: level})
	l.entry.Logger.SetOutput(w)
	return l
}

// With returns a logger that adds fields to every entry
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(lr.Fields(fields))}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(lr.Fields(fields)).Error(msg)
}
