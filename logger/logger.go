// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

var isTerminal = isatty.IsTerminal(os.Stderr.Fd())

// Logger is a thin wrapper around slog.Logger.
// A nil *Logger is safe to use and logs through the default logger.
type Logger struct {
	muted atomic.Bool
	sl    *slog.Logger
}

// New creates a new Logger.
func New() *Logger {
	if isTerminal {
		// skip 2 slog pkg calls, 2 this pkg calls
		return &Logger{sl: slog.New(withCallDepth(4, newTerminalHandler()))}
	}
	return &Logger{sl: slog.New(newTextHandler())}
}

func (l *Logger) Error(a ...any)   { l.log(slog.LevelError, fmt.Sprint(a...)) }
func (l *Logger) Warning(a ...any) { l.log(slog.LevelWarn, fmt.Sprint(a...)) }
func (l *Logger) Notice(a ...any)  { l.log(levelNotice, fmt.Sprint(a...)) }
func (l *Logger) Info(a ...any)    { l.log(slog.LevelInfo, fmt.Sprint(a...)) }
func (l *Logger) Debug(a ...any)   { l.log(slog.LevelDebug, fmt.Sprint(a...)) }

func (l *Logger) Errorf(format string, a ...any)   { l.log(slog.LevelError, fmt.Sprintf(format, a...)) }
func (l *Logger) Warningf(format string, a ...any) { l.log(slog.LevelWarn, fmt.Sprintf(format, a...)) }
func (l *Logger) Noticef(format string, a ...any)  { l.log(levelNotice, fmt.Sprintf(format, a...)) }
func (l *Logger) Infof(format string, a ...any)    { l.log(slog.LevelInfo, fmt.Sprintf(format, a...)) }
func (l *Logger) Debugf(format string, a ...any)   { l.log(slog.LevelDebug, fmt.Sprintf(format, a...)) }

// Mute mutes the logger. Muting is a no-op when stderr is a terminal.
func (l *Logger) Mute() { l.mute(true) }

// Unmute unmutes the logger.
func (l *Logger) Unmute() { l.mute(false) }

// With returns a Logger that includes the given attributes in each output operation.
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.sl == nil {
		return New().With(args...)
	}

	ln := &Logger{sl: l.sl.With(args...)}
	ln.muted.Store(l.muted.Load())

	return ln
}

func (l *Logger) log(level slog.Level, msg string) {
	switch {
	case l == nil || l.sl == nil:
		defaultLogger.log(level, msg)
	case !l.muted.Load():
		l.sl.Log(context.Background(), level, msg)
	}
}

func (l *Logger) mute(v bool) {
	if l == nil || l.sl == nil || isTerminal && Level.Enabled(slog.LevelDebug) {
		return
	}
	l.muted.Store(v)
}

func init() {
	if v := os.Getenv("NETDATA_LOG_LEVEL"); v != "" {
		Level.SetByName(v)
	}
}
