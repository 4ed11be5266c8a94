// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"log/slog"
	"strings"
)

const (
	levelNotice  = slog.Level(2)
	levelDisable = slog.Level(99)
)

var (
	customLevels = map[slog.Leveler]string{
		levelNotice: "NOTICE",
	}
	customLevelsTerm = map[slog.Leveler]string{
		levelNotice: "[34m" + "NTC" + "[0m",
	}
)

// Level is the process-wide minimum log level.
var Level = &level{lvl: &slog.LevelVar{}}

type level struct {
	lvl *slog.LevelVar
}

func (l *level) Enabled(lv slog.Level) bool {
	return lv >= l.lvl.Level()
}

func (l *level) Set(lv slog.Level) {
	l.lvl.Set(lv)
}

// SetByName sets the level from a netdata log level name
// (https://github.com/netdata/netdata/tree/master/src/libnetdata/log#log-levels).
// Unknown names leave the level unchanged.
func (l *level) SetByName(name string) {
	if lv, ok := parseLevel(name); ok {
		l.lvl.Set(lv)
	}
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "notice":
		return levelNotice, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "err", "error":
		return slog.LevelError, true
	case "emergency", "alert", "critical":
		return levelDisable, true
	default:
		return 0, false
	}
}
