// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// userLeveler reports [UserLevel] dynamically, so that changing it after
// the handler is installed takes effect.
type userLeveler struct{}

func (userLeveler) Level() slog.Level { return UserLevel }

// NewHandler returns a text [slog.Handler] writing to w that omits the
// time stamp and colors the level names according to the terminal
// capabilities of w. Messages below [UserLevel] are dropped.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: userLeveler{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LevelString(out, lvl))
				}
			}
			return a
		},
	})
}

// SetDefaultLogger sets the default [slog] logger to one
// made with [NewHandler] writing to standard error.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// LevelString returns the name of the level, colored for the given output.
func LevelString(out *termenv.Output, lvl slog.Level) string {
	s := lvl.String()
	var c termenv.Color
	switch {
	case lvl >= slog.LevelError:
		c = out.Color("#e5484d")
	case lvl >= slog.LevelWarn:
		c = out.Color("#e8a33d")
	case lvl >= slog.LevelInfo:
		c = out.Color("#3e8ed0")
	default:
		c = out.Color("#8b8d98")
	}
	return out.String(s).Foreground(c).String()
}

// PrintlnInfo prints the given values to standard output if
// [UserLevel] is at or below [slog.LevelInfo].
func PrintlnInfo(a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Println(a...)
	}
}

// Fprintf writes a formatted message to w with the given level name
// prefixed in color, regardless of [UserLevel]. It is used for command
// output that must always be shown.
func Fprintf(w io.Writer, lvl slog.Level, format string, a ...any) {
	out := termenv.NewOutput(w)
	fmt.Fprintf(w, LevelString(out, lvl)+" "+format, a...)
}
