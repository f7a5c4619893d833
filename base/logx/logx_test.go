// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromString("debug"))
	assert.Equal(t, slog.LevelError, LevelFromString("ERROR"))
	assert.Equal(t, defaultUserLevel, LevelFromString("loud"))
}

func TestHandler(t *testing.T) {
	prev := UserLevel
	defer func() { UserLevel = prev }()

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf))

	UserLevel = slog.LevelWarn
	lg.Info("hidden")
	lg.Warn("shown", "slot", "sleeve")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "slot=sleeve")
	assert.Contains(t, out, "WARN")
	assert.NotContains(t, out, "time=")

	buf.Reset()
	UserLevel = slog.LevelDebug
	lg.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}
