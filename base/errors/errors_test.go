// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTest = New("test error")

func returnsErr() (int, error) { return 0, errTest }

func returnsValue() (int, error) { return 3, nil }

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	assert.ErrorIs(t, Log(errTest), errTest)
	assert.ErrorIs(t, Warn(errTest, "warned", "key", "value"), errTest)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must1(returnsValue()))
	assert.Panics(t, func() { Must1(returnsErr()) })
}

func TestWrapped(t *testing.T) {
	err := fmt.Errorf("loading: %w", errTest)
	assert.True(t, Is(err, errTest))
	joined := Join(err, New("other"))
	assert.True(t, Is(joined, errTest))
}
