// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"fmt"
	"strings"
)

// States are the states of a [Viewer].
type States int32

const (
	// Idle is the state of a viewer showing its last configuration.
	Idle States = iota

	// Resolving is the state of a viewer loading the priority parts
	// of a new configuration.
	Resolving

	// Failed is the state of a viewer that could not load the priority
	// parts of its configuration; its root is hidden.
	Failed
)

var _StatesNames = []string{"idle", "resolving", "failed"}

func (i States) String() string {
	if i < 0 || int(i) >= len(_StatesNames) {
		return fmt.Sprintf("States(%d)", int32(i))
	}
	return _StatesNames[i]
}

// SetString sets the States value from its string representation,
// and returns an error if the string is invalid.
func (i *States) SetString(s string) error {
	for v, nm := range _StatesNames {
		if strings.EqualFold(nm, s) {
			*i = States(v)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type States", s)
}

func (i States) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *States) UnmarshalText(text []byte) error { return i.SetString(string(text)) }
