// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"fmt"
	"strings"
)

// Category is the paint category of a mesh, which determines
// which customization color or texture it receives.
type Category int32

const (
	// Unknown meshes are left as authored.
	Unknown Category = iota

	// MainFabric meshes receive the fabric color or texture.
	MainFabric

	// UpperLapel meshes receive the lapel color, or a darkened fabric color.
	UpperLapel

	// LowerLapel meshes are painted like [UpperLapel].
	LowerLapel

	// Buttons receive the button color, or the fabric color.
	Buttons

	// Thread meshes always receive the fabric color.
	Thread

	// Lining meshes receive the lining color when the garment is lined.
	Lining
)

var _CategoryValues = []Category{Unknown, MainFabric, UpperLapel, LowerLapel, Buttons, Thread, Lining}

var _CategoryNames = map[Category]string{Unknown: "Unknown", MainFabric: "MainFabric", UpperLapel: "UpperLapel", LowerLapel: "LowerLapel", Buttons: "Buttons", Thread: "Thread", Lining: "Lining"}

var _CategoryNameToValueMap = map[string]Category{"unknown": Unknown, "mainfabric": MainFabric, "upperlapel": UpperLapel, "lowerlapel": LowerLapel, "buttons": Buttons, "thread": Thread, "lining": Lining}

// String returns the string representation of this Category value.
func (i Category) String() string {
	if s, ok := _CategoryNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int32(i))
}

// SetString sets the Category value from its string representation,
// and returns an error if the string is invalid.
func (i *Category) SetString(s string) error {
	if val, ok := _CategoryNameToValueMap[strings.ToLower(s)]; ok {
		*i = val
		return nil
	}
	return fmt.Errorf("%q is not a valid value for type Category", s)
}

// Values returns all possible values for the type Category.
func (i Category) Values() []Category { return _CategoryValues }

// IsLapel returns whether the category is one of the lapel categories.
func (i Category) IsLapel() bool { return i == UpperLapel || i == LowerLapel }

// MarshalText implements the [encoding.TextMarshaler] interface.
func (i Category) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (i *Category) UnmarshalText(text []byte) error { return i.SetString(string(text)) }
