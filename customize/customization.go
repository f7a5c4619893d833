// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package customize

import (
	"fmt"
	"strings"
)

// LiningType is the lining construction of a jacket.
type LiningType int32

const (
	// LiningUnset means no lining choice has been made; lining meshes
	// keep their authored material.
	LiningUnset LiningType = iota

	// Unlined jackets have no lining parts.
	Unlined

	// HalfLined jackets have the half lining part.
	HalfLined

	// FullLined jackets have the full lining part.
	FullLined
)

var _LiningTypeNames = []string{"", "unlined", "halfLined", "fullLined"}

// liningAliases are the names used for lining types by the configurator
// forms, which name the lining after its look rather than its construction.
var liningAliases = map[string]LiningType{
	"custom-coloured": HalfLined,
	"quilted":         FullLined,
	"half":            HalfLined,
	"full":            FullLined,
}

func (i LiningType) String() string {
	if i < 0 || int(i) >= len(_LiningTypeNames) {
		return fmt.Sprintf("LiningType(%d)", int32(i))
	}
	return _LiningTypeNames[i]
}

// SetString sets the LiningType value from its string representation
// or one of its aliases, and returns an error if the string is invalid.
func (i *LiningType) SetString(s string) error {
	s = strings.TrimSpace(s)
	for v, nm := range _LiningTypeNames {
		if strings.EqualFold(nm, s) {
			*i = LiningType(v)
			return nil
		}
	}
	if v, ok := liningAliases[strings.ToLower(s)]; ok {
		*i = v
		return nil
	}
	return fmt.Errorf("%q is not a valid value for type LiningType", s)
}

// IsLined returns whether the lining type has a lining.
func (i LiningType) IsLined() bool {
	return i == HalfLined || i == FullLined
}

func (i LiningType) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *LiningType) UnmarshalText(text []byte) error { return i.SetString(string(text)) }

// Monogram is the embroidered monogram, passed through unchanged.
type Monogram struct {
	Text      string `json:"text,omitempty"`
	Font      string `json:"font,omitempty"`
	Color     string `json:"color,omitempty"`
	Placement string `json:"placement,omitempty"`
}

// Customization is the set of user choices for a garment. All fields are
// optional. Paint fields hold a hex color ("#1a237e") or a texture image
// path; see [IsTexture]. Selection fields hold registry values and are
// exposed through [Customization.Selection].
type Customization struct {
	// FabricColor paints the main fabric, the thread, and by default
	// the lapels and buttons.
	FabricColor string `json:"fabricColor,omitempty"`

	// FabricType is the fabric name shown to the user.
	FabricType string `json:"fabricType,omitempty"`

	// ButtonColor paints the buttons; empty or "standard" uses FabricColor.
	ButtonColor string `json:"buttonColor,omitempty"`

	// ThreadColor is accepted but ignored: thread always matches the fabric.
	ThreadColor string `json:"threadColor,omitempty"`

	// LapelColor paints the lapels; empty uses the fabric texture,
	// or the fabric color darkened.
	LapelColor string `json:"lapelColor,omitempty"`

	// LiningColor paints the lining of lined jackets.
	LiningColor string `json:"liningColor,omitempty"`

	// LiningMeshType is the lining construction.
	LiningMeshType LiningType `json:"liningMeshType,omitempty"`

	FrontStyle         string `json:"frontStyle,omitempty"`
	FrontPocket        string `json:"frontPocket,omitempty"`
	ChestPocket        string `json:"chestPocket,omitempty"`
	SleeveButtons      string `json:"sleeveButtons,omitempty"`
	VentStyle          string `json:"ventStyle,omitempty"`
	BackPocket         string `json:"backPocket,omitempty"`
	BottomCuffs        string `json:"bottomCuffs,omitempty"`
	WaistbandExtension string `json:"waistbandExtension,omitempty"`

	// Monogram is passed through unchanged.
	Monogram *Monogram `json:"monogram,omitempty"`

	// Measurements are passed through unchanged.
	Measurements map[string]float64 `json:"measurements,omitempty"`
}

// Selection returns the value of the given registry selection key.
func (c *Customization) Selection(key string) string {
	if c == nil {
		return ""
	}
	switch key {
	case "frontStyle":
		return c.FrontStyle
	case "frontPocket":
		return c.FrontPocket
	case "chestPocket":
		return c.ChestPocket
	case "sleeveButtons":
		return c.SleeveButtons
	case "ventStyle":
		return c.VentStyle
	case "liningMeshType":
		return c.LiningMeshType.String()
	case "backPocket":
		return c.BackPocket
	case "bottomCuffs":
		return c.BottomCuffs
	case "waistbandExtension":
		return c.WaistbandExtension
	}
	return ""
}

// SameSelections returns whether both customizations select the
// same parts, in which case only the paint differs.
func (c *Customization) SameSelections(o *Customization) bool {
	for _, key := range SelectionKeys {
		if c.Selection(key) != o.Selection(key) {
			return false
		}
	}
	return true
}

// SelectionKeys are the selection keys exposed by [Customization.Selection].
var SelectionKeys = []string{
	"frontStyle", "frontPocket", "chestPocket", "sleeveButtons", "ventStyle",
	"liningMeshType", "backPocket", "bottomCuffs", "waistbandExtension",
}
