// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package customize

import (
	"fmt"
	"image/color"
	"path"
	"strings"

	"cogentcore.org/tailor/base/errors"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrBadColor is returned for a paint value that is neither a
	// texture path nor a valid hex color.
	ErrBadColor = errors.New("invalid hex color")

	// ErrBadTexture is returned for a malformed texture path.
	ErrBadTexture = errors.New("invalid texture path")
)

// TextureExtensions are the image file extensions that mark a paint
// value as a texture.
var TextureExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// IsTexture returns whether the given paint value is a texture image
// path rather than a color: it starts with '/' or ends with one of
// the [TextureExtensions], in any case.
func IsTexture(v string) bool {
	if strings.HasPrefix(v, "/") {
		return true
	}
	ext := strings.ToLower(path.Ext(v))
	for _, te := range TextureExtensions {
		if ext == te {
			return true
		}
	}
	return false
}

// CheckTexture returns an error if the texture path has no file name
// or escapes its root with "..".
func CheckTexture(v string) error {
	base := path.Base(v)
	if base == "/" || base == "." || strings.HasSuffix(v, "/") {
		return fmt.Errorf("%w: %q has no file name", ErrBadTexture, v)
	}
	for _, seg := range strings.Split(v, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: %q", ErrBadTexture, v)
		}
	}
	return nil
}

// ParseColor parses a hex color, with or without the leading '#',
// in the 3 or 6 digit form.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// Darken returns the hex color with each channel multiplied by factor
// and clamped to the valid range.
func Darken(hex string, factor float32) (color.RGBA, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return c, err
	}
	cf, _ := colorful.MakeColor(c)
	f := float64(factor)
	d := colorful.Color{R: cf.R * f, G: cf.G * f, B: cf.B * f}.Clamped()
	r, g, b := d.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// Hex returns the color in the "#rrggbb" form.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
