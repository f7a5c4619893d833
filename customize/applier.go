// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package customize applies a [Customization] to the materials of an
// assembled garment: every solid is classified by its mesh name and
// painted with the color or texture for its category.
package customize

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"cogentcore.org/tailor/classify"
	"cogentcore.org/tailor/xyz"
	"github.com/chewxy/math32"
)

// FullLiningSuffix marks the lining mesh that is only present in the
// full lining construction.
const FullLiningSuffix = ".001"

// Material settings for textured and solid color surfaces.
var (
	// TextureBaseColor multiplies the texture image.
	TextureBaseColor = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}

	TextureRoughness    float32 = 0.75
	TextureMetalness    float32 = 0
	TextureEnvIntensity float32 = 0.2

	ColorRoughness    float32 = 0.55
	ColorMetalness    float32 = 0.05
	ColorEnvIntensity float32 = 0.6
)

// TextureSource provides loaded textures by name.
// [xyz.TextureLibrary] is the standard implementation.
type TextureSource interface {
	Texture(name string) (xyz.Texture, error)
}

// Applier paints garments. The zero value is not usable; use [NewApplier].
type Applier struct {
	// Classifier classifies the mesh names.
	Classifier *classify.Classifier

	// Textures loads texture images; if nil, materials only
	// record the texture name for the renderer to load.
	Textures TextureSource

	// LapelDarken is the factor applied to the fabric color for lapels
	// without a lapel color of their own.
	LapelDarken float32

	// TileSize is the size of one texture repeat in scene units (meters).
	TileSize float32

	// MaxRepeat is the largest texture repeat count on either axis.
	MaxRepeat float32

	// DefaultRepeat is the repeat count for meshes without bounds.
	DefaultRepeat float32
}

// NewApplier returns an applier with the default settings.
func NewApplier() *Applier {
	return &Applier{
		Classifier:    classify.Default(),
		LapelDarken:   0.85,
		TileSize:      0.125,
		MaxRepeat:     16,
		DefaultRepeat: 8,
	}
}

// Painted records the paint applied to one mesh.
type Painted struct {
	// Mesh is the path of the solid in the scene graph.
	Mesh string `json:"mesh"`

	// Category is the classification of the mesh.
	Category classify.Category `json:"category"`

	// Color is the hex base color that was set.
	Color string `json:"color"`

	// Texture is the texture path, if any.
	Texture string `json:"texture,omitempty"`

	// Repeat is the texture repeat, if textured.
	Repeat *xyz.Vector2 `json:"repeat,omitempty"`

	// Roughness and Metalness are the material settings.
	Roughness float32 `json:"roughness"`
	Metalness float32 `json:"metalness"`
}

// Failure records a mesh that could not be painted.
type Failure struct {
	Mesh string `json:"mesh"`
	Err  string `json:"error"`
}

// Report is the result of [Applier.Apply]. It is the paint plan that
// is sent to renderers that do not share the scene graph.
type Report struct {
	Painted  []Painted `json:"painted"`
	Failures []Failure `json:"failures,omitempty"`

	// Skipped counts the meshes left as they were: unknown meshes,
	// lining of unlined garments, and categories with no paint value.
	Skipped int `json:"skipped"`
}

// paint is a resolved paint value.
type paint struct {
	texture string
	color   color.RGBA
}

// Apply paints every solid under root according to c and returns
// the report. It never stops on a failure: meshes that cannot be
// painted are logged and skipped. Applying the same customization
// again leaves the materials unchanged.
func (ap *Applier) Apply(root xyz.Node, c *Customization) *Report {
	if c == nil {
		c = &Customization{}
	}
	rep := &Report{}
	root.AsNode().WalkDown(func(k xyz.Node) bool {
		sld, ok := k.(*xyz.Solid)
		if !ok {
			return xyz.Continue
		}
		cat := ap.Classifier.Classify(sld.Name)
		if cat == classify.Unknown && sld.MeshName != "" {
			cat = ap.Classifier.Classify(sld.MeshName)
		}
		value, ok := ap.valueFor(cat, sld.Name, c)
		if !ok {
			rep.Skipped++
			return xyz.Continue
		}
		p, err := ap.paintFor(cat, value, c)
		if err == nil {
			err = ap.paintSolid(sld, p)
		}
		if err != nil {
			slog.Warn("customize: mesh not painted", "mesh", sld.Path(), "category", cat, "err", err)
			rep.Failures = append(rep.Failures, Failure{Mesh: sld.Path(), Err: err.Error()})
			return xyz.Continue
		}
		pd := Painted{Mesh: sld.Path(), Category: cat, Color: Hex(sld.Material.Color),
			Texture: string(sld.Material.TextureName), Roughness: sld.Material.Roughness, Metalness: sld.Material.Metalness}
		if pd.Texture != "" {
			rp := sld.Material.Tiling.Repeat
			pd.Repeat = &rp
		}
		rep.Painted = append(rep.Painted, pd)
		return xyz.Continue
	})
	return rep
}

// valueFor returns the paint value for a mesh of the given category,
// and false if the mesh is not painted.
func (ap *Applier) valueFor(cat classify.Category, name string, c *Customization) (string, bool) {
	fabric := c.FabricColor
	switch cat {
	case classify.MainFabric, classify.Thread:
		return fabric, fabric != ""
	case classify.UpperLapel, classify.LowerLapel:
		if c.LapelColor != "" {
			return c.LapelColor, true
		}
		return fabric, fabric != ""
	case classify.Buttons:
		if c.ButtonColor != "" && !strings.EqualFold(c.ButtonColor, "standard") {
			return c.ButtonColor, true
		}
		return fabric, fabric != ""
	case classify.Lining:
		if !c.LiningMeshType.IsLined() || c.LiningColor == "" {
			return "", false
		}
		if strings.HasSuffix(strings.ToLower(name), FullLiningSuffix) && c.LiningMeshType != FullLined {
			return "", false
		}
		return c.LiningColor, true
	}
	return "", false
}

// paintFor resolves a paint value. Lapels painted from a fabric
// color get the darkened fabric color.
func (ap *Applier) paintFor(cat classify.Category, value string, c *Customization) (paint, error) {
	if IsTexture(value) {
		if err := CheckTexture(value); err != nil {
			return paint{}, err
		}
		return paint{texture: value}, nil
	}
	if cat.IsLapel() && c.LapelColor == "" {
		clr, err := Darken(value, ap.LapelDarken)
		return paint{color: clr}, err
	}
	clr, err := ParseColor(value)
	return paint{color: clr}, err
}

// paintSolid sets the material of the solid. A solid color clears any
// previous texture first, so no stale texture remains.
func (ap *Applier) paintSolid(sld *xyz.Solid, p paint) error {
	mt := &sld.Material
	if p.texture == "" {
		mt.NoTexture()
		mt.Color = p.color
		mt.Roughness = ColorRoughness
		mt.Metalness = ColorMetalness
		mt.EnvIntensity = ColorEnvIntensity
		return nil
	}
	if ap.Textures != nil {
		tex, err := ap.Textures.Texture(p.texture)
		if err != nil {
			return fmt.Errorf("loading texture: %w", err)
		}
		mt.SetTexture(tex)
		mt.TextureName = xyz.TextureName(p.texture)
	} else {
		mt.SetTextureName(p.texture)
	}
	mt.Color = TextureBaseColor
	mt.Roughness = TextureRoughness
	mt.Metalness = TextureMetalness
	mt.EnvIntensity = TextureEnvIntensity
	mt.Tiling.Repeat = ap.Repeat(sld)
	mt.Tiling.Off = xyz.Vector2{}
	return nil
}

// Repeat returns the texture repeat for the solid, so that one repeat
// covers [Applier.TileSize] of its two largest world extents, clamped
// to [1, MaxRepeat]. Solids without bounds get [Applier.DefaultRepeat].
func (ap *Applier) Repeat(sld *xyz.Solid) xyz.Vector2 {
	sz := sld.MeshBBox.Size().Mul(sld.WorldScale().Abs())
	if sz == (xyz.Vector3{}) || ap.TileSize <= 0 {
		return xyz.Vec2(ap.DefaultRepeat, ap.DefaultRepeat)
	}
	ext := []float32{sz.X, sz.Y, sz.Z}
	u, v := float32(0), float32(0)
	for _, e := range ext {
		switch {
		case e > u:
			u, v = e, u
		case e > v:
			v = e
		}
	}
	clamp := func(x float32) float32 {
		return math32.Max(1, math32.Min(ap.MaxRepeat, x/ap.TileSize))
	}
	return xyz.Vec2(clamp(u), clamp(v))
}
