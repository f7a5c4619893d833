// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// Tiling are the texture tiling parameters
type Tiling struct {

	// how often to repeat the texture in each direction
	Repeat Vector2

	// offset for when to start the texure in each direction
	Off Vector2
}

// Defaults sets default tiling params if not yet initialized
func (tl *Tiling) Defaults() {
	if tl.Repeat == (Vector2{}) {
		tl.Repeat = Vec2(1, 1)
	}
}

// Material describes the material properties of a surface
// in the metallic-roughness model used by glTF assets.
// Color is the base color, multiplied by the texture when one is set,
// and its alpha component is used for opacity.
// The Emissive color is only for glowing objects.
type Material struct {

	// Color is the base color of the surface.
	Color color.RGBA

	// Emissive is the color that surface emits independent of any lighting.
	Emissive color.RGBA

	// Roughness is the microfacet roughness, from 0 (mirror) to 1 (fully diffuse).
	Roughness float32

	// Metalness is how metallic the surface is, from 0 to 1.
	Metalness float32

	// EnvIntensity scales the contribution of environment reflections.
	EnvIntensity float32

	// TextureName is the name (asset path) of the texture that provides
	// color for the surface.
	TextureName TextureName

	// Tiling is the texture tiling parameters: repeat and offset.
	Tiling Tiling

	// Texture is the loaded [Texture] for [Material.TextureName], if any.
	// Clones share it, see [Solid.CopyFieldsFrom].
	Texture Texture `copier:"-" json:"-"`
}

// Defaults sets default surface parameters
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{128, 128, 128, 255}
	mt.Emissive = color.RGBA{}
	mt.Roughness = 1
	mt.Metalness = 0
	mt.EnvIntensity = 1
	mt.Tiling.Defaults()
}

// NoTexture resets any texture setting that might have been set
func (mt *Material) NoTexture() {
	mt.TextureName = ""
	mt.Texture = nil
	mt.Tiling = Tiling{}
	mt.Tiling.Defaults()
}

// SetTexture sets material to use given texture
func (mt *Material) SetTexture(tex Texture) *Material {
	mt.Texture = tex
	if mt.Texture != nil {
		mt.TextureName = TextureName(mt.Texture.AsTextureBase().Name)
	} else {
		mt.TextureName = ""
	}
	return mt
}

// SetTextureName sets the material to use the texture with the given
// name, without loading it. Any loaded texture with a different name
// is dropped.
func (mt *Material) SetTextureName(name string) *Material {
	if mt.Texture != nil && mt.Texture.AsTextureBase().Name != name {
		mt.Texture = nil
	}
	mt.TextureName = TextureName(name)
	return mt
}

// HasTexture returns whether a texture is set.
func (mt *Material) HasTexture() bool {
	return mt.TextureName != ""
}

// IsTransparent returns true if texture says it is, or if color has alpha < 255
func (mt *Material) IsTransparent() bool {
	if mt.Texture != nil {
		return mt.Texture.AsTextureBase().Transparent
	}
	return mt.Color.A < 255
}

func (mt Material) String() string {
	b, err := json.Marshal(mt)
	if err != nil {
		return fmt.Sprintf("%#v", mt)
	}
	return string(b)
}
