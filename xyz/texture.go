// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"cogentcore.org/tailor/base/errors"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/webp"
)

// MaxTextureSize is the largest width or height of a loaded texture
// image; larger images are scaled down preserving the aspect ratio.
var MaxTextureSize = 2048

// ErrNotImage is returned when a texture file is not a supported image.
var ErrNotImage = errors.New("xyz: texture file is not a supported image")

// TextureName is the name of a texture, which is its asset path.
type TextureName string

// Texture is the interface for all textures.
type Texture interface {
	// AsTextureBase returns the [TextureBase] for this texture,
	// which contains the core data and functionality.
	AsTextureBase() *TextureBase

	// Image returns the image for the texture in the [image.RGBA] format used internally.
	Image() *image.RGBA
}

// TextureBase is the base texture implementation.
// It uses an [image.RGBA] as the underlying image storage.
type TextureBase struct {
	// Name is the name of the texture;
	// textures are connected to [Material]s by name.
	Name string

	// Transparent is whether the texture has transparency.
	Transparent bool

	// RGBA is the cached internal representation of the image.
	RGBA *image.RGBA
}

func (tx *TextureBase) AsTextureBase() *TextureBase {
	return tx
}

func (tx *TextureBase) Image() *image.RGBA {
	return tx.RGBA
}

// TextureFile is a texture loaded from a file
type TextureFile struct {
	TextureBase

	// filesystem the file is read from
	FS fs.FS

	// filename for the texture, relative to FS
	File string
}

// NewTextureFile returns a new texture with the given name, read from
// the given file in fsys when first needed.
func NewTextureFile(fsys fs.FS, name, filename string) *TextureFile {
	tx := &TextureFile{}
	tx.Name = name
	tx.FS = fsys
	tx.File = filename
	return tx
}

// Load reads and decodes the image file if it has not been loaded yet.
// Images larger than [MaxTextureSize] are scaled down.
func (tx *TextureFile) Load() error {
	if tx.RGBA != nil {
		return nil
	}
	if tx.File == "" {
		return fmt.Errorf("xyz.TextureFile: %v File must be set to a filename to load texture from", tx.Name)
	}
	f, err := tx.FS.Open(tx.File)
	if err != nil {
		return err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	if !filetype.IsImage(b) {
		return fmt.Errorf("%w: %s", ErrNotImage, tx.File)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("xyz.TextureFile: decoding %s: %w", tx.File, err)
	}
	tx.RGBA = fitImage(img, MaxTextureSize)
	tx.Transparent = !tx.RGBA.Opaque()
	return nil
}

func (tx *TextureFile) Image() *image.RGBA {
	if err := tx.Load(); err != nil {
		return nil
	}
	return tx.RGBA
}

// fitImage returns img as an [image.RGBA], scaled down so that
// neither dimension exceeds max.
func fitImage(img image.Image, max int) *image.RGBA {
	sz := img.Bounds().Size()
	if max <= 0 || (sz.X <= max && sz.Y <= max) {
		return clone.AsRGBA(img)
	}
	w, h := max, max
	if sz.X > sz.Y {
		h = sz.Y * max / sz.X
	} else {
		w = sz.X * max / sz.Y
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// TextureLibrary shares loaded textures by name, so that every mesh
// painted with the same fabric image uses one decoded image.
// It is safe for concurrent use.
type TextureLibrary struct {
	// FS is the filesystem textures are read from. Texture names
	// are asset paths; a leading slash is removed before opening.
	FS fs.FS

	mu       sync.Mutex
	textures map[string]*TextureFile
}

// NewTextureLibrary returns a new library reading from fsys.
func NewTextureLibrary(fsys fs.FS) *TextureLibrary {
	return &TextureLibrary{FS: fsys}
}

// Texture returns the loaded texture for the given name, loading it if needed.
// Failed loads are not remembered.
func (tl *TextureLibrary) Texture(name string) (Texture, error) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tx, ok := tl.textures[name]; ok {
		return tx, nil
	}
	tx := NewTextureFile(tl.FS, name, path.Clean(strings.TrimPrefix(name, "/")))
	if err := tx.Load(); err != nil {
		return nil, err
	}
	if tl.textures == nil {
		tl.textures = make(map[string]*TextureFile)
	}
	tl.textures[name] = tx
	return tx, nil
}

// Len returns the number of loaded textures.
func (tl *TextureLibrary) Len() int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return len(tl.textures)
}

// Release drops all loaded textures.
func (tl *TextureLibrary) Release() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, tx := range tl.textures {
		tx.RGBA = nil
	}
	tl.textures = nil
}
