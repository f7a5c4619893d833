// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *Group {
	root := NewGroup(nil, "root")
	part := NewGroup(root, "part")
	body := NewSolid(part, "front_body")
	body.MeshBBox = Box3{Min: Vector3{-1, 0, 0}, Max: Vector3{1, 2, 0.5}}
	btn := NewSolid(part, "s4")
	btn.Material.Color = color.RGBA{10, 20, 30, 255}
	return root
}

func TestTree(t *testing.T) {
	root := testTree()
	part := root.ChildByName("part").(*Group)
	assert.Equal(t, 2, part.NumChildren())
	assert.Equal(t, "root/part/s4", part.Child(1).AsNode().Path())

	var names []string
	root.WalkDown(func(k Node) bool {
		names = append(names, k.AsNode().Name)
		return Continue
	})
	assert.Equal(t, []string{"root", "part", "front_body", "s4"}, names)

	names = nil
	root.WalkDown(func(k Node) bool {
		names = append(names, k.AsNode().Name)
		return k.AsNode().Name != "part"
	})
	assert.Equal(t, []string{"root", "part"}, names)

	assert.True(t, part.Child(0).AsNode().IsVisible())
	root.Invisible = true
	assert.False(t, part.Child(0).AsNode().IsVisible())

	assert.Len(t, root.Solids(), 2)
	assert.Equal(t, Vector3{2, 2, 0.5}, root.BBox().Size())

	other := NewGroup(nil, "other")
	other.AddChild(part)
	assert.Equal(t, 0, root.NumChildren())
	assert.Same(t, other, part.Parent)
}

func TestClone(t *testing.T) {
	root := testTree()
	tex := &TextureBase{Name: "/textures/wool.jpg"}
	root.Solids()[0].Material.SetTexture(tex)
	root.Solids()[0].Pose.Scale = Vector3{2, 2, 2}

	cl := CloneGroup(root)
	require.Len(t, cl.Solids(), 2)
	cs := cl.Solids()
	assert.Equal(t, "front_body", cs[0].Name)
	assert.Equal(t, "root/part/front_body", cs[0].Path())
	assert.Equal(t, root.Solids()[0].MeshBBox, cs[0].MeshBBox)
	assert.Equal(t, Vector3{2, 2, 2}, cs[0].Pose.Scale)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, cs[1].Material.Color)
	assert.Same(t, tex, cs[0].Material.Texture.(*TextureBase))
	assert.NotSame(t, root.Solids()[0], cs[0])

	cs[1].Material.Color = color.RGBA{255, 0, 0, 255}
	cs[0].Material.NoTexture()
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, root.Solids()[1].Material.Color)
	assert.Equal(t, TextureName("/textures/wool.jpg"), root.Solids()[0].Material.TextureName)
}

func TestDispose(t *testing.T) {
	root := testTree()
	part := root.ChildByName("part")
	sld := root.Solids()[0]
	sld.Material.SetTextureName("/textures/wool.jpg")
	Dispose(part)
	assert.Equal(t, 0, root.NumChildren())
	assert.Equal(t, 0, part.AsNode().NumChildren())
	assert.Nil(t, sld.Parent)
	assert.False(t, sld.Material.HasTexture())
}

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTextureFile(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/wool.png":  {Data: pngBytes(t, 64, 32)},
		"textures/large.png": {Data: pngBytes(t, 100, 50)},
		"textures/bad.png":   {Data: []byte("not an image")},
	}
	tx := NewTextureFile(fsys, "wool", "textures/wool.png")
	require.NoError(t, tx.Load())
	assert.Equal(t, image.Pt(64, 32), tx.Image().Bounds().Size())

	prev := MaxTextureSize
	MaxTextureSize = 20
	defer func() { MaxTextureSize = prev }()
	lg := NewTextureFile(fsys, "large", "textures/large.png")
	require.NoError(t, lg.Load())
	assert.Equal(t, image.Pt(20, 10), lg.Image().Bounds().Size())

	bad := NewTextureFile(fsys, "bad", "textures/bad.png")
	assert.ErrorIs(t, bad.Load(), ErrNotImage)
	assert.Nil(t, bad.Image())

	lib := NewTextureLibrary(fsys)
	a, err := lib.Texture("/textures/wool.png")
	require.NoError(t, err)
	b, err := lib.Texture("/textures/wool.png")
	require.NoError(t, err)
	assert.Same(t, a, b)
	_, err = lib.Texture("/textures/missing.png")
	assert.Error(t, err)
	assert.Equal(t, 1, lib.Len())
	lib.Release()
	assert.Equal(t, 0, lib.Len())
}

type testDecoder struct {
	file string
	data string
}

func (d *testDecoder) New() Decoder         { return &testDecoder{} }
func (d *testDecoder) Desc() string         { return "test objects" }
func (d *testDecoder) SetFile(fname string) { d.file = fname }

func (d *testDecoder) Decode(r io.Reader, fsys fs.FS) error {
	b, err := io.ReadAll(r)
	d.data = string(b)
	return err
}

func (d *testDecoder) SetGroup(gp *Group) {
	NewSolid(gp, d.data)
}

func TestDecoders(t *testing.T) {
	Decoders[".tst"] = &testDecoder{}
	defer delete(Decoders, ".tst")

	assert.Contains(t, Extensions(), ".tst")
	_, err := DecoderFor("part.unknown")
	assert.Error(t, err)

	gp, err := ReadGroup("/models/Part.TST", strings.NewReader("lapel_upper"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Part.TST", gp.Name)
	assert.Equal(t, "/models/Part.TST", gp.Source)
	require.Len(t, gp.Solids(), 1)
	assert.Equal(t, "lapel_upper", gp.Solids()[0].Name)

	fsys := fstest.MapFS{"models/p.tst": {Data: []byte("s4")}}
	gp, err = OpenGroup(fsys, "models/p.tst")
	require.NoError(t, err)
	assert.Equal(t, "s4", gp.Solids()[0].Name)
}
