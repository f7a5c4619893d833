// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltf provides a decoder for glTF 2.0 files, in both the
// JSON (.gltf) and binary (.glb) forms, into [xyz.Group] scene graphs.
// Importing it registers the decoder in [xyz.Decoders].
//
// Only the data needed to assemble and paint parts is imported:
// the node hierarchy, node names, local translation and scale,
// materials, and the vertex position bounds of each primitive.
// Geometry compressed with the Draco extension is kept as is,
// since the bounds are stored in the accessor metadata.
package gltf

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"cogentcore.org/tailor/xyz"
	"github.com/qmuntal/gltf"
)

// DracoExtension is the name of the Draco mesh compression extension.
const DracoExtension = "KHR_draco_mesh_compression"

func init() {
	xyz.Decoders[".gltf"] = &Decoder{}
	xyz.Decoders[".glb"] = &Decoder{}
}

// Decoder is the glTF [xyz.Decoder].
type Decoder struct {
	// File is the file name being decoded.
	File string

	doc *gltf.Document
}

func (dec *Decoder) New() xyz.Decoder {
	return &Decoder{}
}

func (dec *Decoder) Desc() string {
	return ".gltf / .glb = glTF 2.0 scene, JSON or binary"
}

func (dec *Decoder) SetFile(fname string) {
	dec.File = fname
}

// Document returns the decoded document, or nil before Decode.
func (dec *Decoder) Document() *gltf.Document {
	return dec.doc
}

// Compressed returns whether the document uses Draco compressed geometry.
func (dec *Decoder) Compressed() bool {
	return dec.doc != nil && slices.Contains(dec.doc.ExtensionsUsed, DracoExtension)
}

// Decode decodes a glTF document. External buffers are read from fsys
// relative to the directory of the file.
func (dec *Decoder) Decode(r io.Reader, fsys fs.FS) error {
	if fsys == nil {
		fsys = emptyFS{}
	} else if dir := path.Dir(strings.TrimPrefix(dec.File, "/")); dir != "." {
		sub, err := fs.Sub(fsys, dir)
		if err != nil {
			return err
		}
		fsys = sub
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(r, fsys).Decode(doc); err != nil {
		return err
	}
	dec.doc = doc
	if dec.Compressed() {
		slog.Debug("gltf: Draco compressed geometry", "file", dec.File)
	}
	return nil
}

// SetGroup adds the nodes of the default scene (or all root nodes
// if there is no scene) under the given group.
func (dec *Decoder) SetGroup(gp *xyz.Group) {
	if dec.doc == nil {
		return
	}
	for _, ni := range dec.roots() {
		dec.addNode(gp, ni, 0)
	}
}

// roots returns the root node indexes to import.
func (dec *Decoder) roots() []int {
	doc := dec.doc
	if len(doc.Scenes) > 0 {
		si := 0
		if doc.Scene != nil {
			si = int(*doc.Scene)
		}
		if si >= 0 && si < len(doc.Scenes) {
			var r []int
			for _, ni := range doc.Scenes[si].Nodes {
				r = append(r, int(ni))
			}
			return r
		}
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(isChild) {
				isChild[int(c)] = true
			}
		}
	}
	var r []int
	for i, ch := range isChild {
		if !ch {
			r = append(r, i)
		}
	}
	return r
}

// maxDepth guards against cyclic node references in malformed files.
const maxDepth = 64

func (dec *Decoder) addNode(parent xyz.Node, ni, depth int) {
	doc := dec.doc
	if ni < 0 || ni >= len(doc.Nodes) || depth > maxDepth {
		slog.Warn("gltf: invalid node reference", "file", dec.File, "node", ni)
		return
	}
	n := doc.Nodes[ni]
	name := n.Name
	var mesh *gltf.Mesh
	if n.Mesh != nil && int(*n.Mesh) < len(doc.Meshes) {
		mesh = doc.Meshes[int(*n.Mesh)]
		if name == "" {
			name = mesh.Name
		}
	}
	if name == "" {
		name = fmt.Sprintf("node%d", ni)
	}

	var this xyz.Node
	switch {
	case mesh != nil && len(mesh.Primitives) == 1 && len(n.Children) == 0:
		this = dec.newSolid(parent, name, mesh, mesh.Primitives[0])
	default:
		gp := xyz.NewGroup(parent, name)
		this = gp
		if mesh != nil {
			for i, prim := range mesh.Primitives {
				pname := name
				if len(mesh.Primitives) > 1 {
					pname = fmt.Sprintf("%s_%d", name, i)
				}
				dec.newSolid(gp, pname, mesh, prim)
			}
		}
	}
	nb := this.AsNode()
	nb.Pose.Pos = xyz.Vector3{X: f32(n.Translation[0]), Y: f32(n.Translation[1]), Z: f32(n.Translation[2])}
	sc := xyz.Vector3{X: f32(n.Scale[0]), Y: f32(n.Scale[1]), Z: f32(n.Scale[2])}
	if sc != (xyz.Vector3{}) {
		nb.Pose.Scale = sc
	}
	for _, c := range n.Children {
		dec.addNode(this, int(c), depth+1)
	}
}

func (dec *Decoder) newSolid(parent xyz.Node, name string, mesh *gltf.Mesh, prim *gltf.Primitive) *xyz.Solid {
	sld := xyz.NewSolid(parent, name)
	sld.MeshName = mesh.Name
	if prim.Material != nil {
		dec.setMaterial(&sld.Material, int(*prim.Material))
	}
	if ai, ok := prim.Attributes[gltf.POSITION]; ok {
		sld.MeshBBox = dec.bounds(int(ai))
	}
	return sld
}

func (dec *Decoder) setMaterial(mt *xyz.Material, mi int) {
	doc := dec.doc
	if mi < 0 || mi >= len(doc.Materials) {
		return
	}
	m := doc.Materials[mi]
	mt.Emissive = rgba3(m.EmissiveFactor)
	pbr := m.PBRMetallicRoughness
	if pbr == nil {
		return
	}
	if pbr.BaseColorFactor != nil {
		mt.Color = rgba4(*pbr.BaseColorFactor)
	}
	if pbr.MetallicFactor != nil {
		mt.Metalness = f32(*pbr.MetallicFactor)
	}
	if pbr.RoughnessFactor != nil {
		mt.Roughness = f32(*pbr.RoughnessFactor)
	}
	if pbr.BaseColorTexture != nil {
		if tn := dec.textureName(int(pbr.BaseColorTexture.Index)); tn != "" {
			mt.SetTextureName(tn)
		}
	}
}

// textureName returns the image URI (or name, for embedded images)
// of the given texture.
func (dec *Decoder) textureName(ti int) string {
	doc := dec.doc
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return ""
	}
	ii := int(*doc.Textures[ti].Source)
	if ii < 0 || ii >= len(doc.Images) {
		return ""
	}
	img := doc.Images[ii]
	if img.URI != "" && !strings.HasPrefix(img.URI, "data:") {
		return img.URI
	}
	return img.Name
}

// bounds returns the bounding box recorded in the min and max of the
// given position accessor.
func (dec *Decoder) bounds(ai int) xyz.Box3 {
	doc := dec.doc
	if ai < 0 || ai >= len(doc.Accessors) {
		return xyz.Box3{}
	}
	acc := doc.Accessors[ai]
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return xyz.Box3{}
	}
	return xyz.Box3{
		Min: xyz.Vector3{X: f32(acc.Min[0]), Y: f32(acc.Min[1]), Z: f32(acc.Min[2])},
		Max: xyz.Vector3{X: f32(acc.Max[0]), Y: f32(acc.Max[1]), Z: f32(acc.Max[2])},
	}
}

type float interface {
	~float32 | ~float64
}

func f32[T float](v T) float32 { return float32(v) }

func unit[T float](v T) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

func rgba4[T float](c [4]T) color.RGBA {
	return color.RGBA{unit(c[0]), unit(c[1]), unit(c[2]), unit(c[3])}
}

func rgba3[T float](c [3]T) color.RGBA {
	return color.RGBA{unit(c[0]), unit(c[1]), unit(c[2]), 255}
}

// emptyFS is used when no filesystem is available for external buffers.
type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
