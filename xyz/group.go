// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Group collects individual elements in a scene but does not have a Mesh or Material of
// its own. A decoded asset file is a Group, and so is the assembly of parts.
type Group struct {
	NodeBase

	// Source is the asset path the group was decoded from, if any.
	Source string
}

// NewGroup returns a new [Group] with the given name, added
// to the given parent if it is non-nil.
func NewGroup(parent Node, name string) *Group {
	gp := &Group{}
	InitNode(gp, name)
	if parent != nil {
		parent.AsNode().AddChild(gp)
	}
	return gp
}

func (gp *Group) NewInstance() Node { return &Group{} }

// BBox returns the union of the bounding boxes of all solids under the group,
// in the local coordinates of each solid.
func (gp *Group) BBox() Box3 {
	var bb Box3
	gp.WalkDown(func(k Node) bool {
		if sld, ok := k.(*Solid); ok {
			bb = bb.ExpandBy(sld.MeshBBox)
		}
		return Continue
	})
	return bb
}

// Solids returns all of the solids under the group, in walk order.
func (gp *Group) Solids() []*Solid {
	var sl []*Solid
	gp.WalkDown(func(k Node) bool {
		if sld, ok := k.(*Solid); ok {
			sl = append(sl, sld)
		}
		return Continue
	})
	return sl
}
