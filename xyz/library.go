// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// Clone creates and returns a deep copy of the tree from the given node down.
// The copy shares nothing mutable with the source, except loaded
// texture images, which are immutable once loaded.
func Clone(n Node) Node {
	nb := n.AsNode()
	nc := n.NewInstance()
	InitNode(nc, nb.Name)
	nc.CopyFieldsFrom(n)
	for _, kid := range nb.Children {
		nc.AsNode().AddChild(Clone(kid))
	}
	return nc
}

// CloneGroup is [Clone] for a [Group].
func CloneGroup(gp *Group) *Group {
	return Clone(gp).(*Group)
}

// Dispose releases the resources held by the tree from the given node down:
// material textures are dropped and the node is detached from its parent
// and children. The nodes must not be used after this.
func Dispose(n Node) {
	nb := n.AsNode()
	if nb.Parent != nil {
		nb.Parent.AsNode().DeleteChild(n)
	}
	nb.WalkDown(func(k Node) bool {
		if sld, ok := k.(*Solid); ok {
			sld.Material.NoTexture()
		}
		return Continue
	})
	var detach func(k Node)
	detach = func(k Node) {
		kb := k.AsNode()
		for _, c := range kb.Children {
			detach(c)
		}
		kb.DeleteChildren()
	}
	detach(n)
}
