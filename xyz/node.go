// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/jinzhu/copier"
)

const (
	// Continue is returned from a walk function to descend into
	// the children of the current node.
	Continue = true

	// Break is returned from a walk function to skip the
	// children of the current node.
	Break = false
)

// Node is the interface for all nodes in the scene graph.
// Every concrete node type embeds [NodeBase].
type Node interface {
	// AsNode returns the [NodeBase] of the node.
	AsNode() *NodeBase

	// NewInstance returns a new, uninitialized node of the same type.
	NewInstance() Node

	// CopyFieldsFrom copies the fields (not the children) of the given
	// node, which must be of the same type.
	CopyFieldsFrom(from Node)

	// PlanName returns the name used when syncing lists of nodes.
	PlanName() string
}

// NodeBase is the common data and tree structure for all nodes.
// Fields tagged copier:"-" are maintained by the tree operations and
// are not copied by [Clone].
type NodeBase struct {
	// Name is the name of the node, which for decoded parts is the
	// mesh or node name as authored in the asset file.
	Name string `copier:"-"`

	// This is the node as its concrete type.
	This Node `copier:"-" json:"-"`

	// Parent is the parent of this node, or nil for a root.
	Parent Node `copier:"-" json:"-"`

	// Children are the child nodes, in order.
	Children []Node `copier:"-" json:",omitempty"`

	// Invisible hides the node and everything under it.
	Invisible bool

	// Pose is the local transform relative to the parent.
	Pose Pose
}

// InitNode initializes the given node, which must not be nil,
// setting its name and This pointer.
func InitNode(n Node, name string) {
	nb := n.AsNode()
	nb.This = n
	nb.Name = name
	nb.Pose.Defaults()
}

func (n *NodeBase) AsNode() *NodeBase { return n }

func (n *NodeBase) PlanName() string { return n.Name }

// CopyFieldsFrom does a deep copy of all of the fields of the node
// that do not have a copier:"-" struct tag.
func (n *NodeBase) CopyFieldsFrom(from Node) {
	err := copier.CopyWithOption(n.This, from.AsNode().This, copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("xyz.NodeBase.CopyFieldsFrom", "node", n.Name, "err", err)
	}
}

// AddChild adds the given node as the last child of this node,
// removing it from any previous parent.
func (n *NodeBase) AddChild(kid Node) {
	kb := kid.AsNode()
	if kb.Parent != nil {
		kb.Parent.AsNode().DeleteChild(kid)
	}
	kb.Parent = n.This
	n.Children = append(n.Children, kid)
}

// SetChildren replaces the children with the given nodes, in order.
// Previous children not in the new list are detached.
func (n *NodeBase) SetChildren(kids ...Node) {
	for _, k := range n.Children {
		if !slices.Contains(kids, k) {
			k.AsNode().Parent = nil
		}
	}
	n.Children = slices.Clone(kids)
	for _, k := range n.Children {
		k.AsNode().Parent = n.This
	}
}

// DeleteChild removes the given child, returning false if it is not a child.
func (n *NodeBase) DeleteChild(kid Node) bool {
	idx := slices.Index(n.Children, kid)
	if idx < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, idx, idx+1)
	kid.AsNode().Parent = nil
	return true
}

// DeleteChildren removes all children.
func (n *NodeBase) DeleteChildren() {
	for _, k := range n.Children {
		k.AsNode().Parent = nil
	}
	n.Children = nil
}

// NumChildren returns the number of children.
func (n *NodeBase) NumChildren() int { return len(n.Children) }

// Child returns the child at the given index.
func (n *NodeBase) Child(i int) Node { return n.Children[i] }

// ChildByName returns the first child with the given name, or nil.
func (n *NodeBase) ChildByName(name string) Node {
	for _, k := range n.Children {
		if k.AsNode().Name == name {
			return k
		}
	}
	return nil
}

// Path returns the names of this node and its ancestors joined by '/'.
func (n *NodeBase) Path() string {
	var names []string
	for p := Node(n.This); p != nil; p = p.AsNode().Parent {
		names = append(names, p.AsNode().Name)
	}
	slices.Reverse(names)
	return strings.Join(names, "/")
}

// IsVisible returns whether this node and all of its ancestors are visible.
func (n *NodeBase) IsVisible() bool {
	for p := Node(n.This); p != nil; p = p.AsNode().Parent {
		if p.AsNode().Invisible {
			return false
		}
	}
	return true
}

// WorldScale returns the product of the scales of this node
// and all of its ancestors.
func (n *NodeBase) WorldScale() Vector3 {
	s := Vector3{1, 1, 1}
	for p := Node(n.This); p != nil; p = p.AsNode().Parent {
		s = s.Mul(p.AsNode().Pose.Scale)
	}
	return s
}

// WalkDown calls the given function on this node and all of its
// descendants in depth-first pre-order. If the function returns
// [Break], the children of that node are skipped.
func (n *NodeBase) WalkDown(fun func(k Node) bool) {
	if !fun(n.This) {
		return
	}
	for _, k := range slices.Clone(n.Children) {
		k.AsNode().WalkDown(fun)
	}
}

// Pose is the local transform of a node.
type Pose struct {
	// Pos is the position relative to the parent.
	Pos Vector3

	// Scale is the scale relative to the parent.
	Scale Vector3
}

// Defaults sets a unit scale.
func (ps *Pose) Defaults() {
	ps.Scale = Vector3{1, 1, 1}
}
