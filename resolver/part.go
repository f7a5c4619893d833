// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"cogentcore.org/tailor/registry"
	"cogentcore.org/tailor/xyz"
)

// Part is a part attached to a viewer: the decoded asset occupying
// one slot, as its only child.
type Part struct {
	xyz.Group

	// Slot is the slot the part occupies.
	Slot registry.Slot

	// Path is the asset path of the part.
	Path string
}

// NewPart returns a new part for the given manifest entry holding gp.
func NewPart(e registry.Entry, gp *xyz.Group) *Part {
	pt := &Part{Slot: e.Slot, Path: e.Path}
	xyz.InitNode(pt, string(e.Slot))
	pt.Source = e.Path
	if gp != nil {
		pt.AddChild(gp)
	}
	return pt
}

func (pt *Part) NewInstance() xyz.Node { return &Part{} }

// PlanName includes the path, so that a slot whose path changes
// is a different item to [plan.Update].
func (pt *Part) PlanName() string {
	return partName(pt.Slot, pt.Path)
}

func partName(s registry.Slot, path string) string {
	return string(s) + "=" + path
}
