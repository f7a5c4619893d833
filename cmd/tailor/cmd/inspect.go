// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/tailor/assets"
	"cogentcore.org/tailor/classify"
	"cogentcore.org/tailor/cmd/tailor/config"
	"cogentcore.org/tailor/xyz"
)

// Inspect decodes the asset file and writes its scene graph, with
// the category of each solid and the size of its bounds.
func Inspect(c *config.Config, w io.Writer) error {
	ctx := context.Background()
	src, err := OpenSource(ctx, c)
	if err != nil {
		return err
	}
	gp, err := assets.Decode(ctx, src, c.File)
	if err != nil {
		return err
	}
	cl := classify.Default()
	depth := func(n xyz.Node) int {
		d := 0
		for p := n.AsNode().Parent; p != nil; p = p.AsNode().Parent {
			d++
		}
		return d
	}
	gp.WalkDown(func(k xyz.Node) bool {
		indent := strings.Repeat("  ", depth(k))
		switch n := k.(type) {
		case *xyz.Solid:
			sz := n.MeshBBox.Size()
			fmt.Fprintf(w, "%s%s [%s] mesh=%q size=%.3gx%.3gx%.3g", indent, n.Name, cl.Classify(n.Name), n.MeshName, sz.X, sz.Y, sz.Z)
			if n.Material.HasTexture() {
				fmt.Fprintf(w, " texture=%s", n.Material.TextureName)
			}
			fmt.Fprintln(w)
		default:
			fmt.Fprintf(w, "%s%s/\n", indent, k.AsNode().Name)
		}
		return xyz.Continue
	})
	return nil
}
