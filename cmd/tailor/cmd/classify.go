// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"cogentcore.org/tailor/classify"
	"cogentcore.org/tailor/cmd/tailor/config"
)

// Classify writes the category of each mesh name and the rule that decided it.
func Classify(c *config.Config, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	cl := classify.Default()
	for _, id := range c.IDs {
		cat, rule := cl.Explain(id)
		if rule == "" {
			rule = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", id, cat, rule)
	}
	return tw.Flush()
}
