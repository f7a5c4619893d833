// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"io"

	"cogentcore.org/tailor/cmd/tailor/config"
	"cogentcore.org/tailor/registry"
)

// Manifest writes the manifest of the garment for the selections as JSON.
func Manifest(c *config.Config, w io.Writer) error {
	reg, err := OpenRegistry(c)
	if err != nil {
		return err
	}
	m, err := reg.Resolve(c.Garment, registry.Map(c.Selections))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
