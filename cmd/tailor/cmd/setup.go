// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd contains the actual command definitions
// for the commands in the tailor tool.
package cmd

import (
	"context"
	"os"

	"cogentcore.org/tailor/assets"
	"cogentcore.org/tailor/cmd/tailor/config"
	"cogentcore.org/tailor/customize"
	"cogentcore.org/tailor/registry"
)

// OpenRegistry returns the registry of the config:
// the registry file if set, or else the embedded registry.
func OpenRegistry(c *config.Config) (*registry.Registry, error) {
	if c.Registry.File == "" {
		return registry.Default(), nil
	}
	return registry.Open(c.Registry.File)
}

// OpenSource returns the asset source of the config: the bucket
// if set, or else the base URL if set, or else the asset directory.
func OpenSource(ctx context.Context, c *config.Config) (assets.Source, error) {
	switch {
	case c.Assets.Bucket != "":
		return assets.NewGCSSource(ctx, c.Assets.Bucket, c.Assets.Prefix)
	case c.Assets.BaseURL != "":
		return assets.NewHTTPSource(c.Assets.BaseURL, c.AssetTimeout()), nil
	}
	return assets.NewFSSource(os.DirFS(c.Assets.Root)), nil
}

// NewApplier returns an applier with the paint settings of the config.
func NewApplier(c *config.Config) *customize.Applier {
	ap := customize.NewApplier()
	ap.LapelDarken = c.Paint.LapelDarken
	ap.TileSize = c.Paint.TileSize
	ap.MaxRepeat = c.Paint.MaxRepeat
	return ap
}
