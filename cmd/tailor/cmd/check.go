// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/tailor/assets"
	"cogentcore.org/tailor/base/errors"
	"cogentcore.org/tailor/base/logx"
	"cogentcore.org/tailor/classify"
	"cogentcore.org/tailor/cmd/tailor/config"
	"cogentcore.org/tailor/xyz"
	"golang.org/x/sync/errgroup"
)

// Check checks that every asset the registry refers to, for the
// garment or for all garments, exists and decodes, and reports
// the meshes that do not classify.
func Check(c *config.Config, w io.Writer) error {
	reg, err := OpenRegistry(c)
	if err != nil {
		return err
	}
	garments := reg.Garments()
	if c.Garment != "" {
		garments = []string{c.Garment}
	}
	var paths []string
	for _, name := range garments {
		g, err := reg.Garment(name)
		if err != nil {
			return err
		}
		paths = append(paths, g.Paths()...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	ctx := context.Background()
	src, err := OpenSource(ctx, c)
	if err != nil {
		return err
	}
	cache := assets.NewCache(src)
	cl := classify.Default()

	var mu sync.Mutex
	var errs []error
	unknown := map[string][]string{}
	var g errgroup.Group
	g.SetLimit(8)
	for _, p := range paths {
		g.Go(func() error {
			gp, err := cache.Load(ctx, p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			for _, sld := range gp.Solids() {
				if cl.Classify(sld.Name) == classify.Unknown {
					unknown[p] = append(unknown[p], sld.Name)
				}
			}
			xyz.Dispose(gp)
			return nil
		})
	}
	g.Wait()

	for _, p := range paths {
		if ids := unknown[p]; len(ids) > 0 {
			logx.Fprintf(w, slog.LevelInfo, "%s: unclassified meshes: %v\n", p, ids)
		}
	}
	for _, err := range errs {
		logx.Fprintf(w, slog.LevelError, "%v\n", err)
	}
	fmt.Fprintf(w, "%d assets checked, %d failed\n", len(paths), len(errs))
	if len(errs) > 0 {
		return fmt.Errorf("check: %w", errors.Join(errs...))
	}
	return nil
}
