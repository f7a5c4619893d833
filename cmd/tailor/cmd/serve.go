// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"log/slog"

	"cogentcore.org/tailor/assets"
	"cogentcore.org/tailor/base/errors"
	"cogentcore.org/tailor/cmd/tailor/config"
	"cogentcore.org/tailor/registry"
	"cogentcore.org/tailor/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Serve runs the configurator server until ctx is done.
func Serve(ctx context.Context, c *config.Config) error {
	reg, err := OpenRegistry(c)
	if err != nil {
		return err
	}
	if c.Registry.Watch && c.Registry.File != "" {
		err := registry.Watch(ctx, reg, c.Registry.File, func(err error) {
			if err == nil {
				slog.Info("serve: registry reloaded", "file", c.Registry.File)
			}
		})
		if err != nil {
			return err
		}
	}
	src, err := OpenSource(ctx, c)
	if err != nil {
		return err
	}
	if cl, ok := src.(interface{ Close() error }); ok {
		defer func() { errors.Log(cl.Close()) }()
	}

	preg := prometheus.NewRegistry()
	preg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	cache := assets.NewCache(src)
	cache.Metrics = assets.NewMetrics()
	cache.PreloadLimit = 8
	if err := cache.Metrics.Register(preg); err != nil {
		return err
	}
	if len(c.Assets.Preload) > 0 {
		errors.Warn(cache.Preload(ctx, c.Assets.Preload...), "serve: preload failed")
	}

	s := server.New(reg, cache)
	s.Applier = NewApplier(c)
	s.UpdateTimeout = c.UpdateTimeout()
	s.Metrics = server.NewMetrics()
	if err := s.Metrics.Register(preg); err != nil {
		return err
	}
	s.Gatherer = preg
	defer cache.Dispose()
	return s.ListenAndServe(ctx, c.Server.Addr)
}
