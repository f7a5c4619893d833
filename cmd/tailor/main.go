// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tailor is the command line tool of the garment configurator:
// it resolves manifests, classifies mesh names, inspects and checks
// assets, and runs or drives the configurator server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cogentcore.org/tailor/base/logx"
	"cogentcore.org/tailor/cmd/tailor/cmd"
	"cogentcore.org/tailor/cmd/tailor/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	c := &config.Config{}
	var (
		file           string
		vv, v, q       bool
		assetRoot, url string
		regFile        string
	)
	root := &cobra.Command{
		Use:           "tailor",
		Short:         "Garment part assembly and customization tool",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cc *cobra.Command, args []string) error {
			if err := c.Open(file); err != nil {
				return err
			}
			if cc.Flags().Changed("assets") {
				c.Assets.Root = assetRoot
			}
			if cc.Flags().Changed("base-url") {
				c.Assets.BaseURL = url
			}
			if cc.Flags().Changed("registry") {
				c.Registry.File = regFile
			}
			if vv || v || q {
				logx.UserLevel = logx.LevelFromFlags(vv, v, q)
			} else {
				logx.UserLevel = logx.LevelFromString(c.Log.Level)
			}
			logx.SetDefaultLogger()
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&file, "config", "c", config.DefaultFile, "the config file")
	pf.BoolVar(&vv, "vv", false, "very verbose: log debug messages")
	pf.BoolVarP(&v, "verbose", "v", false, "verbose: log info messages")
	pf.BoolVarP(&q, "quiet", "q", false, "quiet: only log errors")
	pf.StringVar(&assetRoot, "assets", "", "the directory of the static assets")
	pf.StringVar(&url, "base-url", "", "the base URL of a static asset host")
	pf.StringVar(&regFile, "registry", "", "the registry YAML file to use instead of the embedded one")

	manifest := &cobra.Command{
		Use:   "manifest <garment> [key=value...]",
		Short: "Print the manifest of a garment configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			c.Garment = args[0]
			c.Selections = map[string]string{}
			for _, a := range args[1:] {
				k, val, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("selection %q is not key=value", a)
				}
				c.Selections[k] = val
			}
			return cmd.Manifest(c, cc.OutOrStdout())
		},
	}
	classify := &cobra.Command{
		Use:   "classify <mesh-name>...",
		Short: "Print the paint category of mesh names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			c.IDs = args
			return cmd.Classify(c, cc.OutOrStdout())
		},
	}
	inspect := &cobra.Command{
		Use:   "inspect <asset-path>",
		Short: "Print the scene graph of an asset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			c.File = args[0]
			return cmd.Inspect(c, cc.OutOrStdout())
		},
	}
	check := &cobra.Command{
		Use:   "check [garment]",
		Short: "Check that all registry assets exist and decode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Garment = args[0]
			}
			return cmd.Check(c, cc.OutOrStdout())
		},
	}
	var (
		addr  string
		watch bool
	)
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the configurator server",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, args []string) error {
			if cc.Flags().Changed("addr") {
				c.Server.Addr = addr
			}
			if cc.Flags().Changed("watch") {
				c.Registry.Watch = watch
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return cmd.Serve(ctx, c)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "the address to listen on")
	serve.Flags().BoolVar(&watch, "watch", false, "reload the registry file when it changes")

	var serverURL string
	remote := &cobra.Command{
		Use:   "remote <session-file>",
		Short: "Send a saved session to a running server and print its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			if cc.Flags().Changed("url") {
				c.Server.URL = serverURL
			}
			c.File = args[0]
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return cmd.Remote(ctx, c, cc.OutOrStdout())
		},
	}
	remote.Flags().StringVar(&serverURL, "url", "", "the URL of the configurator server")

	root.AddCommand(manifest, classify, inspect, check, serve, remote)
	return root
}
