// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// structs for the tailor tool.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"cogentcore.org/tailor/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the name of the config file read by default.
const DefaultFile = "tailor.toml"

// Config is the main config struct
// that contains all of the configuration
// options for the tailor tool.
type Config struct {

	// the asset sources
	Assets Assets `toml:"assets"`

	// the part registry
	Registry Registry `toml:"registry"`

	// the paint settings
	Paint Paint `toml:"paint"`

	// the configuration options for the serve command
	Server Server `toml:"server"`

	// the logging options
	Log Log `toml:"log"`

	// the garment for the manifest and check commands
	Garment string `toml:"-"`

	// the selections for the manifest command, by key
	Selections map[string]string `toml:"-"`

	// the mesh names for the classify command
	IDs []string `toml:"-"`

	// the asset path for the inspect command,
	// or the session file for the remote command
	File string `toml:"-"`
}

type Assets struct {

	// [def: public] the directory of the static assets, used when
	// neither BaseURL nor Bucket are set
	Root string `toml:"root"`

	// the base URL of a static asset host
	BaseURL string `toml:"base_url"`

	// the Google Cloud Storage bucket holding the assets
	Bucket string `toml:"bucket"`

	// the object name prefix of the assets in Bucket
	Prefix string `toml:"prefix"`

	// [def: 30s] the timeout of each asset request
	Timeout string `toml:"timeout"`

	// asset paths to load at startup
	Preload []string `toml:"preload"`
}

type Registry struct {

	// the registry YAML file; the embedded registry is used if empty
	File string `toml:"file"`

	// reload the registry file when it changes
	Watch bool `toml:"watch"`
}

type Paint struct {

	// [def: 0.85] the factor applied to the fabric color for lapels
	LapelDarken float32 `toml:"lapel_darken"`

	// [def: 0.125] the size of one texture repeat in meters
	TileSize float32 `toml:"tile_size"`

	// [def: 16] the largest texture repeat count
	MaxRepeat float32 `toml:"max_repeat"`
}

type Server struct {

	// [def: :8080] the address to listen on
	Addr string `toml:"addr"`

	// [def: 30s] the longest time a viewer update may take
	UpdateTimeout string `toml:"update_timeout"`

	// [def: http://localhost:8080] the server URL used by the remote command
	URL string `toml:"url"`
}

type Log struct {

	// [def: warn] the log level: debug, info, warn or error
	Level string `toml:"level"`
}

// Defaults sets the unset fields to their default values.
func (c *Config) Defaults() {
	if c.Assets.Root == "" {
		c.Assets.Root = "public"
	}
	if c.Assets.Timeout == "" {
		c.Assets.Timeout = "30s"
	}
	if c.Paint.LapelDarken == 0 {
		c.Paint.LapelDarken = 0.85
	}
	if c.Paint.TileSize == 0 {
		c.Paint.TileSize = 0.125
	}
	if c.Paint.MaxRepeat == 0 {
		c.Paint.MaxRepeat = 16
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.UpdateTimeout == "" {
		c.Server.UpdateTimeout = "30s"
	}
	if c.Server.URL == "" {
		c.Server.URL = "http://localhost:8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate returns an error if a field has an invalid value.
func (c *Config) Validate() error {
	var errs []error
	for name, d := range map[string]string{"assets.timeout": c.Assets.Timeout, "server.update_timeout": c.Server.UpdateTimeout} {
		if _, err := time.ParseDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", name, err))
		}
	}
	if c.Paint.LapelDarken < 0 || c.Paint.TileSize <= 0 || c.Paint.MaxRepeat < 1 {
		errs = append(errs, errors.New("config: paint: lapel_darken must be >= 0, tile_size > 0 and max_repeat >= 1"))
	}
	return errors.Join(errs...)
}

// AssetTimeout returns the asset request timeout.
func (c *Config) AssetTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Assets.Timeout)
	return d
}

// UpdateTimeout returns the viewer update timeout.
func (c *Config) UpdateTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.UpdateTimeout)
	return d
}

// Open reads the given TOML file into c and sets the defaults.
// A missing file is not an error if it is the [DefaultFile].
func (c *Config) Open(fname string) error {
	b, err := os.ReadFile(fname)
	switch {
	case errors.Is(err, fs.ErrNotExist) && fname == DefaultFile:
	case err != nil:
		return err
	default:
		if err := toml.Unmarshal(b, c); err != nil {
			return fmt.Errorf("config: %s: %w", fname, err)
		}
	}
	c.Defaults()
	return c.Validate()
}

// Save writes the config to the given TOML file.
func (c *Config) Save(fname string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(fname, b, 0o644)
}
