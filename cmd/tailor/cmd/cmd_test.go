// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/tailor/assets"
	"cogentcore.org/tailor/cmd/tailor/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vestRegistry = `
garments:
  - name: vest
    primary: frontStyle
    default: plain
    priority: [front]
    secondary: [pocket]
    styles:
      - name: plain
        parts:
          front: /models/vest/Front.gltf
    selections:
      - key: frontPocket
        values:
          - value: welt
            set:
              pocket: /models/vest/Welt.gltf
`

const partJSON = `{
  "asset": {"version": "2.0"},
  "nodes": [{"name": "Front", "children": [1, 2]}, {"name": "%s", "mesh": 0}, {"name": "mystery", "mesh": 0}],
  "meshes": [{"name": "Body", "primitives": [{"attributes": {"POSITION": 0}}]}],
  "accessors": [{"componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [0.5, 0.25, 0.1]}]
}`

// testConfig returns a config with an asset directory holding the
// vest front, and a registry file for the vest.
func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	root := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "models", "vest"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "models", "vest", "Front.gltf"), fmt.Appendf(nil, partJSON, "front_body"), 0o644))
	regFile := filepath.Join(dir, "registry.yaml")
	require.NoError(t, os.WriteFile(regFile, []byte(vestRegistry), 0o644))

	c := &config.Config{}
	c.Defaults()
	c.Assets.Root = root
	c.Registry.File = regFile
	return c
}

func TestManifest(t *testing.T) {
	c := &config.Config{Garment: "jacket", Selections: map[string]string{"frontStyle": "3button", "ventStyle": "two-back-vent"}}
	c.Defaults()
	var buf bytes.Buffer
	require.NoError(t, Manifest(c, &buf))
	assert.Contains(t, buf.String(), `"garment": "jacket"`)
	assert.Contains(t, buf.String(), `"style": "3button"`)

	c.Selections["frontStyle"] = "tuxedo"
	assert.Error(t, Manifest(c, &buf))

	c = testConfig(t)
	c.Garment = "vest"
	c.Selections = map[string]string{"frontPocket": "welt"}
	buf.Reset()
	require.NoError(t, Manifest(c, &buf))
	assert.Contains(t, buf.String(), "/models/vest/Welt.gltf")
}

func TestClassify(t *testing.T) {
	c := &config.Config{IDs: []string{"button_thread", "S4.001", "mesh_42"}}
	var buf bytes.Buffer
	require.NoError(t, Classify(c, &buf))
	assert.Equal(t, "button_thread  Thread   thread\nS4.001         Buttons  button\nmesh_42        Unknown  -\n", buf.String())
}

func TestInspect(t *testing.T) {
	c := testConfig(t)
	c.File = "/models/vest/Front.gltf"
	var buf bytes.Buffer
	require.NoError(t, Inspect(c, &buf))
	out := buf.String()
	assert.Contains(t, out, "Front.gltf/\n")
	assert.Contains(t, out, "  Front/\n")
	assert.Contains(t, out, `    front_body [MainFabric] mesh="Body" size=0.5x0.25x0.1`)
	assert.Contains(t, out, "mystery [Unknown]")

	c.File = "/models/vest/Back.gltf"
	assert.ErrorIs(t, Inspect(c, &buf), assets.ErrNotFound)
}

func TestCheck(t *testing.T) {
	c := testConfig(t)
	var buf bytes.Buffer
	err := Check(c, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, assets.ErrNotFound)
	out := buf.String()
	assert.Contains(t, out, "2 assets checked, 1 failed")
	assert.Contains(t, out, "/models/vest/Front.gltf: unclassified meshes: [mystery]")
	assert.Contains(t, out, "/models/vest/Welt.gltf")

	require.NoError(t, os.WriteFile(filepath.Join(c.Assets.Root, "models", "vest", "Welt.gltf"), fmt.Appendf(nil, partJSON, "welt"), 0o644))
	buf.Reset()
	require.NoError(t, Check(c, &buf))
	assert.Contains(t, buf.String(), "2 assets checked, 0 failed")

	c.Garment = "kilt"
	assert.Error(t, Check(c, &buf))
}

func TestSetup(t *testing.T) {
	c := &config.Config{}
	c.Defaults()
	c.Paint.TileSize = 0.25
	ap := NewApplier(c)
	assert.Equal(t, float32(0.25), ap.TileSize)
	assert.Equal(t, float32(0.85), ap.LapelDarken)

	src, err := OpenSource(context.Background(), c)
	require.NoError(t, err)
	assert.IsType(t, &assets.FSSource{}, src)

	c.Assets.BaseURL = "https://assets.example.com/public"
	src, err = OpenSource(context.Background(), c)
	require.NoError(t, err)
	require.IsType(t, &assets.HTTPSource{}, src)
	assert.Equal(t, "https://assets.example.com/public", src.(*assets.HTTPSource).BaseURL)

	reg, err := OpenRegistry(c)
	require.NoError(t, err)
	assert.Equal(t, []string{"jacket", "pants"}, reg.Garments())
}
