// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolver

import (
	"context"
	"fmt"
	"image/color"
	"path"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"cogentcore.org/tailor/assets"
	"cogentcore.org/tailor/base/errors"
	"cogentcore.org/tailor/customize"
	"cogentcore.org/tailor/registry"
	"cogentcore.org/tailor/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vestRegistry = `
garments:
  - name: vest
    primary: frontStyle
    default: plain
    priority: [front, lapel]
    secondary: [pocket, button]
    base:
      button: /models/vest/Button.gltf
    styles:
      - name: plain
        parts:
          front: /models/vest/Front.gltf
          lapel: /models/vest/Lapel.gltf
      - name: peak
        parts:
          front: /models/vest/Front.gltf
          lapel: /models/vest/Peak.gltf
    selections:
      - key: frontPocket
        values:
          - value: welt
            set:
              pocket: /models/vest/Welt.gltf
          - value: patch
            set:
              pocket: /models/vest/Patch.gltf
      - key: chestPocket
        values:
          - value: none
            clear: [button]
`

// meshes are the mesh names of the test parts.
var meshes = map[string]string{
	"Front":  "front_body",
	"Lapel":  "lapel_upper",
	"Peak":   "cl2",
	"Welt":   "welt",
	"Patch":  "patch",
	"Button": "s4.001",
}

// testLoader builds parts in memory. Loads of gated paths block until
// the gate is closed.
type testLoader struct {
	mu    sync.Mutex
	loads map[string]int
	gates map[string]chan struct{}
	fail  map[string]error
}

func newTestLoader() *testLoader {
	return &testLoader{loads: map[string]int{}, gates: map[string]chan struct{}{}, fail: map[string]error{}}
}

func (l *testLoader) Load(ctx context.Context, p string) (*xyz.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.loads[p]++
	gate := l.gates[p]
	err := l.fail[p]
	l.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	base := path.Base(p)
	gp := xyz.NewGroup(nil, base)
	gp.Source = p
	xyz.NewSolid(gp, meshes[strings.TrimSuffix(base, path.Ext(base))])
	return gp, nil
}

func (l *testLoader) count(p string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loads[p]
}

func (l *testLoader) gate(p string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch := make(chan struct{})
	l.gates[p] = ch
	return ch
}

func (l *testLoader) setFail(p string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fail[p] = err
}

// events records the viewer callbacks.
type events struct {
	mu  sync.Mutex
	all []string
}

func (ev *events) add(format string, a ...any) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.all = append(ev.all, fmt.Sprintf(format, a...))
}

func (ev *events) list() []string {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return append([]string(nil), ev.all...)
}

func newViewer(t *testing.T, loader Loader) (*Viewer, *events) {
	reg, err := registry.Parse([]byte(vestRegistry))
	require.NoError(t, err)
	v, err := NewViewer(reg, "vest", loader)
	require.NoError(t, err)
	ev := &events{}
	v.OnManifestReady = func(m *registry.Manifest) { ev.add("manifest %s %d", m.Style, m.Len()) }
	v.OnPaintApplied = func(rep *customize.Report) { ev.add("paint %d", len(rep.Painted)) }
	v.OnStateChanged = func(st States, err error) { ev.add("state %s", st) }
	t.Cleanup(v.Close)
	return v, ev
}

func solidColor(t *testing.T, v *Viewer, name string) color.RGBA {
	for _, sld := range v.Root().Solids() {
		if sld.Name == name {
			return sld.Material.Color
		}
	}
	t.Fatalf("no solid %q", name)
	return color.RGBA{}
}

var navy = color.RGBA{0x1a, 0x23, 0x7e, 0xff}

func TestUpdate(t *testing.T) {
	l := newTestLoader()
	v, ev := newViewer(t, l)
	require.NoError(t, v.Update(context.Background(), &customize.Customization{FabricColor: "#1a237e"}))
	v.Wait()

	assert.Equal(t, map[registry.Slot]string{
		"front":  "/models/vest/Front.gltf",
		"lapel":  "/models/vest/Lapel.gltf",
		"button": "/models/vest/Button.gltf",
	}, v.Parts())
	st, err := v.State()
	assert.Equal(t, Idle, st)
	assert.NoError(t, err)
	assert.Equal(t, "plain", v.Manifest().Style)

	assert.Equal(t, navy, solidColor(t, v, "front_body"))
	assert.Equal(t, color.RGBA{0x16, 0x1e, 0x6b, 0xff}, solidColor(t, v, "lapel_upper"))
	assert.Equal(t, navy, solidColor(t, v, "s4.001"))

	all := ev.list()
	require.GreaterOrEqual(t, len(all), 4)
	assert.Equal(t, []string{"state resolving", "manifest plain 3"}, all[:2])
	assert.Contains(t, all, "state idle")
	assert.Contains(t, all, "paint 1")

	// manifest order: priority slots first
	names := []string{}
	for _, k := range v.Root().Children {
		names = append(names, k.AsNode().Name)
	}
	assert.Equal(t, []string{"front", "lapel", "button"}, names)
	assert.Equal(t, "vest/lapel/Lapel.gltf/lapel_upper", v.Root().Solids()[1].Path())
}

func TestRepaintOnly(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	ctx := context.Background()
	require.NoError(t, v.Update(ctx, &customize.Customization{FabricColor: "#1a237e"}))
	v.Wait()
	front := v.Root().Child(0)

	require.NoError(t, v.Update(ctx, &customize.Customization{FabricColor: "#ffffff", LapelColor: "#000000"}))
	v.Wait()
	assert.Same(t, front, v.Root().Child(0))
	for _, p := range []string{"/models/vest/Front.gltf", "/models/vest/Lapel.gltf", "/models/vest/Button.gltf"} {
		assert.Equal(t, 1, l.count(p), p)
	}
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, solidColor(t, v, "front_body"))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, solidColor(t, v, "lapel_upper"))
}

func TestStyleChange(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	ctx := context.Background()
	require.NoError(t, v.Update(ctx, &customize.Customization{FabricColor: "#1a237e"}))
	v.Wait()
	oldLapel := v.Root().Child(1)

	require.NoError(t, v.Update(ctx, &customize.Customization{FabricColor: "#1a237e", FrontStyle: "peak"}))
	v.Wait()
	assert.Equal(t, "/models/vest/Peak.gltf", v.Parts()["lapel"])
	assert.Equal(t, 1, l.count("/models/vest/Front.gltf"))
	assert.Equal(t, 1, l.count("/models/vest/Peak.gltf"))
	assert.Nil(t, oldLapel.AsNode().Parent)
	assert.Equal(t, 0, oldLapel.AsNode().NumChildren())
	assert.Equal(t, color.RGBA{0x16, 0x1e, 0x6b, 0xff}, solidColor(t, v, "cl2"))
}

func TestSecondarySelections(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	ctx := context.Background()

	require.NoError(t, v.Update(ctx, &customize.Customization{FrontPocket: "welt", ChestPocket: "none"}))
	v.Wait()
	parts := v.Parts()
	assert.Equal(t, "/models/vest/Welt.gltf", parts["pocket"])
	assert.NotContains(t, parts, registry.Slot("button"))

	// removing the selection removes the part right away
	require.NoError(t, v.Update(ctx, &customize.Customization{}))
	parts = v.Parts()
	assert.NotContains(t, parts, registry.Slot("pocket"))
	v.Wait()
	assert.Equal(t, "/models/vest/Button.gltf", v.Parts()["button"])
}

func TestPriorityFailure(t *testing.T) {
	l := newTestLoader()
	v, ev := newViewer(t, l)
	ctx := context.Background()
	require.NoError(t, v.Update(ctx, &customize.Customization{}))
	v.Wait()

	l.setFail("/models/vest/Peak.gltf", errors.New("404"))
	err := v.Update(ctx, &customize.Customization{FrontStyle: "peak"})
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, "could not build this configuration: 404", err.Error())
	st, serr := v.State()
	assert.Equal(t, Failed, st)
	assert.ErrorIs(t, serr, ErrIncomplete)
	assert.True(t, v.Root().Invisible)
	assert.Contains(t, ev.list(), "state failed")

	require.NoError(t, v.Update(ctx, &customize.Customization{FrontStyle: "plain"}))
	st, _ = v.State()
	assert.Equal(t, Idle, st)
	assert.False(t, v.Root().Invisible)
	assert.Equal(t, "/models/vest/Lapel.gltf", v.Parts()["lapel"])
}

func TestSecondaryFailure(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	ctx := context.Background()
	require.NoError(t, v.Update(ctx, &customize.Customization{FrontPocket: "patch"}))
	v.Wait()
	assert.Equal(t, "/models/vest/Patch.gltf", v.Parts()["pocket"])

	l.setFail("/models/vest/Welt.gltf", errors.New("decode failed"))
	require.NoError(t, v.Update(ctx, &customize.Customization{FrontPocket: "welt"}))
	v.Wait()
	assert.NotContains(t, v.Parts(), registry.Slot("pocket"))
	st, err := v.State()
	assert.Equal(t, Idle, st)
	assert.NoError(t, err)
}

func TestPriorityTimeout(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	require.NoError(t, v.Update(context.Background(), &customize.Customization{FrontPocket: "welt"}))
	v.Wait()
	gate := l.gate("/models/vest/Peak.gltf")
	defer close(gate)

	// the scene is untouched, so the viewer keeps showing the old style
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := v.Update(ctx, &customize.Customization{FrontStyle: "peak", FrontPocket: "welt"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrIncomplete)
	st, serr := v.State()
	assert.Equal(t, Idle, st)
	assert.NoError(t, serr)
	assert.False(t, v.Root().Invisible)
	assert.Equal(t, "plain", v.Manifest().Style)
	assert.Equal(t, "/models/vest/Welt.gltf", v.Parts()["pocket"])

	// the pocket is removed before the lapel arrives
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err = v.Update(ctx, &customize.Customization{FrontStyle: "peak"})
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	st, serr = v.State()
	assert.Equal(t, Failed, st)
	assert.ErrorIs(t, serr, ErrIncomplete)
	assert.True(t, v.Root().Invisible)
	assert.NotContains(t, v.Parts(), registry.Slot("pocket"))

	// a timeout of a failed viewer leaves it failed
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err = v.Update(ctx, &customize.Customization{FrontStyle: "peak"})
	assert.ErrorIs(t, err, ErrIncomplete)
	st, _ = v.State()
	assert.Equal(t, Failed, st)

	require.NoError(t, v.Update(context.Background(), &customize.Customization{}))
	st, _ = v.State()
	assert.Equal(t, Idle, st)
	assert.False(t, v.Root().Invisible)
}

func TestSupersede(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	ctx := context.Background()
	require.NoError(t, v.Update(ctx, &customize.Customization{}))
	v.Wait()

	gate := l.gate("/models/vest/Peak.gltf")
	defer close(gate)
	first := make(chan error, 1)
	go func() {
		first <- v.Update(ctx, &customize.Customization{FrontStyle: "peak"})
	}()
	assert.Eventually(t, func() bool { return l.count("/models/vest/Peak.gltf") == 1 }, time.Second, time.Millisecond)

	require.NoError(t, v.Update(ctx, &customize.Customization{FabricColor: "#1a237e"}))
	assert.ErrorIs(t, <-first, ErrSuperseded)
	assert.Equal(t, "/models/vest/Lapel.gltf", v.Parts()["lapel"])
	assert.Equal(t, navy, solidColor(t, v, "front_body"))
}

func TestSecondarySuperseded(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	ctx := context.Background()
	gate := l.gate("/models/vest/Welt.gltf")
	defer close(gate)

	require.NoError(t, v.Update(ctx, &customize.Customization{FrontPocket: "welt"}))
	require.NoError(t, v.Update(ctx, &customize.Customization{FrontPocket: "patch"}))
	v.Wait()
	assert.Equal(t, "/models/vest/Patch.gltf", v.Parts()["pocket"])
}

func TestUpdateErrors(t *testing.T) {
	v, _ := newViewer(t, newTestLoader())
	err := v.Update(context.Background(), &customize.Customization{FrontStyle: "double"})
	assert.ErrorIs(t, err, registry.ErrUnknownStyle)
	err = v.Update(context.Background(), &customize.Customization{FrontPocket: "jetted"})
	assert.ErrorIs(t, err, registry.ErrUnknownSelection)
	st, _ := v.State()
	assert.Equal(t, Idle, st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, v.Update(ctx, nil), context.Canceled)

	_, err = NewViewer(v.Registry, "kilt", newTestLoader())
	assert.ErrorIs(t, err, registry.ErrUnknownGarment)
}

func TestClose(t *testing.T) {
	l := newTestLoader()
	v, _ := newViewer(t, l)
	gate := l.gate("/models/vest/Welt.gltf")
	defer close(gate)
	require.NoError(t, v.Update(context.Background(), &customize.Customization{FrontPocket: "welt"}))
	parts := append([]xyz.Node(nil), v.Root().Children...)

	v.Close()
	assert.Equal(t, 0, v.Root().NumChildren())
	for _, pt := range parts {
		assert.Nil(t, pt.AsNode().Parent)
	}
	assert.ErrorIs(t, v.Update(context.Background(), nil), ErrClosed)
	v.Close()
}

const partJSON = `{
  "asset": {"version": "2.0"},
  "nodes": [{"name": "%s", "mesh": 0}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "accessors": [{"componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [0.5, 0.5, 0.1]}]
}`

func TestSharedCache(t *testing.T) {
	fsys := fstest.MapFS{}
	for nm, mesh := range meshes {
		fsys["models/vest/"+nm+".gltf"] = &fstest.MapFile{Data: fmt.Appendf(nil, partJSON, mesh)}
	}
	cache := assets.NewCache(assets.NewFSSource(fsys))
	a, _ := newViewer(t, cache)
	b, _ := newViewer(t, cache)

	ctx := context.Background()
	require.NoError(t, a.Update(ctx, &customize.Customization{FabricColor: "#1a237e"}))
	require.NoError(t, b.Update(ctx, &customize.Customization{FabricColor: "/textures/wool.jpg"}))
	a.Wait()
	b.Wait()

	assert.Equal(t, 3, cache.Len())
	assert.Equal(t, navy, solidColor(t, a, "front_body"))
	assert.Equal(t, customize.TextureBaseColor, solidColor(t, b, "front_body"))
	sa, sb := a.Root().Solids()[0], b.Root().Solids()[0]
	assert.NotSame(t, sa, sb)
	assert.Equal(t, xyz.Vec2(4, 4), sb.Material.Tiling.Repeat)
}

// jacketLoader builds jacket parts with one main fabric mesh each,
// and the lining meshes of the lining parts.
type jacketLoader struct{}

func (jacketLoader) Load(ctx context.Context, p string) (*xyz.Group, error) {
	base := path.Base(p)
	gp := xyz.NewGroup(nil, strings.TrimSuffix(base, path.Ext(base)))
	gp.Source = p
	switch base {
	case "Fully-lined.gltf":
		xyz.NewSolid(gp, "LiningCurved")
		xyz.NewSolid(gp, "LiningCurved.001")
	case "Halfed-lining.gltf":
		xyz.NewSolid(gp, "LiningCurved")
	default:
		xyz.NewSolid(gp, "front_body")
	}
	return gp, nil
}

func TestLiningSwitch(t *testing.T) {
	v, err := NewViewer(registry.Default(), "jacket", jacketLoader{})
	require.NoError(t, err)
	t.Cleanup(v.Close)
	red := color.RGBA{170, 0, 0, 255}
	redSolids := func() []string {
		var ps []string
		v.Root().WalkDown(func(k xyz.Node) bool {
			if sld, ok := k.(*xyz.Solid); ok && sld.Material.Color == red {
				ps = append(ps, sld.Path())
			}
			return xyz.Continue
		})
		return ps
	}
	ctx := context.Background()
	c := &customize.Customization{FabricColor: "#1a237e", LiningColor: "#aa0000", LiningMeshType: customize.FullLined}
	require.NoError(t, v.Update(ctx, c))
	v.Wait()
	assert.Len(t, redSolids(), 2)

	c.LiningMeshType = customize.Unlined
	require.NoError(t, v.Update(ctx, c))
	v.Wait()
	assert.Empty(t, redSolids())
	assert.NotContains(t, v.Parts(), registry.Slot("fullyLined"))

	c.LiningMeshType = customize.FullLined
	require.NoError(t, v.Update(ctx, c))
	v.Wait()
	assert.Len(t, redSolids(), 2)

	c.LiningMeshType = customize.HalfLined
	require.NoError(t, v.Update(ctx, c))
	v.Wait()
	assert.Equal(t, []string{"jacket/halfLining/Halfed-lining/LiningCurved"}, redSolids())
}
