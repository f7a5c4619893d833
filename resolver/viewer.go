// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolver assembles garments: a [Viewer] turns each
// customization into a manifest of parts, loads the parts that
// changed, attaches them to its scene graph, and paints them.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/tailor/base/errors"
	"cogentcore.org/tailor/base/plan"
	"cogentcore.org/tailor/customize"
	"cogentcore.org/tailor/registry"
	"cogentcore.org/tailor/xyz"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrIncomplete is returned when a priority part of a configuration
	// could not be loaded. The viewer hides its garment until the next
	// successful update.
	ErrIncomplete = errors.New("could not build this configuration")

	// ErrSuperseded is returned by an update overtaken by a later one.
	ErrSuperseded = errors.New("update superseded")

	// ErrClosed is returned by updates of a closed viewer.
	ErrClosed = errors.New("viewer closed")
)

// Loader loads part assets. Each call must return a graph that the
// caller owns. [assets.Cache] is the standard implementation.
type Loader interface {
	Load(ctx context.Context, path string) (*xyz.Group, error)
}

// Viewer is the garment assembly of one viewer instance, such as a
// configurator page or a websocket connection. Updates may be called
// concurrently; the latest one wins.
//
// The callbacks are called with the viewer locked, in order, and must
// not call methods of the viewer.
type Viewer struct {
	// Registry resolves customizations into manifests.
	Registry *registry.Registry

	// Garment is the name of the garment.
	Garment string

	// Loader loads the parts.
	Loader Loader

	// Applier paints the parts.
	Applier *customize.Applier

	// OnManifestReady is called when all priority parts of a manifest
	// are attached, before they are painted.
	OnManifestReady func(m *registry.Manifest)

	// OnPaintApplied is called after the garment or a newly
	// attached secondary part is painted.
	OnPaintApplied func(rep *customize.Report)

	// OnStateChanged is called when the state changes.
	OnStateChanged func(st States, err error)

	mu       sync.Mutex
	root     *xyz.Group
	manifest *registry.Manifest
	cust     customize.Customization
	state    States
	err      error
	closed   bool

	// gen is the generation of the latest update.
	gen int

	// current is the latest transition.
	current *transition

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// transition is one update of a viewer.
type transition struct {
	gen int

	// ctx is the context of the priority loads.
	ctx    context.Context
	cancel context.CancelFunc

	// bg is the context of the secondary loads, canceled when the
	// transition is superseded or fails.
	bg       context.Context
	bgCancel context.CancelFunc

	// ready is closed when the priority parts are attached.
	ready chan struct{}
}

func (t *transition) stop() {
	t.cancel()
	t.bgCancel()
}

// NewViewer returns a new viewer of the given garment.
func NewViewer(reg *registry.Registry, garment string, loader Loader) (*Viewer, error) {
	if _, err := reg.Garment(garment); err != nil {
		return nil, err
	}
	v := &Viewer{Registry: reg, Garment: garment, Loader: loader, Applier: customize.NewApplier()}
	v.root = xyz.NewGroup(nil, garment)
	v.ctx, v.cancel = context.WithCancel(context.Background())
	return v, nil
}

// Root returns the root of the scene graph. It must only be
// read while no update is running, such as after [Viewer.Wait].
func (v *Viewer) Root() *xyz.Group {
	return v.root
}

// State returns the current state and, if Failed, the error.
func (v *Viewer) State() (States, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.err
}

// Manifest returns the manifest of the attached configuration,
// or nil before the first successful update.
func (v *Viewer) Manifest() *registry.Manifest {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.manifest
}

// Parts returns the attached parts by slot.
func (v *Viewer) Parts() map[registry.Slot]string {
	v.mu.Lock()
	defer v.mu.Unlock()
	ps := make(map[registry.Slot]string)
	for _, pt := range v.parts() {
		ps[pt.Slot] = pt.Path
	}
	return ps
}

// Update changes the configuration to the given customization. It
// returns when the priority parts are attached and painted; secondary
// parts are attached as they arrive, see [Viewer.Wait]. Slots that are
// unchanged keep their parts, so a change of colors only repaints.
//
// It returns [ErrSuperseded] if a later update started before it was
// done, and an error wrapping [ErrIncomplete] if a priority part failed
// to load, in which case the viewer is Failed. If ctx ends before the
// priority parts are loaded, the viewer returns to Idle with ctx.Err()
// when its scene is unchanged, and is Failed otherwise.
func (v *Viewer) Update(ctx context.Context, c *customize.Customization) error {
	if c == nil {
		c = &customize.Customization{}
	}
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	m, err := v.Registry.Resolve(v.Garment, c)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	t := v.begin(ctx)
	prev := v.cust
	v.cust = *c
	attached := v.parts()
	v.setState(Resolving, nil)
	detached := false
	for s := range attached {
		if _, ok := m.Entry(s); !ok {
			v.detach(s)
			detached = true
		}
	}

	var priority []registry.Entry
	for _, e := range m.Entries() {
		pt := attached[e.Slot]
		if pt != nil && pt.Path == e.Path {
			continue
		}
		if e.Priority {
			priority = append(priority, e)
		} else {
			v.loadSecondary(t, e)
		}
	}
	v.mu.Unlock()

	defer t.cancel()

	loaded := make([]*xyz.Group, len(priority))
	g, gctx := errgroup.WithContext(t.ctx)
	for i, e := range priority {
		g.Go(func() error {
			gp, err := v.Loader.Load(gctx, e.Path)
			if err != nil {
				return err
			}
			loaded[i] = gp
			return nil
		})
	}
	err = g.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if t.gen != v.gen || v.closed {
		disposeAll(loaded)
		return ErrSuperseded
	}
	if err != nil {
		disposeAll(loaded)
		t.bgCancel()
		if ctx.Err() != nil && !detached && !v.root.Invisible {
			// the scene still shows the previous configuration
			v.cust = prev
			v.setState(Idle, nil)
			return ctx.Err()
		}
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		err = fmt.Errorf("%w: %w", ErrIncomplete, err)
		slog.Error("resolver: priority part failed", "garment", v.Garment, "style", m.Style, "err", err)
		v.root.Invisible = true
		v.setState(Failed, err)
		return err
	}
	v.attach(m, priority, loaded)
	close(t.ready)
	v.manifest = m
	v.root.Invisible = false
	if v.OnManifestReady != nil {
		v.OnManifestReady(m)
	}
	rep := v.Applier.Apply(v.root, &v.cust)
	if v.OnPaintApplied != nil {
		v.OnPaintApplied(rep)
	}
	v.setState(Idle, nil)
	return nil
}

// begin starts a new transition, superseding the current one.
// The viewer must be locked.
func (v *Viewer) begin(ctx context.Context) *transition {
	if v.current != nil {
		v.current.stop()
	}
	v.gen++
	t := &transition{gen: v.gen, ready: make(chan struct{})}
	t.ctx, t.cancel = context.WithCancel(ctx)
	t.bg, t.bgCancel = context.WithCancel(v.ctx)
	v.current = t
	return t
}

// loadSecondary starts the background load of a secondary part.
// The part is attached once the priority parts are. The viewer must be locked.
func (v *Viewer) loadSecondary(t *transition, e registry.Entry) {
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		gp, err := v.Loader.Load(t.bg, e.Path)
		if err == nil {
			select {
			case <-t.ready:
			case <-t.bg.Done():
				xyz.Dispose(gp)
				return
			}
		}
		v.mu.Lock()
		defer v.mu.Unlock()
		if t.gen != v.gen || v.closed || t.bg.Err() != nil {
			if gp != nil {
				xyz.Dispose(gp)
			}
			return
		}
		if err != nil {
			errors.Log(fmt.Errorf("resolver: secondary part %s (%s): %w", e.Slot, e.Path, err))
			v.detach(e.Slot)
			return
		}
		pt := v.replace(e, gp)
		rep := v.Applier.Apply(pt, &v.cust)
		if v.OnPaintApplied != nil {
			v.OnPaintApplied(rep)
		}
	}()
}

// attach swaps in the loaded priority parts and removes the parts of
// slots that are not in the manifest. Attached parts of other slots are
// kept, including secondary parts waiting for their replacement.
// The viewer must be locked.
func (v *Viewer) attach(m *registry.Manifest, priority []registry.Entry, loaded []*xyz.Group) {
	attached := v.parts()
	var target []*Part
	for _, e := range m.Entries() {
		if i := indexOf(priority, e.Slot); i >= 0 {
			target = append(target, NewPart(e, loaded[i]))
		} else if pt := attached[e.Slot]; pt != nil {
			target = append(target, pt)
		}
	}
	v.sync(target)
}

// replace attaches a secondary part in place of the part in its slot,
// keeping the manifest order. The viewer must be locked.
func (v *Viewer) replace(e registry.Entry, gp *xyz.Group) *Part {
	attached := v.parts()
	npt := NewPart(e, gp)
	var target []*Part
	for _, me := range v.manifest.Entries() {
		if me.Slot == e.Slot {
			target = append(target, npt)
		} else if pt := attached[me.Slot]; pt != nil {
			target = append(target, pt)
		}
	}
	v.sync(target)
	return npt
}

// detach removes the part in the given slot. The viewer must be locked.
func (v *Viewer) detach(s registry.Slot) {
	var target []*Part
	for _, k := range v.root.Children {
		if pt, ok := k.(*Part); ok && pt.Slot != s {
			target = append(target, pt)
		}
	}
	v.sync(target)
}

// sync makes the parts of the root the target parts, disposing the
// parts that are no longer wanted.
func (v *Viewer) sync(target []*Part) {
	plan.Update(&v.root.Children, len(target),
		func(i int) string { return target[i].PlanName() },
		func(name string, i int) (xyz.Node, bool) {
			target[i].Parent = v.root
			return target[i], true
		},
		func(k xyz.Node) {
			k.AsNode().Parent = nil
			xyz.Dispose(k)
		})
}

// parts returns the attached parts by slot. The viewer must be locked.
func (v *Viewer) parts() map[registry.Slot]*Part {
	ps := make(map[registry.Slot]*Part, len(v.root.Children))
	for _, k := range v.root.Children {
		if pt, ok := k.(*Part); ok {
			ps[pt.Slot] = pt
		}
	}
	return ps
}

func (v *Viewer) setState(st States, err error) {
	if v.state == st && v.err == err {
		return
	}
	v.state, v.err = st, err
	if v.OnStateChanged != nil {
		v.OnStateChanged(st, err)
	}
}

// Wait waits for the background loads of secondary parts started so far.
func (v *Viewer) Wait() {
	v.wg.Wait()
}

// Close cancels all pending loads and disposes the parts of the viewer.
func (v *Viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	if v.current != nil {
		v.current.stop()
	}
	v.cancel()
	v.mu.Unlock()
	v.wg.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sync(nil)
	v.manifest = nil
}

func indexOf(es []registry.Entry, s registry.Slot) int {
	for i, e := range es {
		if e.Slot == s {
			return i
		}
	}
	return -1
}

func disposeAll(gps []*xyz.Group) {
	for _, gp := range gps {
		if gp != nil {
			xyz.Dispose(gp)
		}
	}
}
