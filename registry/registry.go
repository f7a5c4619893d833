// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry provides the part registry: the single source of
// truth for which asset files make up each garment configuration,
// and the resolution of style selections into a [Manifest].
//
// The registry data is a YAML document. The default data is embedded
// in the package; a different file can be loaded with [Open] and
// reloaded on change with [Watch].
package registry

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sort"
	"sync"

	"cogentcore.org/tailor/base/errors"
	"cogentcore.org/tailor/base/keylist"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultData []byte

// registryData is the YAML form of the registry.
type registryData struct {
	Garments []garmentData `yaml:"garments"`
}

type garmentData struct {
	Name       string          `yaml:"name"`
	Primary    string          `yaml:"primary"`
	Default    string          `yaml:"default"`
	Priority   []Slot          `yaml:"priority"`
	Secondary  []Slot          `yaml:"secondary"`
	Base       map[Slot]string `yaml:"base"`
	Styles     []styleData     `yaml:"styles"`
	Selections []selectionData `yaml:"selections"`
}

type styleData struct {
	Name    string          `yaml:"name"`
	Aliases []string        `yaml:"aliases"`
	Parts   map[Slot]string `yaml:"parts"`
}

type selectionData struct {
	Key     string            `yaml:"key"`
	Aliases map[string]string `yaml:"aliases"`
	Values  []valueData       `yaml:"values"`
}

type valueData struct {
	Value string          `yaml:"value"`
	Set   map[Slot]string `yaml:"set"`
	Clear []Slot          `yaml:"clear"`
}

// Registry holds the garments. It is safe for concurrent use;
// the garments can be replaced as a whole by [Registry.Replace].
type Registry struct {
	mu       sync.RWMutex
	garments *keylist.List[string, *Garment]

	// logged records the configuration errors already logged, by [logKey].
	logged sync.Map
}

// logKey identifies configuration errors that are logged once: all
// unknown garments share one key, and unknown styles and values are
// keyed by their garment and selection key.
type logKey struct {
	garment, key string
}

func errorKey(err error) logKey {
	ce, ok := err.(*ConfigError)
	switch {
	case !ok:
		return logKey{key: err.Error()}
	case ce.Key == "":
		return logKey{}
	}
	return logKey{ce.Garment, ce.Key}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded data.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = errors.Must1(Parse(defaultData))
	})
	return defaultRegistry
}

// Parse builds and validates a registry from YAML data.
func Parse(data []byte) (*Registry, error) {
	var rd registryData
	if err := yaml.Unmarshal(data, &rd); err != nil {
		return nil, fmt.Errorf("registry: parsing: %w", err)
	}
	gl, err := build(&rd)
	if err != nil {
		return nil, err
	}
	r := &Registry{garments: gl}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open builds and validates a registry from the given YAML file.
func Open(fname string) (*Registry, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	r, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return r, nil
}

// build converts the YAML form into garments, reporting duplicate names.
func build(rd *registryData) (*keylist.List[string, *Garment], error) {
	var errs []error
	gl := keylist.New[string, *Garment]()
	for _, gd := range rd.Garments {
		g := &Garment{
			Name:           gd.Name,
			Primary:        gd.Primary,
			Default:        gd.Default,
			PrioritySlots:  gd.Priority,
			SecondarySlots: gd.Secondary,
			Base:           gd.Base,
			slotIndex:      map[Slot]int{},
			styleAlias:     map[string]string{},
		}
		for i, s := range g.Slots() {
			if _, has := g.slotIndex[s]; has {
				errs = append(errs, fmt.Errorf("%s: slot %q is declared more than once", g.Name, s))
				continue
			}
			g.slotIndex[s] = i
		}
		for _, sd := range gd.Styles {
			st := &Style{Name: sd.Name, Aliases: sd.Aliases, Parts: sd.Parts}
			if err := g.Styles.Add(sd.Name, st); err != nil {
				errs = append(errs, fmt.Errorf("%s: duplicate style %q", g.Name, sd.Name))
				continue
			}
			for _, a := range append([]string{sd.Name}, sd.Aliases...) {
				na := normalize(a)
				if prev, has := g.styleAlias[na]; has && prev != sd.Name {
					errs = append(errs, fmt.Errorf("%s: style alias %q used by %q and %q", g.Name, a, prev, sd.Name))
					continue
				}
				g.styleAlias[na] = sd.Name
			}
		}
		for _, sld := range gd.Selections {
			sl := &Selection{Key: sld.Key, Aliases: sld.Aliases}
			if err := g.Selections.Add(sld.Key, sl); err != nil {
				errs = append(errs, fmt.Errorf("%s: duplicate selection key %q", g.Name, sld.Key))
				continue
			}
			for _, vd := range sld.Values {
				if err := sl.Values.Add(vd.Value, g.overrides(vd)); err != nil {
					errs = append(errs, fmt.Errorf("%s: %s: duplicate value %q", g.Name, sld.Key, vd.Value))
				}
			}
		}
		if err := gl.Add(g.Name, g); err != nil {
			errs = append(errs, fmt.Errorf("duplicate garment %q", g.Name))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("registry: %w", errors.Join(errs...))
	}
	return gl, nil
}

// overrides returns the overrides of a selection value in slot
// declaration order, unknown slots last in name order.
func (g *Garment) overrides(vd valueData) []Override {
	var ovs []Override
	for s, p := range vd.Set {
		ovs = append(ovs, Override{Slot: s, Path: p})
	}
	for _, s := range vd.Clear {
		ovs = append(ovs, Override{Slot: s, Clear: true})
	}
	sort.SliceStable(ovs, func(i, j int) bool {
		ii, iok := g.slotIndex[ovs[i].Slot]
		ji, jok := g.slotIndex[ovs[j].Slot]
		switch {
		case iok && jok:
			if ii != ji {
				return ii < ji
			}
			return ovs[i].Clear && !ovs[j].Clear
		case iok != jok:
			return iok
		}
		return ovs[i].Slot < ovs[j].Slot
	})
	return ovs
}

// Garment returns the garment with the given name.
func (r *Registry) Garment(name string) (*Garment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.garments.AtTry(name)
	if !ok {
		return nil, &ConfigError{Garment: name, Err: ErrUnknownGarment}
	}
	return g, nil
}

// Garments returns the garment names in declaration order.
func (r *Registry) Garments() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.garments.Keys)
}

// Resolve returns the manifest of the given garment for the given
// selections. Configuration errors are logged the first time an
// unknown value occurs for each garment and selection key.
func (r *Registry) Resolve(garment string, sel Selections) (*Manifest, error) {
	g, err := r.Garment(garment)
	if err == nil {
		var m *Manifest
		m, err = g.Resolve(sel)
		if err == nil {
			return m, nil
		}
	}
	if _, seen := r.logged.LoadOrStore(errorKey(err), true); !seen {
		slog.Error("registry: configuration error", "err", err)
	}
	return nil, err
}

// Replace replaces the garments with those of the given registry.
// Garments already handed out remain valid.
func (r *Registry) Replace(o *Registry) {
	o.mu.RLock()
	gl := o.garments
	o.mu.RUnlock()
	r.mu.Lock()
	r.garments = gl
	r.mu.Unlock()
	r.logged.Clear()
}
