// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/tailor/base/keylist"
)

// Selections provides the current value of each selection key.
// An empty value means that nothing is selected for the key.
type Selections interface {
	Selection(key string) string
}

// Map is a [Selections] backed by a map.
type Map map[string]string

func (m Map) Selection(key string) string { return m[key] }

// Override is the effect of one selection value on one slot:
// either the slot is set to Path, or, if Clear is true, emptied.
type Override struct {
	Slot  Slot   `json:"slot"`
	Path  string `json:"path,omitempty"`
	Clear bool   `json:"clear,omitempty"`
}

// Style is a primary style of a garment, with the parts it places
// in its slots.
type Style struct {
	// Name is the canonical name of the style.
	Name string

	// Aliases are alternative names accepted for the style.
	Aliases []string

	// Parts maps slots to asset paths.
	Parts map[Slot]string
}

// Selection is a secondary choice of a garment, such as the
// pocket style, with the slot overrides for each of its values.
type Selection struct {
	// Key is the selection key, as used in [Selections].
	Key string

	// Aliases maps alternative value names to canonical values.
	Aliases map[string]string

	// Values maps each canonical value to its overrides, in value
	// declaration order.
	Values keylist.List[string, []Override]
}

// Canonical returns the canonical form of the given value,
// resolving aliases.
func (sl *Selection) Canonical(value string) string {
	if c, ok := sl.Aliases[value]; ok {
		return c
	}
	return value
}

// Garment is the registry data for one garment: its slots,
// primary styles, and secondary selections. It is immutable
// once built and safe for concurrent use.
type Garment struct {
	// Name is the garment name, such as "jacket".
	Name string

	// Primary is the selection key that picks the style.
	Primary string

	// Default is the style used when no primary style is selected.
	Default string

	// PrioritySlots must all be filled before the garment can be shown.
	PrioritySlots []Slot

	// SecondarySlots are loaded after the priority slots and may be empty.
	SecondarySlots []Slot

	// Base are the secondary parts shared by all styles.
	Base map[Slot]string

	// Styles are the primary styles, in declaration order.
	Styles keylist.List[string, *Style]

	// Selections are the secondary choices, in the order they are applied.
	Selections keylist.List[string, *Selection]

	slotIndex  map[Slot]int
	styleAlias map[string]string
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsPriority returns whether the given slot is a priority slot.
func (g *Garment) IsPriority(s Slot) bool {
	return slices.Contains(g.PrioritySlots, s)
}

// Slots returns all slots, priority slots first, in declaration order.
func (g *Garment) Slots() []Slot {
	return append(slices.Clone(g.PrioritySlots), g.SecondarySlots...)
}

// Style returns the style for the given name or alias.
func (g *Garment) Style(name string) (*Style, error) {
	if st, ok := g.Styles.AtTry(name); ok {
		return st, nil
	}
	if c, ok := g.styleAlias[normalize(name)]; ok {
		return g.Styles.At(c), nil
	}
	return nil, &ConfigError{Garment: g.Name, Key: g.Primary, Value: name, Err: ErrUnknownStyle}
}

// ManifestFor returns the base manifest for the given primary style:
// its priority parts and the secondary parts shared by all styles,
// overridden by the secondary parts of the style itself.
func (g *Garment) ManifestFor(style string) (*Manifest, error) {
	st, err := g.Style(style)
	if err != nil {
		return nil, err
	}
	m := &Manifest{Garment: g.Name, Style: st.Name}
	for _, s := range g.PrioritySlots {
		m.set(Entry{Slot: s, Path: st.Parts[s], Priority: true})
	}
	for _, s := range g.SecondarySlots {
		p, ok := st.Parts[s]
		if !ok {
			p, ok = g.Base[s]
		}
		if ok && p != "" {
			m.set(Entry{Slot: s, Path: p})
		}
	}
	return m, nil
}

// SlotOverride returns the slot overrides for the given value
// (or alias) of the given selection key.
func (g *Garment) SlotOverride(key, value string) ([]Override, error) {
	sl, ok := g.Selections.AtTry(key)
	if !ok {
		return nil, &ConfigError{Garment: g.Name, Key: key, Value: value, Err: ErrUnknownSelection}
	}
	ovs, ok := sl.Values.AtTry(sl.Canonical(value))
	if !ok {
		return nil, &ConfigError{Garment: g.Name, Key: key, Value: value, Err: ErrUnknownSelection}
	}
	return slices.Clone(ovs), nil
}

// Resolve returns the manifest for the given selections: the base
// manifest of the selected primary style (or the default style),
// with the overrides of each selected value applied in the declared
// selection order. Selection keys that the garment does not have are
// ignored; unknown values of known keys are errors.
func (g *Garment) Resolve(sel Selections) (*Manifest, error) {
	style := sel.Selection(g.Primary)
	if style == "" {
		style = g.Default
	}
	m, err := g.ManifestFor(style)
	if err != nil {
		return nil, err
	}
	for _, key := range g.Selections.Keys {
		v := sel.Selection(key)
		if v == "" {
			continue
		}
		ovs, err := g.SlotOverride(key, v)
		if err != nil {
			return nil, err
		}
		for _, ov := range ovs {
			if ov.Clear {
				m.clear(ov.Slot)
				continue
			}
			m.set(Entry{Slot: ov.Slot, Path: ov.Path, Priority: g.IsPriority(ov.Slot)})
		}
	}
	m.order(g.slotIndex)
	return m, nil
}

// Writers returns, for each slot, the selection keys whose values
// set or clear it, in application order. Slots with more than one
// writer take the value of the last selection that is made.
func (g *Garment) Writers() map[Slot][]string {
	w := make(map[Slot][]string)
	for _, sl := range g.Selections.Values {
		seen := map[Slot]bool{}
		for _, ovs := range sl.Values.Values {
			for _, ov := range ovs {
				if !seen[ov.Slot] {
					seen[ov.Slot] = true
					w[ov.Slot] = append(w[ov.Slot], sl.Key)
				}
			}
		}
	}
	return w
}

// Paths returns every asset path the garment can place in a slot,
// sorted and without duplicates.
func (g *Garment) Paths() []string {
	var ps []string
	for _, p := range g.Base {
		ps = append(ps, p)
	}
	for _, st := range g.Styles.Values {
		for _, p := range st.Parts {
			ps = append(ps, p)
		}
	}
	for _, sl := range g.Selections.Values {
		for _, ovs := range sl.Values.Values {
			for _, ov := range ovs {
				if !ov.Clear {
					ps = append(ps, ov.Path)
				}
			}
		}
	}
	slices.Sort(ps)
	return slices.Compact(ps)
}

func (g *Garment) String() string {
	return fmt.Sprintf("%s (%d styles, %d selections)", g.Name, g.Styles.Len(), g.Selections.Len())
}
