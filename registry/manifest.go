// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/tailor/base/keylist"
)

// Slot is a named attachment point of a garment, such as
// "frontBottom" or "sleeve", occupied by at most one part.
type Slot string

// Entry is one slot of a [Manifest] with the asset path occupying it.
type Entry struct {
	Slot     Slot   `json:"slot"`
	Path     string `json:"path"`
	Priority bool   `json:"priority"`
}

// Manifest is the set of parts for one garment configuration: an ordered
// mapping from slot to asset path. A slot that is absent is empty.
// Manifests are computed fresh for every selection change and are
// not modified afterwards.
type Manifest struct {
	// Garment is the name of the garment.
	Garment string

	// Style is the canonical name of the primary style.
	Style string

	entries keylist.List[Slot, Entry]
}

// Len returns the number of occupied slots.
func (m *Manifest) Len() int {
	return m.entries.Len()
}

// Entries returns the occupied slots, priority slots first,
// each group in declaration order.
func (m *Manifest) Entries() []Entry {
	return append([]Entry(nil), m.entries.Values...)
}

// Entry returns the entry for the given slot, and false if it is empty.
func (m *Manifest) Entry(s Slot) (Entry, bool) {
	return m.entries.AtTry(s)
}

// Path returns the asset path in the given slot, or "" if it is empty.
func (m *Manifest) Path(s Slot) string {
	return m.entries.At(s).Path
}

// Priority returns the priority entries.
func (m *Manifest) Priority() []Entry {
	return m.filter(true)
}

// Secondary returns the secondary entries.
func (m *Manifest) Secondary() []Entry {
	return m.filter(false)
}

func (m *Manifest) filter(priority bool) []Entry {
	var es []Entry
	for _, e := range m.entries.Values {
		if e.Priority == priority {
			es = append(es, e)
		}
	}
	return es
}

// Equal returns whether both manifests have the same entries.
func (m *Manifest) Equal(o *Manifest) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.Garment != o.Garment || m.entries.Len() != o.entries.Len() {
		return false
	}
	for i, e := range m.entries.Values {
		if o.entries.Values[i] != e {
			return false
		}
	}
	return true
}

func (m *Manifest) set(e Entry) {
	m.entries.Set(e.Slot, e)
}

func (m *Manifest) clear(s Slot) {
	m.entries.DeleteByKey(s)
}

// order sorts the entries by the declaration order of their slots.
func (m *Manifest) order(index map[Slot]int) {
	es := slices.Clone(m.entries.Values)
	slices.SortStableFunc(es, func(a, b Entry) int {
		return cmp.Compare(index[a.Slot], index[b.Slot])
	})
	m.entries.Reset()
	for _, e := range es {
		m.set(e)
	}
}

type manifestJSON struct {
	Garment string  `json:"garment"`
	Style   string  `json:"style"`
	Entries []Entry `json:"entries"`
}

func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(manifestJSON{Garment: m.Garment, Style: m.Style, Entries: m.Entries()})
}

func (m *Manifest) UnmarshalJSON(b []byte) error {
	var mj manifestJSON
	if err := json.Unmarshal(b, &mj); err != nil {
		return err
	}
	m.Garment = mj.Garment
	m.Style = mj.Style
	m.entries.Reset()
	for _, e := range mj.Entries {
		m.set(e)
	}
	return nil
}

func (m *Manifest) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", m.Garment, m.Style)
	for _, e := range m.entries.Values {
		kind := "secondary"
		if e.Priority {
			kind = "priority"
		}
		fmt.Fprintf(&b, "  %-22s %-9s %s\n", e.Slot, kind, e.Path)
	}
	return b.String()
}
