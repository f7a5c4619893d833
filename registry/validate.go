// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"
	"slices"

	"cogentcore.org/tailor/base/errors"
)

// Validate checks the consistency of the registry data, returning
// all of the problems found joined into one error:
//   - every garment has a primary key, styles, and a valid default style
//   - every style fills every priority slot and only declared slots
//   - base parts are only for secondary slots
//   - no selection key is the primary key
//   - value aliases refer to existing values and do not shadow them
//   - every override targets a declared secondary slot, with a path
//     unless it clears the slot, and no value both sets and clears a slot
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var errs []error
	for _, g := range r.garments.Values {
		errs = append(errs, g.validate()...)
	}
	if len(errs) > 0 {
		return fmt.Errorf("registry: invalid: %w", errors.Join(errs...))
	}
	return nil
}

func (g *Garment) validate() []error {
	var errs []error
	fail := func(format string, a ...any) {
		errs = append(errs, fmt.Errorf(g.Name+": "+format, a...))
	}
	if g.Name == "" {
		fail("garment has no name")
	}
	if g.Primary == "" {
		fail("no primary selection key")
	}
	if len(g.PrioritySlots) == 0 {
		fail("no priority slots")
	}
	if g.Styles.Len() == 0 {
		fail("no styles")
	}
	if !g.Styles.Has(g.Default) {
		fail("default style %q is not a style", g.Default)
	}
	for _, s := range g.PrioritySlots {
		if slices.Contains(g.SecondarySlots, s) {
			fail("slot %q is both priority and secondary", s)
		}
	}
	for s := range g.Base {
		if !slices.Contains(g.SecondarySlots, s) {
			fail("base part for %q which is not a secondary slot", s)
		}
	}
	for _, st := range g.Styles.Values {
		for _, s := range g.PrioritySlots {
			if st.Parts[s] == "" {
				fail("style %q does not fill priority slot %q", st.Name, s)
			}
		}
		for s := range st.Parts {
			if _, ok := g.slotIndex[s]; !ok {
				fail("style %q fills undeclared slot %q", st.Name, s)
			}
		}
	}
	for _, sl := range g.Selections.Values {
		if sl.Key == g.Primary {
			fail("selection key %q is the primary key", sl.Key)
		}
		for a, v := range sl.Aliases {
			if !sl.Values.Has(v) {
				fail("%s: alias %q refers to unknown value %q", sl.Key, a, v)
			}
			if sl.Values.Has(a) {
				fail("%s: alias %q shadows a value", sl.Key, a)
			}
		}
		for i, ovs := range sl.Values.Values {
			val := sl.Values.Keys[i]
			set := map[Slot]bool{}
			cleared := map[Slot]bool{}
			for _, ov := range ovs {
				switch {
				case !slices.Contains(g.SecondarySlots, ov.Slot):
					fail("%s=%s: override of slot %q which is not a secondary slot", sl.Key, val, ov.Slot)
				case ov.Clear:
					cleared[ov.Slot] = true
				case ov.Path == "":
					fail("%s=%s: empty path for slot %q", sl.Key, val, ov.Slot)
				default:
					set[ov.Slot] = true
				}
				if set[ov.Slot] && cleared[ov.Slot] {
					fail("%s=%s: slot %q is both set and cleared", sl.Key, val, ov.Slot)
				}
			}
		}
	}
	return errs
}
