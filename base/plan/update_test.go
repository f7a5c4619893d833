// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nameObj struct {
	name string
}

func (n *nameObj) PlanName() string {
	return n.name
}

func assertNames(t *testing.T, names []string, items []*nameObj) {
	if len(names) != len(items) {
		t.Error("lengths of lists are not the same:", len(names), len(items))
		return
	}
	for i, nm := range names {
		inm := items[i].PlanName()
		if nm != inm {
			t.Error("item at index:", i, "name mismatch, should be:", nm, "was:", inm)
		}
	}
}

func newObj(name string, i int) (*nameObj, bool) {
	return &nameObj{name: name}, true
}

func TestUpdate(t *testing.T) {
	var s []*nameObj

	names1 := []string{"a", "b", "c"}
	changed := Update(&s, len(names1), func(i int) string { return names1[i] }, newObj, nil)
	assertNames(t, names1, s)
	assert.Equal(t, true, changed)
	first := s[0]

	names2 := []string{"a", "aa", "b", "c"}
	changed = Update(&s, len(names2), func(i int) string { return names2[i] }, newObj, nil)
	assertNames(t, names2, s)
	assert.Equal(t, true, changed)
	assert.Same(t, first, s[0])

	var destroyed []string
	destroy := func(e *nameObj) { destroyed = append(destroyed, e.name) }

	names3 := []string{"aa", "bb", "c"}
	changed = Update(&s, len(names3), func(i int) string { return names3[i] }, newObj, destroy)
	assertNames(t, names3, s)
	assert.Equal(t, true, changed)
	assert.ElementsMatch(t, []string{"a", "b"}, destroyed)

	changed = Update(&s, len(names3), func(i int) string { return names3[i] }, newObj, destroy)
	assertNames(t, names3, s)
	assert.Equal(t, false, changed)

	names4 := []string{"c", "aa"}
	changed = Update(&s, len(names4), func(i int) string { return names4[i] }, newObj, nil)
	assertNames(t, names4, s)
	assert.Equal(t, true, changed)
}

func TestUpdateSkip(t *testing.T) {
	var s []*nameObj
	names := []string{"a", "pending", "c"}
	skipPending := func(name string, i int) (*nameObj, bool) {
		if name == "pending" {
			return nil, false
		}
		return &nameObj{name: name}, true
	}
	Update(&s, len(names), func(i int) string { return names[i] }, skipPending, nil)
	assertNames(t, []string{"a", "c"}, s)

	changed := Update(&s, len(names), func(i int) string { return names[i] }, newObj, nil)
	assert.True(t, changed)
	assertNames(t, names, s)
}
