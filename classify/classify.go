// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify assigns a paint [Category] to mesh identifiers.
// Mesh names in the garment assets follow no strict scheme, so
// classification uses an explicit ordered list of rules, the first
// matching rule deciding:
//
//  1. lining: contains "lining", or is a reserved lining name
//  2. thread: contains "thread", "stitch" or "hole"
//  3. button: matches the button name pattern, e.g. "s4", "standard.002"
//  4. exact: the name is in the table
//  5. stripped: the name without trailing digits and separators is in the table
//  6. substring: the name contains a table name, longest table names first
//  7. reverse substring: a table name contains the name (at least 3 characters)
//
// Names that match no rule are [Unknown] and are not painted.
package classify

import (
	"cmp"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"cogentcore.org/tailor/base/errors"
)

// Rule is one classification rule.
type Rule struct {
	// Name identifies the rule in explanations.
	Name string

	// Match returns the category for the normalized name,
	// and whether the rule applies.
	Match func(id string) (Category, bool)
}

// LiningNames are mesh names that are lining without containing "lining".
var LiningNames = []string{"fullylined", "fully_lined", "halflined", "half_lined", "interior"}

// ThreadTokens are the substrings that mark a thread mesh.
var ThreadTokens = []string{"thread", "stitch", "hole"}

// ButtonPattern matches button mesh names, with optional numbered suffixes.
var ButtonPattern = regexp.MustCompile(`^(?:(?:front|sleeve|working|last)_)?(?:s4|s14_circle|s14|standard|button|circle)(?:[._-]?\d+)*$`)

// MinReverseLen is the minimum name length for reverse substring matching.
const MinReverseLen = 3

// Classifier classifies mesh names with an ordered rule list and a table.
// It is immutable once made and safe for concurrent use.
type Classifier struct {
	// Rules are applied in order; the first match decides.
	Rules []Rule

	// Table is the name table used by the table rules.
	Table *Table

	// byLen are the table names ordered longest first, then by table order.
	byLen []string
}

// New returns a classifier using the given table with the standard rules.
func New(table *Table) *Classifier {
	c := &Classifier{Table: table}
	c.byLen = slices.Clone(table.Keys)
	slices.SortStableFunc(c.byLen, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})
	c.Rules = []Rule{
		{"lining", matchLining},
		{"thread", matchThread},
		{"button", matchButton},
		{"exact", c.matchExact},
		{"stripped", c.matchStripped},
		{"substring", c.matchSubstring},
		{"reverse substring", c.matchReverse},
	}
	return c
}

var (
	defaultOnce       sync.Once
	defaultClassifier *Classifier
)

// Default returns the classifier for [DefaultEntries].
func Default() *Classifier {
	defaultOnce.Do(func() {
		defaultClassifier = New(errors.Must1(NewTable(DefaultEntries...)))
	})
	return defaultClassifier
}

// Classify classifies the given mesh name with the [Default] classifier.
func Classify(id string) Category {
	return Default().Classify(id)
}

// Classify returns the category of the given mesh name.
func (c *Classifier) Classify(id string) Category {
	cat, _ := c.Explain(id)
	return cat
}

// Explain returns the category of the given mesh name and the name
// of the rule that decided it, which is "" for [Unknown] names.
func (c *Classifier) Explain(id string) (Category, string) {
	nid := normalize(id)
	if nid != "" {
		for _, r := range c.Rules {
			if cat, ok := r.Match(nid); ok {
				return cat, r.Name
			}
		}
	}
	slog.Debug("classify: unknown mesh", "id", id)
	return Unknown, ""
}

// Validate checks that the table is consistent with the token rules:
// no table name is classified by a rule ahead of the table into a
// different category than the table gives it.
func (c *Classifier) Validate() error {
	var errs []error
	for i, name := range c.Table.Keys {
		want := c.Table.Values[i]
		for _, r := range c.Rules {
			cat, ok := r.Match(name)
			if !ok {
				continue
			}
			if cat != want {
				errs = append(errs, fmt.Errorf("classify: table name %q is %v but rule %q makes it %v", name, want, r.Name, cat))
			}
			break
		}
	}
	return errors.Join(errs...)
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func matchLining(id string) (Category, bool) {
	return Lining, strings.Contains(id, "lining") || slices.Contains(LiningNames, id)
}

func matchThread(id string) (Category, bool) {
	for _, tok := range ThreadTokens {
		if strings.Contains(id, tok) {
			return Thread, true
		}
	}
	return Unknown, false
}

func matchButton(id string) (Category, bool) {
	return Buttons, ButtonPattern.MatchString(id)
}

func (c *Classifier) matchExact(id string) (Category, bool) {
	return c.Table.AtTry(id)
}

// stripSuffix removes one trailing run of digits and the separators before it.
func stripSuffix(id string) string {
	s := strings.TrimRight(id, "0123456789")
	return strings.TrimRight(s, "._- ")
}

func (c *Classifier) matchStripped(id string) (Category, bool) {
	for s := stripSuffix(id); s != "" && s != id; s = stripSuffix(s) {
		if cat, ok := c.Table.AtTry(s); ok {
			return cat, true
		}
		id = s
	}
	return Unknown, false
}

func (c *Classifier) matchSubstring(id string) (Category, bool) {
	for _, key := range c.byLen {
		if strings.Contains(id, key) {
			return c.Table.At(key), true
		}
	}
	return Unknown, false
}

func (c *Classifier) matchReverse(id string) (Category, bool) {
	if len(id) < MinReverseLen {
		return Unknown, false
	}
	for _, key := range c.byLen {
		if strings.Contains(key, id) {
			return c.Table.At(key), true
		}
	}
	return Unknown, false
}
