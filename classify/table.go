// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package classify

import (
	"fmt"

	"cogentcore.org/tailor/base/keylist"
)

// Entry is one row of a classification table.
type Entry struct {
	Name     string
	Category Category
}

// Table is an ordered table of mesh names and their categories.
// Order matters for substring matching between keys of equal length.
type Table = keylist.List[string, Category]

// NewTable returns a table with the given entries in order.
// Names are matched in lower case. Duplicate names are an error.
func NewTable(entries ...Entry) (*Table, error) {
	t := keylist.New[string, Category]()
	for _, e := range entries {
		if err := t.Add(normalize(e.Name), e.Category); err != nil {
			return nil, fmt.Errorf("classify: duplicate table name %q", e.Name)
		}
	}
	return t, nil
}

// DefaultEntries are the mesh names used by the garment assets.
var DefaultEntries = []Entry{
	{"lapel_upper", UpperLapel},
	{"upper_lapel", UpperLapel},
	{"upper_collar", UpperLapel},
	{"cl3_upper", UpperLapel},
	{"uppercl3", UpperLapel},
	{"cl1", UpperLapel},
	{"cl2", UpperLapel},
	{"cl3", UpperLapel},
	{"collar", UpperLapel},
	{"lapel", UpperLapel},

	{"lapel_lower", LowerLapel},
	{"lower_lapel", LowerLapel},
	{"lower_collar", LowerLapel},
	{"cl3_lower", LowerLapel},
	{"lowercl3", LowerLapel},

	{"front_body", MainFabric},
	{"back_body", MainFabric},
	{"body", MainFabric},
	{"sleeve", MainFabric},
	{"center_vent", MainFabric},
	{"side_vent", MainFabric},
	{"novent", MainFabric},
	{"vent", MainFabric},
	{"curved", MainFabric},
	{"straight", MainFabric},
	{"front_bottom", MainFabric},
	{"front_pocket", MainFabric},
	{"chest_pocket", MainFabric},
	{"chestpocket", MainFabric},
	{"chestpatch", MainFabric},
	{"pocket", MainFabric},
	{"chest", MainFabric},
	{"patch", MainFabric},
	{"flap", MainFabric},
	{"welt", MainFabric},
	{"pk-1", MainFabric},
	{"pk-9", MainFabric},
	{"pk1", MainFabric},
	{"pk7", MainFabric},
	{"pk9", MainFabric},
	{"pk", MainFabric},
	{"style", MainFabric},
	{"pleat", MainFabric},
	{"waistband", MainFabric},
	{"beltloop", MainFabric},
	{"beltloops", MainFabric},
	{"buttonsideadjusters", MainFabric},
	{"adjuster", MainFabric},
	{"cuff", MainFabric},
	{"slanted", MainFabric},
	{"jeans", MainFabric},

	{"button", Buttons},
	{"front_button", Buttons},
	{"sleeve_button", Buttons},
	{"working_button", Buttons},
	{"last_button", Buttons},
	{"last_standard", Buttons},
	{"standard", Buttons},
	{"s4", Buttons},
	{"s14", Buttons},
	{"s14_circle", Buttons},
	{"circle", Buttons},
}
