// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Decoder parses 3D object file(s) and imports them into a Group.
// This interface is implemented by the different format-specific decoders,
// which register themselves in [Decoders].
type Decoder interface {
	// New returns a new instance of the decoder used for a specific decoding
	New() Decoder

	// Desc returns the description of this decoder
	Desc() string

	// SetFile sets the file name being used for decoding, which is needed
	// to resolve other files referenced by it, such as external buffers.
	SetFile(fname string)

	// Decode reads the given data and decodes it. Referenced files are
	// read from fsys, relative to the directory of the file set by SetFile.
	// fsys may be nil if the data is self-contained.
	Decode(r io.Reader, fsys fs.FS) error

	// SetGroup sets the group to contain the decoded objects.
	SetGroup(gp *Group)
}

// Decoders is the master list of decoders, indexed by the primary
// extension, including the dot, in lower case.
var Decoders = map[string]Decoder{}

// DecoderFor returns a new decoder instance for the given file name,
// based on its extension.
func DecoderFor(fname string) (Decoder, error) {
	ext := strings.ToLower(path.Ext(fname))
	dt, has := Decoders[ext]
	if !has {
		return nil, fmt.Errorf("xyz.DecoderFor: file extension: %v not found in Decoders list for file %v", ext, fname)
	}
	dec := dt.New()
	dec.SetFile(fname)
	return dec, nil
}

// Extensions returns the registered decoder extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(Decoders))
	for ext := range Decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ReadGroup reads object(s) from the given reader into a new group,
// using a decoder based on the extension of the given file name.
// The file name is not used to read the main data, but it is used
// for naming, decoder selection, and resolving referenced files in fsys.
func ReadGroup(fname string, r io.Reader, fsys fs.FS) (*Group, error) {
	dec, err := DecoderFor(fname)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(r, fsys); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fname, err)
	}
	gp := NewGroup(nil, path.Base(fname))
	gp.Source = fname
	dec.SetGroup(gp)
	return gp, nil
}

// OpenGroup opens object(s) from the given file in fsys into a new group.
func OpenGroup(fsys fs.FS, fname string) (*Group, error) {
	f, err := fsys.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGroup(fname, f, fsys)
}
