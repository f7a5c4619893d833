// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"cogentcore.org/tailor/xyz"
	_ "cogentcore.org/tailor/xyz/gltf"
	"github.com/h2non/filetype"
	"github.com/klauspost/compress/zstd"
)

// ZstdExtension is the extension of zstd compressed asset files.
// The extension before it selects the decoder.
const ZstdExtension = ".zst"

// zdec is shared by all decodes; DecodeAll is safe for concurrent use.
var zdec, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))

// IsZstd returns whether the data is zstd compressed.
func IsZstd(b []byte) bool {
	kind, err := filetype.Archive(b)
	return err == nil && kind.Extension == "zst"
}

// Decompress returns the data decompressed if it is zstd compressed,
// and unchanged otherwise.
func Decompress(b []byte) ([]byte, error) {
	if !IsZstd(b) {
		return b, nil
	}
	out, err := zdec.DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return out, nil
}

// Decode reads the asset at the given path from src and decodes it into
// a new group, using the [xyz.Decoders] entry for its extension.
// Files referenced by the asset are read from src relative to it.
func Decode(ctx context.Context, src Source, p string) (*xyz.Group, error) {
	p = CleanPath(p)
	r, err := src.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	b, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	name := p
	if strings.HasSuffix(strings.ToLower(name), ZstdExtension) {
		name = name[:len(name)-len(ZstdExtension)]
	}
	if b, err = Decompress(b); err != nil {
		return nil, err
	}
	gp, err := xyz.ReadGroup(name, bytes.NewReader(b), &sourceFS{ctx: ctx, src: src})
	if err != nil {
		return nil, err
	}
	gp.Source = p
	return gp, nil
}
