// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"cogentcore.org/tailor/base/errors"
	"google.golang.org/api/option"
)

// ErrNotFound is returned by a [Source] for a path that does not exist.
var ErrNotFound = errors.New("asset not found")

// Source is a read-only store of asset files addressed by path,
// such as "/models/jackets/2button/2Button.gltf".
type Source interface {
	// Open returns the contents of the asset at the given path.
	// It returns an error wrapping [ErrNotFound] if there is none.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// FSSource is a [Source] reading from a file system,
// such as [os.DirFS] of the static asset directory.
type FSSource struct {
	FS fs.FS
}

// NewFSSource returns a new [FSSource] for the given file system.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{FS: fsys}
}

func (s *FSSource) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.FS.Open(fsPath(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// HTTPSource is a [Source] reading from a static asset host.
type HTTPSource struct {
	// BaseURL is prepended to asset paths.
	BaseURL string

	// Client is the HTTP client; [http.DefaultClient] is used if nil.
	Client *http.Client
}

// NewHTTPSource returns a new [HTTPSource] for the given base URL,
// with a client that times out after the given duration (none if 0).
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{BaseURL: strings.TrimSuffix(baseURL, "/"), Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/"+fsPath(p), nil)
	if err != nil {
		return nil, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("assets: GET %s: %s", req.URL, resp.Status)
	}
	return resp.Body, nil
}

// GCSSource is a [Source] reading objects from a Google Cloud Storage bucket.
// Asset paths are object names below Prefix.
type GCSSource struct {
	Bucket *storage.BucketHandle
	Prefix string

	client *storage.Client
}

// NewGCSSource returns a new [GCSSource] for the given bucket and prefix,
// with a client created from the given options.
func NewGCSSource(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCSSource, error) {
	opts = append(opts, option.WithScopes(storage.ScopeReadOnly))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("assets: creating storage client: %w", err)
	}
	return &GCSSource{Bucket: client.Bucket(bucket), Prefix: prefix, client: client}, nil
}

// ObjectName returns the name of the object for the given asset path.
func (s *GCSSource) ObjectName(p string) string {
	return path.Join(strings.Trim(s.Prefix, "/"), fsPath(p))
}

func (s *GCSSource) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	r, err := s.Bucket.Object(s.ObjectName(p)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: reading gs object %s: %w", s.ObjectName(p), err)
	}
	return r, nil
}

// Close closes the storage client, if the source created it.
func (s *GCSSource) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// fsPath returns the asset path in the unrooted form used by [fs.FS].
func fsPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// CleanPath returns the canonical form of an asset path, which is
// rooted and cleaned.
func CleanPath(p string) string {
	return "/" + fsPath(p)
}

// sourceFS is an [fs.FS] view of a [Source], used to read files
// referenced by a decoded file, such as external glTF buffers.
type sourceFS struct {
	ctx context.Context
	src Source
}

func (s *sourceFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	r, err := s.src.Open(s.ctx, "/"+name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fs.ErrNotExist
		}
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return &memFile{Reader: bytes.NewReader(b), name: path.Base(name), size: int64(len(b))}, nil
}

// memFile is an [fs.File] holding the contents of a file read from a [Source].
type memFile struct {
	*bytes.Reader
	name string
	size int64
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f, nil }
func (f *memFile) Close() error               { return nil }
func (f *memFile) Name() string               { return f.name }
func (f *memFile) Size() int64                { return f.size }
func (f *memFile) Mode() fs.FileMode          { return 0o444 }
func (f *memFile) ModTime() time.Time         { return time.Time{} }
func (f *memFile) IsDir() bool                { return false }
func (f *memFile) Sys() any                   { return nil }
