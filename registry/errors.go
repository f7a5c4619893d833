// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"fmt"

	"cogentcore.org/tailor/base/errors"
)

var (
	// ErrUnknownGarment is returned for a garment that is not in the registry.
	ErrUnknownGarment = errors.New("unknown garment")

	// ErrUnknownStyle is returned for a primary style that is not in the registry.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrUnknownSelection is returned for a selection key or value
	// that is not in the registry.
	ErrUnknownSelection = errors.New("unknown selection")
)

// ConfigError is a configuration error: a garment, style or selection
// that the registry does not know. Unknown values are never replaced
// by a fallback.
type ConfigError struct {
	// Garment is the garment being resolved.
	Garment string

	// Key is the selection key, which is the primary key for styles.
	Key string

	// Value is the offending value.
	Value string

	// Err is one of the ErrUnknown sentinel errors.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("registry: %v %q", e.Err, e.Garment)
	}
	return fmt.Sprintf("registry: %s: %v %s=%q", e.Garment, e.Err, e.Key, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }
