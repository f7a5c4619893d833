// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"cogentcore.org/tailor/customize"
	"cogentcore.org/tailor/registry"
)

// Message types.
const (
	// TypeUpdate is sent by clients with a new customization.
	TypeUpdate = "update"

	// TypeManifestReady is sent when the priority parts of a
	// configuration are attached.
	TypeManifestReady = "manifestReady"

	// TypePaintApplied is sent with the paint plan after painting.
	TypePaintApplied = "paintApplied"

	// TypeState is sent when the viewer state changes.
	TypeState = "state"

	// TypeError is sent when an update fails.
	TypeError = "error"
)

// Message is a websocket message, in either direction.
type Message struct {
	Type string `json:"type"`

	// Seq is the client sequence number of an update,
	// echoed in the error for that update.
	Seq int `json:"seq,omitempty"`

	Customization *customize.Customization `json:"customization,omitempty"`
	Manifest      *registry.Manifest       `json:"manifest,omitempty"`
	Report        *customize.Report        `json:"report,omitempty"`
	State         string                   `json:"state,omitempty"`
	Error         string                   `json:"error,omitempty"`
}
