// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package customize

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"cogentcore.org/tailor/base/errors"
)

// Session is a saved configurator session: the garment and the
// customization made for it. It is the document exchanged with the
// save and resume backends.
type Session struct {
	Garment       string        `json:"garment"`
	Customization Customization `json:"customization"`
	SavedAt       time.Time     `json:"savedAt,omitzero"`
}

// Encode writes the session as JSON.
func (s *Session) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// DecodeSession reads a session written by [Session.Encode].
func DecodeSession(r io.Reader) (*Session, error) {
	s := &Session{}
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("customize: decoding session: %w", err)
	}
	if s.Garment == "" {
		return nil, errors.New("customize: session has no garment")
	}
	return s, nil
}
