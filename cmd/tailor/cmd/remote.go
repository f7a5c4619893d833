// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"cogentcore.org/tailor/base/errors"
	"cogentcore.org/tailor/base/websocket"
	"cogentcore.org/tailor/cmd/tailor/config"
	"cogentcore.org/tailor/customize"
	"cogentcore.org/tailor/server"
)

// Remote sends the session saved in c.File to the configurator server
// at c.Server.URL and writes the events of the update to w, until the
// garment is assembled and painted or the update fails.
func Remote(ctx context.Context, c *config.Config, w io.Writer) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	s, err := customize.DecodeSession(f)
	f.Close()
	if err != nil {
		return err
	}
	url := strings.TrimSuffix(c.Server.URL, "/") + "/ws/" + s.Garment
	if strings.HasPrefix(url, "http") {
		url = "ws" + strings.TrimPrefix(url, "http")
	}

	ctx, cancel := context.WithTimeout(ctx, c.UpdateTimeout())
	defer cancel()
	cl, err := websocket.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("remote: connecting to %s: %w", url, err)
	}
	defer cl.Close()

	msgs := make(chan server.Message)
	closed := make(chan struct{})
	cl.OnMessage(func(typ websocket.MessageTypes, b []byte) {
		var m server.Message
		if errors.Log(json.Unmarshal(b, &m)) != nil {
			return
		}
		select {
		case msgs <- m:
		case <-ctx.Done():
		}
	})
	cl.OnClose(func() { close(closed) })

	const seq = 1
	if err := cl.SendJSON(server.Message{Type: server.TypeUpdate, Seq: seq, Customization: &s.Customization}); err != nil {
		return err
	}
	painted := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-closed:
			return errors.New("remote: connection closed by the server")
		case m := <-msgs:
			switch m.Type {
			case server.TypeState:
				fmt.Fprintf(w, "state %s\n", m.State)
				if m.Error != "" {
					return fmt.Errorf("remote: %s", m.Error)
				}
				if m.State == "idle" && painted {
					return nil
				}
			case server.TypeManifestReady:
				if m.Manifest != nil {
					fmt.Fprintf(w, "manifest %s %s: %d parts\n", m.Manifest.Garment, m.Manifest.Style, m.Manifest.Len())
				}
			case server.TypePaintApplied:
				painted = true
				if m.Report != nil {
					fmt.Fprintf(w, "paint %d painted, %d skipped, %d failed\n", len(m.Report.Painted), m.Report.Skipped, len(m.Report.Failures))
				}
			case server.TypeError:
				if m.Seq == seq {
					return fmt.Errorf("remote: %s", m.Error)
				}
			}
		}
	}
}
