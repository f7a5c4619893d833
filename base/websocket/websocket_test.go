// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServer(t *testing.T) string {
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			typ, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if conn.WriteMessage(typ, msg) != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClient(t *testing.T) {
	c, err := Connect(context.Background(), echoServer(t))
	require.NoError(t, err)

	type received struct {
		typ MessageTypes
		msg string
	}
	msgs := make(chan received, 4)
	closed := make(chan struct{})
	c.OnMessage(func(typ MessageTypes, msg []byte) {
		msgs <- received{typ, string(msg)}
	})
	c.OnClose(func() { close(closed) })

	require.NoError(t, c.Send(BinaryMessage, []byte{1, 2}))
	require.NoError(t, c.SendJSON(map[string]int{"seq": 3}))

	assert.Equal(t, received{BinaryMessage, "\x01\x02"}, <-msgs)
	assert.Equal(t, received{TextMessage, `{"seq":3}`}, <-msgs)

	require.NoError(t, c.Close())
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("connection was not closed")
	}
}

func TestConnectError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Connect(ctx, echoServer(t))
	assert.Error(t, err)
}
