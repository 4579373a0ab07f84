package live

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSocketHandler(t *testing.T) (*Handler, *Hub) {
	t.Helper()
	hub := NewHub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(hub, logger, "http://localhost:5173"), hub
}

func dialTopic(t *testing.T, h *Handler, topic string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h.ServeTopic(topic))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame map[string]interface{}
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestServeTopicPushesSnapshotOnConnect(t *testing.T) {
	h, _ := newSocketHandler(t)
	h.Register("courts", func(ctx context.Context) (interface{}, error) {
		return map[string]interface{}{"items": []string{"Court 1", "Court 2"}}, nil
	})

	conn := dialTopic(t, h, "courts")
	frame := readFrame(t, conn)
	assert.Len(t, frame["items"], 2)
}

func TestServeTopicPushesRevisedSnapshotAfterPublish(t *testing.T) {
	h, hub := newSocketHandler(t)

	var version atomic.Int64
	h.Register("courts", func(ctx context.Context) (interface{}, error) {
		return map[string]interface{}{"version": version.Add(1)}, nil
	})

	conn := dialTopic(t, h, "courts")

	first := readFrame(t, conn)
	assert.Equal(t, float64(1), first["version"])

	hub.Publish("courts")

	second := readFrame(t, conn)
	assert.Equal(t, float64(2), second["version"], "a publish should push a fresh snapshot")
}

func TestServeTopicClosesWhenSnapshotFails(t *testing.T) {
	h, _ := newSocketHandler(t)
	h.Register("courts", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("store unavailable")
	})

	conn := dialTopic(t, h, "courts")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "stream should end without a frame when the snapshot load fails")
}

func TestServeTopicClosesMidStreamOnSnapshotFailure(t *testing.T) {
	h, hub := newSocketHandler(t)

	var calls atomic.Int64
	h.Register("bookings", func(ctx context.Context) (interface{}, error) {
		if calls.Add(1) > 1 {
			return nil, errors.New("store unavailable")
		}
		return map[string]interface{}{"items": []string{}}, nil
	})

	conn := dialTopic(t, h, "bookings")
	readFrame(t, conn)

	hub.Publish("bookings")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err, "stream should end when a later snapshot load fails")
}

func TestServeTopicUnknownTopic(t *testing.T) {
	h, _ := newSocketHandler(t)
	srv := httptest.NewServer(h.ServeTopic("unregistered"))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
