package live

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	snapshotWait = 8 * time.Second
)

// SnapshotFunc loads the full current value of a topic: the whole collection
// or the singleton document. Pushes are always whole-set, never deltas.
type SnapshotFunc func(ctx context.Context) (interface{}, error)

type Handler struct {
	hub       *Hub
	log       *slog.Logger
	upgrader  websocket.Upgrader
	snapshots map[string]SnapshotFunc
}

func NewHandler(hub *Hub, log *slog.Logger, allowedOrigin string) *Handler {
	return &Handler{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
		snapshots: make(map[string]SnapshotFunc),
	}
}

// Register binds a topic name to its snapshot loader. Must be called before
// the server starts accepting connections.
func (h *Handler) Register(topic string, fn SnapshotFunc) {
	h.snapshots[topic] = fn
}

// ServeTopic returns an http handler streaming one topic over a websocket:
// full snapshot on connect, full snapshot after every published change,
// until the client disconnects or a snapshot load fails.
func (h *Handler) ServeTopic(topic string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn, ok := h.snapshots[topic]
		if !ok {
			http.Error(w, "unknown topic", http.StatusNotFound)
			return
		}

		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("live: upgrade failed", slog.String("topic", topic), slog.String("error", err.Error()))
			return
		}
		defer conn.Close()

		sub := h.hub.Subscribe(topic)
		defer sub.Cancel()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Read pump: drains client frames and ends the stream on disconnect.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					cancel()
					return
				}
			}
		}()

		if !h.push(ctx, conn, topic, fn) {
			return
		}

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.C:
				if !h.push(ctx, conn, topic, fn) {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

func (h *Handler) push(ctx context.Context, conn *websocket.Conn, topic string, fn SnapshotFunc) bool {
	loadCtx, cancel := context.WithTimeout(ctx, snapshotWait)
	defer cancel()

	snapshot, err := fn(loadCtx)
	if err != nil {
		h.log.Error("live: snapshot failed", slog.String("topic", topic), slog.String("error", err.Error()))
		return false
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(snapshot); err != nil {
		return false
	}
	return true
}
