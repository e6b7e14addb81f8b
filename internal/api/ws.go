package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abhisek/tutor/internal/conversation"
	"github.com/abhisek/tutor/internal/state"
)

const (
	defaultPingInterval = 54 * time.Second
	pongWait            = 60 * time.Second
	writeWait           = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Snapshot is the full session state pushed over the WebSocket.
type Snapshot struct {
	Selection selectionResponse      `json:"selection"`
	Messages  []conversation.Message `json:"messages"`
	Loading   bool                   `json:"loading"`
	Phase     string                 `json:"phase"`
	Progress  state.Progress         `json:"progress"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) snapshot() Snapshot {
	c := h.deps.Controller
	return Snapshot{
		Selection: h.selectionView(),
		Messages:  c.Messages(),
		Loading:   c.Loading(),
		Phase:     c.Phase().String(),
		Progress:  h.deps.Progress.Snapshot(),
	}
}

// handleWebSocket sends a snapshot on connect and again after every state
// change. Inbound frames are read only to notice the peer closing.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	changes, unsubscribe := h.deps.Notifier.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go h.readLoop(conn, cancel)

	if err := h.sendSnapshot(conn); err != nil {
		return
	}

	ticker := time.NewTicker(h.deps.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
			if err := h.sendSnapshot(conn); err != nil {
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

func (h *Handler) readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (h *Handler) sendSnapshot(conn *websocket.Conn) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteJSON(outgoingMessage{
		Type:      "state",
		Data:      h.snapshot(),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		h.logger.Warn("websocket write failed", "error", err)
	}
	return err
}
