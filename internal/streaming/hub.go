// Package streaming is the websocket fan-out boundary of venex (spec.md
// §6): two per-symbol subscriber registries, one for depth updates and one
// for trade prints, broadcasting best-effort with a silent
// disconnect-on-send-failure, grounded on the original implementation's
// ConnectionManager (symbol -> set of connections, broadcast_market /
// broadcast_trade) and adapted into the gorilla/websocket client/hub shape
// the pack uses (0xtitan6-polymarket-mm's internal/api/stream.go).
package streaming

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	clientSendBuf  = 64
)

// client wraps one upgraded websocket connection subscribed to a single
// symbol on one hub (market or trades).
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, send: make(chan []byte, clientSendBuf)}
}

// writePump drains c.send to the socket, pinging on idle. Exits — and the
// caller's readPump notices via the next failed read — the moment a write
// fails, per spec.md §6 "a send failure... silently disconnects that
// subscriber."
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump does nothing with incoming frames except notice the connection
// has died — the original's `await websocket.receive_text()` loop exists
// purely to detect a disconnect, and this mirrors it (SPEC_FULL.md §6).
func (c *client) readPump(onClose func()) {
	defer onClose()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// hub is a symbol-keyed registry of subscribers for one channel (market
// depth or trades), generalizing the original's `Dict[str, set]`.
type hub struct {
	mu          sync.Mutex
	subscribers map[string]map[*client]struct{}
}

func newHub() *hub {
	return &hub{subscribers: make(map[string]map[*client]struct{})}
}

func (h *hub) add(symbol string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subscribers[symbol]
	if !ok {
		set = make(map[*client]struct{})
		h.subscribers[symbol] = set
	}
	set[c] = struct{}{}
}

func (h *hub) remove(symbol string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers[symbol], c)
}

// broadcast sends payload to every subscriber of symbol. If a subscriber's
// send buffer is already full, the frame is dropped for that subscriber (and
// logged) rather than allowed to block the broadcast of a faster peer; the
// subscriber itself stays registered.
func (h *hub) broadcast(symbol string, payload []byte) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.subscribers[symbol]))
	for c := range h.subscribers[symbol] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			log.Warn().Str("symbol", symbol).Msg("streaming: subscriber send buffer full, dropping frame")
		}
	}
}

// Manager owns the market-data and trade-print hubs (spec.md §6: "Two
// per-symbol subscription endpoints").
type Manager struct {
	market *hub
	trades *hub
}

// NewManager constructs an empty Manager.
func NewManager() *Manager {
	return &Manager{market: newHub(), trades: newHub()}
}
