package streaming

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// A demo exchange has no browser origin to restrict against.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RegisterRoutes mounts GET /ws/marketdata/:symbol and GET /ws/trades/:symbol
// on r (SPEC_FULL.md §9).
func (m *Manager) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/marketdata/:symbol", m.handleMarket)
	r.GET("/ws/trades/:symbol", m.handleTrades)
}

func (m *Manager) handleMarket(c *gin.Context) {
	m.subscribe(c, m.market)
}

func (m *Manager) handleTrades(c *gin.Context) {
	m.subscribe(c, m.trades)
}

func (m *Manager) subscribe(c *gin.Context, h *hub) {
	symbol := c.Param("symbol")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("streaming: websocket upgrade failed")
		return
	}

	cl := newClient(conn)
	h.add(symbol, cl)
	log.Info().Str("symbol", symbol).Msg("streaming: subscriber connected")

	go cl.writePump()
	cl.readPump(func() {
		h.remove(symbol, cl)
		log.Info().Str("symbol", symbol).Msg("streaming: subscriber disconnected")
	})
}
