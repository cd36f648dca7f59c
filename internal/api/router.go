package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/saiputravu/venex/internal/engine"
)

// NewRouter builds the gin engine exposing spec.md §6's routes plus the
// supplemented demo-seed endpoint and the Prometheus scrape endpoint
// (SPEC_FULL.md §5, §9). Route wiring lives here rather than in cmd/venexd
// so the teacher's cmd/server/server.go stays the bootstrap-only layer.
func NewRouter(registry *engine.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	h := New(registry)

	r.POST("/orders", h.CreateOrder)
	r.DELETE("/order/:id", h.CancelOrder)
	r.DELETE("/stoporder/:id", h.CancelStop)
	r.PUT("/orders/:id", h.ModifyOrder)
	r.PUT("/stoporder/:id", h.ModifyStop)
	r.GET("/book/:symbol", h.GetBook)
	r.GET("/bbo/:symbol", h.GetBBO)

	r.POST("/demo/seed", h.DemoSeed)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// requestLogger mirrors the teacher's zerolog-everywhere convention in a
// request-scoped middleware, in place of gin's default Apache-style logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}
