package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validator "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/saiputravu/venex/internal/engine"
	"github.com/saiputravu/venex/internal/venue"
	"github.com/saiputravu/venex/internal/xdecimal"
)

// Handler holds the dependencies every route needs: the engine registry and
// a struct validator, mirroring the pack's pattern of one handler struct
// per resource (abdoElHodaky-tradSys's UserHandler) rather than free
// functions closed over globals.
type Handler struct {
	registry *engine.Registry
	validate *validator.Validate
}

// New constructs a Handler bound to registry.
func New(registry *engine.Registry) *Handler {
	return &Handler{registry: registry, validate: validator.New()}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func notFound(c *gin.Context, err error) {
	c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
}

// CreateOrder handles POST /orders (spec.md §6).
func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(c, err)
		return
	}

	side, err := venue.ParseSide(req.Side)
	if err != nil {
		badRequest(c, err)
		return
	}
	orderType, err := venue.ParseOrderType(req.OrderType)
	if err != nil {
		badRequest(c, err)
		return
	}

	quantity, err := xdecimal.Parse(req.Quantity)
	if err != nil {
		badRequest(c, err)
		return
	}
	if !quantity.IsPositive() {
		badRequest(c, venue.ErrNonPositiveQuantity)
		return
	}

	var price xdecimal.D
	hasPrice := req.Price != nil
	if hasPrice {
		price, err = xdecimal.Parse(*req.Price)
		if err != nil {
			badRequest(c, err)
			return
		}
		if !price.IsPositive() {
			badRequest(c, venue.ErrNonPositivePrice)
			return
		}
	}
	if orderType != venue.Market && !hasPrice {
		badRequest(c, venue.ErrPriceRequired)
		return
	}

	order := venue.NewOrder(req.Symbol, side, orderType, quantity, price, hasPrice)

	if orderType == venue.StopLoss {
		result := h.registry.PlaceStop(order)
		c.JSON(http.StatusOK, stopPlacedResponse{
			OrderID:      result.OrderID,
			Status:       string(result.Status),
			TriggerPrice: order.Price,
		})
		return
	}

	result := h.registry.Submit(order)
	c.JSON(http.StatusOK, orderResponse{
		OrderID: result.OrderID,
		Status:  result.Status,
		Trades:  result.Trades,
		Reason:  result.Reason,
	})
}

// CancelOrder handles DELETE /order/{id}.
func (h *Handler) CancelOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.registry.CancelOrder(id); err != nil {
		notFound(c, err)
		return
	}
	c.JSON(http.StatusOK, canceledResponse{OrderID: id, Status: string(venue.StatusCanceled)})
}

// CancelStop handles DELETE /stoporder/{id}.
func (h *Handler) CancelStop(c *gin.Context) {
	id := c.Param("id")
	if err := h.registry.CancelStop(id); err != nil {
		notFound(c, err)
		return
	}
	c.JSON(http.StatusOK, canceledResponse{OrderID: id, Status: string(venue.StatusCanceled)})
}

// ModifyOrder handles PUT /orders/{id} (spec.md §4.5, DESIGN.md OQ-2).
func (h *Handler) ModifyOrder(c *gin.Context) {
	id := c.Param("id")
	var req ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	newQuantity, newPrice, err := parseModifyFields(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.registry.ModifyOrder(id, newQuantity, newPrice)
	if err != nil {
		notFound(c, err)
		return
	}
	c.JSON(http.StatusOK, orderResponse{
		OrderID: result.OrderID,
		Status:  result.Status,
		Trades:  result.Trades,
		Reason:  result.Reason,
	})
}

// ModifyStop handles PUT /stoporder/{id}.
func (h *Handler) ModifyStop(c *gin.Context) {
	id := c.Param("id")
	var req ModifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	newQuantity, newPrice, err := parseModifyFields(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.registry.ModifyStop(id, newQuantity, newPrice)
	if err != nil {
		notFound(c, err)
		return
	}
	c.JSON(http.StatusOK, modifiedStopResponse{
		OrderID:         updated.ID,
		Status:          string(venue.StatusModified),
		NewQuantity:     updated.Quantity,
		NewTriggerPrice: updated.Price,
	})
}

func parseModifyFields(req ModifyRequest) (newQuantity, newPrice *xdecimal.D, err error) {
	if req.Quantity != nil {
		q, err := xdecimal.Parse(*req.Quantity)
		if err != nil {
			return nil, nil, err
		}
		if !q.IsPositive() {
			return nil, nil, venue.ErrNonPositiveQuantity
		}
		newQuantity = &q
	}
	if req.Price != nil {
		p, err := xdecimal.Parse(*req.Price)
		if err != nil {
			return nil, nil, err
		}
		if !p.IsPositive() {
			return nil, nil, venue.ErrNonPositivePrice
		}
		newPrice = &p
	}
	return newQuantity, newPrice, nil
}

const defaultBookDepth = 10

// GetBook handles GET /book/{symbol}?depth=k (spec.md §6).
func (h *Handler) GetBook(c *gin.Context) {
	symbol := c.Param("symbol")
	depth := defaultBookDepth
	if raw := c.Query("depth"); raw != "" {
		if parsed, err := parsePositiveInt(raw); err == nil {
			depth = parsed
		}
	}

	snapshot := h.registry.Book(symbol).Depth(depth)
	stops := h.registry.ListStops(symbol)

	c.JSON(http.StatusOK, bookResponse{
		Symbol:     symbol,
		OrderBook:  renderDepth(snapshot),
		StopOrders: renderStops(stops),
	})
}

// GetBBO handles GET /bbo/{symbol} (spec.md §4.2/§6).
func (h *Handler) GetBBO(c *gin.Context) {
	symbol := c.Param("symbol")
	bbo := h.registry.Book(symbol).BBO()

	resp := bboResponse{Symbol: symbol, Timestamp: bbo.Timestamp.Format(time.RFC3339Nano)}
	if bbo.BestBid != nil {
		resp.BestBid = &levelView{Price: bbo.BestBid.Price.String(), Total: bbo.BestBid.Total.String()}
	}
	if bbo.BestAsk != nil {
		resp.BestAsk = &levelView{Price: bbo.BestAsk.Price.String(), Total: bbo.BestAsk.Total.String()}
	}
	c.JSON(http.StatusOK, resp)
}

func renderDepth(snapshot venue.DepthSnapshot) orderBookView {
	view := orderBookView{Timestamp: snapshot.Timestamp.Format(time.RFC3339Nano)}
	for _, lvl := range snapshot.Asks {
		view.Asks = append(view.Asks, [2]string{lvl.Price.String(), lvl.Total.String()})
	}
	for _, lvl := range snapshot.Bids {
		view.Bids = append(view.Bids, [2]string{lvl.Price.String(), lvl.Total.String()})
	}
	return view
}

func renderStops(stops []*venue.Order) []stopOrderView {
	views := make([]stopOrderView, 0, len(stops))
	for _, s := range stops {
		views = append(views, stopOrderView{
			OrderID:      s.ID,
			Side:         s.Side.String(),
			Quantity:     s.Remaining.String(),
			TriggerPrice: s.Price.String(),
			OrderType:    s.OrderType.String(),
		})
	}
	return views
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, venue.ErrInvalidEnum
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, venue.ErrInvalidEnum
	}
	return n, nil
}

// DemoSeed handles the supplemented POST /demo/seed (SPEC_FULL.md §6): it
// places a ladder of resting limit orders on a symbol for manual testing,
// gated behind a distinct route rather than wired into normal boot-time
// order flow.
func (h *Handler) DemoSeed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		badRequest(c, err)
		return
	}

	placed := 0
	for _, lvl := range req.Bids {
		if err := h.seedLevel(req.Symbol, venue.Buy, lvl); err != nil {
			badRequest(c, err)
			return
		}
		placed++
	}
	for _, lvl := range req.Asks {
		if err := h.seedLevel(req.Symbol, venue.Sell, lvl); err != nil {
			badRequest(c, err)
			return
		}
		placed++
	}

	log.Info().Str("symbol", req.Symbol).Int("orders_placed", placed).Msg("demo book seeded")
	c.JSON(http.StatusOK, gin.H{"symbol": req.Symbol, "orders_placed": placed})
}

func (h *Handler) seedLevel(symbol string, side venue.Side, lvl SeedLevel) error {
	price, err := xdecimal.Parse(lvl.Price)
	if err != nil {
		return err
	}
	qty, err := xdecimal.Parse(lvl.Quantity)
	if err != nil {
		return err
	}
	h.registry.Submit(venue.NewOrder(symbol, side, venue.Limit, qty, price, true))
	return nil
}
