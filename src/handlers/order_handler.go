package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/anminfang-tamu/internal-order-book/src/config"
	"github.com/anminfang-tamu/internal-order-book/src/engine"
	"github.com/anminfang-tamu/internal-order-book/src/models"
	"github.com/anminfang-tamu/internal-order-book/src/service"
)

type OrderHandler struct {
	Facade       *service.Facade
	defaultDepth int
	maxDepth     int
}

func NewOrderHandler(facade *service.Facade, book config.BookConfig) *OrderHandler {
	return &OrderHandler{
		Facade:       facade,
		defaultDepth: book.DefaultDepth,
		maxDepth:     book.MaxDepth,
	}
}

func (h *OrderHandler) SubmitOrder(c *fiber.Ctx) error {
	var req models.SubmitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn().
			Err(err).
			Str("ip", c.IP()).
			Msg("Invalid request: malformed JSON")
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid request: malformed JSON",
		})
	}

	outcome, err := h.Facade.SubmitOrder(req.Side, req.Type, req.Quantity, req.Price, req.Strategy)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidOrder) {
			log.Warn().
				Err(err).
				Str("side", req.Side).
				Str("type", req.Type).
				Str("ip", c.IP()).
				Msg("Invalid order request")
			return c.Status(fiber.StatusBadRequest).JSON(models.SubmitOrderResponse{
				Success: false,
				Message: err.Error(),
			})
		}
		log.Error().Err(err).Msg("Error submitting order")
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: "Internal server error",
		})
	}

	trades := make([]models.TradeInfo, 0, len(outcome.Trades))
	for _, tr := range outcome.Trades {
		trades = append(trades, models.TradeInfo{
			TradeID:     tr.TradeID,
			Price:       tr.Price,
			Quantity:    tr.Quantity,
			Timestamp:   tr.Timestamp,
			BuyOrderID:  tr.BuyOrderID,
			SellOrderID: tr.SellOrderID,
		})
	}

	log.Info().
		Str("order_id", outcome.OrderID).
		Str("side", req.Side).
		Str("type", req.Type).
		Str("status", string(outcome.Status)).
		Int64("filled_quantity", outcome.FilledQty).
		Int64("remaining_quantity", outcome.RemainingQty).
		Int("trades", len(trades)).
		Msg("Order processed")

	resp := models.SubmitOrderResponse{
		OrderID:      outcome.OrderID,
		Success:      true,
		Message:      submitMessage(outcome.Status),
		Status:       string(outcome.Status),
		FilledQty:    outcome.FilledQty,
		AvgFillPrice: outcome.AvgFillPrice,
		RemainingQty: outcome.RemainingQty,
		Trades:       trades,
	}

	if outcome.Status == engine.StatusOpen {
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func submitMessage(status engine.Status) string {
	switch status {
	case engine.StatusOpen:
		return "Order added to book"
	case engine.StatusPartiallyFilled:
		return "Order partially filled, remainder posted"
	case engine.StatusFilled:
		return "Order fully filled"
	case engine.StatusCancelled:
		return "Order partially filled, unfilled remainder discarded"
	default:
		return ""
	}
}

func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	cancelled, err := h.Facade.CancelOrder(orderID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("order_id", orderID).
			Str("ip", c.IP()).
			Msg("Cancel order: order not found or already terminal")
		return c.Status(fiber.StatusNotFound).JSON(models.CancelOrderResponse{
			OrderID: orderID,
			Success: false,
			Message: err.Error(),
		})
	}

	log.Info().
		Str("order_id", orderID).
		Int64("cancelled_quantity", cancelled).
		Str("ip", c.IP()).
		Msg("Order cancelled")

	return c.Status(fiber.StatusOK).JSON(models.CancelOrderResponse{
		OrderID:      orderID,
		Success:      true,
		Message:      "Order cancelled",
		CancelledQty: cancelled,
	})
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	view, ok := h.Facade.GetOrder(orderID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error: "Order not found",
		})
	}
	return c.Status(fiber.StatusOK).JSON(orderInfo(view))
}

func orderInfo(v service.OrderView) models.OrderInfo {
	return models.OrderInfo{
		OrderID:      v.OrderID,
		Side:         string(v.Side),
		Type:         string(v.Type),
		Price:        v.Price,
		OriginalQty:  v.OriginalQty,
		RemainingQty: v.RemainingQty,
		Strategy:     string(v.Strategy),
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt,
	}
}

func (h *OrderHandler) GetBestBid(c *fiber.Ctx) error {
	return bestPriceResponse(c, h.Facade.GetBestBid())
}

func (h *OrderHandler) GetBestAsk(c *fiber.Ctx) error {
	return bestPriceResponse(c, h.Facade.GetBestAsk())
}

// edge case: an empty side is success=false in the payload, not an
// HTTP error, by contract of the service surface
func bestPriceResponse(c *fiber.Ctx, best service.BestPrice) error {
	return c.Status(fiber.StatusOK).JSON(models.BestPriceResponse{
		Price:    best.Price,
		Quantity: best.Quantity,
		Success:  best.Success,
		Message:  best.Message,
	})
}

func (h *OrderHandler) GetOrdersAtPrice(c *fiber.Ctx) error {
	side := c.Query("side")
	price := c.Query("price")

	views, err := h.Facade.GetOrdersAtPrice(side, price)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: err.Error(),
		})
	}

	orders := make([]models.OrderInfo, 0, len(views))
	for _, v := range views {
		orders = append(orders, orderInfo(v))
	}
	return c.Status(fiber.StatusOK).JSON(models.OrdersAtPriceResponse{
		Side:   side,
		Price:  price,
		Orders: orders,
	})
}

func (h *OrderHandler) GetOrderBook(c *fiber.Ctx) error {
	depth := h.defaultDepth
	if q := c.Query("depth"); q != "" {
		if parsed, err := strconv.Atoi(q); err == nil && parsed > 0 {
			depth = parsed
		}
	}
	if depth > h.maxDepth {
		depth = h.maxDepth
	}

	bids, asks := h.Facade.GetOrderBook(depth)
	return c.Status(fiber.StatusOK).JSON(models.OrderBookResponse{
		Timestamp: time.Now().UnixMilli(),
		Bids:      levelInfos(bids),
		Asks:      levelInfos(asks),
	})
}

func levelInfos(levels []service.LevelView) []models.PriceLevelInfo {
	out := make([]models.PriceLevelInfo, 0, len(levels))
	for _, l := range levels {
		out = append(out, models.PriceLevelInfo{
			Price:    l.Price,
			Quantity: l.Quantity,
			Orders:   l.Orders,
		})
	}
	return out
}

func (h *OrderHandler) HealthCheck(c *fiber.Ctx) error {
	health := h.Facade.HealthCheck()
	status := fiber.StatusOK
	if health.Status != "OK" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(models.HealthResponse{
		Status:          health.Status,
		ActiveOrders:    health.ActiveOrders,
		UptimeSeconds:   health.UptimeSeconds,
		OrdersProcessed: health.OrdersProcessed,
	})
}

func (h *OrderHandler) PerformanceStats(c *fiber.Ctx) error {
	stats := h.Facade.GetPerformanceStats()
	return c.Status(fiber.StatusOK).JSON(models.PerformanceStatsResponse{
		TotalOrdersProcessed:   stats.TotalOrdersProcessed,
		OrdersPerSecondCurrent: stats.OrdersPerSecondCurrent,
		OrdersPerSecondPeak:    stats.OrdersPerSecondPeak,
		QueueDepthCurrent:      stats.QueueDepthCurrent,
		QueueDepthMax:          stats.QueueDepthMax,
		UptimeSeconds:          stats.UptimeSeconds,
	})
}
