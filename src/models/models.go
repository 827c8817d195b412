package models

type SubmitOrderRequest struct {
	Side     string `json:"side"`
	Type     string `json:"type"`
	Quantity int64  `json:"quantity"`
	Price    string `json:"price,omitempty"`    // decimal string, required for LIMIT
	Strategy string `json:"strategy,omitempty"` // opaque tag, defaults to OTHER
}

type SubmitOrderResponse struct {
	OrderID      string      `json:"order_id"`
	Success      bool        `json:"success"`
	Message      string      `json:"message,omitempty"`
	Status       string      `json:"status"`
	FilledQty    int64       `json:"filled_quantity"`
	AvgFillPrice string      `json:"average_fill_price,omitempty"`
	RemainingQty int64       `json:"remaining_quantity"`
	Trades       []TradeInfo `json:"trades,omitempty"`
}

type TradeInfo struct {
	TradeID     string `json:"trade_id"`
	Price       string `json:"price"`
	Quantity    int64  `json:"quantity"`
	Timestamp   int64  `json:"timestamp"` // unix milliseconds
	BuyOrderID  string `json:"buy_order_id"`
	SellOrderID string `json:"sell_order_id"`
}

type CancelOrderResponse struct {
	OrderID      string `json:"order_id"`
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	CancelledQty int64  `json:"cancelled_quantity"`
}

type BestPriceResponse struct {
	Price    string `json:"price,omitempty"`
	Quantity int64  `json:"quantity,omitempty"`
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
}

type OrderInfo struct {
	OrderID      string `json:"order_id"`
	Side         string `json:"side"`
	Type         string `json:"type"`
	Price        string `json:"price,omitempty"`
	OriginalQty  int64  `json:"original_quantity"`
	RemainingQty int64  `json:"remaining_quantity"`
	Strategy     string `json:"strategy"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"` // unix milliseconds
}

type OrdersAtPriceResponse struct {
	Side   string      `json:"side"`
	Price  string      `json:"price"`
	Orders []OrderInfo `json:"orders"`
}

type PriceLevelInfo struct {
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
	Orders   int    `json:"orders"`
}

type OrderBookResponse struct {
	Timestamp int64            `json:"timestamp"` // unix milliseconds
	Bids      []PriceLevelInfo `json:"bids"`      // sorted descending (highest first)
	Asks      []PriceLevelInfo `json:"asks"`      // sorted ascending (lowest first)
}

type HealthResponse struct {
	Status          string `json:"status"` // OK or DEGRADED
	ActiveOrders    int    `json:"active_orders"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	OrdersProcessed int64  `json:"orders_processed"`
}

type PerformanceStatsResponse struct {
	TotalOrdersProcessed   int64   `json:"total_orders_processed"`
	OrdersPerSecondCurrent float64 `json:"orders_per_second_current"`
	OrdersPerSecondPeak    float64 `json:"orders_per_second_peak"`
	QueueDepthCurrent      int64   `json:"queue_depth_current"`
	QueueDepthMax          int64   `json:"queue_depth_max"`
	UptimeSeconds          int64   `json:"uptime_seconds"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
