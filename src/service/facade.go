package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/anminfang-tamu/internal-order-book/src/engine"
	"github.com/anminfang-tamu/internal-order-book/src/feed"
	"github.com/anminfang-tamu/internal-order-book/src/perf"
)

// Facade is the operation surface the surrounding transport layer
// talks to: submit, cancel, best bid/ask, depth, health and stats. It
// owns the boundary translation between decimal prices and the
// engine's cents, notifies the tracker once per accepted submission,
// and fans executed trades out to the feed.
type Facade struct {
	engine  *engine.Engine
	tracker *perf.Tracker
	feed    feed.Publisher
	started time.Time
}

func NewFacade(eng *engine.Engine, tracker *perf.Tracker, pub feed.Publisher) *Facade {
	if pub == nil {
		pub = feed.Noop{}
	}
	tracker.SetQueueDepthSource(func() (int64, int64) {
		return eng.QueueDepth(), eng.QueueDepthMax()
	})
	return &Facade{
		engine:  eng,
		tracker: tracker,
		feed:    pub,
		started: time.Now(),
	}
}

var maxCents = decimal.NewFromInt(math.MaxInt64)

// PriceToCents converts a boundary decimal price to exact cents.
// Sub-cent precision is rejected rather than rounded.
func PriceToCents(price decimal.Decimal) (int64, error) {
	shifted := price.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: price %s has sub-cent precision", engine.ErrInvalidOrder, price)
	}
	// edge case: IntPart wraps silently beyond int64, so reject first
	if shifted.Abs().Cmp(maxCents) > 0 {
		return 0, fmt.Errorf("%w: price %s is out of range", engine.ErrInvalidOrder, price)
	}
	return shifted.IntPart(), nil
}

// CentsToPrice renders cents as a two-decimal string for responses.
func CentsToPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

type TradeFill struct {
	TradeID     string
	Price       string
	Quantity    int64
	Timestamp   int64
	BuyOrderID  string
	SellOrderID string
}

type SubmitOutcome struct {
	OrderID      string
	Status       engine.Status
	FilledQty    int64
	AvgFillPrice string // empty when nothing filled
	RemainingQty int64
	Trades       []TradeFill
}

// SubmitOrder validates and executes one submission. price is only
// consulted for LIMIT orders; MARKET orders ignore it entirely.
func (f *Facade) SubmitOrder(side, orderType string, quantity int64, price string, strategy string) (*SubmitOutcome, error) {
	s, err := engine.ParseSide(side)
	if err != nil {
		return nil, err
	}
	t, err := engine.ParseOrderType(orderType)
	if err != nil {
		return nil, err
	}

	var cents int64
	if t == engine.TypeLimit {
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q is not a decimal number", engine.ErrInvalidOrder, price)
		}
		if cents, err = PriceToCents(d); err != nil {
			return nil, err
		}
	}

	result, err := f.engine.Submit(engine.Submission{
		Side:     s,
		Type:     t,
		Price:    cents,
		Quantity: quantity,
		Strategy: engine.ParseStrategy(strategy),
	})
	if err != nil {
		return nil, err
	}

	// one notification per accepted submission, regardless of fills
	f.tracker.RecordSubmission()

	outcome := &SubmitOutcome{
		OrderID:      result.OrderID,
		Status:       result.Status,
		FilledQty:    result.FilledQty,
		RemainingQty: result.RemainingQty,
		Trades:       make([]TradeFill, 0, len(result.Trades)),
	}
	if result.FilledQty > 0 {
		avg := decimal.New(result.FilledNotional, -2).
			Div(decimal.NewFromInt(result.FilledQty))
		outcome.AvgFillPrice = avg.StringFixed(4)
	}

	for _, tr := range result.Trades {
		outcome.Trades = append(outcome.Trades, TradeFill{
			TradeID:     tr.TradeID,
			Price:       CentsToPrice(tr.Price),
			Quantity:    tr.Quantity,
			Timestamp:   tr.Timestamp,
			BuyOrderID:  tr.BuyOrderID,
			SellOrderID: tr.SellOrderID,
		})
	}
	f.publishTrades(outcome.Trades)

	return outcome, nil
}

func (f *Facade) publishTrades(trades []TradeFill) {
	for _, tr := range trades {
		err := f.feed.Publish(context.Background(), feed.TradeEvent{
			TradeID:     tr.TradeID,
			BuyOrderID:  tr.BuyOrderID,
			SellOrderID: tr.SellOrderID,
			Price:       tr.Price,
			Quantity:    tr.Quantity,
			Timestamp:   tr.Timestamp,
		})
		if err != nil {
			// best-effort: the book has already committed
			log.Warn().Err(err).Str("trade_id", tr.TradeID).Msg("Trade feed publish failed")
		}
	}
}

// CancelOrder cancels a live order. The quantity still resting at
// cancel time is reported back.
func (f *Facade) CancelOrder(orderID string) (int64, error) {
	return f.engine.Cancel(orderID)
}

// BestPrice reports one side's best level; Success is false with an
// explanatory message when the side is empty.
type BestPrice struct {
	Price    string
	Quantity int64
	Success  bool
	Message  string
}

func (f *Facade) GetBestBid() BestPrice {
	price, qty, ok := f.engine.BestBid()
	if !ok {
		return BestPrice{Success: false, Message: "bid side is empty"}
	}
	return BestPrice{Price: CentsToPrice(price), Quantity: qty, Success: true}
}

func (f *Facade) GetBestAsk() BestPrice {
	price, qty, ok := f.engine.BestAsk()
	if !ok {
		return BestPrice{Success: false, Message: "ask side is empty"}
	}
	return BestPrice{Price: CentsToPrice(price), Quantity: qty, Success: true}
}

type OrderView struct {
	OrderID      string
	Side         engine.Side
	Type         engine.OrderType
	Price        string
	OriginalQty  int64
	RemainingQty int64
	Strategy     engine.Strategy
	Status       engine.Status
	CreatedAt    int64
}

func orderView(s engine.OrderSummary) OrderView {
	view := OrderView{
		OrderID:      s.ID,
		Side:         s.Side,
		Type:         s.Type,
		OriginalQty:  s.OriginalQty,
		RemainingQty: s.RemainingQty,
		Strategy:     s.Strategy,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
	}
	if s.Type == engine.TypeLimit {
		view.Price = CentsToPrice(s.Price)
	}
	return view
}

// GetOrdersAtPrice lists the resting orders at exactly price on one
// side, oldest first. An empty list means no level exists there.
func (f *Facade) GetOrdersAtPrice(side, price string) ([]OrderView, error) {
	s, err := engine.ParseSide(side)
	if err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("%w: price %q is not a decimal number", engine.ErrInvalidOrder, price)
	}
	cents, err := PriceToCents(d)
	if err != nil {
		return nil, err
	}

	summaries := f.engine.OrdersAtPrice(s, cents)
	out := make([]OrderView, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, orderView(sum))
	}
	return out, nil
}

// GetOrder looks up any order still known to the engine, live or
// recently terminal.
func (f *Facade) GetOrder(orderID string) (OrderView, bool) {
	s, ok := f.engine.LookupOrder(orderID)
	if !ok {
		return OrderView{}, false
	}
	return orderView(s), true
}

type LevelView struct {
	Price    string
	Quantity int64
	Orders   int
}

// GetOrderBook returns an aggregated depth snapshot, best price first
// on both sides.
func (f *Facade) GetOrderBook(depth int) (bids []LevelView, asks []LevelView) {
	b, a := f.engine.Depth(depth)
	return levelViews(b), levelViews(a)
}

func levelViews(entries []engine.DepthEntry) []LevelView {
	out := make([]LevelView, 0, len(entries))
	for _, e := range entries {
		out = append(out, LevelView{
			Price:    CentsToPrice(e.Price),
			Quantity: e.Qty,
			Orders:   e.Orders,
		})
	}
	return out
}

type Health struct {
	Status          string
	ActiveOrders    int
	UptimeSeconds   int64
	OrdersProcessed int64
}

func (f *Facade) HealthCheck() Health {
	status := "OK"
	if !f.engine.Healthy() {
		status = "DEGRADED"
	}
	return Health{
		Status:          status,
		ActiveOrders:    f.engine.ActiveOrders(),
		UptimeSeconds:   int64(time.Since(f.started).Seconds()),
		OrdersProcessed: f.tracker.Total(),
	}
}

type PerformanceStats struct {
	TotalOrdersProcessed   int64
	OrdersPerSecondCurrent float64
	OrdersPerSecondPeak    float64
	QueueDepthCurrent      int64
	QueueDepthMax          int64
	UptimeSeconds          int64
}

func (f *Facade) GetPerformanceStats() PerformanceStats {
	snap := f.tracker.Snapshot()
	return PerformanceStats{
		TotalOrdersProcessed:   snap.TotalProcessed,
		OrdersPerSecondCurrent: snap.CurrentPerSec,
		OrdersPerSecondPeak:    snap.PeakPerSec,
		QueueDepthCurrent:      snap.QueueDepth,
		QueueDepthMax:          snap.QueueDepthMax,
		UptimeSeconds:          int64(time.Since(f.started).Seconds()),
	}
}
