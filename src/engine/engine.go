package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultCompletedCapacity bounds how many terminal orders stay
// queryable by id after leaving the live book.
const DefaultCompletedCapacity = 4096

// Engine owns both sides of the book exclusively. Every mutation
// (submit, cancel and the matching they trigger) passes through one
// write lock, so two submissions can never interleave their
// price-level mutations. Queries run concurrently under the read lock
// and observe a consistent point-in-time view.
type Engine struct {
	mu   sync.RWMutex
	bids *BookSide
	asks *BookSide

	live      map[string]*Order // OPEN and PARTIALLY_FILLED only
	completed *completedLog

	seq uint64

	// submissions currently queued on the write lock
	waiting    atomic.Int64
	waitingMax atomic.Int64

	degraded atomic.Bool
}

func NewEngine() *Engine {
	return &Engine{
		bids:      NewBookSide(SideBuy),
		asks:      NewBookSide(SideSell),
		live:      make(map[string]*Order),
		completed: newCompletedLog(DefaultCompletedCapacity),
	}
}

// Submission is an incoming order intent, prices already translated
// to cents by the caller.
type Submission struct {
	Side     Side
	Type     OrderType
	Price    int64 // cents, ignored for MARKET
	Quantity int64
	Strategy Strategy
}

func (s Submission) validate() error {
	if s.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidOrder, s.Quantity)
	}
	if s.Type == TypeLimit && s.Price <= 0 {
		return fmt.Errorf("%w: limit orders require a positive price, got %d", ErrInvalidOrder, s.Price)
	}
	return nil
}

// Trade records one execution. Price is always the resting order's
// price, never the incoming order's.
type Trade struct {
	TradeID     string
	Price       int64 // cents
	Quantity    int64
	Timestamp   int64 // unix milliseconds
	BuyOrderID  string
	SellOrderID string
}

type SubmitResult struct {
	OrderID        string
	Status         Status
	FilledQty      int64
	FilledNotional int64 // sum of price*qty over all fills, in cents
	RemainingQty   int64 // posted for LIMIT, discarded for MARKET
	Trades         []Trade
}

// Submit validates, admits and matches an incoming order, posting any
// LIMIT remainder to its own side. A MARKET remainder is discarded:
// a market order cannot rest, so its unfilled portion goes straight
// to CANCELLED.
func (e *Engine) Submit(sub Submission) (*SubmitResult, error) {
	if err := sub.validate(); err != nil {
		return nil, err
	}

	e.enterQueue()
	e.mu.Lock()
	e.waiting.Add(-1)
	defer e.mu.Unlock()

	e.seq++
	now := time.Now().UnixMilli()
	price := sub.Price
	if sub.Type == TypeMarket {
		price = 0 // any supplied price is ignored
	}
	o := &Order{
		ID:           uuid.New().String(),
		Side:         sub.Side,
		Type:         sub.Type,
		Price:        price,
		OriginalQty:  sub.Quantity,
		RemainingQty: sub.Quantity,
		Strategy:     sub.Strategy,
		Seq:          e.seq,
		Status:       StatusOpen,
		CreatedAt:    now,
	}

	result := &SubmitResult{
		OrderID: o.ID,
		Trades:  make([]Trade, 0),
	}

	opposite, own := e.asks, e.bids
	if o.Side == SideSell {
		opposite, own = e.bids, e.asks
	}

	e.match(o, opposite, result, now)

	switch {
	case o.RemainingQty == 0:
		o.Status = StatusFilled
		e.completed.add(o)
	case o.Type == TypeMarket:
		// edge case: a market order cannot rest; the unmet remainder is
		// discarded, never posted
		o.Status = StatusCancelled
		e.completed.add(o)
	default:
		if result.FilledQty > 0 {
			o.Status = StatusPartiallyFilled
		}
		own.GetOrCreate(o.Price).append(o)
		e.live[o.ID] = o
	}

	result.Status = o.Status
	result.RemainingQty = o.RemainingQty
	return result, nil
}

// match consumes opposite-side liquidity while the incoming order is
// marketable, oldest resting order first within each level.
func (e *Engine) match(o *Order, opposite *BookSide, result *SubmitResult, now int64) {
	for o.RemainingQty > 0 {
		best := opposite.Best()
		if best == nil {
			break
		}
		if best.empty() {
			// a level must leave the side the instant it empties; finding
			// one still indexed means the book state can no longer be trusted
			e.markDegraded(best.Price, "empty price level still indexed")
			opposite.Remove(best.Price)
			break
		}
		if o.Type == TypeLimit && !crosses(o.Side, o.Price, best.Price) {
			break
		}

		for o.RemainingQty > 0 && !best.empty() {
			resting := best.Orders[0]
			if resting.RemainingQty <= 0 {
				e.markDegraded(best.Price, "resting order with no remaining quantity")
				best.popFront()
				continue
			}

			qty := o.RemainingQty
			if qty > resting.RemainingQty {
				qty = resting.RemainingQty
			}

			// price improvement rule: execute at the resting order's price
			trade := Trade{
				TradeID:   uuid.New().String(),
				Price:     best.Price,
				Quantity:  qty,
				Timestamp: now,
			}
			if o.Side == SideBuy {
				trade.BuyOrderID = o.ID
				trade.SellOrderID = resting.ID
			} else {
				trade.BuyOrderID = resting.ID
				trade.SellOrderID = o.ID
			}
			result.Trades = append(result.Trades, trade)
			result.FilledQty += qty
			result.FilledNotional += qty * best.Price

			o.RemainingQty -= qty
			resting.RemainingQty -= qty

			if resting.RemainingQty == 0 {
				resting.Status = StatusFilled
				best.popFront()
				delete(e.live, resting.ID)
				e.completed.add(resting)
			} else {
				resting.Status = StatusPartiallyFilled
			}
		}

		if best.empty() {
			opposite.Remove(best.Price)
		}
	}
}

func crosses(side Side, limit, restingPrice int64) bool {
	if side == SideBuy {
		return restingPrice <= limit
	}
	return restingPrice >= limit
}

// Cancel removes a live order from the book, freezing its remaining
// quantity. Unknown and already-terminal ids fail with
// ErrOrderNotFound and leave the book untouched.
func (e *Engine) Cancel(orderID string) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.live[orderID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	side := e.bids
	if o.Side == SideSell {
		side = e.asks
	}

	lvl := side.Level(o.Price)
	if lvl == nil || !lvl.remove(o.ID) {
		e.markDegraded(o.Price, "live order missing from its price level")
	} else if lvl.empty() {
		side.Remove(o.Price)
	}

	o.Status = StatusCancelled
	delete(e.live, orderID)
	e.completed.add(o)
	return o.RemainingQty, nil
}

// BestBid returns the highest resting buy price and its aggregate
// quantity. ok is false when the bid side is empty.
func (e *Engine) BestBid() (price int64, qty int64, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return bestOf(e.bids)
}

// BestAsk returns the lowest resting sell price and its aggregate
// quantity. ok is false when the ask side is empty.
func (e *Engine) BestAsk() (price int64, qty int64, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return bestOf(e.asks)
}

func bestOf(side *BookSide) (int64, int64, bool) {
	lvl := side.Best()
	if lvl == nil || lvl.empty() {
		return 0, 0, false
	}
	return lvl.Price, lvl.TotalQty(), true
}

// OrdersAtPrice returns time-ordered summaries of the resting orders
// at exactly price, oldest first. The slice is empty when no level
// exists there.
func (e *Engine) OrdersAtPrice(side Side, price int64) []OrderSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()

	bookSide := e.bids
	if side == SideSell {
		bookSide = e.asks
	}

	lvl := bookSide.Level(price)
	if lvl == nil {
		return []OrderSummary{}
	}
	out := make([]OrderSummary, 0, len(lvl.Orders))
	for _, o := range lvl.Orders {
		out = append(out, o.summary())
	}
	return out
}

// DepthEntry aggregates one price level for book snapshots.
type DepthEntry struct {
	Price  int64
	Qty    int64
	Orders int
}

// Depth returns up to maxLevels aggregated levels per side, best
// price first on both.
func (e *Engine) Depth(maxLevels int) (bids []DepthEntry, asks []DepthEntry) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	bids = collectDepth(e.bids, maxLevels)
	asks = collectDepth(e.asks, maxLevels)
	return bids, asks
}

func collectDepth(side *BookSide, maxLevels int) []DepthEntry {
	out := make([]DepthEntry, 0, maxLevels)
	side.Ascend(func(lvl *PriceLevel) bool {
		if len(out) >= maxLevels {
			return false
		}
		out = append(out, DepthEntry{
			Price:  lvl.Price,
			Qty:    lvl.TotalQty(),
			Orders: len(lvl.Orders),
		})
		return true
	})
	return out
}

// LookupOrder finds a live order or a retained terminal record.
func (e *Engine) LookupOrder(orderID string) (OrderSummary, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if o, ok := e.live[orderID]; ok {
		return o.summary(), true
	}
	if o, ok := e.completed.get(orderID); ok {
		return o.summary(), true
	}
	return OrderSummary{}, false
}

// ActiveOrders counts live OPEN and PARTIALLY_FILLED orders across
// both sides.
func (e *Engine) ActiveOrders() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.live)
}

// Healthy is false once an internal consistency check has tripped.
// The engine never guesses its way back to a consistent book.
func (e *Engine) Healthy() bool {
	return !e.degraded.Load()
}

// QueueDepth is the number of submissions currently queued on the
// single mutation path.
func (e *Engine) QueueDepth() int64 {
	return e.waiting.Load()
}

// QueueDepthMax is the largest queue depth observed since start.
func (e *Engine) QueueDepthMax() int64 {
	return e.waitingMax.Load()
}

func (e *Engine) enterQueue() {
	depth := e.waiting.Add(1)
	for {
		max := e.waitingMax.Load()
		if depth <= max || e.waitingMax.CompareAndSwap(max, depth) {
			return
		}
	}
}

func (e *Engine) markDegraded(price int64, reason string) {
	if e.degraded.CompareAndSwap(false, true) {
		log.Error().
			Int64("price", price).
			Str("reason", reason).
			Msg("Order book invariant violated, engine degraded")
	}
}
