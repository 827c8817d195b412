package engine

// PriceLevel holds the resting orders at one price in arrival order.
// Orders[0] is always the oldest (lowest Seq), so matching consumes
// from the front and new arrivals append at the back.
type PriceLevel struct {
	Price  int64
	Orders []*Order // fifo ordering for time priority
}

func (pl *PriceLevel) append(o *Order) {
	pl.Orders = append(pl.Orders, o)
}

// popFront removes the oldest order after it has been fully consumed.
func (pl *PriceLevel) popFront() {
	if len(pl.Orders) > 1 {
		pl.Orders = pl.Orders[1:]
	} else {
		pl.Orders = pl.Orders[:0]
	}
}

func (pl *PriceLevel) remove(orderID string) bool {
	for i, o := range pl.Orders {
		if o.ID == orderID {
			pl.Orders = append(pl.Orders[:i], pl.Orders[i+1:]...)
			return true
		}
	}
	return false
}

func (pl *PriceLevel) empty() bool {
	return len(pl.Orders) == 0
}

// TotalQty is the aggregate remaining quantity resting at this price.
func (pl *PriceLevel) TotalQty() int64 {
	var total int64
	for _, o := range pl.Orders {
		total += o.RemainingQty
	}
	return total
}
