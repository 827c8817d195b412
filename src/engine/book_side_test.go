package engine

import (
	"testing"
)

func restingOrder(id string, side Side, price, qty int64, seq uint64) *Order {
	return &Order{
		ID:           id,
		Side:         side,
		Type:         TypeLimit,
		Price:        price,
		OriginalQty:  qty,
		RemainingQty: qty,
		Seq:          seq,
		Status:       StatusOpen,
	}
}

func TestBidSideOrdersDescending(t *testing.T) {
	bids := NewBookSide(SideBuy)

	for i, price := range []int64{9940, 9960, 9950} {
		bids.GetOrCreate(price).append(restingOrder("b", SideBuy, price, 100, uint64(i)))
	}

	best := bids.Best()
	if best == nil || best.Price != 9960 {
		t.Fatalf("Expected best bid level 9960, got: %+v", best)
	}

	var walked []int64
	bids.Ascend(func(lvl *PriceLevel) bool {
		walked = append(walked, lvl.Price)
		return true
	})
	want := []int64{9960, 9950, 9940}
	for i := range want {
		if walked[i] != want[i] {
			t.Errorf("Bid walk position %d: expected %d, got %d", i, want[i], walked[i])
		}
	}
}

func TestAskSideOrdersAscending(t *testing.T) {
	asks := NewBookSide(SideSell)

	for i, price := range []int64{10050, 10010, 10030} {
		asks.GetOrCreate(price).append(restingOrder("a", SideSell, price, 100, uint64(i)))
	}

	best := asks.Best()
	if best == nil || best.Price != 10010 {
		t.Fatalf("Expected best ask level 10010, got: %+v", best)
	}

	var walked []int64
	asks.Ascend(func(lvl *PriceLevel) bool {
		walked = append(walked, lvl.Price)
		return true
	})
	want := []int64{10010, 10030, 10050}
	for i := range want {
		if walked[i] != want[i] {
			t.Errorf("Ask walk position %d: expected %d, got %d", i, want[i], walked[i])
		}
	}
}

func TestGetOrCreateReusesLevel(t *testing.T) {
	side := NewBookSide(SideBuy)

	a := side.GetOrCreate(9950)
	b := side.GetOrCreate(9950)
	if a != b {
		t.Error("GetOrCreate must not duplicate a price level")
	}
	if side.Len() != 1 {
		t.Errorf("Expected 1 level, got: %d", side.Len())
	}
}

func TestRemoveLevel(t *testing.T) {
	side := NewBookSide(SideSell)

	side.GetOrCreate(10000)
	side.GetOrCreate(10100)
	side.Remove(10000)

	if side.Len() != 1 {
		t.Errorf("Expected 1 level after removal, got: %d", side.Len())
	}
	if side.Level(10000) != nil {
		t.Error("Removed level should not resolve")
	}
	if best := side.Best(); best == nil || best.Price != 10100 {
		t.Error("Best should fall through to the surviving level")
	}
}

func TestPriceLevelFIFO(t *testing.T) {
	lvl := &PriceLevel{Price: 9950}

	lvl.append(restingOrder("one", SideBuy, 9950, 10, 1))
	lvl.append(restingOrder("two", SideBuy, 9950, 20, 2))
	lvl.append(restingOrder("three", SideBuy, 9950, 30, 3))

	if lvl.TotalQty() != 60 {
		t.Errorf("Expected total 60, got: %d", lvl.TotalQty())
	}

	lvl.popFront()
	if lvl.Orders[0].ID != "two" {
		t.Error("popFront must remove the oldest order")
	}

	if !lvl.remove("three") {
		t.Error("remove should find order three")
	}
	if lvl.remove("three") {
		t.Error("remove should fail on a missing order")
	}
	if len(lvl.Orders) != 1 || lvl.Orders[0].ID != "two" {
		t.Error("Only order two should remain")
	}
}

func TestCompletedLogEviction(t *testing.T) {
	cl := newCompletedLog(2)

	cl.add(&Order{ID: "a", Status: StatusFilled})
	cl.add(&Order{ID: "b", Status: StatusFilled})
	cl.add(&Order{ID: "c", Status: StatusCancelled})

	if _, ok := cl.get("a"); ok {
		t.Error("Oldest record should be evicted at capacity")
	}
	if _, ok := cl.get("b"); !ok {
		t.Error("Record b should survive")
	}
	if _, ok := cl.get("c"); !ok {
		t.Error("Record c should survive")
	}

	// re-adding an id must not duplicate it
	cl.add(&Order{ID: "c", Status: StatusCancelled})
	if len(cl.ids) != 2 {
		t.Errorf("Expected 2 retained ids, got: %d", len(cl.ids))
	}
}
