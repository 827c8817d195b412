package feed

import (
	"context"
	"encoding/json"
	"testing"
)

func TestTradeEventEncoding(t *testing.T) {
	ev := TradeEvent{
		TradeID:     "t-1",
		BuyOrderID:  "b-1",
		SellOrderID: "s-1",
		Price:       "100.25",
		Quantity:    40,
		Timestamp:   1700000000000,
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got["trade_id"] != "t-1" {
		t.Errorf("Expected trade_id t-1, got: %v", got["trade_id"])
	}
	if got["price"] != "100.25" {
		t.Errorf("Price must stay a decimal string, got: %v", got["price"])
	}
	if got["quantity"] != float64(40) {
		t.Errorf("Expected quantity 40, got: %v", got["quantity"])
	}
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.Publish(context.Background(), TradeEvent{TradeID: "t-1"}); err != nil {
		t.Errorf("Noop publish should never fail: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Noop close should never fail: %v", err)
	}
}
