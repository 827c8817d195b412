package engine

import (
	"fmt"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type OrderType string

const (
	TypeLimit  OrderType = "LIMIT"
	TypeMarket OrderType = "MARKET"
)

type Status string

const (
	StatusOpen            Status = "OPEN"
	StatusPartiallyFilled Status = "PARTIALLY_FILLED"
	StatusFilled          Status = "FILLED"
	StatusCancelled       Status = "CANCELLED"
)

// Strategy is an opaque classification tag carried through the book.
// It never influences matching.
type Strategy string

const (
	StrategyQuantLongTerm      Strategy = "QUANT_LONG_TERM"
	StrategyHighFrequency      Strategy = "HIGH_FREQUENCY"
	StrategyHedgeFund          Strategy = "HEDGE_FUND"
	StrategyAlgorithmicTrading Strategy = "ALGORITHMIC_TRADING"
	StrategyInvestmentBank     Strategy = "INVESTMENT_BANK"
	StrategyPensionFund        Strategy = "PENSION_FUND"
	StrategyInsuranceCompany   Strategy = "INSURANCE_COMPANY"
	StrategyOther              Strategy = "OTHER"
)

// edge case: prices are stored as int64 cents so matching-eligibility
// comparisons stay exact; decimal translation happens at the service boundary
type Order struct {
	ID           string
	Side         Side
	Type         OrderType
	Price        int64 // price in cents, required for LIMIT, 0 for MARKET
	OriginalQty  int64
	RemainingQty int64
	Strategy     Strategy
	Seq          uint64 // admission order, defines time priority
	Status       Status
	CreatedAt    int64 // unix milliseconds
}

// Terminal reports whether the order has left the live book.
func (o *Order) Terminal() bool {
	return o.Status == StatusFilled || o.Status == StatusCancelled
}

// OrderSummary is an immutable copy of an order's state, safe to hand
// out past the engine's lock.
type OrderSummary struct {
	ID           string
	Side         Side
	Type         OrderType
	Price        int64
	OriginalQty  int64
	RemainingQty int64
	Strategy     Strategy
	Seq          uint64
	Status       Status
	CreatedAt    int64
}

func (o *Order) summary() OrderSummary {
	return OrderSummary{
		ID:           o.ID,
		Side:         o.Side,
		Type:         o.Type,
		Price:        o.Price,
		OriginalQty:  o.OriginalQty,
		RemainingQty: o.RemainingQty,
		Strategy:     o.Strategy,
		Seq:          o.Seq,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
	}
}

func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	default:
		return "", fmt.Errorf("%w: side must be BUY or SELL, got %q", ErrInvalidOrder, s)
	}
}

func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case TypeLimit, TypeMarket:
		return OrderType(s), nil
	default:
		return "", fmt.Errorf("%w: type must be LIMIT or MARKET, got %q", ErrInvalidOrder, s)
	}
}

// ParseStrategy maps unknown tags to OTHER rather than rejecting; the
// tag has no behavioral effect on matching.
func ParseStrategy(s string) Strategy {
	switch Strategy(s) {
	case StrategyQuantLongTerm, StrategyHighFrequency, StrategyHedgeFund,
		StrategyAlgorithmicTrading, StrategyInvestmentBank,
		StrategyPensionFund, StrategyInsuranceCompany, StrategyOther:
		return Strategy(s)
	default:
		return StrategyOther
	}
}
