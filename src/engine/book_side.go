package engine

import (
	"github.com/google/btree"
)

// levelItem adapts a PriceLevel to btree.Item. Bid levels sort
// descending and ask levels ascending, so the tree minimum is always
// the best price on either side.
type levelItem struct {
	level      *PriceLevel
	descending bool
}

func (it *levelItem) Less(than btree.Item) bool {
	other := than.(*levelItem)
	if it.descending {
		return it.level.Price > other.level.Price
	}
	return it.level.Price < other.level.Price
}

// BookSide is one half of the book: a price-ordered collection of
// price levels. No two levels share a price, and a level is dropped
// the instant it empties.
type BookSide struct {
	side   Side
	levels *btree.BTree
}

func NewBookSide(side Side) *BookSide {
	return &BookSide{
		side:   side,
		levels: btree.New(32),
	}
}

func (bs *BookSide) probe(price int64) *levelItem {
	return &levelItem{
		level:      &PriceLevel{Price: price},
		descending: bs.side == SideBuy,
	}
}

// Best returns the best-priced level, nil when the side is empty.
func (bs *BookSide) Best() *PriceLevel {
	item := bs.levels.Min()
	if item == nil {
		return nil
	}
	return item.(*levelItem).level
}

// Level returns the level at exactly price, nil if absent.
func (bs *BookSide) Level(price int64) *PriceLevel {
	item := bs.levels.Get(bs.probe(price))
	if item == nil {
		return nil
	}
	return item.(*levelItem).level
}

// GetOrCreate returns the level at price, creating it if absent.
func (bs *BookSide) GetOrCreate(price int64) *PriceLevel {
	if lvl := bs.Level(price); lvl != nil {
		return lvl
	}
	lvl := &PriceLevel{
		Price:  price,
		Orders: make([]*Order, 0, 4),
	}
	bs.levels.ReplaceOrInsert(&levelItem{
		level:      lvl,
		descending: bs.side == SideBuy,
	})
	return lvl
}

func (bs *BookSide) Remove(price int64) {
	bs.levels.Delete(bs.probe(price))
}

func (bs *BookSide) Len() int {
	return bs.levels.Len()
}

// Ascend walks levels best price first.
func (bs *BookSide) Ascend(fn func(*PriceLevel) bool) {
	bs.levels.Ascend(func(item btree.Item) bool {
		return fn(item.(*levelItem).level)
	})
}
