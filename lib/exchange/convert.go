package exchange

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// Converter converts amounts between currencies through a RateSource.
type Converter struct {
	Source RateSource
}

func NewConverter(source RateSource) Converter {
	return Converter{Source: source}
}

// Convert re-expresses an amount of `from` currency in `to` currency.
// Zero amounts convert to zero without consulting the rate source, so a
// response full of empty money fields never triggers lookups.
func (c Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	rate, err := c.Source.Rate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

type memoEntry struct {
	once sync.Once
	rate decimal.Decimal
	err  error
}

// Memo wraps a RateSource so that each distinct (from, to) pair is looked
// up at most once. It is meant to be request-scoped: rates are never
// invalidated.
type Memo struct {
	source  RateSource
	mu      sync.Mutex
	entries map[string]*memoEntry
}

func NewMemo(source RateSource) *Memo {
	return &Memo{
		source:  source,
		entries: map[string]*memoEntry{},
	}
}

func (m *Memo) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := from + "/" + to

	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &memoEntry{}
		m.entries[key] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.rate, entry.err = m.source.Rate(ctx, from, to)
	})
	return entry.rate, entry.err
}
