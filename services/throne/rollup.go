package throne

import (
	"context"
	"slices"
	"strings"
	"throne-backend/lib/exchange"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CurrencyTotals accumulates amounts keyed by currency code with
// insert-or-add semantics. Codes keep their encounter order so rendered
// output is deterministic.
type CurrencyTotals struct {
	order  []string
	totals map[string]decimal.Decimal
}

func (t *CurrencyTotals) Add(code string, amount decimal.Decimal) {
	if t.totals == nil {
		t.totals = map[string]decimal.Decimal{}
	}
	if !slices.Contains(t.order, code) {
		t.order = append(t.order, code)
	}
	t.totals[code] = t.totals[code].Add(amount)
}

// Codes returns every currency code seen, in encounter order.
func (t *CurrencyTotals) Codes() []string {
	return t.order
}

func (t *CurrencyTotals) Get(code string) decimal.Decimal {
	return t.totals[code]
}

// CollectionRollup aggregates the items belonging to one collection.
// Items is the quantity-weighted count, IndividualItems the number of
// distinct wishlist entries.
type CollectionRollup struct {
	Items           int64
	IndividualItems int64
	Prices          CurrencyTotals
}

// RollupCollection folds every item whose collectionIds contains the
// given collection id, accumulating price per source currency as
// price/100 * quantity.
func RollupCollection(items []Item, collectionId string) CollectionRollup {
	var rollup CollectionRollup
	for _, item := range items {
		if !slices.Contains(item.CollectionIds, collectionId) {
			continue
		}
		rollup.IndividualItems++
		rollup.Items += item.Quantity
		rollup.Prices.Add(
			item.Currency,
			minorToMajor(item.Price).Mul(decimal.NewFromInt(item.Quantity)),
		)
	}
	return rollup
}

// UsdTotal converts every per-currency subtotal to USD and sums them. The
// per-currency conversions run concurrently.
func (r CollectionRollup) UsdTotal(ctx context.Context, conv exchange.Converter) (decimal.Decimal, error) {
	codes := r.Prices.Codes()
	converted := make([]decimal.Decimal, len(codes))

	group, ctx := errgroup.WithContext(ctx)
	for i, code := range codes {
		group.Go(func() error {
			out, err := conv.Convert(ctx, r.Prices.Get(code), strings.ToUpper(code), "USD")
			if err != nil {
				return err
			}
			converted[i] = out
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, amount := range converted {
		total = total.Add(amount)
	}
	return total, nil
}

// GiftSum is a running five-field USD sum over gifts, in major units.
type GiftSum struct {
	Price    decimal.Decimal
	Fees     decimal.Decimal
	SubTotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

func (s *GiftSum) add(b MoneyBreakdown) {
	s.Price = s.Price.Add(minorToMajor(b.Price))
	s.Fees = s.Fees.Add(minorToMajorOrZero(b.Fees))
	s.SubTotal = s.SubTotal.Add(minorToMajorOrZero(b.SubTotal))
	s.Shipping = s.Shipping.Add(minorToMajor(b.Shipping))
	s.Total = s.Total.Add(minorToMajorOrZero(b.Total))
}

// GiftRollup aggregates every previous gift of a creator. NbGifters is
// the number of distinct gifter usernames: a gifter recurring across many
// gifts counts once.
type GiftRollup struct {
	NbGifts   int64
	NbGifters int64
	Sum       GiftSum
}

func RollupGifts(gifts []Gift) GiftRollup {
	var rollup GiftRollup
	seen := map[string]struct{}{}

	for _, gift := range gifts {
		rollup.NbGifts++
		rollup.Sum.add(gift.TotalUsd)
		for _, gifter := range gift.Customizations.Customers {
			seen[gifter.CustomerUsername] = struct{}{}
		}
	}
	rollup.NbGifters = int64(len(seen))
	return rollup
}

// GifterRollup is the per-gifter aggregate over all gifts that list the
// gifter.
type GifterRollup struct {
	Username string
	Image    string
	NbGifts  int64
	Sum      GiftSum
	// Latest points at the gift with the maximum purchasedAt in the
	// group. Ties keep the first gift encountered, since the comparison
	// is strictly greater-than.
	Latest *Gift
}

// FoldGifters streams over the gifts once, keeping a running aggregate
// per gifter username. Gifters come out in encounter order.
func FoldGifters(gifts []Gift) []*GifterRollup {
	byUsername := map[string]*GifterRollup{}
	var order []*GifterRollup

	for i := range gifts {
		gift := &gifts[i]
		for _, gifter := range gift.Customizations.Customers {
			rollup, ok := byUsername[gifter.CustomerUsername]
			if !ok {
				rollup = &GifterRollup{
					Username: gifter.CustomerUsername,
					Image:    gifter.CustomerImage,
					Latest:   gift,
				}
				byUsername[gifter.CustomerUsername] = rollup
				order = append(order, rollup)
			} else if gift.PurchasedAt > rollup.Latest.PurchasedAt {
				rollup.Latest = gift
			}
			rollup.NbGifts++
			rollup.Sum.add(gift.TotalUsd)
		}
	}
	return order
}

// LatestGift returns the gift with the maximum purchasedAt, first one
// seen winning ties. Returns nil when there are no gifts.
func LatestGift(gifts []Gift) *Gift {
	if len(gifts) == 0 {
		return nil
	}
	latest := &gifts[0]
	for i := range gifts {
		if gifts[i].PurchasedAt > latest.PurchasedAt {
			latest = &gifts[i]
		}
	}
	return latest
}
