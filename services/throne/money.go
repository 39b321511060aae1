package throne

import (
	"context"
	"strings"
	"throne-backend/lib/exchange"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func init() {
	// monetary amounts are emitted as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// minorToMajor converts integer minor units (cents) to a decimal amount
// in major units.
func minorToMajor(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// minorToMajorOrZero normalizes an optional minor-unit field: absent or
// null becomes 0, never null.
func minorToMajorOrZero(v *int64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return minorToMajor(*v)
}

func currencyKey(currency, suffix string) string {
	return strings.ToLower(currency) + suffix
}

// GiftTotal is the five-field money section of gift views, in major
// units.
type GiftTotal struct {
	Currency string          `json:"currency"`
	Price    decimal.Decimal `json:"price"`
	Fees     decimal.Decimal `json:"fees"`
	SubTotal decimal.Decimal `json:"subTotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

func newGiftTotal(b MoneyBreakdown) GiftTotal {
	return GiftTotal{
		Currency: b.Currency,
		Price:    minorToMajor(b.Price),
		Fees:     minorToMajorOrZero(b.Fees),
		SubTotal: minorToMajorOrZero(b.SubTotal),
		Shipping: minorToMajor(b.Shipping),
		Total:    minorToMajorOrZero(b.Total),
	}
}

// convertGiftTotal re-expresses a gift total in another currency. The
// field conversions run concurrently but the result is only assembled
// once all of them finished.
func convertGiftTotal(ctx context.Context, conv exchange.Converter, src GiftTotal, to string) (GiftTotal, error) {
	out := GiftTotal{Currency: to}
	from := strings.ToUpper(src.Currency)

	group, ctx := errgroup.WithContext(ctx)
	convert := func(amount decimal.Decimal, dst *decimal.Decimal) {
		group.Go(func() error {
			converted, err := conv.Convert(ctx, amount, from, to)
			if err != nil {
				return err
			}
			*dst = converted
			return nil
		})
	}

	convert(src.Price, &out.Price)
	convert(src.Fees, &out.Fees)
	convert(src.SubTotal, &out.SubTotal)
	convert(src.Shipping, &out.Shipping)
	convert(src.Total, &out.Total)

	err := group.Wait()
	if err != nil {
		return GiftTotal{}, err
	}
	return out, nil
}

// ItemTotal is the money section of item views, in major units.
type ItemTotal struct {
	Currency               string          `json:"currency"`
	Price                  decimal.Decimal `json:"price"`
	TotalPrice             decimal.Decimal `json:"totalPrice"`
	Shipping               decimal.Decimal `json:"shipping"`
	TotalPriceWithShipping decimal.Decimal `json:"totalPriceWithShipping"`
}

func newItemTotal(item Item) ItemTotal {
	price := minorToMajor(item.Price)
	totalPrice := price.Mul(decimal.NewFromInt(item.Quantity))
	shipping := minorToMajorOrZero(item.Shipping)
	return ItemTotal{
		Currency:               item.Currency,
		Price:                  price,
		TotalPrice:             totalPrice,
		Shipping:               shipping,
		TotalPriceWithShipping: totalPrice.Add(shipping),
	}
}

// convertItemTotal converts the unit price and shipping from the item's
// native currency, then rebuilds the derived totals on top of the
// converted figures.
func convertItemTotal(ctx context.Context, conv exchange.Converter, item Item, to string) (ItemTotal, error) {
	native := newItemTotal(item)
	out := ItemTotal{Currency: to}
	from := strings.ToUpper(item.Currency)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		converted, err := conv.Convert(ctx, native.Price, from, to)
		if err != nil {
			return err
		}
		out.Price = converted
		return nil
	})
	group.Go(func() error {
		converted, err := conv.Convert(ctx, native.Shipping, from, to)
		if err != nil {
			return err
		}
		out.Shipping = converted
		return nil
	})

	err := group.Wait()
	if err != nil {
		return ItemTotal{}, err
	}

	out.TotalPrice = out.Price.Mul(decimal.NewFromInt(item.Quantity))
	out.TotalPriceWithShipping = out.TotalPrice.Add(out.Shipping)
	return out, nil
}
