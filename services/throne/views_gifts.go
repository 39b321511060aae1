package throne

import (
	"context"
	"strings"
	"throne-backend/lib/exchange"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type GifterRef struct {
	Username string `json:"username"`
}

type GiftSummary struct {
	Name    string      `json:"name"`
	Gifters []GifterRef `json:"gifters"`
	Id      string      `json:"id"`
}

func BuildGifts(rec *WishlistRecord) []GiftSummary {
	out := []GiftSummary{}
	for _, gift := range rec.PreviousGifts {
		gifters := []GifterRef{}
		for _, gifter := range gift.Customizations.Customers {
			gifters = append(gifters, GifterRef{Username: gifter.CustomerUsername})
		}
		out = append(out, GiftSummary{
			Name:    gift.Name,
			Gifters: gifters,
			Id:      gift.Id,
		})
	}
	return out
}

// giftCore renders the fields every detailed gift shape shares: metadata
// plus the native-currency and USD money sections.
func giftCore(gift Gift) map[string]any {
	out := map[string]any{
		"name":          gift.Name,
		"purchasedAt":   formatTimestamp(gift.PurchasedAt),
		"status":        gift.Status,
		"isComplete":    gift.IsComplete,
		"isDigital":     gift.IsDigitalGood,
		"isCrowdfunded": gift.IsCrowdfunded,
		"id":            gift.Id,
	}
	out[currencyKey(gift.Total.Currency, "_total")] = newGiftTotal(gift.Total)
	out[currencyKey(gift.TotalUsd.Currency, "_total")] = newGiftTotal(gift.TotalUsd)
	return out
}

func BuildGiftsDetailed(rec *WishlistRecord) []map[string]any {
	out := []map[string]any{}
	for _, gift := range rec.PreviousGifts {
		gifters := []GifterRef{}
		for _, gifter := range gift.Customizations.Customers {
			gifters = append(gifters, GifterRef{Username: gifter.CustomerUsername})
		}
		entry := giftCore(gift)
		entry["gifters"] = gifters
		out = append(out, entry)
	}
	return out
}

type GifterView struct {
	Username string `json:"username"`
	Image    string `json:"image"`
}

// giftDetail renders a single gift with gifter images and, on request, a
// display-currency money section derived from the USD one.
func giftDetail(ctx context.Context, conv exchange.Converter, gift Gift, displayCurrency string) (map[string]any, error) {
	gifters := []GifterView{}
	for _, gifter := range gift.Customizations.Customers {
		gifters = append(gifters, GifterView{
			Username: gifter.CustomerUsername,
			Image:    gifter.CustomerImage,
		})
	}

	out := giftCore(gift)
	out["gifters"] = gifters
	out["link"] = gift.Link
	out["image"] = gift.ImageSrc

	if displayCurrency != "" {
		displayTotal, err := convertGiftTotal(ctx, conv, newGiftTotal(gift.TotalUsd), strings.ToUpper(displayCurrency))
		if err != nil {
			return nil, err
		}
		out[currencyKey(displayCurrency, "_total")] = displayTotal
	}
	return out, nil
}

// BuildGift details one gift by id, building over an empty placeholder
// when the id matches nothing.
func BuildGift(ctx context.Context, rec *WishlistRecord, conv exchange.Converter, id, displayCurrency string) (map[string]any, error) {
	var gift Gift
	for _, candidate := range rec.PreviousGifts {
		if candidate.Id == id {
			gift = candidate
			break
		}
	}
	return giftDetail(ctx, conv, gift, displayCurrency)
}

// BuildLatestGift details the most recently purchased gift. With no
// previous gifts at all the view is empty.
func BuildLatestGift(ctx context.Context, rec *WishlistRecord, conv exchange.Converter, displayCurrency string) (map[string]any, error) {
	latest := LatestGift(rec.PreviousGifts)
	if latest == nil {
		return map[string]any{}, nil
	}
	return giftDetail(ctx, conv, *latest, displayCurrency)
}

// BuildTotal aggregates every previous gift into the all-time USD totals,
// with the distinct-gifter count.
func BuildTotal(ctx context.Context, rec *WishlistRecord, conv exchange.Converter, displayCurrency string) (map[string]any, error) {
	rollup := RollupGifts(rec.PreviousGifts)

	out := map[string]any{
		"nbGifts":      rollup.NbGifts,
		"nbGifters":    rollup.NbGifters,
		"usd_price":    rollup.Sum.Price,
		"usd_fees":     rollup.Sum.Fees,
		"usd_subtotal": rollup.Sum.SubTotal,
		"usd_shipping": rollup.Sum.Shipping,
		"usd_total":    rollup.Sum.Total,
	}

	if displayCurrency != "" {
		err := convertGiftSumInto(ctx, out, conv, rollup.Sum, displayCurrency)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// convertGiftSumInto re-expresses a five-field USD sum in the display
// currency, adding one `<displayCurrency>_*` key per field. Conversions
// run concurrently.
func convertGiftSumInto(ctx context.Context, out map[string]any, conv exchange.Converter, sum GiftSum, displayCurrency string) error {
	to := strings.ToUpper(displayCurrency)
	converted := make([]decimal.Decimal, 5)
	amounts := []decimal.Decimal{sum.Price, sum.Fees, sum.SubTotal, sum.Shipping, sum.Total}

	group, ctx := errgroup.WithContext(ctx)
	for i, amount := range amounts {
		group.Go(func() error {
			result, err := conv.Convert(ctx, amount, "USD", to)
			if err != nil {
				return err
			}
			converted[i] = result
			return nil
		})
	}
	err := group.Wait()
	if err != nil {
		return err
	}

	out[currencyKey(displayCurrency, "_price")] = converted[0]
	out[currencyKey(displayCurrency, "_fees")] = converted[1]
	out[currencyKey(displayCurrency, "_subtotal")] = converted[2]
	out[currencyKey(displayCurrency, "_shipping")] = converted[3]
	out[currencyKey(displayCurrency, "_total")] = converted[4]
	return nil
}
