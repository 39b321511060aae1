package throne

import (
	"context"
	"errors"
	"strings"
	"throne-backend/lib/exchange"

	"github.com/shopspring/decimal"
)

func gifterSummary(nbGifts int64, sum GiftSum) map[string]any {
	return map[string]any{
		"nbGifts":      nbGifts,
		"usd_price":    sum.Price,
		"usd_fees":     sum.Fees,
		"usd_subtotal": sum.SubTotal,
		"usd_shipping": sum.Shipping,
		"usd_total":    sum.Total,
	}
}

// BuildLatestGifters lists the gifters of the most recent gift, each with
// their latest-gift detail and their all-time summary across every gift
// that lists them.
func BuildLatestGifters(ctx context.Context, rec *WishlistRecord, conv exchange.Converter, displayCurrency string) ([]map[string]any, error) {
	out := []map[string]any{}

	latest := LatestGift(rec.PreviousGifts)
	if latest == nil {
		return out, nil
	}

	rollups := map[string]*GifterRollup{}
	for _, rollup := range FoldGifters(rec.PreviousGifts) {
		rollups[rollup.Username] = rollup
	}

	for _, gifter := range latest.Customizations.Customers {
		latestGift := giftCore(*latest)

		entry := map[string]any{
			"username":   gifter.CustomerUsername,
			"image":      gifter.CustomerImage,
			"latestGift": latestGift,
		}

		rollup := rollups[gifter.CustomerUsername]
		summary := gifterSummary(rollup.NbGifts, rollup.Sum)
		entry["summary"] = summary

		if displayCurrency != "" {
			displayTotal, err := convertGiftTotal(ctx, conv, newGiftTotal(latest.TotalUsd), strings.ToUpper(displayCurrency))
			if err != nil {
				return nil, err
			}
			latestGift[currencyKey(displayCurrency, "_total")] = displayTotal

			err = convertGiftSumInto(ctx, summary, conv, rollup.Sum, displayCurrency)
			if err != nil {
				return nil, err
			}
		}

		out = append(out, entry)
	}
	return out, nil
}

// BuildAllGifters aggregates every gifter seen across all previous
// gifts, in encounter order, each with their latest gift and five-field
// USD summary.
func BuildAllGifters(rec *WishlistRecord) []map[string]any {
	out := []map[string]any{}
	for _, rollup := range FoldGifters(rec.PreviousGifts) {
		out = append(out, map[string]any{
			"username":   rollup.Username,
			"image":      rollup.Image,
			"latestGift": giftCore(*rollup.Latest),
			"summary":    gifterSummary(rollup.NbGifts, rollup.Sum),
		})
	}
	return out
}

type Last20View struct {
	Username    string  `json:"username"`
	PurchasedAt string  `json:"purchasedAt"`
	Image       *string `json:"image"`
}

// BuildLast20 reshapes the precomputed last-twenty-gifters slice.
func BuildLast20(rec *WishlistRecord) []Last20View {
	out := []Last20View{}
	for _, gifter := range rec.Leaderboard.LastTwentyGifters {
		out = append(out, Last20View{
			Username:    gifter.GifterUsername,
			PurchasedAt: formatTimestamp(gifter.PurchasedAt),
			Image:       gifter.GifterImage,
		})
	}
	return out
}

// ErrInvalidTimePeriod rejects leaderboard periods other than all, month
// and week.
var ErrInvalidTimePeriod = errors.New("invalid time period")

type LeaderboardRow struct {
	Username string          `json:"username"`
	NbGifts  int64           `json:"nbGifts"`
	UsdTotal decimal.Decimal `json:"usd_total"`
	Image    *string         `json:"image"`
}

// BuildLeaderboard picks one of the three precomputed leaderboard slices.
func BuildLeaderboard(rec *WishlistRecord, period string) ([]LeaderboardRow, error) {
	var slice []LeaderboardGifter
	switch period {
	case "all":
		slice = rec.Leaderboard.AllTime
	case "month":
		slice = rec.Leaderboard.LastMonth
	case "week":
		slice = rec.Leaderboard.LastWeek
	default:
		return nil, ErrInvalidTimePeriod
	}

	out := []LeaderboardRow{}
	for _, gifter := range slice {
		out = append(out, LeaderboardRow{
			Username: gifter.GifterUsername,
			NbGifts:  gifter.TotalPaymentNumber,
			UsdTotal: minorToMajor(gifter.TotalAmountSpentUSD),
			Image:    gifter.GifterImage,
		})
	}
	return out, nil
}
