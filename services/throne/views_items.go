package throne

import (
	"context"
	"strings"
	"throne-backend/lib/exchange"
)

type ItemSummary struct {
	Name string `json:"name"`
	Id   string `json:"id"`
}

func BuildItems(rec *WishlistRecord) []ItemSummary {
	out := []ItemSummary{}
	for _, item := range rec.WishlistItems {
		out = append(out, ItemSummary{
			Name: item.Name,
			Id:   item.Id,
		})
	}
	return out
}

// BuildItemsDetailed lists every wishlist item with its native-currency
// money section. Optional source fields pass through as null, distinct
// from false.
func BuildItemsDetailed(rec *WishlistRecord) []map[string]any {
	out := []map[string]any{}
	for _, item := range rec.WishlistItems {
		entry := map[string]any{
			"name":        item.Name,
			"id":          item.Id,
			"addedAt":     formatTimestamp(item.CreatedAt),
			"isDigital":   item.IsDigitalGood,
			"isAvailable": item.IsAvailable,
			"notInStock":  item.NotInStock,
			"quantity":    item.Quantity,
		}
		entry[currencyKey(item.Currency, "_total")] = newItemTotal(item)
		out = append(out, entry)
	}
	return out
}

// BuildItem details a single item with native, USD and optional
// display-currency money sections. An unmatched id builds the view over
// an empty placeholder item.
func BuildItem(ctx context.Context, rec *WishlistRecord, conv exchange.Converter, id, displayCurrency string) (map[string]any, error) {
	var item Item
	for _, candidate := range rec.WishlistItems {
		if candidate.Id == id {
			item = candidate
			break
		}
	}

	out := map[string]any{
		"name":        item.Name,
		"link":        item.Link,
		"addedAt":     formatTimestamp(item.CreatedAt),
		"isDigital":   item.IsDigitalGood,
		"isAvailable": item.IsAvailable,
		"notInStock":  item.NotInStock,
		"quantity":    item.Quantity,
		"image":       item.ImgLink,
		"id":          item.Id,
	}

	out[currencyKey(item.Currency, "_total")] = newItemTotal(item)

	usdTotal, err := convertItemTotal(ctx, conv, item, "USD")
	if err != nil {
		return nil, err
	}
	out["usd_total"] = usdTotal

	if displayCurrency != "" {
		displayTotal, err := convertItemTotal(ctx, conv, item, strings.ToUpper(displayCurrency))
		if err != nil {
			return nil, err
		}
		out[currencyKey(displayCurrency, "_total")] = displayTotal
	}

	return out, nil
}
