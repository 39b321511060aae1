package throne

import (
	"context"
	"slices"
	"strings"
	"throne-backend/lib/exchange"

	"github.com/shopspring/decimal"
)

type CollectionSummary struct {
	Title string `json:"title"`
	Id    string `json:"id"`
}

func BuildCollections(rec *WishlistRecord) []CollectionSummary {
	out := []CollectionSummary{}
	for _, collection := range rec.WishlistCollections {
		out = append(out, CollectionSummary{
			Title: collection.Title,
			Id:    collection.Id,
		})
	}
	return out
}

// collectionTotalsInto emits the counts and monetary totals of one
// collection rollup: one `<currency>_price` entry per source currency,
// the USD sum, and optionally a display-currency re-expression of the
// USD sum.
func collectionTotalsInto(ctx context.Context, out map[string]any, conv exchange.Converter, rollup CollectionRollup, displayCurrency string) error {
	out["items"] = rollup.Items
	out["individualItems"] = rollup.IndividualItems

	for _, code := range rollup.Prices.Codes() {
		out[currencyKey(code, "_price")] = rollup.Prices.Get(code)
	}

	usdTotal, err := rollup.UsdTotal(ctx, conv)
	if err != nil {
		return err
	}
	out["usd_price"] = usdTotal

	if displayCurrency != "" {
		displayTotal, err := conv.Convert(ctx, usdTotal, "USD", strings.ToUpper(displayCurrency))
		if err != nil {
			return err
		}
		out[currencyKey(displayCurrency, "_price")] = displayTotal
	}
	return nil
}

func BuildCollectionsDetailed(ctx context.Context, rec *WishlistRecord, conv exchange.Converter, displayCurrency string) ([]map[string]any, error) {
	out := []map[string]any{}
	for _, collection := range rec.WishlistCollections {
		entry := map[string]any{
			"name":        collection.Title,
			"description": collection.Description,
			"id":          collection.Id,
			"updatedAt":   formatTimestamp(collection.UpdatedAt),
		}
		rollup := RollupCollection(rec.WishlistItems, collection.Id)
		err := collectionTotalsInto(ctx, entry, conv, rollup, displayCurrency)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// BuildCollection details a single collection. An unmatched id does not
// fail: the view is built over an empty placeholder, mirroring the
// permissive behavior of the public page.
func BuildCollection(ctx context.Context, rec *WishlistRecord, conv exchange.Converter, id, displayCurrency string) (map[string]any, error) {
	var collection Collection
	for _, candidate := range rec.WishlistCollections {
		if candidate.Id == id {
			collection = candidate
			break
		}
	}

	out := map[string]any{
		"name":        collection.Title,
		"description": collection.Description,
		"id":          collection.Id,
		"createdAt":   formatTimestamp(collection.CreatedAt),
		"updatedAt":   formatTimestamp(collection.UpdatedAt),
		"image":       collection.ImageSrc,
	}
	rollup := RollupCollection(rec.WishlistItems, id)
	err := collectionTotalsInto(ctx, out, conv, rollup, displayCurrency)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type CollectionItemView struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Id       string          `json:"id"`
}

func BuildCollectionItems(rec *WishlistRecord, id string) []CollectionItemView {
	out := []CollectionItemView{}
	for _, item := range rec.WishlistItems {
		if !slices.Contains(item.CollectionIds, id) {
			continue
		}
		out = append(out, CollectionItemView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    minorToMajor(item.Price),
			Currency: item.Currency,
			Id:       item.Id,
		})
	}
	return out
}
