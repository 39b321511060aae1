package throne

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"throne-backend/lib/exchange"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// staticRates is a RateSource with a fixed rate table, counting lookups
// so tests can assert how often the network would have been hit.
type staticRates struct {
	calls atomic.Int64
	rates map[string]string
}

func (s *staticRates) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	s.calls.Add(1)
	rate, ok := s.rates[from+"/"+to]
	if !ok {
		return decimal.Zero, fmt.Errorf("no test rate for %s -> %s", from, to)
	}
	return decimal.RequireFromString(rate), nil
}

func testConverter(rates map[string]string) (exchange.Converter, *staticRates) {
	source := &staticRates{rates: rates}
	return exchange.NewConverter(exchange.NewMemo(source)), source
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)),
		"want %s, got %s", want, got)
}

func ptrTo[T any](v T) *T {
	return &v
}

// usdBreakdown builds a full USD money section from minor units.
func usdBreakdown(price, fees, subTotal, shipping, total int64) MoneyBreakdown {
	return MoneyBreakdown{
		Currency: "usd",
		Price:    price,
		Fees:     ptrTo(fees),
		SubTotal: ptrTo(subTotal),
		Shipping: shipping,
		Total:    ptrTo(total),
	}
}

func giftBy(id string, purchasedAt int64, total MoneyBreakdown, gifters ...Gifter) Gift {
	return Gift{
		Id:          id,
		Name:        "gift " + id,
		PurchasedAt: purchasedAt,
		Status:      "processed",
		IsComplete:  true,
		Total:       total,
		TotalUsd:    total,
		Customizations: Customizations{
			Customers: gifters,
		},
	}
}

const (
	giftedPageFixture = `{
		"props": {
			"pageProps": {
				"fallback": {
					"public/useCreatorByUsername/ashley": {
						"_id": "user-1",
						"username": "ashley",
						"displayName": "Ashley",
						"bio": "streamer",
						"createdAt": 1600000000000,
						"pictureUrl": "https://cdn.example.com/ashley.png",
						"mainContentPlatform": "twitch",
						"socialLinks": [
							{"type": "twitch", "name": "ashley", "url": "https://twitch.tv/ashley"}
						],
						"surpriseCategories": ["games"],
						"interests": ["rhythm games"]
					},
					"public/wishlist/usePreviousGifts/user-1": [
						{
							"id": "gift-1",
							"name": "Keyboard",
							"purchasedAt": 1700000000000,
							"status": "processed",
							"isComplete": true,
							"total": {"currency": "usd", "price": 500, "fees": 50, "subTotal": 550, "shipping": 0, "total": 550},
							"totalUsd": {"currency": "usd", "price": 500, "fees": 50, "subTotal": 550, "shipping": 0, "total": 550},
							"customizations": {"customers": [
								{"customerUsername": "alice", "customerImage": "https://cdn.example.com/alice.png"}
							]}
						},
						{
							"id": "gift-2",
							"name": "Microphone",
							"purchasedAt": 1700000100000,
							"status": "processed",
							"isComplete": true,
							"isCrowdfunded": true,
							"total": {"currency": "usd", "price": 800, "fees": null, "subTotal": 800, "shipping": 200, "total": 1000},
							"totalUsd": {"currency": "usd", "price": 800, "fees": null, "subTotal": 800, "shipping": 200, "total": 1000},
							"customizations": {"customers": [
								{"customerUsername": "alice", "customerImage": "https://cdn.example.com/alice.png"},
								{"customerUsername": "bob", "customerImage": "https://cdn.example.com/bob.png"}
							]}
						}
					],
					"api-leaderboard/v1/leaderboard/user-1": {
						"lastTwentyGifters": [
							{"gifterUsername": "alice", "gifterImage": "https://cdn.example.com/alice.png", "totalPaymentNumber": 2, "totalAmountSpentUSD": 1550, "purchasedAt": 1700000100000}
						],
						"leaderboardAllTime": [
							{"gifterUsername": "alice", "gifterImage": null, "totalPaymentNumber": 2, "totalAmountSpentUSD": 1550},
							{"gifterUsername": "bob", "gifterImage": null, "totalPaymentNumber": 1, "totalAmountSpentUSD": 1000}
						],
						"leaderboardLastWeek": [],
						"leaderboardLastMonth": [
							{"gifterUsername": "alice", "gifterImage": null, "totalPaymentNumber": 1, "totalAmountSpentUSD": 1000}
						]
					}
				},
				"initialCounts": {"wishlist": 3, "previousGifts": 2, "collections": 1}
			}
		}
	}`

	wishlistPageFixture = `{
		"props": {
			"pageProps": {
				"fallback": {
					"public/wishlist/useWishlistItems/user-1": [
						{
							"id": "item-1",
							"name": "Headset",
							"currency": "usd",
							"price": 500,
							"quantity": 2,
							"collectionIds": ["col-1"],
							"shipping": 100,
							"isAvailable": true,
							"notInStock": false,
							"isDigitalGood": false,
							"createdAt": 1690000000000,
							"link": "https://shop.example.com/headset",
							"imgLink": "https://cdn.example.com/headset.png"
						},
						{
							"id": "item-2",
							"name": "Mousepad",
							"currency": "usd",
							"price": 300,
							"quantity": 1,
							"collectionIds": ["col-1"],
							"shipping": null,
							"isAvailable": null,
							"notInStock": null,
							"isDigitalGood": false,
							"createdAt": 1690000100000,
							"link": null,
							"imgLink": ""
						},
						{
							"id": "item-3",
							"name": "Album",
							"currency": "eur",
							"price": 200,
							"quantity": 1,
							"collectionIds": [],
							"shipping": 0,
							"isAvailable": true,
							"notInStock": false,
							"isDigitalGood": true,
							"createdAt": 1690000200000,
							"link": "https://shop.example.com/album",
							"imgLink": ""
						}
					],
					"public/wishlist/useWishlistCollections/user-1": [
						{
							"id": "col-1",
							"title": "Streaming Setup",
							"description": "gear for the new room",
							"createdAt": 1680000000000,
							"updatedAt": 1680000100000,
							"imageSrc": "https://cdn.example.com/setup.png"
						}
					]
				}
			}
		}
	}`
)

func testRecord(t *testing.T) *WishlistRecord {
	t.Helper()
	rec, err := BuildRecord("ashley", []byte(giftedPageFixture), []byte(wishlistPageFixture))
	require.NoError(t, err)
	return rec
}
