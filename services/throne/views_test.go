package throne

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func formattedAt(epochMs int64) string {
	return time.UnixMilli(epochMs).Format("2006-01-02 15:04:05")
}

func TestBuildUserInfo(t *testing.T) {
	rec := testRecord(t)

	view := BuildUserInfo(rec)
	require.Equal(t, "Ashley", view.DisplayName)
	require.Equal(t, "user-1", view.Id)
	require.Equal(t, int64(3), view.WishlistItemsCount)
	require.Equal(t, int64(2), view.GiftedItemsCount)
	require.Equal(t, int64(1), view.CollectionsCount)
	require.Equal(t, formattedAt(1600000000000), view.CreatedAt)
}

func TestBuildUserSocials(t *testing.T) {
	rec := testRecord(t)

	view := BuildUserSocials(rec)
	require.Equal(t, "twitch", view["mainContentPlatform"])
	require.Equal(t, SocialView{
		Name: "ashley",
		Url:  "https://twitch.tv/ashley",
	}, view["twitch"])
}

func TestBuildCollectionsDetailed(t *testing.T) {
	rec := testRecord(t)
	conv, _ := testConverter(map[string]string{
		"USD/USD": "1",
		"USD/GBP": "0.8",
	})

	views, err := BuildCollectionsDetailed(context.Background(), rec, conv, "GBP")
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	require.Equal(t, "Streaming Setup", view["name"])
	require.Equal(t, int64(3), view["items"])
	require.Equal(t, int64(2), view["individualItems"])
	requireDecimal(t, "13", view["usd_price"].(decimal.Decimal))
	requireDecimal(t, "10.4", view["gbp_price"].(decimal.Decimal))
}

func TestBuildCollectionUnknownIdIsPlaceholder(t *testing.T) {
	rec := testRecord(t)
	conv, source := testConverter(nil)

	view, err := BuildCollection(context.Background(), rec, conv, "no-such-collection", "")
	require.NoError(t, err)

	require.Equal(t, "", view["name"])
	require.Equal(t, "", view["id"])
	require.Equal(t, int64(0), view["items"])
	requireDecimal(t, "0", view["usd_price"].(decimal.Decimal))
	// an empty rollup converts nothing
	require.Equal(t, int64(0), source.calls.Load())
}

func TestBuildCollectionItems(t *testing.T) {
	rec := testRecord(t)

	views := BuildCollectionItems(rec, "col-1")
	require.Len(t, views, 2)
	require.Equal(t, "Headset", views[0].Name)
	require.Equal(t, int64(2), views[0].Quantity)
	requireDecimal(t, "5", views[0].Price)

	require.Empty(t, BuildCollectionItems(rec, "no-such-collection"))
}

func TestBuildItemsDetailedNullPassthrough(t *testing.T) {
	rec := testRecord(t)

	views := BuildItemsDetailed(rec)
	require.Len(t, views, 3)

	// item-2 carries nulls upstream; they must not collapse to false
	mousepad := views[1]
	require.Equal(t, "Mousepad", mousepad["name"])
	require.Nil(t, mousepad["isAvailable"].(*bool))
	require.Nil(t, mousepad["notInStock"].(*bool))

	headset := views[0]
	require.True(t, *headset["isAvailable"].(*bool))

	total := headset["usd_total"].(ItemTotal)
	requireDecimal(t, "10", total.TotalPrice)
	requireDecimal(t, "11", total.TotalPriceWithShipping)
}

func TestBuildItemWithDisplayCurrency(t *testing.T) {
	rec := testRecord(t)
	conv, _ := testConverter(map[string]string{
		"EUR/USD": "1.1",
		"EUR/GBP": "0.9",
	})

	view, err := BuildItem(context.Background(), rec, conv, "item-3", "gbp")
	require.NoError(t, err)

	require.Equal(t, "Album", view["name"])
	require.Equal(t, formattedAt(1690000200000), view["addedAt"])

	native := view["eur_total"].(ItemTotal)
	requireDecimal(t, "2", native.Price)

	usd := view["usd_total"].(ItemTotal)
	requireDecimal(t, "2.2", usd.TotalPriceWithShipping)

	display := view["gbp_total"].(ItemTotal)
	requireDecimal(t, "1.8", display.TotalPriceWithShipping)
}

func TestBuildGifts(t *testing.T) {
	rec := testRecord(t)

	views := BuildGifts(rec)
	require.Len(t, views, 2)
	require.Equal(t, "Keyboard", views[0].Name)
	require.Equal(t, []GifterRef{{Username: "alice"}}, views[0].Gifters)
	require.Equal(t, []GifterRef{{Username: "alice"}, {Username: "bob"}}, views[1].Gifters)
}

func TestBuildGiftsDetailedNormalizesNullFees(t *testing.T) {
	rec := testRecord(t)

	views := BuildGiftsDetailed(rec)
	require.Len(t, views, 2)

	microphone := views[1]
	require.Equal(t, "Microphone", microphone["name"])
	require.Equal(t, formattedAt(1700000100000), microphone["purchasedAt"])

	total := microphone["usd_total"].(GiftTotal)
	requireDecimal(t, "0", total.Fees)
	requireDecimal(t, "10", total.Total)
}

func TestBuildGiftUnknownIdIsPlaceholder(t *testing.T) {
	rec := testRecord(t)
	conv, _ := testConverter(nil)

	view, err := BuildGift(context.Background(), rec, conv, "no-such-gift", "")
	require.NoError(t, err)
	require.Equal(t, "", view["name"])
	require.Equal(t, "", view["id"])
	require.Empty(t, view["gifters"])
}

func TestBuildLatestGift(t *testing.T) {
	rec := testRecord(t)
	conv, _ := testConverter(map[string]string{"USD/GBP": "0.8"})

	view, err := BuildLatestGift(context.Background(), rec, conv, "gbp")
	require.NoError(t, err)

	require.Equal(t, "gift-2", view["id"])
	display := view["gbp_total"].(GiftTotal)
	requireDecimal(t, "8", display.Total)
}

func TestBuildLatestGiftEmpty(t *testing.T) {
	rec := &WishlistRecord{}
	conv, _ := testConverter(nil)

	view, err := BuildLatestGift(context.Background(), rec, conv, "")
	require.NoError(t, err)
	require.Empty(t, view)
}

func TestBuildTotal(t *testing.T) {
	rec := testRecord(t)
	conv, source := testConverter(map[string]string{"USD/GBP": "0.8"})

	view, err := BuildTotal(context.Background(), rec, conv, "gbp")
	require.NoError(t, err)

	require.Equal(t, int64(2), view["nbGifts"])
	require.Equal(t, int64(2), view["nbGifters"])
	requireDecimal(t, "13", view["usd_price"].(decimal.Decimal))
	requireDecimal(t, "0.5", view["usd_fees"].(decimal.Decimal))
	requireDecimal(t, "15.5", view["usd_total"].(decimal.Decimal))

	requireDecimal(t, "10.4", view["gbp_price"].(decimal.Decimal))
	requireDecimal(t, "12.4", view["gbp_total"].(decimal.Decimal))

	// five conversions of one pair hit the source once
	require.Equal(t, int64(1), source.calls.Load())
}

func TestBuildLatestGifters(t *testing.T) {
	rec := testRecord(t)
	conv, _ := testConverter(nil)

	views, err := BuildLatestGifters(context.Background(), rec, conv, "")
	require.NoError(t, err)
	require.Len(t, views, 2)

	alice := views[0]
	require.Equal(t, "alice", alice["username"])
	latest := alice["latestGift"].(map[string]any)
	require.Equal(t, "gift-2", latest["id"])

	// alice's summary spans both of her gifts
	summary := alice["summary"].(map[string]any)
	require.Equal(t, int64(2), summary["nbGifts"])
	requireDecimal(t, "15.5", summary["usd_total"].(decimal.Decimal))

	bob := views[1]
	require.Equal(t, "bob", bob["username"])
	bobSummary := bob["summary"].(map[string]any)
	require.Equal(t, int64(1), bobSummary["nbGifts"])
	requireDecimal(t, "10", bobSummary["usd_total"].(decimal.Decimal))
}

func TestBuildAllGifters(t *testing.T) {
	rec := testRecord(t)

	views := BuildAllGifters(rec)
	require.Len(t, views, 2)
	require.Equal(t, "alice", views[0]["username"])
	require.Equal(t, "bob", views[1]["username"])

	aliceLatest := views[0]["latestGift"].(map[string]any)
	require.Equal(t, "gift-2", aliceLatest["id"])
}

func TestBuildLast20(t *testing.T) {
	rec := testRecord(t)

	views := BuildLast20(rec)
	require.Len(t, views, 1)
	require.Equal(t, "alice", views[0].Username)
	require.Equal(t, formattedAt(1700000100000), views[0].PurchasedAt)
	require.NotNil(t, views[0].Image)
}

func TestBuildLeaderboard(t *testing.T) {
	rec := testRecord(t)

	all, err := BuildLeaderboard(rec, "all")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "alice", all[0].Username)
	require.Equal(t, int64(2), all[0].NbGifts)
	requireDecimal(t, "15.5", all[0].UsdTotal)

	week, err := BuildLeaderboard(rec, "week")
	require.NoError(t, err)
	require.Empty(t, week)

	month, err := BuildLeaderboard(rec, "month")
	require.NoError(t, err)
	require.Len(t, month, 1)
}

func TestBuildLeaderboardInvalidPeriod(t *testing.T) {
	rec := testRecord(t)

	_, err := BuildLeaderboard(rec, "year")
	require.ErrorIs(t, err, ErrInvalidTimePeriod)
}
