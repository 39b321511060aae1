package throne

import (
	"encoding/json"
	"testing"
	"throne-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestBuildRecord(t *testing.T) {
	defer telemetry.SetupForTesting(t, "test.services.throne")()

	rec := testRecord(t)

	require.Equal(t, "user-1", rec.UserInfo.Id)
	require.Equal(t, "Ashley", rec.UserInfo.DisplayName)
	require.Equal(t, int64(3), rec.InitialCounts.Wishlist)
	require.Len(t, rec.PreviousGifts, 2)
	require.Len(t, rec.WishlistItems, 3)
	require.Len(t, rec.WishlistCollections, 1)
	require.Len(t, rec.Leaderboard.AllTime, 2)

	// optional item fields keep null distinct from false/zero
	require.Nil(t, rec.WishlistItems[1].IsAvailable)
	require.Nil(t, rec.WishlistItems[1].Link)
	require.NotNil(t, rec.WishlistItems[0].IsAvailable)

	// null fees stay null on the record until rollups normalize them
	require.Nil(t, rec.PreviousGifts[1].TotalUsd.Fees)
}

func TestBuildRecordDeterministic(t *testing.T) {
	first := testRecord(t)
	second := testRecord(t)

	firstCleaned, err := first.Cleaned()
	require.NoError(t, err)
	secondCleaned, err := second.Cleaned()
	require.NoError(t, err)

	require.Equal(t, firstCleaned, secondCleaned)
}

func TestCleanedRoundTripsUpstreamFields(t *testing.T) {
	rec := testRecord(t)

	cleaned, err := rec.Cleaned()
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(cleaned, &decoded))
	for _, key := range []string{
		"initialCounts",
		"userInfo",
		"previousGifts",
		"leaderboard",
		"wishlistItems",
		"wishlistCollections",
	} {
		require.Contains(t, decoded, key)
	}

	// fields the typed structs do not model must still survive verbatim
	var info map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["userInfo"], &info))
	require.Contains(t, info, "bio")
	require.Contains(t, info, "socialLinks")
}

func TestBuildRecordMissingKey(t *testing.T) {
	// wishlist page without the items entry
	broken := `{
		"props": {"pageProps": {"fallback": {
			"public/wishlist/useWishlistCollections/user-1": []
		}}}
	}`

	_, err := BuildRecord("ashley", []byte(giftedPageFixture), []byte(broken))
	require.Error(t, err)

	var dataShape *DataShapeError
	require.ErrorAs(t, err, &dataShape)
	require.Equal(t, "public/wishlist/useWishlistItems/user-1", dataShape.Key)
}

func TestBuildRecordMissingInitialCounts(t *testing.T) {
	var page map[string]any
	require.NoError(t, json.Unmarshal([]byte(giftedPageFixture), &page))
	props := page["props"].(map[string]any)["pageProps"].(map[string]any)
	delete(props, "initialCounts")
	gifted, err := json.Marshal(page)
	require.NoError(t, err)

	_, err = BuildRecord("ashley", gifted, []byte(wishlistPageFixture))
	require.Error(t, err)

	var dataShape *DataShapeError
	require.ErrorAs(t, err, &dataShape)
	require.Equal(t, "initialCounts", dataShape.Key)
}

func TestBuildRecordMalformedPage(t *testing.T) {
	_, err := BuildRecord("ashley", []byte(`"not an object"`), []byte(wishlistPageFixture))
	require.Error(t, err)

	var dataShape *DataShapeError
	require.ErrorAs(t, err, &dataShape)
}
