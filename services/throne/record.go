package throne

import (
	"encoding/json"
	"fmt"
)

// DataShapeError means a dynamic key the assembler expected was missing
// from a fetched page, or its value no longer unmarshals. Either the
// upstream page's internal data format changed or the user has no
// wishlist; in both cases the record is unusable and nothing partial is
// returned.
type DataShapeError struct {
	Key string
	Err error
}

func (e *DataShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected data shape at %q: %s", e.Key, e.Err)
	}
	return fmt.Sprintf("missing key %q in page data", e.Key)
}

func (e *DataShapeError) Unwrap() error {
	return e.Err
}

type pagePayload struct {
	Props struct {
		PageProps struct {
			Fallback      map[string]json.RawMessage `json:"fallback"`
			InitialCounts json.RawMessage            `json:"initialCounts"`
		} `json:"pageProps"`
	} `json:"props"`
}

// fallback is the upstream mapping from dynamic string keys to arbitrary
// JSON. All lookups into it go through the named helpers below; nothing
// walks the tree ad hoc.
type fallback map[string]json.RawMessage

func (f fallback) lookup(key string, out any) (json.RawMessage, error) {
	raw, ok := f[key]
	if !ok {
		return nil, &DataShapeError{Key: key}
	}
	err := json.Unmarshal(raw, out)
	if err != nil {
		return nil, &DataShapeError{Key: key, Err: err}
	}
	return raw, nil
}

func (f fallback) userInfoFor(username string) (UserInfo, json.RawMessage, error) {
	var info UserInfo
	raw, err := f.lookup("public/useCreatorByUsername/"+username, &info)
	return info, raw, err
}

func (f fallback) previousGiftsFor(userId string) ([]Gift, json.RawMessage, error) {
	var gifts []Gift
	raw, err := f.lookup("public/wishlist/usePreviousGifts/"+userId, &gifts)
	return gifts, raw, err
}

func (f fallback) leaderboardFor(userId string) (Leaderboard, json.RawMessage, error) {
	var board Leaderboard
	raw, err := f.lookup("api-leaderboard/v1/leaderboard/"+userId, &board)
	return board, raw, err
}

func (f fallback) wishlistItemsFor(userId string) ([]Item, json.RawMessage, error) {
	var items []Item
	raw, err := f.lookup("public/wishlist/useWishlistItems/"+userId, &items)
	return items, raw, err
}

func (f fallback) wishlistCollectionsFor(userId string) ([]Collection, json.RawMessage, error) {
	var collections []Collection
	raw, err := f.lookup("public/wishlist/useWishlistCollections/"+userId, &collections)
	return collections, raw, err
}

func parsePage(raw json.RawMessage) (pagePayload, error) {
	var page pagePayload
	err := json.Unmarshal(raw, &page)
	if err != nil {
		return page, &DataShapeError{Key: "props.pageProps", Err: err}
	}
	return page, nil
}

// BuildRecord merges the two raw page payloads into one WishlistRecord.
// `username` must already be lower-cased by the caller; the user id all
// further dynamic keys embed is discovered from the user-info entry of the
// gifted page. On any missing key the whole assembly fails with a
// DataShapeError.
func BuildRecord(username string, gifted, wishlist json.RawMessage) (*WishlistRecord, error) {
	giftedPage, err := parsePage(gifted)
	if err != nil {
		return nil, err
	}
	wishlistPage, err := parsePage(wishlist)
	if err != nil {
		return nil, err
	}

	giftedFallback := fallback(giftedPage.Props.PageProps.Fallback)
	wishlistFallback := fallback(wishlistPage.Props.PageProps.Fallback)

	userInfo, rawUserInfo, err := giftedFallback.userInfoFor(username)
	if err != nil {
		return nil, err
	}

	gifts, rawGifts, err := giftedFallback.previousGiftsFor(userInfo.Id)
	if err != nil {
		return nil, err
	}
	board, rawBoard, err := giftedFallback.leaderboardFor(userInfo.Id)
	if err != nil {
		return nil, err
	}
	items, rawItems, err := wishlistFallback.wishlistItemsFor(userInfo.Id)
	if err != nil {
		return nil, err
	}
	collections, rawCollections, err := wishlistFallback.wishlistCollectionsFor(userInfo.Id)
	if err != nil {
		return nil, err
	}

	rawCounts := giftedPage.Props.PageProps.InitialCounts
	if len(rawCounts) == 0 {
		return nil, &DataShapeError{Key: "initialCounts"}
	}
	var counts InitialCounts
	err = json.Unmarshal(rawCounts, &counts)
	if err != nil {
		return nil, &DataShapeError{Key: "initialCounts", Err: err}
	}

	return &WishlistRecord{
		InitialCounts:       counts,
		UserInfo:            userInfo,
		PreviousGifts:       gifts,
		Leaderboard:         board,
		WishlistItems:       items,
		WishlistCollections: collections,
		raw: cleanedPayload{
			InitialCounts:       rawCounts,
			UserInfo:            rawUserInfo,
			PreviousGifts:       rawGifts,
			Leaderboard:         rawBoard,
			WishlistItems:       rawItems,
			WishlistCollections: rawCollections,
		},
	}, nil
}
