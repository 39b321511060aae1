package throne

import "encoding/json"

// InitialCounts carries the entity counts embedded at the top of the
// gifted page.
type InitialCounts struct {
	Wishlist      int64 `json:"wishlist"`
	PreviousGifts int64 `json:"previousGifts"`
	Collections   int64 `json:"collections"`
}

type Birthday struct {
	Month int `json:"month"`
	Day   int `json:"day"`
}

type SocialLink struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Url  string `json:"url"`
}

type UserInfo struct {
	Id                   string       `json:"_id"`
	Username             string       `json:"username"`
	DisplayName          string       `json:"displayName"`
	Bio                  string       `json:"bio"`
	Birthday             *Birthday    `json:"birthday"`
	CreatedAt            int64        `json:"createdAt"`
	PictureUrl           string       `json:"pictureUrl"`
	BackgroundPictureUrl string       `json:"backgroundPictureUrl"`
	MainContentPlatform  string       `json:"mainContentPlatform"`
	SocialLinks          []SocialLink `json:"socialLinks"`
	SurpriseCategories   []string     `json:"surpriseCategories"`
	Interests            []string     `json:"interests"`
}

// Item is a wishlist entry. Price and Shipping are integer minor units
// (cents); optional fields stay nil when the upstream page omits them so
// views can pass null through instead of coercing to false/0.
type Item struct {
	Id            string   `json:"id"`
	Name          string   `json:"name"`
	Currency      string   `json:"currency"`
	Price         int64    `json:"price"`
	Quantity      int64    `json:"quantity"`
	CollectionIds []string `json:"collectionIds"`
	Shipping      *int64   `json:"shipping"`
	IsAvailable   *bool    `json:"isAvailable"`
	NotInStock    *bool    `json:"notInStock"`
	IsDigitalGood bool     `json:"isDigitalGood"`
	CreatedAt     int64    `json:"createdAt"`
	Link          *string  `json:"link"`
	ImgLink       string   `json:"imgLink"`
}

type Collection struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
	ImageSrc    string `json:"imageSrc"`
}

// MoneyBreakdown is the upstream money shape, all integer minor units.
// Fees, SubTotal and Total can be absent or null; rollups normalize them
// to 0, never to null.
type MoneyBreakdown struct {
	Currency string `json:"currency"`
	Price    int64  `json:"price"`
	Fees     *int64 `json:"fees"`
	SubTotal *int64 `json:"subTotal"`
	Shipping int64  `json:"shipping"`
	Total    *int64 `json:"total"`
}

type Gifter struct {
	CustomerUsername string `json:"customerUsername"`
	CustomerImage    string `json:"customerImage"`
}

type Customizations struct {
	Customers []Gifter `json:"customers"`
}

// Gift is a previously fulfilled wishlist purchase. Crowdfunded gifts can
// list many gifters, regular gifts usually one.
type Gift struct {
	Id             string         `json:"id"`
	Name           string         `json:"name"`
	PurchasedAt    int64          `json:"purchasedAt"`
	Status         string         `json:"status"`
	IsComplete     bool           `json:"isComplete"`
	IsDigitalGood  bool           `json:"isDigitalGood"`
	IsCrowdfunded  bool           `json:"isCrowdfunded"`
	Link           *string        `json:"link"`
	ImageSrc       string         `json:"imageSrc"`
	Total          MoneyBreakdown `json:"total"`
	TotalUsd       MoneyBreakdown `json:"totalUsd"`
	Customizations Customizations `json:"customizations"`
}

// LeaderboardGifter is one row of the precomputed leaderboard slices.
// PurchasedAt is only populated in the last-twenty slice,
// TotalAmountSpentUSD is integer minor units.
type LeaderboardGifter struct {
	GifterUsername      string  `json:"gifterUsername"`
	GifterImage         *string `json:"gifterImage"`
	TotalPaymentNumber  int64   `json:"totalPaymentNumber"`
	TotalAmountSpentUSD int64   `json:"totalAmountSpentUSD"`
	PurchasedAt         int64   `json:"purchasedAt"`
}

type Leaderboard struct {
	LastTwentyGifters []LeaderboardGifter `json:"lastTwentyGifters"`
	AllTime           []LeaderboardGifter `json:"leaderboardAllTime"`
	LastWeek          []LeaderboardGifter `json:"leaderboardLastWeek"`
	LastMonth         []LeaderboardGifter `json:"leaderboardLastMonth"`
}

// WishlistRecord is the canonical merged view of a creator's public
// gift/wishlist data. It is built once per request from the two raw page
// payloads and never mutated or shared afterwards.
type WishlistRecord struct {
	InitialCounts       InitialCounts
	UserInfo            UserInfo
	PreviousGifts       []Gift
	Leaderboard         Leaderboard
	WishlistItems       []Item
	WishlistCollections []Collection

	raw cleanedPayload
}

// cleanedPayload keeps the verbatim raw fragments so the cleaned view can
// round-trip upstream data without loss.
type cleanedPayload struct {
	InitialCounts       json.RawMessage `json:"initialCounts"`
	UserInfo            json.RawMessage `json:"userInfo"`
	PreviousGifts       json.RawMessage `json:"previousGifts"`
	Leaderboard         json.RawMessage `json:"leaderboard"`
	WishlistItems       json.RawMessage `json:"wishlistItems"`
	WishlistCollections json.RawMessage `json:"wishlistCollections"`
}

// Cleaned renders the record in the shape of the cleaned endpoint,
// preserving every upstream field verbatim.
func (r *WishlistRecord) Cleaned() (json.RawMessage, error) {
	return json.Marshal(r.raw)
}
