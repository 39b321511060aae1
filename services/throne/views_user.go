package throne

// UserInfoView is the reshaped creator profile, with counts folded in
// from the gifted page and the creation timestamp rendered.
type UserInfoView struct {
	DisplayName          string    `json:"displayName"`
	Birthday             *Birthday `json:"birthday"`
	Bio                  string    `json:"bio"`
	CreatedAt            string    `json:"createdAt"`
	WishlistItemsCount   int64     `json:"wishlistItemsCount"`
	GiftedItemsCount     int64     `json:"giftedItemsCount"`
	CollectionsCount     int64     `json:"collectionsCount"`
	Username             string    `json:"username"`
	Id                   string    `json:"_id"`
	Picture              string    `json:"picture"`
	BackgroundPictureUrl string    `json:"backgroundPictureUrl"`
}

func BuildUserInfo(rec *WishlistRecord) UserInfoView {
	info := rec.UserInfo
	return UserInfoView{
		DisplayName:          info.DisplayName,
		Birthday:             info.Birthday,
		Bio:                  info.Bio,
		CreatedAt:            formatTimestamp(info.CreatedAt),
		WishlistItemsCount:   rec.InitialCounts.Wishlist,
		GiftedItemsCount:     rec.InitialCounts.PreviousGifts,
		CollectionsCount:     rec.InitialCounts.Collections,
		Username:             info.Username,
		Id:                   info.Id,
		Picture:              info.PictureUrl,
		BackgroundPictureUrl: info.BackgroundPictureUrl,
	}
}

type SocialView struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

// BuildUserSocials keys each social link by its platform type, next to
// the creator's main content platform.
func BuildUserSocials(rec *WishlistRecord) map[string]any {
	out := map[string]any{
		"mainContentPlatform": rec.UserInfo.MainContentPlatform,
	}
	for _, social := range rec.UserInfo.SocialLinks {
		out[social.Type] = SocialView{
			Name: social.Name,
			Url:  social.Url,
		}
	}
	return out
}

func BuildUserCategories(rec *WishlistRecord) []string {
	return rec.UserInfo.SurpriseCategories
}

func BuildUserInterests(rec *WishlistRecord) []string {
	return rec.UserInfo.Interests
}
