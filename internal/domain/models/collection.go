package models

import "time"

// Collection identifies a group of tokens listed on the marketplace.
// Collections are created by the marketplace core (out of scope here);
// this service only reads them.
//
// Fields:
//   - ID: collection identifier (UUID).
//   - Name: display name, used by the search filter.
//   - Supply: total number of tokens in the collection.
//   - Feature: marks the collection as eligible for "featured" queries.
//   - AvatarURL / BannerURL: media references shown alongside stats.
type Collection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Supply    int64     `json:"supply"`
	Feature   bool      `json:"feature"`
	AvatarURL string    `json:"avatarUrl"`
	BannerURL string    `json:"bannerUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
