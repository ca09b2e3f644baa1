package dto

import (
	"time"

	"github.com/openmrkt/nftpulse/internal/domain/models"
)

// CollectionResponse is the collection detail embedded in stat responses.
type CollectionResponse struct {
	ID        string `json:"id" example:"0b8e3c3a-4f6e-4f36-9a3e-2d6a2df5a111"`
	Name      string `json:"name" example:"Bored Punks"`
	Supply    int64  `json:"supply" example:"10000"`
	Feature   bool   `json:"feature" example:"true"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	BannerURL string `json:"bannerUrl,omitempty"`
}

// StatResponse is the JSON shape of one per-collection, per-period aggregate.
//
// Prices and volumes are decimal strings: they are arbitrary-precision
// integers in the smallest currency unit and do not fit in a JSON number.
type StatResponse struct {
	ID           string              `json:"id"`
	CollectionID string              `json:"collectionId"`
	Period       string              `json:"period" example:"DAY"`
	Owners       int64               `json:"owners" example:"42"`
	ListedItems  int64               `json:"listedItems" example:"7"`
	SalesItems   int64               `json:"salesItems" example:"12"`
	FloorPrice   string              `json:"floorPrice" example:"50000000000000000"`
	Volume       string              `json:"volume" example:"400000000000000000"`
	Increased    int64               `json:"increased" example:"125"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Collection   *CollectionResponse `json:"collection,omitempty"`
}

// TopCollectionsRequest is the body of POST /api/v1/stat/top.
type TopCollectionsRequest struct {
	Period string `json:"period" example:"DAY"`
}

// NewStatResponse maps a domain stat (and its optional joined collection)
// onto the API shape.
func NewStatResponse(s models.Stat) StatResponse {
	resp := StatResponse{
		ID:           s.ID,
		CollectionID: s.CollectionID,
		Period:       string(s.Period),
		Owners:       s.Owners,
		ListedItems:  s.ListedItems,
		SalesItems:   s.SalesItems,
		FloorPrice:   s.FloorPrice.String(),
		Volume:       s.Volume.String(),
		Increased:    s.Increased,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.Collection != nil {
		resp.Collection = &CollectionResponse{
			ID:        s.Collection.ID,
			Name:      s.Collection.Name,
			Supply:    s.Collection.Supply,
			Feature:   s.Collection.Feature,
			AvatarURL: s.Collection.AvatarURL,
			BannerURL: s.Collection.BannerURL,
		}
	}
	return resp
}

// NewStatResponses maps a slice of stats, always returning a non-nil slice so
// empty results serialize as [] rather than null.
func NewStatResponses(in []models.Stat) []StatResponse {
	out := make([]StatResponse, 0, len(in))
	for _, s := range in {
		out = append(out, NewStatResponse(s))
	}
	return out
}
