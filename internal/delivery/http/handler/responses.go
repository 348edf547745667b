package handler

import (
	entity "service-market/internal/domain"
	utils "service-market/pkg"

	"github.com/gin-gonic/gin"
)

// offerResponse shapes an offer for the API, with computed minimums and
// absolute URLs for the image and each pricing tier.
func offerResponse(c *gin.Context, offer *entity.Offer) entity.OfferResponse {
	details := make([]entity.OfferDetailResponse, 0, len(offer.Details))
	for _, d := range offer.Details {
		details = append(details, offerDetailResponse(c, &d, true))
	}

	resp := entity.OfferResponse{
		ID:          offer.ID,
		User:        offer.OwnerID,
		UserDetails: offer.Owner,
		Title:       offer.Title,
		Image:       utils.MediaURL(c, offer.File),
		Description: offer.Description,
		Details:     details,
		CreatedAt:   offer.CreatedAt,
		UpdatedAt:   offer.UpdatedAt,
	}
	if min, ok := offer.MinPrice(); ok {
		resp.MinPrice = &min
	}
	if min, ok := offer.MinDeliveryTime(); ok {
		resp.MinDeliveryTime = &min
	}
	return resp
}

func offerDetailResponse(c *gin.Context, d *entity.OfferDetail, withURL bool) entity.OfferDetailResponse {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	resp := entity.OfferDetailResponse{
		ID:                 d.ID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           features,
		OfferType:          d.OfferType,
	}
	if withURL {
		resp.URL = utils.AbsoluteURL(c, "/api/offerdetails/"+d.ID.String()+"/")
	}
	return resp
}

func profileResponse(c *gin.Context, profile *entity.Profile) entity.ProfileResponse {
	return profile.Response(utils.MediaURL(c, profile.File))
}
