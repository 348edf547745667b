package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OfferTypeBasic    = "basic"
	OfferTypeStandard = "standard"
	OfferTypePremium  = "premium"
)

// OfferTypes lists the three pricing tiers every offer must carry.
var OfferTypes = []string{OfferTypeBasic, OfferTypeStandard, OfferTypePremium}

type Offer struct {
	ID          uuid.UUID `db:"id"`
	OwnerID     uuid.UUID `db:"owner_id"`
	Title       string    `db:"title"`
	File        string    `db:"file"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	Details []OfferDetail
	Owner   UserDetails
}

type OfferDetail struct {
	ID                 uuid.UUID `db:"id"`
	OfferID            uuid.UUID `db:"offer_id"`
	Title              string    `db:"title"`
	Revisions          int       `db:"revisions"`
	DeliveryTimeInDays int       `db:"delivery_time_in_days"`
	Price              float64   `db:"price"`
	Features           []string  `db:"features"`
	OfferType          string    `db:"offer_type"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// MinPrice returns the cheapest tier price, or 0 with ok=false when the
// offer carries no details.
func (o *Offer) MinPrice() (float64, bool) {
	if len(o.Details) == 0 {
		return 0, false
	}
	min := o.Details[0].Price
	for _, d := range o.Details[1:] {
		if d.Price < min {
			min = d.Price
		}
	}
	return min, true
}

func (o *Offer) MinDeliveryTime() (int, bool) {
	if len(o.Details) == 0 {
		return 0, false
	}
	min := o.Details[0].DeliveryTimeInDays
	for _, d := range o.Details[1:] {
		if d.DeliveryTimeInDays < min {
			min = d.DeliveryTimeInDays
		}
	}
	return min, true
}

// OfferDetailInput uses pointers so missing fields are distinguishable
// from zero values during validation.
type OfferDetailInput struct {
	Title              *string   `json:"title"`
	Revisions          *int      `json:"revisions"`
	DeliveryTimeInDays *int      `json:"delivery_time_in_days"`
	Price              *float64  `json:"price"`
	Features           *[]string `json:"features"`
	OfferType          *string   `json:"offer_type"`
}

type CreateOfferInput struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Details     []OfferDetailInput `json:"details"`
}

type UpdateOfferInput struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Image       *string            `json:"image"`
	Details     []OfferDetailInput `json:"details"`
}

// OfferFilter carries the list query parameters. Numeric fields stay nil
// when absent or unparsable.
type OfferFilter struct {
	CreatorID       *uuid.UUID
	MinPrice        *float64
	MaxPrice        *float64
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Limit           int
	Offset          int
}

type OfferDetailResponse struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
	URL                string    `json:"url,omitempty"`
}

type OfferResponse struct {
	ID              uuid.UUID             `json:"id"`
	User            uuid.UUID             `json:"user"`
	UserDetails     UserDetails           `json:"user_details"`
	Title           string                `json:"title"`
	Image           string                `json:"image"`
	Description     string                `json:"description"`
	Details         []OfferDetailResponse `json:"details"`
	MinPrice        *float64              `json:"min_price"`
	MinDeliveryTime *int                  `json:"min_delivery_time"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// PagedOffers is the envelope returned by the offer list endpoint.
type PagedOffers struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []OfferResponse `json:"results"`
}
