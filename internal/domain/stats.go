package entity

// BaseInfo is the public platform statistics payload.
type BaseInfo struct {
	ReviewCount          int     `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int     `json:"business_profile_count"`
	OfferCount           int     `json:"offer_count"`
}

// Dashboard bundles the caller's profile, offers and orders.
type Dashboard struct {
	Profile ProfileResponse `json:"profile"`
	Offers  []OfferResponse `json:"offers"`
	Orders  []OrderResponse `json:"orders"`
}
