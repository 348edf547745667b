package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderTransition reports whether an order may move from one status
// to another. Orders only ever move forward: pending and in_progress may
// close as completed or cancelled, terminal states accept nothing.
func ValidOrderTransition(from, to string) bool {
	switch from {
	case OrderStatusPending, OrderStatusInProgress:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	default:
		return false
	}
}

type Order struct {
	ID            uuid.UUID `db:"id"`
	CustomerID    uuid.UUID `db:"customer_id"`
	OfferDetailID uuid.UUID `db:"offer_detail_id"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	// Joined rows.
	OfferDetail    OfferDetail
	BusinessUserID uuid.UUID `db:"business_user_id"`
}

type CreateOrderInput struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" binding:"required"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	CustomerUser       uuid.UUID           `json:"customer_user"`
	OfferDetail        OfferDetailResponse `json:"offer_detail"`
	BusinessUser       uuid.UUID           `json:"business_user"`
	Title              string              `json:"title"`
	Revisions          int                 `json:"revisions"`
	DeliveryTimeInDays int                 `json:"delivery_time_in_days"`
	Price              float64             `json:"price"`
	Features           []string            `json:"features"`
	OfferType          string              `json:"offer_type"`
	Status             string              `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (o *Order) Response() OrderResponse {
	features := o.OfferDetail.Features
	if features == nil {
		features = []string{}
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerUser: o.CustomerID,
		OfferDetail: OfferDetailResponse{
			ID:                 o.OfferDetail.ID,
			Title:              o.OfferDetail.Title,
			Revisions:          o.OfferDetail.Revisions,
			DeliveryTimeInDays: o.OfferDetail.DeliveryTimeInDays,
			Price:              o.OfferDetail.Price,
			Features:           features,
			OfferType:          o.OfferDetail.OfferType,
		},
		BusinessUser:       o.BusinessUserID,
		Title:              o.OfferDetail.Title,
		Revisions:          o.OfferDetail.Revisions,
		DeliveryTimeInDays: o.OfferDetail.DeliveryTimeInDays,
		Price:              o.OfferDetail.Price,
		Features:           features,
		OfferType:          o.OfferDetail.OfferType,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
