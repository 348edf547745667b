package entity

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID             uuid.UUID `db:"id"`
	ReviewerID     uuid.UUID `db:"reviewer_id"`
	BusinessUserID uuid.UUID `db:"business_user_id"`
	Rating         int       `db:"rating"`
	Description    string    `db:"description"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type CreateReviewInput struct {
	BusinessUser uuid.UUID `json:"business_user" binding:"required"`
	Rating       int       `json:"rating" binding:"required"`
	Description  string    `json:"description"`
}

type UpdateReviewInput struct {
	Rating      *int    `json:"rating"`
	Description *string `json:"description"`
}

type ReviewFilter struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string
}

type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	Reviewer     uuid.UUID `json:"reviewer"`
	BusinessUser uuid.UUID `json:"business_user"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *Review) Response() ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		Reviewer:     r.ReviewerID,
		BusinessUser: r.BusinessUserID,
		Rating:       r.Rating,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
