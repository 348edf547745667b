package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProfileTypeCustomer = "customer"
	ProfileTypeBusiness = "business"
)

type Profile struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Type         string    `db:"type"` // customer, business
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	File         string    `db:"file"`
	Location     string    `db:"location"`
	Tel          string    `db:"tel"`
	Description  string    `db:"description"`
	WorkingHours string    `db:"working_hours"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	// Mirrored from the owning user row.
	Username string `db:"username"`
	Email    string `db:"email"`
}

type UpdateProfileInput struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	File         *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
	Email        *string `json:"email"`
}

// ProfileFilter narrows and orders the unpaginated profile lists.
type ProfileFilter struct {
	Type     string `form:"-"`
	Search   string `form:"search"`
	Ordering string `form:"ordering"`
}

type ProfileResponse struct {
	ID           uuid.UUID `json:"id"`
	User         uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (p *Profile) Response(fileURL string) ProfileResponse {
	return ProfileResponse{
		ID:           p.ID,
		User:         p.UserID,
		Username:     p.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         fileURL,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
		Email:        p.Email,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		UploadedAt:   p.CreatedAt,
	}
}
