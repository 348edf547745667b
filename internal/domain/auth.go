package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is an opaque bearer token resolved by a point lookup per request.
type AuthToken struct {
	Key       string    `db:"key"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type RegisterInput struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeated_password"`
	Type             string `json:"type"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserID   uuid.UUID `json:"user_id"`
}
