package handler

import (
	"errors"
	"net/http"

	entity "service-market/internal/domain"
	service "service-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
)

func respondDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

// respondServiceError maps the service sentinels onto the canonical
// status codes: 400 validation, 403 role/ownership, 404 existence.
// Anything unexpected becomes an opaque 500.
func respondServiceError(c *gin.Context, err error) {
	var fieldErrs entity.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, fieldErrs)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondDetail(c, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidOrderStatus),
		errors.Is(err, service.ErrInvalidTransition):
		respondDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotBusinessUser):
		respondDetail(c, http.StatusForbidden, "Only business users can create offers.")
	case errors.Is(err, service.ErrNotCustomerUser):
		respondDetail(c, http.StatusForbidden, "Only customer users can do this.")
	case errors.Is(err, service.ErrNotOfferOwner),
		errors.Is(err, service.ErrNotProfileOwner),
		errors.Is(err, service.ErrNotReviewer),
		errors.Is(err, service.ErrNotOrderParticipant),
		errors.Is(err, service.ErrNotOrderBusinessUser),
		errors.Is(err, service.ErrStaffOnly):
		respondDetail(c, http.StatusForbidden, "Permission denied.")
	case errors.Is(err, service.ErrProfileNotFound):
		respondDetail(c, http.StatusNotFound, "Profile not found.")
	case errors.Is(err, service.ErrOfferNotFound):
		respondDetail(c, http.StatusNotFound, "Offer not found.")
	case errors.Is(err, service.ErrOfferDetailNotFound):
		respondDetail(c, http.StatusNotFound, "Offer detail not found.")
	case errors.Is(err, service.ErrOrderNotFound):
		respondDetail(c, http.StatusNotFound, "Order not found.")
	case errors.Is(err, service.ErrReviewNotFound):
		respondDetail(c, http.StatusNotFound, "Review not found.")
	case errors.Is(err, service.ErrBusinessUserNotFound):
		respondDetail(c, http.StatusNotFound, "Business user not found.")
	case errors.Is(err, service.ErrUserNotFound):
		respondDetail(c, http.StatusNotFound, "User not found.")
	case errors.Is(err, service.ErrTokenNotFound):
		respondDetail(c, http.StatusNotFound, "No active token for this user.")
	default:
		respondDetail(c, http.StatusInternalServerError, "Internal server error.")
	}
}
