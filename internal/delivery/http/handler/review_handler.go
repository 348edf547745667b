package handler

import (
	"net/http"

	"service-market/internal/delivery/http/middleware"
	entity "service-market/internal/domain"
	service "service-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List handles GET /api/reviews/ (public), filterable by business user
// and reviewer, sortable by rating or updated_at.
func (h *ReviewHandler) List(c *gin.Context) {
	filter := entity.ReviewFilter{Ordering: c.Query("ordering")}
	if id, err := uuid.Parse(c.Query("business_user_id")); err == nil {
		filter.BusinessUserID = &id
	}
	if id, err := uuid.Parse(c.Query("reviewer_id")); err == nil {
		filter.ReviewerID = &id
	}

	reviews, err := h.reviewService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]entity.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, reviews[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

// Create handles POST /api/reviews/, customer users only, one review
// per (reviewer, business user) pair.
func (h *ReviewHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input entity.CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, entity.FieldErrors{
			"non_field_errors": {"business_user and rating are required."},
		})
		return
	}

	review, err := h.reviewService.Create(user, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review.Response())
}

// Patch handles PATCH /api/reviews/:id/, reviewer only.
func (h *ReviewHandler) Patch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Review not found.")
		return
	}

	var input entity.UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	review, err := h.reviewService.Update(user, reviewID, &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review.Response())
}

// Delete handles DELETE /api/reviews/:id/, reviewer only.
func (h *ReviewHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondDetail(c, http.StatusNotFound, "Review not found.")
		return
	}

	if err := h.reviewService.Delete(user, reviewID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
