package service

import (
	"errors"

	entity "service-market/internal/domain"
	repo "service-market/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotReviewer    = errors.New("not the author of this review")
)

type ReviewService struct {
	reviewRepo  repo.ReviewRepository
	profileRepo repo.ProfileRepository
	userRepo    repo.UserRepository
}

func NewReviewService(reviewRepo repo.ReviewRepository, profileRepo repo.ProfileRepository, userRepo repo.UserRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, profileRepo: profileRepo, userRepo: userRepo}
}

// Create stores a customer's one-time rating of a business user.
func (s *ReviewService) Create(actor *entity.User, input *entity.CreateReviewInput) (*entity.Review, error) {
	profile, err := s.profileRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Type != entity.ProfileTypeCustomer {
		return nil, ErrNotCustomerUser
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, entity.FieldErrors{"rating": {"Rating must be between 1 and 5."}}
	}

	target, err := s.profileRepo.GetByUserID(input.BusinessUser)
	if err != nil {
		return nil, err
	}
	if target == nil || target.Type != entity.ProfileTypeBusiness {
		return nil, ErrBusinessUserNotFound
	}
	if input.BusinessUser == actor.ID {
		return nil, entity.FieldErrors{"business_user": {"You cannot review yourself."}}
	}

	exists, err := s.reviewRepo.Exists(actor.ID, input.BusinessUser)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.FieldErrors{
			"non_field_errors": {"You have already reviewed this business user."},
		}
	}

	review := &entity.Review{
		ID:             uuid.New(),
		ReviewerID:     actor.ID,
		BusinessUserID: input.BusinessUser,
		Rating:         input.Rating,
		Description:    input.Description,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(review.ID)
}

func (s *ReviewService) List(filter entity.ReviewFilter) ([]entity.Review, error) {
	return s.reviewRepo.ListReviews(filter)
}

func (s *ReviewService) Update(actor *entity.User, reviewID uuid.UUID, input *entity.UpdateReviewInput) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.ReviewerID != actor.ID {
		return nil, ErrNotReviewer
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, entity.FieldErrors{"rating": {"Rating must be between 1 and 5."}}
		}
		review.Rating = *input.Rating
	}
	if input.Description != nil {
		review.Description = *input.Description
	}

	if err := s.reviewRepo.UpdateReview(review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(reviewID)
}

func (s *ReviewService) Delete(actor *entity.User, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if review.ReviewerID != actor.ID {
		return ErrNotReviewer
	}
	return s.reviewRepo.DeleteReview(reviewID)
}
