package service

import (
	"math"

	entity "service-market/internal/domain"
	repo "service-market/internal/repository/postgresql"
)

type InfoService struct {
	reviewRepo  repo.ReviewRepository
	profileRepo repo.ProfileRepository
	offerRepo   repo.OfferRepository
	orderRepo   repo.OrderRepository
}

func NewInfoService(reviewRepo repo.ReviewRepository, profileRepo repo.ProfileRepository, offerRepo repo.OfferRepository, orderRepo repo.OrderRepository) *InfoService {
	return &InfoService{
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
		offerRepo:   offerRepo,
		orderRepo:   orderRepo,
	}
}

// BaseInfo assembles the public platform statistics.
func (s *InfoService) BaseInfo() (*entity.BaseInfo, error) {
	reviewCount, avgRating, err := s.reviewRepo.Stats()
	if err != nil {
		return nil, err
	}
	businessCount, err := s.profileRepo.CountByType(entity.ProfileTypeBusiness)
	if err != nil {
		return nil, err
	}
	offerCount, err := s.offerRepo.CountOffers()
	if err != nil {
		return nil, err
	}

	return &entity.BaseInfo{
		ReviewCount:          reviewCount,
		AverageRating:        math.Round(avgRating*10) / 10,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}, nil
}

// Dashboard returns the caller's profile, offers and orders.
func (s *InfoService) Dashboard(actor *entity.User) (*entity.Profile, []entity.Offer, []entity.Order, error) {
	profile, err := s.profileRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	if profile == nil {
		return nil, nil, nil, ErrProfileNotFound
	}

	offers, err := s.offerRepo.ListByOwner(actor.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	orders, err := s.orderRepo.ListForUser(actor.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return profile, offers, orders, nil
}
