package service

import (
	"errors"
	"fmt"
	"strings"

	entity "service-market/internal/domain"
	repo "service-market/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrNotBusinessUser     = errors.New("only business users may do this")
	ErrOfferNotFound       = errors.New("offer not found")
	ErrOfferDetailNotFound = errors.New("offer detail not found")
	ErrNotOfferOwner       = errors.New("not the owner of this offer")
)

type OfferService struct {
	offerRepo   repo.OfferRepository
	profileRepo repo.ProfileRepository
}

func NewOfferService(offerRepo repo.OfferRepository, profileRepo repo.ProfileRepository) *OfferService {
	return &OfferService{offerRepo: offerRepo, profileRepo: profileRepo}
}

// Create persists an offer with its three pricing tiers. Only users with
// a business profile may create offers.
func (s *OfferService) Create(actor *entity.User, input *entity.CreateOfferInput, imagePath string) (*entity.Offer, error) {
	if err := s.requireBusiness(actor); err != nil {
		return nil, err
	}

	details, err := validateOfferDetails(input.Details)
	if err != nil {
		return nil, err
	}

	offer := &entity.Offer{
		ID:          uuid.New(),
		OwnerID:     actor.ID,
		Title:       input.Title,
		File:        imagePath,
		Description: input.Description,
		Details:     details,
	}
	for i := range offer.Details {
		offer.Details[i].ID = uuid.New()
		offer.Details[i].OfferID = offer.ID
	}

	if err := s.offerRepo.CreateOfferWithDetails(offer); err != nil {
		return nil, err
	}
	return s.offerRepo.GetOfferByID(offer.ID)
}

func (s *OfferService) requireBusiness(actor *entity.User) error {
	profile, err := s.profileRepo.GetByUserID(actor.ID)
	if err != nil {
		return err
	}
	if profile == nil || profile.Type != entity.ProfileTypeBusiness {
		return ErrNotBusinessUser
	}
	return nil
}

// validateOfferDetails enforces exactly one detail per tier with every
// field present and in range.
func validateOfferDetails(inputs []entity.OfferDetailInput) ([]entity.OfferDetail, error) {
	if len(inputs) != 3 {
		return nil, entity.FieldErrors{
			"details": {"Exactly 3 offer details (basic, standard, premium) are required."},
		}
	}

	fieldErrs := entity.FieldErrors{}
	seen := map[string]bool{}
	details := make([]entity.OfferDetail, 0, 3)

	for i, in := range inputs {
		key := func(field string) string { return fmt.Sprintf("details[%d].%s", i, field) }

		var d entity.OfferDetail
		if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
			fieldErrs.Add(key("title"), "This field is required.")
		} else {
			d.Title = *in.Title
		}
		if in.Revisions == nil {
			fieldErrs.Add(key("revisions"), "This field is required.")
		} else {
			d.Revisions = *in.Revisions
		}
		if in.DeliveryTimeInDays == nil {
			fieldErrs.Add(key("delivery_time_in_days"), "This field is required.")
		} else if *in.DeliveryTimeInDays < 1 {
			fieldErrs.Add(key("delivery_time_in_days"), "Delivery time must be at least 1 day.")
		} else {
			d.DeliveryTimeInDays = *in.DeliveryTimeInDays
		}
		if in.Price == nil {
			fieldErrs.Add(key("price"), "This field is required.")
		} else if *in.Price < 0 {
			fieldErrs.Add(key("price"), "Price cannot be negative.")
		} else {
			d.Price = *in.Price
		}
		if in.Features == nil {
			fieldErrs.Add(key("features"), "This field is required.")
		} else {
			d.Features = *in.Features
		}
		if in.OfferType == nil {
			fieldErrs.Add(key("offer_type"), "This field is required.")
		} else if !validOfferType(*in.OfferType) {
			fieldErrs.Add(key("offer_type"), "Offer type must be basic, standard or premium.")
		} else if seen[*in.OfferType] {
			fieldErrs.Add(key("offer_type"), "Duplicate offer type.")
		} else {
			seen[*in.OfferType] = true
			d.OfferType = *in.OfferType
		}

		details = append(details, d)
	}

	if !fieldErrs.Empty() {
		return nil, fieldErrs
	}
	return details, nil
}

func validOfferType(t string) bool {
	for _, valid := range entity.OfferTypes {
		if t == valid {
			return true
		}
	}
	return false
}

func (s *OfferService) Get(offerID uuid.UUID) (*entity.Offer, error) {
	offer, err := s.offerRepo.GetOfferByID(offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

func (s *OfferService) GetDetail(detailID uuid.UUID) (*entity.OfferDetail, error) {
	detail, err := s.offerRepo.GetDetailByID(detailID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrOfferDetailNotFound
	}
	return detail, nil
}

func (s *OfferService) List(filter entity.OfferFilter) ([]entity.Offer, int, error) {
	return s.offerRepo.ListOffers(filter)
}

func (s *OfferService) ListByOwner(ownerID uuid.UUID) ([]entity.Offer, error) {
	return s.offerRepo.ListByOwner(ownerID)
}

// Update applies a partial update. Detail updates are matched to the
// existing tier by offer_type.
func (s *OfferService) Update(actor *entity.User, offerID uuid.UUID, input *entity.UpdateOfferInput, imagePath *string) (*entity.Offer, error) {
	offer, err := s.offerRepo.GetOfferByID(offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	if offer.OwnerID != actor.ID {
		return nil, ErrNotOfferOwner
	}

	if input.Title != nil {
		offer.Title = *input.Title
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}
	if imagePath != nil {
		offer.File = *imagePath
	}
	if err := s.offerRepo.UpdateOffer(offer); err != nil {
		return nil, err
	}

	if err := s.updateDetails(offer, input.Details); err != nil {
		return nil, err
	}

	return s.offerRepo.GetOfferByID(offerID)
}

func (s *OfferService) updateDetails(offer *entity.Offer, inputs []entity.OfferDetailInput) error {
	fieldErrs := entity.FieldErrors{}
	for i, in := range inputs {
		if in.OfferType == nil {
			fieldErrs.Add(fmt.Sprintf("details[%d].offer_type", i), "This field is required for updates.")
			continue
		}

		var target *entity.OfferDetail
		for j := range offer.Details {
			if offer.Details[j].OfferType == *in.OfferType {
				target = &offer.Details[j]
				break
			}
		}
		if target == nil {
			fieldErrs.Add(fmt.Sprintf("details[%d].offer_type", i), "No detail with this offer type exists.")
			continue
		}

		if in.Title != nil {
			target.Title = *in.Title
		}
		if in.Revisions != nil {
			target.Revisions = *in.Revisions
		}
		if in.DeliveryTimeInDays != nil {
			if *in.DeliveryTimeInDays < 1 {
				fieldErrs.Add(fmt.Sprintf("details[%d].delivery_time_in_days", i), "Delivery time must be at least 1 day.")
				continue
			}
			target.DeliveryTimeInDays = *in.DeliveryTimeInDays
		}
		if in.Price != nil {
			if *in.Price < 0 {
				fieldErrs.Add(fmt.Sprintf("details[%d].price", i), "Price cannot be negative.")
				continue
			}
			target.Price = *in.Price
		}
		if in.Features != nil {
			target.Features = *in.Features
		}

		if err := s.offerRepo.UpdateDetail(target); err != nil {
			return err
		}
	}

	if fieldErrs.Empty() {
		return nil
	}
	return fieldErrs
}

func (s *OfferService) Delete(actor *entity.User, offerID uuid.UUID) error {
	offer, err := s.offerRepo.GetOfferByID(offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	if offer.OwnerID != actor.ID {
		return ErrNotOfferOwner
	}
	return s.offerRepo.DeleteOffer(offerID)
}
