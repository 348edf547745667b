package service

import (
	"errors"
	"strings"
	"unicode"

	entity "service-market/internal/domain"
	repo "service-market/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNotProfileOwner = errors.New("not the owner of this profile")
)

type ProfileService struct {
	profileRepo repo.ProfileRepository
	userRepo    repo.UserRepository
}

func NewProfileService(profileRepo repo.ProfileRepository, userRepo repo.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

func (s *ProfileService) GetByUserID(userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// Update applies a partial update to the actor's own profile. The email
// is mirrored onto the user row, matching the account field the rest of
// the API reads.
func (s *ProfileService) Update(actor *entity.User, userID uuid.UUID, input *entity.UpdateProfileInput) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if profile.UserID != actor.ID {
		return nil, ErrNotProfileOwner
	}

	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	if input.Email != nil {
		taken, err := s.userRepo.EmailTakenByOther(*input.Email, actor.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, entity.FieldErrors{"email": {"A user with this email address already exists."}}
		}
	}

	applyProfileInput(profile, input)
	if err := s.profileRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := s.userRepo.UpdateEmail(actor.ID, *input.Email); err != nil {
			return nil, err
		}
		profile.Email = *input.Email
	}

	return s.GetByUserID(userID)
}

func validateProfileInput(input *entity.UpdateProfileInput) error {
	fieldErrs := entity.FieldErrors{}

	validateName(fieldErrs, "first_name", input.FirstName, "First name")
	validateName(fieldErrs, "last_name", input.LastName, "Last name")

	if input.Location != nil && *input.Location != "" && len(strings.TrimSpace(*input.Location)) < 2 {
		fieldErrs.Add("location", "Location must be at least 2 characters long.")
	}
	if input.WorkingHours != nil && *input.WorkingHours != "" && len(strings.TrimSpace(*input.WorkingHours)) < 2 {
		fieldErrs.Add("working_hours", "Working hours must be at least 2 characters long.")
	}
	if input.Description != nil && *input.Description != "" && len(strings.TrimSpace(*input.Description)) < 5 {
		fieldErrs.Add("description", "Description must be at least 5 characters long.")
	}
	if input.Email != nil && !strings.Contains(*input.Email, "@") {
		fieldErrs.Add("email", "Enter a valid email address.")
	}

	if fieldErrs.Empty() {
		return nil
	}
	return fieldErrs
}

func validateName(fieldErrs entity.FieldErrors, field string, value *string, label string) {
	if value == nil || *value == "" {
		return
	}
	if strings.TrimSpace(*value) == "" {
		fieldErrs.Add(field, label+" cannot be empty.")
		return
	}
	if isDigitsOnly(*value) {
		fieldErrs.Add(field, label+" cannot consist only of digits.")
	}
}

func isDigitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func applyProfileInput(profile *entity.Profile, input *entity.UpdateProfileInput) {
	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.File != nil {
		profile.File = *input.File
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}
	if input.Tel != nil {
		profile.Tel = *input.Tel
	}
	if input.Description != nil {
		profile.Description = *input.Description
	}
	if input.WorkingHours != nil {
		profile.WorkingHours = *input.WorkingHours
	}
}

func (s *ProfileService) List(filter entity.ProfileFilter) ([]entity.Profile, error) {
	return s.profileRepo.ListProfiles(filter)
}
