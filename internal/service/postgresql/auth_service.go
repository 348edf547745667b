package service

import (
	"errors"
	"strings"

	entity "service-market/internal/domain"
	repo "service-market/internal/repository/postgresql"
	utils "service-market/pkg"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("no token found for user")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	userRepo    repo.UserRepository
	profileRepo repo.ProfileRepository
	tokenRepo   repo.TokenRepository
}

func NewAuthService(userRepo repo.UserRepository, profileRepo repo.ProfileRepository, tokenRepo repo.TokenRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
	}
}

// Register creates the user, its profile and a bearer token in one go.
func (s *AuthService) Register(input *entity.RegisterInput) (*entity.AuthResponse, error) {
	if err := s.validateRegistration(input); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		if fieldErrs := uniqueViolationErrors(err); fieldErrs != nil {
			return nil, fieldErrs
		}
		return nil, err
	}

	profile := &entity.Profile{
		ID:     uuid.New(),
		UserID: user.ID,
		Type:   input.Type,
	}
	if err := s.profileRepo.CreateProfile(profile); err != nil {
		return nil, err
	}

	token, err := s.tokenRepo.GetOrCreate(user.ID, utils.GenerateTokenKey)
	if err != nil {
		return nil, err
	}

	return &entity.AuthResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}

func (s *AuthService) validateRegistration(input *entity.RegisterInput) error {
	fieldErrs := entity.FieldErrors{}

	if strings.TrimSpace(input.Username) == "" {
		fieldErrs.Add("username", "This field is required.")
	}
	if strings.TrimSpace(input.Email) == "" {
		fieldErrs.Add("email", "This field is required.")
	} else if !strings.Contains(input.Email, "@") {
		fieldErrs.Add("email", "Enter a valid email address.")
	}
	if input.Password == "" {
		fieldErrs.Add("password", "This field is required.")
	}
	if input.Type != entity.ProfileTypeCustomer && input.Type != entity.ProfileTypeBusiness {
		fieldErrs.Add("type", "Type must be 'customer' or 'business'.")
	}
	if input.Password != "" && input.Password != input.RepeatedPassword {
		fieldErrs.Add("non_field_errors", "Passwords do not match.")
	}

	if fieldErrs.Empty() {
		if u, err := s.userRepo.GetByUsername(input.Username); err != nil {
			return err
		} else if u != nil {
			fieldErrs.Add("username", "Username already exists.")
		}
		if u, err := s.userRepo.GetByEmail(input.Email); err != nil {
			return err
		} else if u != nil {
			fieldErrs.Add("email", "A user with this email address already exists.")
		}
	}

	if fieldErrs.Empty() {
		return nil
	}
	return fieldErrs
}

// uniqueViolationErrors translates a users-table unique violation into
// the same field-keyed messages the pre-insert checks produce. A
// concurrent duplicate that slips past those checks still hits the DB
// constraint.
func uniqueViolationErrors(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pqErr.Constraint, "username"):
		return entity.FieldErrors{"username": {"Username already exists."}}
	case strings.Contains(pqErr.Constraint, "email"):
		return entity.FieldErrors{"email": {"A user with this email address already exists."}}
	}
	return nil
}

// Login accepts a username or an email address in the username field.
func (s *AuthService) Login(input *entity.LoginInput) (*entity.AuthResponse, error) {
	var user *entity.User
	var err error
	if strings.Contains(input.Username, "@") {
		user, err = s.userRepo.GetByEmail(input.Username)
	} else {
		user, err = s.userRepo.GetByUsername(input.Username)
	}
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenRepo.GetOrCreate(user.ID, utils.GenerateTokenKey)
	if err != nil {
		return nil, err
	}

	return &entity.AuthResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.ID,
	}, nil
}

func (s *AuthService) Logout(userID uuid.UUID) error {
	deleted, err := s.tokenRepo.DeleteByUserID(userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTokenNotFound
	}
	return nil
}
