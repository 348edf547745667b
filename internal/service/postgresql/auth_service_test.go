package service

import (
	"testing"

	entity "service-market/internal/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUserProfileAndToken(t *testing.T) {
	env := newTestEnv()

	resp, err := env.auth.Register(&entity.RegisterInput{
		Username:         "exampleUsername",
		Email:            "example@mail.de",
		Password:         "examplePassword",
		RepeatedPassword: "examplePassword",
		Type:             entity.ProfileTypeCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, "exampleUsername", resp.Username)
	assert.Equal(t, "example@mail.de", resp.Email)
	assert.Len(t, resp.Token, 40)

	profile, err := env.profiles.GetByUserID(resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileTypeCustomer, profile.Type)

	user := env.db.users[resp.UserID]
	require.NotNil(t, user)
	assert.NotEqual(t, "examplePassword", user.PasswordHash)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	env := newTestEnv()

	_, err := env.auth.Register(&entity.RegisterInput{
		Username:         "exampleUsername",
		Email:            "example@mail.de",
		Password:         "examplePassword",
		RepeatedPassword: "otherPassword",
		Type:             entity.ProfileTypeCustomer,
	})

	var fieldErrs entity.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, []string{"Passwords do not match."}, fieldErrs["non_field_errors"])
}

func TestRegisterDuplicateUsernameAndEmail(t *testing.T) {
	env := newTestEnv()
	env.db.seedUser("taken", "taken@mail.de", false)

	_, err := env.auth.Register(&entity.RegisterInput{
		Username:         "taken",
		Email:            "taken@mail.de",
		Password:         "pw",
		RepeatedPassword: "pw",
		Type:             entity.ProfileTypeBusiness,
	})

	var fieldErrs entity.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "username")
	assert.Contains(t, fieldErrs, "email")
}

func TestRegisterConcurrentDuplicateMapsToFieldErrors(t *testing.T) {
	cases := []struct {
		constraint string
		field      string
	}{
		{"users_username_key", "username"},
		{"users_email_key", "email"},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			env := newTestEnv()
			// A duplicate registered between the uniqueness check and the
			// insert surfaces as a constraint violation from the driver.
			env.userRepo.createUserErr = &pq.Error{Code: "23505", Constraint: tc.constraint}

			_, err := env.auth.Register(&entity.RegisterInput{
				Username:         "exampleUsername",
				Email:            "example@mail.de",
				Password:         "examplePassword",
				RepeatedPassword: "examplePassword",
				Type:             entity.ProfileTypeCustomer,
			})

			var fieldErrs entity.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Contains(t, fieldErrs, tc.field)
		})
	}
}

func TestRegisterInvalidType(t *testing.T) {
	env := newTestEnv()

	_, err := env.auth.Register(&entity.RegisterInput{
		Username:         "someone",
		Email:            "someone@mail.de",
		Password:         "pw",
		RepeatedPassword: "pw",
		Type:             "admin",
	})

	var fieldErrs entity.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "type")
}

func TestLoginWithUsernameAndEmail(t *testing.T) {
	env := newTestEnv()
	registered, err := env.auth.Register(&entity.RegisterInput{
		Username:         "exampleUsername",
		Email:            "example@mail.de",
		Password:         "examplePassword",
		RepeatedPassword: "examplePassword",
		Type:             entity.ProfileTypeCustomer,
	})
	require.NoError(t, err)

	byName, err := env.auth.Login(&entity.LoginInput{Username: "exampleUsername", Password: "examplePassword"})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, byName.UserID)

	byEmail, err := env.auth.Login(&entity.LoginInput{Username: "example@mail.de", Password: "examplePassword"})
	require.NoError(t, err)
	assert.Equal(t, registered.Token, byEmail.Token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv()
	_, err := env.auth.Register(&entity.RegisterInput{
		Username:         "exampleUsername",
		Email:            "example@mail.de",
		Password:         "examplePassword",
		RepeatedPassword: "examplePassword",
		Type:             entity.ProfileTypeCustomer,
	})
	require.NoError(t, err)

	_, err = env.auth.Login(&entity.LoginInput{Username: "exampleUsername", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login(&entity.LoginInput{Username: "nobody", Password: "examplePassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutDeletesToken(t *testing.T) {
	env := newTestEnv()
	registered, err := env.auth.Register(&entity.RegisterInput{
		Username:         "exampleUsername",
		Email:            "example@mail.de",
		Password:         "examplePassword",
		RepeatedPassword: "examplePassword",
		Type:             entity.ProfileTypeCustomer,
	})
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(registered.UserID))
	assert.Empty(t, env.db.tokens)

	err = env.auth.Logout(registered.UserID)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
