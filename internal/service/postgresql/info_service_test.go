package service

import (
	"testing"

	entity "service-market/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseInfo(t *testing.T) {
	env := newTestEnv()
	business := env.db.seedUser("designer", "designer@mail.de", false)
	env.db.seedProfile(business, entity.ProfileTypeBusiness)
	customer := env.db.seedUser("kunde", "kunde@mail.de", false)
	env.db.seedProfile(customer, entity.ProfileTypeCustomer)
	env.db.seedOffer(business, "Logo Design", [3]float64{50, 100, 150}, [3]int{3, 5, 7})

	_, err := env.reviews.Create(customer, &entity.CreateReviewInput{BusinessUser: business.ID, Rating: 4})
	require.NoError(t, err)
	second := env.db.seedUser("zweiter", "zweiter@mail.de", false)
	env.db.seedProfile(second, entity.ProfileTypeCustomer)
	_, err = env.reviews.Create(second, &entity.CreateReviewInput{BusinessUser: business.ID, Rating: 5})
	require.NoError(t, err)

	info, err := env.info.BaseInfo()
	require.NoError(t, err)

	assert.Equal(t, 2, info.ReviewCount)
	assert.Equal(t, 4.5, info.AverageRating)
	assert.Equal(t, 1, info.BusinessProfileCount)
	assert.Equal(t, 1, info.OfferCount)
}

func TestBaseInfoAverageRounded(t *testing.T) {
	env := newTestEnv()
	business := env.db.seedUser("designer", "designer@mail.de", false)
	env.db.seedProfile(business, entity.ProfileTypeBusiness)

	ratings := []int{5, 4, 4} // average 4.333..., rounded to one decimal
	for i, rating := range ratings {
		reviewer := env.db.seedUser("kunde"+string(rune('a'+i)), "kunde"+string(rune('a'+i))+"@mail.de", false)
		env.db.seedProfile(reviewer, entity.ProfileTypeCustomer)
		_, err := env.reviews.Create(reviewer, &entity.CreateReviewInput{BusinessUser: business.ID, Rating: rating})
		require.NoError(t, err)
	}

	info, err := env.info.BaseInfo()
	require.NoError(t, err)
	assert.Equal(t, 4.3, info.AverageRating)
}

func TestBaseInfoEmptyPlatform(t *testing.T) {
	env := newTestEnv()

	info, err := env.info.BaseInfo()
	require.NoError(t, err)

	assert.Equal(t, 0, info.ReviewCount)
	assert.Equal(t, 0.0, info.AverageRating)
	assert.Equal(t, 0, info.BusinessProfileCount)
	assert.Equal(t, 0, info.OfferCount)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv()
	business := env.db.seedUser("designer", "designer@mail.de", false)
	env.db.seedProfile(business, entity.ProfileTypeBusiness)
	customer := env.db.seedUser("kunde", "kunde@mail.de", false)
	env.db.seedProfile(customer, entity.ProfileTypeCustomer)

	offer := env.db.seedOffer(business, "Logo Design", [3]float64{50, 100, 150}, [3]int{3, 5, 7})
	_, err := env.orders.Create(customer, &entity.CreateOrderInput{OfferDetailID: offer.Details[0].ID})
	require.NoError(t, err)

	profile, offers, orders, err := env.info.Dashboard(business)
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileTypeBusiness, profile.Type)
	assert.Len(t, offers, 1)
	assert.Len(t, orders, 1)

	profile, offers, orders, err = env.info.Dashboard(customer)
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileTypeCustomer, profile.Type)
	assert.Empty(t, offers)
	assert.Len(t, orders, 1)

	noProfile := env.db.seedUser("leer", "leer@mail.de", false)
	_, _, _, err = env.info.Dashboard(noProfile)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
