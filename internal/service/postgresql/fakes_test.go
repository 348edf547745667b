package service

import (
	"sort"
	"strings"
	"time"

	entity "service-market/internal/domain"

	"github.com/google/uuid"
)

// memDB is the shared backing store for the in-memory repository fakes.
type memDB struct {
	users    map[uuid.UUID]*entity.User
	profiles map[uuid.UUID]*entity.Profile // keyed by user id
	tokens   map[string]uuid.UUID
	offers   map[uuid.UUID]*entity.Offer
	orders   map[uuid.UUID]*entity.Order
	reviews  map[uuid.UUID]*entity.Review
	history  []entity.StatusHistory
}

func newMemDB() *memDB {
	return &memDB{
		users:    map[uuid.UUID]*entity.User{},
		profiles: map[uuid.UUID]*entity.Profile{},
		tokens:   map[string]uuid.UUID{},
		offers:   map[uuid.UUID]*entity.Offer{},
		orders:   map[uuid.UUID]*entity.Order{},
		reviews:  map[uuid.UUID]*entity.Review{},
	}
}

func (m *memDB) seedUser(username, email string, staff bool) *entity.User {
	user := &entity.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		IsStaff:   staff,
		CreatedAt: time.Now(),
	}
	m.users[user.ID] = user
	return user
}

func (m *memDB) seedProfile(user *entity.User, profileType string) *entity.Profile {
	profile := &entity.Profile{
		ID:        uuid.New(),
		UserID:    user.ID,
		Type:      profileType,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: time.Now(),
	}
	m.profiles[user.ID] = profile
	return profile
}

func (m *memDB) seedOffer(owner *entity.User, title string, prices [3]float64, deliveries [3]int) *entity.Offer {
	offer := &entity.Offer{
		ID:      uuid.New(),
		OwnerID: owner.ID,
		Title:   title,
		Owner: entity.UserDetails{
			ID:       owner.ID,
			Username: owner.Username,
			Email:    owner.Email,
		},
		CreatedAt: time.Now(),
	}
	for i, tier := range entity.OfferTypes {
		offer.Details = append(offer.Details, entity.OfferDetail{
			ID:                 uuid.New(),
			OfferID:            offer.ID,
			Title:              title + " " + tier,
			Revisions:          i,
			DeliveryTimeInDays: deliveries[i],
			Price:              prices[i],
			Features:           []string{"feature"},
			OfferType:          tier,
		})
	}
	m.offers[offer.ID] = offer
	return offer
}

// testEnv wires every service against the same in-memory store.
type testEnv struct {
	db       *memDB
	userRepo *fakeUserRepo
	auth     *AuthService
	profiles *ProfileService
	offers   *OfferService
	orders   *OrderService
	reviews  *ReviewService
	info     *InfoService
}

func newTestEnv() *testEnv {
	db := newMemDB()
	userRepo := &fakeUserRepo{db: db}
	profileRepo := &fakeProfileRepo{db: db}
	tokenRepo := &fakeTokenRepo{db: db}
	offerRepo := &fakeOfferRepo{db: db}
	orderRepo := &fakeOrderRepo{db: db}
	reviewRepo := &fakeReviewRepo{db: db}
	logRepo := &fakeLogRepo{db: db}

	return &testEnv{
		db:       db,
		userRepo: userRepo,
		auth:     NewAuthService(userRepo, profileRepo, tokenRepo),
		profiles: NewProfileService(profileRepo, userRepo),
		offers:   NewOfferService(offerRepo, profileRepo),
		orders:   NewOrderService(orderRepo, offerRepo, profileRepo, logRepo),
		reviews:  NewReviewService(reviewRepo, profileRepo, userRepo),
		info:     NewInfoService(reviewRepo, profileRepo, offerRepo, orderRepo),
	}
}

func strPtr(s string) *string       { return &s }
func intPtr(n int) *int             { return &n }
func floatPtr(f float64) *float64   { return &f }
func slicePtr(s []string) *[]string { return &s }

type fakeUserRepo struct {
	db            *memDB
	createUserErr error
}

func (r *fakeUserRepo) CreateUser(user *entity.User) error {
	if r.createUserErr != nil {
		return r.createUserErr
	}
	r.db.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uuid.UUID) (*entity.User, error) {
	return r.db.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateEmail(id uuid.UUID, email string) error {
	if u, ok := r.db.users[id]; ok {
		u.Email = email
	}
	return nil
}

func (r *fakeUserRepo) EmailTakenByOther(email string, id uuid.UUID) (bool, error) {
	for _, u := range r.db.users {
		if u.Email == email && u.ID != id {
			return true, nil
		}
	}
	return false, nil
}

type fakeProfileRepo struct{ db *memDB }

func (r *fakeProfileRepo) CreateProfile(profile *entity.Profile) error {
	r.db.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByUserID(userID uuid.UUID) (*entity.Profile, error) {
	return r.db.profiles[userID], nil
}

func (r *fakeProfileRepo) UpdateProfile(profile *entity.Profile) error {
	r.db.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeProfileRepo) ListProfiles(filter entity.ProfileFilter) ([]entity.Profile, error) {
	var result []entity.Profile
	for _, p := range r.db.profiles {
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (r *fakeProfileRepo) CountByType(profileType string) (int, error) {
	count := 0
	for _, p := range r.db.profiles {
		if p.Type == profileType {
			count++
		}
	}
	return count, nil
}

type fakeTokenRepo struct{ db *memDB }

func (r *fakeTokenRepo) GetOrCreate(userID uuid.UUID, generate func() (string, error)) (string, error) {
	for key, id := range r.db.tokens {
		if id == userID {
			return key, nil
		}
	}
	key, err := generate()
	if err != nil {
		return "", err
	}
	r.db.tokens[key] = userID
	return key, nil
}

func (r *fakeTokenRepo) GetUserByKey(key string) (*entity.User, error) {
	userID, ok := r.db.tokens[key]
	if !ok {
		return nil, nil
	}
	return r.db.users[userID], nil
}

func (r *fakeTokenRepo) DeleteByUserID(userID uuid.UUID) (bool, error) {
	for key, id := range r.db.tokens {
		if id == userID {
			delete(r.db.tokens, key)
			return true, nil
		}
	}
	return false, nil
}

type fakeOfferRepo struct{ db *memDB }

func (r *fakeOfferRepo) CreateOfferWithDetails(offer *entity.Offer) error {
	copied := *offer
	if owner, ok := r.db.users[offer.OwnerID]; ok {
		copied.Owner = entity.UserDetails{ID: owner.ID, Username: owner.Username, Email: owner.Email}
	}
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.db.offers[offer.ID] = &copied
	return nil
}

func (r *fakeOfferRepo) GetOfferByID(offerID uuid.UUID) (*entity.Offer, error) {
	offer, ok := r.db.offers[offerID]
	if !ok {
		return nil, nil
	}
	copied := *offer
	return &copied, nil
}

func (r *fakeOfferRepo) GetDetailByID(detailID uuid.UUID) (*entity.OfferDetail, error) {
	for _, offer := range r.db.offers {
		for _, d := range offer.Details {
			if d.ID == detailID {
				detail := d
				return &detail, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeOfferRepo) ListOffers(filter entity.OfferFilter) ([]entity.Offer, int, error) {
	var matched []entity.Offer
	for _, offer := range r.db.offers {
		if filter.CreatorID != nil && offer.OwnerID != *filter.CreatorID {
			continue
		}
		if filter.MinPrice != nil {
			if min, ok := offer.MinPrice(); !ok || min < *filter.MinPrice {
				continue
			}
		}
		if filter.MaxPrice != nil {
			if min, ok := offer.MinPrice(); !ok || min > *filter.MaxPrice {
				continue
			}
		}
		if filter.MaxDeliveryTime != nil {
			if min, ok := offer.MinDeliveryTime(); !ok || min > *filter.MaxDeliveryTime {
				continue
			}
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(offer.Title+" "+offer.Description), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, *offer)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Title < matched[j].Title })

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (r *fakeOfferRepo) ListByOwner(ownerID uuid.UUID) ([]entity.Offer, error) {
	var result []entity.Offer
	for _, offer := range r.db.offers {
		if offer.OwnerID == ownerID {
			result = append(result, *offer)
		}
	}
	return result, nil
}

func (r *fakeOfferRepo) UpdateOffer(offer *entity.Offer) error {
	if stored, ok := r.db.offers[offer.ID]; ok {
		stored.Title = offer.Title
		stored.File = offer.File
		stored.Description = offer.Description
		stored.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeOfferRepo) UpdateDetail(detail *entity.OfferDetail) error {
	offer, ok := r.db.offers[detail.OfferID]
	if !ok {
		return nil
	}
	for i := range offer.Details {
		if offer.Details[i].ID == detail.ID {
			offer.Details[i] = *detail
		}
	}
	return nil
}

func (r *fakeOfferRepo) DeleteOffer(offerID uuid.UUID) error {
	delete(r.db.offers, offerID)
	for id, order := range r.db.orders {
		if order.OfferDetail.OfferID == offerID {
			delete(r.db.orders, id)
		}
	}
	return nil
}

func (r *fakeOfferRepo) CountOffers() (int, error) {
	return len(r.db.offers), nil
}

type fakeOrderRepo struct{ db *memDB }

func (r *fakeOrderRepo) CreateOrder(order *entity.Order) error {
	copied := *order
	for _, offer := range r.db.offers {
		for _, d := range offer.Details {
			if d.ID == order.OfferDetailID {
				copied.OfferDetail = d
				copied.BusinessUserID = offer.OwnerID
			}
		}
	}
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.db.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(orderID uuid.UUID) (*entity.Order, error) {
	order, ok := r.db.orders[orderID]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListForUser(userID uuid.UUID) ([]entity.Order, error) {
	var result []entity.Order
	for _, order := range r.db.orders {
		if order.CustomerID == userID || order.BusinessUserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(orderID uuid.UUID, status string) error {
	if order, ok := r.db.orders[orderID]; ok {
		order.Status = status
		order.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(orderID uuid.UUID) error {
	delete(r.db.orders, orderID)
	return nil
}

func (r *fakeOrderRepo) CountByBusinessAndStatus(businessUserID uuid.UUID, status string) (int, error) {
	count := 0
	for _, order := range r.db.orders {
		if order.BusinessUserID == businessUserID && order.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeReviewRepo struct{ db *memDB }

func (r *fakeReviewRepo) CreateReview(review *entity.Review) error {
	copied := *review
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.db.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(reviewID uuid.UUID) (*entity.Review, error) {
	review, ok := r.db.reviews[reviewID]
	if !ok {
		return nil, nil
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) Exists(reviewerID, businessUserID uuid.UUID) (bool, error) {
	for _, review := range r.db.reviews {
		if review.ReviewerID == reviewerID && review.BusinessUserID == businessUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListReviews(filter entity.ReviewFilter) ([]entity.Review, error) {
	var result []entity.Review
	for _, review := range r.db.reviews {
		if filter.BusinessUserID != nil && review.BusinessUserID != *filter.BusinessUserID {
			continue
		}
		if filter.ReviewerID != nil && review.ReviewerID != *filter.ReviewerID {
			continue
		}
		result = append(result, *review)
	}
	switch filter.Ordering {
	case "rating":
		sort.Slice(result, func(i, j int) bool { return result[i].Rating < result[j].Rating })
	case "-rating":
		sort.Slice(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	}
	return result, nil
}

func (r *fakeReviewRepo) UpdateReview(review *entity.Review) error {
	if stored, ok := r.db.reviews[review.ID]; ok {
		stored.Rating = review.Rating
		stored.Description = review.Description
		stored.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeReviewRepo) DeleteReview(reviewID uuid.UUID) error {
	delete(r.db.reviews, reviewID)
	return nil
}

func (r *fakeReviewRepo) Stats() (int, float64, error) {
	if len(r.db.reviews) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, review := range r.db.reviews {
		sum += review.Rating
	}
	return len(r.db.reviews), float64(sum) / float64(len(r.db.reviews)), nil
}

type fakeLogRepo struct{ db *memDB }

func (r *fakeLogRepo) SaveHistoryStatus(doc *entity.StatusHistory) error {
	r.db.history = append(r.db.history, *doc)
	return nil
}
