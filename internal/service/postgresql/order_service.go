package service

import (
	"errors"
	"log"
	"time"

	entity "service-market/internal/domain"
	"service-market/internal/repository/mongodb"
	repo "service-market/internal/repository/postgresql"

	"github.com/google/uuid"
)

var (
	ErrNotCustomerUser      = errors.New("only customer users may do this")
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotOrderParticipant  = errors.New("not related to this order")
	ErrNotOrderBusinessUser = errors.New("only the business owner may update this order")
	ErrStaffOnly            = errors.New("staff only")
	ErrBusinessUserNotFound = errors.New("business user not found")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
)

type OrderService struct {
	orderRepo   repo.OrderRepository
	offerRepo   repo.OfferRepository
	profileRepo repo.ProfileRepository
	logRepo     mongodb.LogRepository
}

func NewOrderService(orderRepo repo.OrderRepository, offerRepo repo.OfferRepository, profileRepo repo.ProfileRepository, logRepo mongodb.LogRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		offerRepo:   offerRepo,
		profileRepo: profileRepo,
		logRepo:     logRepo,
	}
}

// Create places an order for one pricing tier. Only customer-profile
// users may order, and never on their own offers.
func (s *OrderService) Create(actor *entity.User, input *entity.CreateOrderInput) (*entity.Order, error) {
	profile, err := s.profileRepo.GetByUserID(actor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Type != entity.ProfileTypeCustomer {
		return nil, ErrNotCustomerUser
	}

	detail, err := s.offerRepo.GetDetailByID(input.OfferDetailID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrOfferDetailNotFound
	}

	offer, err := s.offerRepo.GetOfferByID(detail.OfferID)
	if err != nil {
		return nil, err
	}
	if offer != nil && offer.OwnerID == actor.ID {
		return nil, entity.FieldErrors{"offer_detail_id": {"You cannot order your own service."}}
	}

	order := &entity.Order{
		ID:            uuid.New(),
		CustomerID:    actor.ID,
		OfferDetailID: detail.ID,
		Status:        entity.OrderStatusInProgress,
	}
	if err := s.orderRepo.CreateOrder(order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) Get(actor *entity.User, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !actor.IsStaff && order.CustomerID != actor.ID && order.BusinessUserID != actor.ID {
		return nil, ErrNotOrderParticipant
	}
	return order, nil
}

func (s *OrderService) ListForUser(actor *entity.User) ([]entity.Order, error) {
	return s.orderRepo.ListForUser(actor.ID)
}

// UpdateStatus moves an order along its lifecycle. Only the business
// owner of the referenced offer or staff may transition, and terminal
// states are frozen.
func (s *OrderService) UpdateStatus(actor *entity.User, orderID uuid.UUID, newStatus string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !actor.IsStaff && order.BusinessUserID != actor.ID {
		return nil, ErrNotOrderBusinessUser
	}

	switch newStatus {
	case entity.OrderStatusPending, entity.OrderStatusInProgress,
		entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		return nil, ErrInvalidOrderStatus
	}
	if !entity.ValidOrderTransition(order.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(orderID, newStatus); err != nil {
		return nil, err
	}
	s.logTransition(order, newStatus, actor)

	return s.orderRepo.GetByID(orderID)
}

// logTransition appends the change to the Mongo history collection,
// best effort.
func (s *OrderService) logTransition(order *entity.Order, newStatus string, actor *entity.User) {
	if s.logRepo == nil {
		return
	}
	err := s.logRepo.SaveHistoryStatus(&entity.StatusHistory{
		RelatedID:   order.ID.String(),
		RelatedType: "order",
		OldStatus:   order.Status,
		NewStatus:   newStatus,
		ChangedBy:   actor.ID.String(),
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		log.Printf("order %s: status history not recorded: %v", order.ID, err)
	}
}

func (s *OrderService) Delete(actor *entity.User, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if !actor.IsStaff {
		return ErrStaffOnly
	}
	return s.orderRepo.DeleteOrder(orderID)
}

// CountForBusiness returns how many orders with the given status belong
// to the business user's offers.
func (s *OrderService) CountForBusiness(businessUserID uuid.UUID, status string) (int, error) {
	profile, err := s.profileRepo.GetByUserID(businessUserID)
	if err != nil {
		return 0, err
	}
	if profile == nil || profile.Type != entity.ProfileTypeBusiness {
		return 0, ErrBusinessUserNotFound
	}
	return s.orderRepo.CountByBusinessAndStatus(businessUserID, status)
}
