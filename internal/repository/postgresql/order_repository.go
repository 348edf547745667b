package repository

import (
	"database/sql"
	"encoding/json"

	entity "service-market/internal/domain"

	"github.com/google/uuid"
)

type OrderRepository interface {
	CreateOrder(order *entity.Order) error
	GetByID(orderID uuid.UUID) (*entity.Order, error)
	ListForUser(userID uuid.UUID) ([]entity.Order, error)
	UpdateStatus(orderID uuid.UUID, status string) error
	DeleteOrder(orderID uuid.UUID) error
	CountByBusinessAndStatus(businessUserID uuid.UUID, status string) (int, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(order *entity.Order) error {
	query := `
        INSERT INTO orders (id, customer_id, offer_detail_id, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
    `
	_, err := r.db.Exec(query, order.ID, order.CustomerID, order.OfferDetailID, order.Status)
	return err
}

// Orders are always read together with the referenced detail and the
// business owner, which the response shape flattens in.
const orderQuery = `
    SELECT ord.id, ord.customer_id, ord.offer_detail_id, ord.status, ord.created_at, ord.updated_at,
           d.id, d.offer_id, d.title, d.revisions, d.delivery_time_in_days, d.price,
           d.features, d.offer_type, o.owner_id
    FROM orders ord
    JOIN offer_details d ON d.id = ord.offer_detail_id
    JOIN offers o ON o.id = d.offer_id
`

func scanOrder(row interface{ Scan(...interface{}) error }) (*entity.Order, error) {
	var ord entity.Order
	var features []byte
	err := row.Scan(
		&ord.ID, &ord.CustomerID, &ord.OfferDetailID, &ord.Status, &ord.CreatedAt, &ord.UpdatedAt,
		&ord.OfferDetail.ID, &ord.OfferDetail.OfferID, &ord.OfferDetail.Title,
		&ord.OfferDetail.Revisions, &ord.OfferDetail.DeliveryTimeInDays, &ord.OfferDetail.Price,
		&features, &ord.OfferDetail.OfferType, &ord.BusinessUserID,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &ord.OfferDetail.Features); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *orderRepository) GetByID(orderID uuid.UUID) (*entity.Order, error) {
	order, err := scanOrder(r.db.QueryRow(orderQuery+` WHERE ord.id = $1`, orderID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return order, err
}

func (r *orderRepository) ListForUser(userID uuid.UUID) ([]entity.Order, error) {
	query := orderQuery + ` WHERE ord.customer_id = $1 OR o.owner_id = $1 ORDER BY ord.created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(orderID uuid.UUID, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, orderID)
	return err
}

func (r *orderRepository) DeleteOrder(orderID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM orders WHERE id = $1`, orderID)
	return err
}

func (r *orderRepository) CountByBusinessAndStatus(businessUserID uuid.UUID, status string) (int, error) {
	var count int
	query := `
        SELECT COUNT(*)
        FROM orders ord
        JOIN offer_details d ON d.id = ord.offer_detail_id
        JOIN offers o ON o.id = d.offer_id
        WHERE o.owner_id = $1 AND ord.status = $2
    `
	err := r.db.QueryRow(query, businessUserID, status).Scan(&count)
	return count, err
}
