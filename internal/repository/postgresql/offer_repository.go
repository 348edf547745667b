package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	entity "service-market/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OfferRepository interface {
	CreateOfferWithDetails(offer *entity.Offer) error
	GetOfferByID(offerID uuid.UUID) (*entity.Offer, error)
	GetDetailByID(detailID uuid.UUID) (*entity.OfferDetail, error)
	ListOffers(filter entity.OfferFilter) ([]entity.Offer, int, error)
	ListByOwner(ownerID uuid.UUID) ([]entity.Offer, error)
	UpdateOffer(offer *entity.Offer) error
	UpdateDetail(detail *entity.OfferDetail) error
	DeleteOffer(offerID uuid.UUID) error
	CountOffers() (int, error)
}

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Offer and 3 details are written in one transaction so a failed detail
// insert never leaves a partial offer behind.
func (r *offerRepository) CreateOfferWithDetails(offer *entity.Offer) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO offers (id, owner_id, title, file, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    `, offer.ID, offer.OwnerID, offer.Title, offer.File, offer.Description)
	if err != nil {
		return err
	}

	for i := range offer.Details {
		d := &offer.Details[i]
		features, err := json.Marshal(d.Features)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
            INSERT INTO offer_details (id, offer_id, title, revisions, delivery_time_in_days,
                                       price, features, offer_type, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
        `, d.ID, offer.ID, d.Title, d.Revisions, d.DeliveryTimeInDays, d.Price, features, d.OfferType)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

const offerColumns = `
    o.id, o.owner_id, o.title, o.file, o.description, o.created_at, o.updated_at,
    u.username, u.email, p.first_name, p.last_name`

func scanOffer(row interface{ Scan(...interface{}) error }) (*entity.Offer, error) {
	var o entity.Offer
	err := row.Scan(
		&o.ID, &o.OwnerID, &o.Title, &o.File, &o.Description, &o.CreatedAt, &o.UpdatedAt,
		&o.Owner.Username, &o.Owner.Email, &o.Owner.FirstName, &o.Owner.LastName,
	)
	if err != nil {
		return nil, err
	}
	o.Owner.ID = o.OwnerID
	return &o, nil
}

func (r *offerRepository) GetOfferByID(offerID uuid.UUID) (*entity.Offer, error) {
	query := `
        SELECT` + offerColumns + `
        FROM offers o
        JOIN users u ON u.id = o.owner_id
        LEFT JOIN profiles p ON p.user_id = o.owner_id
        WHERE o.id = $1
    `
	offer, err := scanOffer(r.db.QueryRow(query, offerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	details, err := r.loadDetails([]uuid.UUID{offer.ID})
	if err != nil {
		return nil, err
	}
	offer.Details = details[offer.ID]
	return offer, nil
}

func (r *offerRepository) GetDetailByID(detailID uuid.UUID) (*entity.OfferDetail, error) {
	query := `
        SELECT id, offer_id, title, revisions, delivery_time_in_days, price,
               features, offer_type, created_at, updated_at
        FROM offer_details WHERE id = $1
    `
	var d entity.OfferDetail
	var features []byte
	err := r.db.QueryRow(query, detailID).Scan(
		&d.ID, &d.OfferID, &d.Title, &d.Revisions, &d.DeliveryTimeInDays, &d.Price,
		&features, &d.OfferType, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &d.Features); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListOffers filters and orders on the per-offer minimum price and
// delivery time computed from the detail rows.
func (r *offerRepository) ListOffers(filter entity.OfferFilter) ([]entity.Offer, int, error) {
	base := `
        FROM offers o
        JOIN users u ON u.id = o.owner_id
        LEFT JOIN profiles p ON p.user_id = o.owner_id
        LEFT JOIN (
            SELECT offer_id, MIN(price) AS min_price, MIN(delivery_time_in_days) AS min_delivery
            FROM offer_details GROUP BY offer_id
        ) d ON d.offer_id = o.id
        WHERE 1=1
    `
	args := []interface{}{}

	if filter.CreatorID != nil {
		args = append(args, *filter.CreatorID)
		base += fmt.Sprintf(" AND o.owner_id = $%d", len(args))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		base += fmt.Sprintf(" AND d.min_price >= $%d", len(args))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		base += fmt.Sprintf(" AND d.min_price <= $%d", len(args))
	}
	if filter.MaxDeliveryTime != nil {
		args = append(args, *filter.MaxDeliveryTime)
		base += fmt.Sprintf(" AND d.min_delivery <= $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		base += fmt.Sprintf(" AND (o.title ILIKE $%d OR o.description ILIKE $%d)", n, n)
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*)"+base, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + offerColumns + base
	switch filter.Ordering {
	case "created_at":
		query += " ORDER BY o.created_at ASC"
	case "updated_at":
		query += " ORDER BY o.updated_at ASC"
	case "-updated_at":
		query += " ORDER BY o.updated_at DESC"
	case "min_price":
		query += " ORDER BY d.min_price ASC"
	case "-min_price":
		query += " ORDER BY d.min_price DESC"
	default:
		query += " ORDER BY o.created_at DESC"
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	offers, err := r.collectOffers(rows)
	if err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

func (r *offerRepository) ListByOwner(ownerID uuid.UUID) ([]entity.Offer, error) {
	query := `
        SELECT` + offerColumns + `
        FROM offers o
        JOIN users u ON u.id = o.owner_id
        LEFT JOIN profiles p ON p.user_id = o.owner_id
        WHERE o.owner_id = $1
        ORDER BY o.created_at DESC
    `
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOffers(rows)
}

func (r *offerRepository) collectOffers(rows *sql.Rows) ([]entity.Offer, error) {
	var offers []entity.Offer
	var ids []uuid.UUID
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *offer)
		ids = append(ids, offer.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return offers, nil
	}

	details, err := r.loadDetails(ids)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		offers[i].Details = details[offers[i].ID]
	}
	return offers, nil
}

func (r *offerRepository) loadDetails(offerIDs []uuid.UUID) (map[uuid.UUID][]entity.OfferDetail, error) {
	ids := make([]string, len(offerIDs))
	for i, id := range offerIDs {
		ids[i] = id.String()
	}

	query := `
        SELECT id, offer_id, title, revisions, delivery_time_in_days, price,
               features, offer_type, created_at, updated_at
        FROM offer_details
        WHERE offer_id = ANY($1)
        ORDER BY CASE offer_type WHEN 'basic' THEN 0 WHEN 'standard' THEN 1 ELSE 2 END
    `
	rows, err := r.db.Query(query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]entity.OfferDetail)
	for rows.Next() {
		var d entity.OfferDetail
		var features []byte
		err := rows.Scan(
			&d.ID, &d.OfferID, &d.Title, &d.Revisions, &d.DeliveryTimeInDays, &d.Price,
			&features, &d.OfferType, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(features, &d.Features); err != nil {
			return nil, err
		}
		result[d.OfferID] = append(result[d.OfferID], d)
	}
	return result, rows.Err()
}

func (r *offerRepository) UpdateOffer(offer *entity.Offer) error {
	query := `
        UPDATE offers
        SET title=$1, file=$2, description=$3, updated_at=NOW()
        WHERE id=$4
    `
	_, err := r.db.Exec(query, offer.Title, offer.File, offer.Description, offer.ID)
	return err
}

func (r *offerRepository) UpdateDetail(detail *entity.OfferDetail) error {
	features, err := json.Marshal(detail.Features)
	if err != nil {
		return err
	}
	query := `
        UPDATE offer_details
        SET title=$1, revisions=$2, delivery_time_in_days=$3, price=$4, features=$5, updated_at=NOW()
        WHERE id=$6
    `
	_, err = r.db.Exec(query,
		detail.Title, detail.Revisions, detail.DeliveryTimeInDays, detail.Price, features, detail.ID,
	)
	return err
}

func (r *offerRepository) DeleteOffer(offerID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM offers WHERE id = $1`, offerID)
	return err
}

func (r *offerRepository) CountOffers() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM offers`).Scan(&count)
	return count, err
}
