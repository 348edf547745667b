package repository

import (
	"database/sql"
	"fmt"

	entity "service-market/internal/domain"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	CreateReview(review *entity.Review) error
	GetByID(reviewID uuid.UUID) (*entity.Review, error)
	Exists(reviewerID, businessUserID uuid.UUID) (bool, error)
	ListReviews(filter entity.ReviewFilter) ([]entity.Review, error)
	UpdateReview(review *entity.Review) error
	DeleteReview(reviewID uuid.UUID) error
	Stats() (count int, averageRating float64, err error)
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, reviewer_id, business_user_id, rating, description, created_at, updated_at`

func (r *reviewRepository) CreateReview(review *entity.Review) error {
	query := `
        INSERT INTO reviews (id, reviewer_id, business_user_id, rating, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
    `
	_, err := r.db.Exec(query,
		review.ID, review.ReviewerID, review.BusinessUserID, review.Rating, review.Description,
	)
	return err
}

func (r *reviewRepository) GetByID(reviewID uuid.UUID) (*entity.Review, error) {
	var rev entity.Review
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	err := r.db.QueryRow(query, reviewID).Scan(
		&rev.ID, &rev.ReviewerID, &rev.BusinessUserID, &rev.Rating, &rev.Description,
		&rev.CreatedAt, &rev.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *reviewRepository) Exists(reviewerID, businessUserID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE reviewer_id = $1 AND business_user_id = $2)`
	err := r.db.QueryRow(query, reviewerID, businessUserID).Scan(&exists)
	return exists, err
}

func (r *reviewRepository) ListReviews(filter entity.ReviewFilter) ([]entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE 1=1`
	args := []interface{}{}

	if filter.BusinessUserID != nil {
		args = append(args, *filter.BusinessUserID)
		query += fmt.Sprintf(" AND business_user_id = $%d", len(args))
	}
	if filter.ReviewerID != nil {
		args = append(args, *filter.ReviewerID)
		query += fmt.Sprintf(" AND reviewer_id = $%d", len(args))
	}

	switch filter.Ordering {
	case "rating":
		query += " ORDER BY rating ASC"
	case "-rating":
		query += " ORDER BY rating DESC"
	case "updated_at":
		query += " ORDER BY updated_at ASC"
	case "-updated_at":
		query += " ORDER BY updated_at DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var rev entity.Review
		err := rows.Scan(
			&rev.ID, &rev.ReviewerID, &rev.BusinessUserID, &rev.Rating, &rev.Description,
			&rev.CreatedAt, &rev.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) UpdateReview(review *entity.Review) error {
	query := `UPDATE reviews SET rating=$1, description=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.db.Exec(query, review.Rating, review.Description, review.ID)
	return err
}

func (r *reviewRepository) DeleteReview(reviewID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM reviews WHERE id = $1`, reviewID)
	return err
}

func (r *reviewRepository) Stats() (int, float64, error) {
	var count int
	var avg sql.NullFloat64
	err := r.db.QueryRow(`SELECT COUNT(*), AVG(rating) FROM reviews`).Scan(&count, &avg)
	if err != nil {
		return 0, 0, err
	}
	return count, avg.Float64, nil
}
