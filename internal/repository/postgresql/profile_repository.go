package repository

import (
	"database/sql"
	"fmt"

	entity "service-market/internal/domain"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	CreateProfile(profile *entity.Profile) error
	GetByUserID(userID uuid.UUID) (*entity.Profile, error)
	UpdateProfile(profile *entity.Profile) error
	ListProfiles(filter entity.ProfileFilter) ([]entity.Profile, error)
	CountByType(profileType string) (int, error)
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
    p.id, p.user_id, p.type, p.first_name, p.last_name, p.file, p.location,
    p.tel, p.description, p.working_hours, p.created_at, p.updated_at,
    u.username, u.email`

func (r *profileRepository) CreateProfile(profile *entity.Profile) error {
	query := `
        INSERT INTO profiles (id, user_id, type, first_name, last_name, file, location,
                              tel, description, working_hours, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
    `
	_, err := r.db.Exec(query,
		profile.ID, profile.UserID, profile.Type, profile.FirstName, profile.LastName,
		profile.File, profile.Location, profile.Tel, profile.Description, profile.WorkingHours,
	)
	return err
}

func (r *profileRepository) GetByUserID(userID uuid.UUID) (*entity.Profile, error) {
	query := `
        SELECT` + profileColumns + `
        FROM profiles p
        JOIN users u ON u.id = p.user_id
        WHERE p.user_id = $1
    `
	var p entity.Profile
	err := r.db.QueryRow(query, userID).Scan(
		&p.ID, &p.UserID, &p.Type, &p.FirstName, &p.LastName, &p.File, &p.Location,
		&p.Tel, &p.Description, &p.WorkingHours, &p.CreatedAt, &p.UpdatedAt,
		&p.Username, &p.Email,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) UpdateProfile(profile *entity.Profile) error {
	query := `
        UPDATE profiles
        SET first_name=$1, last_name=$2, file=$3, location=$4, tel=$5,
            description=$6, working_hours=$7, updated_at=NOW()
        WHERE id=$8
    `
	_, err := r.db.Exec(query,
		profile.FirstName, profile.LastName, profile.File, profile.Location,
		profile.Tel, profile.Description, profile.WorkingHours, profile.ID,
	)
	return err
}

func (r *profileRepository) ListProfiles(filter entity.ProfileFilter) ([]entity.Profile, error) {
	query := `
        SELECT` + profileColumns + `
        FROM profiles p
        JOIN users u ON u.id = p.user_id
        WHERE 1=1
    `
	args := []interface{}{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND p.type = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (u.username ILIKE $%d OR p.location ILIKE $%d OR p.first_name ILIKE $%d OR p.last_name ILIKE $%d)",
			n, n, n, n,
		)
	}

	switch filter.Ordering {
	case "username":
		query += " ORDER BY u.username ASC"
	case "-username":
		query += " ORDER BY u.username DESC"
	case "location":
		query += " ORDER BY p.location ASC"
	case "-location":
		query += " ORDER BY p.location DESC"
	case "created_at":
		query += " ORDER BY p.created_at ASC"
	default:
		query += " ORDER BY p.created_at DESC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []entity.Profile
	for rows.Next() {
		var p entity.Profile
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Type, &p.FirstName, &p.LastName, &p.File, &p.Location,
			&p.Tel, &p.Description, &p.WorkingHours, &p.CreatedAt, &p.UpdatedAt,
			&p.Username, &p.Email,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) CountByType(profileType string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM profiles WHERE type = $1`, profileType).Scan(&count)
	return count, err
}
