package repository

import (
	"database/sql"

	entity "service-market/internal/domain"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(user *entity.User) error
	GetByID(id uuid.UUID) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdateEmail(id uuid.UUID, email string) error
	EmailTakenByOther(email string, id uuid.UUID) (bool, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_staff, created_at`

func (r *userRepository) CreateUser(user *entity.User) error {
	query := `
        INSERT INTO users (id, username, email, password_hash, is_staff, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
    `
	_, err := r.db.Exec(query, user.ID, user.Username, user.Email, user.PasswordHash, user.IsStaff)
	return err
}

func (r *userRepository) GetByID(id uuid.UUID) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) getOne(query string, arg interface{}) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsStaff, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateEmail(id uuid.UUID, email string) error {
	_, err := r.db.Exec(`UPDATE users SET email = $1 WHERE id = $2`, email, id)
	return err
}

func (r *userRepository) EmailTakenByOther(email string, id uuid.UUID) (bool, error) {
	var taken bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	err := r.db.QueryRow(query, email, id).Scan(&taken)
	return taken, err
}
