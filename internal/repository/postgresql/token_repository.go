package repository

import (
	"database/sql"

	entity "service-market/internal/domain"

	"github.com/google/uuid"
)

type TokenRepository interface {
	// GetOrCreate returns the user's existing token key, creating one via
	// generate when none is stored yet.
	GetOrCreate(userID uuid.UUID, generate func() (string, error)) (string, error)
	GetUserByKey(key string) (*entity.User, error)
	DeleteByUserID(userID uuid.UUID) (bool, error)
}

type tokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) GetOrCreate(userID uuid.UUID, generate func() (string, error)) (string, error) {
	var key string
	err := r.db.QueryRow(`SELECT key FROM auth_tokens WHERE user_id = $1`, userID).Scan(&key)
	if err == nil {
		return key, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	key, err = generate()
	if err != nil {
		return "", err
	}
	res, err := r.db.Exec(
		`INSERT INTO auth_tokens (key, user_id, created_at) VALUES ($1, $2, NOW())
         ON CONFLICT (user_id) DO NOTHING`,
		key, userID,
	)
	if err != nil {
		return "", err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		// A concurrent login stored a token first; hand out that one.
		err = r.db.QueryRow(`SELECT key FROM auth_tokens WHERE user_id = $1`, userID).Scan(&key)
	}
	return key, err
}

func (r *tokenRepository) GetUserByKey(key string) (*entity.User, error) {
	var user entity.User
	query := `
        SELECT u.id, u.username, u.email, u.password_hash, u.is_staff, u.created_at
        FROM auth_tokens t
        JOIN users u ON u.id = t.user_id
        WHERE t.key = $1
    `
	err := r.db.QueryRow(query, key).Scan(
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

func (r *tokenRepository) DeleteByUserID(userID uuid.UUID) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
