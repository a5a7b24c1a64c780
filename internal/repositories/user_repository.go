package repositories

import (
	"database/sql"
	"time"

	"tbexpert/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error

	// активация после подтверждения кода
	Activate(id int) error

	// refresh helpers
	UpdateRefresh(userID int, token string, expiresAt time.Time) error
	RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	ClearRefresh(userID int) error
	GetByRefreshToken(token string) (*models.User, error)
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userSelect = `
	SELECT id, full_name, position, phone, email, password_hash,
	       is_active, activated_at,
	       refresh_token, refresh_expires_at, refresh_revoked
	FROM users
`

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		activatedAt sql.NullTime
		rt          sql.NullString
		rte         sql.NullTime
		rr          sql.NullBool
	)
	err := row.Scan(
		&u.ID, &u.FullName, &u.Position, &u.Phone, &u.Email, &u.PasswordHash,
		&u.IsActive, &activatedAt,
		&rt, &rte, &rr,
	)
	if err != nil {
		return nil, err
	}
	if activatedAt.Valid {
		t := activatedAt.Time
		u.ActivatedAt = &t
	}
	if rt.Valid {
		s := rt.String
		u.RefreshToken = &s
	}
	if rte.Valid {
		t := rte.Time
		u.RefreshExpiresAt = &t
	}
	if rr.Valid {
		u.RefreshRevoked = rr.Bool
	}
	return u, nil
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (full_name, position, phone, email, password_hash, is_active, activated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRow(q,
		user.FullName, user.Position, user.Phone, user.Email,
		user.PasswordHash, user.IsActive, user.ActivatedAt,
	).Scan(&user.ID)
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	return scanUser(r.DB.QueryRow(userSelect+` WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(userSelect+` WHERE email = $1`, email))
}

func (r *userRepository) Update(user *models.User) error {
	const q = `
		UPDATE users
		SET full_name=$1, position=$2, phone=$3, email=$4, password_hash=$5,
		    is_active=$6, activated_at=$7
		WHERE id=$8
	`
	_, err := r.DB.Exec(q,
		user.FullName, user.Position, user.Phone, user.Email, user.PasswordHash,
		user.IsActive, user.ActivatedAt, user.ID,
	)
	return err
}

func (r *userRepository) Activate(id int) error {
	_, err := r.DB.Exec(`UPDATE users SET is_active=TRUE, activated_at=NOW() WHERE id=$1`, id)
	return err
}

// ===== refresh helpers =====

func (r *userRepository) UpdateRefresh(userID int, token string, expiresAt time.Time) error {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, token, expiresAt, userID)
	return err
}

func (r *userRepository) RotateRefresh(oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	const q = `
		UPDATE users
		SET refresh_token=$1, refresh_expires_at=$2, refresh_revoked=FALSE
		WHERE refresh_token=$3
		RETURNING id, full_name, position, phone, email, password_hash,
		          is_active, activated_at,
		          refresh_token, refresh_expires_at, refresh_revoked
	`
	return scanUser(r.DB.QueryRow(q, newToken, newExpiresAt, oldToken))
}

func (r *userRepository) ClearRefresh(userID int) error {
	_, err := r.DB.Exec(`
		UPDATE users
		SET refresh_token=NULL, refresh_expires_at=NULL, refresh_revoked=TRUE
		WHERE id=$1
	`, userID)
	return err
}

func (r *userRepository) GetByRefreshToken(token string) (*models.User, error) {
	return scanUser(r.DB.QueryRow(userSelect+` WHERE refresh_token = $1`, token))
}
