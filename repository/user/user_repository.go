package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
)

type SQL struct {
	conn *sqlx.DB
}

type UserRepository interface {
	Create(ctx context.Context, u *model.UserEntity) (*model.UserEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.UserEntity, error)
	// GetByIdentifier matches the username exactly or the email case-insensitively.
	GetByIdentifier(ctx context.Context, identifier string) (*model.UserEntity, error)
	Taken(ctx context.Context, username, email string) (*model.Availability, error)
}

func NewUserRepository(conn *sqlx.DB) UserRepository {
	return &SQL{conn: conn}
}

const (
	userColumns = `id, username, email, hashed_password, first_name, last_name, created_at, updated_at`

	insertUser = `INSERT INTO users (username, email, hashed_password, first_name, last_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

	getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	getUserByIdentifier = `SELECT ` + userColumns + ` FROM users WHERE username = ? OR LOWER(email) = ? ORDER BY id LIMIT 1`

	takenCredentials = `SELECT
	COALESCE(SUM(LOWER(email) = ?), 0) AS email_taken,
	COALESCE(SUM(username = ?), 0) AS username_taken
FROM users WHERE LOWER(email) = ? OR username = ?`
)

func (s *SQL) Create(ctx context.Context, u *model.UserEntity) (*model.UserEntity, error) {
	res, err := s.conn.ExecContext(ctx, insertUser, u.Username, u.Email, u.HashedPassword, u.FirstName, u.LastName)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	u.ID = uint64(id)
	return u, nil
}

func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.UserEntity, error) {
	return s.one(ctx, getUserByID, id)
}

func (s *SQL) GetByIdentifier(ctx context.Context, identifier string) (*model.UserEntity, error) {
	identifier = strings.TrimSpace(identifier)
	return s.one(ctx, getUserByIdentifier, identifier, strings.ToLower(identifier))
}

// one returns nil, nil when no row matches.
func (s *SQL) one(ctx context.Context, query string, args ...any) (*model.UserEntity, error) {
	var u model.UserEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *SQL) Taken(ctx context.Context, username, email string) (*model.Availability, error) {
	email = strings.ToLower(email)
	var row struct {
		Email    int64 `db:"email_taken"`
		Username int64 `db:"username_taken"`
	}
	if err := s.conn.GetContext(ctx, &row, takenCredentials, email, username, email, username); err != nil {
		return nil, err
	}
	return &model.Availability{EmailTaken: row.Email > 0, UsernameTaken: row.Username > 0}, nil
}
