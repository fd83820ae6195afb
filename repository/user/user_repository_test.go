package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/storefront/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "username", "email", "hashed_password", "first_name", "last_name", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestSQL_GetByIdentifier(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	t.Run("email is compared lowercased", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getUserByIdentifier)).
			WithArgs("Jane@Example.com", "jane@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).AddRow(3, "jane", "jane@example.com", "hash", "Jane", "Doe", now, nil))

		u, err := repo.GetByIdentifier(context.Background(), "  Jane@Example.com ")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, uint64(3), u.ID)
		assert.Equal(t, "hash", u.HashedPassword)
		assert.Nil(t, u.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getUserByIdentifier)).
			WithArgs("ghost", "ghost").
			WillReturnRows(sqlmock.NewRows(userCols))

		u, err := repo.GetByIdentifier(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(getUserByID)).
			WillReturnError(errors.New("conn reset"))

		_, err := repo.GetByID(context.Background(), 1)
		assert.EqualError(t, err, "conn reset")
	})
}

func TestSQL_Taken(t *testing.T) {
	tests := []struct {
		name     string
		email    int64
		username int64
		want     model.Availability
	}{
		{name: "free"},
		{name: "email", email: 1, want: model.Availability{EmailTaken: true}},
		{name: "both", email: 1, username: 1, want: model.Availability{EmailTaken: true, UsernameTaken: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectQuery(regexp.QuoteMeta(takenCredentials)).
				WithArgs("jane@example.com", "jane", "jane@example.com", "jane").
				WillReturnRows(sqlmock.NewRows([]string{"email_taken", "username_taken"}).AddRow(tt.email, tt.username))

			got, err := repo.Taken(context.Background(), "jane", "JANE@example.com")
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQL_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(insertUser)).
		WithArgs("jane", "jane@example.com", "hash", "Jane", "").
		WillReturnResult(sqlmock.NewResult(11, 1))

	u, err := repo.Create(context.Background(), &model.UserEntity{Username: "jane", Email: "jane@example.com", HashedPassword: "hash", FirstName: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
