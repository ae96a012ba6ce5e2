package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/user"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err = NewPostgresRepository(mock).Create(ctx, &user.User{ID: uuid.New(), Email: "a@b.co"})
		assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
	})

	t.Run("FillsTimestamps", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		u := &user.User{ID: uuid.New(), Email: "a@b.co", PasswordHash: "h", FullName: "Ada"}
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs(u.ID, u.Email, u.PasswordHash, u.FullName).
			WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		require.NoError(t, NewPostgresRepository(mock).Create(ctx, u))
		assert.Equal(t, now, u.CreatedAt)
	})
}

func TestFindByEmailNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(email) = LOWER($1)")).
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err = NewPostgresRepository(mock).FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
