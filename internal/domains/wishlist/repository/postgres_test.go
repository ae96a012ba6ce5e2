package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/wishlist"
)

func TestCreateSlugCollision(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wishlists")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_wishlists_slug"})

	w := &wishlist.Wishlist{ID: uuid.New(), UserID: uuid.New(), Title: "Birthday", Slug: "birthday-1", Language: "tr"}
	err = NewPostgresRepository(mock).Create(context.Background(), w)
	assert.ErrorIs(t, err, wishlist.ErrSlugTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlugNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE w.slug = $1")).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	_, err = NewPostgresRepository(mock).GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, wishlist.ErrWishlistNotFound)
}

func TestDeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wishlists WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewPostgresRepository(mock).Delete(context.Background(), id)
	assert.ErrorIs(t, err, wishlist.ErrWishlistNotFound)
}
