package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/category"
)

const (
	nullItemsSQL      = `UPDATE items SET category_id = NULL, updated_at = NOW() WHERE category_id = $1 AND wishlist_id = $2`
	deleteCategorySQL = `DELETE FROM categories WHERE id = $1 AND wishlist_id = $2`
)

func TestDeleteCascade(t *testing.T) {
	ctx := context.Background()
	wishlistID, categoryID := uuid.New(), uuid.New()

	t.Run("NullsItemsBeforeDelete", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(nullItemsSQL)).
			WithArgs(categoryID, wishlistID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 3))
		mock.ExpectExec(regexp.QuoteMeta(deleteCategorySQL)).
			WithArgs(categoryID, wishlistID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		n, err := NewPostgresRepository(mock).DeleteCascade(ctx, wishlistID, categoryID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingCategoryRollsBack", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(nullItemsSQL)).
			WithArgs(categoryID, wishlistID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectExec(regexp.QuoteMeta(deleteCategorySQL)).
			WithArgs(categoryID, wishlistID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()

		_, err = NewPostgresRepository(mock).DeleteCascade(ctx, wishlistID, categoryID)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteFailureRollsBack", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		boom := errors.New("connection reset")
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(nullItemsSQL)).
			WithArgs(categoryID, wishlistID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))
		mock.ExpectExec(regexp.QuoteMeta(deleteCategorySQL)).
			WithArgs(categoryID, wishlistID).
			WillReturnError(boom)
		mock.ExpectRollback()

		_, err = NewPostgresRepository(mock).DeleteCascade(ctx, wishlistID, categoryID)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListByWishlist(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	wishlistID := uuid.New()
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "wishlist_id", "name", "slug", "color", "created_at", "updated_at"}).
		AddRow(uuid.New(), wishlistID, "Books", "books", "#4f46e5", now, now).
		AddRow(uuid.New(), wishlistID, "Furniture", "furniture", "#ff0000", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE wishlist_id = $1 ORDER BY name ASC")).
		WithArgs(wishlistID).
		WillReturnRows(rows)

	got, err := NewPostgresRepository(mock).ListByWishlist(context.Background(), wishlistID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Books", got[0].Name)
	assert.Equal(t, "#ff0000", got[1].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}
