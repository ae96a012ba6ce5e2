package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-backend/internal/domains/reaction"
)

func newInteraction(kind reaction.Kind) *reaction.Interaction {
	return &reaction.Interaction{
		ID:          uuid.New(),
		ItemID:      uuid.New(),
		Kind:        kind,
		Fingerprint: reaction.Fingerprint("10.0.0.1", "curl/8"),
		IPAddress:   "10.0.0.1",
		UserAgent:   "curl/8",
	}
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstReactionIncrements", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		in := newInteraction(reaction.KindHeart)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT w.slug")).
			WithArgs(in.ItemID).
			WillReturnRows(pgxmock.NewRows([]string{"slug"}).AddRow("birthday-1"))
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (item_id, interaction_type, fingerprint) DO NOTHING")).
			WithArgs(in.ID, in.ItemID, in.Kind, in.Fingerprint, in.IPAddress, in.UserAgent).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE items SET heart_count = heart_count + 1")).
			WithArgs(in.ItemID).
			WillReturnRows(pgxmock.NewRows([]string{"heart_count", "thumbs_up_count"}).AddRow(4, 1))
		mock.ExpectCommit()

		out, err := NewPostgresRepository(mock).Record(ctx, in)
		require.NoError(t, err)
		assert.True(t, out.Recorded)
		assert.Equal(t, "birthday-1", out.WishlistSlug)
		assert.Equal(t, reaction.Counts{HeartCount: 4, ThumbsUpCount: 1}, out.Counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateIsNoop", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		in := newInteraction(reaction.KindThumbsUp)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT w.slug")).
			WithArgs(in.ItemID).
			WillReturnRows(pgxmock.NewRows([]string{"slug"}).AddRow("birthday-1"))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO item_interactions")).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT heart_count, thumbs_up_count FROM items WHERE id = $1")).
			WithArgs(in.ItemID).
			WillReturnRows(pgxmock.NewRows([]string{"heart_count", "thumbs_up_count"}).AddRow(4, 1))
		mock.ExpectCommit()

		out, err := NewPostgresRepository(mock).Record(ctx, in)
		require.NoError(t, err)
		assert.False(t, out.Recorded)
		assert.Equal(t, 1, out.Counts.ThumbsUpCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PrivateOrMissingItem", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		in := newInteraction(reaction.KindHeart)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT w.slug")).
			WithArgs(in.ItemID).
			WillReturnRows(pgxmock.NewRows([]string{"slug"}))
		mock.ExpectRollback()

		_, err = NewPostgresRepository(mock).Record(ctx, in)
		assert.ErrorIs(t, err, reaction.ErrItemNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UnknownKindNeverHitsDatabase", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		_, err = NewPostgresRepository(mock).Record(ctx, newInteraction("clap"))
		assert.ErrorIs(t, err, reaction.ErrInvalidKind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	wishlistID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE items i")).
		WithArgs(&wishlistID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := NewPostgresRepository(mock).Recount(context.Background(), wishlistID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
