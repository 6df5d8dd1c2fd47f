package repository_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "library-catalog/internal/domains/author/model"
	authorrepo "library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/repository"
	friendmodel "library-catalog/internal/domains/friend/model"
	friendrepo "library-catalog/internal/domains/friend/repository"
	publishermodel "library-catalog/internal/domains/publisher/model"
	publisherrepo "library-catalog/internal/domains/publisher/repository"
	"library-catalog/internal/testutil"
)

func TestPostgresRepository_Integration(t *testing.T) {
	pool := testutil.MigratedPool(t)
	ctx := context.Background()

	authors := authorrepo.NewPostgresRepository(pool, nil)
	publishers := publisherrepo.NewPostgresRepository(pool, nil, 0)
	friends := friendrepo.NewPostgresRepository(pool, nil)
	books := repository.NewPostgresRepository(pool, nil)

	tolstoy := &authormodel.Author{FullName: "Leo Tolstoy", BirthYear: 1828, Country: "RU"}
	require.NoError(t, authors.Create(ctx, tolstoy))
	acme := &publishermodel.Publisher{Name: "Acme"}
	require.NoError(t, publishers.Create(ctx, acme))
	masha := &friendmodel.Friend{Name: "Masha"}
	require.NoError(t, friends.Create(ctx, masha))

	newBook := func(title string, friendID *int64) *model.Book {
		return &model.Book{
			ISBN: "9780140447934", Title: title, Description: "novel", YearRelease: 1869,
			AuthorID: tolstoy.ID, PublisherID: acme.ID, FriendID: friendID,
			CopyCount: 1, Price: decimal.RequireFromString("12.50"),
		}
	}

	war := newBook("War and Peace", &masha.ID)
	anna := newBook("Anna Karenina", nil)
	require.NoError(t, books.Create(ctx, war))
	require.NoError(t, books.Create(ctx, anna))

	t.Run("titles in id order", func(t *testing.T) {
		titles, err := books.Titles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"War and Peace", "Anna Karenina"}, titles)
	})

	t.Run("detailed listing joins names", func(t *testing.T) {
		list, err := books.ListDetailed(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Leo Tolstoy", list[0].AuthorName)
		assert.Equal(t, "Acme", list[0].PublisherName)
		assert.Equal(t, "Masha", list[0].FriendName)
		assert.Empty(t, list[1].FriendName)
		assert.True(t, decimal.RequireFromString("12.50").Equal(list[0].Price))
	})

	t.Run("publisher listing carries titles", func(t *testing.T) {
		list, err := publishers.ListWithTitles(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, []string{"War and Peace", "Anna Karenina"}, list[0].Titles)
	})

	t.Run("copy count write", func(t *testing.T) {
		require.NoError(t, books.UpdateCopyCount(ctx, war.ID, 5))
		got, err := books.GetByID(ctx, war.ID)
		require.NoError(t, err)
		assert.Equal(t, int16(5), got.CopyCount)
	})

	t.Run("unknown author is an invalid reference", func(t *testing.T) {
		b := newBook("Ghost", nil)
		b.AuthorID = 999999
		assert.ErrorIs(t, books.Create(ctx, b), model.ErrInvalidReference)
	})

	t.Run("deleting a publisher cascades to its books", func(t *testing.T) {
		orbit := &publishermodel.Publisher{Name: "Orbit"}
		require.NoError(t, publishers.Create(ctx, orbit))
		hadji := newBook("Hadji Murat", nil)
		hadji.PublisherID = orbit.ID
		require.NoError(t, books.Create(ctx, hadji))

		require.NoError(t, publishers.Delete(ctx, orbit.ID))

		_, err := books.GetByID(ctx, hadji.ID)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		_, err = books.GetByID(ctx, war.ID)
		assert.NoError(t, err)
	})

	t.Run("deleting a friend cascades to lent books", func(t *testing.T) {
		require.NoError(t, friends.Delete(ctx, masha.ID))

		_, err := books.GetByID(ctx, war.ID)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
		_, err = books.GetByID(ctx, anna.ID)
		assert.NoError(t, err)
	})

	t.Run("deleting an author cascades to its books", func(t *testing.T) {
		require.NoError(t, authors.Delete(ctx, tolstoy.ID))

		list, err := books.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := books.Delete(ctx, anna.ID)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})
}
