package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
)

const pgForeignKeyViolation = "23503"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const bookColumns = `id, isbn, title, description, year_release, author_id, publisher_id, friend_id, copy_count, price, cover`

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.ISBN,
		&b.Title,
		&b.Description,
		&b.YearRelease,
		&b.AuthorID,
		&b.PublisherID,
		&b.FriendID,
		&b.CopyCount,
		&b.Price,
		&b.Cover,
	)
}

// translate maps FK violations to ErrInvalidReference
func translate(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return model.ErrInvalidReference
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *postgresRepository) insert(ctx context.Context, q querier, b *model.Book) error {
	query := `
		INSERT INTO books (isbn, title, description, year_release, author_id, publisher_id, friend_id, copy_count, price, cover)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := q.QueryRow(ctx, query,
		b.ISBN, b.Title, b.Description, b.YearRelease,
		b.AuthorID, b.PublisherID, b.FriendID,
		b.CopyCount, b.Price, b.Cover,
	).Scan(&b.ID)
	if err != nil {
		return translate("insert book", err)
	}
	return nil
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) error {
	if err := r.insert(ctx, r.pool, b); err != nil {
		return err
	}
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
	return nil
}

// CreateWithTx không xóa cache: trước commit, một request đọc song song sẽ
// nạp lại dữ liệu cũ. Caller gọi InvalidateListings sau khi commit.
func (r *postgresRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, b *model.Book) error {
	return r.insert(ctx, tx, b)
}

func (r *postgresRepository) InvalidateListings(ctx context.Context) {
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book by id: %w", err)
	}
	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Book, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, &b)
	}
	return books, rows.Err()
}

func (r *postgresRepository) ListDetailed(ctx context.Context) ([]*model.BookDetail, error) {
	query := `
		SELECT b.id, b.isbn, b.title, b.description, b.year_release, b.author_id, b.publisher_id,
		       b.friend_id, b.copy_count, b.price, b.cover,
		       a.full_name, p.name, COALESCE(f.name, '')
		FROM books b
		JOIN authors a ON a.id = b.author_id
		JOIN publishers p ON p.id = b.publisher_id
		LEFT JOIN friends f ON f.id = b.friend_id
		ORDER BY b.id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books detailed: %w", err)
	}
	defer rows.Close()

	var out []*model.BookDetail
	for rows.Next() {
		var d model.BookDetail
		if err := rows.Scan(
			&d.ID, &d.ISBN, &d.Title, &d.Description, &d.YearRelease, &d.AuthorID, &d.PublisherID,
			&d.FriendID, &d.CopyCount, &d.Price, &d.Cover,
			&d.AuthorName, &d.PublisherName, &d.FriendName,
		); err != nil {
			return nil, fmt.Errorf("scan book detail: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Titles(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT title FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	titles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect titles: %w", err)
	}
	return titles, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
		UPDATE books
		SET isbn = $2, title = $3, description = $4, year_release = $5, author_id = $6,
		    publisher_id = $7, friend_id = $8, copy_count = $9, price = $10, cover = $11
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.ISBN, b.Title, b.Description, b.YearRelease, b.AuthorID,
		b.PublisherID, b.FriendID, b.CopyCount, b.Price, b.Cover,
	)
	if err != nil {
		return translate("update book", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
	return nil
}

func (r *postgresRepository) UpdateCopyCount(ctx context.Context, id int64, count int16) error {
	tag, err := r.pool.Exec(ctx, `UPDATE books SET copy_count = $2 WHERE id = $1`, id, count)
	if err != nil {
		return fmt.Errorf("update copy count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (string, error) {
	var cover string
	err := r.pool.QueryRow(ctx, `DELETE FROM books WHERE id = $1 RETURNING cover`, id).Scan(&cover)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrBookNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete book: %w", err)
	}
	cache.Invalidate(ctx, r.cache, shared.CacheKeyPublisherTitles)
	return cover, nil
}

func (r *postgresRepository) CoverKeys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT cover FROM books WHERE cover <> ''`)
	if err != nil {
		return nil, fmt.Errorf("list cover keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect cover keys: %w", err)
	}
	return keys, nil
}
