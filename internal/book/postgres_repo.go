package book

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librarydb/internal/dberr"
)

// table metadata for constraint translation; names match db/migrations.
var table = dberr.Table{
	Name: "books",
	Uniques: map[string]string{
		"books_isbn_key": "isbn",
	},
	Checks: map[string]dberr.Check{
		"books_available_copies_check": {Field: "available_copies", Rule: "0 <= available_copies <= total_copies"},
		"books_total_copies_check":     {Field: "total_copies", Rule: "total_copies >= 0"},
		"books_publication_year_check": {Field: "publication_year", Rule: "publication_year >= 1000"},
	},
	Lengths: map[int]string{13: "isbn", 200: "title"},
}

const columns = `book_id, isbn, title, author_id, publisher_id, category_id,
	publication_year, total_copies, available_copies, price, language,
	description, location, status, created_at, updated_at`

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (isbn, title, author_id, publisher_id, category_id,
	                   publication_year, total_copies, available_copies,
	                   price, language, description, location, status)
	VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
	        COALESCE(NULLIF($13, ''), 'available'))
	RETURNING book_id, status, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		b.ISBN, b.Title, b.AuthorID, b.PublisherID, b.CategoryID,
		b.PublicationYear, b.TotalCopies, b.AvailableCopies,
		b.Price, b.Language, b.Description, b.Location, b.Status,
	).Scan(&b.ID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return dberr.Translate(err, table)
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (*Book, error) {
	const query = `SELECT ` + columns + ` FROM books WHERE book_id = $1 LIMIT 1`
	return scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepo) FindByISBN(ctx context.Context, isbn string) (*Book, error) {
	const query = `SELECT ` + columns + ` FROM books WHERE isbn = $1 LIMIT 1`
	return scanOne(r.db.QueryRow(ctx, query, isbn))
}

func (r *PostgresRepo) FindAll(ctx context.Context) ([]Book, error) {
	const query = `SELECT ` + columns + ` FROM books ORDER BY book_id`
	return r.queryMany(ctx, query)
}

func (r *PostgresRepo) SearchByTitle(ctx context.Context, fragment string) ([]Book, error) {
	const query = `SELECT ` + columns + ` FROM books WHERE title ILIKE $1 ORDER BY title`
	pattern := "%" + fragment + "%"
	return r.queryMany(ctx, query, pattern)
}

func (r *PostgresRepo) FindAvailableBooks(ctx context.Context) ([]Book, error) {
	const query = `SELECT ` + columns + ` FROM books WHERE available_copies > 0 ORDER BY book_id`
	return r.queryMany(ctx, query)
}

func (r *PostgresRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

func (r *PostgresRepo) CountAvailableBooks(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE available_copies > 0`).Scan(&n)
	return n, err
}

func (r *PostgresRepo) Update(ctx context.Context, b *Book) (bool, error) {
	const query = `
	UPDATE books
	SET isbn = NULLIF($2, ''), title = NULLIF($3, ''), author_id = $4,
	    publisher_id = $5, category_id = $6, publication_year = $7,
	    total_copies = $8, available_copies = $9, price = $10,
	    language = $11, description = $12, location = $13, status = $14
	WHERE book_id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		b.ID, b.ISBN, b.Title, b.AuthorID, b.PublisherID, b.CategoryID,
		b.PublicationYear, b.TotalCopies, b.AvailableCopies,
		b.Price, b.Language, b.Description, b.Location, b.Status,
	)
	if err != nil {
		return false, dberr.Translate(err, table)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) UpdateAvailableCopies(ctx context.Context, id int64, n int) (bool, error) {
	const query = `UPDATE books SET available_copies = $2 WHERE book_id = $1`
	tag, err := r.db.Exec(ctx, query, id, n)
	if err != nil {
		return false, dberr.Translate(err, table)
	}
	return tag.RowsAffected() > 0, nil
}

// DecreaseAvailableCopies is a single conditional write: the WHERE clause
// carries the floor check, so two concurrent decrements at a count of 1
// serialize on the row lock into one success and one no-op.
func (r *PostgresRepo) DecreaseAvailableCopies(ctx context.Context, id int64) (bool, error) {
	const query = `
	UPDATE books SET available_copies = available_copies - 1
	WHERE book_id = $1 AND available_copies > 0
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// IncreaseAvailableCopies mirrors the decrement with total_copies as the
// ceiling.
func (r *PostgresRepo) IncreaseAvailableCopies(ctx context.Context, id int64) (bool, error) {
	const query = `
	UPDATE books SET available_copies = available_copies + 1
	WHERE book_id = $1 AND available_copies < total_copies
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE book_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) queryMany(ctx context.Context, query string, args ...any) ([]Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := scanInto(rows, &b); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func scanOne(row pgx.Row) (*Book, error) {
	var b Book
	if err := scanInto(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func scanInto(row pgx.Row, b *Book) error {
	return row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.AuthorID, &b.PublisherID, &b.CategoryID,
		&b.PublicationYear, &b.TotalCopies, &b.AvailableCopies, &b.Price,
		&b.Language, &b.Description, &b.Location, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
}
