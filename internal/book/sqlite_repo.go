package book

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
)

// SQLiteRepo implements Repository on top of the sqlite store.
type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) List(ctx context.Context) ([]Book, error) {
	query, args, err := squirrel.
		Select("id", "title", "author", "summary", "genre").
		From("books").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Summary, &b.Genre); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) Get(ctx context.Context, id int64) (Book, error) {
	query, args, err := squirrel.
		Select("id", "title", "author", "summary", "genre").
		From("books").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return Book{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	err = r.db.QueryRowContext(timeoutCtx, query, args...).
		Scan(&b.ID, &b.Title, &b.Author, &b.Summary, &b.Genre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

// CreateBatch inserts all books in one transaction; either every book is
// committed or none is.
func (r *SQLiteRepo) CreateBatch(ctx context.Context, books []Book) error {
	if len(books) == 0 {
		return nil
	}

	ins := squirrel.Insert("books").Columns("title", "author", "summary", "genre")
	for _, b := range books {
		ins = ins.Values(b.Title, b.Author, b.Summary, b.Genre)
	}
	query, args, err := ins.ToSql()
	if err != nil {
		return err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tx, err := r.db.BeginTx(timeoutCtx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(timeoutCtx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepo) Update(ctx context.Context, id int64, patch Patch) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tx, err := r.db.BeginTx(timeoutCtx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(timeoutCtx, `SELECT 1 FROM books WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	sets := map[string]any{}
	if patch.Title != nil {
		sets["title"] = *patch.Title
	}
	if patch.Author != nil {
		sets["author"] = *patch.Author
	}
	if patch.Summary != nil {
		sets["summary"] = *patch.Summary
	}
	if patch.Genre != nil {
		sets["genre"] = *patch.Genre
	}
	if len(sets) > 0 {
		query, args, err := squirrel.
			Update("books").
			SetMap(sets).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(timeoutCtx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes the book and its reviews in one transaction.
func (r *SQLiteRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tx, err := r.db.BeginTx(timeoutCtx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(timeoutCtx, `DELETE FROM reviews WHERE book_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(timeoutCtx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// TopRated returns up to limit books ordered by mean review rating, highest
// first. Books without reviews never appear; ties break on book id ascending.
func (r *SQLiteRepo) TopRated(ctx context.Context, limit int) ([]RatedBook, error) {
	query, args, err := squirrel.
		Select("b.id", "b.title", "b.author", "b.summary", "b.genre", "AVG(r.rating) AS average_rating").
		From("books b").
		Join("reviews r ON r.book_id = b.id").
		GroupBy("b.id").
		OrderBy("average_rating DESC", "b.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RatedBook
	for rows.Next() {
		var rb RatedBook
		if err := rows.Scan(&rb.ID, &rb.Title, &rb.Author, &rb.Summary, &rb.Genre, &rb.AverageRating); err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, rows.Err()
}
