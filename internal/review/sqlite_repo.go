package review

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

func (r *SQLiteRepo) bookExists(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, bookID int64) error {
	var exists int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM books WHERE id = ?`, bookID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookNotFound
	}
	return err
}

func (r *SQLiteRepo) Create(ctx context.Context, rev *Review) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tx, err := r.db.BeginTx(timeoutCtx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.bookExists(timeoutCtx, tx, rev.BookID); err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert("reviews").
		Columns("user", "rating", "comment", "book_id").
		Values(rev.User, rev.Rating, rev.Comment, rev.BookID).
		ToSql()
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(timeoutCtx, query, args...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	rev.ID = id
	return nil
}

func (r *SQLiteRepo) ListAll(ctx context.Context) ([]Review, error) {
	query, args, err := squirrel.
		Select("id", "user", "rating", "comment", "book_id").
		From("reviews").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.collect(timeoutCtx, query, args)
}

func (r *SQLiteRepo) ListForBook(ctx context.Context, bookID int64) ([]Review, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.bookExists(timeoutCtx, r.db, bookID); err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("id", "user", "rating", "comment", "book_id").
		From("reviews").
		Where(squirrel.Eq{"book_id": bookID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.collect(timeoutCtx, query, args)
}

func (r *SQLiteRepo) collect(ctx context.Context, query string, args []any) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.User, &rev.Rating, &rev.Comment, &rev.BookID); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
