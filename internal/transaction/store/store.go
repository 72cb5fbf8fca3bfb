package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row joined to its category.
// Expected column order: id, type, category_id, description, amount, date, created_at, updated_at,
// category name, category type, category color
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, catTypeStr string

	var cat category.Category

	if err := s.Scan(
		&tx.ID, &typeStr, &tx.CategoryID, &tx.Description, &tx.Amount, &tx.Date,
		&tx.CreatedAt, &tx.UpdatedAt,
		&cat.Name, &catTypeStr, &cat.Color,
	); err != nil {
		return nil, err
	}

	tx.Type = category.Type(typeStr)

	cat.ID = tx.CategoryID
	cat.Type = category.Type(catTypeStr)
	tx.Category = &cat

	return &tx, nil
}

func selectTransactions() sq.SelectBuilder {
	return sq.Select(
		"t.id", "t.type", "t.category_id", "t.description", "t.amount", "t.date",
		"t.created_at", "t.updated_at",
		"c.name", "c.type", "c.color",
	).
		From("transactions t").
		Join("categories c ON c.id = t.category_id").
		PlaceholderFormat(sq.Dollar)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return insertTransaction(ctx, s.db, tx)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertTransaction(ctx context.Context, q queryRower, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (type, category_id, description, amount, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		tx.Type,
		tx.CategoryID,
		tx.Description,
		tx.Amount,
		tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query, args, err := selectTransactions().Where("t.id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building transaction query: %w", err)
	}

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	builder := selectTransactions().OrderBy("t.date DESC", "t.created_at DESC")

	if filter.Type != nil {
		builder = builder.Where("t.type = ?", *filter.Type)
	}

	if filter.CategoryID != nil {
		builder = builder.Where("t.category_id = ?", *filter.CategoryID)
	}

	if filter.StartDate != nil {
		builder = builder.Where("t.date >= ?", *filter.StartDate)
	}

	if filter.EndDate != nil {
		builder = builder.Where("t.date <= ?", *filter.EndDate)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building transaction query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	txs := []*transaction.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET type = $1, category_id = $2, description = $3, amount = $4, date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Type,
		tx.CategoryID,
		tx.Description,
		tx.Amount,
		tx.Date,
		tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := insertTransaction(ctx, itx.tx, tx); err != nil {
			return err
		}
	}

	return nil
}
