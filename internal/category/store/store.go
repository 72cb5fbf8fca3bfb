package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
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

// scanCategory reads a row produced by selectCategories.
// Expected column order: id, name, type, color, created_at, updated_at, total_amount, transaction_count
func scanCategory(s scanner) (*category.Category, error) {
	var c category.Category

	var typeStr string

	if err := s.Scan(
		&c.ID, &c.Name, &typeStr, &c.Color, &c.CreatedAt, &c.UpdatedAt,
		&c.TotalAmount, &c.TransactionCount,
	); err != nil {
		return nil, err
	}

	c.Type = category.Type(typeStr)

	return &c, nil
}

// selectCategories joins every category to its transactions so the totals are
// computed by the database on each read instead of being stored.
func selectCategories() sq.SelectBuilder {
	return sq.Select(
		"c.id", "c.name", "c.type", "c.color", "c.created_at", "c.updated_at",
		"COALESCE(SUM(t.amount), 0) AS total_amount",
		"COUNT(t.id) AS transaction_count",
	).
		From("categories c").
		LeftJoin("transactions t ON t.category_id = c.id").
		GroupBy("c.id").
		PlaceholderFormat(sq.Dollar)
}

func (s *Store) ListCategories(ctx context.Context, filter category.ListFilter) ([]*category.Category, error) {
	builder := selectCategories().OrderBy("c.name ASC", "c.created_at ASC")

	if filter.Type != nil {
		builder = builder.Where("c.type = ?", *filter.Type)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	cats := []*category.Category{}

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cats = append(cats, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return cats, nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query, args, err := selectCategories().Where("c.id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building category query: %w", err)
	}

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (name, type, color, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Type, c.Color).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

// UpdateCategory saves the category and, when its type changed, moves the
// type of its transactions along with it in the same database transaction.
func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	categoryQuery := `
		UPDATE categories
		SET name = $1, type = $2, color = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err = dbTx.QueryRowContext(ctx, categoryQuery, c.Name, c.Type, c.Color, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		return fmt.Errorf("updating category: %w", err)
	}

	txQuery := `
		UPDATE transactions
		SET type = $1, updated_at = NOW()
		WHERE category_id = $2 AND type <> $1
	`
	if _, err := dbTx.ExecContext(ctx, txQuery, c.Type, c.ID); err != nil {
		return fmt.Errorf("syncing transaction types: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// DeleteCategory removes a category inside one database transaction. The
// category row is locked first so no transaction can be filed under it
// between the reference check and the delete.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID, cascade bool) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var locked uuid.UUID

	err = dbTx.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}

		return fmt.Errorf("locking category: %w", err)
	}

	if cascade {
		if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE category_id = $1`, id); err != nil {
			return fmt.Errorf("deleting category transactions: %w", err)
		}
	} else {
		var count int
		if err := dbTx.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = $1`, id).Scan(&count); err != nil {
			return fmt.Errorf("counting category transactions: %w", err)
		}

		if count > 0 {
			return fmt.Errorf("%w: %d transaction(s) reference it", category.ErrInUse, count)
		}
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
