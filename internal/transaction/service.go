package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

// CategoryReader resolves the category a transaction is filed under.
type CategoryReader interface {
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
	List(ctx context.Context, filter category.ListFilter) ([]*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryReader
}

func NewService(repo Repository, categories CategoryReader) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateParams struct {
	Type        category.Type // Optional; defaults to the category's type
	CategoryID  uuid.UUID
	Description string
	Amount      int64
	Date        time.Time
}

// UpdateParams carries the fields to change; nil fields are left untouched.
type UpdateParams struct {
	Type        *category.Type
	CategoryID  *uuid.UUID
	Description *string
	Amount      *int64
	Date        *time.Time
}

type ListFilter struct {
	Type       *category.Type
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		Type:        params.Type,
		CategoryID:  params.CategoryID,
		Description: strings.TrimSpace(params.Description),
		Amount:      params.Amount,
		Date:        params.Date,
	}

	if err := s.prepare(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Update merges the provided fields into the stored transaction. Moving a
// transaction to a category of the other type without naming a type moves the
// type along with it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CategoryID != nil && *params.CategoryID != tx.CategoryID {
		tx.CategoryID = *params.CategoryID
		if params.Type == nil {
			tx.Type = ""
		}
	}

	if params.Type != nil {
		tx.Type = *params.Type
	}

	if params.Description != nil {
		tx.Description = strings.TrimSpace(*params.Description)
	}

	if params.Amount != nil {
		tx.Amount = *params.Amount
	}

	if params.Date != nil {
		tx.Date = *params.Date
	}

	if err := s.prepare(ctx, tx); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// prepare validates tx and reconciles its type with its category.
func (s *Service) prepare(ctx context.Context, tx *Transaction) error {
	if err := validate(tx); err != nil {
		return err
	}

	c, err := s.categories.Get(ctx, tx.CategoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownCategory, tx.CategoryID)
		}

		return fmt.Errorf("loading category: %w", err)
	}

	return reconcileType(tx, c)
}

func validate(tx *Transaction) error {
	if tx.CategoryID == uuid.Nil {
		return fmt.Errorf("%w: categoryId is required", ErrInvalid)
	}

	if tx.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalid)
	}

	if tx.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalid)
	}

	if tx.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}

	if tx.Type != "" && !tx.Type.Valid() {
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalid, category.TypeIncome, category.TypeExpense)
	}

	return nil
}

func reconcileType(tx *Transaction, c *category.Category) error {
	if tx.Type == "" {
		tx.Type = c.Type
	}

	if tx.Type != c.Type {
		return fmt.Errorf("%w: %s transaction in %s category %q", ErrTypeMismatch, tx.Type, c.Type, c.Name)
	}

	tx.Category = c

	return nil
}
