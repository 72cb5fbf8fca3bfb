package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	ListCategories(ctx context.Context, filter ListFilter) ([]*Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID, cascade bool) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every category annotated with the sum and count of its transactions.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Category, error) {
	return s.repo.ListCategories(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := params.Validate(); err != nil {
		return nil, err
	}

	c := &Category{
		Name:  params.Name,
		Type:  params.Type,
		Color: params.Color,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Update merges the provided fields into the stored category and saves it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = strings.TrimSpace(*params.Name)
	}

	if params.Type != nil {
		c.Type = *params.Type
	}

	if params.Color != nil {
		c.Color = *params.Color
	}

	if err := (CreateParams{Name: c.Name, Type: c.Type, Color: c.Color}).Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("saving category: %w", err)
	}

	return c, nil
}

// Delete removes the category. With cascade set, its transactions are removed
// first; without it, a category that still has transactions yields ErrInUse.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, cascade bool) error {
	return s.repo.DeleteCategory(ctx, id, cascade)
}
