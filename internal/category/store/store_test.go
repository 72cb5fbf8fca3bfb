package store_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/category/store"
)

var categoryColumns = []string{
	"id", "name", "type", "color", "created_at", "updated_at", "total_amount", "transaction_count",
}

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return store.New(db), mock
}

func TestStore_ListCategories(t *testing.T) {
	s, mock := newStore(t)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	food, salary := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM categories c LEFT JOIN transactions t ON t.category_id = c.id GROUP BY c.id ORDER BY c.name ASC",
	)).WillReturnRows(sqlmock.NewRows(categoryColumns).
		AddRow(food.String(), "Food", "Expense", "#ff0000", now, now, int64(4250), 3).
		AddRow(salary.String(), "Salary", "Income", "#00ff00", now, now, int64(0), 0))

	got, err := s.ListCategories(context.Background(), category.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, food, got[0].ID)
	assert.Equal(t, category.TypeExpense, got[0].Type)
	assert.Equal(t, int64(4250), got[0].TotalAmount)
	assert.Equal(t, 3, got[0].TransactionCount)

	assert.Equal(t, category.TypeIncome, got[1].Type)
	assert.Zero(t, got[1].TotalAmount)
}

func TestStore_ListCategories_TypeFilter(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.type = $1 GROUP BY c.id")).
		WithArgs("Income").
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	income := category.TypeIncome
	got, err := s.ListCategories(context.Background(), category.ListFilter{Type: &income})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestStore_GetCategory_NotFound(t *testing.T) {
	s, mock := newStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetCategory(context.Background(), id)
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestStore_CreateCategory(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO categories (name, type, color, created_at, updated_at)")).
		WithArgs("Groceries", "Expense", "#ff0000").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))

	c := &category.Category{Name: "Groceries", Type: category.TypeExpense, Color: "#ff0000"}
	require.NoError(t, s.CreateCategory(context.Background(), c))
	assert.Equal(t, id, c.ID)
}

func TestStore_UpdateCategory_SyncsTransactionTypes(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE categories")).
		WithArgs("Bonus", "Income", "#0f0", id).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions")).
		WithArgs("Income", id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	c := &category.Category{ID: id, Name: "Bonus", Type: category.TypeIncome, Color: "#0f0"}
	assert.NoError(t, s.UpdateCategory(context.Background(), c))
}

func TestStore_DeleteCategory(t *testing.T) {
	lockQuery := regexp.QuoteMeta("SELECT id FROM categories WHERE id = $1 FOR UPDATE")
	countQuery := regexp.QuoteMeta("SELECT COUNT(*) FROM transactions WHERE category_id = $1")
	deleteTxs := regexp.QuoteMeta("DELETE FROM transactions WHERE category_id = $1")
	deleteCategory := regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")

	tests := []struct {
		name    string
		cascade bool
		setup   func(mock sqlmock.Sqlmock, id uuid.UUID)
		wantErr error
	}{
		{
			name:    "Cascade",
			cascade: true,
			setup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
				mock.ExpectExec(deleteTxs).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 4))
				mock.ExpectExec(deleteCategory).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "WithoutReferences",
			setup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
				mock.ExpectQuery(countQuery).WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectExec(deleteCategory).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "InUse",
			setup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
				mock.ExpectQuery(countQuery).WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectRollback()
			},
			wantErr: category.ErrInUse,
		},
		{
			name:    "NotFound",
			cascade: true,
			setup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(id).WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: category.ErrNotFound,
		},
		{
			name:    "DatabaseError",
			cascade: true,
			setup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(id).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))
				mock.ExpectExec(deleteTxs).WithArgs(id).WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			id := uuid.New()
			tt.setup(mock, id)

			err := s.DeleteCategory(context.Background(), id, tt.cascade)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			if errors.Is(tt.wantErr, category.ErrInUse) || errors.Is(tt.wantErr, category.ErrNotFound) {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.Contains(t, err.Error(), tt.wantErr.Error())
		})
	}
}
