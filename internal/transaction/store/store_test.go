package store_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction/store"
)

var transactionColumns = []string{
	"id", "type", "category_id", "description", "amount", "date", "created_at", "updated_at",
	"name", "type", "color",
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

func TestStore_ListTransactions_Filters(t *testing.T) {
	s, mock := newStore(t)

	id, catID := uuid.New(), uuid.New()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM transactions t JOIN categories c ON c.id = t.category_id " +
			"WHERE t.type = $1 AND t.category_id = $2 AND t.date >= $3 AND t.date <= $4 " +
			"ORDER BY t.date DESC, t.created_at DESC",
	)).
		WithArgs("Expense", catID, start, end).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(id.String(), "Expense", catID.String(), "Market", int64(1250), start, now, now, "Groceries", "Expense", "#ff0000"))

	expense := category.TypeExpense
	got, err := s.ListTransactions(context.Background(), transaction.ListFilter{
		Type:       &expense,
		CategoryID: &catID,
		StartDate:  &start,
		EndDate:    &end,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, int64(1250), got[0].Amount)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, catID, got[0].Category.ID)
	assert.Equal(t, "Groceries", got[0].Category.Name)
	assert.Equal(t, category.TypeExpense, got[0].Category.Type)
}

func TestStore_ListTransactions_NoFilter(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions t JOIN categories c ON c.id = t.category_id ORDER BY")).
		WillReturnRows(sqlmock.NewRows(transactionColumns))

	got, err := s.ListTransactions(context.Background(), transaction.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_GetTransaction_NotFound(t *testing.T) {
	s, mock := newStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).WithArgs(id).WillReturnError(sql.ErrNoRows)

	_, err := s.GetTransaction(context.Background(), id)
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestStore_DeleteTransaction(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		s, mock := newStore(t)
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.DeleteTransaction(context.Background(), id))
	})

	t.Run("NotFound", func(t *testing.T) {
		s, mock := newStore(t)
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.DeleteTransaction(context.Background(), id), transaction.ErrNotFound)
	})
}

func TestStore_UpdateTransaction_NotFound(t *testing.T) {
	s, mock := newStore(t)

	tx := &transaction.Transaction{
		ID:          uuid.New(),
		Type:        category.TypeExpense,
		CategoryID:  uuid.New(),
		Description: "Market",
		Amount:      100,
		Date:        time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE transactions")).
		WithArgs("Expense", tx.CategoryID, "Market", int64(100), sqlmock.AnyArg(), tx.ID).
		WillReturnError(sql.ErrNoRows)

	assert.ErrorIs(t, s.UpdateTransaction(context.Background(), tx), transaction.ErrNotFound)
}

func TestStore_ImportCommitsAllRows(t *testing.T) {
	s, mock := newStore(t)

	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	catID := uuid.New()

	mock.ExpectBegin()

	for range 2 {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
			WithArgs("Expense", catID, sqlmock.AnyArg(), sqlmock.AnyArg(), date).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(uuid.NewString(), time.Now(), time.Now()))
	}

	mock.ExpectCommit()

	itx, err := s.BeginImport(context.Background())
	require.NoError(t, err)

	txs := []*transaction.Transaction{
		{Type: category.TypeExpense, CategoryID: catID, Description: "A", Amount: 100, Date: date},
		{Type: category.TypeExpense, CategoryID: catID, Description: "B", Amount: 200, Date: date},
	}

	require.NoError(t, itx.CreateTransactions(context.Background(), txs))
	require.NoError(t, itx.Commit())

	for _, tx := range txs {
		assert.NotEqual(t, uuid.Nil, tx.ID)
	}
}
