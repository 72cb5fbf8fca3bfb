package export_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

var (
	groceries = &category.Category{ID: uuid.New(), Name: "Groceries", Type: category.TypeExpense}
	salary    = &category.Category{ID: uuid.New(), Name: "Salary", Type: category.TypeIncome}
)

// newest first, as the store returns them
func sampleTxs() []*transaction.Transaction {
	return []*transaction.Transaction{
		{
			ID: uuid.New(), Type: category.TypeExpense, CategoryID: groceries.ID, Category: groceries,
			Description: "Market; fruit", Amount: 1250, Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), Type: category.TypeIncome, CategoryID: salary.ID, Category: salary,
			Description: "March", Amount: 250000, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newService(t *testing.T) (*export.Service, *transaction.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	cats := transaction.NewMockCategoryReader(ctrl)

	return export.NewService(transaction.NewService(repo, cats)), repo
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.Write(&buf, sampleTxs()))

	want := "Date;Type;Category;Description;Amount\n" +
		"2026-03-01;Income;Salary;March;2500.00\n" +
		"2026-03-02;Expense;Groceries;\"Market; fruit\";12.50\n"
	assert.Equal(t, want, buf.String())
}

func TestWrite_RoundTripsThroughImporter(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.Write(&buf, sampleTxs()))

	rows, err := importer.NewParser().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Salary", rows[0].CategoryName)
	assert.Equal(t, category.TypeIncome, rows[0].Type)
	assert.Equal(t, int64(250000), rows[0].Amount)
	assert.Equal(t, "Market; fruit", rows[1].Description)
	assert.Equal(t, int64(1250), rows[1].Amount)
	assert.True(t, rows[1].Date.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestService_Export(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *transaction.MockRepository)
		wantCount int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *transaction.MockRepository) {
				repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(sampleTxs(), nil)
			},
			wantCount: 2,
		},
		{
			name: "Empty",
			setupMock: func(repo *transaction.MockRepository) {
				repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{}, nil)
			},
			wantCount: 0,
		},
		{
			name: "ListError",
			setupMock: func(repo *transaction.MockRepository) {
				repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			var buf bytes.Buffer

			n, err := svc.Export(context.Background(), transaction.ListFilter{}, &buf)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, buf.Len())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, n)
			assert.Contains(t, buf.String(), "Date;Type;Category;Description;Amount\n")
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "transactions_20261019.csv", export.Filename(time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)))
}
