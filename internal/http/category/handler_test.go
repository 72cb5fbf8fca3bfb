package category_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	httpcategory "github.com/MrJamesThe3rd/pocketbook/internal/http/category"
)

func newServer(t *testing.T) (http.Handler, *category.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)

	r := chi.NewRouter()
	r.Route("/api/categories", httpcategory.NewHandler(category.NewService(repo)).Routes)

	return r, repo
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_List(t *testing.T) {
	h, repo := newServer(t)

	id := uuid.MustParse("2f1e8a52-6d0a-4c55-9b57-1b0f3c7f8e11")
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	repo.EXPECT().ListCategories(gomock.Any(), category.ListFilter{}).Return([]*category.Category{
		{
			ID: id, Name: "Groceries", Type: category.TypeExpense, Color: "#ff0000",
			CreatedAt: created, UpdatedAt: created,
			TotalAmount: 12550, TransactionCount: 3,
		},
	}, nil)

	rec := do(h, http.MethodGet, "/api/categories", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"id": "2f1e8a52-6d0a-4c55-9b57-1b0f3c7f8e11",
		"name": "Groceries",
		"type": "Expense",
		"color": "#ff0000",
		"totalAmount": 125.50,
		"transactionCount": 3,
		"createdAt": "2024-01-02T03:04:05Z",
		"updatedAt": "2024-01-02T03:04:05Z"
	}]`, rec.Body.String())
}

func TestHandler_List_Empty(t *testing.T) {
	h, repo := newServer(t)

	repo.EXPECT().ListCategories(gomock.Any(), gomock.Any()).Return([]*category.Category{}, nil)

	rec := do(h, http.MethodGet, "/api/categories", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_List_TypeFilter(t *testing.T) {
	h, repo := newServer(t)

	income := category.TypeIncome
	repo.EXPECT().ListCategories(gomock.Any(), category.ListFilter{Type: &income}).Return([]*category.Category{}, nil)

	rec := do(h, http.MethodGet, "/api/categories?type=income", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/categories?type=Savings", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_List_DatabaseError(t *testing.T) {
	h, repo := newServer(t)

	repo.EXPECT().ListCategories(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	rec := do(h, http.MethodGet, "/api/categories", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch categories"}`, rec.Body.String())
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(repo *category.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"name":"Salary","type":"Income","color":"#00ff00"}`,
			setupMock: func(repo *category.MockRepository) {
				repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						c.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MalformedJSON",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid request body"}`,
		},
		{
			name:       "MissingName",
			body:       `{"name":"  ","type":"Income","color":"#00ff00"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid category: name is required"}`,
		},
		{
			name:       "InvalidType",
			body:       `{"name":"Salary","type":"Savings","color":"#00ff00"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "DatabaseError",
			body: `{"name":"Salary","type":"Income","color":"#00ff00"}`,
			setupMock: func(repo *category.MockRepository) {
				repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to create category"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newServer(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			rec := do(h, http.MethodPost, "/api/categories", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestHandler_Create_ReturnsZeroTotal(t *testing.T) {
	h, repo := newServer(t)

	repo.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)

	rec := do(h, http.MethodPost, "/api/categories", `{"name":"Rent","type":"Expense","color":"#123456"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalAmount":0.00`)
	assert.Contains(t, rec.Body.String(), `"transactionCount":0`)
}

func TestHandler_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		h, repo := newServer(t)
		id := uuid.New()

		repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{
			ID: id, Name: "Rent", Type: category.TypeExpense, Color: "#123456",
			TotalAmount: 80000, TransactionCount: 1,
		}, nil)

		rec := do(h, http.MethodGet, "/api/categories/"+id.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"totalAmount":800.00`)
		assert.Contains(t, rec.Body.String(), `"transactionCount":1`)
	})

	t.Run("NotFound", func(t *testing.T) {
		h, repo := newServer(t)
		id := uuid.New()

		repo.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)

		rec := do(h, http.MethodGet, "/api/categories/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Category not found"}`, rec.Body.String())
	})

	t.Run("MalformedID", func(t *testing.T) {
		h, _ := newServer(t)

		rec := do(h, http.MethodGet, "/api/categories/not-a-uuid", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	t.Run("PartialMerge", func(t *testing.T) {
		h, repo := newServer(t)
		id := uuid.New()

		repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{
			ID: id, Name: "Rent", Type: category.TypeExpense, Color: "#123456",
		}, nil)
		repo.EXPECT().UpdateCategory(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *category.Category) error {
				assert.Equal(t, "Housing", c.Name)
				assert.Equal(t, "#123456", c.Color)
				return nil
			})

		rec := do(h, http.MethodPut, "/api/categories/"+id.String(), `{"name":"Housing"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Housing"`)
	})

	t.Run("InvalidColor", func(t *testing.T) {
		h, repo := newServer(t)
		id := uuid.New()

		repo.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{
			ID: id, Name: "Rent", Type: category.TypeExpense, Color: "#123456",
		}, nil)

		rec := do(h, http.MethodPut, "/api/categories/"+id.String(), `{"color":"red"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		h, repo := newServer(t)
		id := uuid.New()

		repo.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)

		rec := do(h, http.MethodPut, "/api/categories/"+id.String(), `{"name":"Housing"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	type testCase struct {
		name       string
		query      string
		wantRepo   bool
		cascade    bool
		repoErr    error
		wantStatus int
	}

	tests := []testCase{
		{name: "Plain", wantRepo: true, wantStatus: http.StatusNoContent},
		{name: "Cascade", query: "?cascade=true", wantRepo: true, cascade: true, wantStatus: http.StatusNoContent},
		{name: "CascadeFalse", query: "?cascade=false", wantRepo: true, wantStatus: http.StatusNoContent},
		{name: "InUse", wantRepo: true, repoErr: category.ErrInUse, wantStatus: http.StatusConflict},
		{name: "NotFound", wantRepo: true, repoErr: category.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "DatabaseError", wantRepo: true, repoErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
		{name: "BadCascadeValue", query: "?cascade=maybe", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo := newServer(t)
			id := uuid.New()

			if tt.wantRepo {
				repo.EXPECT().DeleteCategory(gomock.Any(), id, tt.cascade).Return(tt.repoErr)
			}

			rec := do(h, http.MethodDelete, "/api/categories/"+id.String()+tt.query, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
