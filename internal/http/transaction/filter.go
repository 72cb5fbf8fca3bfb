package transaction

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// ParseListFilter reads type, categoryId, startDate and endDate from a query
// string. A date-only endDate covers that whole day.
func ParseListFilter(q url.Values) (transaction.ListFilter, error) {
	var filter transaction.ListFilter

	if s := q.Get("type"); s != "" {
		t, ok := category.ParseType(s)
		if !ok {
			return filter, errors.New("type must be Income or Expense")
		}

		filter.Type = new(t)
	}

	if s := q.Get("categoryId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, errors.New("categoryId must be a valid id")
		}

		filter.CategoryID = new(id)
	}

	if s := q.Get("startDate"); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return filter, errors.New("startDate must be YYYY-MM-DD or RFC 3339")
		}

		filter.StartDate = new(t)
	}

	if s := q.Get("endDate"); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return filter, errors.New("endDate must be YYYY-MM-DD or RFC 3339")
		}

		if len(s) == len(time.DateOnly) {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}

		filter.EndDate = new(t)
	}

	return filter, nil
}
