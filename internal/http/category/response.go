package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/money"
)

type categoryResponse struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Type             category.Type `json:"type"`
	Color            string        `json:"color"`
	TotalAmount      money.Amount  `json:"totalAmount"`
	TransactionCount int           `json:"transactionCount"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:               c.ID,
		Name:             c.Name,
		Type:             c.Type,
		Color:            c.Color,
		TotalAmount:      money.Amount(c.TotalAmount),
		TransactionCount: c.TransactionCount,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func toResponseList(cats []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = toResponse(c)
	}

	return resp
}
