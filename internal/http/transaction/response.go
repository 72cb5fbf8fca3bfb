package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/money"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type TransactionResponse struct {
	ID          uuid.UUID         `json:"id"`
	Type        category.Type     `json:"type"`
	CategoryID  uuid.UUID         `json:"categoryId"`
	Category    *categoryResponse `json:"category,omitempty"`
	Description string            `json:"description"`
	Amount      money.Amount      `json:"amount"`
	Date        time.Time         `json:"date"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type categoryResponse struct {
	ID    uuid.UUID     `json:"id"`
	Name  string        `json:"name"`
	Type  category.Type `json:"type"`
	Color string        `json:"color"`
}

func toResponse(tx *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		CategoryID:  tx.CategoryID,
		Description: tx.Description,
		Amount:      money.Amount(tx.Amount),
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}

	if tx.Category != nil {
		resp.Category = &categoryResponse{
			ID:    tx.Category.ID,
			Name:  tx.Category.Name,
			Type:  tx.Category.Type,
			Color: tx.Category.Color,
		}
	}

	return resp
}

// ToResponseList renders transactions for the JSON API.
func ToResponseList(txs []*transaction.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
