package transaction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/respond"
	"github.com/MrJamesThe3rd/pocketbook/internal/money"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Type        category.Type `json:"type"`
	CategoryID  uuid.UUID     `json:"categoryId"`
	Description string        `json:"description"`
	Amount      money.Amount  `json:"amount"`
	Date        Date          `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      req.Amount.Cents(),
		Date:        req.Date.Time(),
	})
	if err != nil {
		if isClientError(err) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Internal(w, r, "Failed to create transaction", err)

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseListFilter(r.URL.Query())
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Internal(w, r, "Failed to fetch transactions", err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Transaction not found")
			return
		}

		respond.Internal(w, r, "Failed to fetch transaction", err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	Type        *category.Type `json:"type,omitempty"`
	CategoryID  *uuid.UUID     `json:"categoryId,omitempty"`
	Description *string        `json:"description,omitempty"`
	Amount      *money.Amount  `json:"amount,omitempty"`
	Date        *Date          `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	params := transaction.UpdateParams{
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	}

	if req.Amount != nil {
		params.Amount = new(req.Amount.Cents())
	}

	if req.Date != nil {
		params.Date = new(req.Date.Time())
	}

	tx, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Transaction not found")
		case isClientError(err):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			respond.Internal(w, r, "Failed to update transaction", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Transaction not found")
			return
		}

		respond.Internal(w, r, "Failed to delete transaction", err)

		return
	}

	respond.NoContent(w)
}

func isClientError(err error) bool {
	return errors.Is(err, transaction.ErrInvalid) ||
		errors.Is(err, transaction.ErrTypeMismatch) ||
		errors.Is(err, transaction.ErrUnknownCategory)
}

// parseID treats a malformed id as a missing transaction.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Transaction not found")
		return uuid.Nil, false
	}

	return id, true
}
