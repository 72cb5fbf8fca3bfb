package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocketbook/internal/category"
	"github.com/MrJamesThe3rd/pocketbook/internal/http/respond"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := category.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		t, ok := category.ParseType(s)
		if !ok {
			respond.Error(w, http.StatusBadRequest, "type must be Income or Expense")
			return
		}

		filter.Type = new(t)
	}

	cats, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Internal(w, r, "Failed to fetch categories", err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(cats))
}

type createCategoryRequest struct {
	Name  string        `json:"name"`
	Type  category.Type `json:"type"`
	Color string        `json:"color"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
	})
	if err != nil {
		if errors.Is(err, category.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Internal(w, r, "Failed to create category", err)

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Category not found")
			return
		}

		respond.Internal(w, r, "Failed to fetch category", err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateCategoryRequest struct {
	Name  *string        `json:"name,omitempty"`
	Type  *category.Type `json:"type,omitempty"`
	Color *string        `json:"color,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.Update(r.Context(), id, category.UpdateParams{
		Name:  req.Name,
		Type:  req.Type,
		Color: req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, category.ErrInvalid):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			respond.Internal(w, r, "Failed to update category", err)
		}

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	cascade := false

	if s := r.URL.Query().Get("cascade"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "cascade must be true or false")
			return
		}

		cascade = v
	}

	if err := h.svc.Delete(r.Context(), id, cascade); err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, category.ErrInUse):
			respond.Error(w, http.StatusConflict, "Category has transactions; delete with cascade=true to remove them")
		default:
			respond.Internal(w, r, "Failed to delete category", err)
		}

		return
	}

	respond.NoContent(w)
}

// parseID treats a malformed id as a missing category.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Category not found")
		return uuid.Nil, false
	}

	return id, true
}
