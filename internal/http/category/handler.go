package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pocketbook/internal/api"
	"pocketbook/internal/category"
	"pocketbook/internal/http/middleware"
	"pocketbook/internal/http/respond"
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
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	filter := category.ListFilter{UserID: userID}

	if s := r.URL.Query().Get("page"); s != "" {
		filter.Page, _ = strconv.Atoi(s)
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		filter.Limit, _ = strconv.Atoi(s)
	}

	cats, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]api.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, toAPI(c))
	}

	respond.Data(w, http.StatusOK, api.CategoriesPayload{Categories: out})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req api.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.svc.Create(r.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, category.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Error(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	respond.Data(w, http.StatusCreated, api.CategoryPayload{Category: toAPI(c)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Category not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	// Delete success still carries the envelope, with an empty data object.
	respond.Data(w, http.StatusOK, struct{}{})
}

func toAPI(c *category.Category) api.Category {
	return api.Category{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}
