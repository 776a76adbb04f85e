package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pocketbook/internal/api"
	"pocketbook/internal/http/middleware"
	"pocketbook/internal/http/respond"
	"pocketbook/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	filter := transaction.ListFilter{UserID: userID}

	q := r.URL.Query()

	if s := q.Get("page"); s != "" {
		filter.Page, _ = strconv.Atoi(s)
	}

	if s := q.Get("limit"); s != "" {
		filter.Limit, _ = strconv.Atoi(s)
	}

	// categoryId is tri-state: absent means all, "none" means uncategorized,
	// anything else must be a category id.
	switch s := q.Get("categoryId"); s {
	case "":
	case "none":
		filter.Category.Uncategorized = true
	default:
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid category filter")
			return
		}

		filter.Category.One = &id
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]api.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toAPI(tx))
	}

	respond.Data(w, http.StatusOK, api.TransactionsPayload{Transactions: out})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req api.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        transaction.Type(req.Type),
		CategoryID:  req.CategoryID.ID,
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrInvalid) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		respond.Error(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	respond.Data(w, http.StatusCreated, api.TransactionPayload{Transaction: toAPI(tx)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	tx, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Transaction not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	respond.Data(w, http.StatusOK, api.TransactionPayload{Transaction: toAPI(tx)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	var req api.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := transaction.Patch{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category: transaction.CategoryPatch{
			Present: req.CategoryID.Present,
			ID:      req.CategoryID.ID,
		},
	}

	if req.Type != nil {
		t := transaction.Type(*req.Type)
		patch.Type = &t
	}

	tx, err := h.svc.Update(r.Context(), userID, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Transaction not found")
		case errors.Is(err, transaction.ErrInvalid):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}

		return
	}

	respond.Data(w, http.StatusOK, api.TransactionPayload{Transaction: toAPI(tx)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "Transaction not found")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	// Delete success still carries the envelope, with an empty data object.
	respond.Data(w, http.StatusOK, struct{}{})
}

func toAPI(tx *transaction.Transaction) api.Transaction {
	out := api.Transaction{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        api.TransactionType(tx.Type),
		CategoryID:  tx.CategoryID,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}

	if tx.Category != nil {
		out.Category = &api.Category{
			ID:        tx.Category.ID,
			Name:      tx.Category.Name,
			CreatedAt: tx.Category.CreatedAt,
		}
	}

	return out
}
