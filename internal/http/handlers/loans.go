package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/loanbook-be/internal/auth"
	"github.com/hongminglow/loanbook-be/internal/config"
	"github.com/hongminglow/loanbook-be/internal/http/respond"
	"github.com/hongminglow/loanbook-be/internal/models"
	"github.com/hongminglow/loanbook-be/internal/models/dto"
	"github.com/hongminglow/loanbook-be/internal/storage"
)

// LoanHandler owns the loan CRUD endpoints. Listing is public; create,
// update, and delete require an authenticated session.
type LoanHandler struct {
	store storage.LoanStore
	guard *auth.SessionGuard
	cfg   *config.Config
}

// NewLoanHandler constructs the handler.
func NewLoanHandler(store storage.LoanStore, guard *auth.SessionGuard, cfg *config.Config) *LoanHandler {
	return &LoanHandler{store: store, guard: guard, cfg: cfg}
}

// Register attaches loan routes to the mux.
func (h *LoanHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /loans", h.handleList)
	mux.HandleFunc("POST /loans", h.handleCreate)
	mux.HandleFunc("PUT /loans/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /loans/{id}", h.handleDelete)
}

func (h *LoanHandler) handleList(w http.ResponseWriter, r *http.Request) {
	loans, err := h.store.ListLoans(r.Context())
	if err != nil {
		slog.Error("list loans failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list loans")
		return
	}
	respond.Data(w, http.StatusOK, models.NewLoanViews(loans))
}

func (h *LoanHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.guard.FromRequest(r); !ok {
		respond.Error(w, http.StatusForbidden, "Forbidden")
		return
	}
	var in dto.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if h.hasRejectedPayment(in.Paid) {
		respond.Error(w, http.StatusBadRequest, "payment amounts must not be negative")
		return
	}

	created, err := h.store.CreateLoan(r.Context(), in.Loan())
	if err != nil {
		slog.Error("create loan failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create loan")
		return
	}
	respond.Data(w, http.StatusCreated, models.NewLoanView(created))
}

func (h *LoanHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.guard.FromRequest(r); !ok {
		respond.Error(w, http.StatusForbidden, "Forbidden")
		return
	}
	id, err := models.ParseLoanID(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	var patch models.LoanPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if patch.Paid != nil && h.hasRejectedPayment(*patch.Paid) {
		respond.Error(w, http.StatusBadRequest, "payment amounts must not be negative")
		return
	}

	updated, err := h.store.UpdateLoan(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "Not found")
		default:
			slog.Error("update loan failed", "id", id.String(), "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to update loan")
		}
		return
	}
	respond.Data(w, http.StatusOK, models.NewLoanView(updated))
}

func (h *LoanHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.guard.FromRequest(r); !ok {
		respond.Error(w, http.StatusForbidden, "Forbidden")
		return
	}
	id, err := models.ParseLoanID(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid loan id")
		return
	}

	removed, err := h.store.DeleteLoan(r.Context(), id)
	if err != nil {
		slog.Error("delete loan failed", "id", id.String(), "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete loan")
		return
	}
	if !removed {
		respond.Error(w, http.StatusNotFound, "Not found")
		return
	}
	respond.Success(w, http.StatusOK)
}

func (h *LoanHandler) hasRejectedPayment(paid []models.Payment) bool {
	if !h.cfg.RejectNegativePayments {
		return false
	}
	for _, p := range paid {
		if p.Amount < 0 {
			return true
		}
	}
	return false
}
