package transport

import (
	"net/http"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
)

// listDebts supports ?status=active and ?status=paid.
func (h *Handler) listDebts(w http.ResponseWriter, r *http.Request) {
	var (
		debts []model.Debt
		err   error
	)
	switch r.URL.Query().Get("status") {
	case "active":
		debts, err = h.debts.ActiveDebts()
	case "paid":
		debts, err = h.debts.PaidDebts()
	default:
		debts, err = h.debts.Debts()
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toDebtResponses(debts))
}

func (h *Handler) createDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if !h.decode(w, r, &req) {
		return
	}

	debt, err := h.debts.RecordDebt(req.CustomerName, req.Amount, req.Description, req.DueDate)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toDebtResponse(debt))
}

func (h *Handler) payDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.debts.MarkPaid(id); err != nil {
		h.respondError(w, err)
		return
	}

	debt, err := h.debts.Debt(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toDebtResponse(debt))
}

func (h *Handler) deleteDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.debts.DeleteDebt(id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}
