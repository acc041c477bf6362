// Package transport exposes the shop services over a JSON HTTP API.
package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/service"
)

type Handler struct {
	catalog service.CatalogService
	debts   service.DebtService
	sales   service.SalesService
	auth    service.AuthService
	log     *logrus.Logger
}

func NewHandler(catalog service.CatalogService, debts service.DebtService, sales service.SalesService, auth service.AuthService, log *logrus.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		debts:   debts,
		sales:   sales,
		auth:    auth,
		log:     log,
	}
}

// Router builds the API routes under /api/v1.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	api.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products", h.createProduct).Methods(http.MethodPost)
	api.HandleFunc("/products/barcode/{code}", h.productByBarcode).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", h.updateProduct).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", h.deleteProduct).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}/restock", h.restockProduct).Methods(http.MethodPost)

	api.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", h.createCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{id}", h.renameCategory).Methods(http.MethodPut)
	api.HandleFunc("/categories/{id}", h.deleteCategory).Methods(http.MethodDelete)

	api.HandleFunc("/debts", h.listDebts).Methods(http.MethodGet)
	api.HandleFunc("/debts", h.createDebt).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id}/pay", h.payDebt).Methods(http.MethodPost)
	api.HandleFunc("/debts/{id}", h.deleteDebt).Methods(http.MethodDelete)

	api.HandleFunc("/sales", h.listSales).Methods(http.MethodGet)
	api.HandleFunc("/sales", h.checkout).Methods(http.MethodPost)
	api.HandleFunc("/sales/{id}", h.getSale).Methods(http.MethodGet)
	api.HandleFunc("/sales/{id}/cancel", h.cancelSale).Methods(http.MethodPost)
	api.HandleFunc("/refunds", h.listRefunds).Methods(http.MethodGet)

	api.HandleFunc("/dashboard", h.dashboard).Methods(http.MethodGet)

	return r
}

func (h *Handler) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request handled")
	})
}

func (h *Handler) respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.WithError(err).Error("encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
		h.respond(w, status, errorResponse{Error: "internal error"})
		return
	}
	h.respond(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyBarcode),
		errors.Is(err, service.ErrEmptyProductName),
		errors.Is(err, service.ErrEmptyCategoryName),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidStock),
		errors.Is(err, service.ErrInvalidStockQuantity),
		errors.Is(err, service.ErrEmptyUsername),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, model.ErrEmptyCart),
		errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrEmptyCustomer),
		errors.Is(err, model.ErrInvalidDebtValue):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrCategoryNotFound),
		errors.Is(err, model.ErrDebtNotFound),
		errors.Is(err, model.ErrSaleNotFound),
		errors.Is(err, model.ErrRefundNotFound),
		errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrBarcodeTaken),
		errors.Is(err, model.ErrCategoryTaken),
		errors.Is(err, model.ErrUsernameTaken),
		errors.Is(err, model.ErrSaleAlreadyCancelled):
		return http.StatusConflict
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrInsufficientCash):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var errInvalidID = errors.New("invalid id")

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: errInvalidID.Error()})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
