package transport

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/service"
)

// listProducts supports ?category=, ?stock=low and ?stock=out filters.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []model.Product
		err      error
	)
	switch {
	case r.URL.Query().Get("category") != "":
		products, err = h.catalog.ProductsByCategory(r.URL.Query().Get("category"))
	case r.URL.Query().Get("stock") == "low":
		products, err = h.catalog.LowStockProducts()
	case r.URL.Query().Get("stock") == "out":
		products, err = h.catalog.OutOfStockProducts()
	default:
		products, err = h.catalog.Products()
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toProductResponses(products))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	// An omitted minStock is "unspecified" rather than zero; the catalog
	// substitutes its default for negative values.
	minStock := -1
	if req.MinStock != nil {
		minStock = *req.MinStock
	}

	product, err := h.catalog.AddProduct(req.Barcode, req.Name, req.Category, req.Supplier, req.Price, req.Stock, minStock)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	product, err := h.catalog.Product(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) productByBarcode(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.ProductByBarcode(mux.Vars(r)["code"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req updateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	patch := service.ProductPatch{
		Barcode:  req.Barcode,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Supplier: req.Supplier,
	}
	if err := h.catalog.UpdateProduct(id, patch); err != nil {
		h.respondError(w, err)
		return
	}

	product, err := h.catalog.Product(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) restockProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req restockRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.catalog.AdjustStock(id, req.Delta); err != nil {
		h.respondError(w, err)
		return
	}

	product, err := h.catalog.Product(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories()
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toCategoryResponses(categories))
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := h.catalog.AddCategory(req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, categoryResponse{ID: category.ID.String(), Name: category.Name})
}

func (h *Handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.catalog.RenameCategory(id, req.Name); err != nil {
		h.respondError(w, err)
		return
	}

	category, err := h.catalog.Category(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, categoryResponse{ID: category.ID.String(), Name: category.Name})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(id); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}
