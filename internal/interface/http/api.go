package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	domcart "example.com/cart-sync/internal/domain/cart"
	domproduct "example.com/cart-sync/internal/domain/product"
	cartuc "example.com/cart-sync/internal/usecase/cart"
)

type API struct {
	cartStore *cartuc.Store
	validator *validator.Validate
}

func NewAPI(cartStore *cartuc.Store) *API {
	return &API{
		cartStore: cartStore,
		validator: validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cart", a.handleGetCart)
		r.Post("/cart/items", a.handleAddCartItem)
		r.Put("/cart/items/{id}", a.handleUpdateCartItem)
		r.Delete("/cart/items/{id}", a.handleRemoveCartItem)
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapCart(items []domcart.LineItem) map[string]any {
	mapped := make([]map[string]any, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, map[string]any{
			"product_id": item.ProductID,
			"amount":     item.Amount,
			"title":      item.Title,
			"price":      item.Price,
			"image":      item.Image,
		})
	}
	return map[string]any{"items": mapped}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcart.ErrOutOfStock),
		errors.Is(err, domcart.ErrInvalidAmount):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domcart.ErrProductNotFound),
		errors.Is(err, domproduct.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domproduct.ErrRemoteCall):
		respondError(w, http.StatusBadGateway, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
