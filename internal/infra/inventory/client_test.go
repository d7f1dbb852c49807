package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domproduct "example.com/cart-sync/internal/domain/product"
)

func newTestServer(t *testing.T) (*httptest.Server, *map[string]int64) {
	t.Helper()
	stock := map[string]int64{"/stock/42": 5}

	mux := http.NewServeMux()
	mux.HandleFunc("/stock/42", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]int64{"id": 42, "amount": stock["/stock/42"]})
		case http.MethodPut:
			var body map[string]int64
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			stock["/stock/42"] = body["amount"]
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/products/42", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "title": "Sneaker", "price": 199.9, "image": "sneaker.jpg",
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &stock
}

func TestGetStock(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(srv.URL, time.Second)

	quote, err := c.GetStock(context.Background(), 42)

	require.NoError(t, err)
	require.Equal(t, int64(42), quote.ProductID)
	require.Equal(t, int64(5), quote.Amount)
}

func TestSetStock(t *testing.T) {
	srv, stock := newTestServer(t)
	c := NewClient(srv.URL, time.Second)

	err := c.SetStock(context.Background(), 42, 3)

	require.NoError(t, err)
	require.Equal(t, int64(3), (*stock)["/stock/42"])
}

func TestGetProduct(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(srv.URL, time.Second)

	p, err := c.GetProduct(context.Background(), 42)

	require.NoError(t, err)
	require.Equal(t, int64(42), p.ID)
	require.Equal(t, "Sneaker", p.Title)
	require.Equal(t, 199.9, p.Price)
}

func TestGetStock_NotFoundStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	c := NewClient(srv.URL, time.Second)

	_, err := c.GetStock(context.Background(), 99)

	require.ErrorIs(t, err, domproduct.ErrRemoteCall)
}

func TestGetStock_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, time.Second)

	_, err := c.GetStock(context.Background(), 42)

	require.ErrorIs(t, err, domproduct.ErrRemoteCall)
}

func TestGetStock_ServerDown(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Close()
	c := NewClient(srv.URL, time.Second)

	_, err := c.GetStock(context.Background(), 42)

	require.ErrorIs(t, err, domproduct.ErrRemoteCall)
}

func TestSetStock_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, time.Second)

	err := c.SetStock(context.Background(), 42, 3)

	require.ErrorIs(t, err, domproduct.ErrRemoteCall)
}
