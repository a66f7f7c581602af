package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type cartResponse struct {
	Cart cart.Cart `json:"cart"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cart.Cart {
	t.Helper()
	var out cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode cart response: %v body=%s", err, rec.Body.String())
	}
	return out.Cart
}

func doCart(t *testing.T, router http.Handler, method, path, body, session string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(cartSessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if session == "" {
		session = rec.Header().Get(cartSessionHeader)
	}
	return rec, session
}

func cartTestRouter(t *testing.T) (http.Handler, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps := testDeps()
	deps.CatalogSvc = &stubCatalogSvc{products: map[string]*domain.Product{
		"p1": {ID: "p1", Name: "Hoodie", PriceCents: 2000},
		"p2": {ID: "p2", Name: "Cap", PriceCents: 1500},
	}}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router, deps.Carts
}

func TestCartFlowOverHTTP(t *testing.T) {
	router, _ := cartTestRouter(t)

	// First add mints a session.
	rec, sid := doCart(t, router, http.MethodPost, "/cart/items", `{"productId":"p1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if sid == "" {
		t.Fatal("expected session id on first contact")
	}

	rec, _ = doCart(t, router, http.MethodPost, "/cart/items", `{"productId":"p1"}`, sid)
	got := decodeCart(t, rec)
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("expected merged line qty 2, got %+v", got.Items)
	}

	rec, _ = doCart(t, router, http.MethodPost, "/cart/items", `{"productId":"p2"}`, sid)
	got = decodeCart(t, rec)
	if got.TotalQuantity != 3 || got.TotalCents != 5500 {
		t.Fatalf("expected qty=3 cents=5500, got %+v", got)
	}

	rec, _ = doCart(t, router, http.MethodPost, "/cart/items/p1/decrease", "", sid)
	got = decodeCart(t, rec)
	if got.TotalQuantity != 2 || got.TotalCents != 3500 {
		t.Fatalf("expected qty=2 cents=3500 after decrease, got %+v", got)
	}

	rec, _ = doCart(t, router, http.MethodDelete, "/cart/items/p2", "", sid)
	got = decodeCart(t, rec)
	if len(got.Items) != 1 || got.TotalCents != 2000 {
		t.Fatalf("expected only p1 left, got %+v", got)
	}

	rec, _ = doCart(t, router, http.MethodDelete, "/cart", "", sid)
	got = decodeCart(t, rec)
	if !got.Empty() {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	router, _ := cartTestRouter(t)

	rec, _ := doCart(t, router, http.MethodPost, "/cart/items", `{"productId":"ghost"}`, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRemoveMissingLineIs404(t *testing.T) {
	router, _ := cartTestRouter(t)

	rec, sid := doCart(t, router, http.MethodPost, "/cart/items", `{"productId":"p1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("setup add failed: %d", rec.Code)
	}
	rec, _ = doCart(t, router, http.MethodDelete, "/cart/items/missing", "", sid)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartSessionsDoNotLeak(t *testing.T) {
	router, _ := cartTestRouter(t)

	_, sidA := doCart(t, router, http.MethodPost, "/cart/items", `{"productId":"p1"}`, "")
	rec, _ := doCart(t, router, http.MethodGet, "/cart", "", "other-session")
	got := decodeCart(t, rec)
	if !got.Empty() {
		t.Fatalf("foreign session sees items: %+v", got)
	}

	rec, _ = doCart(t, router, http.MethodGet, "/cart", "", sidA)
	if decodeCart(t, rec).TotalQuantity != 1 {
		t.Fatal("own session lost its cart")
	}
}

func TestCartSnapshotPriceComesFromCatalog(t *testing.T) {
	router, _ := cartTestRouter(t)

	// Client cannot set its own price; body price fields are ignored.
	body := fmt.Sprintf(`{"productId":"p1","unitPriceCents":%d}`, 1)
	rec, _ := doCart(t, router, http.MethodPost, "/cart/items", body, "")
	got := decodeCart(t, rec)
	if got.Items[0].UnitPriceCents != 2000 {
		t.Fatalf("expected catalog price 2000, got %d", got.Items[0].UnitPriceCents)
	}
}
