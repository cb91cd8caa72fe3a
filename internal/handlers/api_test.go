package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugana-shop/internal/cache"
	"bugana-shop/internal/cart"
	"bugana-shop/internal/catalog"
	"bugana-shop/internal/handlers"
	"bugana-shop/internal/localization"
	"bugana-shop/internal/models"
	"bugana-shop/internal/order"
	"bugana-shop/internal/review"
	"bugana-shop/internal/routes"
)

type fakeAI struct{ down bool }

func (f *fakeAI) Translate(_ context.Context, text, lang string) (string, error) {
	if f.down {
		return "", errors.New("unavailable")
	}
	return "[" + lang + "] " + text, nil
}

func (f *fakeAI) GenerateDescription(_ context.Context, name, category string) (string, error) {
	if f.down {
		return "", errors.New("unavailable")
	}
	return "A handcrafted " + name + " from the " + category + " collection.", nil
}

func (f *fakeAI) Chat(_ context.Context, _ string) (string, error) {
	if f.down {
		return "", errors.New("unavailable")
	}
	return "Kumusta! How can I help?", nil
}

type testApp struct {
	router  *gin.Engine
	catalog *catalog.Store
	cart    *cart.Manager
}

func newTestApp(t *testing.T, aiDown bool) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogStore := catalog.NewStore()
	cartManager := cart.NewManager()
	collaborator := &fakeAI{down: aiDown}

	router := gin.New()
	routes.RegisterRoutes(router, routes.Handlers{
		Catalog:         handlers.NewCatalogHandler(catalogStore, cache.New(time.Minute), nil),
		Cart:            handlers.NewCartHandler(cartManager, catalogStore),
		Order:           handlers.NewOrderHandler(order.NewLedger(), cartManager, nil),
		Review:          handlers.NewReviewHandler(review.NewStore(), nil),
		Recommendations: handlers.NewRecommendationHandler(catalogStore, cache.New(time.Minute)),
		Language:        handlers.NewLanguageHandler(localization.NewCache(catalogStore, collaborator)),
		AI:              handlers.NewAIHandler(collaborator, collaborator),
	})
	return &testApp{router: router, catalog: catalogStore, cart: cartManager}
}

func (a *testApp) do(method, path string, body interface{}, role models.Role) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(handlers.RoleHeader, string(role))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func seedProduct(a *testApp, name, category, price string, inStock bool) models.Product {
	return a.catalog.Add(models.Product{
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Category:     category,
		InStock:      inStock,
		Descriptions: map[string]string{models.LangEN: "a " + name},
	})
}

func TestCatalogMutation_IsSellerOnly(t *testing.T) {
	app := newTestApp(t, false)
	body := gin.H{"name": "Banig", "price": "1200", "category": "Home Goods", "description": "a woven mat"}

	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/v1/products", body, "").Code)
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/v1/products", body, models.RoleCustomer).Code)

	w := app.do(http.MethodPost, "/v1/products", body, models.RoleSeller)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.True(t, created.InStock, "in-stock defaults to true")
	assert.NotEmpty(t, created.Image, "image defaults to a placeholder")
	assert.Equal(t, "a woven mat", created.Descriptions[models.LangEN])
}

func TestUpdateProduct_UnknownIDIs404(t *testing.T) {
	app := newTestApp(t, false)
	body := gin.H{"name": "Ghost", "price": "10", "category": "Misc", "description": "boo"}

	w := app.do(http.MethodPut, "/v1/products/999", body, models.RoleSeller)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_IsIdempotent(t *testing.T) {
	app := newTestApp(t, false)
	seedProduct(app, "Ampaw", "Snacks", "75", true)

	// borrar dos veces el mismo id y un id inexistente: siempre OK
	assert.Equal(t, http.StatusOK, app.do(http.MethodDelete, "/v1/products/1", nil, models.RoleSeller).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodDelete, "/v1/products/1", nil, models.RoleSeller).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodDelete, "/v1/products/99", nil, models.RoleSeller).Code)

	w := app.do(http.MethodGet, "/v1/products/1", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartFlow_AddMergeAndTotals(t *testing.T) {
	app := newTestApp(t, false)
	p := seedProduct(app, "Abaca Tote", "Accessories", "850.50", true)

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/v1/cart/items", gin.H{"product_id": p.ID, "quantity": 2}, "").Code)
	w := app.do(http.MethodPost, "/v1/cart/items", gin.H{"product_id": p.ID, "quantity": 1}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.CartItem `json:"items"`
		Total decimal.Decimal   `json:"total"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 3, resp.Count)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("2551.50")), "got %s", resp.Total)
}

func TestCart_OutOfStockIsRejected(t *testing.T) {
	app := newTestApp(t, false)
	p := seedProduct(app, "Banig", "Home Goods", "1200", false)

	w := app.do(http.MethodPost, "/v1/cart/items", gin.H{"product_id": p.ID, "quantity": 1}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, app.cart.Len())
}

func TestCheckout_Flow(t *testing.T) {
	app := newTestApp(t, false)
	p := seedProduct(app, "Barong", "Apparel", "4500.00", true)

	shipping := gin.H{"name": "Juan dela Cruz", "address": "Kalibo, Aklan"}

	// checkout requiere rol de cliente
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, "/v1/orders", shipping, models.RoleSeller).Code)

	// carrito vacío: rechazado, no se crea orden
	w := app.do(http.MethodPost, "/v1/orders", shipping, models.RoleCustomer)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/v1/cart/items", gin.H{"product_id": p.ID, "quantity": 2}, "").Code)
	w = app.do(http.MethodPost, "/v1/orders", shipping, models.RoleCustomer)
	require.Equal(t, http.StatusCreated, w.Code)

	var o models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.True(t, o.Total.Equal(decimal.RequireFromString("9000.00")), "got %s", o.Total)
	assert.Equal(t, 0, app.cart.Len(), "cart clears after checkout")

	w = app.do(http.MethodGet, "/v1/orders/latest", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReviews_ValidationAndAggregate(t *testing.T) {
	app := newTestApp(t, false)
	seedProduct(app, "Banig", "Home Goods", "1200", true)

	// la escritura es solo para clientes
	body := gin.H{"rating": 5, "comment": "lovely", "author": "Maria"}
	path := "/v1/products/1/reviews"
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodPost, path, body, models.RoleSeller).Code)

	w := app.do(http.MethodPost, path, gin.H{"rating": 9, "comment": "x", "author": "Maria"}, models.RoleCustomer)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, rating := range []int{5, 5, 4} {
		w := app.do(http.MethodPost, path, gin.H{"rating": rating, "comment": "ok", "author": "Maria"}, models.RoleCustomer)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = app.do(http.MethodGet, "/v1/products/1/rating", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.RatingSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.67, summary.Average, 0.01)
	assert.InDelta(t, 66.7, summary.Distribution[5].Percentage, 0.1)
}

func TestRecommendations_Endpoint(t *testing.T) {
	app := newTestApp(t, false)
	a := seedProduct(app, "Mat A", "Home Goods", "100", true)
	seedProduct(app, "Mat B", "Home Goods", "105", true)
	seedProduct(app, "Chair", "Furniture", "500", true)

	w := app.do(http.MethodGet, "/v1/products/1/recommendations?limit=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recommendations []models.Product `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Recommendations)
	assert.Equal(t, "Mat B", resp.Recommendations[0].Name)
	for _, p := range resp.Recommendations {
		assert.NotEqual(t, a.ID, p.ID)
	}
}

func TestChat_FallsBackWhenCollaboratorIsDown(t *testing.T) {
	app := newTestApp(t, true)

	w := app.do(http.MethodPost, "/v1/chat", gin.H{"message": "kumusta"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "trouble")
}

func TestDescribe_FallsBackWhenCollaboratorIsDown(t *testing.T) {
	app := newTestApp(t, true)

	w := app.do(http.MethodPost, "/v1/ai/describe", gin.H{"name": "Banig", "category": "Home Goods"}, models.RoleSeller)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Description, "Banig")
}

func TestLanguageStatus(t *testing.T) {
	app := newTestApp(t, false)
	seedProduct(app, "Banig", "Home Goods", "1200", true)

	w := app.do(http.MethodGet, "/v1/language/en/status", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var status struct {
		Ready bool `json:"ready"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Ready, "base language is always ready")

	w = app.do(http.MethodGet, "/v1/language/tl/status", nil, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Ready)
}
