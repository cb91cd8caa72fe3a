package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"bugana-shop/internal/cache"
	"bugana-shop/internal/catalog"
	"bugana-shop/internal/models"
	"bugana-shop/internal/repository"
)

type CatalogHandler struct {
	catalog   *catalog.Store
	cache     *cache.Cache
	snapshots *repository.SnapshotStore // opcional, nil sin persistencia
}

func NewCatalogHandler(store *catalog.Store, c *cache.Cache, snapshots *repository.SnapshotStore) *CatalogHandler {
	return &CatalogHandler{catalog: store, cache: c, snapshots: snapshots}
}

type productRequest struct {
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Image       string          `json:"image"`
	Category    string          `json:"category" binding:"required"`
	InStock     *bool           `json:"in_stock"`
	Description string          `json:"description" binding:"required"`
}

func (r productRequest) toProduct() models.Product {
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return models.Product{
		Name:     r.Name,
		Price:    r.Price,
		Image:    r.Image,
		Category: r.Category,
		InStock:  inStock,
		Descriptions: map[string]string{
			models.LangEN: r.Description,
		},
	}
}

// POST /v1/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "price must not be negative"})
		return
	}

	created := h.catalog.Add(req.toProduct())
	h.persistProduct(created)
	h.cache.DeleteByPrefix("products:")
	h.cache.DeleteByPrefix("recs:")

	c.JSON(http.StatusCreated, created)
}

// GET /v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")
	cacheKey := "products:list:cat:" + category

	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products := h.catalog.List()
	if category != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	response := gin.H{
		"products": products,
		"total":    len(products),
	}
	h.cache.Set(cacheKey, response)
	c.JSON(http.StatusOK, response)
}

// GET /v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	product, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// PUT /v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "price must not be negative"})
		return
	}

	updated := req.toProduct()
	updated.ID = id
	// se preservan las traducciones ya cacheadas del producto
	if current, ok := h.catalog.Get(id); ok {
		for lang, text := range current.Descriptions {
			if lang != models.LangEN {
				updated.Descriptions[lang] = text
			}
		}
	}
	if updated.Image == "" {
		updated.Image = models.PlaceholderImage(updated.Name)
	}

	if err := h.catalog.Update(updated); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}
	h.persistProduct(updated)
	h.cache.DeleteByPrefix("products:")
	h.cache.DeleteByPrefix("recs:")

	c.JSON(http.StatusOK, updated)
}

// DELETE /v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	// idempotente: borrar un id inexistente no es error
	h.catalog.Remove(id)
	if h.snapshots != nil {
		if err := h.snapshots.DeleteProduct(context.Background(), id); err != nil {
			log.Printf("snapshot delete failed for product %d: %v", id, err)
		}
	}
	h.cache.DeleteByPrefix("products:")
	h.cache.DeleteByPrefix("recs:")

	c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

// GET /v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

func (h *CatalogHandler) persistProduct(p models.Product) {
	if h.snapshots == nil {
		return
	}
	// posición = índice actual en el catálogo, para restaurar el orden
	position := 0
	for i, stored := range h.catalog.List() {
		if stored.ID == p.ID {
			position = i
			break
		}
	}
	if err := h.snapshots.SaveProduct(context.Background(), p, position); err != nil {
		log.Printf("snapshot save failed for product %d: %v", p.ID, err)
	}
}
