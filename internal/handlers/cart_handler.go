package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/cart"
	"bugana-shop/internal/catalog"
)

type CartHandler struct {
	cart    *cart.Manager
	catalog *catalog.Store
}

func NewCartHandler(manager *cart.Manager, store *catalog.Store) *CartHandler {
	return &CartHandler{cart: manager, catalog: store}
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
		"count": h.cart.Count(),
	})
}

// POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	product, ok := h.catalog.Get(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	if err := h.cart.Add(product, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrOutOfStock) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to add to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
		"count": h.cart.Count(),
	})
}

// PATCH /v1/cart/items/:id
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// cantidad <= 0 equivale a sacar la línea
	h.cart.SetQuantity(id, req.Quantity)
	c.JSON(http.StatusOK, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
		"count": h.cart.Count(),
	})
}

// DELETE /v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}

	h.cart.Remove(id)
	c.JSON(http.StatusOK, gin.H{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
		"count": h.cart.Count(),
	})
}

// DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	c.JSON(http.StatusOK, SuccessResponse{Message: "cart cleared"})
}
