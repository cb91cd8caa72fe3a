package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/cart"
	"bugana-shop/internal/models"
	"bugana-shop/internal/order"
	"bugana-shop/internal/repository"
)

type OrderHandler struct {
	ledger    *order.Ledger
	cart      *cart.Manager
	snapshots *repository.SnapshotStore // opcional
}

func NewOrderHandler(ledger *order.Ledger, manager *cart.Manager, snapshots *repository.SnapshotStore) *OrderHandler {
	return &OrderHandler{ledger: ledger, cart: manager, snapshots: snapshots}
}

// POST /v1/orders
// El pago ya fue confirmado por el host (compuerta simulada); acá solo
// ocurre la transición carrito → orden.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var shipping models.ShippingInfo
	if err := c.ShouldBindJSON(&shipping); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	o, err := h.ledger.Complete(h.cart, shipping)
	if err != nil {
		if errors.Is(err, order.ErrEmptyCart) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to complete order"})
		return
	}

	if h.snapshots != nil {
		if err := h.snapshots.SaveOrder(context.Background(), o); err != nil {
			log.Printf("snapshot save failed for order %s: %v", o.ID, err)
		}
	}

	c.JSON(http.StatusCreated, o)
}

// GET /v1/orders/latest
func (h *OrderHandler) LatestOrder(c *gin.Context) {
	o, ok := h.ledger.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no orders yet"})
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.ledger.List()
	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}
