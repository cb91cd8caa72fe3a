package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingInfo son los datos de envío capturados en el checkout.
type ShippingInfo struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// Order es el registro inmutable que produce el checkout: las líneas del
// carrito congeladas más el total calculado. Nunca se modifica; una
// corrección requiere un registro compensatorio nuevo.
type Order struct {
	ID           string          `json:"id"`
	Items        []CartItem      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	ShippingInfo ShippingInfo    `json:"shipping_info"`
}
