package models

import "github.com/shopspring/decimal"

// CartItem es una línea del carrito: snapshot del producto al momento de
// agregarlo más la cantidad. No se refresca si el catálogo cambia después.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal calcula precio × cantidad de la línea.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
