package order

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bugana-shop/internal/models"
)

// ErrEmptyCart: no se puede cerrar un checkout sin líneas en el carrito.
var ErrEmptyCart = errors.New("cart is empty")

// Cart es lo que el ledger necesita del carrito en el checkout: leer
// las líneas, leer el total y vaciarlo al confirmar.
type Cart interface {
	Items() []models.CartItem
	Total() decimal.Decimal
	Clear()
}

// Ledger guarda las órdenes confirmadas. Una orden es inmutable: se
// crea una sola vez por checkout y nunca se modifica.
type Ledger struct {
	mu     sync.RWMutex
	orders []models.Order
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Complete es la única transición del checkout: congela las líneas y
// el total del carrito en una orden nueva y le indica al carrito que
// se vacíe. La confirmación de pago es una compuerta externa simulada
// que decide llamar o no a este método.
func (l *Ledger) Complete(cart Cart, shipping models.ShippingInfo) (models.Order, error) {
	items := cart.Items()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	total := cart.Total()
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal())
	}
	// El total debe ser derivable de las líneas; si no lo es, hay un
	// carrito corrupto y la orden no se crea.
	if !sum.Equal(total) {
		return models.Order{}, fmt.Errorf("cart total %s does not match line sum %s", total, sum)
	}

	o := models.Order{
		ID:           "order_" + uuid.NewString(),
		Items:        items,
		Total:        total,
		CreatedAt:    time.Now().UTC(),
		ShippingInfo: shipping,
	}

	l.mu.Lock()
	l.orders = append(l.orders, o)
	l.mu.Unlock()

	cart.Clear()
	return o, nil
}

// Latest devuelve la última orden confirmada.
func (l *Ledger) Latest() (models.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.orders) == 0 {
		return models.Order{}, false
	}
	return l.orders[len(l.orders)-1], true
}

// List devuelve todas las órdenes en orden de creación.
func (l *Ledger) List() []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Restore carga órdenes persistidas; solo se usa en el arranque.
func (l *Ledger) Restore(orders []models.Order) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.orders = make([]models.Order, len(orders))
	copy(l.orders, orders)
}
