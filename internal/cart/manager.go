package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"bugana-shop/internal/models"
)

// ErrOutOfStock: la política elegida es rechazar explícitamente agregar
// un producto sin stock, nunca ignorarlo en silencio.
var ErrOutOfStock = errors.New("product is out of stock")

// Manager mantiene las líneas del carrito de la sesión. Cada línea
// guarda un snapshot del producto al momento de agregarlo; Total y
// Count se derivan siempre de las líneas, nunca se almacenan.
type Manager struct {
	mu    sync.RWMutex
	items []models.CartItem
}

func NewManager() *Manager {
	return &Manager{}
}

// Add agrega el producto al carrito. Si ya hay una línea con el mismo
// id suma la cantidad; si no, agrega una línea nueva al final. Con
// quantity <= 0 se asume 1.
func (m *Manager) Add(p models.Product, quantity int) error {
	if !p.InStock {
		return ErrOutOfStock
	}
	if quantity <= 0 {
		quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].Product.ID == p.ID {
			m.items[i].Quantity += quantity
			return nil
		}
	}
	m.items = append(m.items, models.CartItem{Product: p.Clone(), Quantity: quantity})
	return nil
}

// SetQuantity sobreescribe la cantidad de la línea; con quantity <= 0
// la línea se elimina en vez de guardar una cantidad no positiva.
func (m *Manager) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		m.Remove(productID)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].Product.ID == productID {
			m.items[i].Quantity = quantity
			return
		}
	}
}

// Remove saca la línea del producto; no es error si no existe.
func (m *Manager) Remove(productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].Product.ID == productID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return
		}
	}
}

// Clear vacía el carrito.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
}

// Items devuelve copias de las líneas actuales.
func (m *Manager) Items() []models.CartItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.CartItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, models.CartItem{Product: item.Product.Clone(), Quantity: item.Quantity})
	}
	return out
}

// Total recalcula la suma de precio × cantidad de todas las líneas.
func (m *Manager) Total() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := decimal.Zero
	for _, item := range m.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Count recalcula la cantidad total de unidades en el carrito.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, item := range m.items {
		count += item.Quantity
	}
	return count
}

// Len devuelve la cantidad de líneas.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
