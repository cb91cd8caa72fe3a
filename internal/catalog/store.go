package catalog

import (
	"errors"
	"sort"
	"sync"

	"bugana-shop/internal/models"
)

// ErrNotFound se devuelve al actualizar un producto cuyo id no existe.
// Remove, en cambio, es idempotente y nunca falla por id desconocido.
var ErrNotFound = errors.New("product not found")

// Store es la fuente de verdad de los productos vendibles. El orden de
// inserción se preserva para que List sea estable.
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	byID     map[int64]int
	nextID   int64
}

func NewStore() *Store {
	return &Store{
		byID:   make(map[int64]int),
		nextID: 1,
	}
}

// Add inserta un producto nuevo asignándole un id único. Si no trae
// imagen se genera un placeholder determinístico a partir del nombre.
// La descripción en idioma base es obligatoria desde la creación.
func (s *Store) Add(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p = p.Clone()
	p.ID = s.nextID
	s.nextID++

	if p.Image == "" {
		p.Image = models.PlaceholderImage(p.Name)
	}
	if p.Descriptions == nil {
		p.Descriptions = make(map[string]string)
	}
	if _, ok := p.Descriptions[models.LangEN]; !ok {
		p.Descriptions[models.LangEN] = ""
	}

	s.byID[p.ID] = len(s.products)
	s.products = append(s.products, p)
	return p.Clone()
}

// Update reemplaza el registro almacenado con el mismo id.
func (s *Store) Update(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[p.ID]
	if !ok {
		return ErrNotFound
	}
	s.products[idx] = p.Clone()
	return nil
}

// Remove elimina el producto; no es error si el id no existe.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	delete(s.byID, id)
	for i := idx; i < len(s.products); i++ {
		s.byID[s.products[i].ID] = i
	}
}

// Get busca un producto por id.
func (s *Store) Get(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return s.products[idx].Clone(), true
}

// List devuelve todos los productos en orden de inserción.
func (s *Store) List() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}

// Categories recalcula el conjunto de categorías observadas en el
// catálogo actual. Es una vista, no estado almacenado.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, p := range s.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// SetDescription agrega o reemplaza la descripción de un idioma. El
// idioma base nunca se toca por esta vía: lo usa la caché de
// localización, que solo puede añadir traducciones.
func (s *Store) SetDescription(id int64, lang, text string) {
	if lang == models.LangEN {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[id]
	if !ok {
		return
	}
	s.products[idx].Descriptions[lang] = text
}

// Len devuelve la cantidad de productos.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Restore carga un snapshot persistido respetando su orden y deja el
// generador de ids por encima del máximo cargado. Solo se usa en el
// arranque del proceso.
func (s *Store) Restore(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = s.products[:0]
	s.byID = make(map[int64]int, len(products))
	s.nextID = 1
	for _, p := range products {
		p = p.Clone()
		if p.Descriptions == nil {
			p.Descriptions = map[string]string{models.LangEN: ""}
		}
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p)
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
}
