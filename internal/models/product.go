package models

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// Códigos de idioma soportados por el catálogo.
const (
	LangEN = "en" // idioma base, siempre presente
	LangTL = "tl"
)

// Product representa un producto del catálogo
type Product struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Price        decimal.Decimal   `json:"price"`
	Image        string            `json:"image"`
	Category     string            `json:"category"`
	InStock      bool              `json:"in_stock"`
	Descriptions map[string]string `json:"descriptions"`
}

// Description devuelve la descripción en el idioma pedido y si existe.
func (p Product) Description(lang string) (string, bool) {
	text, ok := p.Descriptions[lang]
	return text, ok
}

// HasTranslation indica si ya existe traducción para el idioma.
func (p Product) HasTranslation(lang string) bool {
	_, ok := p.Descriptions[lang]
	return ok
}

// Clone copia el producto incluyendo el mapa de descripciones, para que
// los snapshots (carrito, respuestas) no compartan estado mutable.
func (p Product) Clone() Product {
	out := p
	out.Descriptions = make(map[string]string, len(p.Descriptions))
	for lang, text := range p.Descriptions {
		out.Descriptions[lang] = text
	}
	return out
}

// PlaceholderImage genera una imagen determinística a partir del nombre.
func PlaceholderImage(name string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/400", url.PathEscape(name))
}
