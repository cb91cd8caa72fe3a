package recommend

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"bugana-shop/internal/models"
)

// DefaultLimit es la cantidad de recomendaciones por defecto.
const DefaultLimit = 4

// Pesos de las señales de similitud.
const (
	categoryWeight = 10
	keywordWeight  = 2
	priceNear      = 3 // diferencia < 25%
	priceClose     = 1 // diferencia < 50%
)

// Palabras funcionales comunes en inglés y tagalo que se ignoran al
// comparar descripciones.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "in": true, "on": true, "at": true,
	"for": true, "with": true, "and": true, "or": true, "but": true,
	"ang": true, "mga": true, "sa": true, "ng": true, "na": true,
	"ay": true, // "at" existe en ambos idiomas y ya está arriba
}

var (
	ratioNear  = decimal.NewFromFloat(0.25)
	ratioClose = decimal.NewFromFloat(0.5)
)

// Products rankea el catálogo por similitud de contenido con el producto
// focal. Es una función pura: mismo catálogo, mismo resultado. Con
// limit <= 0 se usa DefaultLimit.
func Products(focal models.Product, catalog []models.Product, limit int) []models.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}

	focalKeywords := keywordSet(focal)

	type scored struct {
		product models.Product
		score   int
	}
	candidates := make([]scored, 0, len(catalog))
	for _, p := range catalog {
		if p.ID == focal.ID {
			continue
		}
		if s := similarity(focal, p, focalKeywords); s > 0 {
			candidates = append(candidates, scored{product: p, score: s})
		}
	}

	// Orden estable: empates quedan en orden de catálogo.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Product, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.product)
	}
	return out
}

func similarity(focal, other models.Product, focalKeywords map[string]bool) int {
	score := 0

	// 1. Misma categoría (peso mayor)
	if focal.Category == other.Category {
		score += categoryWeight
	}

	// 2. Palabras clave compartidas en nombre y descripción base
	for word := range keywordSet(other) {
		if focalKeywords[word] {
			score += keywordWeight
		}
	}

	// 3. Proximidad de precio (peso menor)
	if !focal.Price.IsZero() {
		diff := focal.Price.Sub(other.Price).Abs().Div(focal.Price)
		switch {
		case diff.LessThan(ratioNear):
			score += priceNear
		case diff.LessThan(ratioClose):
			score += priceClose
		}
	}

	return score
}

// keywordSet junta las palabras relevantes del nombre y la descripción
// en idioma base: minúsculas, alfanuméricas, largo > 2, sin stop words.
func keywordSet(p models.Product) map[string]bool {
	out := make(map[string]bool)
	desc, _ := p.Description(models.LangEN)
	for _, text := range []string{p.Name, desc} {
		for _, word := range tokenize(text) {
			if len(word) > 2 && !stopWords[word] {
				out[word] = true
			}
		}
	}
	return out
}

func tokenize(text string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else if unicode.IsSpace(r) {
			b.WriteByte(' ')
		}
		// la puntuación se descarta sin cortar la palabra
	}
	return strings.Fields(b.String())
}
