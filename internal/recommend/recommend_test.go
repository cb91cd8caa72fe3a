package recommend

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugana-shop/internal/models"
)

func product(id int64, name, category, price, description string) models.Product {
	return models.Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		InStock:  true,
		Descriptions: map[string]string{
			models.LangEN: description,
		},
	}
}

func TestProducts_CategoryMatchDominates(t *testing.T) {
	a := product(1, "A", "X", "100", "")
	b := product(2, "B", "X", "105", "")
	c := product(3, "C", "Y", "500", "")
	catalog := []models.Product{a, b, c}

	got := Products(a, catalog, 2)

	require.NotEmpty(t, got)
	assert.Equal(t, int64(2), got[0].ID)
	for _, p := range got {
		assert.NotEqual(t, int64(3), p.ID, "C shares nothing with A and must score 0")
	}
}

func TestProducts_IsDeterministic(t *testing.T) {
	catalog := []models.Product{
		product(1, "Woven Banig Mat", "Home Goods", "1200", "a traditional handwoven mat"),
		product(2, "Woven Basket", "Home Goods", "600", "a handwoven basket from vines"),
		product(3, "Coconut Bowl", "Home Goods", "150", "a polished coconut shell bowl"),
		product(4, "Barong", "Apparel", "4500", "a handwoven formal shirt"),
	}

	first := Products(catalog[0], catalog, 4)
	second := Products(catalog[0], catalog, 4)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestProducts_ExcludesFocalAndNoDuplicates(t *testing.T) {
	catalog := []models.Product{
		product(1, "Mat One", "Home Goods", "100", "woven mat"),
		product(2, "Mat Two", "Home Goods", "100", "woven mat"),
		product(3, "Mat Three", "Home Goods", "100", "woven mat"),
	}

	got := Products(catalog[0], catalog, 10)
	seen := map[int64]bool{}
	for _, p := range got {
		assert.NotEqual(t, int64(1), p.ID)
		assert.False(t, seen[p.ID], "duplicate recommendation %d", p.ID)
		seen[p.ID] = true
	}
}

func TestProducts_RespectsLimit(t *testing.T) {
	var catalog []models.Product
	for i := int64(1); i <= 10; i++ {
		catalog = append(catalog, product(i, "Mat", "Home Goods", "100", "woven mat"))
	}

	assert.Len(t, Products(catalog[0], catalog, 3), 3)
	// limit <= 0 usa el default
	assert.Len(t, Products(catalog[0], catalog, 0), DefaultLimit)
}

func TestProducts_DropsZeroScoreCandidates(t *testing.T) {
	focal := product(1, "Qqq", "X", "100", "zzz www")
	unrelated := product(2, "Rrr", "Y", "900", "yyy xxx")

	got := Products(focal, []models.Product{focal, unrelated}, 4)
	assert.Empty(t, got)
}

func TestProducts_StableTieBreakByCatalogOrder(t *testing.T) {
	focal := product(1, "Mat", "Home Goods", "100", "")
	// b y c empatan (solo categoría); debe ganar el que aparece antes
	b := product(2, "Bbb", "Home Goods", "1000", "")
	c := product(3, "Ccc", "Home Goods", "1000", "")

	got := Products(focal, []models.Product{focal, b, c}, 4)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestProducts_ZeroPriceFocalSkipsProximity(t *testing.T) {
	focal := product(1, "Freebie Mat", "Home Goods", "0", "")
	other := product(2, "Cheap Mat", "Home Goods", "0.01", "")

	// no debe entrar en pánico ni dividir por cero; la categoría alcanza
	got := Products(focal, []models.Product{focal, other}, 4)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestSimilarity_Signals(t *testing.T) {
	focal := product(1, "Handwoven Abaca Bag", "Accessories", "850", "a durable tote from abaca fibers")

	tests := []struct {
		name  string
		other models.Product
		score int
	}{
		{
			name:  "category only",
			other: product(2, "Qqq", "Accessories", "9000", "zzz"),
			score: categoryWeight,
		},
		{
			name: "shared keywords count once each",
			// "handwoven" y "abaca" compartidas; "abaca" aparece dos veces y cuenta una
			other: product(3, "Handwoven Hat", "Headwear", "9000", "abaca abaca straw"),
			score: 2 * keywordWeight,
		},
		{
			name:  "near price",
			other: product(4, "Qqq", "Misc", "900", "zzz"),
			score: priceNear,
		},
		{
			name:  "close price",
			other: product(5, "Qqq", "Misc", "1200", "zzz"),
			score: priceClose,
		},
		{
			name:  "stop words ignored",
			other: product(6, "The And For", "Misc", "9000", "ang mga sa"),
			score: 0,
		},
		{
			name:  "short words ignored",
			other: product(7, "An Ab Ba", "Misc", "9000", "aa bb cc"),
			score: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := similarity(focal, tt.other, keywordSet(focal))
			assert.Equal(t, tt.score, got)
		})
	}
}

func TestTokenize_DropsPunctuationWithoutSplitting(t *testing.T) {
	words := tokenize("Piña-Barong, hand-woven! (formal)")
	assert.Equal(t, []string{"piñabarong", "handwoven", "formal"}, words)
}
