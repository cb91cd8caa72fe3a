package localization

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugana-shop/internal/catalog"
	"bugana-shop/internal/models"
)

// fakeTranslator cuenta llamadas y puede fallar para ciertos textos.
type fakeTranslator struct {
	mu     sync.Mutex
	calls  int
	failOn map[string]bool
}

func (f *fakeTranslator) Translate(_ context.Context, text, lang string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.failOn[text] {
		return "", errors.New("collaborator down")
	}
	return "[" + lang + "] " + text, nil
}

func (f *fakeTranslator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func seedCatalog(t *testing.T, descriptions ...string) *catalog.Store {
	t.Helper()
	s := catalog.NewStore()
	for _, d := range descriptions {
		s.Add(models.Product{
			Name:         "Product",
			Price:        decimal.RequireFromString("100"),
			Category:     "Misc",
			InStock:      true,
			Descriptions: map[string]string{models.LangEN: d},
		})
	}
	return s
}

func TestEnsure_TranslatesAllPendingProducts(t *testing.T) {
	store := seedCatalog(t, "a mat", "a bag", "a bowl")
	tr := &fakeTranslator{}
	c := NewCache(store, tr)

	assert.False(t, c.Ready(models.LangTL))
	c.Ensure(context.Background(), models.LangTL)

	assert.True(t, c.Ready(models.LangTL))
	assert.Equal(t, 3, tr.callCount())
	for _, p := range store.List() {
		text, ok := p.Description(models.LangTL)
		require.True(t, ok)
		assert.Equal(t, "[tl] "+p.Descriptions[models.LangEN], text)
	}
	assert.False(t, c.Translating())
}

func TestEnsure_AlreadyPopulatedIsNoOp(t *testing.T) {
	store := seedCatalog(t, "a mat", "a bag")
	tr := &fakeTranslator{}
	c := NewCache(store, tr)

	c.Ensure(context.Background(), models.LangTL)
	require.Equal(t, 2, tr.callCount())

	c.Ensure(context.Background(), models.LangTL)
	assert.Equal(t, 2, tr.callCount(), "no debe volver a traducir lo ya poblado")
}

func TestEnsure_PartialStateRecoversIncrementally(t *testing.T) {
	store := seedCatalog(t, "a mat", "a bag")
	tr := &fakeTranslator{}
	c := NewCache(store, tr)
	c.Ensure(context.Background(), models.LangTL)
	require.Equal(t, 2, tr.callCount())

	// un producto nuevo deja el idioma a medio poblar
	store.Add(models.Product{
		Name:         "New",
		Price:        decimal.RequireFromString("10"),
		Category:     "Misc",
		InStock:      true,
		Descriptions: map[string]string{models.LangEN: "a basket"},
	})
	assert.False(t, c.Ready(models.LangTL))

	// el chequeo es por producto: solo se traduce el que falta
	c.Ensure(context.Background(), models.LangTL)
	assert.Equal(t, 3, tr.callCount())
	assert.True(t, c.Ready(models.LangTL))
}

func TestEnsure_FailureDegradesToFallback(t *testing.T) {
	store := seedCatalog(t, "a mat", "a bag")
	tr := &fakeTranslator{failOn: map[string]bool{"a bag": true}}
	c := NewCache(store, tr)

	c.Ensure(context.Background(), models.LangTL)

	// la falla de uno no bloquea al resto y deja un fallback marcado
	assert.True(t, c.Ready(models.LangTL))
	var texts []string
	for _, p := range store.List() {
		text, _ := p.Description(models.LangTL)
		texts = append(texts, text)
	}
	assert.Contains(t, texts, "[tl] a mat")
	assert.Contains(t, texts, "(Translation failed) a bag")
}

func TestEnsure_BaseLanguageIsInstant(t *testing.T) {
	store := seedCatalog(t, "a mat")
	tr := &fakeTranslator{}
	c := NewCache(store, tr)

	c.Ensure(context.Background(), models.LangEN)

	assert.Zero(t, tr.callCount())
	assert.True(t, c.Ready(models.LangEN))
	assert.False(t, c.Translating())
}

func TestEnsure_EmptyCatalogIsReady(t *testing.T) {
	store := catalog.NewStore()
	tr := &fakeTranslator{}
	c := NewCache(store, tr)

	c.Ensure(context.Background(), models.LangTL)
	assert.Zero(t, tr.callCount())
	assert.True(t, c.Ready(models.LangTL))
}

// blockingTranslator deja un lote colgado hasta que se libere.
type blockingTranslator struct {
	release chan struct{}
}

func (b *blockingTranslator) Translate(_ context.Context, text, lang string) (string, error) {
	<-b.release
	return "[" + lang + "] " + text, nil
}

func TestTranslating_TracksOnlyNewestBatch(t *testing.T) {
	store := seedCatalog(t, "a mat")
	tr := &blockingTranslator{release: make(chan struct{})}
	c := NewCache(store, tr)

	done := make(chan struct{})
	go func() {
		c.Ensure(context.Background(), models.LangTL)
		close(done)
	}()

	// esperar a que el lote quede en vuelo
	require.Eventually(t, c.Translating, 2*time.Second, 5*time.Millisecond)

	close(tr.release)
	<-done
	assert.False(t, c.Translating())
	assert.True(t, c.Ready(models.LangTL))
}
