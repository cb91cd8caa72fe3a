package localization

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"bugana-shop/internal/ai"
	"bugana-shop/internal/catalog"
	"bugana-shop/internal/models"
)

// Cache llena perezosamente las traducciones que faltan en el catálogo.
// Cada Ensure lanza un lote en paralelo; un producto se escribe completo
// o no se escribe (nunca se expone a medio traducir). El indicador
// Translating sigue solo al lote más reciente: un lote viejo que
// termina tarde igual escribe sus resultados (misma clave, mismo
// idioma, inofensivo) pero ya no gobierna el indicador.
type Cache struct {
	catalog    *catalog.Store
	translator ai.Translator

	mu         sync.Mutex
	generation uint64
	active     uint64 // generación del lote que gobierna el indicador, 0 = ninguno
}

func NewCache(store *catalog.Store, translator ai.Translator) *Cache {
	return &Cache{catalog: store, translator: translator}
}

// Ensure traduce en paralelo todos los productos que tienen descripción
// base pero no en lang, y bloquea hasta que el lote completa. Volver al
// idioma base es instantáneo; repetir un idioma ya poblado es un no-op
// (se chequea por producto, así un estado parcial se recupera solo).
func (c *Cache) Ensure(ctx context.Context, lang string) {
	if lang == models.LangEN {
		return
	}

	var pending []models.Product
	for _, p := range c.catalog.List() {
		if _, hasBase := p.Description(models.LangEN); hasBase && !p.HasTranslation(lang) {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.active = gen
	c.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range pending {
		p := p
		g.Go(func() error {
			base, _ := p.Description(models.LangEN)
			text, err := c.translator.Translate(ctx, base, lang)
			if err != nil {
				// una traducción fallida degrada a un fallback marcado,
				// no bloquea al resto del lote
				log.Printf("translation failed for product %d: %v", p.ID, err)
				text = "(Translation failed) " + base
			}
			c.catalog.SetDescription(p.ID, lang, text)
			return nil
		})
	}
	g.Wait()

	c.mu.Lock()
	if c.active == gen {
		c.active = 0
	}
	c.mu.Unlock()
}

// Switch lanza el lote en segundo plano, para que un cambio de idioma
// nunca bloquee las operaciones de catálogo/carrito/checkout.
func (c *Cache) Switch(lang string) {
	go c.Ensure(context.Background(), lang)
}

// Translating indica si el lote más reciente sigue en vuelo.
func (c *Cache) Translating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != 0
}

// Ready indica si todos los productos con descripción base ya tienen
// traducción en lang. El idioma base está listo por definición.
func (c *Cache) Ready(lang string) bool {
	if lang == models.LangEN {
		return true
	}
	for _, p := range c.catalog.List() {
		if _, hasBase := p.Description(models.LangEN); hasBase && !p.HasTranslation(lang) {
			return false
		}
	}
	return true
}
