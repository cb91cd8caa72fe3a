package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/ai"
	"bugana-shop/internal/cache"
	"bugana-shop/internal/cart"
	"bugana-shop/internal/catalog"
	"bugana-shop/internal/config"
	"bugana-shop/internal/data"
	"bugana-shop/internal/handlers"
	"bugana-shop/internal/localization"
	"bugana-shop/internal/order"
	"bugana-shop/internal/repository"
	"bugana-shop/internal/review"
	"bugana-shop/internal/routes"
)

func main() {
	cfg := config.LoadConfig()

	catalogStore := catalog.NewStore()
	cartManager := cart.NewManager()
	orderLedger := order.NewLedger()
	reviewStore := review.NewStore()

	// Persistencia opcional: solo con MONGO_URI configurado. Un snapshot
	// corrupto es fatal acá, en el arranque, nunca a mitad de operación.
	var snapshots *repository.SnapshotStore
	if cfg.MongoURI != "" {
		client, err := repository.Connect(cfg.MongoURI)
		if err != nil {
			log.Fatalln("❌ Mongo connection failed:", err)
		}
		snapshots = repository.NewSnapshotStore(client.Database(cfg.MongoDB))

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		restoreState(ctx, snapshots, catalogStore, reviewStore, orderLedger)
	}

	// Catálogo vacío: se siembra el inventario inicial de la tienda
	if catalogStore.Len() == 0 {
		for _, p := range data.SeedProducts() {
			catalogStore.Add(p)
		}
		log.Printf("🌱 Seeded catalog with %d products", catalogStore.Len())
	}

	gemini := ai.NewGemini(cfg.GeminiAPIKey)
	if !gemini.Enabled() {
		log.Println("⚠️ GEMINI_API_KEY not set, AI services run in fallback mode")
	}
	locCache := localization.NewCache(catalogStore, gemini)
	responseCache := cache.New(2 * time.Minute)

	router := gin.Default()
	routes.RegisterRoutes(router, routes.Handlers{
		Catalog:         handlers.NewCatalogHandler(catalogStore, responseCache, snapshots),
		Cart:            handlers.NewCartHandler(cartManager, catalogStore),
		Order:           handlers.NewOrderHandler(orderLedger, cartManager, snapshots),
		Review:          handlers.NewReviewHandler(reviewStore, snapshots),
		Recommendations: handlers.NewRecommendationHandler(catalogStore, responseCache),
		Language:        handlers.NewLanguageHandler(locCache),
		AI:              handlers.NewAIHandler(gemini, gemini),
	})

	log.Println("🚀 Server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalln("server stopped:", err)
	}
}

func restoreState(ctx context.Context, snapshots *repository.SnapshotStore, catalogStore *catalog.Store, reviewStore *review.Store, orderLedger *order.Ledger) {
	products, err := snapshots.LoadCatalog(ctx)
	if err != nil {
		log.Fatalln("❌ Failed to load catalog snapshot:", err)
	}
	catalogStore.Restore(products)

	reviews, err := snapshots.LoadReviews(ctx)
	if err != nil {
		log.Fatalln("❌ Failed to load review snapshot:", err)
	}
	reviewStore.Restore(reviews)

	orders, err := snapshots.LoadOrders(ctx)
	if err != nil {
		log.Fatalln("❌ Failed to load order snapshot:", err)
	}
	orderLedger.Restore(orders)

	log.Printf("📦 Restored %d products, %d reviews, %d orders", catalogStore.Len(), len(reviews), len(orders))
}
