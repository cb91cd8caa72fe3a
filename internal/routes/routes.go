package routes

import (
	"github.com/gin-gonic/gin"

	"bugana-shop/internal/handlers"
	"bugana-shop/internal/models"
)

// Handlers junta todos los handlers que componen la API.
type Handlers struct {
	Catalog         *handlers.CatalogHandler
	Cart            *handlers.CartHandler
	Order           *handlers.OrderHandler
	Review          *handlers.ReviewHandler
	Recommendations *handlers.RecommendationHandler
	Language        *handlers.LanguageHandler
	AI              *handlers.AIHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	sellerOnly := handlers.RequireRole(models.RoleSeller)
	customerOnly := handlers.RequireRole(models.RoleCustomer)

	v1 := router.Group("/v1")
	{
		// catálogo: lectura abierta, mutación solo vendedor
		v1.GET("/products", h.Catalog.ListProducts)
		v1.GET("/products/:id", h.Catalog.GetProduct)
		v1.GET("/categories", h.Catalog.ListCategories)
		v1.POST("/products", sellerOnly, h.Catalog.CreateProduct)
		v1.PUT("/products/:id", sellerOnly, h.Catalog.UpdateProduct)
		v1.DELETE("/products/:id", sellerOnly, h.Catalog.DeleteProduct)

		// recomendaciones
		v1.GET("/products/:id/recommendations", h.Recommendations.GetRecommendations)

		// reseñas: solo clientes escriben
		v1.GET("/products/:id/reviews", h.Review.ListReviews)
		v1.GET("/products/:id/rating", h.Review.GetRating)
		v1.POST("/products/:id/reviews", customerOnly, h.Review.CreateReview)

		// carrito
		v1.GET("/cart", h.Cart.GetCart)
		v1.POST("/cart/items", h.Cart.AddItem)
		v1.PATCH("/cart/items/:id", h.Cart.SetQuantity)
		v1.DELETE("/cart/items/:id", h.Cart.RemoveItem)
		v1.DELETE("/cart", h.Cart.ClearCart)

		// checkout: solo clientes
		v1.POST("/orders", customerOnly, h.Order.Checkout)
		v1.GET("/orders/latest", h.Order.LatestOrder)
		v1.GET("/orders", sellerOnly, h.Order.ListOrders)

		// localización
		v1.POST("/language", h.Language.SwitchLanguage)
		v1.GET("/language/:code/status", h.Language.LanguageStatus)

		// colaboradores de IA
		v1.POST("/ai/describe", sellerOnly, h.AI.GenerateDescription)
		v1.POST("/chat", h.AI.Chat)
	}
}
