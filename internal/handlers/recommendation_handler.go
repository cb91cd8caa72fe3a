package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/cache"
	"bugana-shop/internal/catalog"
	"bugana-shop/internal/recommend"
)

type RecommendationHandler struct {
	catalog *catalog.Store
	cache   *cache.Cache
}

func NewRecommendationHandler(store *catalog.Store, c *cache.Cache) *RecommendationHandler {
	return &RecommendationHandler{catalog: store, cache: c}
}

// GET /v1/products/:id/recommendations
// El recomendador es una función pura del catálogo, así que la
// respuesta se cachea y se invalida junto con las mutaciones.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product ID"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	focal, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "product not found"})
		return
	}

	cacheKey := fmt.Sprintf("recs:%d:limit:%d", id, limit)
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	recommendations := recommend.Products(focal, h.catalog.List(), limit)
	response := gin.H{
		"recommendations": recommendations,
		"total":           len(recommendations),
	}
	h.cache.Set(cacheKey, response)
	c.JSON(http.StatusOK, response)
}
