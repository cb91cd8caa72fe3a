package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/localization"
)

type LanguageHandler struct {
	localization *localization.Cache
}

func NewLanguageHandler(loc *localization.Cache) *LanguageHandler {
	return &LanguageHandler{localization: loc}
}

type switchLanguageRequest struct {
	Code string `json:"code" binding:"required"`
}

// POST /v1/language
// Dispara el lote de traducciones en segundo plano y responde enseguida:
// un cambio de idioma nunca bloquea la navegación ni el carrito.
func (h *LanguageHandler) SwitchLanguage(c *gin.Context) {
	var req switchLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.localization.Switch(req.Code)
	c.JSON(http.StatusAccepted, gin.H{
		"code":        req.Code,
		"ready":       h.localization.Ready(req.Code),
		"translating": h.localization.Translating(),
	})
}

// GET /v1/language/:code/status
func (h *LanguageHandler) LanguageStatus(c *gin.Context) {
	code := c.Param("code")
	c.JSON(http.StatusOK, gin.H{
		"code":        code,
		"ready":       h.localization.Ready(code),
		"translating": h.localization.Translating(),
	})
}
