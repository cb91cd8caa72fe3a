package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/ai"
)

// AIHandler expone los colaboradores de IA. Todas las fallas degradan a
// un texto de fallback: la tienda nunca depende de que Gemini responda.
type AIHandler struct {
	generator ai.Generator
	chatter   ai.Chatter
}

func NewAIHandler(generator ai.Generator, chatter ai.Chatter) *AIHandler {
	return &AIHandler{generator: generator, chatter: chatter}
}

type describeRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required"`
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// POST /v1/products/describe
// Solo se usa al dar de alta productos (lado vendedor), así que su
// latencia queda aislada de los caminos de compra.
func (h *AIHandler) GenerateDescription(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	description, err := h.generator.GenerateDescription(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		log.Printf("description generation failed: %v", err)
		description = fmt.Sprintf("A wonderful %s in the %s category.", req.Name, req.Category)
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

// POST /v1/chat
func (h *AIHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reply, err := h.chatter.Chat(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("chat failed: %v", err)
		reply = "I seem to be having some trouble right now. Please try again in a moment."
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
