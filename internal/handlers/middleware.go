package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bugana-shop/internal/models"
)

// RoleHeader trae el rol del actor ya autenticado por el host. Para el
// núcleo es un dato opaco: acá solo se decide si la operación está
// permitida, nunca cómo se autenticó.
const RoleHeader = "X-User-Role"

// RequireRole corta la petición si el rol del caller no es el esperado.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := models.Role(c.GetHeader(RoleHeader))
		if got != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error: "operation requires role " + string(role),
			})
			return
		}
		c.Next()
	}
}
