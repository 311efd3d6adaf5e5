package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripflux/internal/service"
)

const authUserKey = "auth_user_id"

// AuthRequired valida el bearer token y guarda el id del usuario en el
// contexto. Sin token y token inválido responden 401 sin detallar la causa.
func AuthRequired(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "jwt not configured"})
			c.Abort()
			return
		}

		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			c.Abort()
			return
		}

		userID, err := jwtSvc.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			c.Abort()
			return
		}

		c.Set(authUserKey, userID)
		c.Next()
	}
}

// extractToken acepta Authorization: Bearer y el header x-auth-token que
// usa el cliente SPA existente.
func extractToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" && strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return strings.TrimSpace(c.GetHeader("x-auth-token"))
}

// AuthUserID obtiene el id del usuario autenticado desde el contexto.
func AuthUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(authUserKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
