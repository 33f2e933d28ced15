package routers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/switchyard-io/switchyard/internal/models"
	"go.uber.org/zap"
)

// ValidateJWT checks the bearer token on every request behind the private
// group and stores the subject under gin.AuthUserKey.
func ValidateJWT(logger *zap.SugaredLogger, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.Request.Header.Get("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewUnauthorizedError("authorization header missing"))
			return
		}

		parts := strings.Split(authz, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewUnauthorizedError("authorization header malformed"))
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.Debugf("token rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewUnauthorizedError("token is invalid or expired"))
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set(gin.AuthUserKey, sub)
			}
		}
		c.Next()
	}
}
