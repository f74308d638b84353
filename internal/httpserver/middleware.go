package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vitalia/internal/domain"
)

const (
	customerKey = "customer"
	tokenKey    = "token"
)

// authRequired validates the bearer token and stashes the customer (and the
// raw token, for logout) in the request context.
func authRequired(customers CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			respondError(c, http.StatusUnauthorized, "token requerido")
			c.Abort()
			return
		}
		token = strings.TrimSpace(token)

		cust, err := customers.LookupByToken(c.Request.Context(), token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "token inválido")
			c.Abort()
			return
		}
		c.Set(customerKey, cust)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// adminRequired must run after authRequired.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		cust := currentCustomer(c)
		if cust == nil || !cust.IsAdmin {
			respondError(c, http.StatusForbidden, "se requiere permiso de administrador")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(customerKey)
	if !ok {
		return nil
	}
	cust, _ := v.(*domain.Customer)
	return cust
}

func currentToken(c *gin.Context) string {
	v, ok := c.Get(tokenKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}
