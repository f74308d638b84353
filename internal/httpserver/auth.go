package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	customersvc "vitalia/internal/service/customer"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Customer     any    `json:"customer"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

func signupHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in customersvc.SignupInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		created, err := svc.Signup(c.Request.Context(), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func loginHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "email y contraseña requeridos")
			return
		}
		cust, access, refresh, err := svc.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			if errors.Is(err, customersvc.ErrInvalidCredentials) {
				respondError(c, http.StatusUnauthorized, "credenciales inválidas")
				return
			}
			respondError(c, http.StatusInternalServerError, "error interno")
			return
		}
		c.JSON(http.StatusOK, loginResponse{
			Customer:     cust,
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    svc.AccessTTLSeconds(),
		})
	}
}

func logoutHandler(svc CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := currentToken(c); token != "" {
			svc.Logout(c.Request.Context(), token)
		}
		c.Status(http.StatusNoContent)
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cust := currentCustomer(c)
		if cust == nil {
			respondError(c, http.StatusUnauthorized, "token requerido")
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}
