package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vitalia/internal/domain"
)

func listListingsHandler(svc CatalogService, kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Listings(c.Request.Context(), kind)
		if err != nil {
			respondRepoError(c, err)
			return
		}
		if items == nil {
			items = []domain.Listing{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func getListingHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := svc.Listing(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondRepoError(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func createListingHandler(svc CatalogService, kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.Listing
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		in.Kind = kind
		created, err := svc.CreateListing(c.Request.Context(), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateListingHandler(svc CatalogService, kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.Listing
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		in.ID = c.Param("id")
		in.Kind = kind
		updated, err := svc.UpdateListing(c.Request.Context(), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteListingHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteListing(c.Request.Context(), c.Param("id")); err != nil {
			respondRepoError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
