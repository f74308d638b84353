package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vitalia/internal/domain"
	"vitalia/internal/paging"
	"vitalia/internal/service/catalog"
)

type productPage struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalItems int              `json:"totalItems"`
	TotalPages int              `json:"totalPages"`
}

func toProductPage(p paging.Page[domain.Product]) productPage {
	items := p.Items
	if items == nil {
		items = []domain.Product{}
	}
	return productPage{
		Items:      items,
		Page:       p.Number,
		PerPage:    p.PerPage,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

func listProductsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.Query{
			Category: c.Query("category"),
			Search:   c.Query("q"),
			Sort:     c.Query("sort"),
			Page:     intQuery(c, "page", 1),
			PerPage:  intQuery(c, "perPage", paging.DefaultPerPage),
		}
		page, err := svc.Products(c.Request.Context(), q)
		if err != nil {
			respondRepoError(c, err)
			return
		}
		c.JSON(http.StatusOK, toProductPage(page))
	}
}

func featuredProductsHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := intQuery(c, "limit", 4)
		seed, err := strconv.ParseInt(c.Query("seed"), 10, 64)
		if err != nil {
			// No session seed supplied: any fixed-per-call seed keeps the
			// order stable for this response.
			seed = time.Now().UnixNano()
		}
		items, err := svc.Featured(c.Request.Context(), seed, limit)
		if err != nil {
			respondRepoError(c, err)
			return
		}
		if items == nil {
			items = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "seed": seed})
	}
}

func getProductHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondRepoError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.Product
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		created, err := svc.CreateProduct(c.Request.Context(), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updateProductHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.Product
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "cuerpo inválido")
			return
		}
		in.ID = c.Param("id")
		updated, err := svc.UpdateProduct(c.Request.Context(), in)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteProductHandler(svc CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			respondRepoError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
