package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"vitalia/internal/domain"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	products := api.Group("/products")
	products.GET("", listProductsHandler(deps.CatalogSvc))
	products.GET("/featured", featuredProductsHandler(deps.CatalogSvc))
	products.GET("/:id", getProductHandler(deps.CatalogSvc))

	auth := api.Group("/auth")
	auth.POST("/signup", signupHandler(deps.CustomerSvc))
	auth.POST("/login", loginHandler(deps.CustomerSvc))
	auth.POST("/logout", authRequired(deps.CustomerSvc), logoutHandler(deps.CustomerSvc))
	auth.GET("/me", authRequired(deps.CustomerSvc), meHandler())

	admin := products.Group("", authRequired(deps.CustomerSvc), adminRequired())
	admin.POST("", createProductHandler(deps.CatalogSvc))
	admin.PUT("/:id", updateProductHandler(deps.CatalogSvc))
	admin.DELETE("/:id", deleteProductHandler(deps.CatalogSvc))

	kinds := map[string]string{
		"courses":  domain.KindCourse,
		"events":   domain.KindEvent,
		"services": domain.KindService,
	}
	for path, kind := range kinds {
		group := api.Group("/" + path)
		group.GET("", listListingsHandler(deps.CatalogSvc, kind))
		group.GET("/:id", getListingHandler(deps.CatalogSvc))

		adminGroup := group.Group("", authRequired(deps.CustomerSvc), adminRequired())
		adminGroup.POST("", createListingHandler(deps.CatalogSvc, kind))
		adminGroup.PUT("/:id", updateListingHandler(deps.CatalogSvc, kind))
		adminGroup.DELETE("/:id", deleteListingHandler(deps.CatalogSvc))
	}

	return router
}
