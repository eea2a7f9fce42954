package router

import (
	"toy_store_backend/internal/handlers"
	"toy_store_backend/internal/middleware"
	"toy_store_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes registers the token endpoints, which need no token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/token/", authHandler.ObtainToken)
	group.POST("/token/refresh/", authHandler.RefreshToken)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me/", authHandler.GetCurrentUser)

	admin := group.Group("")
	admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		admin.POST("/users/", authHandler.RegisterUser)
	}
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clientRoutes := authenticatedGroup.Group("/clients")
	{
		clientRoutes.GET("/", clientHandler.GetClients)
		clientRoutes.POST("/", clientHandler.CreateClient)
		clientRoutes.GET("/:id/", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id/", clientHandler.ReplaceClient)
		clientRoutes.PATCH("/:id/", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id/", clientHandler.DeleteClient)
	}
}

// SetupSaleRoutes sets up the sale routes.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	{
		saleRoutes.GET("/", saleHandler.GetSales)
		saleRoutes.POST("/", saleHandler.CreateSale)
		saleRoutes.GET("/:id/", saleHandler.GetSaleByID)
		saleRoutes.PUT("/:id/", saleHandler.ReplaceSale)
		saleRoutes.PATCH("/:id/", saleHandler.UpdateSale)
		saleRoutes.DELETE("/:id/", saleHandler.DeleteSale)
	}
}

// SetupStatsRoutes sets up the report routes.
func SetupStatsRoutes(authenticatedGroup *gin.RouterGroup, statsHandler *handlers.StatsHandler) {
	statsRoutes := authenticatedGroup.Group("/stats")
	{
		statsRoutes.GET("/sales-per-day/", statsHandler.GetSalesPerDay)
		statsRoutes.GET("/clients/", statsHandler.GetClientRankings)
	}
}
