package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires the swap endpoints onto a gin engine. The paths and
// the X-API-Key scheme follow the contract the frontend SDK is written
// against.
func SetupRouter(handler *SwapHandler, hub *Hub, apiKey string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-API-Key"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.GET("/health", handler.HealthHandler)
		api.GET("/status", handler.StatusHandler)

		authed := api.Group("", APIKeyAuth(apiKey))
		{
			authed.GET("/tokens", handler.TokensHandler)
			authed.GET("/swap", handler.SwapStateHandler)
			authed.POST("/swap/select", handler.SelectTokenHandler)
			authed.POST("/swap/invert", handler.InvertHandler)
			authed.POST("/swap/preset", handler.PresetHandler)
			authed.POST("/wallet/connect", handler.ConnectWalletHandler)
			authed.POST("/aggregate", handler.AggregateHandler)
		}
	}

	if hub != nil {
		router.GET("/ws", hub.ServeWS)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
