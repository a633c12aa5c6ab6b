package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/address-parser/app/controllers"
)

// SetupAPIRoutes wires the /match and /v1/addresses/* surface.
func SetupAPIRoutes(router *gin.Engine, addressController *controllers.AddressController, suggestController *controllers.SuggestController) {
	router.POST("/match", addressController.MatchRaw)

	v1 := router.Group("/v1")
	{
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/parse", addressController.ParseAddress)
			addresses.POST("/batch", addressController.BatchParse)
			addresses.GET("/jobs/:id", addressController.GetJobStatus)
			addresses.GET("/jobs/:id/results", addressController.GetJobResults)
		}
		if suggestController != nil {
			v1.GET("/suggest", suggestController.Suggest)
		}
	}
}

// SetupAllRoutes assembles the full router: gin.Recovery and the zap
// request logger apply to every route; the IP allow-list is registered
// after /health and /live so those two probes stay reachable outside the
// allowed CIDR (gin freezes a route's middleware chain at registration
// time, so middleware added later never applies to routes added earlier).
func SetupAllRoutes(router *gin.Engine, addressController *controllers.AddressController, suggestController *controllers.SuggestController, allowedCIDR string, logger *zap.Logger) error {
	router.Use(gin.Recovery())
	router.Use(ZapLoggerMiddleware(logger))

	router.GET("/health", addressController.HealthCheck)
	router.GET("/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	})

	allowList, err := AllowListMiddleware(allowedCIDR)
	if err != nil {
		return err
	}
	router.Use(allowList)

	router.GET("/ready", addressController.HealthCheck)
	SetupWebRoutes(router)
	SetupAPIRoutes(router, addressController, suggestController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "path": c.Request.URL.Path})
	})
	return nil
}
