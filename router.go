package main

import (
	"github.com/gin-gonic/gin"
	"gridCalc/contracts"
	"net/http"
)

const ApiVersion = "v1"

const subscribePath = "subscribe"

const StreamPathPrefix = "/stream/"

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger(), gin.Recovery())
	}

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST("/:sheet_id/:cell_id/"+subscribePath, controller.SubscribeAction)
	apiRouterGroup.DELETE("/:sheet_id/:cell_id/"+subscribePath+"/:subscription_id", controller.UnsubscribeAction)

	apiRouterGroup.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	apiRouterGroup.GET("/:sheet_id/:cell_id", controller.GetCellAction)
	apiRouterGroup.DELETE("/:sheet_id/:cell_id", controller.ClearCellAction)
	apiRouterGroup.GET("/:sheet_id", controller.GetSheetAction)

	router.GET(StreamPathPrefix+":sheet_id", controller.StreamAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
