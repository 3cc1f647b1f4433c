package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	SetCellAction(c *gin.Context)
	GetCellAction(c *gin.Context)
	ClearCellAction(c *gin.Context)
	GetSheetAction(c *gin.Context)
	SubscribeAction(c *gin.Context)
	UnsubscribeAction(c *gin.Context)
	StreamAction(c *gin.Context)
}
