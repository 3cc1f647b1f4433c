package main

import (
	"errors"
	"github.com/gin-gonic/gin"
	"gridCalc/contracts"
	"net/http"
)

type ApiController struct {
	SheetRepository        contracts.SheetRepository
	SubscriptionRepository contracts.SubscriptionRepository
	StreamHub              *StreamHub
}

type CellEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
	CellId  string `uri:"cell_id" binding:"required"`
}

type SheetEndpointParams struct {
	SheetId string `uri:"sheet_id" binding:"required"`
}

type SubscriptionEndpointParams struct {
	SheetId        string `uri:"sheet_id" binding:"required"`
	CellId         string `uri:"cell_id" binding:"required"`
	SubscriptionId string `uri:"subscription_id" binding:"required"`
}

type SetCellRequest struct {
	Value *string `json:"value" binding:"required"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"required,url"`
}

func NewApiController(sheetRepository contracts.SheetRepository, subscriptionRepository contracts.SubscriptionRepository, streamHub *StreamHub) *ApiController {
	return &ApiController{
		SheetRepository:        sheetRepository,
		SubscriptionRepository: subscriptionRepository,
		StreamHub:              streamHub,
	}
}

func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.CellNotFoundError) || errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.CellIdInvalidError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	value := ""
	if request.Value != nil {
		value = *request.Value
	}

	if err == nil {
		response, err = api.SheetRepository.SetCell(params.SheetId, params.CellId, value)
	}

	if err != nil {
		if response == nil {
			response = &contracts.Cell{}
		}
		response.Value = value
		response.Result = err.Error()
		c.JSON(http.StatusUnprocessableEntity, response)
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) ClearCellAction(c *gin.Context) {
	params := CellEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = api.SheetRepository.ClearCell(params.SheetId, params.CellId)
	}

	if errors.Is(err, contracts.CellIdInvalidError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) GetSheetAction(c *gin.Context) {
	params := SheetEndpointParams{}
	response := &contracts.CellList{}

	err := c.ShouldBindUri(&params)

	if err == nil {
		response, err = api.SheetRepository.GetCellList(params.SheetId)
	}

	if errors.Is(err, contracts.SheetNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SubscribeRequest{}
	var subscription *contracts.Subscription

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}

	if err == nil {
		subscription, err = api.SubscriptionRepository.Subscribe(params.SheetId, params.CellId, request.WebhookUrl)
	}

	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		c.JSON(http.StatusCreated, subscription)
	}
}

func (api *ApiController) UnsubscribeAction(c *gin.Context) {
	params := SubscriptionEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = api.SubscriptionRepository.Unsubscribe(params.SheetId, params.CellId, params.SubscriptionId)
	}

	if errors.Is(err, contracts.SubscriptionNotFoundError) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, contracts.CellIdInvalidError) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	} else {
		c.Status(http.StatusNoContent)
	}
}

func (api *ApiController) StreamAction(c *gin.Context) {
	params := SheetEndpointParams{}

	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	api.StreamHub.ServeWs(c.Writer, c.Request, params.SheetId)
}
