package main

import (
	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"
	"gridCalc/contracts"
	"gridCalc/engine"
	"io"
)

type ServiceContainer struct {
	Database               *bbolt.DB
	ApiController          contracts.ApiController
	SheetRepository        contracts.SheetRepository
	SubscriptionRepository contracts.SubscriptionRepository
	WebhookDispatcher      contracts.WebhookDispatcher
	StreamHub              *StreamHub
	Router                 *gin.Engine
}

func BuildServiceContainer(config Config, errStream io.Writer) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(config.DatabaseFilepath, 0600, nil)
	if err != nil {
		return
	}

	canonicalizer := NewCanonicalizer()

	container.SubscriptionRepository = NewSubscriptionRepository(container.Database, NewSubscriptionBinarySerializer(), canonicalizer)
	container.WebhookDispatcher = NewWebhookDispatcher(container.SubscriptionRepository, config.WebhookWorkers, errStream)
	container.StreamHub = NewStreamHub(errStream)

	webhookDispatcher := container.WebhookDispatcher
	streamHub := container.StreamHub
	sinkFactory := func(sheetId string) contracts.DisplaySink {
		return NewDisplaySinkChain(
			NewRenderEventSink(sheetId, canonicalizer, webhookDispatcher.Notify),
			NewRenderEventSink(sheetId, canonicalizer, streamHub.Notify),
		)
	}

	container.SheetRepository = NewSheetRepository(
		canonicalizer,
		sinkFactory,
		engine.WithMaxTextLength(config.MaxTextLength),
		engine.WithMaxCells(config.MaxCells),
	)
	container.ApiController = NewApiController(container.SheetRepository, container.SubscriptionRepository, container.StreamHub)

	container.Router = SetupRouter(container.ApiController)

	return
}
