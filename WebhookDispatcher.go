package main

import (
	"bytes"
	"fmt"
	json "github.com/bytedance/sonic"
	"gridCalc/contracts"
	"io"
	"net/http"
	"sync"
	"time"
)

const WebhookWorkersCount = 5

const webhookQueueSize = 256

type WebhookSendCommand struct {
	Webhook string
	Event   contracts.RenderEvent
}

// WebhookDispatcher posts render events to the webhooks subscribed to the rendered cell.
// Sending happens on worker goroutines, so a slow subscriber never delays an edit.
// Events are dropped when the queue is full.
type WebhookDispatcher struct {
	subscriptions contracts.SubscriptionRepository
	queue         chan WebhookSendCommand
	client        *http.Client
	errStream     io.Writer
	workersCount  int

	mu      sync.RWMutex
	closed  bool
	workers sync.WaitGroup
}

func NewWebhookDispatcher(subscriptions contracts.SubscriptionRepository, workersCount int, errStream io.Writer) *WebhookDispatcher {
	if workersCount <= 0 {
		workersCount = WebhookWorkersCount
	}

	return &WebhookDispatcher{
		subscriptions: subscriptions,
		queue:         make(chan WebhookSendCommand, webhookQueueSize),
		client: &http.Client{
			Timeout: time.Second * 5,
		},
		errStream:    errStream,
		workersCount: workersCount,
	}
}

func (manager *WebhookDispatcher) Notify(event contracts.RenderEvent) {
	webhooks, err := manager.subscriptions.GetWebhookUrls(event.SheetId, event.CellId)
	if err != nil {
		_, _ = fmt.Fprintf(manager.errStream, "Webhook lookup error: %s\n", err)
		return
	}

	if len(webhooks) == 0 {
		return
	}

	manager.addToQueue(webhooks, event)
}

func (manager *WebhookDispatcher) addToQueue(webhooks []string, event contracts.RenderEvent) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if manager.closed {
		return
	}

	for _, webhook := range webhooks {
		select {
		case manager.queue <- WebhookSendCommand{Webhook: webhook, Event: event}:
		default:
			_, _ = fmt.Fprintf(manager.errStream, "Webhook queue is full, event for %s!%s to %s dropped\n", event.SheetId, event.CellId, webhook)
		}
	}
}

func (manager *WebhookDispatcher) Start() {
	for i := 0; i < manager.workersCount; i++ {
		manager.workers.Add(1)
		go manager.runWebhookSenderWorker()
	}
}

// Close stops accepting events and waits until queued ones are sent
func (manager *WebhookDispatcher) Close() {
	manager.mu.Lock()
	if manager.closed {
		manager.mu.Unlock()
		return
	}
	manager.closed = true
	close(manager.queue)
	manager.mu.Unlock()

	manager.workers.Wait()
}

func (manager *WebhookDispatcher) runWebhookSenderWorker() {
	defer manager.workers.Done()

	for command := range manager.queue {
		manager.send(command)
	}
}

func (manager *WebhookDispatcher) send(command WebhookSendCommand) {
	payload, err := json.Marshal(command.Event)
	if err != nil {
		_, _ = fmt.Fprintf(manager.errStream, "Webhook payload error: %s\n", err)
		return
	}

	response, err := manager.client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		_, _ = fmt.Fprintf(manager.errStream, "Webhook send error: %s\n", err)
		return
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		_, _ = fmt.Fprintf(manager.errStream, "Unexpect webhook response HTTP status: %s\n", response.Status)
	}
}
