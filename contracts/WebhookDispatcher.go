package contracts

type WebhookDispatcher interface {
	Notify(event RenderEvent)
	Start()
	Close()
}
