package contracts

import "errors"

// Subscription binds a webhook url to a single cell of a sheet
type Subscription struct {
	Id         string `json:"subscription_id"`
	SheetId    string `json:"sheet_id"`
	CellId     string `json:"cell_id"`
	WebhookUrl string `json:"webhook_url"`
}

type SubscriptionRepository interface {
	Subscribe(sheetId string, cellId string, webhookUrl string) (*Subscription, error)
	Unsubscribe(sheetId string, cellId string, subscriptionId string) error
	GetWebhookUrls(sheetId string, cellId string) ([]string, error)
}

var SubscriptionNotFoundError = errors.New("subscription not found")
