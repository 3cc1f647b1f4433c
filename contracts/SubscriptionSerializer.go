package contracts

type SubscriptionSerializer interface {
	Marshal(subscription *Subscription) []byte
	Unmarshal(data []byte) (*Subscription, error)
}
