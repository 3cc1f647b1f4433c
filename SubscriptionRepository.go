package main

import (
	"bytes"
	"fmt"
	"github.com/twinj/uuid"
	"go.etcd.io/bbolt"
	"gridCalc/contracts"
	"strings"
)

// SubscriptionRepository keeps webhook subscriptions in bbolt, one bucket per sheet.
// Keys are `cellId \x00 subscriptionId`, so all subscriptions of a cell share a prefix.
type SubscriptionRepository struct {
	db            *bbolt.DB
	serializer    contracts.SubscriptionSerializer
	canonicalizer *Canonicalizer
}

const Delimiter = byte(0x00)

var bucketPrefix = [4]byte{'_', '_', 's', '_'}

func NewSubscriptionRepository(db *bbolt.DB, serializer contracts.SubscriptionSerializer, canonicalizer *Canonicalizer) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:            db,
		serializer:    serializer,
		canonicalizer: canonicalizer,
	}
}

func (r *SubscriptionRepository) Subscribe(sheetId string, cellId string, webhookUrl string) (*contracts.Subscription, error) {
	key, err := r.canonicalizer.Parse(cellId)
	if err != nil {
		return nil, err
	}

	subscription := &contracts.Subscription{
		Id:         uuid.NewV4().String(),
		SheetId:    strings.ToLower(sheetId),
		CellId:     r.canonicalizer.Format(key),
		WebhookUrl: webhookUrl,
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(r.makeBucketId(subscription.SheetId))
		if err != nil {
			return err
		}

		return bucket.Put(r.makeSubscriptionKey(subscription.CellId, subscription.Id), r.serializer.Marshal(subscription))
	})

	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (r *SubscriptionRepository) Unsubscribe(sheetId string, cellId string, subscriptionId string) error {
	key, err := r.canonicalizer.Parse(cellId)
	if err != nil {
		return err
	}

	subscriptionKey := r.makeSubscriptionKey(r.canonicalizer.Format(key), subscriptionId)

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(r.makeBucketId(strings.ToLower(sheetId)))
		if bucket == nil || bucket.Get(subscriptionKey) == nil {
			return fmt.Errorf("%s: %w", subscriptionId, contracts.SubscriptionNotFoundError)
		}

		return bucket.Delete(subscriptionKey)
	})
}

func (r *SubscriptionRepository) GetWebhookUrls(sheetId string, cellId string) ([]string, error) {
	key, err := r.canonicalizer.Parse(cellId)
	if err != nil {
		return nil, err
	}

	webhookUrls := make([]string, 0, 2)
	prefix := r.makeCellPrefixKey(r.canonicalizer.Format(key))

	err = r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(r.makeBucketId(strings.ToLower(sheetId)))
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			subscription, err := r.serializer.Unmarshal(v)
			if err != nil {
				return fmt.Errorf("subscription %s: %w", string(k[len(prefix):]), err)
			}
			webhookUrls = append(webhookUrls, subscription.WebhookUrl)
		}
		return nil
	})

	return webhookUrls, err
}

func (r *SubscriptionRepository) makeBucketId(sheetId string) []byte {
	if len(sheetId) == 0 {
		return nil
	}

	return append(bucketPrefix[:], sheetId...)
}

func (r *SubscriptionRepository) makeCellPrefixKey(canonicalCellId string) []byte {
	return append([]byte(canonicalCellId), Delimiter)
}

func (r *SubscriptionRepository) makeSubscriptionKey(canonicalCellId string, subscriptionId string) []byte {
	return append(r.makeCellPrefixKey(canonicalCellId), subscriptionId...)
}
