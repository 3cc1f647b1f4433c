package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"gridCalc/contracts"
)

var SerializerError = errors.New("invalid serialized data")

const subscriptionFormatVersion = byte(1)

// SubscriptionBinarySerializer stores a subscription as
// version | len(cellId) | cellId | len(id) | id | webhookUrl.
// The sheet id is not stored, it is the bucket name.
type SubscriptionBinarySerializer struct {
}

func NewSubscriptionBinarySerializer() *SubscriptionBinarySerializer {
	return &SubscriptionBinarySerializer{}
}

func (s *SubscriptionBinarySerializer) Marshal(subscription *contracts.Subscription) []byte {
	serializedData := make([]byte, 0, 5+len(subscription.CellId)+len(subscription.Id)+len(subscription.WebhookUrl))

	serializedData = append(serializedData, subscriptionFormatVersion)
	serializedData = s.appendField(serializedData, subscription.CellId)
	serializedData = s.appendField(serializedData, subscription.Id)
	serializedData = append(serializedData, subscription.WebhookUrl...)
	return serializedData
}

func (s *SubscriptionBinarySerializer) Unmarshal(data []byte) (*contracts.Subscription, error) {
	if len(data) < 1 || data[0] != subscriptionFormatVersion {
		return nil, fmt.Errorf("%w: unknown format version (data: %v)", SerializerError, string(data))
	}

	cellId, rest, err := s.readField(data[1:])
	if err != nil {
		return nil, err
	}

	id, rest, err := s.readField(rest)
	if err != nil {
		return nil, err
	}

	return &contracts.Subscription{
		Id:         id,
		CellId:     cellId,
		WebhookUrl: string(rest),
	}, nil
}

func (s *SubscriptionBinarySerializer) appendField(data []byte, field string) []byte {
	data = binary.LittleEndian.AppendUint16(data, uint16(len(field)))
	return append(data, field...)
}

func (s *SubscriptionBinarySerializer) readField(data []byte) (field string, rest []byte, err error) {
	if len(data) < 2 {
		return "", nil, fmt.Errorf("%w: should be more than 2 bytes (data: %v)", SerializerError, string(data))
	}

	fieldLength := int(binary.LittleEndian.Uint16(data))
	if len(data) < fieldLength+2 {
		return "", nil, fmt.Errorf("%w: field size is less than bytes amount (fieldSize: %d; data: %v)", SerializerError, fieldLength, string(data))
	}

	return string(data[2 : fieldLength+2]), data[fieldLength+2:], nil
}
