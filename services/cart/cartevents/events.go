package cartevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
)

const (
	TopicName       = "cart"
	cartCreatedName = TopicName + ".created"
	lineAddedName   = TopicName + ".line.added"
	lineUpdatedName = TopicName + ".line.updated"
	lineRemovedName = TopicName + ".line.removed"
)

type CartEventService interface {
	OnCartCreated(c context.Context, topic string, event CartCreated) error
	OnLineAdded(c context.Context, topic string, event LineAdded) error
	OnLineUpdated(c context.Context, topic string, event LineUpdated) error
	OnLineRemoved(c context.Context, topic string, event LineRemoved) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CartEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case cartCreatedName:
		{
			event := CartCreated{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartCreated(c, envelope.Topic, event)
		}
	case lineAddedName:
		{
			event := LineAdded{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnLineAdded(c, envelope.Topic, event)
		}
	case lineUpdatedName:
		{
			event := LineUpdated{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnLineUpdated(c, envelope.Topic, event)
		}
	case lineRemovedName:
		{
			event := LineRemoved{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnLineRemoved(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %s", envelope.EventTypeName))
	}
}

type CartCreated struct {
	CartID      string
	CheckoutURL string
	Timestamp   time.Time
}

func (e CartCreated) GetEventTypeName() string {
	return cartCreatedName
}

func (e CartCreated) GetAggregateName() string {
	return e.CartID
}

// Totals is the state of the cart right after the change.
type Totals struct {
	TotalQuantity  int
	SubtotalAmount string
	CurrencyCode   string
}

type LineAdded struct {
	CartID        string
	MerchandiseID string
	Quantity      int
	Totals        Totals
	Timestamp     time.Time
}

func (e LineAdded) GetEventTypeName() string {
	return lineAddedName
}

func (e LineAdded) GetAggregateName() string {
	return e.CartID
}

type LineUpdated struct {
	CartID        string
	MerchandiseID string
	OldQuantity   int
	Quantity      int
	Totals        Totals
	Timestamp     time.Time
}

func (e LineUpdated) GetEventTypeName() string {
	return lineUpdatedName
}

func (e LineUpdated) GetAggregateName() string {
	return e.CartID
}

type LineRemoved struct {
	CartID        string
	MerchandiseID string
	Quantity      int
	Totals        Totals
	Timestamp     time.Time
}

func (e LineRemoved) GetEventTypeName() string {
	return lineRemovedName
}

func (e LineRemoved) GetAggregateName() string {
	return e.CartID
}
