package cartmetrics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
)

type service struct {
	pubsub  mypubsub.PubSub
	metrics *metrics
	logger  mylog.Logger
}

func newService(pubsub mypubsub.PubSub, m *metrics, logger mylog.Logger) *service {
	return &service{
		pubsub:  pubsub,
		metrics: m,
		logger:  logger,
	}
}

func (s *service) Subscribe(c context.Context, baseURL string) error {
	err := s.pubsub.CreateTopic(c, cartevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %w", cartevents.TopicName, err)
	}

	err = s.pubsub.Subscribe(c, cartevents.TopicName, baseURL+"/api/cart/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %w", cartevents.TopicName, err)
	}

	return nil
}

func (s *service) OnCartCreated(c context.Context, topic string, event cartevents.CartCreated) error {
	s.logger.Log(c, event.CartID, mylog.SeverityInfo, "Cart %s created", event.CartID)

	s.metrics.eventsTotal.WithLabelValues(event.GetEventTypeName()).Inc()
	s.metrics.cartsCreated.Inc()

	return nil
}

func (s *service) OnLineAdded(c context.Context, topic string, event cartevents.LineAdded) error {
	s.metrics.eventsTotal.WithLabelValues(event.GetEventTypeName()).Inc()
	s.metrics.quantityChanges.WithLabelValues("added").Add(float64(event.Quantity))

	return s.observeTotals(c, event.CartID, event.Totals)
}

func (s *service) OnLineUpdated(c context.Context, topic string, event cartevents.LineUpdated) error {
	s.metrics.eventsTotal.WithLabelValues(event.GetEventTypeName()).Inc()
	delta := event.Quantity - event.OldQuantity
	if delta > 0 {
		s.metrics.quantityChanges.WithLabelValues("added").Add(float64(delta))
	} else if delta < 0 {
		s.metrics.quantityChanges.WithLabelValues("removed").Add(float64(-delta))
	}

	return s.observeTotals(c, event.CartID, event.Totals)
}

func (s *service) OnLineRemoved(c context.Context, topic string, event cartevents.LineRemoved) error {
	s.metrics.eventsTotal.WithLabelValues(event.GetEventTypeName()).Inc()
	s.metrics.quantityChanges.WithLabelValues("removed").Add(float64(event.Quantity))

	return s.observeTotals(c, event.CartID, event.Totals)
}

func (s *service) observeTotals(c context.Context, cartID string, totals cartevents.Totals) error {
	subtotal, err := decimal.NewFromString(totals.SubtotalAmount)
	if err != nil {
		s.logger.Log(c, cartID, mylog.SeverityWarn, "Cart %s has invalid subtotal %q: %s", cartID, totals.SubtotalAmount, err)
		return nil
	}
	s.metrics.cartSubtotal.WithLabelValues(totals.CurrencyCode).Observe(subtotal.InexactFloat64())

	return nil
}
