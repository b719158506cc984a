package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

type service struct {
	cartStore mystore.Store[Cart]
	client    storefrontclient.StorefrontClient
	publisher mypublisher.Publisher
	nower     mytime.Nower
	logger    mylog.Logger
	locks     *cartLocks
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[Cart], client storefrontclient.StorefrontClient, pub mypublisher.Publisher, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		cartStore: store,
		client:    client,
		publisher: pub,
		nower:     nower,
		logger:    logger,
		locks:     newCartLocks(),
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, cartevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %w", cartevents.TopicName, err)
	}

	return nil
}
