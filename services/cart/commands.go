package cart

import (
	"context"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mymetrics"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

// initialize returns the remembered cart as currently known remotely, or a fresh one when
// there is none. The returned bool tells whether a new cart was created.
func (s *service) initialize(c context.Context, rememberedCartID string) (cart Cart, created bool, err error) {
	defer func() {
		mymetrics.CartMutationsTotal.WithLabelValues("initialize", mymetrics.Outcome(err)).Inc()
	}()

	if rememberedCartID != "" {
		unlock := s.locks.lock(rememberedCartID)
		defer unlock()
	}

	var remote storefrontclient.Cart
	if rememberedCartID != "" {
		var found bool
		remote, found, err = s.client.GetCart(c, rememberedCartID)
		if err != nil {
			return Cart{}, false, err
		}
		if !found {
			s.logger.Log(c, rememberedCartID, mylog.SeverityInfo, "Remembered cart %s no longer exists remotely", rememberedCartID)
		}
		created = !found
	} else {
		created = true
	}

	if created {
		remote, err = s.createRemoteCart(c)
		if err != nil {
			return Cart{}, false, err
		}
	}

	var event myevents.Event
	if created {
		event = cartevents.CartCreated{
			CartID:      remote.ID,
			CheckoutURL: remote.CheckoutURL,
			Timestamp:   s.nower.Now(),
		}
	}

	cart, err = s.storeSnapshot(c, remote, func(cart Cart) myevents.Event { return event })
	if err != nil {
		return Cart{}, false, err
	}

	s.logger.Log(c, cart.ID, mylog.SeverityInfo, "Initialized cart %s (created:%v)", cart.ID, created)

	return cart, created, nil
}

func (s *service) createRemoteCart(c context.Context) (storefrontclient.Cart, error) {
	created, err := s.client.CreateCart(c)
	if err != nil {
		return storefrontclient.Cart{}, err
	}

	// fetch the full cart so the snapshot starts from the complete remote state
	remote, found, err := s.client.GetCart(c, created.ID)
	if err != nil {
		return storefrontclient.Cart{}, err
	}
	if !found {
		return created, nil
	}
	return remote, nil
}

func (s *service) getCart(c context.Context, cartID string) (Cart, error) {
	s.logger.Log(c, cartID, mylog.SeverityInfo, "Fetch cart %s", cartID)

	return s.loadSnapshot(c, cartID)
}

func (s *service) addItem(c context.Context, cartID string, merchandiseID string, quantity int) (cart Cart, err error) {
	defer func() {
		mymetrics.CartMutationsTotal.WithLabelValues("add", mymetrics.Outcome(err)).Inc()
	}()

	if merchandiseID == "" {
		return Cart{}, myerrors.NewInvalidInputErrorf("missing merchandise id")
	}
	if quantity <= 0 {
		return Cart{}, myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", quantity)
	}

	unlock := s.locks.lock(cartID)
	defer unlock()

	cart, err = s.loadSnapshot(c, cartID)
	if err != nil {
		return Cart{}, err
	}

	s.logger.Log(c, cartID, mylog.SeverityInfo, "Add %d x %s to cart %s", quantity, merchandiseID, cartID)

	var remote storefrontclient.Cart
	existing, found := cart.lineByMerchandise(merchandiseID)
	if found {
		remote, err = s.client.UpdateLines(c, cart.ID, []storefrontclient.CartLineUpdateInput{
			{ID: existing.ID, Quantity: existing.Quantity + quantity},
		})
	} else {
		remote, err = s.client.AddLines(c, cart.ID, []storefrontclient.CartLineInput{
			{MerchandiseID: merchandiseID, Quantity: quantity},
		})
	}
	if err != nil {
		return Cart{}, err
	}

	return s.storeSnapshot(c, remote, func(cart Cart) myevents.Event {
		return cartevents.LineAdded{
			CartID:        cart.ID,
			MerchandiseID: merchandiseID,
			Quantity:      quantity,
			Totals:        totalsOf(cart),
			Timestamp:     s.nower.Now(),
		}
	})
}

func (s *service) updateItem(c context.Context, cartID string, merchandiseID string, quantity int) (cart Cart, err error) {
	if quantity <= 0 {
		return s.removeItem(c, cartID, merchandiseID)
	}

	defer func() {
		mymetrics.CartMutationsTotal.WithLabelValues("update", mymetrics.Outcome(err)).Inc()
	}()

	unlock := s.locks.lock(cartID)
	defer unlock()

	cart, err = s.loadSnapshot(c, cartID)
	if err != nil {
		return Cart{}, err
	}

	existing, found := cart.lineByMerchandise(merchandiseID)
	if !found {
		s.logger.Log(c, cartID, mylog.SeverityInfo, "Merchandise %s not in cart %s: nothing to update", merchandiseID, cartID)
		return cart, nil
	}

	s.logger.Log(c, cartID, mylog.SeverityInfo, "Update %s in cart %s: %d -> %d", merchandiseID, cartID, existing.Quantity, quantity)

	remote, err := s.client.UpdateLines(c, cart.ID, []storefrontclient.CartLineUpdateInput{
		{ID: existing.ID, Quantity: quantity},
	})
	if err != nil {
		return Cart{}, err
	}

	return s.storeSnapshot(c, remote, func(cart Cart) myevents.Event {
		return cartevents.LineUpdated{
			CartID:        cart.ID,
			MerchandiseID: merchandiseID,
			OldQuantity:   existing.Quantity,
			Quantity:      quantity,
			Totals:        totalsOf(cart),
			Timestamp:     s.nower.Now(),
		}
	})
}

func (s *service) removeItem(c context.Context, cartID string, merchandiseID string) (cart Cart, err error) {
	defer func() {
		mymetrics.CartMutationsTotal.WithLabelValues("remove", mymetrics.Outcome(err)).Inc()
	}()

	unlock := s.locks.lock(cartID)
	defer unlock()

	cart, err = s.loadSnapshot(c, cartID)
	if err != nil {
		return Cart{}, err
	}

	existing, found := cart.lineByMerchandise(merchandiseID)
	if !found {
		s.logger.Log(c, cartID, mylog.SeverityInfo, "Merchandise %s not in cart %s: nothing to remove", merchandiseID, cartID)
		return cart, nil
	}

	s.logger.Log(c, cartID, mylog.SeverityInfo, "Remove %s from cart %s", merchandiseID, cartID)

	remote, err := s.client.RemoveLines(c, cart.ID, []string{existing.ID})
	if err != nil {
		return Cart{}, err
	}

	return s.storeSnapshot(c, remote, func(cart Cart) myevents.Event {
		return cartevents.LineRemoved{
			CartID:        cart.ID,
			MerchandiseID: merchandiseID,
			Quantity:      existing.Quantity,
			Totals:        totalsOf(cart),
			Timestamp:     s.nower.Now(),
		}
	})
}

func (s *service) loadSnapshot(c context.Context, cartID string) (Cart, error) {
	if cartID == "" {
		return Cart{}, myerrors.NewPreconditionFailedError(fmt.Errorf("cart not initialized"))
	}

	cart, found, err := s.cartStore.Get(c, cartID)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Cart{}, myerrors.NewPreconditionFailedError(fmt.Errorf("cart %s not initialized", cartID))
	}

	return cart, nil
}

// storeSnapshot replaces the snapshot with the remote cart and publishes the event describing the change.
// Only called after a successful remote call: a failed one never reaches the store.
func (s *service) storeSnapshot(c context.Context, remote storefrontclient.Cart, eventFor func(cart Cart) myevents.Event) (Cart, error) {
	cart, err := recomputeTotals(fromRemote(remote))
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}
	now := s.nower.Now()
	cart.LastModified = &now

	event := eventFor(cart)

	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		err := s.cartStore.Put(c, cart.ID, cart)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		if event != nil {
			err = s.publisher.Publish(c, cartevents.TopicName, event)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}

		return nil
	})
	if err != nil {
		return Cart{}, err
	}

	return cart, nil
}

func totalsOf(cart Cart) cartevents.Totals {
	return cartevents.Totals{
		TotalQuantity:  cart.TotalQuantity,
		SubtotalAmount: cart.Cost.SubtotalAmount.Amount,
		CurrencyCode:   cart.Cost.SubtotalAmount.CurrencyCode,
	}
}
