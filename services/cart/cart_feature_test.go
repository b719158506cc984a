package cart

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cucumber/godog"
	"github.com/google/go-cmp/cmp"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/contracttests"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

type recordingPublisher struct {
	sync.Mutex
	events []myevents.Event
}

func (p *recordingPublisher) CreateTopic(c context.Context, topicName string) error {
	return nil
}

func (p *recordingPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	p.Lock()
	defer p.Unlock()
	p.events = append(p.events, event)
	return nil
}

type cartFeature struct {
	ctx            context.Context
	remote         *contracttests.FakeStorefront
	publisher      *recordingPublisher
	sut            *service
	cartID         string
	cart           Cart
	before         Cart
	mutationsAfter int
	lastErr        error
}

func (f *cartFeature) reset() {
	f.ctx = context.Background()
	f.remote = contracttests.NewFakeStorefront()
	f.publisher = &recordingPublisher{}
	store, _, _ := mystore.NewInMemoryStore[Cart](f.ctx)
	f.sut = newService(store, f.remote, f.publisher, mytime.RealNower{}, mylog.New("cart"))
	f.cartID = ""
	f.cart = Cart{}
	f.before = Cart{}
	f.mutationsAfter = 0
	f.lastErr = nil
}

// Given

func (f *cartFeature) theStorefrontSells(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		f.remote.AddVariant(storefrontclient.Merchandise{
			ID:    row.Cells[0].Value,
			Title: row.Cells[0].Value,
			Price: storefrontclient.Money{Amount: row.Cells[1].Value, CurrencyCode: row.Cells[2].Value},
		})
	}
	return nil
}

func (f *cartFeature) iHaveAnEmptyCart() error {
	cart, _, err := f.sut.initialize(f.ctx, "")
	if err != nil {
		return err
	}
	f.cartID = cart.ID
	f.remember(cart)
	return nil
}

func (f *cartFeature) iHaveNoCart() error {
	f.cartID = ""
	return nil
}

func (f *cartFeature) iHaveAdded(quantity int, merchandiseID string) error {
	cart, err := f.sut.addItem(f.ctx, f.cartID, merchandiseID, quantity)
	if err != nil {
		return err
	}
	f.remember(cart)
	return nil
}

func (f *cartFeature) theStorefrontIsUnavailable() error {
	f.remote.FailMutations(myerrors.NewUnavailableError(fmt.Errorf("storefront is down")))
	return nil
}

// When

func (f *cartFeature) iAdd(quantity int, merchandiseID string) error {
	f.track(f.sut.addItem(f.ctx, f.cartID, merchandiseID, quantity))
	return nil
}

func (f *cartFeature) iUpdate(merchandiseID string, quantity int) error {
	f.track(f.sut.updateItem(f.ctx, f.cartID, merchandiseID, quantity))
	return nil
}

func (f *cartFeature) iRemove(merchandiseID string) error {
	f.track(f.sut.removeItem(f.ctx, f.cartID, merchandiseID))
	return nil
}

// Then

func (f *cartFeature) theCartHasLines(count int) error {
	if len(f.cart.Lines) != count {
		return fmt.Errorf("expected %d lines, got %d", count, len(f.cart.Lines))
	}
	return nil
}

func (f *cartFeature) theLineHasQuantityAndCost(merchandiseID string, quantity int, cost string) error {
	l, found := f.cart.lineByMerchandise(merchandiseID)
	if !found {
		return fmt.Errorf("no line for %s", merchandiseID)
	}
	if l.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, l.Quantity)
	}
	if l.Cost.Amount != cost {
		return fmt.Errorf("expected line cost %s, got %s", cost, l.Cost.Amount)
	}
	return nil
}

func (f *cartFeature) theSubtotalIs(amount string, currency string) error {
	got := f.cart.Cost.SubtotalAmount
	if got.Amount != amount || got.CurrencyCode != currency {
		return fmt.Errorf("expected subtotal %s %s, got %s %s", amount, currency, got.Amount, got.CurrencyCode)
	}
	if f.cart.Cost.TotalAmount != got {
		return fmt.Errorf("expected total to equal subtotal, got %v", f.cart.Cost.TotalAmount)
	}
	return nil
}

func (f *cartFeature) theTotalQuantityIs(quantity int) error {
	sum := 0
	for _, l := range f.cart.Lines {
		sum += l.Quantity
	}
	if f.cart.TotalQuantity != quantity || sum != quantity {
		return fmt.Errorf("expected total quantity %d, got %d (sum of lines %d)", quantity, f.cart.TotalQuantity, sum)
	}
	return nil
}

func (f *cartFeature) anEventWasPublished(eventTypeName string) error {
	f.publisher.Lock()
	defer f.publisher.Unlock()
	if len(f.publisher.events) == 0 {
		return fmt.Errorf("no events published")
	}
	last := f.publisher.events[len(f.publisher.events)-1]
	if last.GetEventTypeName() != eventTypeName {
		return fmt.Errorf("expected last event %s, got %s", eventTypeName, last.GetEventTypeName())
	}
	if last.GetAggregateName() != f.cartID {
		return fmt.Errorf("expected event for cart %s, got %s", f.cartID, last.GetAggregateName())
	}
	return nil
}

func (f *cartFeature) noRemoteMutationWasSent() error {
	if f.remote.MutationCalls() != f.mutationsAfter {
		return fmt.Errorf("expected %d remote mutations, got %d", f.mutationsAfter, f.remote.MutationCalls())
	}
	return nil
}

func (f *cartFeature) theCartIsUnchanged() error {
	stored, err := f.sut.getCart(f.ctx, f.cartID)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(f.before, stored); diff != "" {
		return fmt.Errorf("cart changed (-before +after):\n%s", diff)
	}
	return nil
}

func (f *cartFeature) theActionFailsWithStatus(status int) error {
	if f.lastErr == nil {
		return fmt.Errorf("expected failure with status %d, got success", status)
	}
	if got := myerrors.GetHTTPStatus(f.lastErr); got != status {
		return fmt.Errorf("expected status %d, got %d (%s)", status, got, f.lastErr)
	}
	return nil
}

func (f *cartFeature) remember(cart Cart) {
	f.cart = cart
	f.before = cart
	f.mutationsAfter = f.remote.MutationCalls()
}

func (f *cartFeature) track(cart Cart, err error) {
	f.lastErr = err
	if err == nil {
		f.cart = cart
	}
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &cartFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		f.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^the storefront sells:$`, f.theStorefrontSells)
	ctx.Step(`^I have an empty cart$`, f.iHaveAnEmptyCart)
	ctx.Step(`^I have no cart$`, f.iHaveNoCart)
	ctx.Step(`^I have added (\d+) of "([^"]*)"$`, f.iHaveAdded)
	ctx.Step(`^the storefront is unavailable$`, f.theStorefrontIsUnavailable)

	// When
	ctx.Step(`^I add (-?\d+) of "([^"]*)"$`, f.iAdd)
	ctx.Step(`^I update "([^"]*)" to (-?\d+)$`, f.iUpdate)
	ctx.Step(`^I remove "([^"]*)"$`, f.iRemove)

	// Then
	ctx.Step(`^the cart has (\d+) lines$`, f.theCartHasLines)
	ctx.Step(`^the line for "([^"]*)" has quantity (\d+) and cost "([^"]*)"$`, f.theLineHasQuantityAndCost)
	ctx.Step(`^the subtotal is "([^"]*)" "([^"]*)"$`, f.theSubtotalIs)
	ctx.Step(`^the total quantity is (\d+)$`, f.theTotalQuantityIs)
	ctx.Step(`^a "([^"]*)" event was published$`, f.anEventWasPublished)
	ctx.Step(`^no remote mutation was sent$`, f.noRemoteMutationWasSent)
	ctx.Step(`^the cart is unchanged$`, f.theCartIsUnchanged)
	ctx.Step(`^the action fails with status (\d+)$`, f.theActionFailsWithStatus)
}

func TestCartFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
