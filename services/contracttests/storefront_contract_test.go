package contracttests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

const (
	shirtVariantID = "gid://shopify/ProductVariant/shirt-s"
	socksVariantID = "gid://shopify/ProductVariant/socks"
)

func TestFakeStorefront(t *testing.T) {
	StorefrontContract{
		api: func() storefrontclient.StorefrontClient {
			fake := NewFakeStorefront()
			fake.AddVariant(storefrontclient.Merchandise{
				ID:    shirtVariantID,
				Title: "S",
				Price: storefrontclient.Money{Amount: "10.0", CurrencyCode: "USD"},
			})
			fake.AddVariant(storefrontclient.Merchandise{
				ID:    socksVariantID,
				Title: "One size",
				Price: storefrontclient.Money{Amount: "2.5", CurrencyCode: "USD"},
			})
			return fake
		},
		variantID:      shirtVariantID,
		otherVariantID: socksVariantID,
	}.Test(t)

	t.Run("the fake refuses sold out merchandise", func(t *testing.T) {
		ctx := context.Background()
		fake := NewFakeStorefront()
		fake.AddVariant(storefrontclient.Merchandise{ID: shirtVariantID, Price: storefrontclient.Money{Amount: "10.0", CurrencyCode: "USD"}})
		fake.MarkSoldOut(shirtVariantID)

		cart, err := fake.CreateCart(ctx)
		assert.NoError(t, err)

		_, err = fake.AddLines(ctx, cart.ID, []storefrontclient.CartLineInput{{MerchandiseID: shirtVariantID, Quantity: 1}})
		assert.ErrorIs(t, err, ErrMerchandiseSoldOut)
		assert.Equal(t, 2, fake.MutationCalls())
	})

	t.Run("the fake can simulate an outage", func(t *testing.T) {
		ctx := context.Background()
		fake := NewFakeStorefront()
		fake.FailMutations(myerrors.NewUnavailableError(assert.AnError))

		_, err := fake.CreateCart(ctx)
		assert.Equal(t, http.StatusServiceUnavailable, myerrors.GetHTTPStatus(err))
	})
}

// StorefrontContract captures the behaviour of the remote storefront that the cart relies on.
type StorefrontContract struct {
	api            func() storefrontclient.StorefrontClient
	variantID      string
	otherVariantID string
}

func (c StorefrontContract) Test(t *testing.T) {
	t.Run("a new cart is empty", func(t *testing.T) {
		var (
			sut = c.api()
			ctx = context.Background()
		)

		cart, err := sut.CreateCart(ctx)
		assert.NoError(t, err)
		assert.NotEmpty(t, cart.ID)
		assert.NotEmpty(t, cart.CheckoutURL)
		assert.Empty(t, cart.Lines.Edges)
		assert.Equal(t, 0, cart.TotalQuantity)

		got, found, err := sut.GetCart(ctx, cart.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, cart.ID, got.ID)
	})

	t.Run("can add, update and remove lines", func(t *testing.T) {
		var (
			sut = c.api()
			ctx = context.Background()
		)

		cart, err := sut.CreateCart(ctx)
		assert.NoError(t, err)

		cart, err = sut.AddLines(ctx, cart.ID, []storefrontclient.CartLineInput{{MerchandiseID: c.variantID, Quantity: 2}})
		assert.NoError(t, err)
		assert.Len(t, cart.Lines.Edges, 1)
		assert.Equal(t, 2, cart.TotalQuantity)
		lineID := cart.Lines.Edges[0].Node.ID

		cart, err = sut.AddLines(ctx, cart.ID, []storefrontclient.CartLineInput{{MerchandiseID: c.otherVariantID, Quantity: 1}})
		assert.NoError(t, err)
		assert.Len(t, cart.Lines.Edges, 2)

		cart, err = sut.UpdateLines(ctx, cart.ID, []storefrontclient.CartLineUpdateInput{{ID: lineID, Quantity: 5}})
		assert.NoError(t, err)
		assert.Equal(t, 5, cart.Lines.Edges[0].Node.Quantity)
		assert.Equal(t, 6, cart.TotalQuantity)

		cart, err = sut.RemoveLines(ctx, cart.ID, []string{lineID})
		assert.NoError(t, err)
		assert.Len(t, cart.Lines.Edges, 1)
		assert.Equal(t, c.otherVariantID, cart.Lines.Edges[0].Node.Merchandise.ID)
		assert.Equal(t, 1, cart.TotalQuantity)
	})

	t.Run("lines of the same merchandise are merged", func(t *testing.T) {
		var (
			sut = c.api()
			ctx = context.Background()
		)

		cart, _ := sut.CreateCart(ctx)
		_, err := sut.AddLines(ctx, cart.ID, []storefrontclient.CartLineInput{{MerchandiseID: c.variantID, Quantity: 1}})
		assert.NoError(t, err)
		cart, err = sut.AddLines(ctx, cart.ID, []storefrontclient.CartLineInput{{MerchandiseID: c.variantID, Quantity: 2}})
		assert.NoError(t, err)

		assert.Len(t, cart.Lines.Edges, 1)
		assert.Equal(t, 3, cart.Lines.Edges[0].Node.Quantity)
	})

	t.Run("can recognize when a cart does not exist", func(t *testing.T) {
		var (
			sut = c.api()
			ctx = context.Background()
		)

		_, found, err := sut.GetCart(ctx, "gid://shopify/Cart/unknown")
		assert.NoError(t, err)
		assert.False(t, found)

		_, err = sut.AddLines(ctx, "gid://shopify/Cart/unknown", []storefrontclient.CartLineInput{{MerchandiseID: c.variantID, Quantity: 1}})
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
	})

	t.Run("unknown merchandise is rejected as invalid input", func(t *testing.T) {
		var (
			sut = c.api()
			ctx = context.Background()
		)

		cart, _ := sut.CreateCart(ctx)
		_, err := sut.AddLines(ctx, cart.ID, []storefrontclient.CartLineInput{{MerchandiseID: "gid://shopify/ProductVariant/unknown", Quantity: 1}})
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))

		got, _, _ := sut.GetCart(ctx, cart.ID)
		assert.Empty(t, got.Lines.Edges)
	})
}
