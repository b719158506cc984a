package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/contracttests"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

const (
	shirtID = "gid://shopify/ProductVariant/shirt"
	socksID = "gid://shopify/ProductVariant/socks"
)

func TestCartWebService(t *testing.T) {

	t.Run("Initialize without remembered cart creates one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, remote, publisher := setup(t, ctrl)

		// given
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.CartCreated{})).Return(nil)

		// when
		response := doRequest(router, http.MethodPost, "/api/cart", "", nil)

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		cart := parseCart(t, response)
		assert.NotEmpty(t, cart.ID)
		assert.Equal(t, "0.00", cart.Cost.SubtotalAmount.Amount)
		assert.Equal(t, "USD", cart.Cost.SubtotalAmount.CurrencyCode)
		assert.Equal(t, 0, cart.TotalQuantity)

		cookie := cartCookie(response)
		assert.NotNil(t, cookie)
		assert.Equal(t, cart.ID, cookie.Value)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, 30*24*60*60, cookie.MaxAge)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

		stored, found, _ := storer.Get(ctx, cart.ID)
		assert.True(t, found)
		assert.Equal(t, cart.ID, stored.ID)
		assert.Equal(t, 1, remote.MutationCalls())
	})

	t.Run("Initialize with remembered cart refreshes the snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, remote, _ := setup(t, ctrl)

		// given
		remoteCart, _ := remote.CreateCart(ctx)
		_, err := remote.AddLines(ctx, remoteCart.ID, []storefrontclient.CartLineInput{{MerchandiseID: shirtID, Quantity: 2}})
		assert.NoError(t, err)

		// when
		response := doRequest(router, http.MethodPost, "/api/cart", remoteCart.ID, nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Nil(t, cartCookie(response))
		cart := parseCart(t, response)
		assert.Equal(t, remoteCart.ID, cart.ID)
		assert.Equal(t, 2, cart.TotalQuantity)
		assert.Equal(t, "20.00", cart.Cost.SubtotalAmount.Amount)

		stored, found, _ := storer.Get(ctx, remoteCart.ID)
		assert.True(t, found)
		assert.Equal(t, 2, stored.TotalQuantity)
	})

	t.Run("Initialize with expired cart creates a new one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, publisher := setup(t, ctrl)

		// given
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.CartCreated{})).Return(nil)

		// when
		response := doRequest(router, http.MethodPost, "/api/cart", "gid://shopify/Cart/expired", nil)

		// then
		assert.Equal(t, http.StatusCreated, response.Code)
		cart := parseCart(t, response)
		assert.NotEqual(t, "gid://shopify/Cart/expired", cart.ID)
		cookie := cartCookie(response)
		assert.NotNil(t, cookie)
		assert.Equal(t, cart.ID, cookie.Value)
	})

	t.Run("Initialize when remote is down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, remote, _ := setup(t, ctrl)

		// given
		remote.FailMutations(myerrors.NewUnavailableError(assert.AnError))

		// when
		response := doRequest(router, http.MethodPost, "/api/cart", "", nil)

		// then
		assert.Equal(t, http.StatusServiceUnavailable, response.Code)
		assert.Nil(t, cartCookie(response))
	})

	t.Run("Get cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)

		// when
		response := doRequest(router, http.MethodGet, "/api/cart", cartID, nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, cartID, parseCart(t, response).ID)
	})

	t.Run("Get cart not initialized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := doRequest(router, http.MethodGet, "/api/cart", "", nil)

		// then
		assert.Equal(t, http.StatusPreconditionFailed, response.Code)
	})

	t.Run("Add item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.LineAdded{
			CartID:        cartID,
			MerchandiseID: shirtID,
			Quantity:      2,
			Totals:        cartevents.Totals{TotalQuantity: 2, SubtotalAmount: "20.00", CurrencyCode: "USD"},
			Timestamp:     mytime.ExampleTime,
		}).Return(nil)

		// when
		response := doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, "2"))

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		cart := parseCart(t, response)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
		assert.Equal(t, "20.00", cart.Lines[0].Cost.Amount)
		assert.Equal(t, "20.00", cart.Cost.SubtotalAmount.Amount)
		assert.Equal(t, "20.00", cart.Cost.TotalAmount.Amount)
		assert.Nil(t, cart.Cost.TotalTaxAmount)
		assert.Equal(t, 2, cart.TotalQuantity)

		stored, _, _ := storer.Get(ctx, cartID)
		assert.Equal(t, cart.Lines, stored.Lines)
		assert.Equal(t, mytime.ExampleTime, *stored.LastModified)
	})

	t.Run("Add same item twice merges the line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.Any()).Return(nil).Times(2)
		doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, "1"))

		// when
		response := doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, "3"))

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		cart := parseCart(t, response)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 4, cart.Lines[0].Quantity)
		assert.Equal(t, "40.00", cart.Cost.SubtotalAmount.Amount)
	})

	t.Run("Add item with invalid quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, remote, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		callsBefore := remote.MutationCalls()

		for _, quantity := range []string{"0", "-1", "abc"} {
			// when
			response := doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, quantity))

			// then
			assert.Equal(t, http.StatusBadRequest, response.Code, quantity)
		}
		assert.Equal(t, callsBefore, remote.MutationCalls())
	})

	t.Run("Add item without cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, remote, _ := setup(t, ctrl)

		// when
		response := doRequest(router, http.MethodPost, "/api/cart/lines", "", lineForm(shirtID, "1"))

		// then
		assert.Equal(t, http.StatusPreconditionFailed, response.Code)
		assert.Equal(t, 0, remote.MutationCalls())
	})

	t.Run("Add unknown merchandise", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		before, _, _ := storer.Get(ctx, cartID)

		// when
		response := doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm("gid://shopify/ProductVariant/unknown", "1"))

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		after, _, _ := storer.Get(ctx, cartID)
		assert.Equal(t, before, after)
	})

	t.Run("Update item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.LineAdded{})).Return(nil)
		doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(socksID, "3"))
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.LineUpdated{
			CartID:        cartID,
			MerchandiseID: socksID,
			OldQuantity:   3,
			Quantity:      1,
			Totals:        cartevents.Totals{TotalQuantity: 1, SubtotalAmount: "5.00", CurrencyCode: "USD"},
			Timestamp:     mytime.ExampleTime,
		}).Return(nil)

		// when
		response := doRequest(router, http.MethodPut, "/api/cart/lines", cartID, lineForm(socksID, "1"))

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		cart := parseCart(t, response)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
		assert.Equal(t, "5.00", cart.Lines[0].Cost.Amount)
		assert.Equal(t, "5.00", cart.Cost.SubtotalAmount.Amount)
	})

	t.Run("Update item to zero removes the line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.LineAdded{})).Return(nil).Times(2)
		doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, "1"))
		doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(socksID, "2"))
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.LineRemoved{})).Return(nil)

		// when
		response := doRequest(router, http.MethodPut, "/api/cart/lines", cartID, lineForm(shirtID, "0"))

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		cart := parseCart(t, response)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, socksID, cart.Lines[0].Merchandise.ID)
		assert.Equal(t, 2, cart.TotalQuantity)
		assert.Equal(t, "10.00", cart.Cost.SubtotalAmount.Amount)
	})

	t.Run("Update item without quantity is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		c, router, storer, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.LineAdded{})).Return(nil)
		doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, "3"))

		// when
		response := doRequest(router, http.MethodPut, "/api/cart/lines", cartID, url.Values{
			"merchandiseId": []string{shirtID},
		})

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Contains(t, response.Body.String(), "missing quantity")
		snapshot, found, err := storer.Get(c, cartID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Len(t, snapshot.Lines, 1)
		assert.Equal(t, 3, snapshot.TotalQuantity)
	})

	t.Run("Add item without quantity is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)

		// when
		response := doRequest(router, http.MethodPost, "/api/cart/lines", cartID, url.Values{
			"merchandiseId": []string{shirtID},
		})

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("Update unknown item is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, remote, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		callsBefore := remote.MutationCalls()

		// when
		response := doRequest(router, http.MethodPut, "/api/cart/lines", cartID, lineForm(shirtID, "5"))

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Empty(t, parseCart(t, response).Lines)
		assert.Equal(t, callsBefore, remote.MutationCalls())
	})

	t.Run("Remove item", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.LineAdded{})).Return(nil)
		doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, "2"))
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.LineRemoved{
			CartID:        cartID,
			MerchandiseID: shirtID,
			Quantity:      2,
			Totals:        cartevents.Totals{TotalQuantity: 0, SubtotalAmount: "0.00", CurrencyCode: "USD"},
			Timestamp:     mytime.ExampleTime,
		}).Return(nil)

		// when
		response := doRequest(router, http.MethodDelete, "/api/cart/lines?merchandiseId="+url.QueryEscape(shirtID), cartID, nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		cart := parseCart(t, response)
		assert.Empty(t, cart.Lines)
		assert.Equal(t, 0, cart.TotalQuantity)
		assert.Equal(t, "0.00", cart.Cost.SubtotalAmount.Amount)

		stored, _, _ := storer.Get(ctx, cartID)
		assert.Empty(t, stored.Lines)
	})

	t.Run("Remove unknown item is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, remote, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		before, _, _ := storer.Get(ctx, cartID)
		callsBefore := remote.MutationCalls()

		// when
		response := doRequest(router, http.MethodDelete, "/api/cart/lines?merchandiseId="+url.QueryEscape(socksID), cartID, nil)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		after, _, _ := storer.Get(ctx, cartID)
		assert.Equal(t, before, after)
		assert.Equal(t, callsBefore, remote.MutationCalls())
	})

	t.Run("Remove without merchandise id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)

		// when
		response := doRequest(router, http.MethodDelete, "/api/cart/lines", cartID, nil)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("Failed remote mutation leaves snapshot untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, storer, remote, publisher := setup(t, ctrl)

		// given
		cartID := initializeCart(t, router, publisher)
		before, _, _ := storer.Get(ctx, cartID)
		remote.FailMutations(myerrors.NewUnavailableError(assert.AnError))

		// when
		response := doRequest(router, http.MethodPost, "/api/cart/lines", cartID, lineForm(shirtID, "1"))

		// then
		assert.Equal(t, http.StatusServiceUnavailable, response.Code)
		after, _, _ := storer.Get(ctx, cartID)
		assert.Equal(t, before, after)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[Cart], *contracttests.FakeStorefront, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, err := mystore.NewInMemoryStore[Cart](c)
	assert.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	publisher := mypublisher.NewMockPublisher(ctrl)
	remote := newRemote()

	sut := NewService(storer, remote, publisher, nower, false)
	router := mux.NewRouter()

	// This is called by the following call to RegisterEndpoints()
	publisher.EXPECT().CreateTopic(c, cartevents.TopicName).Return(nil)

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, remote, publisher
}

func newRemote() *contracttests.FakeStorefront {
	remote := contracttests.NewFakeStorefront()
	remote.AddVariant(storefrontclient.Merchandise{
		ID:    shirtID,
		Title: "M / Blue",
		Price: storefrontclient.Money{Amount: "10.0", CurrencyCode: "USD"},
		SelectedOptions: []storefrontclient.SelectedOption{
			{Name: "Size", Value: "M"},
			{Name: "Color", Value: "Blue"},
		},
		Product: storefrontclient.CartProduct{
			ID:     "gid://shopify/Product/shirt",
			Title:  "Shirt",
			Handle: "shirt",
			Vendor: "Acme",
		},
	})
	remote.AddVariant(storefrontclient.Merchandise{
		ID:    socksID,
		Title: "One size",
		Price: storefrontclient.Money{Amount: "5", CurrencyCode: "USD"},
		Product: storefrontclient.CartProduct{
			ID:     "gid://shopify/Product/socks",
			Title:  "Socks",
			Handle: "socks",
		},
	})
	return remote
}

func initializeCart(t *testing.T, router *mux.Router, publisher *mypublisher.MockPublisher) string {
	publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, gomock.AssignableToTypeOf(cartevents.CartCreated{})).Return(nil)

	response := doRequest(router, http.MethodPost, "/api/cart", "", nil)
	assert.Equal(t, http.StatusCreated, response.Code)

	return parseCart(t, response).ID
}

func lineForm(merchandiseID string, quantity string) url.Values {
	return url.Values{
		"merchandiseId": []string{merchandiseID},
		"quantity":      []string{quantity},
	}
}

func doRequest(router *mux.Router, method string, path string, cartID string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	request := httptest.NewRequest(method, path, body)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cartID != "" {
		request.AddCookie(&http.Cookie{Name: CartCookieName, Value: cartID})
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func parseCart(t *testing.T, response *httptest.ResponseRecorder) Cart {
	cart := Cart{}
	err := json.Unmarshal(response.Body.Bytes(), &cart)
	assert.NoError(t, err)
	return cart
}

func cartCookie(response *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range response.Result().Cookies() {
		if c.Name == CartCookieName {
			return c
		}
	}
	return nil
}
