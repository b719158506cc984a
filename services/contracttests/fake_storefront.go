package contracttests

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

var (
	ErrMerchandiseDoesNotExist = errors.New("merchandise does not exist")
	ErrMerchandiseSoldOut      = errors.New("merchandise is out of stock")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrLineDoesNotExist        = errors.New("cart line does not exist")
	ErrCartDoesNotExist        = errors.New("cart does not exist")
	ErrUnidentifiedCustomer    = errors.New("unidentified customer")
)

// FakeStorefront behaves like the remote storefront API, backed by in-memory stores.
type FakeStorefront struct {
	sync.Mutex
	Carts       *mystore.InMemoryStore[storefrontclient.Cart]
	variants    map[string]storefrontclient.Merchandise
	soldOut     map[string]bool
	products    map[string]storefrontclient.Product
	metaobjects map[string][]storefrontclient.Metaobject
	collections map[string][]storefrontclient.Product
	customers   map[string]string
	sequence    int
	mutationErr error
	calls       int
}

func NewFakeStorefront() *FakeStorefront {
	store, _, _ := mystore.NewInMemoryStore[storefrontclient.Cart](context.Background())
	return &FakeStorefront{
		Carts:       store,
		variants:    map[string]storefrontclient.Merchandise{},
		soldOut:     map[string]bool{},
		products:    map[string]storefrontclient.Product{},
		metaobjects: map[string][]storefrontclient.Metaobject{},
		collections: map[string][]storefrontclient.Product{},
		customers:   map[string]string{},
	}
}

func (f *FakeStorefront) AddVariant(m storefrontclient.Merchandise) {
	f.Lock()
	defer f.Unlock()
	f.variants[m.ID] = m
}

func (f *FakeStorefront) MarkSoldOut(variantID string) {
	f.Lock()
	defer f.Unlock()
	f.soldOut[variantID] = true
}

func (f *FakeStorefront) AddProduct(p storefrontclient.Product, collectionIDs ...string) {
	f.Lock()
	defer f.Unlock()
	f.products[p.Handle] = p
	for _, id := range collectionIDs {
		f.collections[id] = append(f.collections[id], p)
	}
}

func (f *FakeStorefront) AddMetaobject(metaobjectType string, m storefrontclient.Metaobject) {
	f.Lock()
	defer f.Unlock()
	f.metaobjects[metaobjectType] = append(f.metaobjects[metaobjectType], m)
}

func (f *FakeStorefront) AddCustomer(email string, password string) {
	f.Lock()
	defer f.Unlock()
	f.customers[email] = password
}

// FailMutations makes every following cart mutation fail with err until called with nil.
func (f *FakeStorefront) FailMutations(err error) {
	f.Lock()
	defer f.Unlock()
	f.mutationErr = err
}

// MutationCalls returns the number of remote cart mutations received.
func (f *FakeStorefront) MutationCalls() int {
	f.Lock()
	defer f.Unlock()
	return f.calls
}

func (f *FakeStorefront) nextID(kind string) string {
	f.Lock()
	defer f.Unlock()
	f.sequence++
	return fmt.Sprintf("gid://shopify/%s/%d", kind, f.sequence)
}

func (f *FakeStorefront) beforeMutation() error {
	f.Lock()
	defer f.Unlock()
	f.calls++
	return f.mutationErr
}

func (f *FakeStorefront) variant(id string) (storefrontclient.Merchandise, bool, bool) {
	f.Lock()
	defer f.Unlock()
	m, found := f.variants[id]
	return m, found, f.soldOut[id]
}

func (f *FakeStorefront) CreateCart(c context.Context) (storefrontclient.Cart, error) {
	err := f.beforeMutation()
	if err != nil {
		return storefrontclient.Cart{}, err
	}

	id := f.nextID("Cart")
	cart := recalculate(storefrontclient.Cart{
		ID:          id,
		CheckoutURL: "https://shop.example.com/cart/c/" + id,
		Lines:       storefrontclient.CartLineConnection{Edges: []storefrontclient.CartLineEdge{}},
	})
	err = f.Carts.Put(c, id, cart)
	if err != nil {
		return storefrontclient.Cart{}, myerrors.NewInternalError(err)
	}
	return cart, nil
}

func (f *FakeStorefront) GetCart(c context.Context, cartID string) (storefrontclient.Cart, bool, error) {
	return f.Carts.Get(c, cartID)
}

func (f *FakeStorefront) mutate(c context.Context, cartID string, mutation func(cart *storefrontclient.Cart) error) (storefrontclient.Cart, error) {
	err := f.beforeMutation()
	if err != nil {
		return storefrontclient.Cart{}, err
	}

	var cart storefrontclient.Cart
	err = f.Carts.RunInTransaction(c, func(c context.Context) error {
		var found bool
		cart, found, err = f.Carts.Get(c, cartID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewInvalidInputError(ErrCartDoesNotExist)
		}
		cart.Lines.Edges = append([]storefrontclient.CartLineEdge{}, cart.Lines.Edges...)

		err = mutation(&cart)
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}

		cart = recalculate(cart)
		return f.Carts.Put(c, cartID, cart)
	})
	if err != nil {
		return storefrontclient.Cart{}, err
	}
	return cart, nil
}

func (f *FakeStorefront) AddLines(c context.Context, cartID string, lines []storefrontclient.CartLineInput) (storefrontclient.Cart, error) {
	return f.mutate(c, cartID, func(cart *storefrontclient.Cart) error {
		for _, l := range lines {
			merchandise, found, soldOut := f.variant(l.MerchandiseID)
			if !found {
				return ErrMerchandiseDoesNotExist
			}
			if soldOut {
				return ErrMerchandiseSoldOut
			}
			if l.Quantity <= 0 {
				return ErrInvalidQuantity
			}

			// the remote platform merges lines of the same merchandise
			idx := lineIndexByMerchandise(*cart, l.MerchandiseID)
			if idx >= 0 {
				cart.Lines.Edges[idx].Node.Quantity += l.Quantity
				continue
			}
			cart.Lines.Edges = append(cart.Lines.Edges, storefrontclient.CartLineEdge{
				Node: storefrontclient.CartLine{
					ID:          f.nextID("CartLine"),
					Quantity:    l.Quantity,
					Merchandise: merchandise,
				},
			})
		}
		return nil
	})
}

func (f *FakeStorefront) UpdateLines(c context.Context, cartID string, lines []storefrontclient.CartLineUpdateInput) (storefrontclient.Cart, error) {
	return f.mutate(c, cartID, func(cart *storefrontclient.Cart) error {
		for _, l := range lines {
			idx := lineIndexByID(*cart, l.ID)
			if idx < 0 {
				return ErrLineDoesNotExist
			}
			if l.Quantity <= 0 {
				cart.Lines.Edges = append(cart.Lines.Edges[:idx], cart.Lines.Edges[idx+1:]...)
				continue
			}
			cart.Lines.Edges[idx].Node.Quantity = l.Quantity
		}
		return nil
	})
}

func (f *FakeStorefront) RemoveLines(c context.Context, cartID string, lineIDs []string) (storefrontclient.Cart, error) {
	return f.mutate(c, cartID, func(cart *storefrontclient.Cart) error {
		for _, id := range lineIDs {
			idx := lineIndexByID(*cart, id)
			if idx < 0 {
				return ErrLineDoesNotExist
			}
			cart.Lines.Edges = append(cart.Lines.Edges[:idx], cart.Lines.Edges[idx+1:]...)
		}
		return nil
	})
}

func (f *FakeStorefront) GetProductByHandle(c context.Context, handle string) (storefrontclient.Product, bool, error) {
	f.Lock()
	defer f.Unlock()
	p, found := f.products[handle]
	return p, found, nil
}

func (f *FakeStorefront) GetCollectionProducts(c context.Context, req storefrontclient.CollectionProductsRequest) (storefrontclient.ProductConnection, bool, error) {
	f.Lock()
	defer f.Unlock()

	products, found := f.collections[req.CollectionID]
	if !found {
		return storefrontclient.ProductConnection{}, false, nil
	}

	start := 0
	if req.After != "" {
		for i, p := range products {
			if p.ID == req.After {
				start = i + 1
				break
			}
		}
	}
	end := start + req.First
	if req.First <= 0 || end > len(products) {
		end = len(products)
	}

	page := storefrontclient.ProductConnection{
		Edges: []storefrontclient.ProductEdge{},
		PageInfo: storefrontclient.PageInfo{
			HasNextPage:     end < len(products),
			HasPreviousPage: start > 0,
		},
	}
	for _, p := range products[start:end] {
		page.Edges = append(page.Edges, storefrontclient.ProductEdge{Node: p, Cursor: p.ID})
	}
	if len(page.Edges) > 0 {
		page.PageInfo.StartCursor = page.Edges[0].Cursor
		page.PageInfo.EndCursor = page.Edges[len(page.Edges)-1].Cursor
	}
	return page, true, nil
}

func (f *FakeStorefront) GetProductsByIDs(c context.Context, ids []string) ([]storefrontclient.Product, error) {
	f.Lock()
	defer f.Unlock()

	result := []storefrontclient.Product{}
	for _, id := range ids {
		for _, p := range f.products {
			if p.ID == id {
				result = append(result, p)
			}
		}
	}
	return result, nil
}

func (f *FakeStorefront) GetMetaobjects(c context.Context, metaobjectType string) ([]storefrontclient.Metaobject, error) {
	f.Lock()
	defer f.Unlock()
	return append([]storefrontclient.Metaobject{}, f.metaobjects[metaobjectType]...), nil
}

func (f *FakeStorefront) CreateCustomerAccessToken(c context.Context, email string, password string) (storefrontclient.CustomerAccessToken, error) {
	f.Lock()
	defer f.Unlock()

	expected, found := f.customers[email]
	if !found || expected != password {
		return storefrontclient.CustomerAccessToken{}, myerrors.NewAuthenticationError(ErrUnidentifiedCustomer)
	}
	return storefrontclient.CustomerAccessToken{
		AccessToken: fmt.Sprintf("token-%d", len(email)),
		ExpiresAt:   "2099-01-01T00:00:00Z",
	}, nil
}

func lineIndexByMerchandise(cart storefrontclient.Cart, merchandiseID string) int {
	for i, e := range cart.Lines.Edges {
		if e.Node.Merchandise.ID == merchandiseID {
			return i
		}
	}
	return -1
}

func lineIndexByID(cart storefrontclient.Cart, lineID string) int {
	for i, e := range cart.Lines.Edges {
		if e.Node.ID == lineID {
			return i
		}
	}
	return -1
}

// recalculate mimics the remote platform: amounts without trailing zeros.
func recalculate(cart storefrontclient.Cart) storefrontclient.Cart {
	subtotal := decimal.Zero
	currency := "USD"
	quantity := 0
	for i, e := range cart.Lines.Edges {
		price, _ := decimal.NewFromString(e.Node.Merchandise.Price.Amount)
		lineTotal := price.Mul(decimal.NewFromInt(int64(e.Node.Quantity)))
		cart.Lines.Edges[i].Node.Cost.TotalAmount = storefrontclient.Money{
			Amount:       lineTotal.String(),
			CurrencyCode: e.Node.Merchandise.Price.CurrencyCode,
		}
		if i == 0 {
			currency = e.Node.Merchandise.Price.CurrencyCode
		}
		subtotal = subtotal.Add(lineTotal)
		quantity += e.Node.Quantity
	}
	cart.TotalQuantity = quantity
	cart.Cost = storefrontclient.CartCost{
		SubtotalAmount: storefrontclient.Money{Amount: subtotal.String(), CurrencyCode: currency},
		TotalAmount:    storefrontclient.Money{Amount: subtotal.String(), CurrencyCode: currency},
	}
	return cart
}
