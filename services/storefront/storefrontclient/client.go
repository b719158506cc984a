package storefrontclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mymetrics"
)

const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

//go:generate mockgen -source=client.go -package storefrontclient -destination storefront_client_mock.go StorefrontClient
type StorefrontClient interface {
	CreateCart(c context.Context) (Cart, error)
	GetCart(c context.Context, cartID string) (Cart, bool, error)
	AddLines(c context.Context, cartID string, lines []CartLineInput) (Cart, error)
	UpdateLines(c context.Context, cartID string, lines []CartLineUpdateInput) (Cart, error)
	RemoveLines(c context.Context, cartID string, lineIDs []string) (Cart, error)
	GetProductByHandle(c context.Context, handle string) (Product, bool, error)
	GetCollectionProducts(c context.Context, req CollectionProductsRequest) (ProductConnection, bool, error)
	GetProductsByIDs(c context.Context, ids []string) ([]Product, error)
	GetMetaobjects(c context.Context, metaobjectType string) ([]Metaobject, error)
	CreateCustomerAccessToken(c context.Context, email string, password string) (CustomerAccessToken, error)
}

type GraphQLRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type storefrontClient struct {
	url    string
	sender myhttpclient.HTTPSender
	logger mylog.Logger
}

func GraphQLURL(endpoint string, apiVersion string) string {
	return fmt.Sprintf("%s/api/%s/graphql.json", strings.TrimSuffix(endpoint, "/"), apiVersion)
}

func New(endpoint string, apiVersion string, accessToken string) *storefrontClient {
	return &storefrontClient{
		url: GraphQLURL(endpoint, apiVersion),
		sender: myhttpclient.New(map[string]string{
			accessTokenHeader: accessToken,
		}),
		logger: mylog.New("storefrontclient"),
	}
}

func (sc *storefrontClient) execute(c context.Context, operation string, query string, variables map[string]any, data any) (err error) {
	start := time.Now()
	defer func() {
		mymetrics.RemoteCallDuration.WithLabelValues(operation, mymetrics.Outcome(err)).Observe(time.Since(start).Seconds())
	}()

	reqBody, err := json.Marshal(GraphQLRequest{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error marshalling %s request: %w", operation, err))
	}

	httpRespCode, respBody, err := sc.sender.Send(c, http.MethodPost, sc.url, reqBody)
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("error calling storefront %s: %w", operation, err))
	}

	if httpRespCode < 200 || httpRespCode >= 300 {
		return myerrors.NewUnavailableError(fmt.Errorf("error calling storefront %s: http-status %d", operation, httpRespCode))
	}

	resp := GraphQLResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error parsing %s response: %w", operation, err))
	}

	if len(resp.Errors) > 0 {
		return myerrors.NewInternalError(fmt.Errorf("storefront %s failed: %s", operation, resp.Errors[0].Message))
	}

	err = json.Unmarshal(resp.Data, data)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error parsing %s data: %w", operation, err))
	}

	sc.logger.Log(c, "", mylog.SeverityDebug, "Storefront %s succeeded", operation)

	return nil
}

type cartPayload struct {
	Cart       *Cart       `json:"cart"`
	UserErrors []UserError `json:"userErrors"`
}

func (sc *storefrontClient) mutateCart(c context.Context, operation string, query string, field string, variables map[string]any) (Cart, error) {
	data := map[string]cartPayload{}
	err := sc.execute(c, operation, query, variables, &data)
	if err != nil {
		return Cart{}, err
	}

	payload := data[field]
	if len(payload.UserErrors) > 0 {
		return Cart{}, myerrors.NewInvalidInputError(fmt.Errorf("storefront %s rejected: %s", operation, joinMessages(payload.UserErrors)))
	}
	if payload.Cart == nil {
		return Cart{}, myerrors.NewInternalError(fmt.Errorf("storefront %s returned no cart", operation))
	}

	return *payload.Cart, nil
}

func joinMessages(userErrors []UserError) string {
	msgs := make([]string, 0, len(userErrors))
	for _, ue := range userErrors {
		msgs = append(msgs, ue.Message)
	}
	return strings.Join(msgs, "; ")
}

func (sc *storefrontClient) CreateCart(c context.Context) (Cart, error) {
	return sc.mutateCart(c, "CreateCart", createCartMutation, "cartCreate", map[string]any{
		"lineItems": []CartLineInput{},
	})
}

func (sc *storefrontClient) GetCart(c context.Context, cartID string) (Cart, bool, error) {
	data := struct {
		Cart *Cart `json:"cart"`
	}{}
	err := sc.execute(c, "GetCart", getCartQuery, map[string]any{"cartId": cartID}, &data)
	if err != nil {
		return Cart{}, false, err
	}
	if data.Cart == nil {
		return Cart{}, false, nil
	}
	return *data.Cart, true, nil
}

func (sc *storefrontClient) AddLines(c context.Context, cartID string, lines []CartLineInput) (Cart, error) {
	return sc.mutateCart(c, "AddToCart", addToCartMutation, "cartLinesAdd", map[string]any{
		"cartId": cartID,
		"lines":  lines,
	})
}

func (sc *storefrontClient) UpdateLines(c context.Context, cartID string, lines []CartLineUpdateInput) (Cart, error) {
	return sc.mutateCart(c, "UpdateCartItems", updateCartItemsMutation, "cartLinesUpdate", map[string]any{
		"cartId": cartID,
		"lines":  lines,
	})
}

func (sc *storefrontClient) RemoveLines(c context.Context, cartID string, lineIDs []string) (Cart, error) {
	return sc.mutateCart(c, "RemoveFromCart", removeFromCartMutation, "cartLinesRemove", map[string]any{
		"cartId":  cartID,
		"lineIds": lineIDs,
	})
}

func (sc *storefrontClient) GetProductByHandle(c context.Context, handle string) (Product, bool, error) {
	data := struct {
		Product *Product `json:"product"`
	}{}
	err := sc.execute(c, "GetProductByHandle", getProductByHandleQuery, map[string]any{"handle": handle}, &data)
	if err != nil {
		return Product{}, false, err
	}
	if data.Product == nil {
		return Product{}, false, nil
	}
	return *data.Product, true, nil
}

func (sc *storefrontClient) GetCollectionProducts(c context.Context, req CollectionProductsRequest) (ProductConnection, bool, error) {
	variables := map[string]any{
		"id":      req.CollectionID,
		"first":   req.First,
		"reverse": req.Reverse,
	}
	if req.After != "" {
		variables["after"] = req.After
	}
	if req.SortKey != "" {
		variables["sortKey"] = req.SortKey
	}
	if len(req.Filters) > 0 {
		variables["filters"] = req.Filters
	}

	data := struct {
		Collection *struct {
			Products ProductConnection `json:"products"`
		} `json:"collection"`
	}{}
	err := sc.execute(c, "GetCollectionById", getCollectionByIDWithPaginationQuery, variables, &data)
	if err != nil {
		return ProductConnection{}, false, err
	}
	if data.Collection == nil {
		return ProductConnection{}, false, nil
	}
	return data.Collection.Products, true, nil
}

func (sc *storefrontClient) GetProductsByIDs(c context.Context, ids []string) ([]Product, error) {
	data := struct {
		Nodes []*Product `json:"nodes"`
	}{}
	err := sc.execute(c, "GetProductsByIds", getProductsByIDsQuery, map[string]any{"ids": ids}, &data)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(data.Nodes))
	for _, p := range data.Nodes {
		// unknown ids and non-product nodes
		if p == nil || p.ID == "" {
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

func (sc *storefrontClient) GetMetaobjects(c context.Context, metaobjectType string) ([]Metaobject, error) {
	data := struct {
		Metaobjects struct {
			Edges []struct {
				Node Metaobject `json:"node"`
			} `json:"edges"`
		} `json:"metaobjects"`
	}{}
	err := sc.execute(c, "GetMetaobjects", getMetaobjectsQuery, map[string]any{"type": metaobjectType}, &data)
	if err != nil {
		return nil, err
	}

	metaobjects := make([]Metaobject, 0, len(data.Metaobjects.Edges))
	for _, e := range data.Metaobjects.Edges {
		metaobjects = append(metaobjects, e.Node)
	}
	return metaobjects, nil
}

func (sc *storefrontClient) CreateCustomerAccessToken(c context.Context, email string, password string) (CustomerAccessToken, error) {
	data := struct {
		CustomerAccessTokenCreate struct {
			CustomerAccessToken *CustomerAccessToken `json:"customerAccessToken"`
			CustomerUserErrors  []UserError          `json:"customerUserErrors"`
		} `json:"customerAccessTokenCreate"`
	}{}
	err := sc.execute(c, "CustomerAccessTokenCreate", customerAccessTokenCreateMutation, map[string]any{
		"input": map[string]string{
			"email":    email,
			"password": password,
		},
	}, &data)
	if err != nil {
		return CustomerAccessToken{}, err
	}

	payload := data.CustomerAccessTokenCreate
	if len(payload.CustomerUserErrors) > 0 {
		return CustomerAccessToken{}, myerrors.NewAuthenticationError(fmt.Errorf("%s", payload.CustomerUserErrors[0].Message))
	}
	if payload.CustomerAccessToken == nil {
		return CustomerAccessToken{}, myerrors.NewInternalError(fmt.Errorf("storefront returned no customer access token"))
	}
	return *payload.CustomerAccessToken, nil
}
