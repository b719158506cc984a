package catalog

import (
	"context"
	"net/http"
	"strings"
	"time"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycache"
	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

type CollectionQuery struct {
	ID          string   `form:"id"`
	After       string   `form:"after"`
	First       int      `form:"first"`
	SortKey     string   `form:"sortKey"`
	Reverse     bool     `form:"reverse"`
	Available   *bool    `form:"available"`
	Vendor      string   `form:"vendor"`
	ProductType string   `form:"productType"`
	MinPrice    *float64 `form:"minPrice"`
	MaxPrice    *float64 `form:"maxPrice"`
}

func (q CollectionQuery) toRequest() storefrontclient.CollectionProductsRequest {
	req := storefrontclient.CollectionProductsRequest{
		CollectionID: q.ID,
		First:        q.First,
		After:        q.After,
		SortKey:      q.SortKey,
		Reverse:      q.Reverse,
		Filters:      []storefrontclient.ProductFilter{},
	}
	if q.Available != nil {
		req.Filters = append(req.Filters, storefrontclient.ProductFilter{Available: q.Available})
	}
	if q.Vendor != "" {
		req.Filters = append(req.Filters, storefrontclient.ProductFilter{ProductVendor: q.Vendor})
	}
	if q.ProductType != "" {
		req.Filters = append(req.Filters, storefrontclient.ProductFilter{ProductType: q.ProductType})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		req.Filters = append(req.Filters, storefrontclient.ProductFilter{Price: &storefrontclient.PriceFilter{Min: q.MinPrice, Max: q.MaxPrice}})
	}
	return req
}

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewService(client storefrontclient.StorefrontClient, cache mycache.Cache, ttl time.Duration) *webService {
	logger := mylog.New("catalog")
	return &webService{
		service: newService(client, cache, ttl, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/products", s.productsPage()).Methods("GET")
	router.HandleFunc("/api/products/{handle}", s.productPage()).Methods("GET")
	router.HandleFunc("/api/products/{handle}/variant", s.variantPage()).Methods("GET")
	router.HandleFunc("/api/collection/products", s.collectionPage()).Methods("GET")
	router.HandleFunc("/api/metaobjects/{type}", s.metaobjectsPage()).Methods("GET")
}

func (s *webService) productPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProduct(c, mux.Vars(r)["handle"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) variantPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		selectedOptions := map[string]string{}
		for name, values := range r.URL.Query() {
			if len(values) > 0 {
				selectedOptions[name] = values[0]
			}
		}

		variant, err := s.service.selectVariant(c, mux.Vars(r)["handle"], selectedOptions)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, variant)
	}
}

func (s *webService) productsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		ids := []string{}
		for _, v := range r.URL.Query()["ids"] {
			for _, id := range strings.Split(v, ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
		}

		products, err := s.service.getProductsByIDs(c, ids)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) collectionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		query := CollectionQuery{}
		err := formcodec.NewDecoder().Decode(&query, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 4, myerrors.NewInvalidInputError(err))
			return
		}

		page, err := s.service.getCollectionPage(c, query.toRequest())
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, page)
	}
}

func (s *webService) metaobjectsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		metaobjects, err := s.service.getMetaobjects(c, mux.Vars(r)["type"])
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, metaobjects)
	}
}
