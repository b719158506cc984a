package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

const (
	defaultPageSize = 12
	maxPageSize     = 250
)

var sortKeys = []string{"COLLECTION_DEFAULT", "BEST_SELLING", "CREATED", "ID", "MANUAL", "PRICE", "RELEVANCE", "TITLE"}

func (s *service) getProduct(c context.Context, handle string) (storefrontclient.Product, error) {
	s.logger.Log(c, handle, mylog.SeverityInfo, "Fetch product %s", handle)

	product, found, err := cached(c, s, "product:"+handle, func() (storefrontclient.Product, bool, error) {
		return s.client.GetProductByHandle(c, handle)
	})
	if err != nil {
		return storefrontclient.Product{}, err
	}
	if !found {
		return storefrontclient.Product{}, myerrors.NewNotFoundError(fmt.Errorf("product with handle %s not found", handle))
	}

	return product, nil
}

func (s *service) selectVariant(c context.Context, handle string, selectedOptions map[string]string) (storefrontclient.Variant, error) {
	product, err := s.getProduct(c, handle)
	if err != nil {
		return storefrontclient.Variant{}, err
	}

	variant, found := findVariant(product, selectedOptions)
	if !found {
		return storefrontclient.Variant{}, myerrors.NewNotFoundError(fmt.Errorf("product %s has no variant with options %v", handle, selectedOptions))
	}

	return variant, nil
}

func (s *service) getProductsByIDs(c context.Context, ids []string) ([]storefrontclient.Product, error) {
	if len(ids) == 0 {
		return nil, myerrors.NewInvalidInputErrorf("missing product ids")
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch %d products", len(ids))

	products, _, err := cached(c, s, "products:"+strings.Join(ids, ","), func() ([]storefrontclient.Product, bool, error) {
		products, err := s.client.GetProductsByIDs(c, ids)
		return products, err == nil, err
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (s *service) getCollectionPage(c context.Context, req storefrontclient.CollectionProductsRequest) (storefrontclient.ProductConnection, error) {
	if req.CollectionID == "" {
		return storefrontclient.ProductConnection{}, myerrors.NewInvalidInputErrorf("missing collection id")
	}
	if req.First == 0 {
		req.First = defaultPageSize
	}
	if req.First < 0 || req.First > maxPageSize {
		return storefrontclient.ProductConnection{}, myerrors.NewInvalidInputErrorf("page size must be between 1 and %d, got %d", maxPageSize, req.First)
	}
	if req.SortKey != "" && !slices.Contains(sortKeys, req.SortKey) {
		return storefrontclient.ProductConnection{}, myerrors.NewInvalidInputErrorf("unsupported sort key %s", req.SortKey)
	}

	s.logger.Log(c, req.CollectionID, mylog.SeverityInfo, "Fetch page of collection %s after '%s'", req.CollectionID, req.After)

	key, err := json.Marshal(req)
	if err != nil {
		return storefrontclient.ProductConnection{}, myerrors.NewInternalError(err)
	}

	page, found, err := cached(c, s, "collection:"+string(key), func() (storefrontclient.ProductConnection, bool, error) {
		return s.client.GetCollectionProducts(c, req)
	})
	if err != nil {
		return storefrontclient.ProductConnection{}, err
	}
	if !found {
		return storefrontclient.ProductConnection{}, myerrors.NewNotFoundError(fmt.Errorf("collection %s not found", req.CollectionID))
	}

	return page, nil
}

func (s *service) getMetaobjects(c context.Context, metaobjectType string) ([]storefrontclient.Metaobject, error) {
	s.logger.Log(c, metaobjectType, mylog.SeverityInfo, "Fetch metaobjects of type %s", metaobjectType)

	metaobjects, _, err := cached(c, s, "metaobjects:"+metaobjectType, func() ([]storefrontclient.Metaobject, bool, error) {
		metaobjects, err := s.client.GetMetaobjects(c, metaobjectType)
		return metaobjects, err == nil, err
	})
	if err != nil {
		return nil, err
	}

	return metaobjects, nil
}
