package storefrontclient

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type ImageEdge struct {
	Node Image `json:"node"`
}

type ImageConnection struct {
	Edges []ImageEdge `json:"edges"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Cart

type CartProduct struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Vendor      string          `json:"vendor"`
	Handle      string          `json:"handle"`
	Images      ImageConnection `json:"images"`
}

type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Price           Money            `json:"price"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         CartProduct      `json:"product"`
}

type CartLineCost struct {
	TotalAmount Money `json:"totalAmount"`
}

type CartLine struct {
	ID          string       `json:"id"`
	Quantity    int          `json:"quantity"`
	Merchandise Merchandise  `json:"merchandise"`
	Cost        CartLineCost `json:"cost"`
}

type CartLineEdge struct {
	Node CartLine `json:"node"`
}

type CartLineConnection struct {
	Edges []CartLineEdge `json:"edges"`
}

type CartCost struct {
	SubtotalAmount Money  `json:"subtotalAmount"`
	TotalAmount    Money  `json:"totalAmount"`
	TotalTaxAmount *Money `json:"totalTaxAmount"`
}

type Cart struct {
	ID            string             `json:"id"`
	CheckoutURL   string             `json:"checkoutUrl"`
	Note          string             `json:"note"`
	Cost          CartCost           `json:"cost"`
	Lines         CartLineConnection `json:"lines"`
	TotalQuantity int                `json:"totalQuantity"`
}

type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

type CartLineUpdateInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type UserError struct {
	Code    string   `json:"code"`
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// Catalog

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
}

type Swatch struct {
	Color string `json:"color"`
}

type OptionValue struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Swatch *Swatch `json:"swatch"`
}

type ProductOption struct {
	Name         string        `json:"name"`
	OptionValues []OptionValue `json:"optionValues"`
}

type Variant struct {
	ID               string           `json:"id"`
	AvailableForSale bool             `json:"availableForSale"`
	CompareAtPrice   *Money           `json:"compareAtPrice"`
	Price            Money            `json:"price"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}

type VariantEdge struct {
	Node Variant `json:"node"`
}

type VariantConnection struct {
	Edges []VariantEdge `json:"edges"`
}

type CollectionSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type CollectionEdge struct {
	Node CollectionSummary `json:"node"`
}

type CollectionConnection struct {
	Edges []CollectionEdge `json:"edges"`
}

type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Product struct {
	ID                  string               `json:"id"`
	Title               string               `json:"title"`
	Handle              string               `json:"handle"`
	Description         string               `json:"description"`
	DescriptionHTML     string               `json:"descriptionHtml"`
	ProductType         string               `json:"productType"`
	Tags                []string             `json:"tags"`
	Vendor              string               `json:"vendor"`
	FeaturedImage       *Image               `json:"featuredImage"`
	PriceRange          PriceRange           `json:"priceRange"`
	CompareAtPriceRange PriceRange           `json:"compareAtPriceRange"`
	Images              ImageConnection      `json:"images"`
	Options             []ProductOption      `json:"options"`
	Variants            VariantConnection    `json:"variants"`
	SEO                 *SEO                 `json:"seo"`
	Collections         CollectionConnection `json:"collections"`
}

type ProductEdge struct {
	Node   Product `json:"node"`
	Cursor string  `json:"cursor"`
}

type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	EndCursor       string `json:"endCursor"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
}

type ProductConnection struct {
	Edges    []ProductEdge `json:"edges"`
	PageInfo PageInfo      `json:"pageInfo"`
}

type PriceFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type ProductFilter struct {
	Available     *bool           `json:"available,omitempty"`
	ProductVendor string          `json:"productVendor,omitempty"`
	ProductType   string          `json:"productType,omitempty"`
	Price         *PriceFilter    `json:"price,omitempty"`
	VariantOption *SelectedOption `json:"variantOption,omitempty"`
}

type CollectionProductsRequest struct {
	CollectionID string
	First        int
	After        string
	SortKey      string
	Reverse      bool
	Filters      []ProductFilter
}

type MetaobjectField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Metaobject struct {
	ID     string            `json:"id"`
	Handle string            `json:"handle"`
	Fields []MetaobjectField `json:"fields"`
}

// Customer

type CustomerAccessToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}
