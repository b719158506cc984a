package cart

import (
	"time"

	"github.com/MarcGrol/storefront/services/storefront/storefrontclient"
)

const defaultCurrencyCode = "USD"

type Money struct {
	Amount       string
	CurrencyCode string
}

type Image struct {
	URL     string
	AltText string
	Width   int
	Height  int
}

type SelectedOption struct {
	Name  string
	Value string
}

type ProductSummary struct {
	ID          string
	Title       string
	Description string `datastore:",noindex"`
	Vendor      string
	Handle      string
	Images      []Image
}

type Merchandise struct {
	ID              string
	Title           string
	Price           Money
	SelectedOptions []SelectedOption
	Product         ProductSummary
}

type Line struct {
	ID          string
	Quantity    int
	Merchandise Merchandise
	Cost        Money
}

type Cost struct {
	SubtotalAmount Money
	TotalAmount    Money
	TotalTaxAmount *Money
}

type Cart struct {
	ID            string
	CheckoutURL   string
	Note          string `datastore:",noindex"`
	Cost          Cost
	Lines         []Line
	TotalQuantity int
	LastModified  *time.Time
}

func (c Cart) lineByMerchandise(merchandiseID string) (Line, bool) {
	for _, l := range c.Lines {
		if l.Merchandise.ID == merchandiseID {
			return l, true
		}
	}
	return Line{}, false
}

func fromRemote(rc storefrontclient.Cart) Cart {
	cart := Cart{
		ID:          rc.ID,
		CheckoutURL: rc.CheckoutURL,
		Note:        rc.Note,
		Cost: Cost{
			SubtotalAmount: Money(rc.Cost.SubtotalAmount),
			TotalAmount:    Money(rc.Cost.TotalAmount),
		},
		Lines:         make([]Line, 0, len(rc.Lines.Edges)),
		TotalQuantity: rc.TotalQuantity,
	}
	if rc.Cost.TotalTaxAmount != nil {
		tax := Money(*rc.Cost.TotalTaxAmount)
		cart.Cost.TotalTaxAmount = &tax
	}

	for _, e := range rc.Lines.Edges {
		n := e.Node
		line := Line{
			ID:       n.ID,
			Quantity: n.Quantity,
			Merchandise: Merchandise{
				ID:              n.Merchandise.ID,
				Title:           n.Merchandise.Title,
				Price:           Money(n.Merchandise.Price),
				SelectedOptions: make([]SelectedOption, 0, len(n.Merchandise.SelectedOptions)),
				Product: ProductSummary{
					ID:          n.Merchandise.Product.ID,
					Title:       n.Merchandise.Product.Title,
					Description: n.Merchandise.Product.Description,
					Vendor:      n.Merchandise.Product.Vendor,
					Handle:      n.Merchandise.Product.Handle,
					Images:      make([]Image, 0, len(n.Merchandise.Product.Images.Edges)),
				},
			},
			Cost: Money(n.Cost.TotalAmount),
		}
		for _, o := range n.Merchandise.SelectedOptions {
			line.Merchandise.SelectedOptions = append(line.Merchandise.SelectedOptions, SelectedOption(o))
		}
		for _, img := range n.Merchandise.Product.Images.Edges {
			line.Merchandise.Product.Images = append(line.Merchandise.Product.Images, Image(img.Node))
		}
		cart.Lines = append(cart.Lines, line)
	}

	return cart
}
