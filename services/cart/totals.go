package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// recomputeTotals derives line costs, subtotal, total and quantity from the lines.
// The cart is single currency: the first line determines it.
func recomputeTotals(cart Cart) (Cart, error) {
	subtotal := decimal.Zero
	totalQuantity := 0

	currencyCode := defaultCurrencyCode
	if len(cart.Lines) > 0 && cart.Lines[0].Merchandise.Price.CurrencyCode != "" {
		currencyCode = cart.Lines[0].Merchandise.Price.CurrencyCode
	}

	lines := make([]Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		price, err := decimal.NewFromString(l.Merchandise.Price.Amount)
		if err != nil {
			return Cart{}, fmt.Errorf("invalid price %q of merchandise %s: %w", l.Merchandise.Price.Amount, l.Merchandise.ID, err)
		}
		lineCost := price.Mul(decimal.NewFromInt(int64(l.Quantity)))

		l.Cost = Money{
			Amount:       lineCost.StringFixed(2),
			CurrencyCode: l.Merchandise.Price.CurrencyCode,
		}
		lines = append(lines, l)

		subtotal = subtotal.Add(lineCost)
		totalQuantity += l.Quantity
	}

	cart.Lines = lines
	cart.TotalQuantity = totalQuantity
	cart.Cost = Cost{
		SubtotalAmount: Money{Amount: subtotal.StringFixed(2), CurrencyCode: currencyCode},
		TotalAmount:    Money{Amount: subtotal.StringFixed(2), CurrencyCode: currencyCode},
		TotalTaxAmount: nil,
	}

	return cart, nil
}
