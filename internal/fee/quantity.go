package fee

import "github.com/shopspring/decimal"

const maxRefinements = 10

// MaxQuantity returns the largest quantity, in base units, that fits into balance (also in
// base units) once the commission for that quantity is paid out of the same balance.
// price converts the quote-currency fee back into base units.
func MaxQuantity(balance decimal.Decimal, price decimal.Decimal, commissionFee CommissionFee) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}

	if !price.IsPositive() {
		return balance
	}

	maxQty := balance

	// usually converges in one or two steps
	for i := 0; i < maxRefinements; i++ {
		totalCost := maxQty.Add(commissionFee.Calculate(maxQty, price).Div(price))
		if totalCost.LessThanOrEqual(balance) {
			return maxQty
		}

		maxQty = maxQty.Mul(balance).Div(totalCost)
	}

	return maxQty
}

// RoundToDecimalPrecision rounds the quantity down to the specified decimal precision.
func RoundToDecimalPrecision(quantity decimal.Decimal, decimalPrecision int32) decimal.Decimal {
	return quantity.RoundFloor(decimalPrecision)
}
