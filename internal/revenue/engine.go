// Package revenue implements the commission split computation shared by every
// financial report. Customer-facing prices carry the platform commission
// multiplicatively (price = base * (1 + rate/100)), so the seller's share is
// recovered by dividing the line total by (1 + rate/100), not by subtracting
// a percentage of it.
package revenue

import (
	"math"
	"sort"
)

// LineItem is the input unit to the split computation. The commission rate is
// the one resolved for the line's seller at query time; a seller without a
// commission record carries rate 0.
type LineItem struct {
	OrderID               int64
	SellerID              int64
	SellerName            string
	Quantity              int64
	UnitPrice             float64
	CommissionRatePercent float64
}

// Split holds the components of a single line total.
type Split struct {
	ItemTotal   float64
	BasePrice   float64
	AdminProfit float64
}

// SplitLine decomposes a commission-inclusive line total into the seller base
// amount and the platform share. BasePrice + AdminProfit == ItemTotal by
// construction.
func SplitLine(itemTotal, commissionRatePercent float64) Split {
	adminFraction := commissionRatePercent / 100
	basePrice := itemTotal
	if adminFraction > 0 {
		basePrice = itemTotal / (1 + adminFraction)
	}
	return Split{
		ItemTotal:   itemTotal,
		BasePrice:   basePrice,
		AdminProfit: itemTotal - basePrice,
	}
}

// SellerTotals aggregates one seller's eligible line items.
type SellerTotals struct {
	SellerID              int64   `json:"sellerId"`
	SellerName            string  `json:"sellerName"`
	CommissionRatePercent float64 `json:"commissionRate"`
	TotalRevenue          float64 `json:"totalRevenue"`
	TotalDebt             float64 `json:"totalDebt"`
	AdminProfit           float64 `json:"adminProfit"`
	OrdersCount           int     `json:"ordersCount"`
}

// Summary is the whole-collection aggregate across all sellers.
type Summary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalDebt        float64 `json:"totalDebt"`
	TotalAdminProfit float64 `json:"totalAdminProfit"`
	SellersCount     int     `json:"sellersCount"`
	OrdersCount      int     `json:"ordersCount"`
}

type sellerAccum struct {
	totals SellerTotals
	orders map[int64]struct{}
}

// Aggregate groups line items by seller and returns per-seller totals plus
// the global summary. Per-line values accumulate unrounded; monetary sums are
// rounded to 2 decimal places only here, at final output, so repeated runs on
// the same input are bit-identical and rounding drift cannot accumulate.
func Aggregate(items []LineItem) ([]SellerTotals, Summary) {
	accums := make(map[int64]*sellerAccum)
	globalOrders := make(map[int64]struct{})

	var summary Summary
	for _, item := range items {
		split := SplitLine(item.UnitPrice*float64(item.Quantity), item.CommissionRatePercent)

		acc, ok := accums[item.SellerID]
		if !ok {
			acc = &sellerAccum{
				totals: SellerTotals{
					SellerID:              item.SellerID,
					SellerName:            item.SellerName,
					CommissionRatePercent: item.CommissionRatePercent,
				},
				orders: make(map[int64]struct{}),
			}
			accums[item.SellerID] = acc
		}
		acc.totals.TotalRevenue += split.ItemTotal
		acc.totals.TotalDebt += split.BasePrice
		acc.totals.AdminProfit += split.AdminProfit
		acc.orders[item.OrderID] = struct{}{}

		summary.TotalRevenue += split.ItemTotal
		summary.TotalDebt += split.BasePrice
		summary.TotalAdminProfit += split.AdminProfit
		globalOrders[item.OrderID] = struct{}{}
	}

	sellers := make([]SellerTotals, 0, len(accums))
	for _, acc := range accums {
		t := acc.totals
		t.TotalRevenue = Round2(t.TotalRevenue)
		t.TotalDebt = Round2(t.TotalDebt)
		t.AdminProfit = Round2(t.TotalRevenue - t.TotalDebt)
		t.OrdersCount = len(acc.orders)
		sellers = append(sellers, t)
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].TotalDebt != sellers[j].TotalDebt {
			return sellers[i].TotalDebt > sellers[j].TotalDebt
		}
		return sellers[i].SellerName < sellers[j].SellerName
	})

	summary.TotalRevenue = Round2(summary.TotalRevenue)
	summary.TotalDebt = Round2(summary.TotalDebt)
	summary.TotalAdminProfit = Round2(summary.TotalRevenue - summary.TotalDebt)
	summary.SellersCount = len(accums)
	summary.OrdersCount = len(globalOrders)

	return sellers, summary
}

// Totals returns the global gross revenue and the platform's share (net
// revenue) for a collection of line items, ignoring seller grouping. Net is
// derived from the rounded revenue and debt sums exactly as Aggregate derives
// its summary, so the two can never disagree on the same input.
func Totals(items []LineItem) (totalRevenue, netRevenue float64) {
	var debt float64
	for _, item := range items {
		split := SplitLine(item.UnitPrice*float64(item.Quantity), item.CommissionRatePercent)
		totalRevenue += split.ItemTotal
		debt += split.BasePrice
	}
	totalRevenue = Round2(totalRevenue)
	return totalRevenue, Round2(totalRevenue - Round2(debt))
}

// GrossTotal sums raw line totals without splitting. Used for informational
// figures such as cancelled-order revenue that never enter the debt ledger.
func GrossTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return Round2(total)
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
