package engine

import "sort"

// ProductAggregate is a grouped order-item rollup keyed by product.
type ProductAggregate struct {
	ProductID     string
	TotalQuantity int64
	TotalRevenue  float64
	OrderCount    int64
}

// TopN returns the n aggregates with the highest total revenue, descending.
// The sort is stable, so aggregates with equal revenue keep the order the
// store returned them in; across equal keys that order is whatever the
// store's default happens to be, not a guaranteed tiebreak.
func TopN(aggregates []ProductAggregate, n int) []ProductAggregate {
	ranked := make([]ProductAggregate, len(aggregates))
	copy(ranked, aggregates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalRevenue > ranked[j].TotalRevenue
	})
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
