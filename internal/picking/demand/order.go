// Copyright 2025 James Ross
// Package demand models incoming customer orders and the generator
// machinery used to synthesize realistic order streams for scenarios and
// tests. It is not part of the simulator's required input contract — the
// simulator takes a prebuilt Orders slice — but it gives the original
// project's RNG plumbing and popularity modeling a concrete, reproducible
// home in this repo.
package demand

import "sort"

// Order is an immutable customer order: an arrival time and the SKUs it
// requests (duplicates represent quantity).
type Order struct {
	ArrivalMin float64
	Items      []string
}

// ItemCounts returns the per-SKU quantity, derived from Items.
func (o Order) ItemCounts() map[string]int {
	counts := make(map[string]int, len(o.Items))
	for _, sku := range o.Items {
		counts[sku]++
	}
	return counts
}

// UniqueSKUs returns the distinct SKUs referenced by the order, in
// first-seen order.
func (o Order) UniqueSKUs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	out := make([]string, 0, len(o.Items))
	for _, sku := range o.Items {
		if _, ok := seen[sku]; ok {
			continue
		}
		seen[sku] = struct{}{}
		out = append(out, sku)
	}
	return out
}

// SortByArrival returns a copy of orders sorted by non-decreasing arrival
// time.
func SortByArrival(orders []Order) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ArrivalMin < out[j].ArrivalMin })
	return out
}
