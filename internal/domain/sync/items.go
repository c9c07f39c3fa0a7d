package sync

import (
	"github.com/wmsconnector/backend/internal/domain/shop"
	"github.com/wmsconnector/backend/internal/domain/wms"
)

// ItemAccumulator builds the deduplicated item list of a warehouse order.
// Quantities for the same SKU sum instead of creating duplicate entries,
// and the result depends on traversal order only through the insertion
// order of first occurrence.
type ItemAccumulator struct {
	index map[string]int
	items []wms.OrderItem
}

// NewItemAccumulator creates an empty accumulator
func NewItemAccumulator() *ItemAccumulator {
	return &ItemAccumulator{
		index: make(map[string]int),
		items: make([]wms.OrderItem, 0),
	}
}

// Add credits quantity to the given SKU
func (a *ItemAccumulator) Add(sku string, quantity int) {
	if i, ok := a.index[sku]; ok {
		a.items[i].Quantity += quantity
		return
	}
	a.index[sku] = len(a.items)
	a.items = append(a.items, wms.OrderItem{SKU: sku, Quantity: quantity})
}

// AddLine expands a possibly composite order line into the accumulator.
// Each component SKU of a bundle is credited the full line quantity.
func (a *ItemAccumulator) AddLine(line shop.OrderLine) {
	for _, sku := range shop.SplitSKU(line.SKU) {
		a.Add(sku, line.Quantity)
	}
}

// Items returns the accumulated item list
func (a *ItemAccumulator) Items() []wms.OrderItem {
	return a.items
}

// ExpandOrderLines accumulates all lines of an order into a deduplicated
// warehouse item list
func ExpandOrderLines(lines []shop.OrderLine) []wms.OrderItem {
	acc := NewItemAccumulator()
	for _, line := range lines {
		acc.AddLine(line)
	}
	return acc.Items()
}
