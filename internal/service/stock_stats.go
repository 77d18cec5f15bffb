package service

import (
	"context"
	"sort"
)

const (
	stockStatsDatesMsg = "Período de datas é obrigatório."
	stockStatsTopN     = 10
)

type RankedCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StockStats summarises the purchase requests of a period.
type StockStats struct {
	TotalOrders       int           `json:"totalPedidosCompra"`
	TotalItems        int           `json:"totalItensComprados"`
	TopItems          []RankedCount `json:"itensMaisComprados"`
	MostUsedSuppliers []RankedCount `json:"fornecedoresMaisAcionados"`
}

// Stats reports the requests created between two calendar days, both
// inclusive. Items are ranked by quantity requested and suppliers by the
// number of requests that asked them for anything. Ids that no longer
// resolve to a name are reported as the raw id.
func (s *StockService) Stats(ctx context.Context, startDate, endDate string) (StockStats, error) {
	start, end, err := dayRange(startDate, endDate, stockStatsDatesMsg)
	if err != nil {
		return StockStats{}, err
	}

	orders, err := s.store.ListStockOrdersBetween(ctx, start, end)
	if err != nil {
		return StockStats{}, internal("list stock orders", err)
	}
	suppliers, err := s.store.ListSuppliers(ctx)
	if err != nil {
		return StockStats{}, internal("list suppliers", err)
	}
	items, err := s.store.ListItems(ctx, "")
	if err != nil {
		return StockStats{}, internal("list items", err)
	}

	supplierNames := make(map[string]string, len(suppliers))
	for _, supplier := range suppliers {
		supplierNames[supplier.ID] = supplier.Name
	}
	itemNames := make(map[string]string, len(items))
	for _, item := range items {
		itemNames[item.ID] = item.Name
	}

	stats := StockStats{TotalOrders: len(orders)}
	itemTotals := map[string]int{}
	supplierTotals := map[string]int{}
	for _, order := range orders {
		for supplierID, quantities := range order.OrderData {
			asked := false
			for itemID, quantity := range quantities {
				if quantity <= 0 {
					continue
				}
				asked = true
				itemTotals[nameOr(itemNames, itemID)] += quantity
				stats.TotalItems += quantity
			}
			if asked {
				supplierTotals[nameOr(supplierNames, supplierID)]++
			}
		}
	}

	stats.TopItems = topN(itemTotals, stockStatsTopN)
	stats.MostUsedSuppliers = topN(supplierTotals, stockStatsTopN)
	return stats, nil
}

func nameOr(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}

// topN ranks by value descending, then by name.
func topN(totals map[string]int, n int) []RankedCount {
	ranked := make([]RankedCount, 0, len(totals))
	for name, value := range totals {
		ranked = append(ranked, RankedCount{Name: name, Value: value})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
