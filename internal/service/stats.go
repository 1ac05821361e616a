package service

import (
	"github.com/shopspring/decimal"

	"dashboard-service/internal/entity"
)

// WorkerStats are the worker dashboard figures, recomputed from every fresh
// load of /trabajadores and never cached.
type WorkerStats struct {
	Total             int
	Active            int
	TopPosition       string
	DocumentsComplete int
}

// WorkersDashboard derives the worker summary. The most frequent position
// breaks ties by first appearance, so the result is deterministic. A worker
// counts as documents-complete when CURP, INE and birth certificate are all
// flagged.
func WorkersDashboard(records []entity.Record) WorkerStats {
	stats := WorkerStats{Total: len(records), Active: len(records)}

	counts := map[string]int{}
	var order []string
	for _, r := range records {
		if r.Bool("curp") && r.Bool("ine") && r.Bool("acta_nacimiento") {
			stats.DocumentsComplete++
		}

		puesto := r.Str("puesto")
		if puesto == "" {
			continue
		}
		if _, seen := counts[puesto]; !seen {
			order = append(order, puesto)
		}
		counts[puesto]++
	}

	best := 0
	for _, puesto := range order {
		if counts[puesto] > best {
			best = counts[puesto]
			stats.TopPosition = puesto
		}
	}
	return stats
}

// MenuStats are the menu dashboard figures.
type MenuStats struct {
	Total        int
	AveragePrice decimal.Decimal
	MostPopular  string
	Specialties  int
}

// MenuDashboard derives the menu summary: product count, average price, the
// first product as "most popular" (no sales ranking exists client-side), and
// the count of specialty products carrying chorizo argentino or cecina.
func MenuDashboard(records []entity.Record) MenuStats {
	stats := MenuStats{Total: len(records), AveragePrice: decimal.Zero}
	if len(records) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Decimal("precio"))
		if r.Bool("chorizo_argentino") || r.Bool("cecina") {
			stats.Specialties++
		}
	}
	stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(records)))).Round(2)
	stats.MostPopular = records[0].Str("nombre_m")
	return stats
}
