package planner

import (
	"math"

	"github.com/opscost/factory-planner/internal/costmodel"
)

// Projection is a month-by-month inventory trajectory.
type Projection struct {
	// RawMaterial and FinishedGoods hold the end-of-month levels, one
	// entry per month, floored at zero.
	RawMaterial   []float64
	FinishedGoods []float64
}

// ProjectInventory replays a finalized plan deterministically. Each
// month consumes purchased plus on-hand raw material against
// production and sells the assumed share of output; shortfalls are
// silently floored at zero rather than reported.
func ProjectInventory(production, purchases []float64, inventory Inventory, materials []costmodel.Material) Projection {
	months := len(production)
	projection := Projection{
		RawMaterial:   make([]float64, 0, months),
		FinishedGoods: make([]float64, 0, months),
	}

	perBox := costmodel.TotalPerBox(materials)
	raw := inventory.RawMaterial
	goods := inventory.Goods
	for month := 0; month < months; month++ {
		raw += purchases[month] - production[month]*perBox
		raw = math.Max(0, raw)

		goods += production[month] * (1 - assumedSalesShare)
		goods = math.Max(0, goods)

		projection.RawMaterial = append(projection.RawMaterial, raw)
		projection.FinishedGoods = append(projection.FinishedGoods, goods)
	}

	return projection
}
