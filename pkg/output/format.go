// Package output provides utilities for formatting and displaying
// planning results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/opscost/factory-planner/internal/planner"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result planner.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Optimized production plan ---\n")
	fmt.Printf("Month | Production (boxes) | Purchases (kg) | Raw stock | Finished goods\n")
	fmt.Printf("_____ | __________________ | ______________ | _________ | ______________\n")
	for month := range result.Production {
		_, _ = p.Printf("%5d | %18d | %14d | %9.0f | %14.0f\n",
			month+1,
			result.Production[month],
			result.Purchases[month],
			result.Projection.RawMaterial[month],
			result.Projection.FinishedGoods[month],
		)
	}

	_, _ = p.Printf("\nTotal cost: $%.2f\n", result.TotalCost)
	fmt.Printf("\nCost breakdown:\n")
	for _, line := range breakdownLines(result.Breakdown) {
		_, _ = p.Printf("%-13s: $%.2f\n", line.name, line.amount)
	}

	fmt.Printf("\nRisk analysis:\n")
	for _, line := range riskLines(result.Risk) {
		fmt.Printf("%-15s: %.1f%%\n", line.name, 100*line.amount)
	}

	fmt.Printf("\nOptimizer converged: %t (%s)\n", result.Converged, result.Message)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result planner.Result) {
	fmt.Printf(`"month","production","purchases","raw_material","finished_goods"`)
	fmt.Printf("\n")
	for month := range result.Production {
		fmt.Printf(`"%d","%d","%d","%.2f","%.2f"`,
			month+1,
			result.Production[month],
			result.Purchases[month],
			result.Projection.RawMaterial[month],
			result.Projection.FinishedGoods[month],
		)
		fmt.Printf("\n")
	}

	fmt.Printf(`"category","amount"`)
	fmt.Printf("\n")
	for _, line := range breakdownLines(result.Breakdown) {
		fmt.Printf(`"%s","%.2f"`, line.name, line.amount)
		fmt.Printf("\n")
	}
	fmt.Printf(`"total","%.2f"`, result.TotalCost)
	fmt.Printf("\n")

	fmt.Printf(`"risk","fraction"`)
	fmt.Printf("\n")
	for _, line := range riskLines(result.Risk) {
		fmt.Printf(`"%s","%.4f"`, line.name, line.amount)
		fmt.Printf("\n")
	}
}

type line struct {
	name   string
	amount float64
}

func breakdownLines(b planner.CostBreakdown) []line {
	return []line{
		{"raw materials", b.RawMaterials},
		{"production", b.Production},
		{"storage", b.Storage},
		{"logistics", b.Logistics},
		{"labor", b.Labor},
	}
}

func riskLines(r planner.RiskMetrics) []line {
	return []line{
		{"supply risk", r.SupplyRisk},
		{"production risk", r.ProductionRisk},
		{"demand risk", r.DemandRisk},
		{"total risk", r.TotalRisk},
	}
}
