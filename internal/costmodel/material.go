// Package costmodel implements the Monte Carlo cost models for raw
// material sourcing, production, storage, and logistics, plus the
// deterministic labor-versus-automation comparison.
package costmodel

// Material describes one raw material consumed during production.
type Material struct {
	// Name identifies the material; names must be unique within a set.
	Name string `yaml:"name" mapstructure:"name"`
	// PerBox is the mass consumed per produced box.
	PerBox float64 `yaml:"perBox" mapstructure:"perBox"`
	// BasePrice is the expected price per mass unit.
	BasePrice float64 `yaml:"basePrice" mapstructure:"basePrice"`
	// Volatility is the price standard deviation as a fraction of
	// BasePrice. Sampled prices have no floor; a sufficiently volatile
	// material may legally draw a negative price.
	Volatility float64 `yaml:"volatility" mapstructure:"volatility"`
}

// TotalPerBox sums the per-box consumption across a material set.
func TotalPerBox(materials []Material) float64 {
	total := 0.0
	for _, m := range materials {
		total += m.PerBox
	}
	return total
}
