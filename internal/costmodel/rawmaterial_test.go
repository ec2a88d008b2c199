package costmodel

import (
	"math"
	"testing"

	"github.com/opscost/factory-planner/pkg/montecarlo"
)

func legoMaterials() []Material {
	return []Material{
		{Name: "plastic", PerBox: 2.0, BasePrice: 100, Volatility: 0.15},
		{Name: "dye", PerBox: 0.5, BasePrice: 200, Volatility: 0.10},
		{Name: "packaging", PerBox: 0.1, BasePrice: 50, Volatility: 0.05},
	}
}

func TestEstimateRawMaterialCosts(t *testing.T) {
	p := RawMaterialParams{
		TargetBoxes:     10000,
		Materials:       legoMaterials(),
		DefectRate:      0.05,
		DeliveryRisk:    0.1,
		SafetyStockDays: 7,
		Trials:          1000,
	}

	est, err := EstimateRawMaterialCosts(p, montecarlo.New(1))
	if err != nil {
		t.Fatalf("EstimateRawMaterialCosts() error = %v", err)
	}

	// Volatility-free baseline: 10500 boxes * (2.0*100 + 0.5*200 + 0.1*50).
	baseline := 10500.0 * (2.0*100 + 0.5*200 + 0.1*50)
	if est.ExpectedCost < baseline*0.9 || est.ExpectedCost > baseline*1.1 {
		t.Errorf("ExpectedCost = %.0f, expected within 10%% of baseline %.0f", est.ExpectedCost, baseline)
	}
	if est.MinCost > est.ExpectedCost || est.ExpectedCost > est.MaxCost {
		t.Errorf("cost ordering violated: min %.0f, expected %.0f, max %.0f", est.MinCost, est.ExpectedCost, est.MaxCost)
	}
	if est.RiskAboveBudget < 0 || est.RiskAboveBudget > 100 {
		t.Errorf("RiskAboveBudget = %v, expected within [0, 100]", est.RiskAboveBudget)
	}
}

func TestRawMaterialSafetyStock(t *testing.T) {
	base := RawMaterialParams{
		TargetBoxes:     9000,
		Materials:       legoMaterials(),
		DefectRate:      0.05,
		DeliveryRisk:    0.1,
		SafetyStockDays: 7,
		Trials:          10,
	}

	est7, err := EstimateRawMaterialCosts(base, montecarlo.New(1))
	if err != nil {
		t.Fatalf("EstimateRawMaterialCosts() error = %v", err)
	}

	doubled := base
	doubled.SafetyStockDays = 14
	est14, err := EstimateRawMaterialCosts(doubled, montecarlo.New(1))
	if err != nil {
		t.Fatalf("EstimateRawMaterialCosts() error = %v", err)
	}

	for name, stock := range est7.SafetyStock {
		if stock < 0 {
			t.Errorf("safety stock for %s = %v, expected non-negative", name, stock)
		}
		if math.Abs(est14.SafetyStock[name]-2*stock) > 1e-9 {
			t.Errorf("safety stock for %s did not scale linearly: 7d=%v 14d=%v", name, stock, est14.SafetyStock[name])
		}
	}

	// Spot check plastic: 18900 kg required -> 630/day -> 4410 for 7 days.
	if math.Abs(est7.SafetyStock["plastic"]-4410) > 1e-6 {
		t.Errorf("plastic safety stock = %v, expected 4410", est7.SafetyStock["plastic"])
	}
}

func TestRawMaterialDeterminism(t *testing.T) {
	p := RawMaterialParams{
		TargetBoxes:     5000,
		Materials:       legoMaterials(),
		DefectRate:      0.05,
		DeliveryRisk:    0.1,
		SafetyStockDays: 7,
		Trials:          500,
	}

	a, err := EstimateRawMaterialCosts(p, montecarlo.New(77))
	if err != nil {
		t.Fatalf("EstimateRawMaterialCosts() error = %v", err)
	}
	b, err := EstimateRawMaterialCosts(p, montecarlo.New(77))
	if err != nil {
		t.Fatalf("EstimateRawMaterialCosts() error = %v", err)
	}

	if a.ExpectedCost != b.ExpectedCost || a.MinCost != b.MinCost || a.MaxCost != b.MaxCost {
		t.Errorf("identical seeds produced different estimates: %+v vs %+v", a, b)
	}
}

func TestRawMaterialValidation(t *testing.T) {
	valid := RawMaterialParams{
		TargetBoxes:     1000,
		Materials:       legoMaterials(),
		DeliveryRisk:    0.1,
		SafetyStockDays: 7,
		Trials:          10,
	}

	tests := []struct {
		name   string
		mutate func(*RawMaterialParams)
	}{
		{
			name:   "Zero trials",
			mutate: func(p *RawMaterialParams) { p.Trials = 0 },
		},
		{
			name:   "No materials",
			mutate: func(p *RawMaterialParams) { p.Materials = nil },
		},
		{
			name: "Duplicate material",
			mutate: func(p *RawMaterialParams) {
				p.Materials = append(p.Materials, Material{Name: "plastic", PerBox: 1, BasePrice: 10})
			},
		},
		{
			name: "Negative volatility",
			mutate: func(p *RawMaterialParams) {
				p.Materials = []Material{{Name: "plastic", PerBox: 2, BasePrice: 100, Volatility: -0.1}}
			},
		},
		{
			name:   "Delivery risk above one",
			mutate: func(p *RawMaterialParams) { p.DeliveryRisk = 1.5 },
		},
		{
			name:   "Negative safety stock days",
			mutate: func(p *RawMaterialParams) { p.SafetyStockDays = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p.Materials = append([]Material(nil), valid.Materials...)
			tt.mutate(&p)
			if _, err := EstimateRawMaterialCosts(p, montecarlo.New(1)); err == nil {
				t.Errorf("EstimateRawMaterialCosts() expected error, got nil")
			}
		})
	}
}
