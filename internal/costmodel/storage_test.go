package costmodel

import (
	"math"
	"testing"

	"github.com/opscost/factory-planner/pkg/montecarlo"
)

func legoStorage() StorageParams {
	return StorageParams{
		StorageVolume:         1000,
		UsedVolume:            800,
		RentPerMonth:          500000,
		SecurityCost:          30000,
		WMSCost:               15000,
		UtilitiesCost:         20000,
		InsuranceRate:         0.012,
		InventoryValue:        10000000,
		DepreciationCost:      25000,
		StorageCostPerM3:      50,
		InternalLogisticsCost: 50000,
		SpoilageRate:          0.01,
		RentVolatility:        0.15,
		SpoilageRisk:          0.05,
		SecurityBreachRisk:    0.02,
		Trials:                1000,
	}
}

func TestEstimateStorageCosts(t *testing.T) {
	p := legoStorage()

	est, err := EstimateStorageCosts(p, montecarlo.New(11))
	if err != nil {
		t.Fatalf("EstimateStorageCosts() error = %v", err)
	}

	// Fixed: 500000+30000+15000+20000+10000 (insurance) + 25000 = 600000.
	// Variable: 40000 + 50000 + 100000 = 190000.
	expectedBase := 790000.0
	if math.Abs(est.BaseCost-expectedBase) > 1e-6 {
		t.Errorf("BaseCost = %v, expected %v", est.BaseCost, expectedBase)
	}
	if est.ExpectedCost < est.BaseCost {
		t.Errorf("ExpectedCost %v below BaseCost %v; risk events can only add cost", est.ExpectedCost, est.BaseCost)
	}
	if est.MinCost > est.ExpectedCost || est.ExpectedCost > est.MaxCost {
		t.Errorf("cost ordering violated: min %v, expected %v, max %v", est.MinCost, est.ExpectedCost, est.MaxCost)
	}
	if est.MinCost != est.BaseCost {
		t.Errorf("MinCost = %v, expected a no-event trial at base cost %v", est.MinCost, est.BaseCost)
	}
}

func TestStorageWithoutRiskEvents(t *testing.T) {
	p := legoStorage()
	p.RentVolatility = 0 // rent event still rolls, but adds nothing
	p.SpoilageRisk = 0
	p.SecurityBreachRisk = 0
	p.Trials = 200

	est, err := EstimateStorageCosts(p, montecarlo.New(2))
	if err != nil {
		t.Fatalf("EstimateStorageCosts() error = %v", err)
	}

	if est.ExpectedCost != est.BaseCost {
		t.Errorf("ExpectedCost = %v, expected exactly the base cost %v", est.ExpectedCost, est.BaseCost)
	}
	if est.RiskBreakdown["extraSpoilage"] != 0 || est.RiskBreakdown["securityIncidents"] != 0 {
		t.Errorf("disabled risks accumulated costs: %+v", est.RiskBreakdown)
	}
}

func TestStorageBreakdown(t *testing.T) {
	p := legoStorage()

	est, err := EstimateStorageCosts(p, montecarlo.New(6))
	if err != nil {
		t.Fatalf("EstimateStorageCosts() error = %v", err)
	}

	if got := est.Breakdown.Fixed["insurance"]; math.Abs(got-10000) > 1e-9 {
		t.Errorf("monthly insurance = %v, expected annual rate applied as 10000", got)
	}
	if got := est.Breakdown.Variable["storage"]; got != 800*50 {
		t.Errorf("storage space cost = %v, expected %v", got, 800*50)
	}
	if got := est.Breakdown.Variable["spoilage"]; got != 100000 {
		t.Errorf("normal spoilage = %v, expected 100000", got)
	}

	fixedSum := 0.0
	for _, v := range est.Breakdown.Fixed {
		fixedSum += v
	}
	variableSum := 0.0
	for _, v := range est.Breakdown.Variable {
		variableSum += v
	}
	if math.Abs(fixedSum+variableSum-est.BaseCost) > 1e-6 {
		t.Errorf("breakdown sums to %v, expected base cost %v", fixedSum+variableSum, est.BaseCost)
	}
}

func TestStorageValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StorageParams)
	}{
		{"Zero trials", func(p *StorageParams) { p.Trials = 0 }},
		{"Negative inventory value", func(p *StorageParams) { p.InventoryValue = -1 }},
		{"Spoilage risk above one", func(p *StorageParams) { p.SpoilageRisk = 1.1 }},
		{"Negative rent volatility", func(p *StorageParams) { p.RentVolatility = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := legoStorage()
			tt.mutate(&p)
			if _, err := EstimateStorageCosts(p, montecarlo.New(1)); err == nil {
				t.Errorf("EstimateStorageCosts() expected error, got nil")
			}
		})
	}
}
