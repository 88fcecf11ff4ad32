package grid

import (
	"math"

	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// Input is everything the reference rent depends on. Calculate reads
// nothing else: same input, same output.
type Input struct {
	PropertyType  wizard.PropertyType
	Size          float64
	Bedrooms      int
	PropertyState wizard.Condition
	EnergyClass   wizard.EnergyClass

	// DifficultyIndex comes from the address lookup service; 0 when the
	// lookup has not run.
	DifficultyIndex float64

	CentralHeating     wizard.TriState
	ThermalRegulation  wizard.TriState
	SecondBathroom     wizard.TriState
	RecreationalSpaces wizard.TriState
	StorageSpaces      wizard.TriState
	Garages            int
}

// Result is the reference rent band in euros per month, rounded to
// cents.
type Result struct {
	MedianRent float64 `json:"medianRent"`
	MinRent    float64 `json:"minRent"`
	MaxRent    float64 `json:"maxRent"`
}

// InputFromState extracts the calculation input from a wizard state.
func InputFromState(s wizard.State) Input {
	var difficulty float64
	if s.CalculationResults.DifficultyIndex != nil {
		difficulty = *s.CalculationResults.DifficultyIndex
	}
	p := s.PropertyInfo
	return Input{
		PropertyType:       p.PropertyType,
		Size:               p.Size,
		Bedrooms:           p.Bedrooms,
		PropertyState:      p.PropertyState,
		EnergyClass:        p.EnergyClass,
		DifficultyIndex:    difficulty,
		CentralHeating:     p.CentralHeating,
		ThermalRegulation:  p.ThermalRegulation,
		SecondBathroom:     p.SecondBathroom,
		RecreationalSpaces: p.RecreationalSpaces,
		StorageSpaces:      p.StorageSpaces,
		Garages:            p.NumberOfGarages,
	}
}

// Calculate produces the reference rent band for a property. It is a
// pure function: no clock, no configuration, no ambient state.
//
// A non-positive (or NaN) living surface yields an all-zero result
// rather than an error; the surface divides the inverse-surface term
// and the wizard guarantees a positive value before the results step.
func Calculate(in Input) Result {
	if !(in.Size > 0) {
		return Result{}
	}

	row := rowFor(in.PropertyType, in.Bedrooms)
	inverseSurfaceTerm := row.inverseSurface / in.Size

	basePerM2 := baseConstant +
		gridMultiplier*(row.constant+inverseSurfaceTerm) +
		conditionAdjustment(in.PropertyState) +
		difficultyMultiplier*in.DifficultyIndex

	rent := basePerM2 * in.Size

	// Amenity adjustments key on explicit answers, never on "truthy":
	// an unanswered question must not move the price.
	if in.CentralHeating == wizard.No {
		rent += adjNoCentralHeating
	}
	if in.ThermalRegulation == wizard.No {
		rent += adjNoThermalRegulation
	}
	if in.SecondBathroom == wizard.Yes {
		rent += adjSecondBathroom
	}
	if in.RecreationalSpaces == wizard.No {
		rent += adjNoRecreationalSpaces
	}
	if in.StorageSpaces == wizard.Yes {
		rent += adjStorageSpaces
	}
	rent += float64(in.Garages) * adjPerGarage

	rent += energyAdjustments[in.EnergyClass]

	if rent < 0 {
		rent = 0
	}
	rent *= indexationRatio

	return Result{
		MedianRent: round2(rent),
		MinRent:    round2(rent * 0.9),
		MaxRent:    round2(rent * 1.1),
	}
}

// round2 rounds to two decimals (euro cents).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
