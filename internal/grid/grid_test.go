package grid

import (
	"math"
	"testing"
	"time"

	"github.com/loyerbxl/rentwizard/internal/wizard"
)

// referenceInput is the long-standing regression fixture: a 120 m²
// one-bedroom apartment in good condition with PEB class A on a street
// with a known difficulty index.
func referenceInput() Input {
	return Input{
		PropertyType:       wizard.PropertyTypeApartment,
		Size:               120,
		Bedrooms:           1,
		PropertyState:      wizard.ConditionGood,
		EnergyClass:        wizard.EnergyClassA,
		DifficultyIndex:    1.91343466063764,
		CentralHeating:     wizard.Yes,
		ThermalRegulation:  wizard.Yes,
		SecondBathroom:     wizard.Yes,
		RecreationalSpaces: wizard.Yes,
		StorageSpaces:      wizard.Yes,
		Garages:            0,
	}
}

func TestCalculateReferenceScenario(t *testing.T) {
	got := Calculate(referenceInput())

	if got.MedianRent != 1180.90 {
		t.Errorf("MedianRent = %v, want 1180.90", got.MedianRent)
	}
	if got.MinRent != 1062.81 {
		t.Errorf("MinRent = %v, want 1062.81", got.MinRent)
	}
	if got.MaxRent != 1298.99 {
		t.Errorf("MaxRent = %v, want 1298.99", got.MaxRent)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	a := Calculate(referenceInput())
	b := Calculate(referenceInput())
	if a != b {
		t.Errorf("same input gave %v then %v", a, b)
	}
}

func TestCalculateNonPositiveSize(t *testing.T) {
	for _, size := range []float64{0, -1, -120, math.NaN()} {
		in := referenceInput()
		in.Size = size
		got := Calculate(in)
		if got != (Result{}) {
			t.Errorf("size %v: got %v, want all-zero result", size, got)
		}
	}
}

func TestCalculateBandIsTenPercent(t *testing.T) {
	got := Calculate(referenceInput())

	if math.Abs(got.MinRent-0.9*got.MedianRent) > 0.01 {
		t.Errorf("MinRent %v is not ~90%% of median %v", got.MinRent, got.MedianRent)
	}
	if math.Abs(got.MaxRent-1.1*got.MedianRent) > 0.01 {
		t.Errorf("MaxRent %v is not ~110%% of median %v", got.MaxRent, got.MedianRent)
	}
}

func TestCalculateUnknownCategoryFallsBackToStudioRow(t *testing.T) {
	in := referenceInput()
	in.PropertyType = wizard.PropertyTypeUnset
	in.Bedrooms = 0
	unknown := Calculate(in)

	in.PropertyType = wizard.PropertyTypeStudio
	studio := Calculate(in)

	if unknown != studio {
		t.Errorf("unset category %v should price as studio %v", unknown, studio)
	}

	// A house with 0 bedrooms is not in the table either
	in.PropertyType = wizard.PropertyTypeHouse
	house0 := Calculate(in)
	if house0 != studio {
		t.Errorf("unenumerated house/0 %v should price as studio %v", house0, studio)
	}
}

func TestCalculateBedroomBucketCap(t *testing.T) {
	in := referenceInput()
	in.Bedrooms = 4
	atCap := Calculate(in)

	in.Bedrooms = 9
	overCap := Calculate(in)

	if atCap != overCap {
		t.Errorf("9 bedrooms %v should price as the 4-or-more bucket %v", overCap, atCap)
	}
}

func TestCalculateConditionDefaultsToGood(t *testing.T) {
	in := referenceInput()
	in.PropertyState = wizard.ConditionUnset
	unset := Calculate(in)

	good := Calculate(referenceInput())
	if unset != good {
		t.Errorf("unset condition %v should price as good %v", unset, good)
	}

	in.PropertyState = wizard.ConditionPoor
	poor := Calculate(in)
	if poor.MedianRent >= good.MedianRent {
		t.Errorf("poor condition %v should price below good %v", poor.MedianRent, good.MedianRent)
	}

	in.PropertyState = wizard.ConditionExcellent
	excellent := Calculate(in)
	if excellent.MedianRent <= good.MedianRent {
		t.Errorf("excellent condition %v should price above good %v", excellent.MedianRent, good.MedianRent)
	}
}

func TestCalculateAmenitiesRequireExplicitAnswers(t *testing.T) {
	base := referenceInput()
	base.CentralHeating = wizard.Unset
	base.ThermalRegulation = wizard.Unset
	base.SecondBathroom = wizard.Unset
	base.RecreationalSpaces = wizard.Unset
	base.StorageSpaces = wizard.Unset
	unanswered := Calculate(base)

	// Explicit "no" on the deductions must lower the rent
	withNo := base
	withNo.CentralHeating = wizard.No
	withNo.ThermalRegulation = wizard.No
	withNo.RecreationalSpaces = wizard.No
	deducted := Calculate(withNo)
	if deducted.MedianRent >= unanswered.MedianRent {
		t.Errorf("explicit absences %v should price below unanswered %v",
			deducted.MedianRent, unanswered.MedianRent)
	}

	// Explicit "yes" on the additions must raise it
	withYes := base
	withYes.SecondBathroom = wizard.Yes
	withYes.StorageSpaces = wizard.Yes
	added := Calculate(withYes)
	if added.MedianRent <= unanswered.MedianRent {
		t.Errorf("explicit presences %v should price above unanswered %v",
			added.MedianRent, unanswered.MedianRent)
	}
}

func TestCalculateGarages(t *testing.T) {
	in := referenceInput()
	none := Calculate(in)

	in.Garages = 2
	two := Calculate(in)

	perGarage := (two.MedianRent - none.MedianRent) / 2
	if perGarage <= 0 {
		t.Errorf("garages should add rent, delta per garage = %v", perGarage)
	}
}

func TestCalculateEnergyClassTable(t *testing.T) {
	in := referenceInput()
	in.EnergyClass = wizard.EnergyClassE
	neutral := Calculate(in)

	in.EnergyClass = wizard.EnergyClassUnset
	unknown := Calculate(in)
	if unknown != neutral {
		t.Errorf("unknown class %v should contribute nothing, like E %v", unknown, neutral)
	}

	in.EnergyClass = wizard.EnergyClassA
	a := Calculate(in)
	in.EnergyClass = wizard.EnergyClassG
	g := Calculate(in)
	if !(a.MedianRent > neutral.MedianRent && neutral.MedianRent > g.MedianRent) {
		t.Errorf("energy ordering broken: A=%v E=%v G=%v",
			a.MedianRent, neutral.MedianRent, g.MedianRent)
	}
}

func TestCalculateClampsAtZero(t *testing.T) {
	in := Input{
		PropertyType:    wizard.PropertyTypeStudio,
		Size:            1,
		DifficultyIndex: 1000, // negative multiplier drives the base far below zero
		CentralHeating:  wizard.No,
	}
	got := Calculate(in)
	if got != (Result{}) {
		t.Errorf("deeply negative rent should clamp to zero, got %v", got)
	}
}

func TestCalculateDifficultyIndexLowersRent(t *testing.T) {
	in := referenceInput()
	in.DifficultyIndex = 0
	easy := Calculate(in)

	hard := Calculate(referenceInput())
	if hard.MedianRent >= easy.MedianRent {
		t.Errorf("difficulty index should lower the rent: %v vs %v",
			hard.MedianRent, easy.MedianRent)
	}
}

func TestInputFromState(t *testing.T) {
	s := wizard.NewState(time.Now())
	s.PropertyInfo.PropertyType = wizard.PropertyTypeApartment
	s.PropertyInfo.Size = 120
	s.PropertyInfo.Bedrooms = 1
	s.PropertyInfo.NumberOfGarages = 2
	di := 1.5
	s.CalculationResults.DifficultyIndex = &di

	in := InputFromState(s)
	if in.Size != 120 || in.Bedrooms != 1 || in.Garages != 2 {
		t.Errorf("input not extracted: %+v", in)
	}
	if in.DifficultyIndex != 1.5 {
		t.Errorf("DifficultyIndex = %v, want 1.5", in.DifficultyIndex)
	}

	// Missing difficulty index defaults to 0
	s.CalculationResults.DifficultyIndex = nil
	if got := InputFromState(s).DifficultyIndex; got != 0 {
		t.Errorf("missing difficulty index = %v, want 0", got)
	}
}
