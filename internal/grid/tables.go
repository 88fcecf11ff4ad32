package grid

import "github.com/loyerbxl/rentwizard/internal/wizard"

// Formula coefficients of the indicative rent grid. The per-m² base
// price is:
//
//	baseConstant + gridMultiplier*(row.constant + row.inverseSurface/size)
//	  + conditionAdjustment + difficultyMultiplier*difficultyIndex
//
// difficultyMultiplier is negative: a harder neighbourhood lowers the
// reference rent.
const (
	baseConstant         = 2.10270617
	gridMultiplier       = 0.89417743
	difficultyMultiplier = -0.35297134
)

// Condition adjustments per m². Poor condition is the zero baseline; an
// unanswered condition is priced as good.
const (
	conditionAdjustmentGood      = 0.15105772
	conditionAdjustmentExcellent = 0.41485811
)

// indexationRatio converts the grid's survey-era prices into current
// terms. It is the ratio of the two reference health index values.
const indexationRatio = 132.73 / 123.14

// Monthly adjustments in euros, applied to the base rent after the
// surface multiplication. Deductions fire only on an explicit "no"
// answer; an unanswered amenity never deducts.
const (
	adjNoCentralHeating     = -24.79
	adjNoThermalRegulation  = -12.39
	adjSecondBathroom       = 49.57
	adjNoRecreationalSpaces = -24.79
	adjStorageSpaces        = 12.39
	adjPerGarage            = 61.97
)

// energyAdjustments maps the PEB class to its monthly adjustment.
// Class E is the neutral baseline; an unknown or absent class
// contributes nothing.
var energyAdjustments = map[wizard.EnergyClass]float64{
	wizard.EnergyClassA: 123.93,
	wizard.EnergyClassB: 82.62,
	wizard.EnergyClassC: 41.31,
	wizard.EnergyClassD: 20.66,
	wizard.EnergyClassE: 0,
	wizard.EnergyClassF: -20.66,
	wizard.EnergyClassG: -41.31,
}

// formulaRow holds the per-category coefficients of the grid formula.
type formulaRow struct {
	constant       float64
	inverseSurface float64
}

// studioRow doubles as the 0-bedroom apartment row and as the fallback
// for any category the table does not enumerate.
var studioRow = formulaRow{constant: 4.75064710, inverseSurface: 101.97827623}

// maxBedroomBucket folds every bedroom count above the table's explicit
// entries into a single "4 or more" bucket per property type.
const maxBedroomBucket = 4

var formulaTable = map[wizard.PropertyType]map[int]formulaRow{
	wizard.PropertyTypeStudio: {
		0: studioRow,
	},
	wizard.PropertyTypeApartment: {
		0: studioRow,
		1: {constant: 6.09167746, inverseSurface: 74.52398997},
		2: {constant: 6.50938120, inverseSurface: 90.16252620},
		3: {constant: 6.63796313, inverseSurface: 116.54035517},
		4: {constant: 6.72860525, inverseSurface: 147.18584066},
	},
	wizard.PropertyTypeHouse: {
		1: {constant: 5.53144254, inverseSurface: 118.35106828},
		2: {constant: 5.88109271, inverseSurface: 133.20898553},
		3: {constant: 6.10457858, inverseSurface: 159.72723059},
		4: {constant: 6.26977285, inverseSurface: 192.51238714},
	},
}

// rowFor selects the formula row for a property type and bedroom count,
// falling back to the studio row for anything not enumerated.
func rowFor(propertyType wizard.PropertyType, bedrooms int) formulaRow {
	if bedrooms > maxBedroomBucket {
		bedrooms = maxBedroomBucket
	}
	if bedrooms < 0 {
		bedrooms = 0
	}
	if rows, ok := formulaTable[propertyType]; ok {
		if row, ok := rows[bedrooms]; ok {
			return row
		}
	}
	return studioRow
}

// conditionAdjustment prices the self-assessed property state. An unset
// answer defaults to good: the flow only forces an explicit answer at
// the calculation step.
func conditionAdjustment(c wizard.Condition) float64 {
	switch c {
	case wizard.ConditionPoor:
		return 0
	case wizard.ConditionExcellent:
		return conditionAdjustmentExcellent
	default:
		return conditionAdjustmentGood
	}
}
