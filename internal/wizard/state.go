package wizard

import (
	"time"

	"github.com/google/uuid"
)

// Page is the coarse phase of the questionnaire flow.
type Page string

const (
	PageCalculator    Page = "calculator"
	PageResults       Page = "results"
	PageQuestionnaire Page = "questionnaire"
)

// PropertyType classifies the rental unit. The empty value means the
// user has not answered yet.
type PropertyType string

const (
	PropertyTypeUnset     PropertyType = ""
	PropertyTypeStudio    PropertyType = "studio"
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
)

// Condition is the self-assessed state of the property. The empty value
// means the user has not answered yet.
type Condition string

const (
	ConditionUnset     Condition = ""
	ConditionPoor      Condition = "poor"
	ConditionGood      Condition = "good"
	ConditionExcellent Condition = "excellent"
)

// EnergyClass is the PEB energy performance class (A best, G worst).
// The empty value means no certificate or not answered.
type EnergyClass string

const (
	EnergyClassUnset EnergyClass = ""
	EnergyClassA     EnergyClass = "A"
	EnergyClassB     EnergyClass = "B"
	EnergyClassC     EnergyClass = "C"
	EnergyClassD     EnergyClass = "D"
	EnergyClassE     EnergyClass = "E"
	EnergyClassF     EnergyClass = "F"
	EnergyClassG     EnergyClass = "G"
)

// UserProfile holds contact details and opt-ins collected at the end of
// the flow.
type UserProfile struct {
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	JoinNewsletter bool   `json:"joinNewsletter"`
	AcceptContact  bool   `json:"acceptContact"`
}

// PropertyInfo describes the rental unit itself. The six amenity fields
// are tri-state: an Unset answer is distinct from No and only defaults
// at calculation time.
type PropertyInfo struct {
	PostalCode      int          `json:"postalCode"`
	StreetName      string       `json:"streetName"`
	StreetNumber    string       `json:"streetNumber"`
	PropertyType    PropertyType `json:"propertyType"`
	Size            float64      `json:"size"`
	Bedrooms        int          `json:"bedrooms"`
	Bathrooms       int          `json:"bathrooms"`
	NumberOfGarages int          `json:"numberOfGarages"`
	EnergyClass     EnergyClass  `json:"energyClass"`

	ConstructedBefore2000 TriState  `json:"constructedBefore2000"`
	PropertyState         Condition `json:"propertyState"`

	CentralHeating     TriState `json:"centralHeating"`
	ThermalRegulation  TriState `json:"thermalRegulation"`
	SecondBathroom     TriState `json:"secondBathroom"`
	RecreationalSpaces TriState `json:"recreationalSpaces"`
	StorageSpaces      TriState `json:"storageSpaces"`
	Furnished          TriState `json:"furnished"`
}

// RentalInfo captures the user's real-world lease.
type RentalInfo struct {
	ActualRent      string `json:"actualRent"`
	LeaseType       string `json:"leaseType"`
	LeaseStartDate  string `json:"leaseStartDate"`
	RentIndexation  string `json:"rentIndexation"`
	WrittenLease    bool   `json:"writtenLease"`
	ChargesIncluded bool   `json:"chargesIncluded"`
}

// HouseholdInfo is optional context about the tenant's situation. It is
// collected for the questionnaire but never feeds the calculator.
type HouseholdInfo struct {
	MonthlyIncome        string `json:"monthlyIncome"`
	HouseholdComposition string `json:"householdComposition"`
	PaymentDelays        string `json:"paymentDelays"`
	EvictionThreats      string `json:"evictionThreats"`
	MediationAttempts    string `json:"mediationAttempts"`
}

// PropertyIssues collects qualitative signals about defects, plus free
// text comments.
type PropertyIssues struct {
	HealthIssues      []string `json:"healthIssues"`
	MaintenanceIssues []string `json:"maintenanceIssues"`
	EquipmentDefects  []string `json:"equipmentDefects"`
	Comments          string   `json:"comments"`
}

// CalculationResults is the output of the reference-rent calculation
// combined with the difficulty-index lookup. Numeric fields are nil
// until a calculation has run.
type CalculationResults struct {
	DifficultyIndex *float64 `json:"difficultyIndex"`
	MedianRent      *float64 `json:"medianRent"`
	MinRent         *float64 `json:"minRent"`
	MaxRent         *float64 `json:"maxRent"`
	IsLoading       bool     `json:"isLoading"`
	Error           *string  `json:"error"`
	ErrorCode       *string  `json:"errorCode"`
}

// State is the single source of truth for one wizard session. It is
// immutable between transitions: Apply returns a new value and never
// mutates its input.
type State struct {
	CurrentStep int  `json:"currentStep"`
	CurrentPage Page `json:"currentPage"`

	UserProfile        UserProfile        `json:"userProfile"`
	PropertyInfo       PropertyInfo       `json:"propertyInfo"`
	RentalInfo         RentalInfo         `json:"rentalInfo"`
	HouseholdInfo      HouseholdInfo      `json:"householdInfo"`
	PropertyIssues     PropertyIssues     `json:"propertyIssues"`
	CalculationResults CalculationResults `json:"calculationResults"`

	// LastUpdated is a unix-millisecond timestamp bumped on every
	// mutating transition. It never decreases.
	LastUpdated int64 `json:"lastUpdated"`

	// SessionID identifies one in-progress session. Generated once per
	// fresh session, replaced only by a full reset.
	SessionID string `json:"sessionId"`
}

// NewState builds a fresh default state with a new session id. Every
// call returns an independent value; there is no shared default object.
func NewState(now time.Time) State {
	return State{
		CurrentStep: 1,
		CurrentPage: PageCalculator,
		LastUpdated: now.UnixMilli(),
		SessionID:   uuid.New().String(),
	}
}
