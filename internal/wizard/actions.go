package wizard

// Action is one named transition of the form state machine. Concrete
// action types carry their own payload; Apply is the single place where
// any of them takes effect.
type Action interface {
	// Name is the canonical action name, used for logging and for the
	// wire adapter.
	Name() string
}

// UserProfilePatch is a partial update of the userProfile section.
// Nil fields are left untouched, so a patch never drops sibling values.
type UserProfilePatch struct {
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	JoinNewsletter *bool   `json:"joinNewsletter,omitempty"`
	AcceptContact  *bool   `json:"acceptContact,omitempty"`
}

func (p UserProfilePatch) apply(s *UserProfile) {
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Phone != nil {
		s.Phone = *p.Phone
	}
	if p.JoinNewsletter != nil {
		s.JoinNewsletter = *p.JoinNewsletter
	}
	if p.AcceptContact != nil {
		s.AcceptContact = *p.AcceptContact
	}
}

// PropertyInfoPatch is a partial update of the propertyInfo section.
type PropertyInfoPatch struct {
	PostalCode      *int          `json:"postalCode,omitempty"`
	StreetName      *string       `json:"streetName,omitempty"`
	StreetNumber    *string       `json:"streetNumber,omitempty"`
	PropertyType    *PropertyType `json:"propertyType,omitempty"`
	Size            *float64      `json:"size,omitempty"`
	Bedrooms        *int          `json:"bedrooms,omitempty"`
	Bathrooms       *int          `json:"bathrooms,omitempty"`
	NumberOfGarages *int          `json:"numberOfGarages,omitempty"`
	EnergyClass     *EnergyClass  `json:"energyClass,omitempty"`

	ConstructedBefore2000 *TriState  `json:"constructedBefore2000,omitempty"`
	PropertyState         *Condition `json:"propertyState,omitempty"`

	CentralHeating     *TriState `json:"centralHeating,omitempty"`
	ThermalRegulation  *TriState `json:"thermalRegulation,omitempty"`
	SecondBathroom     *TriState `json:"secondBathroom,omitempty"`
	RecreationalSpaces *TriState `json:"recreationalSpaces,omitempty"`
	StorageSpaces      *TriState `json:"storageSpaces,omitempty"`
	Furnished          *TriState `json:"furnished,omitempty"`
}

func (p PropertyInfoPatch) apply(s *PropertyInfo) {
	if p.PostalCode != nil {
		s.PostalCode = *p.PostalCode
	}
	if p.StreetName != nil {
		s.StreetName = *p.StreetName
	}
	if p.StreetNumber != nil {
		s.StreetNumber = *p.StreetNumber
	}
	if p.PropertyType != nil {
		s.PropertyType = *p.PropertyType
	}
	if p.Size != nil {
		s.Size = *p.Size
	}
	if p.Bedrooms != nil {
		s.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		s.Bathrooms = *p.Bathrooms
	}
	if p.NumberOfGarages != nil {
		s.NumberOfGarages = *p.NumberOfGarages
	}
	if p.EnergyClass != nil {
		s.EnergyClass = *p.EnergyClass
	}
	if p.ConstructedBefore2000 != nil {
		s.ConstructedBefore2000 = *p.ConstructedBefore2000
	}
	if p.PropertyState != nil {
		s.PropertyState = *p.PropertyState
	}
	if p.CentralHeating != nil {
		s.CentralHeating = *p.CentralHeating
	}
	if p.ThermalRegulation != nil {
		s.ThermalRegulation = *p.ThermalRegulation
	}
	if p.SecondBathroom != nil {
		s.SecondBathroom = *p.SecondBathroom
	}
	if p.RecreationalSpaces != nil {
		s.RecreationalSpaces = *p.RecreationalSpaces
	}
	if p.StorageSpaces != nil {
		s.StorageSpaces = *p.StorageSpaces
	}
	if p.Furnished != nil {
		s.Furnished = *p.Furnished
	}
}

// RentalInfoPatch is a partial update of the rentalInfo section.
type RentalInfoPatch struct {
	ActualRent      *string `json:"actualRent,omitempty"`
	LeaseType       *string `json:"leaseType,omitempty"`
	LeaseStartDate  *string `json:"leaseStartDate,omitempty"`
	RentIndexation  *string `json:"rentIndexation,omitempty"`
	WrittenLease    *bool   `json:"writtenLease,omitempty"`
	ChargesIncluded *bool   `json:"chargesIncluded,omitempty"`
}

func (p RentalInfoPatch) apply(s *RentalInfo) {
	if p.ActualRent != nil {
		s.ActualRent = *p.ActualRent
	}
	if p.LeaseType != nil {
		s.LeaseType = *p.LeaseType
	}
	if p.LeaseStartDate != nil {
		s.LeaseStartDate = *p.LeaseStartDate
	}
	if p.RentIndexation != nil {
		s.RentIndexation = *p.RentIndexation
	}
	if p.WrittenLease != nil {
		s.WrittenLease = *p.WrittenLease
	}
	if p.ChargesIncluded != nil {
		s.ChargesIncluded = *p.ChargesIncluded
	}
}

// HouseholdInfoPatch is a partial update of the householdInfo section.
type HouseholdInfoPatch struct {
	MonthlyIncome        *string `json:"monthlyIncome,omitempty"`
	HouseholdComposition *string `json:"householdComposition,omitempty"`
	PaymentDelays        *string `json:"paymentDelays,omitempty"`
	EvictionThreats      *string `json:"evictionThreats,omitempty"`
	MediationAttempts    *string `json:"mediationAttempts,omitempty"`
}

func (p HouseholdInfoPatch) apply(s *HouseholdInfo) {
	if p.MonthlyIncome != nil {
		s.MonthlyIncome = *p.MonthlyIncome
	}
	if p.HouseholdComposition != nil {
		s.HouseholdComposition = *p.HouseholdComposition
	}
	if p.PaymentDelays != nil {
		s.PaymentDelays = *p.PaymentDelays
	}
	if p.EvictionThreats != nil {
		s.EvictionThreats = *p.EvictionThreats
	}
	if p.MediationAttempts != nil {
		s.MediationAttempts = *p.MediationAttempts
	}
}

// PropertyIssuesPatch is a partial update of the propertyIssues section.
type PropertyIssuesPatch struct {
	HealthIssues      *[]string `json:"healthIssues,omitempty"`
	MaintenanceIssues *[]string `json:"maintenanceIssues,omitempty"`
	EquipmentDefects  *[]string `json:"equipmentDefects,omitempty"`
	Comments          *string   `json:"comments,omitempty"`
}

func (p PropertyIssuesPatch) apply(s *PropertyIssues) {
	if p.HealthIssues != nil {
		s.HealthIssues = *p.HealthIssues
	}
	if p.MaintenanceIssues != nil {
		s.MaintenanceIssues = *p.MaintenanceIssues
	}
	if p.EquipmentDefects != nil {
		s.EquipmentDefects = *p.EquipmentDefects
	}
	if p.Comments != nil {
		s.Comments = *p.Comments
	}
}

// CalculationResultsPatch is a partial update of the calculationResults
// section.
type CalculationResultsPatch struct {
	DifficultyIndex *float64 `json:"difficultyIndex,omitempty"`
	MedianRent      *float64 `json:"medianRent,omitempty"`
	MinRent         *float64 `json:"minRent,omitempty"`
	MaxRent         *float64 `json:"maxRent,omitempty"`
	IsLoading       *bool    `json:"isLoading,omitempty"`
	Error           *string  `json:"error,omitempty"`
	ErrorCode       *string  `json:"errorCode,omitempty"`

	// ClearError resets the error pair to nil; needed because a nil
	// pointer in a patch means "leave untouched", not "clear".
	ClearError bool `json:"clearError,omitempty"`
}

func (p CalculationResultsPatch) apply(s *CalculationResults) {
	if p.ClearError {
		s.Error = nil
		s.ErrorCode = nil
	}
	if p.DifficultyIndex != nil {
		s.DifficultyIndex = p.DifficultyIndex
	}
	if p.MedianRent != nil {
		s.MedianRent = p.MedianRent
	}
	if p.MinRent != nil {
		s.MinRent = p.MinRent
	}
	if p.MaxRent != nil {
		s.MaxRent = p.MaxRent
	}
	if p.IsLoading != nil {
		s.IsLoading = *p.IsLoading
	}
	if p.Error != nil {
		s.Error = p.Error
	}
	if p.ErrorCode != nil {
		s.ErrorCode = p.ErrorCode
	}
}

// The concrete actions. One type per transition; see Apply for their
// semantics.

// RestoreState replaces the whole state with a previously persisted
// snapshot, session id included.
type RestoreState struct {
	State State
}

func (RestoreState) Name() string { return "restore-state" }

// UpdateUserProfile shallow-merges a patch into the userProfile section.
type UpdateUserProfile struct {
	Patch UserProfilePatch
}

func (UpdateUserProfile) Name() string { return "update-user-profile" }

// UpdatePropertyInfo shallow-merges a patch into the propertyInfo section.
type UpdatePropertyInfo struct {
	Patch PropertyInfoPatch
}

func (UpdatePropertyInfo) Name() string { return "update-property-info" }

// UpdateRentalInfo shallow-merges a patch into the rentalInfo section.
type UpdateRentalInfo struct {
	Patch RentalInfoPatch
}

func (UpdateRentalInfo) Name() string { return "update-rental-info" }

// UpdateHouseholdInfo shallow-merges a patch into the householdInfo section.
type UpdateHouseholdInfo struct {
	Patch HouseholdInfoPatch
}

func (UpdateHouseholdInfo) Name() string { return "update-household-info" }

// UpdatePropertyIssues shallow-merges a patch into the propertyIssues section.
type UpdatePropertyIssues struct {
	Patch PropertyIssuesPatch
}

func (UpdatePropertyIssues) Name() string { return "update-property-issues" }

// UpdateCalculationResults shallow-merges a patch into the
// calculationResults section.
type UpdateCalculationResults struct {
	Patch CalculationResultsPatch
}

func (UpdateCalculationResults) Name() string { return "update-calculation-results" }

// SetCurrentStep moves the wizard to an absolute step ordinal. Callers
// are expected to have validated the ordinal against the step table;
// non-positive values are ignored.
type SetCurrentStep struct {
	Step int
}

func (SetCurrentStep) Name() string { return "set-current-step" }

// SetCurrentPage switches the coarse page marker.
type SetCurrentPage struct {
	Page Page
}

func (SetCurrentPage) Name() string { return "set-current-page" }

// Reset discards everything and starts a fresh session with a new
// session id.
type Reset struct{}

func (Reset) Name() string { return "reset" }

// Touch bumps lastUpdated without changing anything else. Used to keep
// an idle-but-open session from aging out.
type Touch struct{}

func (Touch) Name() string { return "touch" }

// BootstrapSize sets size to 1 if it is still 0, and changes nothing
// else. Dispatched on first entry to the property-details step: 0 m² is
// both a useless default and an invalid divisor for the calculation.
type BootstrapSize struct{}

func (BootstrapSize) Name() string { return "bootstrap-size" }
