package types

// UnknownValue is the documented placeholder for string fields no source
// could supply.
const UnknownValue = "Unknown"

// Default values for fields absent from every source. These are the same
// defaults the eligibility classifier was trained with, so a sparse record
// still scores.
const (
	DefaultMonthlyIncome = 0.0
	DefaultFamilySize    = 1
	DefaultCreditScore   = 650
	DefaultNetWorth      = 0.0
)

// CanonicalRecord is the single merged representation of an applicant after
// resolving multi-source conflicts. Every field always holds a value: either
// an extracted one or the documented default.
type CanonicalRecord struct {
	MonthlyIncome    float64 `json:"monthly_income"`
	FamilySize       int     `json:"family_size"`
	EmploymentStatus string  `json:"employment_status"`
	HousingType      string  `json:"housing_type"`
	MaritalStatus    string  `json:"marital_status"`
	HasDisability    bool    `json:"has_disability"`
	Nationality      string  `json:"nationality"`
	CreditScore      int     `json:"credit_score"`
	NetWorth         float64 `json:"net_worth"`

	Name       string `json:"name"`
	EmiratesID string `json:"emirates_id"`
}

// DefaultRecord returns a CanonicalRecord with every field at its documented
// default, the state of an applicant about whom nothing could be extracted.
func DefaultRecord() CanonicalRecord {
	return CanonicalRecord{
		MonthlyIncome:    DefaultMonthlyIncome,
		FamilySize:       DefaultFamilySize,
		EmploymentStatus: UnknownValue,
		HousingType:      UnknownValue,
		MaritalStatus:    UnknownValue,
		HasDisability:    false,
		Nationality:      UnknownValue,
		CreditScore:      DefaultCreditScore,
		NetWorth:         DefaultNetWorth,
		Name:             UnknownValue,
		EmiratesID:       UnknownValue,
	}
}

// Inconsistency records a disagreement between sources on an identity field.
// It is created whenever two present sources supply differing values,
// independent of which value the precedence rules select.
type Inconsistency struct {
	Field         string                `json:"field"`
	ValueBySource map[SourceKind]string `json:"value_by_source"`
	ResolvedValue string                `json:"resolved_value"`
}
