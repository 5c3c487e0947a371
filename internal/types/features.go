package types

// FeatureColumns is the exact, ordered column schema the eligibility
// classifier was trained on. The scorer is order-sensitive and schema-blind:
// this slice is the single source of truth for feature order.
var FeatureColumns = []string{
	"monthly_income",
	"family_size",
	"employment_status",
	"housing_type",
	"marital_status",
	"has_disability",
	"nationality",
	"credit_score",
	"net_worth",
}

// FeatureVector is the one-row input to the eligibility scorer. Field order
// mirrors FeatureColumns; Row is the only sanctioned way to serialize it.
type FeatureVector struct {
	MonthlyIncome    float64 `json:"monthly_income"`
	FamilySize       int     `json:"family_size"`
	EmploymentStatus string  `json:"employment_status"`
	HousingType      string  `json:"housing_type"`
	MaritalStatus    string  `json:"marital_status"`
	HasDisability    bool    `json:"has_disability"`
	Nationality      string  `json:"nationality"`
	CreditScore      int     `json:"credit_score"`
	NetWorth         float64 `json:"net_worth"`
}

// Row returns the feature values in FeatureColumns order.
func (v FeatureVector) Row() []any {
	return []any{
		v.MonthlyIncome,
		v.FamilySize,
		v.EmploymentStatus,
		v.HousingType,
		v.MaritalStatus,
		v.HasDisability,
		v.Nationality,
		v.CreditScore,
		v.NetWorth,
	}
}

// FeaturePayload is the wire form sent to an external model server: the
// column schema plus a single record, mirroring a one-row dataframe.
type FeaturePayload struct {
	Columns []string        `json:"columns"`
	Data    []FeatureVector `json:"data"`
}

// Payload wraps the vector in its wire form.
func (v FeatureVector) Payload() FeaturePayload {
	return FeaturePayload{Columns: FeatureColumns, Data: []FeatureVector{v}}
}
