// Package features maps a validated canonical record into the fixed-order
// feature vector the eligibility classifier expects.
package features

import "github.com/mansoor/social-support-agent/internal/types"

// Project builds the classifier's one-row input from a canonical record.
// The mapping is total: every feature column has a matching typed field on
// CanonicalRecord, so schema drift between the two is a compile error, not a
// runtime surprise. A nil record projects the documented defaults.
func Project(record *types.CanonicalRecord) types.FeatureVector {
	if record == nil {
		defaulted := types.DefaultRecord()
		record = &defaulted
	}
	return types.FeatureVector{
		MonthlyIncome:    record.MonthlyIncome,
		FamilySize:       record.FamilySize,
		EmploymentStatus: record.EmploymentStatus,
		HousingType:      record.HousingType,
		MaritalStatus:    record.MaritalStatus,
		HasDisability:    record.HasDisability,
		Nationality:      record.Nationality,
		CreditScore:      record.CreditScore,
		NetWorth:         record.NetWorth,
	}
}
