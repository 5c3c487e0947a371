package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mansoor/social-support-agent/internal/types"
)

func TestFeatureColumnOrderIsPinned(t *testing.T) {
	// The classifier is order-sensitive; this order must never change
	// without retraining.
	assert.Equal(t, []string{
		"monthly_income",
		"family_size",
		"employment_status",
		"housing_type",
		"marital_status",
		"has_disability",
		"nationality",
		"credit_score",
		"net_worth",
	}, types.FeatureColumns)
}

func TestProjectMapsEveryField(t *testing.T) {
	record := types.CanonicalRecord{
		MonthlyIncome:    12000,
		FamilySize:       4,
		EmploymentStatus: "Employed",
		HousingType:      "Rented",
		MaritalStatus:    "Married",
		HasDisability:    true,
		Nationality:      "UAE",
		CreditScore:      700,
		NetWorth:         50000,
		Name:             "Fatima Al Mansoori",
		EmiratesID:       "784-1990-1234567-1",
	}

	vector := Project(&record)
	row := vector.Row()

	require.Len(t, row, len(types.FeatureColumns))
	assert.Equal(t, []any{
		12000.0, 4, "Employed", "Rented", "Married", true, "UAE", 700, 50000.0,
	}, row)
}

func TestProjectNilRecordUsesDefaults(t *testing.T) {
	vector := Project(nil)

	assert.Equal(t, types.DefaultMonthlyIncome, vector.MonthlyIncome)
	assert.Equal(t, types.DefaultFamilySize, vector.FamilySize)
	assert.Equal(t, types.UnknownValue, vector.EmploymentStatus)
	assert.Equal(t, types.UnknownValue, vector.HousingType)
	assert.Equal(t, types.UnknownValue, vector.MaritalStatus)
	assert.False(t, vector.HasDisability)
	assert.Equal(t, types.UnknownValue, vector.Nationality)
	assert.Equal(t, types.DefaultCreditScore, vector.CreditScore)
	assert.Equal(t, types.DefaultNetWorth, vector.NetWorth)
}

func TestPayloadCarriesColumnSchema(t *testing.T) {
	vector := Project(nil)
	payload := vector.Payload()

	assert.Equal(t, types.FeatureColumns, payload.Columns)
	require.Len(t, payload.Data, 1)
	assert.Equal(t, vector, payload.Data[0])
}
