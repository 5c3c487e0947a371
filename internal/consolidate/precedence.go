package consolidate

import "github.com/mansoor/social-support-agent/internal/types"

// sourceField names where a canonical field lives inside one source's raw
// extraction. Different documents use different keys for the same thing
// (the bank statement calls the applicant's name "account_holder").
type sourceField struct {
	kind  types.SourceKind
	field string
}

// identityRule is one row of the identity precedence table: the canonical
// field plus the sources that may supply it, in winning order.
type identityRule struct {
	field   string
	sources []sourceField
}

// identityRules is the precedence table for conflict-checked identity
// fields. The first source in the chain with a present, non-unknown value
// wins; every disagreement between present values is recorded as an
// Inconsistency regardless of the winner.
var identityRules = []identityRule{
	{
		field: "name",
		sources: []sourceField{
			{types.SourceIdentity, "name"},
			{types.SourceBankStatement, "account_holder"},
		},
	},
	{
		field: "emirates_id",
		sources: []sourceField{
			{types.SourceIdentity, "emirates_id"},
			{types.SourceBankStatement, "emirates_id"},
			{types.SourceCreditReport, "emirates_id"},
		},
	},
}

// categoricalRule is one row of the precedence table for single-winner
// categorical fields: no conflict audit, first usable source wins.
// skipUnknown drops Unknown placeholders so the chain can keep looking;
// without it a present Unknown value wins like any other.
type categoricalRule struct {
	field       string
	sources     []sourceField
	skipUnknown bool
	assign      func(rec *types.CanonicalRecord, value string)
}

// categoricalRules covers the fields where one source chain decides the
// value outright. employment_status, marital_status and nationality come
// from the identity document only; housing_type prefers the credit report
// and takes whatever it says, Unknown included, so a low-quality credit
// extraction still surfaces as an unknown-value finding downstream.
var categoricalRules = []categoricalRule{
	{
		field:       "employment_status",
		sources:     []sourceField{{types.SourceIdentity, "employment_status"}},
		skipUnknown: true,
		assign:      func(rec *types.CanonicalRecord, v string) { rec.EmploymentStatus = v },
	},
	{
		field:       "marital_status",
		sources:     []sourceField{{types.SourceIdentity, "marital_status"}},
		skipUnknown: true,
		assign:      func(rec *types.CanonicalRecord, v string) { rec.MaritalStatus = v },
	},
	{
		field:       "nationality",
		sources:     []sourceField{{types.SourceIdentity, "nationality"}},
		skipUnknown: true,
		assign:      func(rec *types.CanonicalRecord, v string) { rec.Nationality = v },
	},
	{
		field: "housing_type",
		sources: []sourceField{
			{types.SourceCreditReport, "housing_type"},
			{types.SourceIdentity, "housing_type"},
		},
		assign: func(rec *types.CanonicalRecord, v string) { rec.HousingType = v },
	},
}
