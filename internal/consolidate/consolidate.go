// Package consolidate merges per-document raw extractions into one canonical
// applicant record with an inconsistency audit trail.
//
// Consolidation never fails: an absent or errored source simply does not
// contribute, and every canonical field falls back to its documented default.
package consolidate

import (
	"strings"

	"github.com/mansoor/social-support-agent/internal/types"
)

// Consolidate resolves a bundle of up to four raw extractions into a single
// CanonicalRecord plus the list of identity inconsistencies found along the
// way. The returned source list names the usable sources that contributed,
// in fixed order; an empty list means nothing could be extracted at all.
func Consolidate(bundle types.RawExtractionBundle) (types.CanonicalRecord, []types.Inconsistency, []types.SourceKind) {
	record := types.DefaultRecord()
	var inconsistencies []types.Inconsistency

	used := bundle.UsableSources()
	if len(used) == 0 {
		return record, nil, nil
	}

	// Identity fields: precedence chain plus conflict audit.
	for _, rule := range identityRules {
		winner, values := resolveIdentity(bundle, rule)
		if winner != "" {
			switch rule.field {
			case "name":
				record.Name = winner
			case "emirates_id":
				record.EmiratesID = winner
			}
		}
		if conflicting(values) {
			inconsistencies = append(inconsistencies, types.Inconsistency{
				Field:         rule.field,
				ValueBySource: values,
				ResolvedValue: resolvedValue(record, rule.field),
			})
		}
	}

	// Single-winner categorical fields.
	for _, rule := range categoricalRules {
		for _, src := range rule.sources {
			raw, ok := bundle.Usable(src.kind)
			if !ok {
				continue
			}
			value, present := raw.StringField(src.field)
			if !present || (rule.skipUnknown && isUnknown(value)) {
				continue
			}
			rule.assign(&record, value)
			break
		}
	}

	// has_disability and family_size come from the identity document alone.
	if raw, ok := bundle.Usable(types.SourceIdentity); ok {
		if disabled, present := raw.BoolField("has_disability"); present {
			record.HasDisability = disabled
		}
		if size, present := raw.NumberField("family_size"); present && size >= 1 {
			record.FamilySize = int(size)
		}
	}

	// monthly_income reconciles two imperfect signals by taking the higher:
	// the bank statement's salary-derived estimate and the credit report's
	// self-reported figure (the latter only when positive).
	if raw, ok := bundle.Usable(types.SourceBankStatement); ok {
		if income, present := raw.NumberField("estimated_monthly_income"); present {
			record.MonthlyIncome = income
		}
	}
	if raw, ok := bundle.Usable(types.SourceCreditReport); ok {
		if reported, present := raw.NumberField("monthly_income_reported"); present && reported > 0 {
			if reported > record.MonthlyIncome {
				record.MonthlyIncome = reported
			}
		}
		if score, present := raw.NumberField("credit_score"); present {
			record.CreditScore = int(score)
		}
	}

	if raw, ok := bundle.Usable(types.SourceAssetsLiabilities); ok {
		if netWorth, present := raw.NumberField("net_worth"); present {
			record.NetWorth = netWorth
		}
	}

	return record, inconsistencies, used
}

// resolveIdentity walks one identity rule's precedence chain. It returns the
// winning value ("" when no source supplied one) and every present,
// non-unknown value keyed by source, for conflict detection.
func resolveIdentity(bundle types.RawExtractionBundle, rule identityRule) (string, map[types.SourceKind]string) {
	winner := ""
	values := make(map[types.SourceKind]string)

	for _, src := range rule.sources {
		raw, ok := bundle.Usable(src.kind)
		if !ok {
			continue
		}
		value, present := raw.StringField(src.field)
		if !present || value == "" || isUnknown(value) {
			continue
		}
		values[src.kind] = value
		if winner == "" {
			winner = value
		}
	}

	return winner, values
}

// conflicting reports whether the collected per-source values contain at
// least two that differ. Comparison is case-sensitive exact: case-only
// differences count as inconsistencies pending a product decision.
func conflicting(values map[types.SourceKind]string) bool {
	if len(values) < 2 {
		return false
	}
	first := ""
	for _, kind := range types.AllSourceKinds {
		value, ok := values[kind]
		if !ok {
			continue
		}
		if first == "" {
			first = value
			continue
		}
		if value != first {
			return true
		}
	}
	return false
}

// resolvedValue reads the canonical value an identity rule settled on.
func resolvedValue(rec types.CanonicalRecord, field string) string {
	switch field {
	case "name":
		return rec.Name
	case "emirates_id":
		return rec.EmiratesID
	}
	return types.UnknownValue
}

// isUnknown reports whether an extracted string is the Unknown placeholder.
func isUnknown(value string) bool {
	return strings.EqualFold(value, types.UnknownValue)
}
