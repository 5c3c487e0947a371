// Package types provides type definitions for structured data used throughout the social-support-agent system.
package types

import (
	"strconv"
	"strings"
)

// SourceKind identifies which applicant document a raw extraction came from.
type SourceKind string

// The four document kinds an applicant may submit.
const (
	SourceIdentity          SourceKind = "identity"
	SourceBankStatement     SourceKind = "bank_statement"
	SourceCreditReport      SourceKind = "credit_report"
	SourceAssetsLiabilities SourceKind = "assets_liabilities"
)

// AllSourceKinds lists every document kind in a fixed order, used wherever
// iteration order must be deterministic.
var AllSourceKinds = []SourceKind{
	SourceIdentity,
	SourceBankStatement,
	SourceCreditReport,
	SourceAssetsLiabilities,
}

// RawExtraction is the uniform per-document extraction result: a loose field
// map plus an optional error. An errored extraction is treated as absent by
// consolidation; it never aborts a run.
type RawExtraction struct {
	Fields map[string]any `json:"fields"`
	Error  string         `json:"error,omitempty"`
}

// Failed reports whether the extraction carries an adapter error.
func (r RawExtraction) Failed() bool {
	return r.Error != ""
}

// StringField returns a trimmed string value for key. ok is false when the
// key is absent or the value is not a string.
func (r RawExtraction) StringField(key string) (string, bool) {
	v, present := r.Fields[key]
	if !present {
		return "", false
	}
	s, isString := v.(string)
	if !isString {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// NumberField returns a numeric value for key, coercing the types a JSON
// decode or adapter may produce (float64, int, numeric string).
func (r RawExtraction) NumberField(key string) (float64, bool) {
	v, present := r.Fields[key]
	if !present {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// BoolField returns a boolean value for key, accepting bools and the string
// forms LLM extraction occasionally emits.
func (r RawExtraction) BoolField(key string) (bool, bool) {
	v, present := r.Fields[key]
	if !present {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(b)))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

// RawExtractionBundle maps each submitted document kind to its extraction
// result. Any subset of kinds may be present.
type RawExtractionBundle map[SourceKind]RawExtraction

// Usable returns the extraction for kind when it is present and did not
// error. Absent and errored sources look identical to consolidation.
func (b RawExtractionBundle) Usable(kind SourceKind) (RawExtraction, bool) {
	raw, present := b[kind]
	if !present || raw.Failed() {
		return RawExtraction{}, false
	}
	return raw, true
}

// UsableSources returns the kinds with usable extractions, in the fixed
// AllSourceKinds order.
func (b RawExtractionBundle) UsableSources() []SourceKind {
	var kinds []SourceKind
	for _, kind := range AllSourceKinds {
		if _, ok := b.Usable(kind); ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
