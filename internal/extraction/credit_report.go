package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mansoor/social-support-agent/internal/llm"
	"github.com/mansoor/social-support-agent/internal/schemas"
	"github.com/mansoor/social-support-agent/internal/types"
)

const creditReportPrompt = `Extract the following fields from this credit bureau report PDF and return them as a JSON object:
- emirates_id: the subject's ID number if present
- applicant_name: the subject's full name if present
- credit_score: the bureau score as a number
- total_credit_limit: the combined credit limit across facilities, as a number
- total_outstanding: the combined outstanding balance, as a number
- monthly_income_reported: the income figure the report states, as a number, or 0 if none
- housing_type: one of Owned, Rented, Shared if the report states a residence arrangement, otherwise "Unknown"

Use 0 for numeric fields you cannot find and "Unknown" for text fields you cannot find. Return only the JSON object.`

// CreditReportExtractor reads a credit bureau PDF through the LLM client.
type CreditReportExtractor struct {
	LLM llm.Client
}

func (e *CreditReportExtractor) Kind() types.SourceKind {
	return types.SourceCreditReport
}

func (e *CreditReportExtractor) Extract(ctx context.Context, path string) types.RawExtraction {
	if e.LLM == nil {
		return types.RawExtraction{Error: "credit report extraction requires an LLM client"}
	}

	pdf, err := os.ReadFile(path)
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to read credit report: %v", err)}
	}

	out, err := e.LLM.GenerateJSONFromPDF(ctx, creditReportPrompt, pdf)
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to process credit report: %v", err)}
	}

	if err := schemas.Validate(schemas.CreditReport, out); err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("credit report extraction did not match schema: %v", err)}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to decode credit report extraction: %v", err)}
	}
	return types.RawExtraction{Fields: fields}
}
