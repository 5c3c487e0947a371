package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mansoor/social-support-agent/internal/llm"
	"github.com/mansoor/social-support-agent/internal/schemas"
	"github.com/mansoor/social-support-agent/internal/types"
)

const identityPrompt = `Extract the following fields from this Emirates ID card image and return them as a JSON object:
- name: the card holder's full name exactly as printed
- emirates_id: the ID number in the format 784-XXXX-XXXXXXX-X
- nationality: the holder's nationality
- date_of_birth: in YYYY-MM-DD format
- employment_status: one of Employed, Self-Employed, Unemployed, Retired, Student if determinable, otherwise "Unknown"
- marital_status: one of Single, Married, Divorced, Widowed if determinable, otherwise "Unknown"
- family_size: number of dependents including the holder, if stated
- has_disability: true only if the card indicates a disability entitlement

Use "Unknown" for any text field you cannot read. Return only the JSON object.`

// IdentityExtractor reads an Emirates ID card image through the LLM client.
type IdentityExtractor struct {
	LLM llm.Client
}

func (e *IdentityExtractor) Kind() types.SourceKind {
	return types.SourceIdentity
}

func (e *IdentityExtractor) Extract(ctx context.Context, path string) types.RawExtraction {
	if e.LLM == nil {
		return types.RawExtraction{Error: "identity extraction requires an LLM client"}
	}

	image, err := os.ReadFile(path)
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to read identity card: %v", err)}
	}

	out, err := e.LLM.GenerateJSONFromImage(ctx, identityPrompt, imageFormat(path), image)
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to process identity card: %v", err)}
	}

	if err := schemas.Validate(schemas.IdentityCard, out); err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("identity card extraction did not match schema: %v", err)}
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(out), &fields); err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to decode identity card extraction: %v", err)}
	}
	return types.RawExtraction{Fields: fields}
}

// imageFormat maps a file extension to the format name the Gemini SDK wants.
func imageFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return "png"
	}
}
