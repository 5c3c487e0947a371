package extraction

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/mansoor/social-support-agent/internal/types"
)

// AssetsLiabilitiesExtractor parses a CSV asset/liability ledger with columns
// type, category, value. Rows typed "Asset" add to total assets, rows typed
// "Liability" to total liabilities; everything else is ignored.
type AssetsLiabilitiesExtractor struct{}

func (e *AssetsLiabilitiesExtractor) Kind() types.SourceKind {
	return types.SourceAssetsLiabilities
}

func (e *AssetsLiabilitiesExtractor) Extract(ctx context.Context, path string) types.RawExtraction {
	file, err := os.Open(path)
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to open assets ledger: %v", err)}
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to parse assets ledger: %v", err)}
	}
	if len(rows) < 2 {
		return types.RawExtraction{Error: "assets ledger has no rows"}
	}

	col := headerIndex(rows[0])
	var totalAssets, totalLiabilities float64
	for _, row := range rows[1:] {
		value, ok := cellNumber(row, col, "value")
		if !ok {
			continue
		}
		switch strings.ToLower(cell(row, col, "type")) {
		case "asset":
			totalAssets += value
		case "liability":
			totalLiabilities += value
		}
	}

	return types.RawExtraction{Fields: map[string]any{
		"total_assets":      totalAssets,
		"total_liabilities": totalLiabilities,
		"net_worth":         totalAssets - totalLiabilities,
	}}
}
