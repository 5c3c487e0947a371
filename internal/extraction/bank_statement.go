package extraction

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mansoor/social-support-agent/internal/types"
)

// BankStatementExtractor parses a CSV bank statement export. Expected columns
// (header names, any order): emirates_id, account_holder, bank_name, date,
// description, amount, balance.
type BankStatementExtractor struct{}

func (e *BankStatementExtractor) Kind() types.SourceKind {
	return types.SourceBankStatement
}

func (e *BankStatementExtractor) Extract(ctx context.Context, path string) types.RawExtraction {
	file, err := os.Open(path)
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to open bank statement: %v", err)}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return types.RawExtraction{Error: fmt.Sprintf("failed to parse bank statement: %v", err)}
	}
	if len(rows) < 2 {
		return types.RawExtraction{Error: "bank statement has no transaction rows"}
	}

	col := headerIndex(rows[0])
	fields := map[string]any{}

	// Identity columns repeat on every row; take the first.
	first := rows[1]
	if v := cell(first, col, "emirates_id"); v != "" {
		fields["emirates_id"] = v
	}
	if v := cell(first, col, "account_holder"); v != "" {
		fields["account_holder"] = v
	}
	if v := cell(first, col, "bank_name"); v != "" {
		fields["bank_name"] = v
	}

	var (
		totalCredits  float64
		totalDebits   float64
		balanceSum    float64
		balanceCount  int
		largestSalary float64
	)
	for _, row := range rows[1:] {
		if amount, ok := cellNumber(row, col, "amount"); ok {
			if amount >= 0 {
				totalCredits += amount
			} else {
				totalDebits += -amount
			}
			if strings.Contains(strings.ToUpper(cell(row, col, "description")), "SALARY") && amount > largestSalary {
				largestSalary = amount
			}
		}
		if balance, ok := cellNumber(row, col, "balance"); ok {
			balanceSum += balance
			balanceCount++
		}
	}

	fields["total_credits"] = totalCredits
	fields["total_debits"] = totalDebits
	if balanceCount > 0 {
		fields["average_balance"] = balanceSum / float64(balanceCount)
	}
	// The largest salary-tagged credit is the income estimate; without one the
	// statement contributes no income signal.
	if largestSalary > 0 {
		fields["estimated_monthly_income"] = largestSalary
	}

	return types.RawExtraction{Fields: fields}
}

// headerIndex maps lower-cased, trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}

func cell(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellNumber(row []string, col map[string]int, name string) (float64, bool) {
	raw := cell(row, col, name)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
