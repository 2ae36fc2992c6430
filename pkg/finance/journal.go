package finance

import "errors"

var (
	// ErrBothSides is returned when a line carries a debit and a credit at once.
	ErrBothSides = errors.New("a journal line may carry a debit or a credit, not both")
	// ErrTooFewLines is returned when fewer than two lines carry an amount.
	ErrTooFewLines = errors.New("a journal entry needs at least two funded lines")
	// ErrUnbalanced is returned when posting an entry whose sides do not match.
	ErrUnbalanced = errors.New("journal entry is not balanced")
)

// BalanceLine is one debit/credit leg keyed by account.
type BalanceLine struct {
	AccountID string
	Debit     float64
	Credit    float64
}

// BalanceResult is the outcome of checking a set of journal lines.
// DuplicateAccounts lists accounts appearing on more than one line; that is
// a consolidation hint for the caller, never a posting blocker.
type BalanceResult struct {
	Balanced          bool     `json:"balanced"`
	Difference        float64  `json:"difference"`
	DebitTotal        float64  `json:"debit_total"`
	CreditTotal       float64  `json:"credit_total"`
	FundedLines       int      `json:"funded_lines"`
	DuplicateAccounts []string `json:"duplicate_accounts,omitempty"`
}

// CheckBalance verifies the double-entry invariant over a set of lines:
// sum(debit) must equal sum(credit) within BalanceTolerance. Lines with both
// sides set or negative amounts are rejected outright.
func CheckBalance(lines []BalanceLine) (*BalanceResult, error) {
	var debits, credits float64
	funded := 0
	seen := map[string]int{}
	var duplicates []string

	for _, line := range lines {
		if line.Debit < 0 || line.Credit < 0 {
			return nil, ErrNegativeAmount
		}
		if line.Debit > 0 && line.Credit > 0 {
			return nil, ErrBothSides
		}
		if line.Debit > 0 || line.Credit > 0 {
			funded++
		}
		debits += line.Debit
		credits += line.Credit

		seen[line.AccountID]++
		if seen[line.AccountID] == 2 {
			duplicates = append(duplicates, line.AccountID)
		}
	}

	diff := Round2(debits - credits)
	if diff < 0 {
		diff = -diff
	}

	return &BalanceResult{
		Balanced:          diff < BalanceTolerance,
		Difference:        diff,
		DebitTotal:        Round2(debits),
		CreditTotal:       Round2(credits),
		FundedLines:       funded,
		DuplicateAccounts: duplicates,
	}, nil
}

// PostingError returns the reason an entry cannot be posted, or nil.
// Duplicate accounts are intentionally not checked here.
func (r *BalanceResult) PostingError() error {
	if r.FundedLines < 2 {
		return ErrTooFewLines
	}
	if !r.Balanced {
		return ErrUnbalanced
	}
	return nil
}
