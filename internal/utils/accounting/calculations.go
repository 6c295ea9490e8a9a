package accounting

import (
	"fmt"

	"github.com/arduabooks/backend/internal/apperrors"
	"github.com/arduabooks/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLine checks that exactly one of debit/credit is set and that neither is
// negative. A line failing this is a defect in the caller, never user input.
func ValidateLine(line domain.LineSpec) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: negative amount on account %s", apperrors.ErrInvalidLine, line.AccountID)
	}
	debitSet := !line.Debit.IsZero()
	creditSet := !line.Credit.IsZero()
	if debitSet == creditSet {
		return fmt.Errorf("%w: account %s has debit=%s credit=%s", apperrors.ErrInvalidLine,
			line.AccountID, line.Debit.String(), line.Credit.String())
	}
	return nil
}

// ValidateEntryBalance checks every line and that total debits equal total credits
// exactly. Decimal equality, zero tolerance.
func ValidateEntryBalance(lines []domain.LineSpec) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrInvalidLine)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedEntry, debits.String(), credits.String())
	}
	return nil
}

// SignedAmount returns the line amount signed by the account's normal balance side:
// positive when the line moves the account toward its normal balance. Display and
// balance-reporting convention only.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) decimal.Decimal {
	net := line.Debit.Sub(line.Credit)
	if accountType.NormalBalance() == domain.CreditSide {
		return net.Neg()
	}
	return net
}

// NetMovement sums the signed amounts of a set of lines for one account.
func NetMovement(lines []domain.JournalLine, accountType domain.AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(SignedAmount(line, accountType))
	}
	return total
}

// MirrorLines returns the reversal of the given lines: debit and credit swapped per
// line, accounts and order preserved.
func MirrorLines(lines []domain.JournalLine) []domain.LineSpec {
	mirrored := make([]domain.LineSpec, len(lines))
	for i, line := range lines {
		mirrored[i] = domain.LineSpec{
			AccountID: line.AccountID,
			Debit:     line.Credit,
			Credit:    line.Debit,
		}
	}
	return mirrored
}
