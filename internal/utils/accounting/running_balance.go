package accounting

import (
	"sort"
	"time"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortPostings orders postings by (transactionDate asc, seq asc). Seq is the
// per-account insertion order, so the result is deterministic for any input
// permutation. This is used in both services and repositories to ensure a
// single canonical ordering everywhere balances are derived.
func SortPostings(postings []domain.Posting) {
	sort.SliceStable(postings, func(i, j int) bool {
		if !postings[i].TransactionDate.Equal(postings[j].TransactionDate) {
			return postings[i].TransactionDate.Before(postings[j].TransactionDate)
		}
		return postings[i].Seq < postings[j].Seq
	})
}

// ComputeRunningBalances folds an ordered posting sequence from an opening
// balance, annotating each posting with the balance immediately after it:
//
//	balance[i] = balance[i-1] + credit[i] - debit[i]
//
// The input slice is sorted in place and mutated (RunningBalance set). The
// returned closing balance equals the opening balance when the sequence is
// empty. Pure with respect to any external state; re-runnable from any
// historical opening balance.
func ComputeRunningBalances(openingBalance decimal.Decimal, postings []domain.Posting) ([]domain.Posting, decimal.Decimal) {
	SortPostings(postings)
	balance := openingBalance
	for i := range postings {
		balance = balance.Add(postings[i].SignedAmount())
		postings[i].RunningBalance = balance
	}
	return postings, balance
}

// Fold returns only the closing balance of a posting sequence.
func Fold(openingBalance decimal.Decimal, postings []domain.Posting) decimal.Decimal {
	balance := openingBalance
	for i := range postings {
		balance = balance.Add(postings[i].SignedAmount())
	}
	return balance
}

// AppendsAtTail reports whether a posting dated postingDate lands at the
// end of an account whose latest posting is dated lastDate. A nil lastDate
// means the account has no postings yet. A tail append extends the running
// balance with a single addition; an earlier date lands mid-sequence and the
// account's balances must be recomputed from the opening balance. Dates are
// compared at day granularity.
func AppendsAtTail(postingDate time.Time, lastDate *time.Time) bool {
	if lastDate == nil {
		return true
	}
	return !DateOnly(postingDate).Before(DateOnly(*lastDate))
}

// Totals sums the debit and credit columns of a posting slice.
func Totals(postings []domain.Posting) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit, totalCredit = decimal.Zero, decimal.Zero
	for _, p := range postings {
		totalDebit = totalDebit.Add(p.Debit)
		totalCredit = totalCredit.Add(p.Credit)
	}
	return totalDebit, totalCredit
}

// DateOnly truncates a timestamp to its calendar date in UTC. Posting order
// within a date is governed by seq, never time of day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
