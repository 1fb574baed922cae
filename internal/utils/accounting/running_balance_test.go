package accounting_test

import (
	"testing"
	"time"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func posting(seq int64, day time.Time, debit, credit int64) domain.Posting {
	return domain.Posting{
		PostingID:       "p" + decimal.NewFromInt(seq).String(),
		Seq:             seq,
		TransactionDate: day,
		Debit:           decimal.NewFromInt(debit),
		Credit:          decimal.NewFromInt(credit),
	}
}

func TestComputeRunningBalances_OpeningDrScenario(t *testing.T) {
	// opening 1000, debit 200 then credit 500 -> [800, 1300], closing 1300
	opening := decimal.NewFromInt(1000)
	postings := []domain.Posting{
		posting(1, date(2025, time.April, 1), 200, 0),
		posting(2, date(2025, time.April, 2), 0, 500),
	}

	annotated, closing := accounting.ComputeRunningBalances(opening, postings)

	require.Len(t, annotated, 2)
	assert.True(t, annotated[0].RunningBalance.Equal(decimal.NewFromInt(800)), "got %s", annotated[0].RunningBalance)
	assert.True(t, annotated[1].RunningBalance.Equal(decimal.NewFromInt(1300)), "got %s", annotated[1].RunningBalance)
	assert.True(t, closing.Equal(decimal.NewFromInt(1300)))
}

func TestComputeRunningBalances_EmptySequence(t *testing.T) {
	opening := decimal.NewFromInt(42)
	annotated, closing := accounting.ComputeRunningBalances(opening, nil)
	assert.Empty(t, annotated)
	assert.True(t, closing.Equal(opening))
}

func TestComputeRunningBalances_Deterministic(t *testing.T) {
	opening := decimal.NewFromInt(100)
	// Same date throughout; seq must fully determine the order.
	shuffled := []domain.Posting{
		posting(3, date(2025, time.May, 10), 0, 30),
		posting(1, date(2025, time.May, 10), 50, 0),
		posting(2, date(2025, time.May, 10), 0, 10),
	}
	annotated, closing := accounting.ComputeRunningBalances(opening, shuffled)

	require.Len(t, annotated, 3)
	assert.Equal(t, int64(1), annotated[0].Seq)
	assert.True(t, annotated[0].RunningBalance.Equal(decimal.NewFromInt(50)))
	assert.True(t, annotated[1].RunningBalance.Equal(decimal.NewFromInt(60)))
	assert.True(t, annotated[2].RunningBalance.Equal(decimal.NewFromInt(90)))
	assert.True(t, closing.Equal(decimal.NewFromInt(90)))

	// Re-running on the already ordered slice yields the identical sequence.
	again, closingAgain := accounting.ComputeRunningBalances(opening, annotated)
	for i := range again {
		assert.True(t, again[i].RunningBalance.Equal(annotated[i].RunningBalance))
	}
	assert.True(t, closingAgain.Equal(closing))
}

func TestFold_MatchesClosingIdentity(t *testing.T) {
	opening := decimal.NewFromInt(250)
	postings := []domain.Posting{
		posting(1, date(2025, time.June, 1), 100, 0),
		posting(2, date(2025, time.June, 3), 0, 700),
		posting(3, date(2025, time.June, 3), 40, 0),
	}
	totalDebit, totalCredit := accounting.Totals(postings)
	closing := accounting.Fold(opening, postings)

	// closing == opening + sum(credit) - sum(debit)
	assert.True(t, closing.Equal(opening.Add(totalCredit).Sub(totalDebit)))
}

func TestAppendsAtTail(t *testing.T) {
	last := date(2025, time.April, 10)

	// First posting on an empty account always appends.
	assert.True(t, accounting.AppendsAtTail(date(2025, time.April, 1), nil))

	// Same day or later than the newest posting extends the tail.
	assert.True(t, accounting.AppendsAtTail(date(2025, time.April, 10), &last))
	assert.True(t, accounting.AppendsAtTail(date(2025, time.April, 11), &last))

	// An earlier date lands mid-sequence.
	assert.False(t, accounting.AppendsAtTail(date(2025, time.April, 9), &last))

	// Time of day does not matter, only the calendar date.
	lateInDay := time.Date(2025, time.April, 10, 23, 59, 0, 0, time.UTC)
	assert.True(t, accounting.AppendsAtTail(lateInDay, &last))
}

func TestComputeRunningBalances_BackdatedInsertShiftsDownstream(t *testing.T) {
	// Account history: credit 100 on the 1st, debit 30 on the 20th.
	opening := decimal.Zero
	existing := []domain.Posting{
		posting(1, date(2025, time.May, 1), 0, 100),
		posting(2, date(2025, time.May, 20), 30, 0),
	}
	_, closingBefore := accounting.ComputeRunningBalances(opening, existing)
	require.True(t, closingBefore.Equal(decimal.NewFromInt(70)))

	// A receipt dated the 10th cannot append at the tail.
	lastDate := existing[len(existing)-1].TransactionDate
	backdated := posting(3, date(2025, time.May, 10), 0, 50)
	require.False(t, accounting.AppendsAtTail(backdated.TransactionDate, &lastDate))

	annotated, closing := accounting.ComputeRunningBalances(opening, append(existing, backdated))

	// It slots between the two existing postings and shifts every later
	// running balance.
	require.Len(t, annotated, 3)
	assert.Equal(t, int64(1), annotated[0].Seq)
	assert.Equal(t, int64(3), annotated[1].Seq)
	assert.True(t, annotated[1].RunningBalance.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(2), annotated[2].Seq)
	assert.True(t, annotated[2].RunningBalance.Equal(decimal.NewFromInt(120)))
	assert.True(t, closing.Equal(decimal.NewFromInt(120)))
}

func TestComputeRunningBalances_DateMoveReordersSequence(t *testing.T) {
	// Editing a posting's date reorders the sequence but never changes the
	// closing balance, since no amount changed.
	opening := decimal.NewFromInt(500)
	postings := []domain.Posting{
		posting(1, date(2025, time.June, 1), 0, 200),
		posting(2, date(2025, time.June, 10), 150, 0),
		posting(3, date(2025, time.June, 20), 0, 80),
	}
	_, closingBefore := accounting.ComputeRunningBalances(opening, postings)

	// Move the middle debit to before the first credit.
	for i := range postings {
		if postings[i].Seq == 2 {
			postings[i].TransactionDate = date(2025, time.May, 25)
		}
	}
	annotated, closingAfter := accounting.ComputeRunningBalances(opening, postings)

	require.Len(t, annotated, 3)
	assert.Equal(t, int64(2), annotated[0].Seq)
	assert.True(t, annotated[0].RunningBalance.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, int64(1), annotated[1].Seq)
	assert.True(t, annotated[1].RunningBalance.Equal(decimal.NewFromInt(550)))
	assert.True(t, annotated[2].RunningBalance.Equal(decimal.NewFromInt(630)))
	assert.True(t, closingAfter.Equal(closingBefore))
}

func TestComputeRunningBalances_RemovalAdjustsClosing(t *testing.T) {
	// Deleting a posting moves the closing balance by exactly the signed
	// amount removed.
	opening := decimal.NewFromInt(100)
	postings := []domain.Posting{
		posting(1, date(2025, time.July, 1), 0, 300),
		posting(2, date(2025, time.July, 5), 40, 0),
		posting(3, date(2025, time.July, 9), 0, 60),
	}
	_, closingBefore := accounting.ComputeRunningBalances(opening, postings)

	removed := postings[0]
	remaining := []domain.Posting{postings[1], postings[2]}
	annotated, closingAfter := accounting.ComputeRunningBalances(opening, remaining)

	require.Len(t, annotated, 2)
	assert.True(t, annotated[0].RunningBalance.Equal(decimal.NewFromInt(60)))
	assert.True(t, annotated[1].RunningBalance.Equal(decimal.NewFromInt(120)))
	assert.True(t, closingAfter.Equal(closingBefore.Sub(removed.SignedAmount())))
}

func TestComputeRunningBalances_DecimalPrecision(t *testing.T) {
	// Repeated additions of 0.1 must not drift.
	opening := decimal.Zero
	tenth := decimal.RequireFromString("0.10")
	postings := make([]domain.Posting, 0, 1000)
	for i := int64(1); i <= 1000; i++ {
		p := posting(i, date(2025, time.July, 1), 0, 0)
		p.Credit = tenth
		postings = append(postings, p)
	}

	_, closing := accounting.ComputeRunningBalances(opening, postings)
	assert.True(t, closing.Equal(decimal.RequireFromString("100.00")), "got %s", closing)
}
