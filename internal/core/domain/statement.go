package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the result of a range query against one account: the balance
// carried into the range, the in-range postings with running balances, and
// the balance after the last of them.
type Statement struct {
	Party          PartyRef        `json:"party"`
	AccountName    string          `json:"accountName"`
	From           *time.Time      `json:"from,omitempty"` // nil means all time
	To             *time.Time      `json:"to,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Postings       []Posting       `json:"postings"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// CashBookDay is one day of the cash book: the combined cash/bank postings
// for that date with the day's opening and closing balances.
type CashBookDay struct {
	Date           time.Time       `json:"date"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Entries        []Posting       `json:"items"`
	TotalReceipt   decimal.Decimal `json:"totalReceipt"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// CashBook is the day-grouped receipts/payments register over a date range.
type CashBook struct {
	From time.Time     `json:"from"`
	To   time.Time     `json:"to"`
	Days []CashBookDay `json:"data"`
}

// DailyCollection is the register of all receipts taken on a single day,
// with totals split by payment mode.
type DailyCollection struct {
	Date    time.Time                       `json:"date"`
	Entries []Posting                       `json:"entries"`
	Total   decimal.Decimal                 `json:"total"`
	ByMode  map[PaymentMode]decimal.Decimal `json:"byMode"`
}

// OutstandingRow is one customer with a receivable (Dr) closing balance.
type OutstandingRow struct {
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone"`
	Outstanding  decimal.Decimal `json:"outstanding"` // positive amount owed
}
