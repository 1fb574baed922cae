package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/utils/numtowords"
)

// StatementParams defines query parameters for the party ledger statement.
type StatementParams struct {
	PartyType string `form:"partyType" binding:"required,oneof=CUSTOMER LEDGER_ACCOUNT EXECUTIVE"`
	PartyID   string `form:"partyId" binding:"required"`
	StartDate string `form:"startDate"` // YYYY-MM-DD, optional
	EndDate   string `form:"endDate"`   // YYYY-MM-DD, optional
}

// DateRangeParams defines query parameters for range reports like the cash book.
type DateRangeParams struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

// DateParams defines query parameters for single-day reports.
type DateParams struct {
	Date string `form:"date" binding:"required"`
}

// StatementResponse represents the party ledger statement response.
type StatementResponse struct {
	PartyType      domain.PartyType      `json:"partyType"`
	PartyID        string                `json:"partyId"`
	AccountName    string                `json:"accountName"`
	FromDate       string                `json:"fromDate,omitempty"`
	ToDate         string                `json:"toDate,omitempty"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	OpeningType    domain.BalanceType    `json:"openingType"`
	Entries        []TransactionResponse `json:"entries"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
	ClosingType    domain.BalanceType    `json:"closingType"`
	ClosingInWords string                `json:"closingInWords"`
}

// CashBookDayResponse represents one day of the cash book report.
type CashBookDayResponse struct {
	Date           string                `json:"date"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	OpeningType    domain.BalanceType    `json:"openingType"`
	Entries        []TransactionResponse `json:"entries"`
	TotalReceipt   decimal.Decimal       `json:"totalReceipt"`
	TotalPayment   decimal.Decimal       `json:"totalPayment"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
	ClosingType    domain.BalanceType    `json:"closingType"`
}

// CashBookResponse represents the cash book report response.
type CashBookResponse struct {
	FromDate string                `json:"fromDate"`
	ToDate   string                `json:"toDate"`
	Days     []CashBookDayResponse `json:"days"`
}

// DailyCollectionResponse represents the daily collection report response.
type DailyCollectionResponse struct {
	Date         string                             `json:"date"`
	Entries      []TransactionResponse              `json:"entries"`
	Total        decimal.Decimal                    `json:"total"`
	TotalInWords string                             `json:"totalInWords"`
	ByMode       map[domain.PaymentMode]decimal.Decimal `json:"byMode"`
}

// OutstandingRowResponse represents one customer in the outstanding dues report.
type OutstandingRowResponse struct {
	CustomerID   string          `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone,omitempty"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// OutstandingResponse represents the outstanding dues report response.
type OutstandingResponse struct {
	Rows  []OutstandingRowResponse `json:"rows"`
	Total decimal.Decimal          `json:"total"`
}

const reportDateLayout = "2006-01-02"

// ToStatementResponse converts a domain.Statement to a DTO response.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	opening, openingType := domain.DisplayBalance(s.OpeningBalance)
	closing, closingType := domain.DisplayBalance(s.ClosingBalance)
	resp := StatementResponse{
		PartyType:      s.Party.Type,
		PartyID:        s.Party.ID,
		AccountName:    s.AccountName,
		OpeningBalance: opening,
		OpeningType:    openingType,
		Entries:        ToTransactionResponses(s.Postings),
		TotalDebit:     s.TotalDebit,
		TotalCredit:    s.TotalCredit,
		ClosingBalance: closing,
		ClosingType:    closingType,
		ClosingInWords: numtowords.Rupees(closing),
	}
	if s.From != nil {
		resp.FromDate = s.From.Format(reportDateLayout)
	}
	if s.To != nil {
		resp.ToDate = s.To.Format(reportDateLayout)
	}
	return resp
}

// ToCashBookResponse converts a domain.CashBook to a DTO response.
func ToCashBookResponse(cb *domain.CashBook) CashBookResponse {
	days := make([]CashBookDayResponse, len(cb.Days))
	for i, day := range cb.Days {
		opening, openingType := domain.DisplayBalance(day.OpeningBalance)
		closing, closingType := domain.DisplayBalance(day.ClosingBalance)
		days[i] = CashBookDayResponse{
			Date:           day.Date.Format(reportDateLayout),
			OpeningBalance: opening,
			OpeningType:    openingType,
			Entries:        ToTransactionResponses(day.Entries),
			TotalReceipt:   day.TotalReceipt,
			TotalPayment:   day.TotalPayment,
			ClosingBalance: closing,
			ClosingType:    closingType,
		}
	}
	return CashBookResponse{
		FromDate: cb.From.Format(reportDateLayout),
		ToDate:   cb.To.Format(reportDateLayout),
		Days:     days,
	}
}

// ToDailyCollectionResponse converts a domain.DailyCollection to a DTO response.
func ToDailyCollectionResponse(dc *domain.DailyCollection) DailyCollectionResponse {
	return DailyCollectionResponse{
		Date:         dc.Date.Format(reportDateLayout),
		Entries:      ToTransactionResponses(dc.Entries),
		Total:        dc.Total,
		TotalInWords: numtowords.Rupees(dc.Total),
		ByMode:       dc.ByMode,
	}
}

// ToOutstandingResponse converts outstanding rows to a DTO response with a grand total.
func ToOutstandingResponse(rows []domain.OutstandingRow) OutstandingResponse {
	resp := OutstandingResponse{Rows: make([]OutstandingRowResponse, len(rows))}
	total := decimal.Zero
	for i, row := range rows {
		resp.Rows[i] = OutstandingRowResponse{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Phone:        row.Phone,
			Outstanding:  row.Outstanding,
		}
		total = total.Add(row.Outstanding)
	}
	resp.Total = total
	return resp
}

// ParseReportDate parses a YYYY-MM-DD query parameter.
func ParseReportDate(value string) (time.Time, error) {
	return time.Parse(reportDateLayout, value)
}
