package mapping

import (
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/models"
)

// ToModelPosting converts a domain Posting to a model Posting
func ToModelPosting(d domain.Posting) models.Posting {
	return models.Posting{
		PostingID:       d.PostingID,
		AccountID:       d.AccountID,
		PartyType:       string(d.PartyType),
		PartyID:         d.PartyID,
		TransactionDate: d.TransactionDate,
		Seq:             d.Seq,
		Debit:           d.Debit,
		Credit:          d.Credit,
		EntryType:       string(d.EntryType),
		Description:     d.Description,
		ReferenceType:   string(d.ReferenceType),
		ReferenceID:     d.ReferenceID,
		PaymentMode:     string(d.PaymentMode),
		BankName:        d.BankName,
		ReceiptNumber:   d.ReceiptNumber,
		RunningBalance:  d.RunningBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPosting converts a model Posting to a domain Posting
func ToDomainPosting(m models.Posting) domain.Posting {
	return domain.Posting{
		PostingID:       m.PostingID,
		AccountID:       m.AccountID,
		PartyType:       domain.PartyType(m.PartyType),
		PartyID:         m.PartyID,
		TransactionDate: m.TransactionDate,
		Seq:             m.Seq,
		Debit:           m.Debit,
		Credit:          m.Credit,
		EntryType:       domain.EntryType(m.EntryType),
		Description:     m.Description,
		ReferenceType:   domain.ReferenceType(m.ReferenceType),
		ReferenceID:     m.ReferenceID,
		PaymentMode:     domain.PaymentMode(m.PaymentMode),
		BankName:        m.BankName,
		ReceiptNumber:   m.ReceiptNumber,
		RunningBalance:  m.RunningBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPostingSlice converts a slice of model Postings to domain Postings
func ToDomainPostingSlice(ms []models.Posting) []domain.Posting {
	result := make([]domain.Posting, len(ms))
	for i, m := range ms {
		result[i] = ToDomainPosting(m)
	}
	return result
}
