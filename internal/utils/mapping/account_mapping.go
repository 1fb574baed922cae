package mapping

import (
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		PartyType:      string(d.PartyType),
		PartyID:        d.PartyID,
		Name:           d.Name,
		Class:          string(d.Class),
		OpeningBalance: d.OpeningBalance,
		OpeningType:    string(d.OpeningType),
		Balance:        d.Balance,
		Version:        d.Version,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		PartyType:      domain.PartyType(m.PartyType),
		PartyID:        m.PartyID,
		Name:           m.Name,
		Class:          domain.LedgerAccountClass(m.Class),
		OpeningBalance: m.OpeningBalance,
		OpeningType:    domain.BalanceType(m.OpeningType),
		Balance:        m.Balance,
		Version:        m.Version,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
