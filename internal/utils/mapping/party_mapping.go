package mapping

import (
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/models"
)

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		IDProof:     m.IDProof,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		IDProof:     d.IDProof,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExecutive converts a model Executive to a domain Executive
func ToDomainExecutive(m models.Executive) domain.Executive {
	return domain.Executive{
		ExecutiveID:    m.ExecutiveID,
		Name:           m.Name,
		Phone:          m.Phone,
		CommissionRate: m.CommissionRate,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelExecutive converts a domain Executive to a model Executive
func ToModelExecutive(d domain.Executive) models.Executive {
	return models.Executive{
		ExecutiveID:    d.ExecutiveID,
		Name:           d.Name,
		Phone:          d.Phone,
		CommissionRate: d.CommissionRate,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}
