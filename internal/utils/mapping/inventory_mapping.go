package mapping

import (
	"github.com/plotbooks/plotbooks_backend/internal/core/domain"
	"github.com/plotbooks/plotbooks_backend/internal/models"
)

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Location:    m.Location,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		Location:    d.Location,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPlot converts a model Plot to a domain Plot
func ToDomainPlot(m models.Plot) domain.Plot {
	return domain.Plot{
		PlotID:      m.PlotID,
		ProjectID:   m.ProjectID,
		PlotNumber:  m.PlotNumber,
		AreaSqYd:    m.AreaSqYd,
		RatePerYd:   m.RatePerYd,
		Status:      domain.PlotStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPlot converts a domain Plot to a model Plot
func ToModelPlot(d domain.Plot) models.Plot {
	return models.Plot{
		PlotID:      d.PlotID,
		ProjectID:   d.ProjectID,
		PlotNumber:  d.PlotNumber,
		AreaSqYd:    d.AreaSqYd,
		RatePerYd:   d.RatePerYd,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:   m.BookingID,
		CustomerID:  m.CustomerID,
		PlotID:      m.PlotID,
		ExecutiveID: m.ExecutiveID,
		BookingDate: m.BookingDate,
		TotalAmount: m.TotalAmount,
		Status:      domain.BookingStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:   d.BookingID,
		CustomerID:  d.CustomerID,
		PlotID:      d.PlotID,
		ExecutiveID: d.ExecutiveID,
		BookingDate: d.BookingDate,
		TotalAmount: d.TotalAmount,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
