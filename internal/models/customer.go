package models

// Customer is the persistence shape of a customer row.
type Customer struct {
	CustomerID string `json:"customerID" db:"customer_id"`
	Name       string `json:"name" db:"name"`
	Phone      string `json:"phone" db:"phone"`
	Email      string `json:"email" db:"email"`
	Address    string `json:"address" db:"address"`
	IDProof    string `json:"idProof" db:"id_proof"`
	IsActive   bool   `json:"isActive" db:"is_active"`
	AuditFields
}
