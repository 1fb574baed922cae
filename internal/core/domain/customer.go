package domain

// Customer is a buyer (or prospective buyer) of plots.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	IDProof    string `json:"idProof"` // PAN / Aadhaar number captured at intake
	IsActive   bool   `json:"isActive"`
	AuditFields
}
