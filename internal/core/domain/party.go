package domain

import "fmt"

// PartyType identifies the kind of entity that owns a posting sequence.
type PartyType string

const (
	PartyCustomer      PartyType = "CUSTOMER"
	PartyLedgerAccount PartyType = "LEDGER_ACCOUNT"
	PartyExecutive     PartyType = "EXECUTIVE"
)

// PartyRef is a typed reference to the owning entity of an account.
// It replaces the string-prefix tagging ("customer_<id>") used by the
// legacy system with an explicit discriminated pair.
type PartyRef struct {
	Type PartyType `json:"partyType"`
	ID   string    `json:"partyId"`
}

// Validate checks that the reference carries a known party type and a non-empty ID.
func (p PartyRef) Validate() error {
	switch p.Type {
	case PartyCustomer, PartyLedgerAccount, PartyExecutive:
	default:
		return fmt.Errorf("unknown party type %q", p.Type)
	}
	if p.ID == "" {
		return fmt.Errorf("party id is required")
	}
	return nil
}

func (p PartyRef) String() string {
	return fmt.Sprintf("%s/%s", p.Type, p.ID)
}
