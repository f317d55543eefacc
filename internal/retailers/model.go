package retailers

// Retailer is a buyer account, keyed by its owner's Aadhaar number.
type Retailer struct {
	Aadhaar        string `json:"aadhaar" db:"aadhaar"`
	EnterpriseName string `json:"enterprise_name" db:"enterprise_name"`
	OwnerName      string `json:"owner_name" db:"owner_name"`
	MobileNumber   string `json:"mobile_number" db:"mobile_number"`
	PasswordHash   string `json:"-" db:"password_hash"`
	State          string `json:"state" db:"state"`
	City           string `json:"city" db:"city"`
	GSTIN          string `json:"gstin" db:"gstin"`
	PAN            string `json:"pan" db:"pan"`
}
