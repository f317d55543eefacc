package farmers

// Farmer is a seller account owning products.
type Farmer struct {
	ID           int64  `json:"id" db:"id"`
	FarmerName   string `json:"farmer_name" db:"farmer_name"`
	MobileNumber string `json:"mobile_number" db:"mobile_number"`
	PasswordHash string `json:"-" db:"password_hash"`
	Gender       string `json:"gender" db:"gender"`
	State        string `json:"state" db:"state"`
	City         string `json:"city" db:"city"`
	Aadhaar      string `json:"aadhaar" db:"aadhaar"`
}
