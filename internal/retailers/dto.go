package retailers

// RegisterRequest carries a new retailer account.
type RegisterRequest struct {
	Aadhaar        string `json:"aadhaar" validate:"required,max=20"`
	EnterpriseName string `json:"enterprise_name" validate:"required,max=130"`
	OwnerName      string `json:"owner_name" validate:"required,max=120"`
	MobileNumber   string `json:"mobile_number" validate:"required,max=15"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	State          string `json:"state" validate:"required,max=120"`
	City           string `json:"city" validate:"required,max=100"`
	GSTIN          string `json:"gstin" validate:"required,max=20"`
	PAN            string `json:"pan" validate:"required,max=20"`
}

// LoginRequest carries retailer credentials.
type LoginRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Token    string   `json:"token"`
	Retailer Retailer `json:"retailer"`
}
