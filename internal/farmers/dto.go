package farmers

// RegisterRequest carries a new farmer account.
type RegisterRequest struct {
	FarmerName   string `json:"farmer_name" validate:"required,max=120"`
	MobileNumber string `json:"mobile_number" validate:"required,max=15"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Gender       string `json:"gender" validate:"required,max=6"`
	State        string `json:"state" validate:"required,max=120"`
	City         string `json:"city" validate:"required,max=120"`
	Aadhaar      string `json:"aadhaar" validate:"required,max=20"`
}

// LoginRequest carries farmer credentials.
type LoginRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Farmer  Farmer `json:"farmer"`
}
