package transport

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
	Phone *string `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=64,nefield=CurrentPassword"`
}

type AddressRequest struct {
	Label     string `json:"label" validate:"omitempty,oneof=home work other"`
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Phone     string `json:"phone" validate:"required,numeric,min=10,max=15"`
	Street    string `json:"street" validate:"required,max=255"`
	Landmark  string `json:"landmark" validate:"omitempty,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	Pincode   string `json:"pincode" validate:"required,numeric,len=6"`
	IsDefault bool   `json:"isDefault"`
}

type UpdateAddressRequest struct {
	Label     *string `json:"label" validate:"omitempty,oneof=home work other"`
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,numeric,min=10,max=15"`
	Street    *string `json:"street" validate:"omitempty,max=255"`
	Landmark  *string `json:"landmark" validate:"omitempty,max=255"`
	City      *string `json:"city" validate:"omitempty,max=100"`
	State     *string `json:"state" validate:"omitempty,max=100"`
	Pincode   *string `json:"pincode" validate:"omitempty,numeric,len=6"`
	IsDefault *bool   `json:"isDefault"`
}
