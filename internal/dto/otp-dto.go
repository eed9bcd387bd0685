package dto

type OTPRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPDTO struct {
	EmpID uint64 `json:"empId" validate:"required"`
	OTP   string `json:"otp" validate:"required,digits6"`
}

type OTPResponseDTO struct {
	EmpID   uint64 `json:"empId"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
