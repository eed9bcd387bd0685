package dto

type EmployeeRequestsDTO struct {
	RequestID   uint64 `json:"requestId"`
	EmpID       uint64 `json:"empId"`
	EmpNo       string `json:"empNo"`
	Name        string `json:"name"`
	RequestDate string `json:"requestDate"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Message     string `json:"message"`
}

type EmployeeRequestDetailsDTO struct {
	RequestID      uint64   `json:"requestId"`
	EmpID          uint64   `json:"empId"`
	EmpNo          string   `json:"empNo"`
	Title          string   `json:"title"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Gender         string   `json:"gender"`
	Location       string   `json:"location"`
	Function       string   `json:"function"`
	SubgroupCode   string   `json:"subgroupCode"`
	Subgroup       string   `json:"subgroup"`
	Designation    string   `json:"designation"`
	BirthDate      string   `json:"birthDate"`
	BloodGroup     string   `json:"bloodGroup"`
	ParentDivision string   `json:"parentDivision"`
	City           string   `json:"city"`
	WorkingHours   *float64 `json:"workingHours"`
	CollarWorker   string   `json:"collarWorker"`
	WorkSchedule   string   `json:"workSchedule"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	IsAdmin        bool     `json:"isAdmin"`
	Status         string   `json:"status"`
	RequestDate    string   `json:"requestDate"`
	Message        string   `json:"message"`
}

type SubmitRequestResponseDTO struct {
	RequestID uint64 `json:"requestId"`
}

type RequestStatusDTO struct {
	EmpID    uint64 `json:"emp_id" validate:"required"`
	RStatus  string `json:"r_status" validate:"required,max=50"`
	RMessage string `json:"r_message"`
}

type RequestStateResponseDTO struct {
	EmpID    uint64 `json:"emp_id,omitempty"`
	RStatus  string `json:"r_status"`
	RMessage string `json:"r_message"`
}
