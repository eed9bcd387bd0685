package entities

type EmployeeIntercom struct {
	ID          uint64  `json:"id" db:"id"`
	EmpNo       string  `json:"emp_no" db:"emp_no"`
	Intercom    *int    `json:"intercom" db:"intercom"`
	Grade       *string `json:"grade" db:"grade"`
	Floor       *int    `json:"floor" db:"floor"`
	Name        *string `json:"name" db:"name"`
	Email       *string `json:"email" db:"email"`
	Designation *string `json:"designation" db:"designation"`
	Division    *string `json:"division" db:"parent_division"`
	Function    *string `json:"function" db:"job_function"`
	WorkerType  *string `json:"worker_type" db:"collar_worker"`
	Phone       *string `json:"phone" db:"phone"`
	Location    *string `json:"location" db:"location"`
	Status      *string `json:"status" db:"status"`
}
