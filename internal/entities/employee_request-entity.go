package entities

import "time"

// EmployeeRequest is a proposed edit of an employee, kept until an approver acts on it.
type EmployeeRequest struct {
	ID             uint64    `db:"request_id"`
	EmpID          uint64    `db:"emp_id"`
	EmpNo          string    `db:"emp_no"`
	Title          string    `db:"title"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Gender         string    `db:"gender"`
	Location       string    `db:"location"`
	Function       string    `db:"job_function"`
	SubgroupCode   string    `db:"subgroup_code"`
	Subgroup       string    `db:"subgroup"`
	Designation    string    `db:"designation"`
	BirthDate      string    `db:"birth_date"`
	BloodGroup     string    `db:"blood_group"`
	ParentDivision string    `db:"parent_division"`
	City           string    `db:"city"`
	WorkingHours   *float64  `db:"working_hours"`
	CollarWorker   string    `db:"collar_worker"`
	WorkSchedule   string    `db:"work_schedule"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	Address        string    `db:"address"`
	IsAdmin        bool      `db:"is_admin"`
	Status         string    `db:"status"`
	RequestDate    time.Time `db:"request_date"`
	Message        string    `db:"message"`
}

// EmployeeRequestRow is the listing projection joined with the requester's contact.
type EmployeeRequestRow struct {
	RequestID   uint64
	EmpID       uint64
	EmpNo       string
	Name        string
	RequestDate time.Time
	Mobile      string
	Email       string
	Message     string
}

type RequestState struct {
	ID      uint64 `db:"id"`
	EmpID   uint64 `db:"emp_id"`
	Status  string `db:"r_status"`
	Message string `db:"r_message"`
}
