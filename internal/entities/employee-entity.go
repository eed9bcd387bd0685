package entities

import "time"

// Employee is the aggregate root. The four components are owned by the
// employee and addressed by its id.
type Employee struct {
	ID        uint64 `json:"id" db:"emp_id"`
	EmpNo     string `json:"emp_no" db:"emp_no"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`

	Profile EmployeeProfile `json:"profile"`
	Job     EmployeeJob     `json:"job"`
	Contact EmployeeContact `json:"contact"`
	Status  EmployeeStatus  `json:"status"`
}

type EmployeeProfile struct {
	BirthDate  *time.Time `json:"birth_date" db:"birth_date"`
	Gender     string     `json:"gender" db:"gender"`
	BloodGroup string     `json:"blood_group" db:"blood_group"`
	PhotoLink  string     `json:"photo_link" db:"emp_photo_link"`
}

type EmployeeJob struct {
	Title          string `json:"title" db:"title"`
	Designation    string `json:"designation" db:"designation"`
	Function       string `json:"function" db:"job_function"`
	SubgroupCode   string `json:"subgroup_code" db:"subgroup_code"`
	Subgroup       string `json:"subgroup" db:"subgroup"`
	ParentDivision string `json:"parent_division" db:"parent_division"`
	Location       string `json:"location" db:"location"`
	City           string `json:"city" db:"city"`
	IsAdmin        bool   `json:"is_admin" db:"is_admin"`

	PasswordHash string `json:"-" db:"password"`
}

type EmployeeContact struct {
	Email   string `json:"email" db:"email"`
	Phone   string `json:"phone" db:"phone"`
	Address string `json:"address" db:"address"`
}

type EmployeeStatus struct {
	CollarWorker string     `json:"collar_worker" db:"collar_worker"`
	WorkSchedule string     `json:"work_schedule" db:"work_schedule"`
	WorkingHours string     `json:"working_hours" db:"working_hours"`
	Status       string     `json:"status" db:"status"`
	IsDeleted    bool       `json:"is_deleted" db:"is_deleted"`
	DeletedOn    *time.Time `json:"deleted_on" db:"deleted_on"`
	OTP          *string    `json:"-" db:"otp"`
	OTPExpiry    *time.Time `json:"-" db:"otp_expiry"`
	Logged       bool       `json:"logged" db:"logged"`
	LastLogged   *time.Time `json:"last_logged" db:"last_logged"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
