package dto

import "github.com/aarondl/null/v8"

// EmployeeIntercomDTO uses null types so an omitted field can be told apart
// from an explicit empty value; omitted fields are backfilled from the employee.
type EmployeeIntercomDTO struct {
	ID          null.Uint64 `json:"id"`
	EmpNo       string      `json:"empNo" validate:"required,empno"`
	Name        null.String `json:"name"`
	Email       null.String `json:"email" validate:"omitempty,email"`
	Designation null.String `json:"designation"`
	Division    null.String `json:"division"`
	Function    null.String `json:"function"`
	WorkerType  null.String `json:"workerType"`
	Phone       null.String `json:"phone"`
	Grade       null.String `json:"grade"`
	Floor       null.Int    `json:"floor" validate:"omitempty,min=-5,max=200"`
	Location    null.String `json:"location"`
	Intercom    null.Int    `json:"intercom" validate:"omitempty,min=0"`
	Status      null.String `json:"status"`
}

type EmployeeIntercomResponseDTO struct {
	ID          uint64  `json:"id"`
	EmpNo       string  `json:"empNo"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Designation *string `json:"designation"`
	Division    *string `json:"division"`
	Function    *string `json:"function"`
	WorkerType  *string `json:"workerType"`
	Phone       *string `json:"phone"`
	Grade       *string `json:"grade"`
	Floor       *int    `json:"floor"`
	Location    *string `json:"location"`
	Intercom    *int    `json:"intercom"`
	Status      *string `json:"status"`
}
