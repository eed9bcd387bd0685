package entities

import "time"

type DivisionCount struct {
	Division string
	Count    int64
}

type FunctionGenderCount struct {
	Function string
	Males    int64
	Females  int64
}

type BloodGroupCount struct {
	BloodGroup string
	Count      int64
}

type EmployeeBirthday struct {
	ID        uint64
	Name      string
	Email     string
	Phone     string
	BirthDate *time.Time
	PhotoLink string
}
