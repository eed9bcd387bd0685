package dto

// EmployeeCreateDTO is shared by the create endpoint and the spreadsheet importer.
type EmployeeCreateDTO struct {
	EmpNo          string `json:"empNo" validate:"required,empno"`
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	BirthDate      *Date  `json:"birthDate"`
	Gender         string `json:"gender"`
	BloodGroup     string `json:"bloodGroup" validate:"omitempty,blood_group"`
	Title          string `json:"title"`
	Designation    string `json:"designation"`
	Function       string `json:"function"`
	SubgroupCode   string `json:"subgroupCode"`
	Subgroup       string `json:"subgroup"`
	ParentDivision string `json:"parentDivision"`
	Location       string `json:"location"`
	City           string `json:"city"`
	IsAdmin        bool   `json:"isAdmin"`
	Password       string `json:"password"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	CollarWorker   string `json:"collarWorker"`
	WorkSchedule   string `json:"workSchedule"`
	WorkingHours   string `json:"workingHours"`
	Status         string `json:"status" validate:"required"`
}

type EmployeeUpdateDTO struct {
	EmpNo          string   `json:"empNo" validate:"required,empno"`
	FirstName      string   `json:"firstName" validate:"required"`
	LastName       string   `json:"lastName" validate:"required"`
	BirthDate      *Date    `json:"birthDate"`
	Gender         string   `json:"gender"`
	BloodGroup     string   `json:"bloodGroup" validate:"omitempty,blood_group"`
	Title          string   `json:"title"`
	Designation    string   `json:"designation"`
	Function       string   `json:"function"`
	SubgroupCode   string   `json:"subgroupCode"`
	Subgroup       string   `json:"subgroup"`
	ParentDivision string   `json:"parentDivision"`
	Location       string   `json:"location"`
	City           string   `json:"city"`
	IsAdmin        bool     `json:"isAdmin"`
	Password       string   `json:"password"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Phone          string   `json:"phone"`
	Address        string   `json:"address"`
	CollarWorker   string   `json:"collarWorker"`
	WorkSchedule   string   `json:"workSchedule"`
	WorkingHours   *float64 `json:"workingHours"`
	Status         string   `json:"status" validate:"required"`
	Message        string   `json:"message"`
}

// EmployeeResponseDTO is the list projection.
type EmployeeResponseDTO struct {
	ID           uint64 `json:"id"`
	EmpID        string `json:"empId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Designation  string `json:"designation"`
	Division     string `json:"division"`
	Function     string `json:"function"`
	WorkerType   string `json:"workerType"`
	AvatarColor  string `json:"avatarColor"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	Dob          *Date  `json:"dob"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Location     string `json:"location"`
	Subgroup     string `json:"subgroup"`
	SubgroupCode string `json:"subgroupCode"`
	Title        string `json:"title"`
	BloodGroup   string `json:"bloodGroup"`
	WorkSchedule string `json:"workSchedule"`
	WorkingHours string `json:"workingHours"`
}

type EmployeeDetailsDTO struct {
	EmpNo          string  `json:"empNo"`
	Title          string  `json:"title"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Gender         string  `json:"gender"`
	Location       string  `json:"location"`
	Function       string  `json:"function"`
	SubgroupCode   string  `json:"subgroupCode"`
	Subgroup       string  `json:"subgroup"`
	Designation    string  `json:"designation"`
	BirthDate      *Date   `json:"birthDate"`
	BloodGroup     string  `json:"bloodGroup"`
	ParentDivision string  `json:"parentDivision"`
	City           string  `json:"city"`
	WorkingHours   float64 `json:"workingHours"`
	CollarWorker   string  `json:"collarWorker"`
	WorkSchedule   string  `json:"workSchedule"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	IsAdmin        bool    `json:"isAdmin"`
	Status         string  `json:"status"`
	PhotoLink      string  `json:"photoLink"`
	Logged         bool    `json:"logged"`
	LastLogged     *string `json:"lastLogged"`
	IsDeleted      bool    `json:"isDeleted"`
	DeletedOn      *Date   `json:"deletedOn"`
	AvatarColor    string  `json:"avatarColor"`
}

type RecycledEmployeeDTO struct {
	ID          uint64 `json:"id"`
	EmpNo       string `json:"empNo"`
	Name        string `json:"name"`
	DeletedOn   *Date  `json:"deletedOn"`
	Designation string `json:"designation"`
	Type        string `json:"type"`
	Selected    bool   `json:"selected"`
}

type EmployeeBirthdayDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	BirthDate *Date  `json:"birthDate"`
	PhotoLink string `json:"photoLink"`
}

type IDsDTO struct {
	IDs []uint64 `json:"ids"`
}

type ChunkCountDTO struct {
	TotalChunks int64 `json:"totalChunks"`
}

type CountDTO struct {
	Count int64 `json:"count"`
}

type DeletedCountDTO struct {
	Deleted int64 `json:"deleted"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

type PhotoUploadResponseDTO struct {
	PhotoLink string `json:"photoLink"`
}
