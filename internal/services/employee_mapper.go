package services

import (
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/entities"
	"employee-system/pkg/constants"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// AvatarColor maps an employee id onto the palette; the same id always gets the same colour.
func AvatarColor(id uint64) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatUint(id, 10)))
	return constants.AvatarPalette[h.Sum32()%uint32(len(constants.AvatarPalette))]
}

// parseWorkingHours keeps only digits and dots; anything unparsable is 0.
func parseWorkingHours(raw string) float64 {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func formatWorkingHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toEmployeeResponse(e *entities.Employee) dto.EmployeeResponseDTO {
	return dto.EmployeeResponseDTO{
		ID:           e.ID,
		EmpID:        e.EmpNo,
		Name:         e.FullName(),
		Email:        e.Contact.Email,
		Designation:  e.Job.Designation,
		Division:     e.Job.ParentDivision,
		Function:     e.Job.Function,
		WorkerType:   e.Status.CollarWorker,
		AvatarColor:  AvatarColor(e.ID),
		Phone:        e.Contact.Phone,
		Gender:       e.Profile.Gender,
		Dob:          dto.DatePtr(e.Profile.BirthDate),
		Address:      e.Contact.Address,
		City:         e.Job.City,
		Location:     e.Job.Location,
		Subgroup:     e.Job.Subgroup,
		SubgroupCode: e.Job.SubgroupCode,
		Title:        e.Job.Title,
		BloodGroup:   e.Profile.BloodGroup,
		WorkSchedule: e.Status.WorkSchedule,
		WorkingHours: e.Status.WorkingHours,
	}
}

func toEmployeeResponses(list []entities.Employee) []dto.EmployeeResponseDTO {
	out := make([]dto.EmployeeResponseDTO, 0, len(list))
	for i := range list {
		out = append(out, toEmployeeResponse(&list[i]))
	}
	return out
}

func toEmployeeDetails(e *entities.Employee) *dto.EmployeeDetailsDTO {
	var lastLogged *string
	if e.Status.LastLogged != nil {
		s := e.Status.LastLogged.Format(time.RFC3339)
		lastLogged = &s
	}
	return &dto.EmployeeDetailsDTO{
		EmpNo:          e.EmpNo,
		Title:          e.Job.Title,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Gender:         e.Profile.Gender,
		Location:       e.Job.Location,
		Function:       e.Job.Function,
		SubgroupCode:   e.Job.SubgroupCode,
		Subgroup:       e.Job.Subgroup,
		Designation:    e.Job.Designation,
		BirthDate:      dto.DatePtr(e.Profile.BirthDate),
		BloodGroup:     e.Profile.BloodGroup,
		ParentDivision: e.Job.ParentDivision,
		City:           e.Job.City,
		WorkingHours:   parseWorkingHours(e.Status.WorkingHours),
		CollarWorker:   e.Status.CollarWorker,
		WorkSchedule:   e.Status.WorkSchedule,
		Email:          e.Contact.Email,
		Phone:          e.Contact.Phone,
		Address:        e.Contact.Address,
		IsAdmin:        e.Job.IsAdmin,
		Status:         e.Status.Status,
		PhotoLink:      e.Profile.PhotoLink,
		Logged:         e.Status.Logged,
		LastLogged:     lastLogged,
		IsDeleted:      e.Status.IsDeleted,
		DeletedOn:      dto.DatePtr(e.Status.DeletedOn),
		AvatarColor:    AvatarColor(e.ID),
	}
}

func toRecycledEmployee(e *entities.Employee) dto.RecycledEmployeeDTO {
	return dto.RecycledEmployeeDTO{
		ID:          e.ID,
		EmpNo:       e.EmpNo,
		Name:        e.FullName(),
		DeletedOn:   dto.DatePtr(e.Status.DeletedOn),
		Designation: e.Job.Designation,
		Type:        e.Status.CollarWorker,
		Selected:    false,
	}
}

func toEmployeeBirthday(b entities.EmployeeBirthday) dto.EmployeeBirthdayDTO {
	return dto.EmployeeBirthdayDTO{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		BirthDate: dto.DatePtr(b.BirthDate),
		PhotoLink: b.PhotoLink,
	}
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// uniqueIDs drops zeros and duplicates, keeping the first occurrence order.
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
