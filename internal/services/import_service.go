package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/events"
	"employee-system/pkg/config"
	apperrors "employee-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Employee sheet layout.
const (
	colEmpNo = iota
	colFirstName
	colLastName
	colBirthDate
	colGender
	colBloodGroup
	colTitle
	colDesignation
	colFunction
	colSubgroupCode
	colSubgroup
	colParentDivision
	colLocation
	colCity
	colIsAdmin
	colPassword
	colEmail
	colPhone
	colAddress
	colCollarWorker
	colWorkSchedule
	colWorkingHours
	colStatus
)

// Intercom sheet layout. Data starts on the third row.
const intercomFirstDataRow = 2

const (
	colIntercomEmpNo = iota
	colIntercomFirstName
	colIntercomLastName
	colIntercomFloor
	colIntercomGrade
	colIntercomNumber
)

// RowValidator is satisfied by *validation.CustomValidator.
type RowValidator interface {
	Validate(i interface{}) error
}

type EmployeeImportServiceInterface interface {
	Import(ctx context.Context, file io.Reader) (*dto.ImportResultDTO, error)
}

type IntercomImportServiceInterface interface {
	Import(ctx context.Context, file io.Reader) (*dto.ImportResultDTO, error)
}

type EmployeeImportService struct {
	employeeService EmployeeServiceInterface
	validator       RowValidator
	publisher       EventPublisher
	cfg             config.ImportConfig
	logger          *zap.Logger
	sleep           func(ctx context.Context, d time.Duration) error
}

func NewEmployeeImportService(
	employeeService EmployeeServiceInterface,
	validator RowValidator,
	publisher EventPublisher,
	cfg config.ImportConfig,
	logger *zap.Logger,
) EmployeeImportServiceInterface {
	return &EmployeeImportService{
		employeeService: employeeService,
		validator:       validator,
		publisher:       publisherOrNoop(publisher),
		cfg:             cfg,
		logger:          logger,
		sleep:           sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Import reads the first sheet, skips the header row and creates employees in
// batches. A failing row is recorded and skipped.
func (s *EmployeeImportService) Import(ctx context.Context, file io.Reader) (*dto.ImportResultDTO, error) {
	rows, err := readFirstSheet(file)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultDTO{Errors: make([]dto.ImportRowErrorDTO, 0)}
	if len(rows) <= 1 {
		return result, nil
	}

	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	created := make([]uint64, 0, len(rows)-1)
	data := rows[1:]
	for start := 0; start < len(data); start += batchSize {
		if start > 0 {
			if err := s.sleep(ctx, s.cfg.BatchPause); err != nil {
				return nil, err
			}
		}
		end := min(start+batchSize, len(data))

		for i, row := range data[start:end] {
			rowNumber := start + i + 2
			if isBlankRow(row) {
				result.Skipped++
				continue
			}

			payload, err := employeeFromRow(row)
			if err == nil {
				err = s.validator.Validate(payload)
			}
			if err == nil {
				var employee *dto.EmployeeResponseDTO
				employee, err = s.employeeService.Create(ctx, payload)
				if err == nil {
					created = append(created, employee.ID)
					result.Imported++
					continue
				}
			}

			s.logger.Warn("employee import row skipped",
				zap.Int("row", rowNumber), zap.String("empNo", payload.EmpNo), zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowErrorDTO{
				Row:    rowNumber,
				EmpNo:  payload.EmpNo,
				Reason: err.Error(),
			})
		}
	}

	s.logger.Info("employee import finished",
		zap.Int("imported", result.Imported), zap.Int("failed", result.Failed), zap.Int("skipped", result.Skipped))
	if len(created) > 0 {
		s.publisher.Publish(ctx, events.NewEmployeeEvent(events.EmployeesImportedName, created...))
	}
	return result, nil
}

func employeeFromRow(row []string) (dto.EmployeeCreateDTO, error) {
	payload := dto.EmployeeCreateDTO{
		EmpNo:          numericText(cell(row, colEmpNo)),
		FirstName:      cell(row, colFirstName),
		LastName:       cell(row, colLastName),
		Gender:         cell(row, colGender),
		BloodGroup:     cell(row, colBloodGroup),
		Title:          cell(row, colTitle),
		Designation:    cell(row, colDesignation),
		Function:       cell(row, colFunction),
		SubgroupCode:   numericText(cell(row, colSubgroupCode)),
		Subgroup:       cell(row, colSubgroup),
		ParentDivision: cell(row, colParentDivision),
		Location:       cell(row, colLocation),
		City:           cell(row, colCity),
		IsAdmin:        strings.EqualFold(cell(row, colIsAdmin), "true"),
		Password:       numericText(cell(row, colPassword)),
		Email:          cell(row, colEmail),
		Phone:          numericText(cell(row, colPhone)),
		Address:        cell(row, colAddress),
		CollarWorker:   cell(row, colCollarWorker),
		WorkSchedule:   cell(row, colWorkSchedule),
		WorkingHours:   cell(row, colWorkingHours),
		Status:         cell(row, colStatus),
	}

	if raw := cell(row, colBirthDate); raw != "" {
		birthDate, err := parseSheetDate(raw)
		if err != nil {
			return payload, apperrors.NewInvalidInputError("invalid birth date %q", raw)
		}
		payload.BirthDate = &birthDate
	}
	return payload, nil
}

type IntercomImportService struct {
	intercomService IntercomServiceInterface
	logger          *zap.Logger
}

func NewIntercomImportService(intercomService IntercomServiceInterface, logger *zap.Logger) IntercomImportServiceInterface {
	return &IntercomImportService{intercomService: intercomService, logger: logger}
}

// Import creates one record per row. Rows without an employee number are skipped;
// rows whose employee number is already listed fail with a conflict.
func (s *IntercomImportService) Import(ctx context.Context, file io.Reader) (*dto.ImportResultDTO, error) {
	rows, err := readFirstSheet(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewInvalidInputError("The uploaded workbook is empty")
	}

	result := &dto.ImportResultDTO{Errors: make([]dto.ImportRowErrorDTO, 0)}
	for i := intercomFirstDataRow; i < len(rows); i++ {
		row := rows[i]
		empNo := numericText(cell(row, colIntercomEmpNo))
		if empNo == "" {
			result.Skipped++
			continue
		}

		payload, err := intercomFromRow(empNo, row)
		if err == nil {
			_, err = s.intercomService.AddOrUpdate(ctx, payload)
		}
		if err != nil {
			s.logger.Warn("intercom import row skipped", zap.Int("row", i+1), zap.String("empNo", empNo), zap.Error(err))
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowErrorDTO{Row: i + 1, EmpNo: empNo, Reason: err.Error()})
			continue
		}
		result.Imported++
	}

	s.logger.Info("intercom import finished",
		zap.Int("imported", result.Imported), zap.Int("failed", result.Failed), zap.Int("skipped", result.Skipped))
	return result, nil
}

func intercomFromRow(empNo string, row []string) (dto.EmployeeIntercomDTO, error) {
	payload := dto.EmployeeIntercomDTO{EmpNo: empNo}

	name := strings.TrimSpace(cell(row, colIntercomFirstName) + " " + cell(row, colIntercomLastName))
	if name != "" {
		payload.Name = null.StringFrom(name)
	}
	if grade := numericText(cell(row, colIntercomGrade)); grade != "" {
		payload.Grade = null.StringFrom(grade)
	}

	floor, err := sheetInt(cell(row, colIntercomFloor))
	if err != nil {
		return payload, apperrors.NewInvalidInputError("invalid floor %q", cell(row, colIntercomFloor))
	}
	payload.Floor = floor

	number, err := sheetInt(cell(row, colIntercomNumber))
	if err != nil {
		return payload, apperrors.NewInvalidInputError("invalid intercom %q", cell(row, colIntercomNumber))
	}
	payload.Intercom = number
	return payload, nil
}

// readFirstSheet returns the raw cell values of the first worksheet so dates
// arrive as serial numbers rather than display text.
func readFirstSheet(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Unable to read the workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewInvalidInputError("The uploaded workbook is empty")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// numericText renders whole numbers without a fractional part, so a numeric
// cell holding 100 reads as "100" and not "100.0". Plain digit strings are
// returned as is to keep leading zeros.
func numericText(v string) string {
	if !strings.ContainsAny(v, ".eE") {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int64(f)) {
		return v
	}
	return strconv.FormatInt(int64(f), 10)
}

// sheetInt reads a whole number that fits an INTEGER column; "3.0" is accepted, "3.7" is not.
func sheetInt(v string) (null.Int, error) {
	if v == "" {
		return null.Int{}, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return null.Int{}, err
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return null.Int{}, fmt.Errorf("%q is not a whole number in range", v)
	}
	return null.IntFrom(int(f)), nil
}

// parseSheetDate accepts an Excel serial date (1900 system) or YYYY-MM-DD.
func parseSheetDate(v string) (dto.Date, error) {
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return dto.Date{}, err
		}
		return dto.NewDate(t), nil
	}
	if len(v) > len(dto.DateLayout) {
		v = v[:len(dto.DateLayout)]
	}
	return dto.ParseDate(v)
}
