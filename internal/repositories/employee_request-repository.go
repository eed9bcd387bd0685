package repositories

import (
	"context"
	"errors"

	"employee-system/internal/entities"
	apperrors "employee-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const employeeRequestSelectFields = `request_id, emp_id, COALESCE(emp_no, ''), COALESCE(title, ''),
	COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(gender, ''), COALESCE(location, ''),
	COALESCE(job_function, ''), COALESCE(subgroup_code, ''), COALESCE(subgroup, ''), COALESCE(designation, ''),
	COALESCE(birth_date, ''), COALESCE(blood_group, ''), COALESCE(parent_division, ''), COALESCE(city, ''),
	working_hours, COALESCE(collar_worker, ''), COALESCE(work_schedule, ''), COALESCE(email, ''),
	COALESCE(phone, ''), COALESCE(address, ''), is_admin, COALESCE(status, ''), request_date, COALESCE(message, '')`

type EmployeeRequestRepositoryInterface interface {
	Create(ctx context.Context, req *entities.EmployeeRequest) (uint64, error)
	List(ctx context.Context) ([]entities.EmployeeRequestRow, error)
	FindByID(ctx context.Context, requestID uint64) (*entities.EmployeeRequest, error)
	Delete(ctx context.Context, requestID uint64) error
	Count(ctx context.Context) (int64, error)
}

type EmployeeRequestRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewEmployeeRequestRepository(storage DBPool, logger *zap.Logger) EmployeeRequestRepositoryInterface {
	return &EmployeeRequestRepository{storage: storage, logger: logger}
}

func (r *EmployeeRequestRepository) Create(ctx context.Context, req *entities.EmployeeRequest) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO employee_requests (emp_id, emp_no, title, first_name, last_name, gender, location,
			job_function, subgroup_code, subgroup, designation, birth_date, blood_group, parent_division,
			city, working_hours, collar_worker, work_schedule, email, phone, address, is_admin, status,
			request_date, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25)
		RETURNING request_id`,
		req.EmpID, req.EmpNo, req.Title, req.FirstName, req.LastName, req.Gender, req.Location,
		req.Function, req.SubgroupCode, req.Subgroup, req.Designation, req.BirthDate, req.BloodGroup,
		req.ParentDivision, req.City, req.WorkingHours, req.CollarWorker, req.WorkSchedule, req.Email,
		req.Phone, req.Address, req.IsAdmin, req.Status, req.RequestDate, req.Message,
	).Scan(&id)
	if err != nil {
		r.logger.Error("failed to create employee request", zap.Uint64("empID", req.EmpID), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *EmployeeRequestRepository) List(ctx context.Context) ([]entities.EmployeeRequestRow, error) {
	query := `
		SELECT r.request_id, r.emp_id, COALESCE(r.emp_no, ''),
			TRIM(COALESCE(r.first_name, '') || ' ' || COALESCE(r.last_name, '')),
			r.request_date, COALESCE(c.phone, r.phone, ''), COALESCE(c.email, r.email, ''), COALESCE(r.message, '')
		FROM employee_requests r
		LEFT JOIN employee_contacts c ON c.emp_id = r.emp_id
		ORDER BY r.request_date DESC, r.request_id DESC`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.EmployeeRequestRow, 0)
	for rows.Next() {
		var row entities.EmployeeRequestRow
		if err := rows.Scan(&row.RequestID, &row.EmpID, &row.EmpNo, &row.Name,
			&row.RequestDate, &row.Mobile, &row.Email, &row.Message); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *EmployeeRequestRepository) FindByID(ctx context.Context, requestID uint64) (*entities.EmployeeRequest, error) {
	var req entities.EmployeeRequest
	err := r.storage.QueryRow(ctx,
		"SELECT "+employeeRequestSelectFields+" FROM employee_requests WHERE request_id = $1", requestID,
	).Scan(
		&req.ID, &req.EmpID, &req.EmpNo, &req.Title, &req.FirstName, &req.LastName, &req.Gender, &req.Location,
		&req.Function, &req.SubgroupCode, &req.Subgroup, &req.Designation, &req.BirthDate, &req.BloodGroup,
		&req.ParentDivision, &req.City, &req.WorkingHours, &req.CollarWorker, &req.WorkSchedule, &req.Email,
		&req.Phone, &req.Address, &req.IsAdmin, &req.Status, &req.RequestDate, &req.Message,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *EmployeeRequestRepository) Delete(ctx context.Context, requestID uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM employee_requests WHERE request_id = $1", requestID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM employee_requests").Scan(&count)
	return count, err
}
