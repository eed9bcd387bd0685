package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee-system/internal/entities"
	apperrors "employee-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const employeeSelectFields = `e.emp_id, e.emp_no, e.first_name, e.last_name,
	p.birth_date, COALESCE(p.gender, ''), COALESCE(p.blood_group, ''), COALESCE(p.emp_photo_link, ''),
	COALESCE(j.title, ''), COALESCE(j.designation, ''), COALESCE(j.job_function, ''), COALESCE(j.subgroup_code, ''),
	COALESCE(j.subgroup, ''), COALESCE(j.parent_division, ''), COALESCE(j.location, ''), COALESCE(j.city, ''),
	COALESCE(j.is_admin, FALSE), COALESCE(j.password, ''),
	COALESCE(c.email, ''), COALESCE(c.phone, ''), COALESCE(c.address, ''),
	COALESCE(s.collar_worker, ''), COALESCE(s.work_schedule, ''), COALESCE(s.working_hours, ''), COALESCE(s.status, ''),
	COALESCE(s.is_deleted, FALSE), s.deleted_on, s.otp, s.otp_expiry, COALESCE(s.logged, FALSE), s.last_logged`

const employeeJoinClause = `employees e
	LEFT JOIN employee_profiles p ON p.emp_id = e.emp_id
	LEFT JOIN employee_jobs j ON j.emp_id = e.emp_id
	LEFT JOIN employee_contacts c ON c.emp_id = e.emp_id
	LEFT JOIN employee_statuses s ON s.emp_id = e.emp_id`

const employeeActiveCondition = "COALESCE(s.is_deleted, FALSE) = FALSE"

type EmployeeRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Employee, error)
	FindByEmail(ctx context.Context, email string) (*entities.Employee, error)
	FindByEmpNo(ctx context.Context, empNo string) (*entities.Employee, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]entities.Employee, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	ExistsByEmpNo(ctx context.Context, tx pgx.Tx, empNo string, excludeID uint64) (bool, error)

	ListActive(ctx context.Context, limit, offset uint64) ([]entities.Employee, error)
	ListAllActive(ctx context.Context) ([]entities.Employee, error)
	CountActive(ctx context.Context) (int64, error)
	ListRecycled(ctx context.Context) ([]entities.Employee, error)
	CountRecycled(ctx context.Context) (int64, error)

	Create(ctx context.Context, tx pgx.Tx, employee *entities.Employee) (uint64, error)
	Update(ctx context.Context, tx pgx.Tx, employee *entities.Employee) error
	CountExisting(ctx context.Context, tx pgx.Tx, ids []uint64) (int64, error)
	SoftDelete(ctx context.Context, tx pgx.Tx, ids []uint64, deletedOn time.Time) (int64, error)
	Restore(ctx context.Context, tx pgx.Tx, ids []uint64) ([]uint64, error)
	DeleteForever(ctx context.Context, tx pgx.Tx, ids []uint64) (int64, error)

	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	MarkLoggedIn(ctx context.Context, id uint64, at time.Time) error
	SetOTP(ctx context.Context, id uint64, code string, expiry time.Time) error
	ClearOTP(ctx context.Context, id uint64) error
	UpdatePhotoLink(ctx context.Context, id uint64, link string) error
}

type EmployeeRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewEmployeeRepository(storage DBPool, logger *zap.Logger) EmployeeRepositoryInterface {
	return &EmployeeRepository{storage: storage, logger: logger}
}

func scanEmployee(row pgx.Row) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID, &e.EmpNo, &e.FirstName, &e.LastName,
		&e.Profile.BirthDate, &e.Profile.Gender, &e.Profile.BloodGroup, &e.Profile.PhotoLink,
		&e.Job.Title, &e.Job.Designation, &e.Job.Function, &e.Job.SubgroupCode,
		&e.Job.Subgroup, &e.Job.ParentDivision, &e.Job.Location, &e.Job.City,
		&e.Job.IsAdmin, &e.Job.PasswordHash,
		&e.Contact.Email, &e.Contact.Phone, &e.Contact.Address,
		&e.Status.CollarWorker, &e.Status.WorkSchedule, &e.Status.WorkingHours, &e.Status.Status,
		&e.Status.IsDeleted, &e.Status.DeletedOn, &e.Status.OTP, &e.Status.OTPExpiry, &e.Status.Logged, &e.Status.LastLogged,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]entities.Employee, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]entities.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func translateEmployeePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if strings.Contains(pgErr.ConstraintName, "emp_no") {
				return fmt.Errorf("%w: employee number", apperrors.ErrConflict)
			}
			return apperrors.ErrConflict
		case pgForeignKeyViolation:
			return apperrors.ErrNotFound
		}
	}
	return err
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id uint64) (*entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE e.emp_id = $1", employeeSelectFields, employeeJoinClause)
	return scanEmployee(r.storage.QueryRow(ctx, query, id))
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(c.email) = LOWER($1) ORDER BY e.emp_id LIMIT 1", employeeSelectFields, employeeJoinClause)
	return scanEmployee(r.storage.QueryRow(ctx, query, strings.TrimSpace(email)))
}

func (r *EmployeeRepository) FindByEmpNo(ctx context.Context, empNo string) (*entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE e.emp_no = $1", employeeSelectFields, employeeJoinClause)
	return scanEmployee(r.storage.QueryRow(ctx, query, empNo))
}

func (r *EmployeeRepository) FindByIDs(ctx context.Context, ids []uint64) ([]entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE e.emp_id = ANY($1) ORDER BY e.emp_id", employeeSelectFields, employeeJoinClause)
	return r.queryEmployees(ctx, query, toInt64s(ids))
}

func (r *EmployeeRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM employees WHERE emp_id = $1)", id).Scan(&exists)
	return exists, err
}

func (r *EmployeeRepository) ExistsByEmpNo(ctx context.Context, tx pgx.Tx, empNo string, excludeID uint64) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM employees WHERE emp_no = $1 AND emp_id <> $2)"
	err := tx.QueryRow(ctx, query, empNo, excludeID).Scan(&exists)
	return exists, err
}

func (r *EmployeeRepository) ListActive(ctx context.Context, limit, offset uint64) ([]entities.Employee, error) {
	query, args, err := psql.Select(employeeSelectFields).
		From(employeeJoinClause).
		Where(employeeActiveCondition).
		OrderBy("e.emp_id").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryEmployees(ctx, query, args...)
}

func (r *EmployeeRepository) ListAllActive(ctx context.Context) ([]entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY e.emp_id", employeeSelectFields, employeeJoinClause, employeeActiveCondition)
	return r.queryEmployees(ctx, query)
}

func (r *EmployeeRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM employees e LEFT JOIN employee_statuses s ON s.emp_id = e.emp_id WHERE " + employeeActiveCondition
	err := r.storage.QueryRow(ctx, query).Scan(&count)
	return count, err
}

func (r *EmployeeRepository) ListRecycled(ctx context.Context) ([]entities.Employee, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE s.is_deleted = TRUE ORDER BY s.deleted_on DESC NULLS LAST, e.emp_id", employeeSelectFields, employeeJoinClause)
	return r.queryEmployees(ctx, query)
}

func (r *EmployeeRepository) CountRecycled(ctx context.Context) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM employee_statuses WHERE is_deleted = TRUE").Scan(&count)
	return count, err
}

func (r *EmployeeRepository) Create(ctx context.Context, tx pgx.Tx, e *entities.Employee) (uint64, error) {
	var id uint64
	err := tx.QueryRow(ctx,
		`INSERT INTO employees (emp_no, first_name, last_name) VALUES ($1, $2, $3) RETURNING emp_id`,
		e.EmpNo, e.FirstName, e.LastName,
	).Scan(&id)
	if err != nil {
		return 0, translateEmployeePgError(err)
	}
	e.ID = id

	if err := r.upsertComponents(ctx, tx, e); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, tx pgx.Tx, e *entities.Employee) error {
	result, err := tx.Exec(ctx,
		`UPDATE employees SET emp_no = $1, first_name = $2, last_name = $3 WHERE emp_id = $4`,
		e.EmpNo, e.FirstName, e.LastName, e.ID,
	)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return r.upsertComponents(ctx, tx, e)
}

// upsertComponents writes all four components, creating any that are missing.
func (r *EmployeeRepository) upsertComponents(ctx context.Context, tx pgx.Tx, e *entities.Employee) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO employee_profiles (emp_id, birth_date, gender, blood_group, emp_photo_link)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (emp_id) DO UPDATE SET
			birth_date = EXCLUDED.birth_date, gender = EXCLUDED.gender,
			blood_group = EXCLUDED.blood_group, emp_photo_link = EXCLUDED.emp_photo_link`,
		e.ID, e.Profile.BirthDate, e.Profile.Gender, e.Profile.BloodGroup, e.Profile.PhotoLink,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO employee_jobs (emp_id, title, designation, job_function, subgroup_code, subgroup,
			parent_division, location, city, is_admin, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (emp_id) DO UPDATE SET
			title = EXCLUDED.title, designation = EXCLUDED.designation, job_function = EXCLUDED.job_function,
			subgroup_code = EXCLUDED.subgroup_code, subgroup = EXCLUDED.subgroup,
			parent_division = EXCLUDED.parent_division, location = EXCLUDED.location, city = EXCLUDED.city,
			is_admin = EXCLUDED.is_admin, password = EXCLUDED.password`,
		e.ID, e.Job.Title, e.Job.Designation, e.Job.Function, e.Job.SubgroupCode, e.Job.Subgroup,
		e.Job.ParentDivision, e.Job.Location, e.Job.City, e.Job.IsAdmin, e.Job.PasswordHash,
	); err != nil {
		return fmt.Errorf("upsert job: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO employee_contacts (emp_id, email, phone, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (emp_id) DO UPDATE SET
			email = EXCLUDED.email, phone = EXCLUDED.phone, address = EXCLUDED.address`,
		e.ID, e.Contact.Email, e.Contact.Phone, e.Contact.Address,
	); err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO employee_statuses (emp_id, collar_worker, work_schedule, working_hours, status,
			is_deleted, deleted_on, logged, last_logged)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (emp_id) DO UPDATE SET
			collar_worker = EXCLUDED.collar_worker, work_schedule = EXCLUDED.work_schedule,
			working_hours = EXCLUDED.working_hours, status = EXCLUDED.status`,
		e.ID, e.Status.CollarWorker, e.Status.WorkSchedule, e.Status.WorkingHours, e.Status.Status,
		e.Status.IsDeleted, e.Status.DeletedOn, e.Status.Logged, e.Status.LastLogged,
	); err != nil {
		return fmt.Errorf("upsert status: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) CountExisting(ctx context.Context, tx pgx.Tx, ids []uint64) (int64, error) {
	var count int64
	err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE emp_id = ANY($1)", toInt64s(ids)).Scan(&count)
	return count, err
}

func (r *EmployeeRepository) SoftDelete(ctx context.Context, tx pgx.Tx, ids []uint64, deletedOn time.Time) (int64, error) {
	result, err := tx.Exec(ctx, `
		INSERT INTO employee_statuses (emp_id, is_deleted, deleted_on)
		SELECT emp_id, TRUE, $2 FROM employees WHERE emp_id = ANY($1)
		ON CONFLICT (emp_id) DO UPDATE SET is_deleted = TRUE, deleted_on = EXCLUDED.deleted_on`,
		toInt64s(ids), deletedOn,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// Restore clears the recycle flag on every listed employee, recycled or not,
// and returns the ids whose status row was updated.
func (r *EmployeeRepository) Restore(ctx context.Context, tx pgx.Tx, ids []uint64) ([]uint64, error) {
	rows, err := tx.Query(ctx,
		"UPDATE employee_statuses SET is_deleted = FALSE, deleted_on = NULL WHERE emp_id = ANY($1) RETURNING emp_id",
		toInt64s(ids),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restored := make([]uint64, 0, len(ids))
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		restored = append(restored, id)
	}
	return restored, rows.Err()
}

// DeleteForever removes the components before the employee rows because of the foreign keys.
func (r *EmployeeRepository) DeleteForever(ctx context.Context, tx pgx.Tx, ids []uint64) (int64, error) {
	args := toInt64s(ids)
	for _, table := range []string{"employee_statuses", "employee_profiles", "employee_jobs", "employee_contacts"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE emp_id = ANY($1)", args); err != nil {
			return 0, fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	result, err := tx.Exec(ctx, "DELETE FROM employees WHERE emp_id = ANY($1)", args)
	if err != nil {
		return 0, fmt.Errorf("delete from employees: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *EmployeeRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	result, err := r.storage.Exec(ctx, `
		INSERT INTO employee_jobs (emp_id, password) VALUES ($1, $2)
		ON CONFLICT (emp_id) DO UPDATE SET password = EXCLUDED.password`,
		id, passwordHash,
	)
	if err != nil {
		return translateEmployeePgError(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) MarkLoggedIn(ctx context.Context, id uint64, at time.Time) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO employee_statuses (emp_id, logged, last_logged) VALUES ($1, TRUE, $2)
		ON CONFLICT (emp_id) DO UPDATE SET logged = TRUE, last_logged = EXCLUDED.last_logged`,
		id, at,
	)
	return translateEmployeePgError(err)
}

func (r *EmployeeRepository) SetOTP(ctx context.Context, id uint64, code string, expiry time.Time) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO employee_statuses (emp_id, otp, otp_expiry) VALUES ($1, $2, $3)
		ON CONFLICT (emp_id) DO UPDATE SET otp = EXCLUDED.otp, otp_expiry = EXCLUDED.otp_expiry`,
		id, code, expiry,
	)
	return translateEmployeePgError(err)
}

func (r *EmployeeRepository) ClearOTP(ctx context.Context, id uint64) error {
	_, err := r.storage.Exec(ctx, "UPDATE employee_statuses SET otp = NULL, otp_expiry = NULL WHERE emp_id = $1", id)
	return err
}

func (r *EmployeeRepository) UpdatePhotoLink(ctx context.Context, id uint64, link string) error {
	_, err := r.storage.Exec(ctx, `
		INSERT INTO employee_profiles (emp_id, emp_photo_link) VALUES ($1, $2)
		ON CONFLICT (emp_id) DO UPDATE SET emp_photo_link = EXCLUDED.emp_photo_link`,
		id, link,
	)
	return translateEmployeePgError(err)
}
