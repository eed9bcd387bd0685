package repositories

import (
	"context"

	"employee-system/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const unknownBloodGroupLabel = "NA"

type EmployeeStatsRepositoryInterface interface {
	CountByDivision(ctx context.Context) ([]entities.DivisionCount, error)
	CountGenderByFunction(ctx context.Context) ([]entities.FunctionGenderCount, error)
	CountByBloodGroup(ctx context.Context) ([]entities.BloodGroupCount, error)
	FindByBirthMonth(ctx context.Context, month int) ([]entities.EmployeeBirthday, error)
	FindBirthdaysOn(ctx context.Context, month, day int) ([]entities.EmployeeBirthday, error)
}

type EmployeeStatsRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewEmployeeStatsRepository(storage DBPool, logger *zap.Logger) EmployeeStatsRepositoryInterface {
	return &EmployeeStatsRepository{storage: storage, logger: logger}
}

// activeEmployees is the FROM clause shared by the aggregates; deleted employees never count.
func activeEmployees(columns ...string) sq.SelectBuilder {
	return psql.Select(columns...).
		From("employees e").
		LeftJoin("employee_statuses s ON s.emp_id = e.emp_id").
		Where(employeeActiveCondition)
}

func (r *EmployeeStatsRepository) CountByDivision(ctx context.Context) ([]entities.DivisionCount, error) {
	query, args, err := activeEmployees("COALESCE(j.parent_division, '') AS division", "COUNT(*) AS cnt").
		LeftJoin("employee_jobs j ON j.emp_id = e.emp_id").
		GroupBy("division").
		OrderBy("division").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to count employees by division", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.DivisionCount, 0)
	for rows.Next() {
		var item entities.DivisionCount
		if err := rows.Scan(&item.Division, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *EmployeeStatsRepository) CountGenderByFunction(ctx context.Context) ([]entities.FunctionGenderCount, error) {
	query, args, err := activeEmployees(
		"COALESCE(j.job_function, '') AS func",
		"COUNT(*) FILTER (WHERE LOWER(p.gender) = 'male') AS males",
		"COUNT(*) FILTER (WHERE LOWER(p.gender) = 'female') AS females",
	).
		LeftJoin("employee_jobs j ON j.emp_id = e.emp_id").
		LeftJoin("employee_profiles p ON p.emp_id = e.emp_id").
		GroupBy("func").
		OrderBy("func").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to count gender by function", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.FunctionGenderCount, 0)
	for rows.Next() {
		var item entities.FunctionGenderCount
		if err := rows.Scan(&item.Function, &item.Males, &item.Females); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *EmployeeStatsRepository) CountByBloodGroup(ctx context.Context) ([]entities.BloodGroupCount, error) {
	label := "COALESCE(NULLIF(TRIM(p.blood_group), ''), '" + unknownBloodGroupLabel + "') AS bg_label"
	query, args, err := activeEmployees(label, "COUNT(*) AS cnt").
		LeftJoin("employee_profiles p ON p.emp_id = e.emp_id").
		GroupBy("bg_label").
		OrderBy("bg_label").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to count employees by blood group", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.BloodGroupCount, 0)
	for rows.Next() {
		var item entities.BloodGroupCount
		if err := rows.Scan(&item.BloodGroup, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func birthdaySelect() sq.SelectBuilder {
	return psql.Select(
		"e.emp_id",
		"e.first_name || ' ' || e.last_name",
		"COALESCE(c.email, '')",
		"COALESCE(c.phone, '')",
		"p.birth_date",
		"COALESCE(p.emp_photo_link, '')",
	).
		From("employees e").
		Join("employee_profiles p ON p.emp_id = e.emp_id").
		LeftJoin("employee_contacts c ON c.emp_id = e.emp_id").
		LeftJoin("employee_statuses s ON s.emp_id = e.emp_id")
}

// FindByBirthMonth includes soft-deleted employees.
func (r *EmployeeStatsRepository) FindByBirthMonth(ctx context.Context, month int) ([]entities.EmployeeBirthday, error) {
	query, args, err := birthdaySelect().
		Where(sq.Expr("EXTRACT(MONTH FROM p.birth_date) = ?", month)).
		OrderBy("EXTRACT(DAY FROM p.birth_date)", "e.emp_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryBirthdays(ctx, query, args...)
}

func (r *EmployeeStatsRepository) FindBirthdaysOn(ctx context.Context, month, day int) ([]entities.EmployeeBirthday, error) {
	query, args, err := birthdaySelect().
		Where(sq.Expr("EXTRACT(MONTH FROM p.birth_date) = ?", month)).
		Where(sq.Expr("EXTRACT(DAY FROM p.birth_date) = ?", day)).
		Where(employeeActiveCondition).
		OrderBy("e.emp_id").
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryBirthdays(ctx, query, args...)
}

func (r *EmployeeStatsRepository) queryBirthdays(ctx context.Context, query string, args ...interface{}) ([]entities.EmployeeBirthday, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.EmployeeBirthday, 0)
	for rows.Next() {
		var item entities.EmployeeBirthday
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Phone, &item.BirthDate, &item.PhotoLink); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
