package repositories

import (
	"context"
	"errors"

	"employee-system/internal/entities"
	apperrors "employee-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const intercomTable = "employee_intercom"

var intercomColumns = []string{
	"id", "emp_no", "intercom", "grade", "floor", "name", "email", "designation",
	"parent_division", "job_function", "collar_worker", "phone", "location", "status",
}

type IntercomRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.EmployeeIntercom, error)
	ExistsByEmpNo(ctx context.Context, empNo string, excludeID uint64) (bool, error)
	List(ctx context.Context) ([]entities.EmployeeIntercom, error)
	Create(ctx context.Context, item *entities.EmployeeIntercom) (*entities.EmployeeIntercom, error)
	Update(ctx context.Context, item *entities.EmployeeIntercom) (*entities.EmployeeIntercom, error)
	DeleteByIDs(ctx context.Context, tx pgx.Tx, ids []uint64) (int64, error)
}

type IntercomRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewIntercomRepository(storage DBPool, logger *zap.Logger) IntercomRepositoryInterface {
	return &IntercomRepository{storage: storage, logger: logger}
}

func scanIntercom(row pgx.Row) (*entities.EmployeeIntercom, error) {
	var i entities.EmployeeIntercom
	err := row.Scan(
		&i.ID, &i.EmpNo, &i.Intercom, &i.Grade, &i.Floor, &i.Name, &i.Email, &i.Designation,
		&i.Division, &i.Function, &i.WorkerType, &i.Phone, &i.Location, &i.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func translateIntercomPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.ErrConflict
	}
	return err
}

func intercomValues(i *entities.EmployeeIntercom) map[string]interface{} {
	return map[string]interface{}{
		"emp_no":          i.EmpNo,
		"intercom":        i.Intercom,
		"grade":           i.Grade,
		"floor":           i.Floor,
		"name":            i.Name,
		"email":           i.Email,
		"designation":     i.Designation,
		"parent_division": i.Division,
		"job_function":    i.Function,
		"collar_worker":   i.WorkerType,
		"phone":           i.Phone,
		"location":        i.Location,
		"status":          i.Status,
	}
}

func (r *IntercomRepository) findOne(ctx context.Context, where sq.Sqlizer) (*entities.EmployeeIntercom, error) {
	query, args, err := psql.Select(intercomColumns...).From(intercomTable).Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanIntercom(r.storage.QueryRow(ctx, query, args...))
}

func (r *IntercomRepository) FindByID(ctx context.Context, id uint64) (*entities.EmployeeIntercom, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *IntercomRepository) ExistsByEmpNo(ctx context.Context, empNo string, excludeID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM employee_intercom WHERE emp_no = $1 AND id <> $2)",
		empNo, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *IntercomRepository) List(ctx context.Context) ([]entities.EmployeeIntercom, error) {
	query, args, err := psql.Select(intercomColumns...).From(intercomTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list intercom directory", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.EmployeeIntercom, 0)
	for rows.Next() {
		item, err := scanIntercom(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *IntercomRepository) Create(ctx context.Context, item *entities.EmployeeIntercom) (*entities.EmployeeIntercom, error) {
	query, args, err := psql.Insert(intercomTable).
		SetMap(intercomValues(item)).
		Suffix("RETURNING " + joinColumns(intercomColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	created, err := scanIntercom(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateIntercomPgError(err)
	}
	return created, nil
}

func (r *IntercomRepository) Update(ctx context.Context, item *entities.EmployeeIntercom) (*entities.EmployeeIntercom, error) {
	query, args, err := psql.Update(intercomTable).
		SetMap(intercomValues(item)).
		Where(sq.Eq{"id": item.ID}).
		Suffix("RETURNING " + joinColumns(intercomColumns)).
		ToSql()
	if err != nil {
		return nil, err
	}
	updated, err := scanIntercom(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateIntercomPgError(err)
	}
	return updated, nil
}

func (r *IntercomRepository) DeleteByIDs(ctx context.Context, tx pgx.Tx, ids []uint64) (int64, error) {
	result, err := tx.Exec(ctx, "DELETE FROM employee_intercom WHERE id = ANY($1)", toInt64s(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
