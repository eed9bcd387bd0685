package repositories

import (
	"context"
	"errors"
	"time"

	"employee-system/internal/entities"
	apperrors "employee-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BirthdaySeenRepositoryInterface interface {
	FindByEmpID(ctx context.Context, tx pgx.Tx, empID uint64) (*entities.BirthdaySeen, error)
	Create(ctx context.Context, tx pgx.Tx, seen *entities.BirthdaySeen) error
	DeleteByEmpID(ctx context.Context, tx pgx.Tx, empID uint64) (int64, error)
}

type BirthdaySeenRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewBirthdaySeenRepository(storage DBPool, logger *zap.Logger) BirthdaySeenRepositoryInterface {
	return &BirthdaySeenRepository{storage: storage, logger: logger}
}

// db runs on tx when one is given and on the pool otherwise.
func (r *BirthdaySeenRepository) db(tx pgx.Tx) querier {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}
	return q
}

func (r *BirthdaySeenRepository) FindByEmpID(ctx context.Context, tx pgx.Tx, empID uint64) (*entities.BirthdaySeen, error) {
	var s entities.BirthdaySeen
	err := r.db(tx).QueryRow(ctx,
		"SELECT id, emp_id, birth_date, expiry_date FROM birthday_seen WHERE emp_id = $1 FOR UPDATE",
		empID,
	).Scan(&s.ID, &s.EmpID, &s.BirthDate, &s.ExpiryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.logger.Error("failed to read birthday marker", zap.Uint64("empID", empID), zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *BirthdaySeenRepository) Create(ctx context.Context, tx pgx.Tx, seen *entities.BirthdaySeen) error {
	err := r.db(tx).QueryRow(ctx, `
		INSERT INTO birthday_seen (emp_id, birth_date, expiry_date) VALUES ($1, $2, $3)
		ON CONFLICT (emp_id) DO UPDATE SET birth_date = EXCLUDED.birth_date, expiry_date = EXCLUDED.expiry_date
		RETURNING id`,
		seen.EmpID, dateOnly(seen.BirthDate), dateOnly(seen.ExpiryDate),
	).Scan(&seen.ID)
	if err != nil {
		r.logger.Error("failed to store birthday marker", zap.Uint64("empID", seen.EmpID), zap.Error(err))
	}
	return err
}

func (r *BirthdaySeenRepository) DeleteByEmpID(ctx context.Context, tx pgx.Tx, empID uint64) (int64, error) {
	result, err := r.db(tx).Exec(ctx, "DELETE FROM birthday_seen WHERE emp_id = $1", empID)
	if err != nil {
		r.logger.Error("failed to delete birthday marker", zap.Uint64("empID", empID), zap.Error(err))
		return 0, err
	}
	return result.RowsAffected(), nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
