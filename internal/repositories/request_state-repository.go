package repositories

import (
	"context"
	"errors"

	"employee-system/internal/entities"
	apperrors "employee-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestStateRepositoryInterface interface {
	FindByEmpID(ctx context.Context, empID uint64) (*entities.RequestState, error)
	Upsert(ctx context.Context, state *entities.RequestState) error
	DeleteByEmpID(ctx context.Context, empID uint64) (int64, error)
}

type RequestStateRepository struct {
	storage DBPool
	logger  *zap.Logger
}

func NewRequestStateRepository(storage DBPool, logger *zap.Logger) RequestStateRepositoryInterface {
	return &RequestStateRepository{storage: storage, logger: logger}
}

func (r *RequestStateRepository) FindByEmpID(ctx context.Context, empID uint64) (*entities.RequestState, error) {
	var s entities.RequestState
	err := r.storage.QueryRow(ctx,
		"SELECT id, emp_id, r_status, COALESCE(r_message, '') FROM request_state WHERE emp_id = $1", empID,
	).Scan(&s.ID, &s.EmpID, &s.Status, &s.Message)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *RequestStateRepository) Upsert(ctx context.Context, state *entities.RequestState) error {
	return r.storage.QueryRow(ctx, `
		INSERT INTO request_state (emp_id, r_status, r_message) VALUES ($1, $2, $3)
		ON CONFLICT (emp_id) DO UPDATE SET r_status = EXCLUDED.r_status, r_message = EXCLUDED.r_message
		RETURNING id`,
		state.EmpID, state.Status, state.Message,
	).Scan(&state.ID)
}

func (r *RequestStateRepository) DeleteByEmpID(ctx context.Context, empID uint64) (int64, error) {
	result, err := r.storage.Exec(ctx, "DELETE FROM request_state WHERE emp_id = $1", empID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
