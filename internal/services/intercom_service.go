package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"employee-system/internal/dto"
	"employee-system/internal/entities"
	"employee-system/internal/repositories"
	apperrors "employee-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type IntercomServiceInterface interface {
	AddOrUpdate(ctx context.Context, payload dto.EmployeeIntercomDTO) (*dto.EmployeeIntercomResponseDTO, error)
	Update(ctx context.Context, id uint64, payload dto.EmployeeIntercomDTO) (*dto.EmployeeIntercomResponseDTO, error)
	List(ctx context.Context) ([]dto.EmployeeIntercomResponseDTO, error)
	DeleteBulk(ctx context.Context, ids []uint64) (int64, error)
}

type IntercomService struct {
	repo         repositories.IntercomRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewIntercomService(
	repo repositories.IntercomRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) IntercomServiceInterface {
	return &IntercomService{repo: repo, employeeRepo: employeeRepo, txManager: txManager, logger: logger}
}

func intercomConflict() error {
	return apperrors.NewConflictError("Employee No. already exists")
}

// AddOrUpdate creates the record when no id is given and updates it otherwise.
func (s *IntercomService) AddOrUpdate(ctx context.Context, payload dto.EmployeeIntercomDTO) (*dto.EmployeeIntercomResponseDTO, error) {
	payload.EmpNo = strings.TrimSpace(payload.EmpNo)

	target := &entities.EmployeeIntercom{}
	if payload.ID.Valid {
		existing, err := s.repo.FindByID(ctx, payload.ID.Uint64)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("Intercom record not found with id: %d", payload.ID.Uint64))
			}
			return nil, err
		}
		target = existing
	}

	taken, err := s.repo.ExistsByEmpNo(ctx, payload.EmpNo, target.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, intercomConflict()
	}

	employee, err := s.employeeRepo.FindByEmpNo(ctx, payload.EmpNo)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	applyIntercomPayload(target, payload, employee)

	var saved *entities.EmployeeIntercom
	if target.ID == 0 {
		saved, err = s.repo.Create(ctx, target)
	} else {
		saved, err = s.repo.Update(ctx, target)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, intercomConflict()
		}
		return nil, err
	}

	response := toIntercomResponse(saved)
	return &response, nil
}

func (s *IntercomService) Update(ctx context.Context, id uint64, payload dto.EmployeeIntercomDTO) (*dto.EmployeeIntercomResponseDTO, error) {
	payload.ID = null.Uint64From(id)
	return s.AddOrUpdate(ctx, payload)
}

func (s *IntercomService) List(ctx context.Context) ([]dto.EmployeeIntercomResponseDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeIntercomResponseDTO, 0, len(items))
	for i := range items {
		out = append(out, toIntercomResponse(&items[i]))
	}
	return out, nil
}

func (s *IntercomService) DeleteBulk(ctx context.Context, ids []uint64) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, apperrors.NewInvalidInputError("Intercom ID list cannot be empty")
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		deleted, err = s.repo.DeleteByIDs(ctx, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("intercom records deleted", zap.Int64("deleted", deleted))
	return deleted, nil
}

// applyIntercomPayload copies the provided fields onto target. A field left
// unset is taken from the matching employee when there is one, otherwise the
// stored value stays.
func applyIntercomPayload(target *entities.EmployeeIntercom, p dto.EmployeeIntercomDTO, employee *entities.Employee) {
	target.EmpNo = p.EmpNo
	if p.Grade.Valid {
		target.Grade = p.Grade.Ptr()
	}
	if p.Floor.Valid {
		target.Floor = p.Floor.Ptr()
	}
	if p.Intercom.Valid {
		target.Intercom = p.Intercom.Ptr()
	}

	fill := func(dst **string, value null.String, fromEmployee func(*entities.Employee) string) {
		switch {
		case value.Valid:
			*dst = value.Ptr()
		case employee != nil:
			v := fromEmployee(employee)
			*dst = &v
		}
	}

	fill(&target.Name, p.Name, func(e *entities.Employee) string { return e.FullName() })
	fill(&target.Email, p.Email, func(e *entities.Employee) string { return e.Contact.Email })
	fill(&target.Designation, p.Designation, func(e *entities.Employee) string { return e.Job.Designation })
	fill(&target.Division, p.Division, func(e *entities.Employee) string { return e.Job.ParentDivision })
	fill(&target.Function, p.Function, func(e *entities.Employee) string { return e.Job.Function })
	fill(&target.WorkerType, p.WorkerType, func(e *entities.Employee) string { return e.Status.CollarWorker })
	fill(&target.Phone, p.Phone, func(e *entities.Employee) string { return e.Contact.Phone })
	fill(&target.Location, p.Location, func(e *entities.Employee) string { return e.Job.Location })
	fill(&target.Status, p.Status, func(e *entities.Employee) string { return e.Status.Status })
}

func toIntercomResponse(i *entities.EmployeeIntercom) dto.EmployeeIntercomResponseDTO {
	return dto.EmployeeIntercomResponseDTO{
		ID:          i.ID,
		EmpNo:       i.EmpNo,
		Name:        i.Name,
		Email:       i.Email,
		Designation: i.Designation,
		Division:    i.Division,
		Function:    i.Function,
		WorkerType:  i.WorkerType,
		Phone:       i.Phone,
		Grade:       i.Grade,
		Floor:       i.Floor,
		Location:    i.Location,
		Intercom:    i.Intercom,
		Status:      i.Status,
	}
}
