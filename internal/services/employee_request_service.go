package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/entities"
	"employee-system/internal/repositories"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"

	"go.uber.org/zap"
)

const requestStateNone = "none"

type EmployeeRequestServiceInterface interface {
	Submit(ctx context.Context, empID uint64, payload dto.EmployeeUpdateDTO) (*dto.SubmitRequestResponseDTO, error)
	List(ctx context.Context) ([]dto.EmployeeRequestsDTO, error)
	Get(ctx context.Context, requestID uint64) (*dto.EmployeeRequestDetailsDTO, error)
	Delete(ctx context.Context, requestID uint64) error
	Count(ctx context.Context) (int64, error)

	GetState(ctx context.Context, empID uint64) (*dto.RequestStateResponseDTO, error)
	SetState(ctx context.Context, payload dto.RequestStatusDTO) error
	DeleteState(ctx context.Context, empID uint64) error
}

type EmployeeRequestService struct {
	repo         repositories.EmployeeRequestRepositoryInterface
	stateRepo    repositories.RequestStateRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	logger       *zap.Logger
	now          func() time.Time
}

func NewEmployeeRequestService(
	repo repositories.EmployeeRequestRepositoryInterface,
	stateRepo repositories.RequestStateRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	logger *zap.Logger,
) EmployeeRequestServiceInterface {
	return &EmployeeRequestService{
		repo:         repo,
		stateRepo:    stateRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
		now:          time.Now,
	}
}

func requestNotFound(id uint64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("Request not found with id: %d", id))
}

// Submit stores a snapshot of the proposed values. Passwords are never kept in a request.
func (s *EmployeeRequestService) Submit(ctx context.Context, empID uint64, payload dto.EmployeeUpdateDTO) (*dto.SubmitRequestResponseDTO, error) {
	exists, err := s.employeeRepo.Exists(ctx, empID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, employeeNotFound(empID)
	}

	birthDate := ""
	if payload.BirthDate != nil && !payload.BirthDate.IsZero() {
		birthDate = payload.BirthDate.String()
	}

	req := &entities.EmployeeRequest{
		EmpID:          empID,
		EmpNo:          strings.TrimSpace(payload.EmpNo),
		Title:          payload.Title,
		FirstName:      strings.TrimSpace(payload.FirstName),
		LastName:       strings.TrimSpace(payload.LastName),
		Gender:         payload.Gender,
		Location:       payload.Location,
		Function:       payload.Function,
		SubgroupCode:   payload.SubgroupCode,
		Subgroup:       payload.Subgroup,
		Designation:    payload.Designation,
		BirthDate:      birthDate,
		BloodGroup:     payload.BloodGroup,
		ParentDivision: payload.ParentDivision,
		City:           payload.City,
		WorkingHours:   payload.WorkingHours,
		CollarWorker:   payload.CollarWorker,
		WorkSchedule:   payload.WorkSchedule,
		Email:          strings.TrimSpace(payload.Email),
		Phone:          payload.Phone,
		Address:        payload.Address,
		IsAdmin:        payload.IsAdmin,
		Status:         payload.Status,
		RequestDate:    s.now(),
		Message:        payload.Message,
	}

	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("employee edit request submitted", zap.Uint64("empID", empID), zap.Uint64("requestID", id))
	return &dto.SubmitRequestResponseDTO{RequestID: id}, nil
}

func (s *EmployeeRequestService) List(ctx context.Context) ([]dto.EmployeeRequestsDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeRequestsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.EmployeeRequestsDTO{
			RequestID:   r.RequestID,
			EmpID:       r.EmpID,
			EmpNo:       r.EmpNo,
			Name:        r.Name,
			RequestDate: r.RequestDate.Format(constants.RequestDateLayout),
			Mobile:      r.Mobile,
			Email:       r.Email,
			Message:     r.Message,
		})
	}
	return out, nil
}

func (s *EmployeeRequestService) Get(ctx context.Context, requestID uint64) (*dto.EmployeeRequestDetailsDTO, error) {
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, requestNotFound(requestID)
		}
		return nil, err
	}
	return &dto.EmployeeRequestDetailsDTO{
		RequestID:      r.ID,
		EmpID:          r.EmpID,
		EmpNo:          r.EmpNo,
		Title:          r.Title,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Gender:         r.Gender,
		Location:       r.Location,
		Function:       r.Function,
		SubgroupCode:   r.SubgroupCode,
		Subgroup:       r.Subgroup,
		Designation:    r.Designation,
		BirthDate:      r.BirthDate,
		BloodGroup:     r.BloodGroup,
		ParentDivision: r.ParentDivision,
		City:           r.City,
		WorkingHours:   r.WorkingHours,
		CollarWorker:   r.CollarWorker,
		WorkSchedule:   r.WorkSchedule,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		IsAdmin:        r.IsAdmin,
		Status:         r.Status,
		RequestDate:    r.RequestDate.Format(constants.RequestDateLayout),
		Message:        r.Message,
	}, nil
}

func (s *EmployeeRequestService) Delete(ctx context.Context, requestID uint64) error {
	if err := s.repo.Delete(ctx, requestID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return requestNotFound(requestID)
		}
		return err
	}
	return nil
}

func (s *EmployeeRequestService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// GetState reports "none" when no decision has been recorded for the employee.
func (s *EmployeeRequestService) GetState(ctx context.Context, empID uint64) (*dto.RequestStateResponseDTO, error) {
	state, err := s.stateRepo.FindByEmpID(ctx, empID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.RequestStateResponseDTO{RStatus: requestStateNone}, nil
		}
		return nil, err
	}
	return &dto.RequestStateResponseDTO{EmpID: state.EmpID, RStatus: state.Status, RMessage: state.Message}, nil
}

func (s *EmployeeRequestService) SetState(ctx context.Context, payload dto.RequestStatusDTO) error {
	exists, err := s.employeeRepo.Exists(ctx, payload.EmpID)
	if err != nil {
		return err
	}
	if !exists {
		return employeeNotFound(payload.EmpID)
	}
	return s.stateRepo.Upsert(ctx, &entities.RequestState{
		EmpID:   payload.EmpID,
		Status:  strings.TrimSpace(payload.RStatus),
		Message: payload.RMessage,
	})
}

// DeleteState is idempotent.
func (s *EmployeeRequestService) DeleteState(ctx context.Context, empID uint64) error {
	_, err := s.stateRepo.DeleteByEmpID(ctx, empID)
	return err
}
