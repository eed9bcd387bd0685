package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"employee-system/config"
	"employee-system/internal/dto"
	"employee-system/internal/entities"
	"employee-system/internal/events"
	"employee-system/internal/repositories"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/filestorage"
	"employee-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const minPasswordLength = 6

type EmployeeServiceInterface interface {
	Create(ctx context.Context, payload dto.EmployeeCreateDTO) (*dto.EmployeeResponseDTO, error)
	Update(ctx context.Context, id uint64, payload dto.EmployeeUpdateDTO) (*dto.EmployeeResponseDTO, error)
	MoveToRecycleBin(ctx context.Context, id uint64) error
	MoveMultipleToRecycleBin(ctx context.Context, ids []uint64) error
	RestoreFromRecycleBin(ctx context.Context, ids []uint64) ([]dto.EmployeeResponseDTO, error)
	DeleteForever(ctx context.Context, ids []uint64) (int64, error)

	GetChunk(ctx context.Context, chunk int) ([]dto.EmployeeResponseDTO, error)
	TotalChunks(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]dto.EmployeeResponseDTO, error)
	GetDetails(ctx context.Context, id uint64) (*dto.EmployeeDetailsDTO, error)
	GetRecycled(ctx context.Context) ([]dto.RecycledEmployeeDTO, error)
	RecycleCount(ctx context.Context) (int64, error)

	ChangePassword(ctx context.Context, id uint64, payload dto.ChangePasswordDTO) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	UploadPhoto(ctx context.Context, id uint64, filename string, file io.Reader) (*dto.PhotoUploadResponseDTO, error)
}

type EmployeeService struct {
	repo      repositories.EmployeeRepositoryInterface
	txManager repositories.TxManagerInterface
	cacheRepo repositories.CacheRepositoryInterface
	storage   filestorage.FileStorageInterface
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewEmployeeService(
	repo repositories.EmployeeRepositoryInterface,
	txManager repositories.TxManagerInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	storage filestorage.FileStorageInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) EmployeeServiceInterface {
	return &EmployeeService{
		repo:      repo,
		txManager: txManager,
		cacheRepo: cacheRepo,
		storage:   storage,
		publisher: publisherOrNoop(publisher),
		logger:    logger,
		now:       time.Now,
	}
}

func conflictEmpNo() error {
	return apperrors.NewConflictError("Employee No. already exists")
}

func employeeNotFound(id uint64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("Employee not found with id: %d", id))
}

// committed runs after a lifecycle transaction commits. The dashboard
// aggregates are dropped before the caller gets its response.
func (s *EmployeeService) committed(ctx context.Context, event events.EmployeeLifecycleEvent) {
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Del(ctx, constants.StatsCacheKeys...); err != nil {
			s.logger.Error("failed to invalidate stats cache",
				zap.String("action", event.Action),
				zap.Uint64s("ids", event.IDs),
				zap.Error(err),
			)
		}
	}
	s.publisher.Publish(ctx, event)
}

func (s *EmployeeService) Create(ctx context.Context, payload dto.EmployeeCreateDTO) (*dto.EmployeeResponseDTO, error) {
	logger := s.logger.With(zap.String("empNo", payload.EmpNo))

	passwordHash := ""
	if payload.Password != "" {
		hash, err := utils.HashPassword(payload.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	birthDate := truncateToDay(s.now())
	if payload.BirthDate != nil && !payload.BirthDate.IsZero() {
		birthDate = payload.BirthDate.Time
	}

	employee := &entities.Employee{
		EmpNo:     strings.TrimSpace(payload.EmpNo),
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Profile: entities.EmployeeProfile{
			BirthDate:  &birthDate,
			Gender:     payload.Gender,
			BloodGroup: payload.BloodGroup,
		},
		Job: entities.EmployeeJob{
			Title:          payload.Title,
			Designation:    payload.Designation,
			Function:       payload.Function,
			SubgroupCode:   payload.SubgroupCode,
			Subgroup:       payload.Subgroup,
			ParentDivision: payload.ParentDivision,
			Location:       payload.Location,
			City:           payload.City,
			IsAdmin:        payload.IsAdmin,
			PasswordHash:   passwordHash,
		},
		Contact: entities.EmployeeContact{
			Email:   strings.TrimSpace(payload.Email),
			Phone:   payload.Phone,
			Address: payload.Address,
		},
		Status: entities.EmployeeStatus{
			CollarWorker: payload.CollarWorker,
			WorkSchedule: payload.WorkSchedule,
			WorkingHours: defaultString(payload.WorkingHours, constants.DefaultWorkingHours),
			Status:       defaultString(payload.Status, constants.EmployeeStatusActive),
		},
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		exists, err := s.repo.ExistsByEmpNo(ctx, tx, employee.EmpNo, 0)
		if err != nil {
			return err
		}
		if exists {
			return conflictEmpNo()
		}
		if _, err := s.repo.Create(ctx, tx, employee); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return conflictEmpNo()
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.Warn("employee was not created", zap.Error(err))
		return nil, err
	}

	logger.Info("employee created", zap.Uint64("empID", employee.ID))
	s.committed(ctx, events.NewEmployeeEvent(events.EmployeeCreatedEventName, employee.ID))

	response := toEmployeeResponse(employee)
	return &response, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uint64, payload dto.EmployeeUpdateDTO) (*dto.EmployeeResponseDTO, error) {
	logger := s.logger.With(zap.Uint64("empID", id))

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, employeeNotFound(id)
		}
		return nil, err
	}

	updated := *existing
	updated.EmpNo = strings.TrimSpace(payload.EmpNo)
	updated.FirstName = strings.TrimSpace(payload.FirstName)
	updated.LastName = strings.TrimSpace(payload.LastName)

	if payload.BirthDate != nil && !payload.BirthDate.IsZero() {
		birthDate := payload.BirthDate.Time
		updated.Profile.BirthDate = &birthDate
	}
	updated.Profile.Gender = payload.Gender
	updated.Profile.BloodGroup = payload.BloodGroup

	updated.Job.Title = payload.Title
	updated.Job.Designation = payload.Designation
	updated.Job.Function = payload.Function
	updated.Job.SubgroupCode = payload.SubgroupCode
	updated.Job.Subgroup = payload.Subgroup
	updated.Job.ParentDivision = payload.ParentDivision
	updated.Job.Location = payload.Location
	updated.Job.City = payload.City
	updated.Job.IsAdmin = payload.IsAdmin
	if payload.Password != "" {
		hash, err := utils.HashPassword(payload.Password)
		if err != nil {
			return nil, err
		}
		updated.Job.PasswordHash = hash
	}

	updated.Contact.Email = strings.TrimSpace(payload.Email)
	updated.Contact.Phone = payload.Phone
	updated.Contact.Address = payload.Address

	updated.Status.CollarWorker = payload.CollarWorker
	updated.Status.WorkSchedule = payload.WorkSchedule
	if payload.WorkingHours != nil {
		updated.Status.WorkingHours = formatWorkingHours(*payload.WorkingHours)
	}
	updated.Status.Status = defaultString(payload.Status, constants.EmployeeStatusActive)

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		taken, err := s.repo.ExistsByEmpNo(ctx, tx, updated.EmpNo, id)
		if err != nil {
			return err
		}
		if taken {
			return conflictEmpNo()
		}
		if err := s.repo.Update(ctx, tx, &updated); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrConflict):
				return conflictEmpNo()
			case errors.Is(err, apperrors.ErrNotFound):
				return employeeNotFound(id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		logger.Warn("employee was not updated", zap.Error(err))
		return nil, err
	}

	s.committed(ctx, events.NewEmployeeEvent(events.EmployeeUpdatedEventName, id))
	response := toEmployeeResponse(&updated)
	return &response, nil
}

func (s *EmployeeService) MoveToRecycleBin(ctx context.Context, id uint64) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		count, err := s.repo.CountExisting(ctx, tx, []uint64{id})
		if err != nil {
			return err
		}
		if count == 0 {
			return employeeNotFound(id)
		}
		_, err = s.repo.SoftDelete(ctx, tx, []uint64{id}, truncateToDay(s.now()))
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("employee moved to recycle bin", zap.Uint64("empID", id))
	s.committed(ctx, events.NewEmployeeEvent(events.EmployeeRecycledEventName, id))
	return nil
}

// MoveMultipleToRecycleBin is all-or-nothing: one missing id aborts the whole batch.
func (s *EmployeeService) MoveMultipleToRecycleBin(ctx context.Context, ids []uint64) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return apperrors.NewInvalidInputError("Employee ID list cannot be empty")
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		count, err := s.repo.CountExisting(ctx, tx, ids)
		if err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return apperrors.NewNotFoundError("One or more employees not found")
		}
		_, err = s.repo.SoftDelete(ctx, tx, ids, truncateToDay(s.now()))
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("employees moved to recycle bin", zap.Uint64s("ids", ids))
	s.committed(ctx, events.NewEmployeeEvent(events.EmployeeRecycledEventName, ids...))
	return nil
}

func (s *EmployeeService) RestoreFromRecycleBin(ctx context.Context, ids []uint64) ([]dto.EmployeeResponseDTO, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.NewInvalidInputError("Employee ID list cannot be empty")
	}

	var restored []uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		restored, err = s.repo.Restore(ctx, tx, ids)
		if err != nil {
			return err
		}
		if len(restored) == 0 {
			return apperrors.NewNotFoundError("No employees were restored")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.committed(ctx, events.NewEmployeeEvent(events.EmployeeRestoredEventName, restored...))

	employees, err := s.repo.FindByIDs(ctx, restored)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(employees), nil
}

// DeleteForever returns the number of ids processed; ids that no longer exist are not an error.
func (s *EmployeeService) DeleteForever(ctx context.Context, ids []uint64) (int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, apperrors.NewInvalidInputError("Employee ID list cannot be empty")
	}

	var removed int64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		removed, err = s.repo.DeleteForever(ctx, tx, ids)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("employees deleted permanently", zap.Uint64s("ids", ids), zap.Int64("rows", removed))
	s.committed(ctx, events.NewEmployeeEvent(events.EmployeeDeletedEventName, ids...))
	return int64(len(ids)), nil
}

func (s *EmployeeService) GetChunk(ctx context.Context, chunk int) ([]dto.EmployeeResponseDTO, error) {
	if chunk < 1 {
		chunk = 1
	}
	offset := uint64(chunk-1) * constants.ChunkSize
	employees, err := s.repo.ListActive(ctx, constants.ChunkSize, offset)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(employees), nil
}

func (s *EmployeeService) TotalChunks(ctx context.Context) (int64, error) {
	count, err := s.repo.CountActive(ctx)
	if err != nil {
		return 0, err
	}
	return (count + constants.ChunkSize - 1) / constants.ChunkSize, nil
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]dto.EmployeeResponseDTO, error) {
	employees, err := s.repo.ListAllActive(ctx)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponses(employees), nil
}

// GetDetails also serves recycled employees.
func (s *EmployeeService) GetDetails(ctx context.Context, id uint64) (*dto.EmployeeDetailsDTO, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, employeeNotFound(id)
		}
		return nil, err
	}
	return toEmployeeDetails(employee), nil
}

func (s *EmployeeService) GetRecycled(ctx context.Context) ([]dto.RecycledEmployeeDTO, error) {
	employees, err := s.repo.ListRecycled(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecycledEmployeeDTO, 0, len(employees))
	for i := range employees {
		out = append(out, toRecycledEmployee(&employees[i]))
	}
	return out, nil
}

func (s *EmployeeService) RecycleCount(ctx context.Context) (int64, error) {
	return s.repo.CountRecycled(ctx)
}

func validateNewPassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewInvalidInputError("New password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

func (s *EmployeeService) ChangePassword(ctx context.Context, id uint64, payload dto.ChangePasswordDTO) error {
	if err := validateNewPassword(payload.NewPassword); err != nil {
		return err
	}

	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return employeeNotFound(id)
		}
		return err
	}

	if err := utils.ComparePasswords(employee.Job.PasswordHash, payload.CurrentPassword); err != nil {
		return apperrors.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.Uint64("empID", id))
	return nil
}

// ResetPassword is the forgot-password flow; it needs a prior successful OTP verification.
func (s *EmployeeService) ResetPassword(ctx context.Context, email, newPassword string) error {
	employee, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewInvalidInputError("Employee not found with email: %s", email)
		}
		return err
	}
	logger := s.logger.With(zap.Uint64("empID", employee.ID))

	markerKey := fmt.Sprintf(constants.CacheKeyOTPVerified, employee.ID)
	verified, err := s.cacheRepo.Exists(ctx, markerKey)
	if err != nil {
		return err
	}
	if !verified {
		logger.Warn("password reset without OTP verification")
		return apperrors.NewHttpError(http.StatusUnauthorized, "OTP verification is required before resetting the password", apperrors.ErrUnauthorized, nil)
	}

	if err := validateNewPassword(newPassword); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, employee.ID, hash); err != nil {
		return err
	}

	if err := s.cacheRepo.Del(ctx, markerKey); err != nil {
		logger.Warn("failed to clear OTP verification marker", zap.Error(err))
	}
	logger.Info("password reset")
	return nil
}

func (s *EmployeeService) UploadPhoto(ctx context.Context, id uint64, filename string, file io.Reader) (*dto.PhotoUploadResponseDTO, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, employeeNotFound(id)
		}
		return nil, err
	}

	prefix := config.UploadContexts[constants.UploadContextProfilePhoto.String()].PathPrefix
	path, err := s.storage.Save(file, filename, prefix)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Failed to store the photo", err, nil)
	}
	link := "/uploads/" + path

	if err := s.repo.UpdatePhotoLink(ctx, id, link); err != nil {
		if delErr := s.storage.Delete(link); delErr != nil {
			s.logger.Warn("failed to remove orphaned photo", zap.String("link", link), zap.Error(delErr))
		}
		return nil, err
	}

	if old := employee.Profile.PhotoLink; old != "" && old != link {
		if err := s.storage.Delete(old); err != nil {
			s.logger.Warn("failed to delete previous photo", zap.Uint64("empID", id), zap.Error(err))
		}
	}
	return &dto.PhotoUploadResponseDTO{PhotoLink: link}, nil
}
