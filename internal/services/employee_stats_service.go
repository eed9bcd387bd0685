package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/repositories"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"

	"go.uber.org/zap"
)

type EmployeeStatsServiceInterface interface {
	ByBirthMonth(ctx context.Context, month int) ([]dto.EmployeeBirthdayDTO, error)
	DivisionCounts(ctx context.Context) ([]dto.DivisionEmployeeCountDTO, error)
	GenderByFunction(ctx context.Context) ([]dto.FunctionGenderStatsDTO, error)
	BloodGroupCounts(ctx context.Context) (map[string]int64, error)
}

// EmployeeStatsService serves the dashboard aggregates. The three chart
// aggregates are cached; lifecycle events invalidate them.
type EmployeeStatsService struct {
	repo      repositories.EmployeeStatsRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewEmployeeStatsService(
	repo repositories.EmployeeStatsRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) EmployeeStatsServiceInterface {
	return &EmployeeStatsService{repo: repo, cacheRepo: cacheRepo, cacheTTL: cacheTTL, logger: logger}
}

// cached reads key from the cache or computes and stores it. Cache failures
// are logged and never fail the request.
func cached[T any](ctx context.Context, s *EmployeeStatsService, key string, load func() (T, error)) (T, error) {
	var value T
	if s.cacheRepo != nil && s.cacheTTL > 0 {
		raw, err := s.cacheRepo.Get(ctx, key)
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(raw), &value); jsonErr == nil {
				return value, nil
			}
		} else if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	if s.cacheRepo != nil && s.cacheTTL > 0 {
		if payload, err := json.Marshal(value); err == nil {
			if err := s.cacheRepo.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return value, nil
}

func (s *EmployeeStatsService) ByBirthMonth(ctx context.Context, month int) ([]dto.EmployeeBirthdayDTO, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewInvalidInputError("Month must be between 1 and 12")
	}
	list, err := s.repo.FindByBirthMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeBirthdayDTO, 0, len(list))
	for _, b := range list {
		out = append(out, toEmployeeBirthday(b))
	}
	return out, nil
}

func (s *EmployeeStatsService) DivisionCounts(ctx context.Context) ([]dto.DivisionEmployeeCountDTO, error) {
	return cached(ctx, s, constants.CacheKeyStatsDivision, func() ([]dto.DivisionEmployeeCountDTO, error) {
		rows, err := s.repo.CountByDivision(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.DivisionEmployeeCountDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.DivisionEmployeeCountDTO{Division: r.Division, NoOfEmployees: r.Count})
		}
		return out, nil
	})
}

func (s *EmployeeStatsService) GenderByFunction(ctx context.Context) ([]dto.FunctionGenderStatsDTO, error) {
	return cached(ctx, s, constants.CacheKeyStatsGender, func() ([]dto.FunctionGenderStatsDTO, error) {
		rows, err := s.repo.CountGenderByFunction(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.FunctionGenderStatsDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.FunctionGenderStatsDTO{Function: r.Function, NoOfMales: r.Males, NoOfFemales: r.Females})
		}
		return out, nil
	})
}

func (s *EmployeeStatsService) BloodGroupCounts(ctx context.Context) (map[string]int64, error) {
	return cached(ctx, s, constants.CacheKeyStatsBloodGroup, func() (map[string]int64, error) {
		rows, err := s.repo.CountByBloodGroup(ctx)
		if err != nil {
			return nil, err
		}
		out := make(map[string]int64, len(rows))
		for _, r := range rows {
			out[r.BloodGroup] += r.Count
		}
		return out, nil
	})
}
