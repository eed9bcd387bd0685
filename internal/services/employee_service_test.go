package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/entities"
	"employee-system/internal/events"
	"employee-system/pkg/config"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/service"
	"employee-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

type employeeFixture struct {
	repo      *fakeEmployeeRepo
	cache     *fakeCache
	storage   *fakeStorage
	publisher *recordingPublisher
	tx        *fakeTxManager
	svc       *EmployeeService
}

func newEmployeeFixture(list ...*entities.Employee) *employeeFixture {
	f := &employeeFixture{
		repo:      newFakeEmployeeRepo(list...),
		cache:     newFakeCache(),
		storage:   newFakeStorage(),
		publisher: &recordingPublisher{},
		tx:        &fakeTxManager{},
	}
	f.svc = NewEmployeeService(f.repo, f.tx, f.cache, f.storage, f.publisher, zap.NewNop()).(*EmployeeService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr), "expected HttpError, got %v", err)
	return httpErr.Code
}

func newEmployee(id uint64, empNo, first, last string) *entities.Employee {
	return &entities.Employee{
		ID:        id,
		EmpNo:     empNo,
		FirstName: first,
		LastName:  last,
		Contact:   entities.EmployeeContact{Email: strings.ToLower(first) + "@example.com"},
		Status:    entities.EmployeeStatus{Status: constants.EmployeeStatusActive, WorkingHours: "8"},
	}
}

func TestEmployeeService_Create(t *testing.T) {
	f := newEmployeeFixture()

	resp, err := f.svc.Create(context.Background(), dto.EmployeeCreateDTO{
		EmpNo:     " E100 ",
		FirstName: "Alice",
		LastName:  "Lee",
		Email:     "alice@example.com",
		Password:  "secret1",
		Status:    "active",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), resp.ID)
	assert.Equal(t, "E100", resp.EmpID)
	assert.Equal(t, "Alice Lee", resp.Name)
	assert.Equal(t, AvatarColor(1), resp.AvatarColor)
	require.NotNil(t, resp.Dob)
	assert.Equal(t, "2024-03-10", resp.Dob.String(), "birth date defaults to today")
	assert.Equal(t, constants.DefaultWorkingHours, resp.WorkingHours)

	stored := f.repo.get(1)
	require.NotNil(t, stored)
	assert.NoError(t, utils.ComparePasswords(stored.Job.PasswordHash, "secret1"))
	assert.Equal(t, []string{events.EmployeeCreatedEventName}, f.publisher.names())
}

func TestEmployeeService_CreateDuplicateEmpNo(t *testing.T) {
	f := newEmployeeFixture(newEmployee(1, "E100", "Alice", "Lee"))

	_, err := f.svc.Create(context.Background(), dto.EmployeeCreateDTO{EmpNo: "E100", FirstName: "Bob", LastName: "Ray", Status: "active"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Empty(t, f.publisher.names())
}

func TestEmployeeService_CreateRejectsEmpNoOfRecycledEmployee(t *testing.T) {
	recycled := newEmployee(1, "E100", "Alice", "Lee")
	recycled.Status.IsDeleted = true
	f := newEmployeeFixture(recycled)

	_, err := f.svc.Create(context.Background(), dto.EmployeeCreateDTO{EmpNo: "E100", FirstName: "Bob", LastName: "Ray", Status: "active"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestEmployeeService_Update(t *testing.T) {
	birth := time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC)
	existing := newEmployee(1, "E100", "Alice", "Lee")
	existing.Profile.BirthDate = &birth
	existing.Job.PasswordHash = "keep"
	f := newEmployeeFixture(existing, newEmployee(2, "E200", "Bob", "Ray"))

	hours := 7.5
	resp, err := f.svc.Update(context.Background(), 1, dto.EmployeeUpdateDTO{
		EmpNo:        "E101",
		FirstName:    "Alicia",
		LastName:     "Lee",
		WorkingHours: &hours,
		Status:       "active",
	})
	require.NoError(t, err)
	assert.Equal(t, "E101", resp.EmpID)
	assert.Equal(t, "7.5", resp.WorkingHours)

	stored := f.repo.get(1)
	assert.Equal(t, "Alicia", stored.FirstName)
	assert.Equal(t, birth, *stored.Profile.BirthDate, "omitted birth date is kept")
	assert.Equal(t, "keep", stored.Job.PasswordHash, "omitted password is kept")
}

func TestEmployeeService_UpdateKeepsWorkingHoursWhenOmitted(t *testing.T) {
	f := newEmployeeFixture(newEmployee(1, "E100", "Alice", "Lee"))

	resp, err := f.svc.Update(context.Background(), 1, dto.EmployeeUpdateDTO{EmpNo: "E100", FirstName: "Alice", LastName: "Lee", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "8", resp.WorkingHours)
}

func TestEmployeeService_UpdateErrors(t *testing.T) {
	f := newEmployeeFixture(newEmployee(1, "E100", "Alice", "Lee"), newEmployee(2, "E200", "Bob", "Ray"))

	_, err := f.svc.Update(context.Background(), 99, dto.EmployeeUpdateDTO{EmpNo: "E999", FirstName: "X", LastName: "Y", Status: "active"})
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))

	_, err = f.svc.Update(context.Background(), 1, dto.EmployeeUpdateDTO{EmpNo: "E200", FirstName: "Alice", LastName: "Lee", Status: "active"})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
	assert.Equal(t, "E100", f.repo.get(1).EmpNo)
}

func TestEmployeeService_RecycleBinLifecycle(t *testing.T) {
	f := newEmployeeFixture(
		newEmployee(1, "E1", "Alice", "Lee"),
		newEmployee(2, "E2", "Bob", "Ray"),
		newEmployee(3, "E3", "Cara", "Kim"),
	)
	ctx := context.Background()

	require.NoError(t, f.svc.MoveToRecycleBin(ctx, 1))
	assert.True(t, f.repo.get(1).Status.IsDeleted)
	require.NotNil(t, f.repo.get(1).Status.DeletedOn)
	assert.Equal(t, truncateToDay(fixedNow), *f.repo.get(1).Status.DeletedOn)

	count, err := f.svc.RecycleCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	recycled, err := f.svc.GetRecycled(ctx)
	require.NoError(t, err)
	require.Len(t, recycled, 1)
	assert.Equal(t, "E1", recycled[0].EmpNo)
	assert.False(t, recycled[0].Selected)

	all, err := f.svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	restored, err := f.svc.RestoreFromRecycleBin(ctx, []uint64{1, 1, 2})
	require.NoError(t, err)
	require.Len(t, restored, 2, "an active id in the batch is restored as a no-op")
	assert.Equal(t, uint64(1), restored[0].ID)
	assert.Equal(t, uint64(2), restored[1].ID)
	assert.False(t, f.repo.get(1).Status.IsDeleted)
	assert.Nil(t, f.repo.get(1).Status.DeletedOn)

	_, err = f.svc.RestoreFromRecycleBin(ctx, []uint64{42})
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))

	deleted, err := f.svc.DeleteForever(ctx, []uint64{3, 42})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Nil(t, f.repo.get(3))

	assert.Equal(t, []string{
		events.EmployeeRecycledEventName,
		events.EmployeeRestoredEventName,
		events.EmployeeDeletedEventName,
	}, f.publisher.names())
}

func TestEmployeeService_MoveMultipleToRecycleBinIsAllOrNothing(t *testing.T) {
	f := newEmployeeFixture(newEmployee(1, "E1", "Alice", "Lee"), newEmployee(2, "E2", "Bob", "Ray"))
	ctx := context.Background()

	err := f.svc.MoveMultipleToRecycleBin(ctx, []uint64{1, 99})
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
	assert.False(t, f.repo.get(1).Status.IsDeleted)

	err = f.svc.MoveMultipleToRecycleBin(ctx, nil)
	assert.True(t, apperrors.IsInvalidInput(err))

	require.NoError(t, f.svc.MoveMultipleToRecycleBin(ctx, []uint64{1, 2}))
	assert.True(t, f.repo.get(1).Status.IsDeleted)
	assert.True(t, f.repo.get(2).Status.IsDeleted)
}

func TestEmployeeService_MoveToRecycleBinUnknown(t *testing.T) {
	f := newEmployeeFixture()
	err := f.svc.MoveToRecycleBin(context.Background(), 5)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestEmployeeService_DeleteForeverEmptyList(t *testing.T) {
	f := newEmployeeFixture()
	_, err := f.svc.DeleteForever(context.Background(), []uint64{})
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestEmployeeService_Chunks(t *testing.T) {
	list := make([]*entities.Employee, 0, 120)
	for i := uint64(1); i <= 120; i++ {
		list = append(list, newEmployee(i, fmt.Sprintf("E%d", i), "First", "Last"))
	}
	f := newEmployeeFixture(list...)
	ctx := context.Background()

	total, err := f.svc.TotalChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	first, err := f.svc.GetChunk(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, constants.ChunkSize)
	assert.Equal(t, uint64(1), first[0].ID)

	last, err := f.svc.GetChunk(ctx, 3)
	require.NoError(t, err)
	require.Len(t, last, 20)
	assert.Equal(t, uint64(101), last[0].ID)

	zero, err := f.svc.GetChunk(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, first, zero)

	beyond, err := f.svc.GetChunk(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestEmployeeService_GetDetails(t *testing.T) {
	e := newEmployee(1, "E100", "Alice", "Lee")
	e.Status.WorkingHours = "8.5 hrs"
	e.Status.IsDeleted = true
	f := newEmployeeFixture(e)

	details, err := f.svc.GetDetails(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8.5, details.WorkingHours)
	assert.True(t, details.IsDeleted, "recycled employees are still readable")

	_, err = f.svc.GetDetails(context.Background(), 2)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestEmployeeService_ChangePasswordThenLogin(t *testing.T) {
	e := newEmployee(1, "E100", "Alice", "Lee")
	e.Job.PasswordHash = hashed(t, "initial1")
	f := newEmployeeFixture(e)
	ctx := context.Background()

	err := f.svc.ChangePassword(ctx, 1, dto.ChangePasswordDTO{CurrentPassword: "initial1", NewPassword: "short"})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidInput(err))

	err = f.svc.ChangePassword(ctx, 1, dto.ChangePasswordDTO{CurrentPassword: "wrong", NewPassword: "brandnew"})
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	require.NoError(t, f.svc.ChangePassword(ctx, 1, dto.ChangePasswordDTO{CurrentPassword: "initial1", NewPassword: "brandnew"}))

	jwtSvc := service.NewJWTService("test-secret", time.Hour, 2*time.Hour, zap.NewNop())
	auth := NewAuthService(f.repo, f.cache, jwtSvc, config.AuthConfig{MaxLoginAttempts: 5, LockoutDuration: 15 * time.Minute}, zap.NewNop())

	resp, err := auth.LoginEmployee(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "brandnew"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), resp.ID)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = auth.LoginEmployee(ctx, dto.LoginDTO{Email: "alice@example.com", Password: "initial1"})
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestEmployeeService_ResetPasswordNeedsVerifiedOTP(t *testing.T) {
	e := newEmployee(1, "E100", "Alice", "Lee")
	e.Job.PasswordHash = hashed(t, "initial1")
	f := newEmployeeFixture(e)
	ctx := context.Background()

	err := f.svc.ResetPassword(ctx, "alice@example.com", "brandnew")
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	err = f.svc.ResetPassword(ctx, "nobody@example.com", "brandnew")
	assert.True(t, apperrors.IsInvalidInput(err))

	require.NoError(t, f.cache.Set(ctx, "otp_verified:1", "1", time.Minute))
	require.NoError(t, f.svc.ResetPassword(ctx, "alice@example.com", "brandnew"))
	assert.NoError(t, utils.ComparePasswords(f.repo.get(1).Job.PasswordHash, "brandnew"))

	exists, _ := f.cache.Exists(ctx, "otp_verified:1")
	assert.False(t, exists, "the marker is single use")
}

func TestEmployeeService_UploadPhotoReplacesPrevious(t *testing.T) {
	e := newEmployee(1, "E100", "Alice", "Lee")
	e.Profile.PhotoLink = "/uploads/profile_photos/old.png"
	f := newEmployeeFixture(e)

	resp, err := f.svc.UploadPhoto(context.Background(), 1, "me.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.PhotoLink, "/uploads/"))
	assert.Equal(t, resp.PhotoLink, f.repo.get(1).Profile.PhotoLink)
	assert.Equal(t, []string{"/uploads/profile_photos/old.png"}, f.storage.deleted)

	_, err = f.svc.UploadPhoto(context.Background(), 7, "me.png", strings.NewReader("x"))
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestAvatarColorIsDeterministic(t *testing.T) {
	for id := uint64(1); id < 50; id++ {
		assert.Equal(t, AvatarColor(id), AvatarColor(id))
		assert.Contains(t, constants.AvatarPalette, AvatarColor(id))
	}
}

func TestParseWorkingHours(t *testing.T) {
	cases := map[string]float64{
		"8":        8,
		"8.5 hrs":  8.5,
		"":         0,
		"n/a":      0,
		"1.2.3":    0,
		" 9 hours": 9,
	}
	for raw, want := range cases {
		assert.Equal(t, want, parseWorkingHours(raw), raw)
	}
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, uniqueIDs([]uint64{3, 0, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}
