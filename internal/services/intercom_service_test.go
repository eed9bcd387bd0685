package services

import (
	"context"
	"net/http"
	"testing"

	"employee-system/internal/dto"
	apperrors "employee-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIntercomFixture() (*fakeIntercomRepo, *fakeEmployeeRepo, IntercomServiceInterface) {
	emp := newEmployee(1, "E100", "Alice", "Lee")
	emp.Job.Designation = "Engineer"
	emp.Job.ParentDivision = "Refinery"
	emp.Status.CollarWorker = "White"
	emp.Contact.Phone = "555-0100"

	repo := newFakeIntercomRepo()
	employees := newFakeEmployeeRepo(emp)
	return repo, employees, NewIntercomService(repo, employees, &fakeTxManager{}, zap.NewNop())
}

func TestIntercomService_CreateBackfillsFromEmployee(t *testing.T) {
	_, _, svc := newIntercomFixture()

	resp, err := svc.AddOrUpdate(context.Background(), dto.EmployeeIntercomDTO{
		EmpNo:    " E100 ",
		Phone:    null.StringFrom("555-9999"),
		Intercom: null.IntFrom(4312),
		Floor:    null.IntFrom(3),
	})
	require.NoError(t, err)

	assert.Equal(t, "E100", resp.EmpNo)
	require.NotNil(t, resp.Name)
	assert.Equal(t, "Alice Lee", *resp.Name)
	assert.Equal(t, "Engineer", *resp.Designation)
	assert.Equal(t, "Refinery", *resp.Division)
	assert.Equal(t, "White", *resp.WorkerType)
	assert.Equal(t, "555-9999", *resp.Phone, "provided fields win over the employee record")
	assert.Equal(t, 4312, *resp.Intercom)
	assert.Equal(t, 3, *resp.Floor)
	assert.Nil(t, resp.Grade)
}

func TestIntercomService_CreateWithoutEmployeeLeavesFieldsEmpty(t *testing.T) {
	_, _, svc := newIntercomFixture()

	resp, err := svc.AddOrUpdate(context.Background(), dto.EmployeeIntercomDTO{EmpNo: "X9", Name: null.StringFrom("Visitor Desk")})
	require.NoError(t, err)
	assert.Equal(t, "Visitor Desk", *resp.Name)
	assert.Nil(t, resp.Email)
	assert.Nil(t, resp.Designation)
}

func TestIntercomService_UpdateAndConflicts(t *testing.T) {
	repo, _, svc := newIntercomFixture()
	ctx := context.Background()

	first, err := svc.AddOrUpdate(ctx, dto.EmployeeIntercomDTO{EmpNo: "X1", Name: null.StringFrom("Reception")})
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(ctx, dto.EmployeeIntercomDTO{EmpNo: "X2", Name: null.StringFrom("Security")})
	require.NoError(t, err)

	_, err = svc.AddOrUpdate(ctx, dto.EmployeeIntercomDTO{EmpNo: "X1"})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))

	_, err = svc.Update(ctx, first.ID, dto.EmployeeIntercomDTO{EmpNo: "X2"})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))

	updated, err := svc.Update(ctx, first.ID, dto.EmployeeIntercomDTO{EmpNo: "X1", Grade: null.StringFrom("E4")})
	require.NoError(t, err)
	assert.Equal(t, "Reception", *updated.Name, "unset fields keep the stored value")
	assert.Equal(t, "E4", *updated.Grade)
	assert.Len(t, repo.items, 2)

	_, err = svc.Update(ctx, 77, dto.EmployeeIntercomDTO{EmpNo: "X7"})
	assert.Equal(t, http.StatusNotFound, httpStatus(t, err))
}

func TestIntercomService_AddWithoutIDRejectsListedEmpNo(t *testing.T) {
	repo, _, svc := newIntercomFixture()
	ctx := context.Background()

	created, err := svc.AddOrUpdate(ctx, dto.EmployeeIntercomDTO{EmpNo: "E100", Intercom: null.IntFrom(100)})
	require.NoError(t, err)

	_, err = svc.AddOrUpdate(ctx, dto.EmployeeIntercomDTO{EmpNo: "E100", Intercom: null.IntFrom(200)})
	assert.Equal(t, http.StatusConflict, httpStatus(t, err))
	assert.Len(t, repo.items, 1)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, 100, *list[0].Intercom)
}

func TestIntercomService_DeleteBulk(t *testing.T) {
	_, _, svc := newIntercomFixture()
	ctx := context.Background()

	a, err := svc.AddOrUpdate(ctx, dto.EmployeeIntercomDTO{EmpNo: "X1"})
	require.NoError(t, err)
	b, err := svc.AddOrUpdate(ctx, dto.EmployeeIntercomDTO{EmpNo: "X2"})
	require.NoError(t, err)

	deleted, err := svc.DeleteBulk(ctx, []uint64{a.ID, b.ID, a.ID, 99})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = svc.DeleteBulk(ctx, nil)
	assert.True(t, apperrors.IsInvalidInput(err))
}

func dtoIntercom(empNo string) dto.EmployeeIntercomDTO {
	return dto.EmployeeIntercomDTO{EmpNo: empNo}
}
