package utils

import (
	"context"

	"employee-system/pkg/contextkeys"
	apperrors "employee-system/pkg/errors"
)

// EmployeeIDFromContext returns the authenticated employee id put there by the auth middleware.
func EmployeeIDFromContext(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.EmployeeIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}
