package utils

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "employee-system/pkg/errors"

	"github.com/labstack/echo/v4"
)

// QueryUint64 reads a required positive integer query parameter. Aliases are
// tried in order, the first one present wins.
func QueryUint64(c echo.Context, names ...string) (uint64, error) {
	for _, name := range names {
		raw := strings.TrimSpace(c.QueryParam(name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			return 0, apperrors.NewBadRequestError(fmt.Sprintf("Invalid '%s' parameter", name))
		}
		return v, nil
	}
	return 0, apperrors.NewBadRequestError(fmt.Sprintf("Missing '%s' parameter", names[0]))
}

// QueryInt reads an integer query parameter, falling back to def when absent.
func QueryInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("Invalid '%s' parameter", name))
	}
	return v, nil
}
