package holidayerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"public holiday not found",
		http.StatusNotFound,
	)
	ErrHolidayExists = apperror.New(
		apperror.CodeConflict,
		"a public holiday already exists on this date",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
