package workshifterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"work shift not found",
		http.StatusNotFound,
	)
	ErrShiftInUse = apperror.New(
		apperror.CodeConflict,
		"work shift is referenced by assignments or attendance and cannot be deleted, deactivate it instead",
		http.StatusConflict,
	)
	ErrShiftNameTaken = apperror.New(
		apperror.CodeConflict,
		"work shift with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time for non night shifts",
		http.StatusBadRequest,
	)
	ErrInvalidWeekday = apperror.New(
		apperror.CodeInvalidInput,
		"invalid weekday name in applicable_days",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrScheduleExists = apperror.New(
		apperror.CodeConflict,
		"a schedule already exists for this employee and date",
		http.StatusConflict,
	)
	ErrAssignmentExists = apperror.New(
		apperror.CodeConflict,
		"an identical shift assignment already exists",
		http.StatusConflict,
	)
	ErrNoShiftForDate = apperror.New(
		apperror.CodeInvalidState,
		"no schedule or shift assignment covers this date",
		http.StatusUnprocessableEntity,
	)
)
