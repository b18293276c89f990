package attendanceerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"already checked in for this date",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"must check in first",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out for this date",
		http.StatusConflict,
	)
	ErrBreakAlreadyStarted = apperror.New(
		apperror.CodeInvalidState,
		"break has already been started today",
		http.StatusConflict,
	)
	ErrBreakNotStarted = apperror.New(
		apperror.CodeInvalidState,
		"break has not been started",
		http.StatusUnprocessableEntity,
	)
	ErrBreakAlreadyEnded = apperror.New(
		apperror.CodeInvalidState,
		"break has already been ended today",
		http.StatusConflict,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEventType = apperror.New(
		apperror.CodeInvalidInput,
		"event type must be BREAK_START or BREAK_END",
		http.StatusBadRequest,
	)
)
