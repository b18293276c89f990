package leavepolicyerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave policy not found",
		http.StatusNotFound,
	)
	ErrPolicyNameTaken = apperror.New(
		apperror.CodeConflict,
		"a leave policy with the same name already exists",
		http.StatusConflict,
	)
	ErrPolicyInUse = apperror.New(
		apperror.CodeConflict,
		"leave policy is referenced by balance records and cannot be deleted, deactivate it instead",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDayAmount = apperror.New(
		apperror.CodeInvalidInput,
		"day amounts must be valid non-negative decimals",
		http.StatusBadRequest,
	)
)
