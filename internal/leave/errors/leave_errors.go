package leaveerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrPolicyNotAvailable = apperror.New(
		apperror.CodeNotFound,
		"leave policy not found or not active",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found for this employee, policy and year",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidDayAmount = apperror.New(
		apperror.CodeInvalidInput,
		"day amount must be a valid decimal",
		http.StatusBadRequest,
	)
	ErrInsufficientNotice = apperror.New(
		apperror.CodeInvalidState,
		"request does not meet the policy's minimum advance notice",
		http.StatusUnprocessableEntity,
	)
	ErrExceedsMaxConsecutive = apperror.New(
		apperror.CodeInvalidState,
		"requested days exceed the policy's maximum consecutive days",
		http.StatusUnprocessableEntity,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"remaining leave balance is not enough for the requested days",
		http.StatusUnprocessableEntity,
	)
	ErrNoRequestedDays = apperror.New(
		apperror.CodeInvalidState,
		"the requested range contains no countable leave days",
		http.StatusUnprocessableEntity,
	)
	ErrDocumentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this leave policy requires a supporting document",
		http.StatusBadRequest,
	)
	ErrLeaveConflict = apperror.New(
		apperror.CodeConflict,
		"an overlapping leave request already exists",
		http.StatusConflict,
	)
	ErrStepNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval step not found or already processed",
		http.StatusNotFound,
	)
	ErrStepOutOfOrder = apperror.New(
		apperror.CodeInvalidState,
		"an earlier approval step is still pending",
		http.StatusConflict,
	)
	ErrRequestNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusConflict,
	)
	ErrCannotCancel = apperror.New(
		apperror.CodeInvalidState,
		"completed leave requests cannot be cancelled",
		http.StatusConflict,
	)
	ErrCannotDelete = apperror.New(
		apperror.CodeInvalidState,
		"only pending, rejected or cancelled requests can be deleted",
		http.StatusConflict,
	)
	ErrNoApprovers = apperror.New(
		apperror.CodeInvalidInput,
		"at least one approver is required",
		http.StatusBadRequest,
	)
)
