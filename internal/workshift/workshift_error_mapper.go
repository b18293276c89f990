package workshift

import (
	"errors"
	"strings"

	workshifterrors "go-hrm/internal/workshift/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapShiftRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workshifterrors.ErrShiftNotFound
	}

	if isUniqueViolation(err, "uq_work_shift_name") {
		return workshifterrors.ErrShiftNameTaken
	}

	return err
}

func mapAssignmentRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if isUniqueViolation(err, "uq_shift_assignment") {
		return workshifterrors.ErrAssignmentExists
	}

	return err
}

func mapScheduleRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if isUniqueViolation(err, "uq_work_schedule_day") {
		return workshifterrors.ErrScheduleExists
	}

	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraint)
}
