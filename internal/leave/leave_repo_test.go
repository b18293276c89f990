package leave

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepoMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, Repository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return db, mock, NewRepository(gdb)
}

// Statements issued through WithTx must run on the transaction itself. A
// repository still bound to the pool would open its own transaction here,
// which the mock would reject as an unexpected second BEGIN.
func TestRepository_WithTx_RunsOnTransaction(t *testing.T) {
	db, mock, repo := newRepoMock(t)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	mock.ExpectExec(`DELETE FROM "leave_requests"`).
		WithArgs("req-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.WithTx(tx).DeleteRequest(context.Background(), "req-1"))

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithTx_RollbackDiscardsEarlierWrites(t *testing.T) {
	db, mock, repo := newRepoMock(t)
	defer db.Close()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)
	qtx := repo.WithTx(tx)

	step := &LeaveApprovalWorkflow{
		ID:             uuid.New(),
		LeaveRequestID: uuid.New(),
		ApproverID:     uuid.New(),
		StepOrder:      1,
		Status:         StepApproved,
	}
	mock.ExpectExec(`UPDATE "leave_approval_workflows"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, qtx.UpdateWorkflowStep(context.Background(), step))

	balance := &EmployeeLeaveBalance{
		ID:            uuid.New(),
		EmployeeID:    uuid.New(),
		PolicyID:      uuid.New(),
		Year:          2026,
		AllocatedDays: decimal.NewFromInt(12),
		UsedDays:      decimal.NewFromInt(5),
	}
	mock.ExpectExec(`UPDATE "employee_leave_balances"`).
		WillReturnError(errors.New("connection reset by peer"))
	assert.Error(t, qtx.UpdateBalance(context.Background(), balance))

	// The step update and the failed balance update share one transaction,
	// so rolling it back leaves no half-approved state behind.
	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
