package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-hrm/internal/events"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BalanceInitializer seeds current-year leave balances for one employee.
// Satisfied by leave.Service.
type BalanceInitializer interface {
	InitializeBalancesForEmployee(ctx context.Context, employeeID string, year int) error
}

// ConsumeEmployeeLifecycle gives every newly created employee their leave
// balances for the current year, so a fresh hire can request leave without
// waiting for the next yearly batch.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	balances BalanceInitializer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		year := time.Now().UTC().Year()
		if err := balances.InitializeBalancesForEmployee(ctx, event.EmployeeID, year); err != nil {
			if isUniqueBalanceViolation(err) {
				log.Warn("leave balances already exist for event, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("initialize leave balances failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Int("year", year),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave balances initialized from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.Int("year", year),
		)
	}
}

func isUniqueBalanceViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_balance_policy_year"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_balance_policy_year")
}
