package consumer

import (
	"context"
	"encoding/json"

	"go-hrm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SummaryGenerator runs the monthly attendance rollup for one period.
// Satisfied by attendance.Service.
type SummaryGenerator interface {
	GenerateMonthlySummary(ctx context.Context, year, month int) (int, int, error)
}

func ConsumeAttendanceSummaryRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	summaries SummaryGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_summary")
	log.Info("attendance summary consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance summary consumer stopped")
				return
			}
			log.Error("fetch attendance summary message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceSummaryRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance summary event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		processed, failed, err := summaries.GenerateMonthlySummary(ctx, event.Year, event.Month)
		if err != nil {
			log.Error("generate monthly summary failed",
				zap.Int("year", event.Year),
				zap.Int("month", event.Month),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance summary message failed", zap.Error(err))
			continue
		}

		log.Info("monthly attendance summary generated",
			zap.Int("year", event.Year),
			zap.Int("month", event.Month),
			zap.Int("employees_processed", processed),
			zap.Int("employees_failed", failed),
		)
	}
}
