package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-hrm/internal/attendance"
	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/holiday"
	"go-hrm/internal/leave"
	"go-hrm/internal/leavepolicy"
	"go-hrm/internal/messaging/kafka/consumer"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/workshift"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	policyRepo := leavepolicy.NewRepository(gormDB)
	shiftRepo := workshift.NewRepository(gormDB)

	holidayService := holiday.NewService(holidayRepo)
	workshiftService := workshift.NewService(sqlDB, shiftRepo)
	leaveService := leave.NewService(sqlDB, leaveRepo, policyRepo, employeeRepo, holidayService, nil)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, workshiftService, employeeRepo, leaveService)

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeCreatedTopic,
		GroupID:        "go-hrm-leave-balance",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	summaryReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.AttendanceSummaryRequestedTopic,
		GroupID:        "go-hrm-attendance-summary",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer summaryReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, leaveService, logger)
	go consumer.ConsumeAttendanceSummaryRequested(ctx, summaryReader, attendanceService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
