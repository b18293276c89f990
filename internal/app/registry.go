package app

import (
	"database/sql"
	"path/filepath"

	"go-hrm/internal/attendance"
	"go-hrm/internal/employee"
	"go-hrm/internal/holiday"
	"go-hrm/internal/leave"
	"go-hrm/internal/leavepolicy"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/report"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/storage"
	"go-hrm/internal/workshift"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	store storage.ObjectStorage,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	policyRepo := leavepolicy.NewRepository(gormDB)
	shiftRepo := workshift.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	holidayService := holiday.NewService(holidayRepo)
	policyService := leavepolicy.NewService(policyRepo)
	workshiftService := workshift.NewService(db, shiftRepo)
	leaveService := leave.NewService(db, leaveRepo, policyRepo, employeeRepo, holidayService, outboxRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, workshiftService, employeeRepo, leaveService)
	reportService := report.NewService(attendanceRepo, leaveRepo, employeeRepo, holidayService, rdb)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, store)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService, store)
	policyHandler := leavepolicy.NewHandler(policyService)
	reportHandler := report.NewHandler(reportService)
	rbacHandler := rbac.NewHandler(rbacService)
	workshiftHandler := workshift.NewHandler(workshiftService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, logger)
		leavepolicy.RegisterRoutes(api, policyHandler, rbacService, logger)
		report.RegisterRoutes(api, reportHandler, rbacService, logger)
		workshift.RegisterRoutes(api, workshiftHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
