// Package scope collects the gorm query scopes shared by the reporting
// repositories.
package scope

import (
	"time"

	"gorm.io/gorm"
)

func ByEmployee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

func ByDepartment(departmentID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("department_id = ?", departmentID)
	}
}

// DateBetween filters a DATE column to [start, end] inclusive.
func DateBetween(column string, start, end time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
}
