package report

import (
	"net/http"
	"strconv"
	"time"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	resp, err := h.service.DailyReport(c.Request.Context(), date, c.Query("department_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EmployeeHistory(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"start_date and end_date are required", nil)
		return
	}

	resp, err := h.service.EmployeeHistory(c.Request.Context(), c.Param("employeeId"), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DepartmentLeaveBalances(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year must be a number", nil)
			return
		}
		year = parsed
	}

	resp, err := h.service.DepartmentLeaveBalances(c.Request.Context(), c.Param("departmentId"), year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LeaveCalendar(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput,
			"start_date and end_date are required", nil)
		return
	}

	resp, err := h.service.LeaveCalendar(c.Request.Context(), start, end, c.Query("department_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
