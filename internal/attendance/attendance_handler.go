package attendance

import (
	"net/http"
	"strconv"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"
	"go-hrm/internal/storage"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
	storage storage.ObjectStorage
}

func NewHandler(service Service, store storage.ObjectStorage) *Handler {
	return &Handler{service: service, storage: store}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func actingEmployeeID(c *gin.Context) (string, bool) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "employee identity missing from token", nil)
		return "", false
	}
	return employeeID, true
}

func (h *Handler) CheckIn(c *gin.Context) {
	employeeID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	employeeID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordBreak(c *gin.Context) {
	employeeID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req RecordBreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.RecordBreak(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	approverID := c.GetString("employee_id")

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	approved, err := h.service.Approve(c.Request.Context(), approverID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"approved": approved}, nil)
}

func (h *Handler) DailyStatus(c *gin.Context) {
	employeeID := c.Param("employeeId")
	date := c.Query("date")

	resp, err := h.service.DailyStatus(c.Request.Context(), employeeID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year must be a number", nil)
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "month must be 1-12", nil)
		return
	}

	resp, err := h.service.GetSummary(c.Request.Context(), c.Param("employeeId"), year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GenerateSummary(c *gin.Context) {
	var req GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	processed, failed, err := h.service.GenerateMonthlySummary(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, GenerateSummaryResponse{Processed: processed, Failed: failed}, nil)
}

// UploadPhoto stores punch photo evidence and returns the object path the
// client then sends on check-in or check-out.
func (h *Handler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "photo file is required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	path, err := h.storage.Upload(c.Request.Context(), file, header.Filename, contentType, "attendance")
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, PhotoUploadResponse{Path: path}, nil)
}
