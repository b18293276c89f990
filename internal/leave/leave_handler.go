package leave

import (
	"net/http"
	"strconv"
	"time"

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

func (h *Handler) Create(c *gin.Context) {
	employeeID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req CreateLeaveRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.CreateRequest(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	resp, err := h.service.GetByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckEligibility(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		employeeID = c.GetString("employee_id")
	}

	eligible, err := h.service.CanRequestLeave(
		c.Request.Context(),
		employeeID,
		c.Query("policy_id"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, EligibilityResponse{Eligible: eligible}, nil)
}

func (h *Handler) SetupWorkflow(c *gin.Context) {
	var req SetupWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.SetupApprovalWorkflow(c.Request.Context(), c.Param("id"), req.ApproverIDs)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ProcessApproval(c *gin.Context) {
	approverID, ok := actingEmployeeID(c)
	if !ok {
		return
	}

	var req ProcessApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.ProcessApproval(c.Request.Context(), approverID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true}, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetBalances(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year must be a number", nil)
			return
		}
		year = parsed
	}

	resp, err := h.service.GetBalances(c.Request.Context(), c.Param("employeeId"), year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AdjustBalance(c *gin.Context) {
	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.AdjustBalance(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) InitializeBalances(c *gin.Context) {
	var req InitializeBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	processed, failed, err := h.service.InitializeBalancesForYear(c.Request.Context(), req.Year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, InitializeBalancesResponse{Processed: processed, Failed: failed}, nil)
}

// UploadAttachment stores a supporting document and returns the object
// path the client then sends on request creation.
func (h *Handler) UploadAttachment(c *gin.Context) {
	file, header, err := c.Request.FormFile("attachment")
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "attachment file is required", nil)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	path, err := h.storage.Upload(c.Request.Context(), file, header.Filename, contentType, "leave")
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, AttachmentUploadResponse{Path: path}, nil)
}
