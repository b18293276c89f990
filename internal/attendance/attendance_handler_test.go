package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/attendance"
	attendanceerrors "go-hrm/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn     func(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn    func(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	recordBreakFn func(ctx context.Context, employeeID string, req attendance.RecordBreakRequest) (attendance.AttendanceResponse, error)
	approveFn     func(ctx context.Context, approverID string, req attendance.ApproveRequest) (int, error)
	dailyStatusFn func(ctx context.Context, employeeID, date string) (attendance.DailyStatusResponse, error)
	getSummaryFn  func(ctx context.Context, employeeID string, year, month int) (attendance.SummaryResponse, error)
	generateFn    func(ctx context.Context, year, month int) (int, int, error)
}

func (f *fakeService) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, employeeID, req)
}
func (f *fakeService) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, employeeID, req)
}
func (f *fakeService) RecordBreak(ctx context.Context, employeeID string, req attendance.RecordBreakRequest) (attendance.AttendanceResponse, error) {
	return f.recordBreakFn(ctx, employeeID, req)
}
func (f *fakeService) Approve(ctx context.Context, approverID string, req attendance.ApproveRequest) (int, error) {
	return f.approveFn(ctx, approverID, req)
}
func (f *fakeService) DailyStatus(ctx context.Context, employeeID, date string) (attendance.DailyStatusResponse, error) {
	return f.dailyStatusFn(ctx, employeeID, date)
}
func (f *fakeService) GetSummary(ctx context.Context, employeeID string, year, month int) (attendance.SummaryResponse, error) {
	return f.getSummaryFn(ctx, employeeID, year, month)
}
func (f *fakeService) GenerateMonthlySummary(ctx context.Context, year, month int) (int, int, error) {
	return f.generateFn(ctx, year, month)
}

func TestHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "2026-03-02T09:05:00Z", req.Time)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: eid, Status: attendance.StatusOnTime}, nil
		},
	}
	h := attendance.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{"time":"2026-03-02T09:05:00Z"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CheckIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), employeeID)
	assert.Contains(t, w.Body.String(), attendance.StatusOnTime)
}

func TestHandler_CheckIn_MissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CheckIn(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_CheckIn_Duplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		},
	}
	h := attendance.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CheckIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already checked in")
}

func TestHandler_CheckOut(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		checkOutFn: func(ctx context.Context, eid string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, eid)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: eid, TotalWorkingMinutes: 480}, nil
		},
	}
	h := attendance.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/check-out", strings.NewReader(`{"time":"2026-03-02T18:00:00Z"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CheckOut(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"total_working_minutes\":480")
}

func TestHandler_RecordBreak_BindError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/break", strings.NewReader(`{"event_type":"LUNCH"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.RecordBreak(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Approve(t *testing.T) {
	gin.SetMode(gin.TestMode)
	approverID := uuid.New().String()

	svc := &fakeService{
		approveFn: func(ctx context.Context, aid string, req attendance.ApproveRequest) (int, error) {
			assert.Equal(t, approverID, aid)
			assert.Len(t, req.AttendanceIDs, 2)
			return 2, nil
		},
	}
	h := attendance.NewHandler(svc, nil)

	body := `{"attendance_ids":["` + uuid.New().String() + `","` + uuid.New().String() + `"]}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", approverID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/approve", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"approved\":2")
}

func TestHandler_DailyStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		dailyStatusFn: func(ctx context.Context, eid, date string) (attendance.DailyStatusResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "2026-03-02", date)
			return attendance.DailyStatusResponse{EmployeeID: eid, AttendanceDate: date, Status: attendance.StatusNoShow}, nil
		},
	}
	h := attendance.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "employeeId", Value: employeeID}}
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/status/"+employeeID+"?date=2026-03-02", nil)
	h.DailyStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), attendance.StatusNoShow)
}

func TestHandler_GetSummary_InvalidMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/summary/x?year=2026&month=13", nil)
	h.GetSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GenerateSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		generateFn: func(ctx context.Context, year, month int) (int, int, error) {
			assert.Equal(t, 2026, year)
			assert.Equal(t, 3, month)
			return 41, 1, nil
		},
	}
	h := attendance.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/summary/generate", strings.NewReader(`{"year":2026,"month":3}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.GenerateSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"processed\":41")
	assert.Contains(t, w.Body.String(), "\"failed\":1")
}
