package holiday

import (
	"context"
	"errors"
	"strings"
	"time"

	holidayerrors "go-hrm/internal/holiday/errors"
	"go-hrm/internal/shared/workcal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetByYear(ctx context.Context, year int) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error

	// DatesInRange expands recurring holidays into concrete dates so the
	// attendance and leave engines can treat the result as a plain set.
	DatesInRange(ctx context.Context, start, end time.Time) (workcal.DateSet, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := time.Parse("2006-01-02", req.HolidayDate)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidDateFormat
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}
	isMandatory := true
	if req.IsMandatory != nil {
		isMandatory = *req.IsMandatory
	}

	h := &PublicHoliday{
		ID:           uuid.New(),
		Name:         req.Name,
		HolidayDate:  date,
		IsRecurring:  req.IsRecurring,
		DepartmentID: uuidPtr(req.DepartmentID),
		IsPaid:       isPaid,
		IsMandatory:  isMandatory,
		IsActive:     true,
		Description:  req.Description,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday failed", zap.String("date", req.HolidayDate), zap.Error(err))
		return HolidayResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("date", req.HolidayDate),
	)
	return mapToResponse(*h), nil
}

func (s *service) GetByYear(ctx context.Context, year int) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindByYear(ctx, year)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete holiday failed", zap.String("holiday_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete holiday success", zap.String("holiday_id", id))
	return nil
}

func (s *service) DatesInRange(ctx context.Context, start, end time.Time) (workcal.DateSet, error) {
	fixed, err := s.repo.FindInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(fixed))
	for _, h := range fixed {
		dates = append(dates, h.HolidayDate)
	}

	recurring, err := s.repo.FindRecurring(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range recurring {
		for year := start.Year(); year <= end.Year(); year++ {
			d := time.Date(year, h.HolidayDate.Month(), h.HolidayDate.Day(), 0, 0, 0, 0, time.UTC)
			if !d.Before(workcal.DateOnly(start)) && !d.After(workcal.DateOnly(end)) {
				dates = append(dates, d)
			}
		}
	}

	return workcal.NewDateSet(dates), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return holidayerrors.ErrHolidayNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_public_holiday_date" {
			return holidayerrors.ErrHolidayExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_public_holiday_date") {
		return holidayerrors.ErrHolidayExists
	}

	return err
}

func uuidPtr(v string) *uuid.UUID {
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(h PublicHoliday) HolidayResponse {
	resp := HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		HolidayDate: h.HolidayDate.Format("2006-01-02"),
		IsRecurring: h.IsRecurring,
		IsPaid:      h.IsPaid,
		IsMandatory: h.IsMandatory,
		IsActive:    h.IsActive,
		Description: h.Description,
	}
	if h.DepartmentID != nil {
		resp.DepartmentID = h.DepartmentID.String()
	}
	return resp
}
