package leavepolicy

import (
	"context"
	"errors"
	"strings"
	"time"

	leavepolicyerrors "go-hrm/internal/leavepolicy/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavepolicy_service.go -destination=mock/leavepolicy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	GetAll(ctx context.Context) ([]PolicyResponse, error)
	GetByID(ctx context.Context, id string) (PolicyResponse, error)
	Update(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavepolicy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavepolicy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error) {
	allowance, carryForward, err := parseDayAmounts(req.AnnualAllowanceDays, req.MaxCarryForwardDays)
	if err != nil {
		return PolicyResponse{}, err
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return PolicyResponse{}, leavepolicyerrors.ErrInvalidDateFormat
	}
	effectiveTo, err := parseOptionalDate(req.EffectiveTo)
	if err != nil {
		return PolicyResponse{}, err
	}

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	p := &LeavePolicy{
		ID:                   uuid.New(),
		Name:                 req.Name,
		AnnualAllowanceDays:  allowance,
		MaxCarryForwardDays:  carryForward,
		MaxConsecutiveDays:   req.MaxConsecutiveDays,
		MinAdvanceNoticeDays: req.MinAdvanceNoticeDays,
		RequiresDocument:     req.RequiresDocument,
		IsPaid:               isPaid,
		DepartmentID:         uuidPtr(req.DepartmentID),
		PositionID:           uuidPtr(req.PositionID),
		MinTenureMonths:      req.MinTenureMonths,
		IsActive:             true,
		EffectiveFrom:        effectiveFrom,
		EffectiveTo:          effectiveTo,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create leave policy failed", zap.String("name", req.Name), zap.Error(err))
		return PolicyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave policy success",
		zap.String("policy_id", p.ID.String()),
		zap.String("name", p.Name),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PolicyResponse, error) {
	policies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list leave policies failed", zap.Error(err))
		return nil, err
	}

	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PolicyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PolicyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PolicyResponse{}, mapRepositoryError(err)
	}

	allowance, carryForward, err := parseDayAmounts(req.AnnualAllowanceDays, req.MaxCarryForwardDays)
	if err != nil {
		return PolicyResponse{}, err
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return PolicyResponse{}, leavepolicyerrors.ErrInvalidDateFormat
	}
	effectiveTo, err := parseOptionalDate(req.EffectiveTo)
	if err != nil {
		return PolicyResponse{}, err
	}

	p.Name = req.Name
	p.AnnualAllowanceDays = allowance
	p.MaxCarryForwardDays = carryForward
	p.MaxConsecutiveDays = req.MaxConsecutiveDays
	p.MinAdvanceNoticeDays = req.MinAdvanceNoticeDays
	p.RequiresDocument = req.RequiresDocument
	if req.IsPaid != nil {
		p.IsPaid = *req.IsPaid
	}
	p.DepartmentID = uuidPtr(req.DepartmentID)
	p.PositionID = uuidPtr(req.PositionID)
	p.MinTenureMonths = req.MinTenureMonths
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.EffectiveFrom = effectiveFrom
	p.EffectiveTo = effectiveTo

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update leave policy failed", zap.String("policy_id", id), zap.Error(err))
		return PolicyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update leave policy success", zap.String("policy_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	p.IsActive = false
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("deactivate leave policy failed", zap.String("policy_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("deactivate leave policy success", zap.String("policy_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	refs, err := s.repo.CountBalanceReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return leavepolicyerrors.ErrPolicyInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave policy failed", zap.String("policy_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete leave policy success", zap.String("policy_id", id))
	return nil
}

func parseDayAmounts(allowanceStr, carryForwardStr string) (decimal.Decimal, decimal.Decimal, error) {
	allowance, err := decimal.NewFromString(allowanceStr)
	if err != nil || allowance.IsNegative() {
		return decimal.Zero, decimal.Zero, leavepolicyerrors.ErrInvalidDayAmount
	}

	carryForward := decimal.Zero
	if carryForwardStr != "" {
		carryForward, err = decimal.NewFromString(carryForwardStr)
		if err != nil || carryForward.IsNegative() {
			return decimal.Zero, decimal.Zero, leavepolicyerrors.ErrInvalidDayAmount
		}
	}
	return allowance, carryForward, nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, leavepolicyerrors.ErrInvalidDateFormat
	}
	return &t, nil
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

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavepolicyerrors.ErrPolicyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_policy_name" {
			return leavepolicyerrors.ErrPolicyNameTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_policy_name") {
		return leavepolicyerrors.ErrPolicyNameTaken
	}

	return err
}

func mapToResponse(p LeavePolicy) PolicyResponse {
	resp := PolicyResponse{
		ID:                   p.ID.String(),
		Name:                 p.Name,
		AnnualAllowanceDays:  p.AnnualAllowanceDays.String(),
		MaxCarryForwardDays:  p.MaxCarryForwardDays.String(),
		MaxConsecutiveDays:   p.MaxConsecutiveDays,
		MinAdvanceNoticeDays: p.MinAdvanceNoticeDays,
		RequiresDocument:     p.RequiresDocument,
		IsPaid:               p.IsPaid,
		MinTenureMonths:      p.MinTenureMonths,
		IsActive:             p.IsActive,
		EffectiveFrom:        p.EffectiveFrom.Format("2006-01-02"),
	}
	if p.DepartmentID != nil {
		resp.DepartmentID = p.DepartmentID.String()
	}
	if p.PositionID != nil {
		resp.PositionID = p.PositionID.String()
	}
	if p.EffectiveTo != nil {
		v := p.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &v
	}
	return resp
}
