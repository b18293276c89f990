package holiday

import (
	"context"
	"database/sql"
	"testing"
	"time"

	holidayerrors "go-hrm/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn        func(ctx context.Context, h *PublicHoliday) error
	findByYearFn    func(ctx context.Context, year int) ([]PublicHoliday, error)
	findByIDFn      func(ctx context.Context, id string) (*PublicHoliday, error)
	deleteFn        func(ctx context.Context, id string) error
	findInRangeFn   func(ctx context.Context, start, end time.Time) ([]PublicHoliday, error)
	findRecurringFn func(ctx context.Context) ([]PublicHoliday, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, h *PublicHoliday) error {
	return f.createFn(ctx, h)
}
func (f *fakeRepo) FindByYear(ctx context.Context, year int) ([]PublicHoliday, error) {
	return f.findByYearFn(ctx, year)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*PublicHoliday, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) FindInRange(ctx context.Context, start, end time.Time) ([]PublicHoliday, error) {
	return f.findInRangeFn(ctx, start, end)
}
func (f *fakeRepo) FindRecurring(ctx context.Context) ([]PublicHoliday, error) {
	return f.findRecurringFn(ctx)
}

func TestService_Create(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, h *PublicHoliday) error {
			assert.Equal(t, "Independence Day", h.Name)
			assert.Equal(t, 2026, h.HolidayDate.Year())
			assert.True(t, h.IsRecurring)
			return nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name:        "Independence Day",
		HolidayDate: "2026-08-17",
		IsRecurring: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "2026-08-17", resp.HolidayDate)
	assert.True(t, resp.IsRecurring)
	assert.True(t, resp.IsPaid)
	assert.True(t, resp.IsMandatory)
	assert.True(t, resp.IsActive)
}

func TestService_Create_InvalidDate(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name:        "Bad",
		HolidayDate: "17-08-2026",
	})

	assert.ErrorIs(t, err, holidayerrors.ErrInvalidDateFormat)
}

func TestService_Create_DuplicateDate(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, h *PublicHoliday) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_public_holiday_date"}
		},
	}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateHolidayRequest{
		Name:        "New Year",
		HolidayDate: "2026-01-01",
	})

	assert.ErrorIs(t, err, holidayerrors.ErrHolidayExists)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*PublicHoliday, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New().String())

	assert.ErrorIs(t, err, holidayerrors.ErrHolidayNotFound)
}

func TestService_DatesInRange_ExpandsRecurring(t *testing.T) {
	fixedDate := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	recurringSeed := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		findInRangeFn: func(ctx context.Context, start, end time.Time) ([]PublicHoliday, error) {
			return []PublicHoliday{{ID: uuid.New(), Name: "Election Day", HolidayDate: fixedDate}}, nil
		},
		findRecurringFn: func(ctx context.Context) ([]PublicHoliday, error) {
			return []PublicHoliday{{ID: uuid.New(), Name: "New Year", HolidayDate: recurringSeed, IsRecurring: true}}, nil
		},
	}
	svc := NewService(repo)

	set, err := svc.DatesInRange(context.Background(),
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	assert.NoError(t, err)
	assert.True(t, set.Contains(fixedDate))
	assert.True(t, set.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, set.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestService_DatesInRange_RecurringOutsideWindow(t *testing.T) {
	repo := &fakeRepo{
		findInRangeFn: func(ctx context.Context, start, end time.Time) ([]PublicHoliday, error) {
			return nil, nil
		},
		findRecurringFn: func(ctx context.Context) ([]PublicHoliday, error) {
			return []PublicHoliday{{ID: uuid.New(), Name: "Christmas", HolidayDate: time.Date(2020, 12, 25, 0, 0, 0, 0, time.UTC), IsRecurring: true}}, nil
		},
	}
	svc := NewService(repo)

	set, err := svc.DatesInRange(context.Background(),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	assert.NoError(t, err)
	assert.False(t, set.Contains(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, len(set))
}
