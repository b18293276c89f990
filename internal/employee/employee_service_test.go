package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, empl *employee.Employee) error
	findAllFn    func(ctx context.Context) ([]employee.Employee, error)
	findActiveFn func(ctx context.Context) ([]employee.Employee, error)
	activeIDsFn  func(ctx context.Context) ([]string, error)
	findByIDFn   func(ctx context.Context, id string) (*employee.Employee, error)
	managerIDFn  func(ctx context.Context, id string) (string, error)
	updateFn     func(ctx context.Context, empl *employee.Employee) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return f.createFn(ctx, empl)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]employee.Employee, error) {
	return f.findActiveFn(ctx)
}
func (f *fakeRepo) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	return f.activeIDsFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) DirectManagerID(ctx context.Context, id string) (string, error) {
	return f.managerIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, empl *employee.Employee) error {
	return f.updateFn(ctx, empl)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func TestService_Create_AutoNumberAndOutbox(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()

	var created *employee.Employee
	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *employee.Employee) error {
			created = empl
			return nil
		},
	}
	counterRepo := &fakeCounter{next: 122}
	outbox := &fakeOutbox{}

	svc := employee.NewServiceWithOutbox(db, repo, counterRepo, outbox, rdb)

	mock.ExpectBegin()
	mock.ExpectCommit()
	redisMock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

	resp, err := svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Siti Rahma",
		Email:    "siti.rahma@example.com",
		HireDate: "2026-02-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, "EMP-000123", resp.EmployeeNumber)
	assert.Equal(t, employee.StatusActive, resp.Status)
	assert.NotNil(t, created)

	assert.Len(t, outbox.events, 1)
	assert.Equal(t, events.EmployeeCreatedTopic, outbox.events[0].Topic)
	assert.Equal(t, "employee_created", outbox.events[0].EventType)
	assert.Equal(t, created.ID.String(), outbox.events[0].AggregateID)

	var event events.EmployeeCreatedEvent
	assert.NoError(t, json.Unmarshal(outbox.events[0].Payload, &event))
	assert.Equal(t, "2026-02-01", event.HireDate)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_Create_InvalidHireDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := employee.NewServiceWithOutbox(db, &fakeRepo{}, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName: "Siti Rahma",
		Email:    "siti.rahma@example.com",
		HireDate: "01-02-2026",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_ManagerNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := employee.NewServiceWithOutbox(db, repo, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName:        "Siti Rahma",
		Email:           "siti.rahma@example.com",
		HireDate:        "2026-02-01",
		DirectManagerID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		},
	}
	svc := employee.NewServiceWithOutbox(db, repo, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Create(context.Background(), employee.CreateEmployeeRequest{
		FullName:       "Siti Rahma",
		Email:          "siti.rahma@example.com",
		EmployeeNumber: "EMP-000001",
		HireDate:       "2026-02-01",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetOptions_CacheHit(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	cached := []employee.EmployeeResponse{{ID: uuid.New().String(), FullName: "Cached Person"}}
	payload, _ := json.Marshal(cached)
	redisMock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(payload))

	// repo must not be reached on a cache hit
	svc := employee.NewServiceWithOutbox(nil, &fakeRepo{}, &fakeCounter{}, nil, rdb)

	resp, err := svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_GetOptions_CacheMissFillsRedis(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	active := []employee.Employee{{
		ID:             uuid.New(),
		EmployeeNumber: "EMP-000007",
		FullName:       "Budi Santoso",
		Email:          "budi@example.com",
		HireDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:         employee.StatusActive,
	}}
	repo := &fakeRepo{
		findActiveFn: func(ctx context.Context) ([]employee.Employee, error) {
			return active, nil
		},
	}

	redisMock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
	redisMock.Regexp().ExpectSet(employee.EmployeeOptionsKey, `.*`, 10*time.Minute).SetVal("OK")

	svc := employee.NewServiceWithOutbox(nil, repo, &fakeCounter{}, nil, rdb)

	resp, err := svc.GetOptions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Budi Santoso", resp[0].FullName)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_Update_SelfManagerSkipsLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	lookups := 0
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, lookupID string) (*employee.Employee, error) {
			lookups++
			return &employee.Employee{ID: id, Status: employee.StatusActive}, nil
		},
		updateFn: func(ctx context.Context, empl *employee.Employee) error {
			return nil
		},
	}
	svc := employee.NewServiceWithOutbox(db, repo, &fakeCounter{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err = svc.Update(context.Background(), id.String(), employee.UpdateEmployeeRequest{
		FullName:        "Siti Rahma",
		Email:           "siti.rahma@example.com",
		HireDate:        "2026-02-01",
		DirectManagerID: id.String(),
		Status:          employee.StatusActive,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, lookups)
	assert.NoError(t, mock.ExpectationsWereMet())
}
