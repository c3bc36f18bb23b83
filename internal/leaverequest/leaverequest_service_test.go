package leaverequest_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"leavedesk/internal/events"
	"leavedesk/internal/leaverequest"
	leaverequesterrors "leavedesk/internal/leaverequest/errors"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/user"
	usererrors "leavedesk/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRequestRepository struct {
	withTxFn                func(tx *sql.Tx) leaverequest.Repository
	createFn                func(ctx context.Context, lr *leaverequest.LeaveRequest) error
	findByIDFn              func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	findAllByUserFn         func(ctx context.Context, userID string) ([]leaverequest.LeaveRequest, error)
	findAllFn               func(ctx context.Context, status string) ([]leaverequest.LeaveRequest, error)
	findPendingByManagerFn  func(ctx context.Context, managerID string) ([]leaverequest.LeaveRequest, error)
	findApprovedByUserFn    func(ctx context.Context, userID string) ([]leaverequest.LeaveRequest, error)
	updateStatusIfPendingFn func(ctx context.Context, lr *leaverequest.LeaveRequest) (bool, error)
}

func (f *fakeLeaveRequestRepository) WithTx(tx *sql.Tx) leaverequest.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRequestRepository) Create(ctx context.Context, lr *leaverequest.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRequestRepository) FindByID(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRequestRepository) FindAllByUser(ctx context.Context, userID string) ([]leaverequest.LeaveRequest, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) FindAll(ctx context.Context, status string) ([]leaverequest.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) FindPendingByManager(ctx context.Context, managerID string) ([]leaverequest.LeaveRequest, error) {
	if f.findPendingByManagerFn != nil {
		return f.findPendingByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) FindApprovedByUser(ctx context.Context, userID string) ([]leaverequest.LeaveRequest, error) {
	if f.findApprovedByUserFn != nil {
		return f.findApprovedByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) UpdateStatusIfPending(ctx context.Context, lr *leaverequest.LeaveRequest) (bool, error) {
	if f.updateStatusIfPendingFn != nil {
		return f.updateStatusIfPendingFn(ctx, lr)
	}
	return true, nil
}

type fakeUserRepository struct {
	findByIDFn  func(ctx context.Context, id string) (*user.User, error)
	findByIDsFn func(ctx context.Context, ids []string) ([]user.User, error)
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, ids)
	}
	return nil, nil
}

type fakeLeaveTypeRepository struct {
	findAllFn   func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDsFn func(ctx context.Context, ids []string) ([]leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByIDs(ctx context.Context, ids []string) ([]leavetype.LeaveType, error) {
	if f.findByIDsFn != nil {
		return f.findByIDsFn(ctx, ids)
	}
	return nil, nil
}

type fakeNotifier struct {
	events []events.LeaveNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, event events.LeaveNotification) {
	f.events = append(f.events, event)
}

type leaveRequestServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leaverequest.Service
	repo     *fakeLeaveRequestRepository
	users    *fakeUserRepository
	types    *fakeLeaveTypeRepository
	notifier *fakeNotifier
}

func setupLeaveRequestServiceTest(t *testing.T) *leaveRequestServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRequestRepository{}
	users := &fakeUserRepository{}
	types := &fakeLeaveTypeRepository{}
	notifier := &fakeNotifier{}
	svc := leaverequest.NewService(db, repo, users, types, notifier)

	return &leaveRequestServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		users:    users,
		types:    types,
		notifier: notifier,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestInclusiveDays(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 1, leaverequest.InclusiveDays(day(10), day(10)))
	assert.Equal(t, 2, leaverequest.InclusiveDays(day(10), day(11)))
	assert.Equal(t, 5, leaverequest.InclusiveDays(day(10), day(14)))
}

func TestLeaveRequestService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	managerID := uuid.New()
	typeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			switch id {
			case ownerID:
				return &user.User{
					ID:        uuid.MustParse(ownerID),
					Email:     "ana@example.com",
					FullName:  "Ana Employee",
					Role:      user.RoleEmployee,
					ManagerID: &managerID,
				}, nil
			case managerID.String():
				return &user.User{
					ID:       managerID,
					Email:    "mara@example.com",
					FullName: "Mara Manager",
					Role:     user.RoleManager,
				}, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		deps.repo.createFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
			assert.Equal(t, uuid.MustParse(ownerID), lr.UserID)
			assert.Equal(t, &managerID, lr.ManagerID)
			assert.Equal(t, leaverequest.StatusPending, lr.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, ownerID, leaverequest.CreateLeaveRequestInput{
			LeaveTypeID: typeID,
			StartDate:   "2026-09-07",
			EndDate:     "2026-09-09",
			Reason:      "Family trip",
		})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, managerID.String(), *resp.ManagerID)

		assert.Len(t, deps.notifier.events, 1)
		assert.Equal(t, events.KindLeaveRequestCreated, deps.notifier.events[0].Kind)
		assert.Equal(t, "mara@example.com", deps.notifier.events[0].RecipientEmail)
		assert.Equal(t, "Ana Employee", deps.notifier.events[0].RequesterName)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative owner profile missing", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		created := false
		deps.repo.createFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
			created = true
			return nil
		}

		_, err := deps.service.Create(ctx, ownerID, leaverequest.CreateLeaveRequestInput{
			LeaveTypeID: typeID,
			StartDate:   "2026-09-07",
			EndDate:     "2026-09-09",
		})

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
		assert.False(t, created)
		assert.Empty(t, deps.notifier.events)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative malformed date", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, ownerID, leaverequest.CreateLeaveRequestInput{
			LeaveTypeID: typeID,
			StartDate:   "07-09-2026",
			EndDate:     "2026-09-09",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateFormat)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, ownerID, leaverequest.CreateLeaveRequestInput{
			LeaveTypeID: typeID,
			StartDate:   "2026-09-09",
			EndDate:     "2026-09-07",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
	})
}

func pendingRequest(ownerID, managerID uuid.UUID) *leaverequest.LeaveRequest {
	mid := managerID
	return &leaverequest.LeaveRequest{
		ID:          uuid.New(),
		UserID:      ownerID,
		ManagerID:   &mid,
		LeaveTypeID: uuid.New(),
		StartDate:   time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
		Status:      leaverequest.StatusPending,
		RequestedAt: time.Now().UTC(),
	}
}

func TestLeaveRequestService_Approve(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			assert.Equal(t, lr.ID.String(), id)
			return lr, nil
		}
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, updated *leaverequest.LeaveRequest) (bool, error) {
			assert.Equal(t, leaverequest.StatusApproved, updated.Status)
			assert.Equal(t, managerID, *updated.ReviewedBy)
			assert.NotNil(t, updated.ManagerReviewedAt)
			assert.Equal(t, "Enjoy", *updated.ManagerComment)
			return true, nil
		}
		deps.users.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: ownerID, Email: "ana@example.com", FullName: "Ana Employee"}, nil
		}

		resp, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String(), "Enjoy")

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.Equal(t, managerID.String(), *resp.ReviewedBy)

		assert.Len(t, deps.notifier.events, 1)
		assert.Equal(t, events.KindLeaveApproved, deps.notifier.events[0].Kind)
		assert.Equal(t, "ana@example.com", deps.notifier.events[0].RecipientEmail)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative caller is not the assigned manager", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, uuid.New().String(), lr.ID.String(), "")

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotAssignedManager)
		assert.Empty(t, deps.notifier.events)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative forbidden wins over finalized state", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(ownerID, managerID)
		lr.Status = leaverequest.StatusRejected
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, uuid.New().String(), lr.ID.String(), "")

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotAssignedManager)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already finalized", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(ownerID, managerID)
		lr.Status = leaverequest.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Reject(ctx, managerID.String(), lr.ID.String(), "")

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyFinalized)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative lost update race", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, updated *leaverequest.LeaveRequest) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String(), "")

		assert.ErrorIs(t, err, leaverequesterrors.ErrAlreadyFinalized)
		assert.Empty(t, deps.notifier.events)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Approve(ctx, managerID.String(), uuid.New().String(), "")

		assert.ErrorIs(t, err, leaverequesterrors.ErrLeaveRequestNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_Cancel(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	managerID := uuid.New()

	t.Run("success without notification", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateStatusIfPendingFn = func(ctx context.Context, updated *leaverequest.LeaveRequest) (bool, error) {
			assert.Equal(t, leaverequest.StatusCancelled, updated.Status)
			assert.Nil(t, updated.ReviewedBy)
			return true, nil
		}

		resp, err := deps.service.Cancel(ctx, ownerID.String(), lr.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusCancelled, resp.Status)
		assert.Empty(t, deps.notifier.events)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative caller is not the owner", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		lr := pendingRequest(ownerID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Cancel(ctx, managerID.String(), lr.ID.String())

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotRequestOwner)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveRequestService_ListForRole(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New().String()

	t.Run("employee sees only own requests", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByUserFn = func(ctx context.Context, userID string) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, callerID, userID)
			return []leaverequest.LeaveRequest{*pendingRequest(uuid.MustParse(callerID), uuid.New())}, nil
		}
		deps.repo.findAllFn = func(ctx context.Context, status string) ([]leaverequest.LeaveRequest, error) {
			t.Fatal("FindAll must not be reached for employees")
			return nil, nil
		}

		resp, err := deps.service.ListForRole(ctx, callerID, user.RoleEmployee, "")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("coordinator sees everything with the status filter", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, status string) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, leaverequest.StatusApproved, status)
			return []leaverequest.LeaveRequest{
				*pendingRequest(uuid.New(), uuid.New()),
				*pendingRequest(uuid.New(), uuid.New()),
			}, nil
		}

		resp, err := deps.service.ListForRole(ctx, callerID, user.RoleCoordinator, leaverequest.StatusApproved)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("negative unknown status filter", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ListForRole(ctx, callerID, user.RoleEmployee, "archived")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("enrichment failure degrades to null sub-objects", func(t *testing.T) {
		deps := setupLeaveRequestServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllByUserFn = func(ctx context.Context, userID string) ([]leaverequest.LeaveRequest, error) {
			return []leaverequest.LeaveRequest{*pendingRequest(uuid.MustParse(callerID), uuid.New())}, nil
		}
		deps.users.findByIDsFn = func(ctx context.Context, ids []string) ([]user.User, error) {
			return nil, errors.New("users unavailable")
		}
		deps.types.findByIDsFn = func(ctx context.Context, ids []string) ([]leavetype.LeaveType, error) {
			return nil, errors.New("types unavailable")
		}

		resp, err := deps.service.ListForRole(ctx, callerID, user.RoleEmployee, "")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Nil(t, resp[0].Requester)
		assert.Nil(t, resp[0].LeaveType)
	})
}

func TestLeaveRequestService_ListPendingForManager(t *testing.T) {
	ctx := context.Background()
	managerID := uuid.New()

	deps := setupLeaveRequestServiceTest(t)
	defer deps.db.Close()

	first := pendingRequest(uuid.New(), managerID)
	second := pendingRequest(uuid.New(), managerID)
	deps.repo.findPendingByManagerFn = func(ctx context.Context, mid string) ([]leaverequest.LeaveRequest, error) {
		assert.Equal(t, managerID.String(), mid)
		return []leaverequest.LeaveRequest{*first, *second}, nil
	}
	deps.users.findByIDsFn = func(ctx context.Context, ids []string) ([]user.User, error) {
		return []user.User{{ID: first.UserID, FullName: "Ana Employee", Email: "ana@example.com"}}, nil
	}

	resp, err := deps.service.ListPendingForManager(ctx, managerID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, first.ID.String(), resp[0].ID)
	assert.Equal(t, "Ana Employee", resp[0].Requester.FullName)
	assert.Nil(t, resp[1].Requester)
}
