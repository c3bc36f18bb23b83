package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leavedesk/internal/events"
	leaverequesterrors "leavedesk/internal/leaverequest/errors"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/notification"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/user"
	usererrors "leavedesk/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// InclusiveDays counts the calendar days a request covers; both endpoints
// count, and time-of-day never does.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, ownerID string, req CreateLeaveRequestInput) (LeaveRequestResponse, error)
	ListForRole(ctx context.Context, callerID, role, statusFilter string) ([]LeaveRequestResponse, error)
	ListPendingForManager(ctx context.Context, managerID string) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, callerID, id, comment string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, callerID, id, comment string) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, callerID, id string) (LeaveRequestResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	users    user.Repository
	types    leavetype.Repository
	notifier notification.Notifier
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	types leavetype.Repository,
	notifier notification.Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{db: db, repo: repo, users: users, types: types, notifier: notifier, logger: l}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateLeaveRequestInput) (LeaveRequestResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("owner_id", ownerID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidOwnerID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveTypeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The owner's profile supplies the approver. If it is missing the
	// whole operation fails before any row is written, so a request can
	// never exist without the manager it was routed to.
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, usererrors.ErrUserNotFound
		}
		s.logger.Error("create leave request profile lookup failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	lr := &LeaveRequest{
		ID:          uuid.New(),
		UserID:      ownerUUID,
		ManagerID:   owner.ManagerID,
		LeaveTypeID: typeUUID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      req.Reason,
		Status:      StatusPending,
		RequestedAt: time.Now().UTC(),
	}

	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave request commit failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("leave request created",
		zap.String("request_id", lr.ID.String()),
		zap.String("owner_id", ownerID),
	)

	s.notifyCreated(ctx, lr, owner)

	return s.enrichOne(ctx, *lr), nil
}

func (s *service) ListForRole(ctx context.Context, callerID, role, statusFilter string) ([]LeaveRequestResponse, error) {
	switch statusFilter {
	case "", StatusPending, StatusApproved, StatusRejected, StatusCancelled:
	default:
		return nil, apperror.InvalidField("status")
	}

	var (
		requests []LeaveRequest
		err      error
	)
	if role == user.RoleCoordinator {
		requests, err = s.repo.FindAll(ctx, statusFilter)
	} else {
		requests, err = s.repo.FindAllByUser(ctx, callerID)
	}
	if err != nil {
		s.logger.Error("list leave requests failed",
			zap.String("caller_id", callerID),
			zap.String("role", role),
			zap.Error(err),
		)
		return nil, err
	}

	return s.enrich(ctx, requests), nil
}

func (s *service) ListPendingForManager(ctx context.Context, managerID string) ([]LeaveRequestResponse, error) {
	requests, err := s.repo.FindPendingByManager(ctx, managerID)
	if err != nil {
		s.logger.Error("list pending queue failed",
			zap.String("manager_id", managerID),
			zap.Error(err),
		)
		return nil, err
	}

	return s.enrich(ctx, requests), nil
}

func (s *service) Approve(ctx context.Context, callerID, id, comment string) (LeaveRequestResponse, error) {
	return s.transition(ctx, callerID, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, callerID, id, comment string) (LeaveRequestResponse, error) {
	return s.transition(ctx, callerID, id, StatusRejected, comment)
}

func (s *service) Cancel(ctx context.Context, callerID, id string) (LeaveRequestResponse, error) {
	return s.transition(ctx, callerID, id, StatusCancelled, "")
}

func (s *service) transition(ctx context.Context, callerID, id, targetStatus, comment string) (LeaveRequestResponse, error) {
	s.logger.Debug("transition leave request",
		zap.String("request_id", id),
		zap.String("caller_id", callerID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidRequestID
	}
	callerUUID, err := uuid.Parse(callerID)
	if err != nil {
		return LeaveRequestResponse{}, usererrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave request begin tx failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveRequestResponse{}, mapRepositoryError(err)
	}

	// Authorization first: a non-owner must see Forbidden, never learn
	// the request's state through a Conflict.
	switch targetStatus {
	case StatusApproved, StatusRejected:
		if lr.ManagerID == nil || lr.ManagerID.String() != callerID {
			return LeaveRequestResponse{}, leaverequesterrors.ErrNotAssignedManager
		}
	case StatusCancelled:
		if lr.UserID.String() != callerID {
			return LeaveRequestResponse{}, leaverequesterrors.ErrNotRequestOwner
		}
	}

	if lr.Status != StatusPending {
		s.logger.Warn("transition on finalized leave request",
			zap.String("request_id", id),
			zap.String("status", lr.Status),
			zap.String("target_status", targetStatus),
		)
		return LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyFinalized
	}

	lr.Status = targetStatus
	if targetStatus == StatusApproved || targetStatus == StatusRejected {
		lr.ReviewedBy = &callerUUID
		now := time.Now().UTC()
		lr.ManagerReviewedAt = &now
		if comment != "" {
			lr.ManagerComment = &comment
		}
	}

	updated, err := qtx.UpdateStatusIfPending(ctx, lr)
	if err != nil {
		s.logger.Error("transition leave request persist failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	if !updated {
		// Lost the race: another review finalized the row between our
		// read and the conditional update.
		return LeaveRequestResponse{}, leaverequesterrors.ErrAlreadyFinalized
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave request commit failed",
			zap.String("request_id", id),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("leave request transitioned",
		zap.String("request_id", id),
		zap.String("status", targetStatus),
	)

	if targetStatus != StatusCancelled {
		s.notifyReviewed(ctx, lr)
	}

	return s.enrichOne(ctx, *lr), nil
}

// enrich joins requester and leave-type display data onto each request.
// A failed lookup degrades that sub-object to null instead of dropping
// rows or failing the listing.
func (s *service) enrich(ctx context.Context, requests []LeaveRequest) []LeaveRequestResponse {
	userIDs := make([]string, 0, len(requests))
	typeIDs := make([]string, 0, len(requests))
	seenUsers := make(map[string]bool)
	seenTypes := make(map[string]bool)
	for _, lr := range requests {
		if uid := lr.UserID.String(); !seenUsers[uid] {
			seenUsers[uid] = true
			userIDs = append(userIDs, uid)
		}
		if tid := lr.LeaveTypeID.String(); !seenTypes[tid] {
			seenTypes[tid] = true
			typeIDs = append(typeIDs, tid)
		}
	}

	usersByID := make(map[string]user.User)
	if list, err := s.users.FindByIDs(ctx, userIDs); err != nil {
		s.logger.Warn("requester enrichment failed", zap.Error(err))
	} else {
		for _, u := range list {
			usersByID[u.ID.String()] = u
		}
	}

	typesByID := make(map[string]leavetype.LeaveType)
	if list, err := s.types.FindByIDs(ctx, typeIDs); err != nil {
		s.logger.Warn("leave type enrichment failed", zap.Error(err))
	} else {
		for _, t := range list {
			typesByID[t.ID.String()] = t
		}
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, lr := range requests {
		r := ToResponse(lr)
		if u, ok := usersByID[lr.UserID.String()]; ok {
			r.Requester = &RequesterInfo{FullName: u.FullName, Email: u.Email}
		}
		if t, ok := typesByID[lr.LeaveTypeID.String()]; ok {
			r.LeaveType = &LeaveTypeInfo{Name: t.Name}
		}
		resp[i] = r
	}
	return resp
}

func (s *service) enrichOne(ctx context.Context, lr LeaveRequest) LeaveRequestResponse {
	return s.enrich(ctx, []LeaveRequest{lr})[0]
}

func (s *service) notifyCreated(ctx context.Context, lr *LeaveRequest, owner *user.User) {
	if lr.ManagerID == nil {
		s.logger.Debug("leave request has no manager, skipping notification",
			zap.String("request_id", lr.ID.String()),
		)
		return
	}

	manager, err := s.users.FindByID(ctx, lr.ManagerID.String())
	if err != nil {
		s.logger.Warn("manager lookup for notification failed",
			zap.String("request_id", lr.ID.String()),
			zap.Error(err),
		)
		return
	}

	s.notifier.Notify(ctx, events.LeaveNotification{
		Kind:           events.KindLeaveRequestCreated,
		RequestID:      lr.ID.String(),
		RecipientEmail: manager.Email,
		RecipientName:  manager.FullName,
		RequesterName:  owner.FullName,
		LeaveTypeName:  s.leaveTypeName(ctx, lr.LeaveTypeID),
		StartDate:      lr.StartDate.Format(time.DateOnly),
		EndDate:        lr.EndDate.Format(time.DateOnly),
		OccurredAt:     time.Now().UTC(),
	})
}

func (s *service) notifyReviewed(ctx context.Context, lr *LeaveRequest) {
	owner, err := s.users.FindByID(ctx, lr.UserID.String())
	if err != nil {
		s.logger.Warn("owner lookup for notification failed",
			zap.String("request_id", lr.ID.String()),
			zap.Error(err),
		)
		return
	}

	kind := events.KindLeaveApproved
	if lr.Status == StatusRejected {
		kind = events.KindLeaveRejected
	}

	comment := ""
	if lr.ManagerComment != nil {
		comment = *lr.ManagerComment
	}

	s.notifier.Notify(ctx, events.LeaveNotification{
		Kind:           kind,
		RequestID:      lr.ID.String(),
		RecipientEmail: owner.Email,
		RecipientName:  owner.FullName,
		RequesterName:  owner.FullName,
		LeaveTypeName:  s.leaveTypeName(ctx, lr.LeaveTypeID),
		StartDate:      lr.StartDate.Format(time.DateOnly),
		EndDate:        lr.EndDate.Format(time.DateOnly),
		Comment:        comment,
		OccurredAt:     time.Now().UTC(),
	})
}

func (s *service) leaveTypeName(ctx context.Context, typeID uuid.UUID) string {
	types, err := s.types.FindByIDs(ctx, []string{typeID.String()})
	if err != nil || len(types) == 0 {
		return ""
	}
	return types[0].Name
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

// ToResponse maps an entity to its wire shape without enrichment.
func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:          lr.ID.String(),
		UserID:      lr.UserID.String(),
		LeaveTypeID: lr.LeaveTypeID.String(),
		StartDate:   lr.StartDate.Format(time.DateOnly),
		EndDate:     lr.EndDate.Format(time.DateOnly),
		TotalDays:   InclusiveDays(lr.StartDate, lr.EndDate),
		Reason:      lr.Reason,
		Status:      lr.Status,
		RequestedAt: lr.RequestedAt.Format(time.RFC3339),
	}
	if lr.ManagerID != nil {
		v := lr.ManagerID.String()
		resp.ManagerID = &v
	}
	if lr.ReviewedBy != nil {
		v := lr.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if lr.ManagerReviewedAt != nil {
		v := lr.ManagerReviewedAt.Format(time.RFC3339)
		resp.ManagerReviewedAt = &v
	}
	resp.ManagerComment = lr.ManagerComment
	return resp
}
