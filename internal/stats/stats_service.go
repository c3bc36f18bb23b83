package stats

import (
	"context"

	"leavedesk/internal/leaverequest"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/user"

	"go.uber.org/zap"
)

//go:generate mockgen -source=stats_service.go -destination=mock/stats_service_mock.go -package=mock
type Service interface {
	GetUserStats(ctx context.Context, userID, role, fullName string) (StatsResponse, error)
}

type service struct {
	records  Repository
	requests leaverequest.Repository
	types    leavetype.Repository
	logger   *zap.Logger
}

func NewService(
	records Repository,
	requests leaverequest.Repository,
	types leavetype.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	return &service{records: records, requests: requests, types: types, logger: l}
}

func (s *service) GetUserStats(ctx context.Context, userID, role, fullName string) (StatsResponse, error) {
	balance, err := s.leaveBalance(ctx, userID)
	if err != nil {
		return StatsResponse{}, err
	}

	pending, err := s.pendingForRole(ctx, userID, role)
	if err != nil {
		return StatsResponse{}, err
	}

	pendingResp := make([]leaverequest.LeaveRequestResponse, len(pending))
	for i, lr := range pending {
		pendingResp[i] = leaverequest.ToResponse(lr)
	}

	return StatsResponse{
		Role:            role,
		Name:            fullName,
		LeaveBalance:    balance,
		PendingRequests: pendingResp,
	}, nil
}

// leaveBalance derives usage by summing inclusive day counts over the
// user's approved requests per leave type, then subtracts from the
// provisioned entitlement. Remaining may go negative when over-allocated;
// clamping is a display concern.
func (s *service) leaveBalance(ctx context.Context, userID string) ([]BalanceEntry, error) {
	records, err := s.records.FindRecordsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("leave records lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	approved, err := s.requests.FindApprovedByUser(ctx, userID)
	if err != nil {
		s.logger.Error("approved requests lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	usedByType := make(map[string]int)
	for _, lr := range approved {
		usedByType[lr.LeaveTypeID.String()] += leaverequest.InclusiveDays(lr.StartDate, lr.EndDate)
	}

	typeIDs := make([]string, 0, len(records))
	seen := make(map[string]bool)
	for _, rec := range records {
		if tid := rec.LeaveTypeID.String(); !seen[tid] {
			seen[tid] = true
			typeIDs = append(typeIDs, tid)
		}
	}

	namesByID := make(map[string]string)
	if types, err := s.types.FindByIDs(ctx, typeIDs); err != nil {
		s.logger.Warn("leave type names lookup failed", zap.Error(err))
	} else {
		for _, t := range types {
			namesByID[t.ID.String()] = t.Name
		}
	}

	balance := make([]BalanceEntry, len(records))
	for i, rec := range records {
		typeID := rec.LeaveTypeID.String()
		used := usedByType[typeID]
		balance[i] = BalanceEntry{
			LeaveTypeID:   typeID,
			LeaveTypeName: namesByID[typeID],
			AcademicYear:  rec.AcademicYear,
			TotalDays:     rec.TotalDays,
			UsedDays:      used,
			RemainingDays: rec.TotalDays - used,
		}
	}
	return balance, nil
}

// pendingForRole scopes the pending set the way the dashboard expects:
// managers see their own review queue, coordinators see the whole
// organization, everyone else sees their own submissions.
func (s *service) pendingForRole(ctx context.Context, userID, role string) ([]leaverequest.LeaveRequest, error) {
	switch role {
	case user.RoleManager:
		return s.requests.FindPendingByManager(ctx, userID)
	case user.RoleCoordinator:
		return s.requests.FindAll(ctx, leaverequest.StatusPending)
	default:
		all, err := s.requests.FindAllByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		pending := make([]leaverequest.LeaveRequest, 0, len(all))
		for _, lr := range all {
			if lr.Status == leaverequest.StatusPending {
				pending = append(pending, lr)
			}
		}
		return pending, nil
	}
}
