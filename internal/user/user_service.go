package user

import (
	"context"
	"errors"

	usererrors "leavedesk/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetProfile(ctx context.Context, userID string) (ProfileResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

// GetProfile resolves role and organizational attributes for an already
// authenticated user id. Exactly one row must exist; absence is NotFound,
// never a defaulted profile.
func (s *service) GetProfile(ctx context.Context, userID string) (ProfileResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return ProfileResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileResponse{}, usererrors.ErrUserNotFound
		}
		s.logger.Error("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		return ProfileResponse{}, err
	}

	return mapToProfile(u), nil
}

func mapToProfile(u *User) ProfileResponse {
	resp := ProfileResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	if u.DepartmentID != nil {
		v := u.DepartmentID.String()
		resp.DepartmentID = &v
	}
	return resp
}
