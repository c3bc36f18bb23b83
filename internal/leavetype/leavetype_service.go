package leavetype

import (
	"context"

	"go.uber.org/zap"
)

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DaysPerYear int    `json:"days_per_year"`
}

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list leave types failed", zap.Error(err))
		return nil, err
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = LeaveTypeResponse{
			ID:          t.ID.String(),
			Name:        t.Name,
			Description: t.Description,
			DaysPerYear: t.DaysPerYear,
		}
	}
	return resp, nil
}
