package leavetype

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByIDs(ctx context.Context, ids []string) ([]LeaveType, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]LeaveType, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&types).Error
	return types, err
}
