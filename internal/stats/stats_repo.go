package stats

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=stats_repo.go -destination=mock/stats_repo_mock.go -package=mock
type Repository interface {
	FindRecordsByUser(ctx context.Context, userID string) ([]LeaveRecord, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindRecordsByUser(ctx context.Context, userID string) ([]LeaveRecord, error) {
	var records []LeaveRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("academic_year DESC").
		Find(&records).Error
	return records, err
}
