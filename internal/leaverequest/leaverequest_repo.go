package leaverequest

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_repo.go -destination=mock/leaverequest_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAllByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	FindAll(ctx context.Context, status string) ([]LeaveRequest, error)
	FindPendingByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	FindApprovedByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	UpdateStatusIfPending(ctx context.Context, lr *LeaveRequest) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("requested_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAll(ctx context.Context, status string) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var requests []LeaveRequest
	err := db.Order("requested_at DESC").Find(&requests).Error
	return requests, err
}

// FindPendingByManager returns the review queue oldest-first, so earlier
// requests are reviewed before later ones.
func (r *repository) FindPendingByManager(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Where("status = ?", StatusPending).
		Order("requested_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindApprovedByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Find(&requests).Error
	return requests, err
}

// UpdateStatusIfPending performs the conditional transition out of
// pending. The WHERE clause is the at-most-once guard: under two
// concurrent reviews the store serializes the updates and exactly one
// matches a pending row.
func (r *repository) UpdateStatusIfPending(ctx context.Context, lr *LeaveRequest) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", lr.ID).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":              lr.Status,
			"reviewed_by":         lr.ReviewedBy,
			"manager_reviewed_at": lr.ManagerReviewedAt,
			"manager_comment":     lr.ManagerComment,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
