package leavetype_test

import (
	"context"
	"errors"
	"testing"

	"leavedesk/internal/leavetype"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

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

func TestLeaveTypeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		annualID := uuid.New()
		repo := &fakeLeaveTypeRepository{
			findAllFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
				return []leavetype.LeaveType{
					{ID: annualID, Name: "Annual Leave", Description: "Paid time off", DaysPerYear: 20},
					{ID: uuid.New(), Name: "Sick Leave", DaysPerYear: 10},
				}, nil
			},
		}

		svc := leavetype.NewService(repo)
		resp, err := svc.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, annualID.String(), resp[0].ID)
		assert.Equal(t, "Annual Leave", resp[0].Name)
		assert.Equal(t, 20, resp[0].DaysPerYear)
	})

	t.Run("negative repo failure", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{
			findAllFn: func(ctx context.Context) ([]leavetype.LeaveType, error) {
				return nil, errors.New("db error")
			},
		}

		svc := leavetype.NewService(repo)
		resp, err := svc.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}
