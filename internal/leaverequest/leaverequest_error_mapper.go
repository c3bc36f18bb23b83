package leaverequest

import (
	"errors"
	"strings"

	leaverequesterrors "leavedesk/internal/leaverequest/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaverequesterrors.ErrLeaveRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" && strings.Contains(pgErr.ConstraintName, "leave_type") {
			return leaverequesterrors.ErrUnknownLeaveType
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "violates foreign key constraint") && strings.Contains(errMsg, "leave_type") {
		return leaverequesterrors.ErrUnknownLeaveType
	}

	return err
}
