package stats

import "leavedesk/internal/leaverequest"

type BalanceEntry struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	AcademicYear  string `json:"academic_year"`
	TotalDays     int    `json:"total_days"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}

type StatsResponse struct {
	Role            string                              `json:"role"`
	Name            string                              `json:"name"`
	LeaveBalance    []BalanceEntry                      `json:"leaveBalance"`
	PendingRequests []leaverequest.LeaveRequestResponse `json:"pendingRequests"`
}
