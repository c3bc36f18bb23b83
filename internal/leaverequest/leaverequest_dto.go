package leaverequest

type CreateLeaveRequestInput struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
}

type ReviewInput struct {
	Comment string `json:"comment"`
}

// RequesterInfo and LeaveTypeInfo are enrichment sub-objects. They stay
// nil when the lookup fails so one bad join never drops a request from a
// listing.
type RequesterInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type LeaveTypeInfo struct {
	Name string `json:"name"`
}

type LeaveRequestResponse struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	ManagerID         *string        `json:"manager_id"`
	LeaveTypeID       string         `json:"leave_type_id"`
	StartDate         string         `json:"start_date"`
	EndDate           string         `json:"end_date"`
	TotalDays         int            `json:"total_days"`
	Reason            string         `json:"reason"`
	Status            string         `json:"status"`
	RequestedAt       string         `json:"requested_at"`
	ReviewedBy        *string        `json:"reviewed_by,omitempty"`
	ManagerReviewedAt *string        `json:"manager_reviewed_at,omitempty"`
	ManagerComment    *string        `json:"manager_comment,omitempty"`
	Requester         *RequesterInfo `json:"users"`
	LeaveType         *LeaveTypeInfo `json:"leave_types"`
}
