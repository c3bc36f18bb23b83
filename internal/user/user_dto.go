package user

type ProfileResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role"`
	ManagerID    *string `json:"manager_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
}
