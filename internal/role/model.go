package role

// Role is a user role ("admin", "user").
// swagger:model Role
type Role struct {
	ID       string `json:"id"`
	RoleName string `json:"role_name"`
}
