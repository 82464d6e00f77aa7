package dto

// CreateUserRequest represents an admin request to add an editorial user
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	FullName string `json:"full_name" validate:"max=255"`
	Role     string `json:"role" validate:"required,oneof=admin editor author"`
}

// ListUsersRequest represents the admin user listing query
type ListUsersRequest struct {
	Page     int     `json:"-"`
	PageSize int     `json:"-"`
	Role     *string `json:"-"`
	IsActive *bool   `json:"-"`
}

// ListUsersResponse represents a page of editorial users
type ListUsersResponse struct {
	Items      []UserDTO     `json:"items"`
	Pagination PaginationDTO `json:"pagination"`
}

// SetUserActiveRequest toggles a user's active flag
type SetUserActiveRequest struct {
	ID       uint  `json:"-"`
	ActorID  uint  `json:"-"`
	IsActive *bool `json:"is_active" validate:"required"`
}
