package handler

import "time"

// --- Request / Response types ---

type createUserRequest struct {
	FirstName      string     `json:"first_name"      validate:"required"`
	LastName       string     `json:"last_name"       validate:"required"`
	Email          string     `json:"email"           validate:"required,email"`
	Role           string     `json:"role"            validate:"required,oneof=admin manager user viewer"`
	Password       string     `json:"password"        validate:"required,min=6"`
	RegisteredDate *time.Time `json:"registered_date"`
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"    validate:"omitempty,email"`
	Role      *string `json:"role"     validate:"omitempty,oneof=admin manager user viewer"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

// userResponse never carries the password hash. FullName is derived at
// render time.
type userResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	RegisteredDate time.Time `json:"registered_date"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
	Count int            `json:"count"`
}
