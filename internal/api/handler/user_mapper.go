package handler

import (
	"github.com/superlibrary/library-api/internal/core/domain"
)

// --- Request → Service input ---

func toCreateUser(req createUserRequest) domain.CreateUser {
	in := domain.CreateUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Password:  req.Password,
	}
	if req.RegisteredDate != nil {
		in.RegisteredDate = *req.RegisteredDate
	}
	return in
}

func toUpdateUser(req updateUserRequest) domain.UpdateUser {
	return domain.UpdateUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Password:  req.Password,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Email:          u.Email,
		Role:           u.Role,
		RegisteredDate: u.RegisteredDate,
	}
}

func toUserListResponse(users []*domain.User) userListResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return userListResponse{Users: out, Count: len(out)}
}
