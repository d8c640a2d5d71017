package dto

import (
	"main/model"
	"time"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Avatar      *string `json:"avatar"`
	Preferences *struct {
		Theme         *string `json:"theme"`
		Notifications *bool   `json:"notifications"`
	} `json:"preferences"`
}

type UpdateRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

type UserResponse struct {
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	Role        model.Role        `json:"role"`
	Provider    string            `json:"provider"`
	Avatar      string            `json:"avatar,omitempty"`
	Preferences model.Preferences `json:"preferences"`
	CreatedAt   time.Time         `json:"created_at"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Provider:    user.Provider,
		Avatar:      user.Avatar,
		Preferences: user.Preferences,
		CreatedAt:   user.CreatedAt,
	}
}

func ToUserResponses(users []*model.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
