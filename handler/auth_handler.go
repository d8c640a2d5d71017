package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *usecase.UserService
}

func NewAuthHandler(users *usecase.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid registration payload")
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Server error while registering")
		return
	}

	utils.Created(c, "Registration successful", gin.H{
		"token": token,
		"user":  dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid login payload")
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondError(c, err, "Server error while logging in")
		return
	}

	utils.Success(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Server error while fetching profile")
		return
	}

	utils.Success(c, gin.H{"user": dto.ToUserResponse(user)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid profile payload")
		return
	}

	updates := &usecase.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
	}
	if req.Preferences != nil {
		updates.Theme = req.Preferences.Theme
		updates.Notifications = req.Preferences.Notifications
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, updates)
	if err != nil {
		respondError(c, err, "Server error while updating profile")
		return
	}

	utils.Success(c, gin.H{"message": "Profile updated", "user": dto.ToUserResponse(user)})
}

func (h *AuthHandler) Sessions(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	sessions, err := h.users.Sessions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Server error while listing sessions")
		return
	}

	utils.Success(c, gin.H{"sessions": sessions})
}
