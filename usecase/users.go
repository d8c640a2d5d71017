package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// ConflictError reports a uniqueness violation with the offending
// field names.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("user already exists with this value: %s", strings.Join(e.Fields, ", "))
}

type UserService struct {
	users    *repository.UserRepo
	sessions *repository.SessionRepo
}

func NewUserService(users *repository.UserRepo, sessions *repository.SessionRepo) *UserService {
	return &UserService{users: users, sessions: sessions}
}

// Register creates an account and returns it with a signed token.
// Username and email are globally unique; conflicts name the fields.
func (svc *UserService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := svc.users.FindConflicting(ctx, username, email, "")
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		utils.TrackAuthAttempt("failure", "register")
		return nil, "", &ConflictError{Fields: conflictFields(existing, username, email)}
	}

	hashed, err := services.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &model.User{
		UserID:   uuid.New().String(),
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     model.RoleUser,
		Provider: "local",
		Preferences: model.Preferences{
			Theme:         "light",
			Notifications: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := svc.users.AddUser(ctx, user); err != nil {
		// The unique index is the last line of defense against a race
		// between the conflict check and the insert.
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackAuthAttempt("failure", "register")
			return nil, "", &ConflictError{Fields: []string{"username", "email"}}
		}
		return nil, "", err
	}

	token, err := services.GenerateJWT(user.UserID, user.Role)
	if err != nil {
		return nil, "", err
	}

	utils.TrackAuthAttempt("success", "register")
	return user, token, nil
}

// Login verifies credentials and records a login session. Lookup miss
// and password mismatch are indistinguishable to the caller.
func (svc *UserService) Login(ctx context.Context, email, password, userAgent, ip string) (*model.User, string, error) {
	user, err := svc.users.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		return nil, "", ErrInvalidCredentials
	}

	if !services.ComparePasswords(user.Password, password) {
		utils.TrackAuthAttempt("failure", "login")
		return nil, "", ErrInvalidCredentials
	}

	token, err := services.GenerateJWT(user.UserID, user.Role)
	if err != nil {
		return nil, "", err
	}

	session := &model.Session{
		SessionID:  uuid.New().String(),
		UserID:     user.UserID,
		DeviceInfo: utils.DeviceInfo(userAgent),
		IPAddress:  ip,
		CreatedAt:  time.Now(),
	}
	if err := svc.sessions.CreateSession(ctx, session); err != nil {
		// A failed audit record never blocks the login
		log.Printf("failed to record login session for %s: %v", user.UserID, err)
	}

	utils.TrackAuthAttempt("success", "login")
	return user, token, nil
}

// GetProfile fetches the caller's account.
func (svc *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := svc.users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave
// the stored value untouched.
type ProfileUpdate struct {
	Username      *string
	Email         *string
	Avatar        *string
	Theme         *string
	Notifications *bool
}

// UpdateProfile validates and applies a partial profile update,
// re-checking uniqueness when username or email change.
func (svc *UserService) UpdateProfile(ctx context.Context, userID string, updates *ProfileUpdate) (*model.User, error) {
	existing, err := svc.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	var username, email string

	if updates.Username != nil {
		username = strings.TrimSpace(*updates.Username)
		if len(username) < 3 || len(username) > 20 {
			return nil, &ValidationError{Field: "username", Message: "username must be between 3 and 20 characters"}
		}
		if !utils.ValidateUsername(username) {
			return nil, &ValidationError{Field: "username", Message: "username can only contain letters, numbers, and underscores"}
		}
		set["username"] = username
	}
	if updates.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*updates.Email))
		if !strings.Contains(email, "@") {
			return nil, &ValidationError{Field: "email", Message: "please provide a valid email"}
		}
		set["email"] = email
	}
	if updates.Avatar != nil {
		set["avatar"] = *updates.Avatar
	}

	// Preferences merge onto the stored set rather than replacing it.
	preferences := existing.Preferences
	if updates.Theme != nil {
		if *updates.Theme != "light" && *updates.Theme != "dark" {
			return nil, &ValidationError{Field: "preferences.theme", Message: "theme must be either light or dark"}
		}
		preferences.Theme = *updates.Theme
	}
	if updates.Notifications != nil {
		preferences.Notifications = *updates.Notifications
	}
	if updates.Theme != nil || updates.Notifications != nil {
		set["preferences"] = preferences
	}

	if username != "" || email != "" {
		conflict, err := svc.users.FindConflicting(ctx, username, email, userID)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, &ConflictError{Fields: conflictFields(conflict, username, email)}
		}
	}

	if len(set) == 0 {
		return existing, nil
	}
	return svc.users.UpdateUser(ctx, userID, set)
}

// Sessions lists the caller's recent login records.
func (svc *UserService) Sessions(ctx context.Context, userID string) ([]*model.Session, error) {
	return svc.sessions.GetUserSessions(ctx, userID, 20)
}

func conflictFields(existing *model.User, username, email string) []string {
	fields := []string{}
	if username != "" && existing.Username == username {
		fields = append(fields, "username")
	}
	if email != "" && existing.Email == email {
		fields = append(fields, "email")
	}
	if len(fields) == 0 {
		fields = append(fields, "username", "email")
	}
	return fields
}
