package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Preferences struct {
	Theme         string `bson:"theme" json:"theme"`
	Notifications bool   `bson:"notifications" json:"notifications"`
}

type User struct {
	UserID      string      `bson:"user_id" json:"user_id"`
	Username    string      `bson:"username" json:"username" validate:"required,min=3,max=20"`
	Email       string      `bson:"email" json:"email" validate:"required,email"`
	Password    string      `bson:"password" json:"-"` // argon2 salt$hash
	Role        Role        `bson:"role" json:"role"`
	Provider    string      `bson:"provider" json:"provider"` // "local" for password accounts
	Avatar      string      `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Preferences Preferences `bson:"preferences" json:"preferences"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
