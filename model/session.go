package model

import "time"

// Session is a login audit record. One is written per successful login;
// it carries the parsed device info for the account activity view.
type Session struct {
	SessionID  string    `bson:"session_id" json:"session_id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	DeviceInfo string    `bson:"device_info" json:"device_info"`
	IPAddress  string    `bson:"ip_address" json:"ip_address"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
