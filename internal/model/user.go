package model

import (
	"strings"
	"time"
)

// Avatars is the fixed set of avatar symbols a user can pick from.
var Avatars = []string{"🦊", "🐼", "🦉", "🐙", "🐝", "🦁", "🐧", "🐢"}

// AvatarDefault is assigned when a user is created without an avatar.
const AvatarDefault = "🦊"

// ValidAvatar reports whether a is one of the known avatar symbols.
func ValidAvatar(a string) bool {
	for _, known := range Avatars {
		if known == a {
			return true
		}
	}
	return false
}

// User owns a partition of tasks.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize trims text fields and applies the default avatar.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if !ValidAvatar(u.Avatar) {
		u.Avatar = AvatarDefault
	}
}

// EmailKey returns the email in its canonical case-insensitive form,
// used for uniqueness checks.
func (u *User) EmailKey() string {
	return strings.ToLower(strings.TrimSpace(u.Email))
}
