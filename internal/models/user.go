package models

import "time"

// User captures application-facing fields for an authenticated identity.
// PasswordHash is never serialized outward.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarPath   string    `json:"avatarPath,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthorSummary is the denormalized author snippet embedded in posts and
// comments so list endpoints need no second round trip.
type AuthorSummary struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	AvatarPath string `json:"avatarPath,omitempty"`
}

// Summary returns the denormalized view of the user.
func (u User) Summary() AuthorSummary {
	return AuthorSummary{ID: u.ID, Username: u.Username, AvatarPath: u.AvatarPath}
}
