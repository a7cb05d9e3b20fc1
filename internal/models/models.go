package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	ReportTypePost    = "post"
	ReportTypeComment = "comment"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
)

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Role           string `json:"role"`
	PasswordHash   string `json:"passwordHash,omitempty"`
}

// Sanitized returns a copy safe for embedding in posts and API responses.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Author      User      `json:"author"`
	Likes       []string  `json:"likes"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LikedBy reports whether the likes set contains the user.
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Report struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	ContentID string    `json:"contentId"`
	PostID    string    `json:"postId"`
	Reporter  User      `json:"reporter"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}
