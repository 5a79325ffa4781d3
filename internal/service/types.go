package service

import "time"

// MaxTitleLength is the longest title the backend accepts, in characters.
const MaxTitleLength = 255

// Note represents a single note as owned by the backend.
type Note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft is the writable part of a note, sent on create and update.
type Draft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Credentials is a username/password pair for login and register.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
