package models

import "time"

// User is a registered account. PasswordHash is empty for accounts that
// never set a password.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Room is a named collaborative editing session. Code holds the current
// document text; every accepted update replaces it wholesale.
type Room struct {
	ID                    string    `gorm:"primaryKey" json:"roomId"`
	Name                  string    `gorm:"not null" json:"name"`
	Code                  string    `gorm:"type:text" json:"code"`
	OwnerID               string    `gorm:"not null;index" json:"ownerId"`
	IsPrivate             bool      `json:"isPrivate"`
	PasswordHash          string    `json:"-"`
	AIAutocompleteEnabled bool      `json:"aiAutocompleteEnabled"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// RoomParticipant records that a user has joined a room. At most one row
// per (room, user) pair.
type RoomParticipant struct {
	ID       string    `gorm:"primaryKey" json:"id"`
	RoomID   string    `gorm:"not null;uniqueIndex:idx_room_user" json:"roomId"`
	UserID   string    `gorm:"not null;uniqueIndex:idx_room_user" json:"userId"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

/*** HTTP request/response payloads ***/

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type CreateRoomRequest struct {
	Name                  string  `json:"name"`
	IsPrivate             bool    `json:"isPrivate"`
	Password              *string `json:"password,omitempty"`
	AIAutocompleteEnabled *bool   `json:"aiAutocompleteEnabled,omitempty"`
}

type UpdateRoomRequest struct {
	Name                  *string `json:"name,omitempty"`
	IsPrivate             *bool   `json:"isPrivate,omitempty"`
	Password              *string `json:"password,omitempty"`
	AIAutocompleteEnabled *bool   `json:"aiAutocompleteEnabled,omitempty"`
}

type JoinRoomRequest struct {
	Password *string `json:"password,omitempty"`
}

type RoomResponse struct {
	RoomID                string `json:"roomId"`
	Name                  string `json:"name"`
	Code                  string `json:"code"`
	OwnerID               string `json:"ownerId"`
	OwnerUsername         string `json:"ownerUsername"`
	IsPrivate             bool   `json:"isPrivate"`
	AIAutocompleteEnabled bool   `json:"aiAutocompleteEnabled"`
}

type ParticipantResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	JoinedAt string `json:"joinedAt"`
}

type AutocompleteRequest struct {
	RoomID         string `json:"roomId,omitempty"`
	Code           string `json:"code"`
	CursorPosition int    `json:"cursorPosition"`
	Language       string `json:"language"`
}

type AutocompleteResponse struct {
	Suggestion string `json:"suggestion"`
}

type RunRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type RunResponse struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
