package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document in the users collection.
// UserID, Email and Mobile are each unique across all users.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	UserName     string             `bson:"user_name"`
	PasswordHash string             `bson:"password"`
	Email        string             `bson:"email"`
	Mobile       string             `bson:"mobile"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	UserID   string `json:"UserId"`
	UserName string `json:"UserName"`
	Password string `json:"Password"`
	Email    string `json:"Email"`
	Mobile   string `json:"Mobile"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	UserID   string `json:"UserId"`
	Password string `json:"Password"`
}

// TokenResponse carries the session token issued at login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse represents user data safe for API responses.
// The password hash is never part of it.
type UserResponse struct {
	UserID    string    `json:"UserId"`
	UserName  string    `json:"UserName"`
	Email     string    `json:"Email"`
	Mobile    string    `json:"Mobile"`
	CreatedAt time.Time `json:"CreatedAt"`
}
