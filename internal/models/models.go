package models

import (
	"encoding/json"

	"github.com/patric-chuzhbe/nexusweb/internal/user"
)

// Session is the client-held proof of authentication plus the cached profile.
type Session struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is the body of a successful /auth/login or /auth/signup call.
type AuthResponse struct {
	Success bool       `json:"success,omitempty"`
	Message string     `json:"message,omitempty"`
	Token   string     `json:"token"`
	User    *user.User `json:"user"`
}

type GenerateRequest struct {
	ProjectIdea string `json:"project_idea"`
}

// ErrorResponse covers both error shapes the backend is known to send.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RoadmapResult is the opaque roadmap payload. It is rendered, never validated.
type RoadmapResult = json.RawMessage

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeRedis
	StorageTypeFile
	StorageTypeMemory
)
