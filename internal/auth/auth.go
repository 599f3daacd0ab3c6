// Package auth is the session context of the web front-end: it signs clients
// in and up against the roadmap backend, keeps the returned token and
// profile in the client's storage namespace, and signs them out again.
package auth

import (
	"context"
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/nexusweb/internal/apiclient"
	"github.com/patric-chuzhbe/nexusweb/internal/logger"
	"github.com/patric-chuzhbe/nexusweb/internal/models"
)

// FallbackMessage is shown when the backend gave no usable message.
const FallbackMessage = "Something went wrong"

// AuthError is a failed login or signup. Message is what the modal displays.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ValidationError is a form that was rejected before any request was sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type backend interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
}

type sessionStore interface {
	Load(ctx context.Context, clientID string) (*models.Session, error)
	Save(ctx context.Context, clientID string, sess *models.Session) error
	Clear(ctx context.Context, clientID string) error
}

type Service struct {
	api      backend
	sessions sessionStore
	validate *validator.Validate
}

func New(api backend, sessions sessionStore) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		validate: validator.New(),
	}
}

// Login signs clientID in. On success the session is stored and returned.
func (s *Service) Login(ctx context.Context, clientID, email, password string) (*models.Session, error) {
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.validateForm(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, req.Email, req.Password)

	return s.finish(ctx, clientID, resp, err)
}

// Signup creates an account and signs clientID in with it.
func (s *Service) Signup(ctx context.Context, clientID, name, email, password string) (*models.Session, error) {
	req := models.SignupRequest{Name: name, Email: email, Password: password}
	if err := s.validateForm(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Signup(ctx, req.Name, req.Email, req.Password)

	return s.finish(ctx, clientID, resp, err)
}

// Logout forgets the session of clientID. The backend is not contacted.
func (s *Service) Logout(ctx context.Context, clientID string) error {
	if err := s.sessions.Clear(ctx, clientID); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	return nil
}

// Current returns the stored session of clientID, or nil when anonymous.
func (s *Service) Current(ctx context.Context, clientID string) (*models.Session, error) {
	return s.sessions.Load(ctx, clientID)
}

func (s *Service) finish(
	ctx context.Context,
	clientID string,
	resp *models.AuthResponse,
	callErr error,
) (*models.Session, error) {
	if callErr != nil {
		logger.Log.Debugln("Error calling the auth backend: ", zap.Error(callErr))
		return nil, &AuthError{Message: messageOf(callErr), Err: callErr}
	}
	if resp == nil || resp.Token == "" || resp.User == nil {
		message := FallbackMessage
		if resp != nil && resp.Message != "" {
			message = resp.Message
		}
		return nil, &AuthError{Message: message}
	}

	sess := &models.Session{Token: resp.Token, User: resp.User}
	if err := s.sessions.Save(ctx, clientID, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	return sess, nil
}

func messageOf(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return FallbackMessage
}

func (s *Service) validateForm(form interface{}) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}

	first := fieldErrors[0]

	return &ValidationError{Field: first.Field(), Message: describe(first)}
}

func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "Please enter your name"
	case "Email":
		if fe.Tag() == "email" {
			return "Please enter a valid email address"
		}
		return "Please enter your email"
	case "Password":
		if fe.Tag() == "min" {
			return fmt.Sprintf("Password must be at least %s characters", fe.Param())
		}
		return "Please enter your password"
	}

	return FallbackMessage
}
