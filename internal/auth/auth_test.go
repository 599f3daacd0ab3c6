package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/nexusweb/internal/apiclient"
	"github.com/patric-chuzhbe/nexusweb/internal/db/memorystorage"
	"github.com/patric-chuzhbe/nexusweb/internal/session"
)

type fakeBackend struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newFakeBackend(t *testing.T, status int, response string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(fb.server.Close)

	return fb
}

func newService(t *testing.T, backendURL string) (*Service, *session.Store) {
	t.Helper()
	db, err := memorystorage.New()
	require.NoError(t, err)
	store := session.New(db)

	return New(apiclient.New(backendURL), store), store
}

const okResponse = `{"success": true, "token": "jwt-token", "user": {"id": 7, "name": "Ada", "email": "ada@example.com"}}`

func TestLoginStoresSession(t *testing.T) {
	ctx := context.Background()
	fb := newFakeBackend(t, http.StatusOK, okResponse)
	service, store := newService(t, fb.server.URL)

	before, err := service.Current(ctx, "client")
	require.NoError(t, err)
	assert.Nil(t, before)

	sess, err := service.Login(ctx, "client", "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sess.Token)
	assert.Equal(t, "Ada", sess.User.Name)

	stored, err := store.Load(ctx, "client")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "7", string(stored.User.ID))
}

func TestSignupStoresSession(t *testing.T) {
	ctx := context.Background()
	fb := newFakeBackend(t, http.StatusOK, okResponse)
	service, _ := newService(t, fb.server.URL)

	_, err := service.Signup(ctx, "client", "Ada", "ada@example.com", "secret")
	require.NoError(t, err)

	current, err := service.Current(ctx, "client")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "ada@example.com", current.User.Email)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		response    string
		wantMessage string
	}{
		{
			name:        "backend message is shown verbatim",
			status:      http.StatusUnauthorized,
			response:    `{"success": false, "message": "Invalid email or password"}`,
			wantMessage: "Invalid email or password",
		},
		{
			name:        "backend error field",
			status:      http.StatusBadRequest,
			response:    `{"error": "Email already registered"}`,
			wantMessage: "Email already registered",
		},
		{
			name:        "no message falls back to status text",
			status:      http.StatusInternalServerError,
			response:    `oops`,
			wantMessage: "Request failed with status 500",
		},
		{
			name:        "success without token",
			status:      http.StatusOK,
			response:    `{"success": false}`,
			wantMessage: FallbackMessage,
		},
		{
			name:        "success without token but with message",
			status:      http.StatusOK,
			response:    `{"success": false, "message": "Account locked"}`,
			wantMessage: "Account locked",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			fb := newFakeBackend(t, test.status, test.response)
			service, _ := newService(t, fb.server.URL)

			_, err := service.Login(ctx, "client", "ada@example.com", "secret")
			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, test.wantMessage, authErr.Message)

			current, err := service.Current(ctx, "client")
			require.NoError(t, err)
			assert.Nil(t, current, "a failed login must leave the client anonymous")
		})
	}
}

func TestLoginTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	service, _ := newService(t, url)

	_, err := service.Login(context.Background(), "client", "ada@example.com", "secret")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, FallbackMessage, authErr.Message)
	assert.ErrorIs(t, err, apiclient.ErrTransport)
}

func TestValidationSkipsNetwork(t *testing.T) {
	tests := []struct {
		name        string
		call        func(s *Service) error
		wantField   string
		wantMessage string
	}{
		{
			name: "login without email",
			call: func(s *Service) error {
				_, err := s.Login(context.Background(), "client", "", "secret")
				return err
			},
			wantField:   "Email",
			wantMessage: "Please enter your email",
		},
		{
			name: "login with malformed email",
			call: func(s *Service) error {
				_, err := s.Login(context.Background(), "client", "ada", "secret")
				return err
			},
			wantField:   "Email",
			wantMessage: "Please enter a valid email address",
		},
		{
			name: "login without password",
			call: func(s *Service) error {
				_, err := s.Login(context.Background(), "client", "ada@example.com", "")
				return err
			},
			wantField:   "Password",
			wantMessage: "Please enter your password",
		},
		{
			name: "signup without name",
			call: func(s *Service) error {
				_, err := s.Signup(context.Background(), "client", "", "ada@example.com", "secret")
				return err
			},
			wantField:   "Name",
			wantMessage: "Please enter your name",
		},
		{
			name: "signup with short password",
			call: func(s *Service) error {
				_, err := s.Signup(context.Background(), "client", "Ada", "ada@example.com", "12345")
				return err
			},
			wantField:   "Password",
			wantMessage: "Password must be at least 6 characters",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fb := newFakeBackend(t, http.StatusOK, okResponse)
			service, _ := newService(t, fb.server.URL)

			err := test.call(service)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, test.wantField, validationErr.Field)
			assert.Equal(t, test.wantMessage, validationErr.Message)
			assert.Zero(t, fb.calls.Load())
		})
	}
}

func TestLogoutClearsSession(t *testing.T) {
	ctx := context.Background()
	fb := newFakeBackend(t, http.StatusOK, okResponse)
	db, err := memorystorage.New()
	require.NoError(t, err)
	service := New(apiclient.New(fb.server.URL), session.New(db))

	_, err = service.Login(ctx, "client", "ada@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, int32(1), fb.calls.Load())

	require.NoError(t, service.Logout(ctx, "client"))
	assert.Equal(t, int32(1), fb.calls.Load(), "logout must not contact the backend")

	// A fresh store over the same storage stands for a reinitialised page.
	reloaded, err := session.New(db).Load(ctx, "client")
	require.NoError(t, err)
	assert.Nil(t, reloaded)

	_, found, err := db.GetItem(ctx, "client", session.TokenKey)
	require.NoError(t, err)
	assert.False(t, found)
}
