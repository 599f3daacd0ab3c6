package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/nexusweb/internal/apiclient"
	"github.com/patric-chuzhbe/nexusweb/internal/models"
	"github.com/patric-chuzhbe/nexusweb/internal/user"
)

type generateCall struct {
	authorization string
	projectIdea   string
}

type fakeBackend struct {
	mu     sync.Mutex
	calls  []generateCall
	server *httptest.Server
}

func newFakeBackend(t *testing.T, status int, response string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var req models.GenerateRequest
		_ = json.Unmarshal(raw, &req)

		fb.mu.Lock()
		fb.calls = append(fb.calls, generateCall{
			authorization: r.Header.Get("Authorization"),
			projectIdea:   req.ProjectIdea,
		})
		fb.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(fb.server.Close)

	return fb
}

func (fb *fakeBackend) recorded() []generateCall {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	return append([]generateCall(nil), fb.calls...)
}

var signedIn = &models.Session{
	Token: "jwt-token",
	User:  &user.User{ID: "1", Name: "Ada", Email: "ada@example.com"},
}

func TestSubmitEmptyIdeaMakesNoCall(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	service := New(apiclient.New(fb.server.URL))

	for _, idea := range []string{"", "   ", "\n\t "} {
		_, err := service.Submit(context.Background(), signedIn, idea)
		require.ErrorIs(t, err, ErrEmptyIdea)
		assert.NotEmpty(t, Message(err))
	}
	assert.Empty(t, fb.recorded())
}

func TestSubmitAnonymousMakesNoCall(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	service := New(apiclient.New(fb.server.URL))

	_, err := service.Submit(context.Background(), nil, "A food delivery app")
	require.ErrorIs(t, err, ErrAuthRequired)
	assert.Empty(t, fb.recorded())
}

func TestSubmitSendsTrimmedIdeaOnce(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{"project_name": "Food"}`)
	service := New(apiclient.New(fb.server.URL))

	result, err := service.Submit(context.Background(), signedIn, "  A food delivery app \n")
	require.NoError(t, err)
	assert.False(t, result.Demo)
	assert.JSONEq(t, `{"project_name": "Food"}`, string(result.Roadmap))

	calls := fb.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "A food delivery app", calls[0].projectIdea)
	assert.Equal(t, "Bearer jwt-token", calls[0].authorization)
}

func TestSubmitFailureWithoutFallback(t *testing.T) {
	fb := newFakeBackend(t, http.StatusInternalServerError, `{"error": "model overloaded"}`)
	service := New(apiclient.New(fb.server.URL))

	_, err := service.Submit(context.Background(), signedIn, "A food delivery app")
	require.Error(t, err)
	var apiErr *apiclient.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "model overloaded", Message(err))
	assert.Len(t, fb.recorded(), 1)
}

func TestSubmitFailureWithFallback(t *testing.T) {
	fb := newFakeBackend(t, http.StatusBadGateway, ``)
	service := New(apiclient.New(fb.server.URL), WithDemoFallback(true, 10*time.Millisecond))

	result, err := service.Submit(context.Background(), signedIn, "A food delivery app")
	require.NoError(t, err)
	assert.True(t, result.Demo)
	assert.Len(t, fb.recorded(), 1, "the fallback must not retry the backend")

	var demo Demo
	require.NoError(t, json.Unmarshal(result.Roadmap, &demo))
	assert.Equal(t, "A food delivery app - Strategic Roadmap", demo.ProjectName)
	assert.Len(t, demo.Phases, 3)
}

func TestSubmitFallbackHonoursCancellation(t *testing.T) {
	fb := newFakeBackend(t, http.StatusBadGateway, ``)
	service := New(apiclient.New(fb.server.URL), WithDemoFallback(true, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := service.Submit(ctx, signedIn, "A food delivery app")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "no error", err: nil, want: ""},
		{name: "empty idea", err: ErrEmptyIdea, want: "Please enter a project idea"},
		{name: "backend message", err: &apiclient.APIError{StatusCode: http.StatusInternalServerError, Message: "model overloaded"}, want: "model overloaded"},
		{name: "backend without message", err: &apiclient.APIError{StatusCode: http.StatusInternalServerError}, want: FailureMessage},
		{name: "transport", err: fmt.Errorf("%w: POST /generate: dial tcp 10.0.0.7:5000: connection refused", apiclient.ErrTransport), want: FailureMessage},
		{name: "anything else", err: errors.New("unexpected end of JSON input"), want: FailureMessage},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Message(test.err))
		})
	}
}

func TestSubmitUnreachableBackendHidesDetails(t *testing.T) {
	fb := newFakeBackend(t, http.StatusOK, `{}`)
	fb.server.Close()
	service := New(apiclient.New(fb.server.URL))

	_, err := service.Submit(context.Background(), signedIn, "A food delivery app")
	require.ErrorIs(t, err, apiclient.ErrTransport)
	assert.Equal(t, FailureMessage, Message(err))
	assert.NotContains(t, Message(err), fb.server.URL)
}
