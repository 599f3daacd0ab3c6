// Package roadmap turns a project idea into a roadmap by asking the backend,
// optionally substituting a built-in demo roadmap when the backend fails.
package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/nexusweb/internal/apiclient"
	"github.com/patric-chuzhbe/nexusweb/internal/logger"
	"github.com/patric-chuzhbe/nexusweb/internal/models"
)

const (
	// FailureMessage is shown for failures the backend did not explain.
	FailureMessage = "Failed to generate roadmap"

	EmptyIdeaMessage = "Please enter a project idea"
)

var (
	ErrEmptyIdea    = errors.New("project idea is empty")
	ErrAuthRequired = errors.New("sign in required to generate a roadmap")
)

type generator interface {
	GenerateRoadmap(ctx context.Context, token, projectIdea string) (models.RoadmapResult, error)
}

// Result is a generated roadmap. Demo marks the built-in substitute.
type Result struct {
	Roadmap json.RawMessage
	Demo    bool
}

type Service struct {
	api          generator
	demoFallback bool
	demoDelay    time.Duration
}

type Option func(*Service)

// WithDemoFallback makes Submit answer backend failures with the demo
// roadmap after waiting delay.
func WithDemoFallback(enabled bool, delay time.Duration) Option {
	return func(s *Service) {
		s.demoFallback = enabled
		s.demoDelay = delay
	}
}

func New(api generator, options ...Option) *Service {
	s := &Service{api: api}
	for _, option := range options {
		option(s)
	}

	return s
}

// Submit generates the roadmap for idea on behalf of sess.
func (s *Service) Submit(ctx context.Context, sess *models.Session, idea string) (*Result, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	if sess == nil || sess.Token == "" {
		return nil, ErrAuthRequired
	}

	roadmap, err := s.api.GenerateRoadmap(ctx, sess.Token, idea)
	if err == nil {
		return &Result{Roadmap: roadmap}, nil
	}
	if !s.demoFallback || errors.Is(err, context.Canceled) {
		return nil, err
	}

	logger.Log.Infoln("Serving the demo roadmap, backend call failed: ", zap.Error(err))

	return s.demo(ctx, idea)
}

func (s *Service) demo(ctx context.Context, idea string) (*Result, error) {
	timer := time.NewTimer(s.demoDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	payload, err := json.Marshal(DemoRoadmap(idea))
	if err != nil {
		return nil, fmt.Errorf("encoding demo roadmap: %w", err)
	}

	return &Result{Roadmap: payload, Demo: true}, nil
}

// Message is the inline error text for a failed Submit. Only messages sent
// by the backend are shown verbatim; transport and decoding errors are not.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyIdea) {
		return EmptyIdeaMessage
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return FailureMessage
}
