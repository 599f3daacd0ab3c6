// Package session keeps the signed-in state of a client in its key-value
// storage namespace: the bearer token under TokenKey and the JSON-encoded
// profile under UserKey.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/nexusweb/internal/logger"
	"github.com/patric-chuzhbe/nexusweb/internal/models"
	"github.com/patric-chuzhbe/nexusweb/internal/user"
)

const (
	TokenKey = "nexus_token"
	UserKey  = "nexus_user"
)

// ErrIncompleteSession is returned by Save for a session without token or user.
var ErrIncompleteSession = errors.New("session must carry a token and a user")

type storage interface {
	GetItem(ctx context.Context, namespace, key string) (string, bool, error)
	SetItem(ctx context.Context, namespace, key, value string) error
	RemoveItem(ctx context.Context, namespace, key string) error
}

type Store struct {
	db storage
}

func New(db storage) *Store {
	return &Store{db: db}
}

// Load restores the session of clientID. A nil session means anonymous.
// A token without a readable profile is treated as anonymous as well.
func (s *Store) Load(ctx context.Context, clientID string) (*models.Session, error) {
	token, found, err := s.db.GetItem(ctx, clientID, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("loading session token: %w", err)
	}
	if !found || token == "" {
		return nil, nil
	}

	rawUser, found, err := s.db.GetItem(ctx, clientID, UserKey)
	if err != nil {
		return nil, fmt.Errorf("loading session user: %w", err)
	}
	if !found {
		return nil, nil
	}

	var usr user.User
	if err := json.Unmarshal([]byte(rawUser), &usr); err != nil {
		logger.Log.Debugln("Error calling the `json.Unmarshal()` for the stored user: ", zap.Error(err))
		return nil, nil
	}

	return &models.Session{Token: token, User: &usr}, nil
}

// Save replaces whatever session clientID had.
func (s *Store) Save(ctx context.Context, clientID string, sess *models.Session) error {
	if sess == nil || sess.Token == "" || sess.User == nil {
		return ErrIncompleteSession
	}

	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}

	if err := s.db.SetItem(ctx, clientID, UserKey, string(rawUser)); err != nil {
		return fmt.Errorf("saving session user: %w", err)
	}
	if err := s.db.SetItem(ctx, clientID, TokenKey, sess.Token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}

	return nil
}

// Clear removes both keys. Both removals are attempted even if one fails.
func (s *Store) Clear(ctx context.Context, clientID string) error {
	return errors.Join(
		s.db.RemoveItem(ctx, clientID, TokenKey),
		s.db.RemoveItem(ctx, clientID, UserKey),
	)
}
