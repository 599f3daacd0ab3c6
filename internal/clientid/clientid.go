// Package clientid identifies browsers by a signed cookie. The identifier
// names the namespace of the per-browser local storage that holds the
// session, so two browsers never see each other's login.
package clientid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/nexusweb/internal/logger"
)

// CookieMaxAge is how long the browser keeps the client cookie.
const CookieMaxAge = 365 * 24 * time.Hour

// ErrInvalidToken is returned when the cookie value is not a valid token signed by us.
var ErrInvalidToken = errors.New("invalid client token")

// Claims represents the JWT claims stored in the client cookie.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id"`
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

// ClientIDKey is the context key of the current browser's client id.
const ClientIDKey ContextKey = "clientID"

// Identifier reads and issues client cookies.
type Identifier struct {
	cookieName string
	signingKey []byte
	newID      func() string
}

// Option configures an Identifier.
type Option func(*Identifier)

// WithIDGenerator replaces uuid.NewString as the source of new client ids.
func WithIDGenerator(newID func() string) Option {
	return func(i *Identifier) {
		i.newID = newID
	}
}

// New creates an Identifier using the given cookie name and HMAC key.
func New(cookieName string, signingKey []byte, options ...Option) *Identifier {
	i := &Identifier{
		cookieName: cookieName,
		signingKey: signingKey,
		newID:      uuid.NewString,
	}
	for _, option := range options {
		option(i)
	}

	return i
}

// FromContext returns the client id stored by the middlewares.
func FromContext(ctx context.Context) (string, bool) {
	clientID, ok := ctx.Value(ClientIDKey).(string)

	return clientID, ok && clientID != ""
}

// WithClientID returns a copy of ctx carrying clientID.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}

// IdentifyClient puts the client id from a valid cookie into the request context.
// Requests without a usable cookie pass through unchanged.
func (i *Identifier) IdentifyClient(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		cookie, err := request.Cookie(i.cookieName)
		if err != nil {
			h.ServeHTTP(response, request)

			return
		}

		clientID, err := i.GetClientIDFromToken(cookie.Value)
		if err != nil {
			logger.Log.Debugln("Error calling the `i.GetClientIDFromToken()`: ", zap.Error(err))
			h.ServeHTTP(response, request)

			return
		}

		h.ServeHTTP(response, request.WithContext(WithClientID(request.Context(), clientID)))
	}

	return http.HandlerFunc(middleware)
}

// RegisterNewClient issues a fresh client id and cookie when IdentifyClient found none.
func (i *Identifier) RegisterNewClient(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		if _, ok := FromContext(request.Context()); ok {
			h.ServeHTTP(response, request)

			return
		}

		clientID := i.newID()
		JWTString, err := i.BuildJWTString(clientID)
		if err != nil {
			logger.Log.Debugln("Error calling the `i.BuildJWTString()`: ", zap.Error(err))
			response.WriteHeader(http.StatusInternalServerError)

			return
		}

		http.SetCookie(
			response,
			&http.Cookie{
				Name:     i.cookieName,
				Value:    JWTString,
				Path:     "/",
				MaxAge:   int(CookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			},
		)

		h.ServeHTTP(response, request.WithContext(WithClientID(request.Context(), clientID)))
	}

	return http.HandlerFunc(middleware)
}

// BuildJWTString signs a token carrying clientID.
func (i *Identifier) BuildJWTString(clientID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ClientID: clientID})

	tokenString, err := token.SignedString(i.signingKey)
	if err != nil {
		return "", fmt.Errorf("in internal/clientid/clientid.go/BuildJWTString(): error while `token.SignedString()` calling: %w", err)
	}

	return tokenString, nil
}

// GetClientIDFromToken validates tokenString and returns its client id.
func (i *Identifier) GetClientIDFromToken(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.signingKey, nil
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ClientID == "" {
		return "", ErrInvalidToken
	}

	return claims.ClientID, nil
}
