// Package router exposes the Nexus landing page over HTTP. All UI state
// lives either in the client's storage namespace (the session) or in the
// query string (open menu, open auth modal); forms post back and are
// answered with a redirect or a re-rendered page.
package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/nexusweb/internal/auth"
	"github.com/patric-chuzhbe/nexusweb/internal/clientid"
	"github.com/patric-chuzhbe/nexusweb/internal/gzippedhttp"
	"github.com/patric-chuzhbe/nexusweb/internal/logger"
	"github.com/patric-chuzhbe/nexusweb/internal/models"
	"github.com/patric-chuzhbe/nexusweb/internal/roadmap"
	"github.com/patric-chuzhbe/nexusweb/internal/ui"
)

type authenticator interface {
	Login(ctx context.Context, clientID, email, password string) (*models.Session, error)
	Signup(ctx context.Context, clientID, name, email, password string) (*models.Session, error)
	Logout(ctx context.Context, clientID string) error
	Current(ctx context.Context, clientID string) (*models.Session, error)
}

type roadmapGenerator interface {
	Submit(ctx context.Context, sess *models.Session, idea string) (*roadmap.Result, error)
}

type pageRenderer interface {
	Render(w http.ResponseWriter, status int, page *ui.Page) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type clientIdentifier interface {
	IdentifyClient(h http.Handler) http.Handler
	RegisterNewClient(h http.Handler) http.Handler
}

type Router struct {
	auth     authenticator
	roadmaps roadmapGenerator
	renderer pageRenderer
	db       pinger
}

var errNoClientID = errors.New("request carries no client id")

func New(
	authService authenticator,
	roadmaps roadmapGenerator,
	renderer pageRenderer,
	db pinger,
	identifier clientIdentifier,
) *chi.Mux {
	r := &Router{
		auth:     authService,
		roadmaps: roadmaps,
		renderer: renderer,
		db:       db,
	}

	router := chi.NewRouter()
	router.Use(logger.WithLoggingHTTPMiddleware)
	router.Use(middleware.Recoverer)
	router.Use(gzippedhttp.UngzipRequest)
	router.Use(gzippedhttp.GzipResponse)

	router.Get(`/ping`, r.getPing)
	router.Handle(`/static/*`, ui.StaticHandler())

	router.Group(func(pages chi.Router) {
		pages.Use(identifier.IdentifyClient)
		pages.Use(identifier.RegisterNewClient)

		pages.Get(`/`, r.getRoot)
		pages.Post(`/login`, r.postLogin)
		pages.Post(`/signup`, r.postSignup)
		pages.Post(`/logout`, r.postLogout)
		pages.Post(`/generate`, r.postGenerate)
	})

	return router
}

func (r *Router) getPing(response http.ResponseWriter, request *http.Request) {
	if err := r.db.Ping(request.Context()); err != nil {
		logger.Log.Debugln("Error calling the `r.db.Ping()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}

	response.WriteHeader(http.StatusOK)
}

// currentSession returns the client id and its session (nil when anonymous).
func (r *Router) currentSession(request *http.Request) (string, *models.Session, error) {
	clientID, ok := clientid.FromContext(request.Context())
	if !ok {
		return "", nil, errNoClientID
	}

	sess, err := r.auth.Current(request.Context(), clientID)
	if err != nil {
		return "", nil, err
	}

	return clientID, sess, nil
}

func newPage(sess *models.Session) *ui.Page {
	page := &ui.Page{}
	if sess != nil {
		page.Header.User = sess.User
		page.Generator.Authenticated = true
	}

	return page
}

func (r *Router) render(response http.ResponseWriter, status int, page *ui.Page) {
	if err := r.renderer.Render(response, status, page); err != nil {
		logger.Log.Debugln("Error calling the `r.renderer.Render()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
	}
}

func (r *Router) getRoot(response http.ResponseWriter, request *http.Request) {
	_, sess, err := r.currentSession(request)
	if err != nil {
		logger.Log.Debugln("Error calling the `r.currentSession()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}

	page := newPage(sess)
	query := request.URL.Query()
	page.Header.MenuOpen = query.Get("menu") == "open"
	if mode, ok := ui.ParseAuthMode(query.Get("auth")); ok && sess == nil {
		page.AuthModal = ui.AuthModal{Open: true, Mode: mode}
	}

	r.render(response, http.StatusOK, page)
}

func (r *Router) postLogin(response http.ResponseWriter, request *http.Request) {
	r.handleAuthForm(response, request, ui.AuthLogin)
}

func (r *Router) postSignup(response http.ResponseWriter, request *http.Request) {
	r.handleAuthForm(response, request, ui.AuthSignup)
}

func (r *Router) handleAuthForm(response http.ResponseWriter, request *http.Request, mode ui.AuthMode) {
	clientID, ok := clientid.FromContext(request.Context())
	if !ok {
		logger.Log.Debugln("Error calling the `clientid.FromContext()`: ", zap.Error(errNoClientID))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}
	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)

		return
	}

	name := request.PostForm.Get("name")
	email := request.PostForm.Get("email")
	password := request.PostForm.Get("password")

	var err error
	if mode == ui.AuthSignup {
		_, err = r.auth.Signup(request.Context(), clientID, name, email, password)
	} else {
		_, err = r.auth.Login(request.Context(), clientID, email, password)
	}
	if err == nil {
		http.Redirect(response, request, "/", http.StatusSeeOther)

		return
	}

	status := http.StatusUnauthorized
	message := auth.FallbackMessage
	var validationErr *auth.ValidationError
	var authErr *auth.AuthError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusUnprocessableEntity
		message = validationErr.Message
	case errors.As(err, &authErr):
		message = authErr.Message
	default:
		logger.Log.Debugln("Error calling the auth service: ", zap.Error(err))
	}

	page := newPage(nil)
	page.AuthModal = ui.AuthModal{
		Open:  true,
		Mode:  mode,
		Error: message,
		Name:  name,
		Email: email,
	}
	r.render(response, status, page)
}

func (r *Router) postLogout(response http.ResponseWriter, request *http.Request) {
	clientID, ok := clientid.FromContext(request.Context())
	if !ok {
		logger.Log.Debugln("Error calling the `clientid.FromContext()`: ", zap.Error(errNoClientID))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}

	if err := r.auth.Logout(request.Context(), clientID); err != nil {
		logger.Log.Debugln("Error calling the `r.auth.Logout()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}

	http.Redirect(response, request, "/", http.StatusSeeOther)
}

func (r *Router) postGenerate(response http.ResponseWriter, request *http.Request) {
	_, sess, err := r.currentSession(request)
	if err != nil {
		logger.Log.Debugln("Error calling the `r.currentSession()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}
	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)

		return
	}

	idea := request.PostForm.Get("project_idea")
	page := newPage(sess)
	page.Generator.Idea = idea

	result, err := r.roadmaps.Submit(request.Context(), sess, idea)
	switch {
	case err == nil:
		page.Results = &ui.Results{Roadmap: result.Roadmap, Demo: result.Demo}
		r.render(response, http.StatusOK, page)
	case errors.Is(err, roadmap.ErrEmptyIdea):
		page.Generator.Error = roadmap.Message(err)
		r.render(response, http.StatusUnprocessableEntity, page)
	case errors.Is(err, roadmap.ErrAuthRequired):
		http.Redirect(response, request, "/?auth=login", http.StatusSeeOther)
	default:
		logger.Log.Debugln("Error calling the `r.roadmaps.Submit()`: ", zap.Error(err))
		page.Generator.Error = roadmap.Message(err)
		r.render(response, http.StatusBadGateway, page)
	}
}
