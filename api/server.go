package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the collaborators the handlers need beyond the
// database: the session store, the contact mailer and the image storage.
// Mailer and Storage may be nil in local development.
type Dependencies struct {
	Sessions *scs.SessionManager
	Mailer   *services.Mailer
	Storage  *services.ImageStorage
}

func NewServer(database database.Database, deps Dependencies) (Server, error) {
	c := config.New()

	if deps.Sessions == nil {
		return Server{}, fmt.Errorf("a session manager is required")
	}

	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(database, deps, withConfig(c), withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := config.GetDuration(c, "READ_TIMEOUT", 180*time.Second)
	writeTimeout := config.GetDuration(c, "WRITE_TIMEOUT", 180*time.Second)
	idleTimeout := config.GetDuration(c, "IDLE_TIMEOUT", 180*time.Second)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, deps Dependencies, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := strings.Split(os.Getenv("ACCEPTED_ORIGINS"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Session cookies must be loaded before any handler runs
	chiRouter.Use(deps.Sessions.LoadAndSave)

	jwtSecret := config.GetString(router.config, "JWT_SECRET", "")
	authMiddleware := newAuthMiddleware(jwtSecret)

	oauthConfig := oauthConfigFromEnv(router.config)
	userInfoURL := config.GetString(router.config, "OAUTH_USERINFO_URL", "https://openidconnect.googleapis.com/v1/userinfo")

	handlers := initializeHandlers(database, deps.Sessions, deps.Mailer, deps.Storage, oauthConfig, userInfoURL)

	setupFrontendRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// oauthConfigFromEnv builds the external sign-in provider config. Returns
// nil when no client is configured; the sign-in routes then report the
// provider as unavailable while guest sign-in keeps working.
func oauthConfigFromEnv(c map[string]string) *oauth2.Config {
	clientID := config.GetString(c, "OAUTH_CLIENT_ID", "")
	if clientID == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: config.GetString(c, "OAUTH_CLIENT_SECRET", ""),
		RedirectURL:  config.GetString(c, "OAUTH_REDIRECT_URL", ""),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
