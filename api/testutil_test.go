package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	db       database.Database
	router   *chi.Mux
	sessions *scs.SessionManager
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	sessions := scs.New()
	sessions.Lifetime = time.Hour

	bundle := database.New(db)
	handlers := initializeHandlers(bundle, sessions, nil, nil, nil, "")
	auth := newAuthMiddleware(testJWTSecret)

	router := chi.NewRouter()
	router.Use(sessions.LoadAndSave)
	setupFrontendRoutes(router, handlers, auth)

	return testEnv{db: bundle, router: router, sessions: sessions}
}

func (e testEnv) seedProject(t *testing.T, title string) models.Project {
	t.Helper()

	project := models.Project{
		ID:          uuid.New(),
		Title:       title,
		Description: "a project",
	}
	require.NoError(t, e.db.ProjectRepo().Add(&project))
	return project
}

// sessionCookie commits the given key/values into a fresh session and
// returns the cookie a browser would send back.
func (e testEnv) sessionCookie(t *testing.T, values map[string]string) *http.Cookie {
	t.Helper()

	ctx, err := e.sessions.Load(context.Background(), "")
	require.NoError(t, err)
	for key, value := range values {
		e.sessions.Put(ctx, key, value)
	}
	token, _, err := e.sessions.Commit(ctx)
	require.NoError(t, err)

	return &http.Cookie{Name: e.sessions.Cookie.Name, Value: token}
}

// accountToken signs a bearer token for the given account
func accountToken(t *testing.T, accountID uuid.UUID, admin bool) string {
	t.Helper()

	claims := accountClaims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func jsonDecode(resp *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(resp.Body.Bytes(), out)
}

type requestOption func(*http.Request)

func withCookie(cookie *http.Cookie) requestOption {
	return func(r *http.Request) { r.AddCookie(cookie) }
}

func withBearer(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func (e testEnv) do(t *testing.T, method, path string, body any, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}
