package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/identity"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const oauthStateSessionKey = "oauth_state"

// sessionHandler runs the lightweight "sheet" sign-in flows. These do not
// create accounts: they only write identity fields into the server-side
// session, which is what the identity resolver reads for session-based
// commenting. Full account sign-in lives in the auth subsystem and
// arrives here as a bearer token instead.
type sessionHandler struct {
	responder   Responder
	logger      zerolog.Logger
	sessions    *scs.SessionManager
	oauthConfig *oauth2.Config
	userInfoURL string
}

func newSessionHandler(sessions *scs.SessionManager, oauthConfig *oauth2.Config, userInfoURL string) sessionHandler {
	logger := log.With().Str("handlerName", "sessionHandler").Logger()

	return sessionHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		sessions:    sessions,
		oauthConfig: oauthConfig,
		userInfoURL: userInfoURL,
	}
}

// GuestSignInRequest is the payload for name-only guest sign-in
type GuestSignInRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type oauthUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// signIn starts the external sign-in flow
// @Summary Start sign-in
// @Description Redirects to the external identity provider.
// @Tags Sessions
// @Success 302 {string} string "Redirect to provider"
// @Router /auth/signin [get]
func (h sessionHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.oauthConfig == nil {
			h.responder.WriteError(w, errs.NewInternalError("sign-in provider not configured"))
			return
		}

		state := uuid.NewString()
		h.sessions.Put(r.Context(), oauthStateSessionKey, state)
		http.Redirect(w, r, h.oauthConfig.AuthCodeURL(state), http.StatusFound)
	}
}

// callback completes the external sign-in flow. On success the visitor's
// email and name land in the session; the identity resolver takes it from
// there.
// @Summary Sign-in callback
// @Description Exchanges the provider code and stores the visitor's email and name in the session.
// @Tags Sessions
// @Success 302 {string} string "Redirect to site root"
// @Failure 400 {object} ErrorResponse "Bad Request - state mismatch or missing code"
// @Failure 502 {object} ErrorResponse "Bad Gateway - provider error"
// @Router /auth/callback [get]
func (h sessionHandler) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.oauthConfig == nil {
			h.responder.WriteError(w, errs.NewInternalError("sign-in provider not configured"))
			return
		}

		wantState := h.sessions.PopString(r.Context(), oauthStateSessionKey)
		if wantState == "" || r.URL.Query().Get("state") != wantState {
			h.responder.WriteError(w, errs.NewBadRequestError("state mismatch"))
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing code"))
			return
		}

		token, err := h.oauthConfig.Exchange(r.Context(), code)
		if err != nil {
			h.logger.Error().Err(err).Msg("OAuth code exchange failed")
			h.responder.WriteError(w, errs.NewBadGatewayError("sign-in provider rejected the request", err))
			return
		}

		info, err := h.fetchUserInfo(r, token)
		if err != nil {
			h.logger.Error().Err(err).Msg("Fetching user info failed")
			h.responder.WriteError(w, errs.NewBadGatewayError("could not load profile from sign-in provider", err))
			return
		}

		h.sessions.Put(r.Context(), identity.SessionEmailKey, info.Email)
		h.sessions.Put(r.Context(), identity.SessionNameKey, info.Name)

		h.logger.Info().Str("email", info.Email).Msg("Session sign-in completed")
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func (h sessionHandler) fetchUserInfo(r *http.Request, token *oauth2.Token) (oauthUserInfo, error) {
	var info oauthUserInfo

	client := h.oauthConfig.Client(r.Context(), token)
	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, err
	}
	if info.Email == "" && info.Name == "" {
		return info, fmt.Errorf("userinfo response carried no identity")
	}
	return info, nil
}

// guestSignIn stores a display name for comment authorship without any
// provider round-trip
// @Summary Guest sign-in
// @Description Stores a free-text author name in the session.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param guest body GuestSignInRequest true "Display name"
// @Success 200 {object} StatusResponse "Signed in"
// @Failure 400 {object} ErrorResponse "Bad Request - missing name"
// @Router /auth/guest [post]
func (h sessionHandler) guestSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GuestSignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			h.responder.WriteValidationError(w, "name", "name is required and must be at most 120 characters")
			return
		}

		h.sessions.Put(r.Context(), identity.SessionAuthorNameKey, req.Name)
		h.responder.WriteStatus(w, http.StatusOK, "Signed in.")
	}
}

// signOut drops the session identity
// @Summary Sign out
// @Description Destroys the server-side session.
// @Tags Sessions
// @Produce json
// @Success 200 {object} StatusResponse "Signed out"
// @Router /auth/signout [post]
func (h sessionHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.sessions.Destroy(r.Context()); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to destroy session", err))
			return
		}
		h.responder.WriteStatus(w, http.StatusOK, "Signed out.")
	}
}
