package api

import (
	"github.com/alexedwards/scs/v2"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
	"golang.org/x/oauth2"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, sessions *scs.SessionManager, mailer *services.Mailer, storage *services.ImageStorage, oauthConfig *oauth2.Config, userInfoURL string) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo(), database.TagRepo()),
		commentHandler: newCommentHandler(database.CommentRepo(), database.ProjectRepo(), database.ProfileRepo(), sessions),
		imageHandler:   newImageHandler(database.ProjectImageRepo(), database.ProjectRepo(), storage),
		contactHandler: newContactHandler(mailer),
		sessionHandler: newSessionHandler(sessions, oauthConfig, userInfoURL),
	}
}
