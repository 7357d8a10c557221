package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes. Reads and session flows are
// public; project and image management require an admin account.
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.resolveAccount)

		// Project endpoints (reads)
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())

		// Comment endpoints
		r.Get("/project/{projectID}/comments", handlers.commentHandler.getComments())
		r.Post("/project/{projectID}/comment", handlers.commentHandler.createComment())
		r.Put("/project/{projectID}/comment/{commentID}", handlers.commentHandler.updateComment())
		r.Delete("/project/{projectID}/comment/{commentID}", handlers.commentHandler.deleteComment())

		// Contact form
		r.Post("/contact", handlers.contactHandler.submit())

		// Session sign-in flows
		r.Get("/auth/signin", handlers.sessionHandler.signIn())
		r.Get("/auth/callback", handlers.sessionHandler.callback())
		r.Post("/auth/guest", handlers.sessionHandler.guestSignIn())
		r.Post("/auth/signout", handlers.sessionHandler.signOut())

		// Project and image management (admin only)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			r.Post("/project", handlers.projectHandler.createProject())
			r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/project/{projectID}/image", handlers.imageHandler.createImage())
			r.Delete("/project/{projectID}/image/{imageID}", handlers.imageHandler.deleteImage())
		})
	})
}
