package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/identity"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	projectRepo *database.ProjectRepo
	profileRepo *database.ProfileRepo
	sessions    *scs.SessionManager
}

func newCommentHandler(commentRepo *database.CommentRepo, projectRepo *database.ProjectRepo, profileRepo *database.ProfileRepo, sessions *scs.SessionManager) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		profileRepo: profileRepo,
		sessions:    sessions,
	}
}

// CommentRequest is the payload for creating or updating a comment
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// CommentWithAuthor pairs a comment with the display name to show for it
type CommentWithAuthor struct {
	Comment models.Comment `json:"comment"`
	Author  string         `json:"author"`
}

// CommentCollection represents a project's comments, newest first
type CommentCollection struct {
	Comments []CommentWithAuthor `json:"comments"`
	Total    int                 `json:"total"`
}

// resolveIdentity classifies the request per the account-over-session
// precedence rule. Done once per request and threaded through the guard
// calls; handlers never re-derive identity ad hoc.
func (h commentHandler) resolveIdentity(r *http.Request) identity.Identity {
	return identity.Resolve(r.Context(), authStateFromCtx(r.Context()), h.sessions)
}

// getComments lists a project's comments with their author display names
// @Summary Get project comments
// @Description Retrieves all comments on a project, newest first
// @Tags Comments
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} CommentCollection "Comments with authors"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /project/{projectID}/comments [get]
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		comments, err := h.commentRepo.FindByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find comments", "comments", err))
			return
		}

		response := CommentCollection{Comments: []CommentWithAuthor{}}
		displayNames := map[uuid.UUID]string{}
		for _, comment := range comments {
			response.Comments = append(response.Comments, CommentWithAuthor{
				Comment: *comment,
				Author:  h.displayNameFor(comment, displayNames),
			})
		}
		response.Total = len(response.Comments)

		h.responder.WriteJSON(w, response)
	}
}

// displayNameFor picks the name shown next to a comment: the free-text
// author for session comments, the account's profile display name for
// account comments, "Anon" when neither is known.
func (h commentHandler) displayNameFor(comment *models.Comment, cache map[uuid.UUID]string) string {
	if comment.AuthorName != "" {
		return comment.AuthorName
	}
	if comment.AccountID == nil {
		return "Anon"
	}
	if name, ok := cache[*comment.AccountID]; ok {
		return name
	}

	name := "Anon"
	profile, err := h.profileRepo.FindByAccountID(*comment.AccountID)
	if err == nil && profile.DisplayName != "" {
		name = profile.DisplayName
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.logger.Error().Err(err).Str("accountID", comment.AccountID.String()).Msg("Failed to load commenter profile")
	}
	cache[*comment.AccountID] = name
	return name
}

// createComment posts a new comment on a project
// @Summary Create comment
// @Description Creates a comment on a project. Requires either an authenticated account or a session identity.
// @Tags Comments
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param comment body CommentRequest true "Comment content"
// @Success 201 {object} StatusResponse "Comment posted"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid comment data"
// @Failure 401 {object} ErrorResponse "Unauthorized - Sign in required"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /project/{projectID}/comment [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		requester := h.resolveIdentity(r)
		if err := identity.CanComment(requester); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("sign in is required to comment"))
			return
		}

		var req CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			h.responder.WriteValidationError(w, "content", "content is required and must be at most 2000 characters")
			return
		}

		comment := models.Comment{
			ID:        uuid.New(),
			ProjectID: project.ID,
			Content:   req.Content,
		}
		identity.SetAuthor(&comment, requester)

		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create comment", "comment", err))
			return
		}

		h.logger.Info().
			Str("projectID", project.ID.String()).
			Str("commentID", comment.ID.String()).
			Str("identity", requester.Kind.String()).
			Msg("Comment posted")

		h.responder.WriteStatus(w, http.StatusCreated, "Comment posted.")
	}
}

// updateComment edits an existing comment owned by the requesting account
// @Summary Update comment
// @Description Updates a comment. Only the owning account may update; denial is reported as not found.
// @Tags Comments
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param commentID path string true "Comment ID" format(uuid)
// @Param comment body CommentRequest true "Updated comment content"
// @Success 200 {object} StatusResponse "Comment updated"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid comment data"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found or not owned"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /project/{projectID}/comment/{commentID} [put]
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, apiErr := h.lookupOwnedComment(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		var req CommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			h.responder.WriteValidationError(w, "content", "content is required and must be at most 2000 characters")
			return
		}

		comment.Content = req.Content
		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update comment", "comment", err))
			return
		}

		h.responder.WriteStatus(w, http.StatusOK, "Comment updated.")
	}
}

// deleteComment removes an existing comment owned by the requesting account
// @Summary Delete comment
// @Description Deletes a comment. Only the owning account (or an admin) may delete; denial is reported as not found.
// @Tags Comments
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param commentID path string true "Comment ID" format(uuid)
// @Success 200 {object} StatusResponse "Comment deleted"
// @Failure 404 {object} ErrorResponse "Not Found - Comment not found or not owned"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /project/{projectID}/comment/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, apiErr := h.lookupOwnedComment(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comment", "comment", err))
			return
		}

		h.responder.WriteStatus(w, http.StatusOK, "Comment deleted.")
	}
}

// lookupOwnedComment loads the target comment scoped to its project and
// runs the ownership guard. A comment that does not exist, belongs to a
// different project, or is not owned by the requesting account all come
// back as the same not-found error, so a denied requester learns nothing
// about whether the comment exists.
func (h commentHandler) lookupOwnedComment(r *http.Request) (*models.Comment, error) {
	projectID, err := projectIDParam(r)
	if err != nil {
		return nil, err
	}

	commentIDStr := chi.URLParam(r, "commentID")
	if commentIDStr == "" {
		return nil, errs.NewBadRequestError("missing commentID")
	}
	commentID, err := uuid.Parse(commentIDStr)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid commentID")
	}

	comment, err := h.commentRepo.FindByIDForProject(commentID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError("comment not found")
		}
		return nil, wrapDatabaseError("find comment", "comment", err)
	}

	requester := h.resolveIdentity(r)
	if err := identity.CanModify(requester, *comment); err != nil {
		h.logger.Info().
			Str("commentID", comment.ID.String()).
			Str("identity", requester.Kind.String()).
			Msg("Comment mutation denied")
		return nil, errs.NewNotFoundError("comment not found")
	}

	return comment, nil
}
