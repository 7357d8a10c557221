package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const uploadURLTTL = 15 * time.Minute

type imageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	imageRepo   *database.ProjectImageRepo
	projectRepo *database.ProjectRepo
	storage     *services.ImageStorage
}

func newImageHandler(imageRepo *database.ProjectImageRepo, projectRepo *database.ProjectRepo, storage *services.ImageStorage) imageHandler {
	logger := log.With().Str("handlerName", "imageHandler").Logger()

	return imageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		imageRepo:   imageRepo,
		projectRepo: projectRepo,
		storage:     storage,
	}
}

// ImageUploadRequest asks for an upload slot in a project's gallery
type ImageUploadRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=image/png image/jpeg image/gif image/webp"`
}

// ImageUploadResponse carries the presigned upload URL and the recorded image row
type ImageUploadResponse struct {
	UploadURL string              `json:"upload_url"`
	Image     models.ProjectImage `json:"image"`
}

// createImage appends an image slot to a project's gallery
// @Summary Add project image
// @Description Records a new gallery image and returns a presigned URL to upload the bytes to. Admin only.
// @Tags Images
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param image body ImageUploadRequest true "Upload request"
// @Success 201 {object} ImageUploadResponse "Upload slot"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid content type"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /project/{projectID}/image [post]
func (h imageHandler) createImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if h.storage == nil {
			h.responder.WriteError(w, errs.NewInternalError("image storage not configured"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		var req ImageUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validate.Struct(req); err != nil {
			h.responder.WriteValidationError(w, "content_type", "content_type must be one of image/png, image/jpeg, image/gif, image/webp")
			return
		}

		key, uploadURL, err := h.storage.PresignUpload(r.Context(), project.ID, req.ContentType, uploadURLTTL)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to prepare image upload", err))
			return
		}

		position, err := h.imageRepo.NextPosition(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count images", "project images", err))
			return
		}

		image := models.ProjectImage{
			ID:        uuid.New(),
			ProjectID: project.ID,
			ObjectKey: key,
			Position:  position,
		}
		if err := h.imageRepo.Add(&image); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create image", "project image", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, ImageUploadResponse{
			UploadURL: uploadURL,
			Image:     image,
		})
	}
}

// deleteImage removes an image from a project's gallery
// @Summary Delete project image
// @Description Removes a gallery image row. Admin only. The stored object is left for the bucket's lifecycle rules.
// @Tags Images
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param imageID path string true "Image ID" format(uuid)
// @Success 200 {object} StatusResponse "Image deleted"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid imageID"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /project/{projectID}/image/{imageID} [delete]
func (h imageHandler) deleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := projectIDParam(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		imageIDStr := chi.URLParam(r, "imageID")
		imageID, err := uuid.Parse(imageIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid imageID"))
			return
		}

		if err := h.imageRepo.Delete(imageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete image", "project image", err))
			return
		}

		h.responder.WriteStatus(w, http.StatusOK, "Image deleted.")
	}
}
