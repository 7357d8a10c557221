package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	tagRepo     *database.TagRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo, tagRepo *database.TagRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
	}
}

// ProjectRequest is the payload for creating or updating a project
type ProjectRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Links       []string `json:"links,omitempty" validate:"dive,url"`
	Tags        []string `json:"tags,omitempty" validate:"dive,required,max=100"`
}

// ProjectCollection represents multiple projects with their tags and images
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total,omitempty"`
}

// getAllProjects retrieves all projects with their tags and images
// @Summary Get all projects
// @Description Retrieves all projects from the database with their associated tags and images
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {object} ProjectCollection "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		response := ProjectCollection{Projects: []models.Project{}}
		for _, project := range projects {
			response.Projects = append(response.Projects, *project)
		}
		response.Total = len(response.Projects)

		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Description Retrieves detailed information about a specific project by ID with its tags and images
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project "Project details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
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

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a new project in the database. Admin only.
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body ProjectRequest true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.decodeRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := models.Project{
			ID:          uuid.New(),
			Title:       req.Title,
			Description: req.Description,
		}
		if links, err := linksJSON(req.Links); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid links"))
			return
		} else {
			project.Links = links
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		if err := h.attachTags(&project, req.Tags); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		createdProject, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, createdProject)
	}
}

// updateProject updates an existing project
// @Summary Update project
// @Description Updates an existing project in the database. Admin only.
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body ProjectRequest true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating project"
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existingProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		req, reqErr := h.decodeRequest(r)
		if reqErr != nil {
			h.responder.WriteError(w, reqErr)
			return
		}

		existingProject.Title = req.Title
		existingProject.Description = req.Description
		if links, err := linksJSON(req.Links); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid links"))
			return
		} else {
			existingProject.Links = links
		}

		// Save scalar fields without touching associations, then
		// reconcile tags separately
		existingProject.Tags = nil
		existingProject.Images = nil
		existingProject.Comments = nil
		if err := h.projectRepo.Update(existingProject); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		if err := h.attachTags(existingProject, req.Tags); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updatedProject, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, updatedProject)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Description Deletes a project and its comments and images. Admin only.
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} StatusResponse "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting project"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
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

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteStatus(w, http.StatusOK, "Project deleted.")
	}
}

func (h projectHandler) decodeRequest(r *http.Request) (ProjectRequest, error) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode project request body")
		return req, errs.NewBadRequestError("malformed request body")
	}
	if err := validate.Struct(req); err != nil {
		return req, errs.NewValidationError("project", err.Error())
	}
	return req, nil
}

// attachTags resolves tag names to rows (creating missing ones) and sets
// the project's association to exactly that set.
func (h projectHandler) attachTags(project *models.Project, tagNames []string) error {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := h.tagRepo.FindOrCreateByName(name)
		if err != nil {
			return wrapDatabaseError("create tag", "tag", err)
		}
		tags = append(tags, *tag)
	}
	if err := h.projectRepo.ReplaceTags(project, tags); err != nil {
		return wrapDatabaseError("set project tags", "project", err)
	}
	return nil
}

func projectIDParam(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}

func linksJSON(links []string) (datatypes.JSON, error) {
	if len(links) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
