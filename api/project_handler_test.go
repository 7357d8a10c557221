package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/identity"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_AdminOnly(t *testing.T) {
	env := setupTestEnv(t)
	req := ProjectRequest{Title: "Gatekeeping", Description: "admin only"}

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/project", req)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("non-admin account is forbidden", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/project", req,
			withBearer(accountToken(t, uuid.New(), false)))
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("admin may create", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/project", req,
			withBearer(accountToken(t, uuid.New(), true)))
		assert.Equal(t, http.StatusCreated, resp.Code)
	})
}

func TestCreateProject_WithTagsAndLinks(t *testing.T) {
	env := setupTestEnv(t)
	admin := accountToken(t, uuid.New(), true)

	resp := env.do(t, http.MethodPost, "/project", ProjectRequest{
		Title:       "Tagged",
		Description: "has tags",
		Links:       []string{"https://example.com/repo"},
		Tags:        []string{"go", "web"},
	}, withBearer(admin))
	require.Equal(t, http.StatusCreated, resp.Code)

	var created models.Project
	require.NoError(t, jsonDecode(resp, &created))
	require.Len(t, created.Tags, 2)

	// Tag names are unique; reusing one must not duplicate the row
	resp = env.do(t, http.MethodPost, "/project", ProjectRequest{
		Title:       "Also Tagged",
		Description: "shares a tag",
		Tags:        []string{"go"},
	}, withBearer(admin))
	require.Equal(t, http.StatusCreated, resp.Code)

	tags, err := env.db.TagRepo().FindAll()
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestCreateProject_Validation(t *testing.T) {
	env := setupTestEnv(t)
	admin := accountToken(t, uuid.New(), true)

	resp := env.do(t, http.MethodPost, "/project", ProjectRequest{
		Description: "missing title",
	}, withBearer(admin))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = env.do(t, http.MethodPost, "/project", ProjectRequest{
		Title:       "Bad Link",
		Description: "link is not a URL",
		Links:       []string{"not a url"},
	}, withBearer(admin))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetProject_NotFound(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/project/%s", uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = env.do(t, http.MethodGet, "/project/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListProjects(t *testing.T) {
	env := setupTestEnv(t)
	env.seedProject(t, "One")
	env.seedProject(t, "Two")

	resp := env.do(t, http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var collection ProjectCollection
	require.NoError(t, jsonDecode(resp, &collection))
	assert.Equal(t, 2, collection.Total)
}

func TestDeleteProject_CascadesComments(t *testing.T) {
	env := setupTestEnv(t)
	project := env.seedProject(t, "Doomed")

	cookie := env.sessionCookie(t, map[string]string{
		identity.SessionNameKey: "Visitor",
	})
	resp := env.do(t, http.MethodPost, commentPath(project.ID),
		CommentRequest{Content: "soon gone"}, withCookie(cookie))
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/project/%s", project.ID),
		nil, withBearer(accountToken(t, uuid.New(), true)))
	require.Equal(t, http.StatusOK, resp.Code)

	count, err := env.db.CommentRepo().CountByProject(project.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/project/%s", project.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateProject_ReplacesTags(t *testing.T) {
	env := setupTestEnv(t)
	admin := accountToken(t, uuid.New(), true)

	resp := env.do(t, http.MethodPost, "/project", ProjectRequest{
		Title:       "Retagged",
		Description: "tags change",
		Tags:        []string{"go", "cli"},
	}, withBearer(admin))
	require.Equal(t, http.StatusCreated, resp.Code)

	var created models.Project
	require.NoError(t, jsonDecode(resp, &created))

	resp = env.do(t, http.MethodPut, fmt.Sprintf("/project/%s", created.ID), ProjectRequest{
		Title:       "Retagged",
		Description: "tags change",
		Tags:        []string{"web"},
	}, withBearer(admin))
	require.Equal(t, http.StatusOK, resp.Code)

	var updated models.Project
	require.NoError(t, jsonDecode(resp, &updated))
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "web", updated.Tags[0].Name)
}
