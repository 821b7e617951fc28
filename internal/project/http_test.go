package project_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cohort-service/internal/logger"
	"cohort-service/internal/metrics"
	"cohort-service/internal/project"
	"cohort-service/internal/student"
	"cohort-service/internal/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectHandler_Shared(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.CreateTables(t, (*project.Project)(nil), (*student.Student)(nil))

	repo := project.NewRepository(pgContainer.DB)
	service := project.NewService(repo, nil)
	handler := project.NewHandler(service, logger.New(), metrics.NewMock())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	t.Run("CreateProject", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		payload := map[string]interface{}{
			"project_name":        "Alpha",
			"project_description": "first project",
		}
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest(http.MethodPost, "/projects/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response project.Project
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.NotZero(t, response.ID)
		assert.Equal(t, "Alpha", response.ProjectName)
		assert.Equal(t, "first project", response.ProjectDescription)
	})

	t.Run("CreateProjectThenGetReturnsSameValues", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		payload := map[string]interface{}{
			"project_name":        "Beta",
			"project_description": "second project",
		}
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest(http.MethodPost, "/projects/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var created project.Project
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%d", created.ID), nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched project.Project
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
		assert.Equal(t, created, fetched)
	})

	t.Run("CreateProjectMissingName", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		body, _ := json.Marshal(map[string]interface{}{
			"project_description": "nameless",
		})

		req := httptest.NewRequest(http.MethodPost, "/projects/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetProjectNotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		req := httptest.NewRequest(http.MethodGet, "/projects/99999", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetAllProjects", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		ctx := context.Background()
		projects := []*project.Project{
			{ProjectName: "Project One", ProjectDescription: "one"},
			{ProjectName: "Project Two", ProjectDescription: "two"},
			{ProjectName: "Project Three", ProjectDescription: "three"},
		}

		for _, p := range projects {
			_, err := pgContainer.DB.NewInsert().Model(p).Exec(ctx)
			require.NoError(t, err)
		}

		req := httptest.NewRequest(http.MethodGet, "/projects/", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []project.Project
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		require.Len(t, response, 3)
		assert.Equal(t, "Project One", response[0].ProjectName)
		assert.Equal(t, "Project Two", response[1].ProjectName)
		assert.Equal(t, "Project Three", response[2].ProjectName)

		ids := map[int]bool{}
		for i := range response {
			assert.NotZero(t, response[i].ID)
			ids[response[i].ID] = true
		}
		assert.Len(t, ids, 3)
	})

	t.Run("GetAllProjectsEmpty", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		req := httptest.NewRequest(http.MethodGet, "/projects/", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("UpdateProject", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		ctx := context.Background()
		testProject := &project.Project{
			ProjectName:        "Original Name",
			ProjectDescription: "original description",
		}
		_, err := pgContainer.DB.NewInsert().Model(testProject).Exec(ctx)
		require.NoError(t, err)

		payload := map[string]interface{}{
			"project_name": "Updated Name",
		}
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/projects/%d", testProject.ID), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response project.Project
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

		assert.Equal(t, testProject.ID, response.ID)
		assert.Equal(t, "Updated Name", response.ProjectName)
		// Full replacement: the omitted description is overwritten too
		assert.Equal(t, "", response.ProjectDescription)
	})

	t.Run("UpdateProjectNotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		payload := map[string]interface{}{
			"project_name": "Updated Name",
		}
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest(http.MethodPut, "/projects/99999", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteProject", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		ctx := context.Background()
		testProject := &project.Project{ProjectName: "To Delete"}
		_, err := pgContainer.DB.NewInsert().Model(testProject).Exec(ctx)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/projects/%d", testProject.ID), nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		count, err := pgContainer.DB.NewSelect().Model((*project.Project)(nil)).Where("id = ?", testProject.ID).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/projects/%d", testProject.ID), nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteProjectDetachesStudents", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects", "students")

		ctx := context.Background()
		testProject := &project.Project{ProjectName: "Team Alpha"}
		_, err := pgContainer.DB.NewInsert().Model(testProject).Exec(ctx)
		require.NoError(t, err)

		members := []*student.Student{
			{Name: "A", Email: "a@x.com", ProjectID: &testProject.ID},
			{Name: "B", Email: "b@x.com", ProjectID: &testProject.ID},
			{Name: "C", Email: "c@x.com", ProjectID: &testProject.ID},
		}
		for _, s := range members {
			_, err := pgContainer.DB.NewInsert().Model(s).Exec(ctx)
			require.NoError(t, err)
		}

		req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/projects/%d", testProject.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)

		var remaining []student.Student
		err = pgContainer.DB.NewSelect().Model(&remaining).Scan(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 3)
		for _, s := range remaining {
			assert.Nil(t, s.ProjectID)
		}
	})

	t.Run("DeleteProjectNotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		req := httptest.NewRequest(http.MethodDelete, "/projects/99999", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		req := httptest.NewRequest(http.MethodPost, "/projects/", bytes.NewReader([]byte("invalid json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidProjectID", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, "projects")

		req := httptest.NewRequest(http.MethodGet, "/projects/invalid", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
