package projects

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/scribehq/scribe-api/internal/config"
	"github.com/scribehq/scribe-api/internal/database"
	"github.com/scribehq/scribe-api/internal/middleware"
	"github.com/scribehq/scribe-api/internal/models"
	"github.com/scribehq/scribe-api/internal/redis"
	"github.com/scribehq/scribe-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	mr  *miniredis.Miniredis
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
			NoLowerCase:   true,
		},
		TranslateError: true,
	})
	require.NoError(t, err)

	// A pooled second connection to :memory: would see a different database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Changelog{}))
	database.SetDatabase(db)

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	redis.SetClient(redisClient)
	t.Cleanup(func() { redisClient.Close() })

	cfg := &config.Config{JWTSecret: "test-secret"}
	config.Set(cfg)

	app := fiber.New()
	app.Get("/api/projects", List)
	app.Get("/api/projects/:projectId", Get)
	app.Delete("/api/projects/:projectId", middleware.AuthMiddleware(cfg), Delete)

	return &testEnv{app: app, db: db, mr: mr}
}

func seedUser(t *testing.T, db *gorm.DB, email string) (*models.User, string) {
	t.Helper()

	user := models.User{
		ID:    uuid.NewString(),
		Email: &email,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, email)
	require.NoError(t, err)

	return &user, token
}

func seedProject(t *testing.T, db *gorm.DB, name, repoURL string, ownerID *string) models.Project {
	t.Helper()

	project := models.Project{
		ID:            uuid.NewString(),
		Name:          name,
		RepositoryURL: repoURL,
		OwnerID:       ownerID,
	}
	require.NoError(t, db.Create(&project).Error)
	return project
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) (int, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	return resp.StatusCode, envelope
}

func TestList_PublicAndRecentlyActiveFirst(t *testing.T) {
	env := setupEnv(t)

	stale := seedProject(t, env.db, "Stale", "https://github.com/acme/stale", nil)
	require.NoError(t, env.db.Model(&stale).Update("updatedAt", time.Now().Add(-time.Hour)).Error)
	active := seedProject(t, env.db, "Active", "https://github.com/acme/active", nil)

	status, resp := doRequest(t, env.app, "GET", "/api/projects", "")
	require.Equal(t, http.StatusOK, status)

	var listed []models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, active.ID, listed[0].ID)
	assert.Equal(t, stale.ID, listed[1].ID)
}

func TestGet_PublicAndNotFound(t *testing.T) {
	env := setupEnv(t)

	project := seedProject(t, env.db, "Widgets", "https://github.com/acme/widgets", nil)

	status, resp := doRequest(t, env.app, "GET", "/api/projects/"+project.ID, "")
	require.Equal(t, http.StatusOK, status)

	var stored models.Project
	require.NoError(t, json.Unmarshal(resp.Data, &stored))
	assert.Equal(t, project.ID, stored.ID)
	assert.Equal(t, "Widgets", stored.Name)

	status, _ = doRequest(t, env.app, "GET", "/api/projects/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDelete_RequiresOwnership(t *testing.T) {
	env := setupEnv(t)
	owner, _ := seedUser(t, env.db, "owner@example.com")
	_, intruderToken := seedUser(t, env.db, "intruder@example.com")

	owned := seedProject(t, env.db, "Owned", "https://github.com/acme/owned", &owner.ID)
	unclaimed := seedProject(t, env.db, "Unclaimed", "https://github.com/acme/unclaimed", nil)

	status, _ := doRequest(t, env.app, "DELETE", "/api/projects/"+owned.ID, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doRequest(t, env.app, "DELETE", "/api/projects/"+owned.ID, intruderToken)
	assert.Equal(t, http.StatusForbidden, status)

	// A project nobody claimed cannot be deleted by anyone
	status, _ = doRequest(t, env.app, "DELETE", "/api/projects/"+unclaimed.ID, intruderToken)
	assert.Equal(t, http.StatusForbidden, status)

	var count int64
	env.db.Model(&models.Project{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestDelete_CascadesToChangelogs(t *testing.T) {
	env := setupEnv(t)
	owner, ownerToken := seedUser(t, env.db, "owner@example.com")

	project := seedProject(t, env.db, "Owned", "https://github.com/acme/owned", &owner.ID)
	other := seedProject(t, env.db, "Other", "https://github.com/acme/other", &owner.ID)

	for _, projectID := range []string{project.ID, project.ID, other.ID} {
		changelog := models.Changelog{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			CreatedBy: &owner.ID,
			Version:   "2025.03.09-1407",
			SummaryAI: "draft",
			Status:    models.ChangelogStatusDraft,
		}
		require.NoError(t, env.db.Create(&changelog).Error)
	}

	status, _ := doRequest(t, env.app, "DELETE", "/api/projects/"+project.ID, ownerToken)
	require.Equal(t, http.StatusOK, status)

	var projectCount int64
	env.db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projectCount)
	assert.Equal(t, int64(0), projectCount)

	var orphaned int64
	env.db.Model(&models.Changelog{}).Where("projectId = ?", project.ID).Count(&orphaned)
	assert.Equal(t, int64(0), orphaned)

	// The sibling project and its changelog survive
	var survivors int64
	env.db.Model(&models.Changelog{}).Where("projectId = ?", other.ID).Count(&survivors)
	assert.Equal(t, int64(1), survivors)
}
