package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/auth"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/router"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1",
		strings.ReplaceAll(t.Name(), "/", "_"))

	require.NoError(t, db.ConnectSQLite(dsn))
	require.NoError(t, db.MigrateDatabase())
	require.NoError(t, auth.Init("test-secret", time.Hour, 24*time.Hour))

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))

	return out
}

// registerAndLogin creates an account through the API and returns its
// access token and user id.
func registerAndLogin(t *testing.T, r *gin.Engine, username string) (string, uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"username":   username,
		"email":      username + "@example.com",
		"password":   "password123",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)
	userID := uint(created["id"].(float64))

	w = doJSON(t, r, http.MethodPost, "/api/users/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	tokens := decode(t, w)
	access, _ := tokens["access_token"].(string)
	require.NotEmpty(t, access)

	return access, userID
}

func createProjectAPI(t *testing.T, r *gin.Engine, token, name string) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"name":        name,
		"description": "test project",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return uint(decode(t, w)["id"].(float64))
}

func addMemberAPI(t *testing.T, r *gin.Engine, token string, projectID, userID uint) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/members", projectID), token, gin.H{
		"user_id": userID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return uint(decode(t, w)["id"].(float64))
}

func TestHealthCheck(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "taskforge", body["service"])
	assert.NotEmpty(t, body["version"])
}

func TestRegisterValidation(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"username": "alice",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Contains(t, body, "email")
	assert.Contains(t, body, "password")
	assert.Contains(t, body, "first_name")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := setupServer(t)
	registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"username":   "alice",
		"email":      "other@example.com",
		"password":   "password123",
		"first_name": "Other",
		"last_name":  "User",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w), "username")
}

func TestLoginOutcomes(t *testing.T) {
	r := setupServer(t)
	registerAndLogin(t, r, "alice")

	t.Run("token pair on success", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users/login", "", gin.H{
			"username": "alice",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		tokens := decode(t, w)
		assert.NotEmpty(t, tokens["access_token"])
		assert.NotEmpty(t, tokens["refresh_token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users/login", "", gin.H{
			"username": "alice",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrWrongPassword.Error(), decode(t, w)["error"])
	})

	t.Run("unknown username", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users/login", "", gin.H{
			"username": "nobody",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, models.ErrUserNotFound.Error(), decode(t, w)["error"])
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A refresh token is not an access token.
	registerAndLogin(t, r, "alice")
	w = doJSON(t, r, http.MethodPost, "/api/users/login", "", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	refresh := decode(t, w)["refresh_token"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/projects", refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserNotFoundPayload(t *testing.T) {
	r := setupServer(t)
	token, _ := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/users/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"id": ["not found"]}`, w.Body.String())
}

func TestUserPartialUpdate(t *testing.T) {
	r := setupServer(t)
	token, userID := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/users/%d", userID), token, gin.H{
		"first_name": "Alicia",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Alicia", body["first_name"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestDuplicateMemberPayload(t *testing.T) {
	r := setupServer(t)

	token, _ := registerAndLogin(t, r, "owner")
	_, aliceID := registerAndLogin(t, r, "alice")

	projectID := createProjectAPI(t, r, token, "Project P")
	addMemberAPI(t, r, token, projectID, aliceID)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/members", projectID), token, gin.H{
		"user_id": aliceID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, models.ErrDuplicateMember.Error(), body["duplicate_error"])
}

func TestPromoteMemberDemotesPreviousAdmin(t *testing.T) {
	r := setupServer(t)

	token, _ := registerAndLogin(t, r, "owner")
	_, aliceID := registerAndLogin(t, r, "alice")
	_, bobID := registerAndLogin(t, r, "bob")

	projectID := createProjectAPI(t, r, token, "Project P")
	aliceMember := addMemberAPI(t, r, token, projectID, aliceID)
	bobMember := addMemberAPI(t, r, token, projectID, bobID)

	w := doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/projects/%d/members/%d", projectID, bobMember), token,
		gin.H{"role": "Admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/projects/%d/members/%d", projectID, aliceMember), token,
		gin.H{"role": "Admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/members", projectID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var members []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))

	roles := map[uint]string{}
	admins := 0
	for _, m := range members {
		id := uint(m["id"].(float64))
		role := m["role"].(string)
		roles[id] = role
		if role == "Admin" {
			admins++
		}
	}

	assert.Equal(t, 1, admins)
	assert.Equal(t, "Admin", roles[aliceMember])
	assert.Equal(t, "Member", roles[bobMember])
}

func TestTaskInvalidAssignmentPayload(t *testing.T) {
	r := setupServer(t)

	token1, _ := registerAndLogin(t, r, "owner1")
	token2, _ := registerAndLogin(t, r, "owner2")
	_, aliceID := registerAndLogin(t, r, "alice")

	p1 := createProjectAPI(t, r, token1, "Project P1")
	p2 := createProjectAPI(t, r, token2, "Project P2")

	// alice is a member of P2 only.
	aliceMember := addMemberAPI(t, r, token2, p2, aliceID)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", p1), token1, gin.H{
		"title":       "Fix bug",
		"assigned_to": aliceMember,
		"due_date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, models.ErrInvalidAssignment.Error(), body["not_project_member_error"])

	// Nothing was persisted.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d/tasks", p1), token1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestTaskLifecycle(t *testing.T) {
	r := setupServer(t)

	token, _ := registerAndLogin(t, r, "owner")
	_, aliceID := registerAndLogin(t, r, "alice")

	projectID := createProjectAPI(t, r, token, "Project P")
	memberID := addMemberAPI(t, r, token, projectID, aliceID)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", projectID), token, gin.H{
		"title":       "Fix bug",
		"assigned_to": memberID,
		"due_date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode(t, w)
	taskID := uint(created["id"].(float64))
	assert.Equal(t, "To Do", created["status"])
	assert.Equal(t, "High", created["priority"])

	t.Run("duplicate title", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/tasks", token, gin.H{
			"title":       "Fix bug",
			"assigned_to": memberID,
			"project_id":  projectID,
			"due_date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w), "title")
	})

	t.Run("status update", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), token, gin.H{
			"status": "In Progress",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "In Progress", decode(t, w)["status"])
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/tasks/%d", taskID), token, gin.H{
			"status": "Blocked",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tasks/%d", taskID), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestChangeProjectOwner(t *testing.T) {
	r := setupServer(t)

	token, _ := registerAndLogin(t, r, "owner")
	_, aliceID := registerAndLogin(t, r, "alice")

	projectID := createProjectAPI(t, r, token, "Project P")

	// alice is not a member; the transfer is still allowed.
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/owner", projectID), token, gin.H{
		"user_id": aliceID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, aliceID, decode(t, w)["owner_id"])
}

func TestCommentsNestedUnderTask(t *testing.T) {
	r := setupServer(t)

	token, _ := registerAndLogin(t, r, "owner")
	_, aliceID := registerAndLogin(t, r, "alice")

	projectID := createProjectAPI(t, r, token, "Project P")
	memberID := addMemberAPI(t, r, token, projectID, aliceID)

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/projects/%d/tasks", projectID), token, gin.H{
		"title":       "Fix bug",
		"assigned_to": memberID,
		"due_date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	taskID := uint(decode(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", taskID), token, gin.H{
		"content": "working on it",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/tasks/%d/comments", taskID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "working on it", comments[0]["content"])
	assert.EqualValues(t, taskID, comments[0]["task_id"])
}

func TestDeleteUserCascades(t *testing.T) {
	r := setupServer(t)

	token, ownerID := registerAndLogin(t, r, "owner")
	aliceToken, aliceID := registerAndLogin(t, r, "alice")

	projectID := createProjectAPI(t, r, token, "Project P")
	addMemberAPI(t, r, token, projectID, aliceID)

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", ownerID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// The owned project went with the owner.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
