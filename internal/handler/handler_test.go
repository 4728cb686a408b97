package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mtlprog/taskboard/internal/domain"
	"github.com/mtlprog/taskboard/internal/handler"
	"github.com/mtlprog/taskboard/internal/handler/dto"
	"github.com/mtlprog/taskboard/internal/middleware"
	"github.com/mtlprog/taskboard/internal/repository/memory"
	"github.com/mtlprog/taskboard/internal/service"
)

const testSecret = "test-secret"

type HandlerTestSuite struct {
	suite.Suite
	mux         *http.ServeMux
	taskStore   *memory.TaskStore
	noticeStore *memory.NoticeStore

	// Test fixtures
	adminToken    string
	memberToken   string
	inactiveToken string
}

func (s *HandlerTestSuite) SetupTest() {
	s.taskStore = memory.NewTaskStore()
	s.noticeStore = memory.NewNoticeStore()
	userStore := memory.NewUserStore(
		domain.User{ID: "admin", Name: "Ada", Title: "Lead", Role: "manager", IsAdmin: true, IsActive: true, CreatedAt: time.Now()},
		domain.User{ID: "u1", Name: "Bob", Title: "Dev", Role: "engineer", IsActive: true, CreatedAt: time.Now()},
		domain.User{ID: "gone", Name: "Old", IsActive: false},
	)

	taskService := service.NewTaskService(s.taskStore, s.noticeStore, userStore)
	authMiddleware := middleware.NewAuthMiddleware(userStore, testSecret)

	s.mux = http.NewServeMux()
	handler.New(taskService, authMiddleware, s.taskStore).RegisterRoutes(s.mux)

	s.adminToken = s.issue("admin")
	s.memberToken = s.issue("u1")
	s.inactiveToken = s.issue("gone")
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) issue(userID string) string {
	token, err := middleware.IssueToken(testSecret, userID, time.Hour)
	s.Require().NoError(err)
	return token
}

// Helper to make a request, authenticated through the session cookie when token is set
func (s *HandlerTestSuite) makeRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	switch b := body.(type) {
	case nil:
		bodyReader = bytes.NewReader([]byte{})
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	}

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder, dst interface{}) {
	s.Require().NoError(json.NewDecoder(w.Body).Decode(dst))
}

func (s *HandlerTestSuite) requireError(w *httptest.ResponseRecorder, status int, code string) {
	s.Require().Equal(status, w.Code, w.Body.String())

	var errResp dto.ErrorResponse
	s.decode(w, &errResp)
	s.False(errResp.Status)
	s.Equal(code, errResp.Code)
	s.NotEmpty(errResp.Message)
}

func (s *HandlerTestSuite) createTask(token string, team []string) dto.TaskResponse {
	w := s.makeRequest("POST", "/api/task/create", token, map[string]interface{}{
		"title":    "Prepare release",
		"team":     team,
		"stage":    "TODO",
		"date":     "2024-01-01",
		"priority": "HIGH",
		"assets":   []interface{}{"notes.txt", map[string]interface{}{"name": "plan.pdf", "size": 10}},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskEnvelope
	s.decode(w, &resp)
	s.True(resp.Status)
	return resp.Task
}

func (s *HandlerTestSuite) TestCreateTask_Success() {
	task := s.createTask(s.adminToken, []string{"u1", "admin", "gone"})

	s.NotEmpty(task.ID)
	s.Equal("todo", task.Stage)
	s.Equal("high", task.Priority)
	s.Require().Len(task.Assets, 2)
	s.Equal("notes.txt", task.Assets[0].Name)
	s.Equal(int64(10), task.Assets[1].Size)
	s.Require().Len(task.Activities, 1)
	s.Equal("assigned", task.Activities[0].Type)
	s.Equal("admin", task.Activities[0].By.ID)
	s.Contains(task.Activities[0].Activity, "and 2 others.")
	s.Contains(task.Activities[0].Activity, "HIGH priority")
	s.Contains(task.Activities[0].Activity, "Mon Jan 01 2024")

	notices, err := s.noticeStore.ListByTask(context.Background(), task.ID)
	s.Require().NoError(err)
	s.Len(notices, 1)
}

func (s *HandlerTestSuite) TestCreateTask_Anonymous() {
	task := s.createTask("", []string{"u1"})
	s.Equal(domain.AnonymousUserID, task.Activities[0].By.ID)

	notices, err := s.noticeStore.ListByTask(context.Background(), task.ID)
	s.Require().NoError(err)
	s.Empty(notices)

	// An unusable token on an optional route falls back to anonymous
	task = s.createTask("not-a-jwt", []string{"u1"})
	s.Equal(domain.AnonymousUserID, task.Activities[0].By.ID)
}

func (s *HandlerTestSuite) TestCreateTask_LenientAssets() {
	tests := []struct {
		name   string
		assets string
		want   []domain.Asset
	}{
		{"string instead of list", `"x.pdf"`, []domain.Asset{}},
		{"object instead of list", `{"name": "x.pdf"}`, []domain.Asset{}},
		{"null", `null`, []domain.Asset{}},
		{"empty filename", `[""]`, []domain.Asset{{Name: "", Type: domain.DefaultAssetType}}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := `{"title": "x", "stage": "todo", "priority": "low", "date": "2024-01-01", "assets": ` + tt.assets + `}`
			w := s.makeRequest("POST", "/api/task/create", s.adminToken, body)
			s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

			var resp dto.TaskEnvelope
			s.decode(w, &resp)
			s.Require().Len(resp.Task.Assets, len(tt.want))
			for i, want := range tt.want {
				got := resp.Task.Assets[i]
				s.Equal(want.Name, got.Name)
				s.Equal(want.Type, got.Type)
				s.Positive(got.LastModified)
			}
		})
	}

	created := s.createTask(s.adminToken, []string{"u1"})
	w := s.makeRequest("PUT", "/api/task/update/"+created.ID, s.adminToken,
		`{"title": "y", "stage": "todo", "priority": "low", "date": "2024-01-01", "team": [], "assets": "x.pdf"}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	task, err := s.taskStore.GetByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Empty(task.Assets)
}

func (s *HandlerTestSuite) TestCreateTask_Invalid() {
	w := s.makeRequest("POST", "/api/task/create", s.adminToken, "{not json")
	s.requireError(w, http.StatusBadRequest, "INVALID_JSON")

	w = s.makeRequest("POST", "/api/task/create", s.adminToken, map[string]string{"title": "x"})
	s.requireError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.makeRequest("POST", "/api/task/create", s.adminToken, map[string]string{
		"title": "x", "stage": "todo", "priority": "low", "date": "next week",
	})
	s.requireError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.makeRequest("POST", "/api/task/create", s.adminToken, map[string]string{
		"title": "x", "stage": "blocked", "priority": "low", "date": "2024-01-01",
	})
	s.requireError(w, http.StatusBadRequest, "VALIDATION_ERROR")
}

func (s *HandlerTestSuite) TestGetTask() {
	created := s.createTask(s.adminToken, []string{"u1"})

	w := s.makeRequest("GET", "/api/task/"+created.ID, "", nil)
	s.requireError(w, http.StatusUnauthorized, "UNAUTHORIZED")

	w = s.makeRequest("GET", "/api/task/"+created.ID, s.inactiveToken, nil)
	s.requireError(w, http.StatusUnauthorized, "USER_INACTIVE")

	w = s.makeRequest("GET", "/api/task/"+created.ID, s.issue("nobody"), nil)
	s.requireError(w, http.StatusUnauthorized, "INVALID_TOKEN")

	w = s.makeRequest("GET", "/api/task/"+created.ID, s.memberToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskEnvelope
	s.decode(w, &resp)
	s.Equal(created.ID, resp.Task.ID)
	s.Require().Len(resp.Task.Team, 1)
	s.Equal("Bob", resp.Task.Team[0].Name)
	s.Equal("engineer", resp.Task.Team[0].Role)
	s.Equal("Ada", resp.Task.Activities[0].By.Name)

	w = s.makeRequest("GET", "/api/task/missing", s.memberToken, nil)
	s.requireError(w, http.StatusNotFound, "TASK_NOT_FOUND")
}

func (s *HandlerTestSuite) TestGetTask_BearerHeader() {
	created := s.createTask(s.adminToken, nil)

	req := httptest.NewRequest("GET", "/api/task/"+created.ID, nil)
	req.Header.Set("Authorization", "Bearer "+s.memberToken)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestPostActivity() {
	created := s.createTask(s.adminToken, []string{"u1"})
	body := dto.PostActivityRequest{Type: "started", Activity: "on it"}

	w := s.makeRequest("POST", "/api/task/activity/"+created.ID, "", body)
	s.requireError(w, http.StatusUnauthorized, "UNAUTHORIZED")

	w = s.makeRequest("POST", "/api/task/activity/"+created.ID, s.memberToken, body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	stored, err := s.taskStore.GetByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Activities, 2)
	s.Equal("u1", stored.Activities[1].By)
	s.Equal(domain.ActivityStarted, stored.Activities[1].Type)

	w = s.makeRequest("POST", "/api/task/activity/missing", s.memberToken, body)
	s.requireError(w, http.StatusNotFound, "TASK_NOT_FOUND")
}

func (s *HandlerTestSuite) TestDuplicateAndSubTask() {
	created := s.createTask(s.adminToken, []string{"u1"})

	w := s.makeRequest("PUT", "/api/task/create-subtask/"+created.ID, "", dto.CreateSubTaskRequest{
		Title: "Write notes", Tag: "docs", Date: "2024-01-03",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest("POST", "/api/task/duplicate/"+created.ID, s.memberToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaskEnvelope
	s.decode(w, &resp)
	s.Equal("Prepare release - Duplicate", resp.Task.Title)
	s.Len(resp.Task.SubTasks, 1)
	s.NotEqual(created.ID, resp.Task.ID)

	w = s.makeRequest("POST", "/api/task/duplicate/missing", s.memberToken, nil)
	s.requireError(w, http.StatusNotFound, "TASK_NOT_FOUND")
}

func (s *HandlerTestSuite) TestUpdateTask() {
	created := s.createTask(s.adminToken, []string{"u1"})

	w := s.makeRequest("PUT", "/api/task/update/"+created.ID, s.adminToken, map[string]interface{}{
		"title":    "Renamed",
		"team":     []string{"admin"},
		"stage":    "In Progress",
		"date":     "2024-02-01T10:00:00Z",
		"priority": "low",
		"assets":   []interface{}{},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	stored, err := s.taskStore.GetByID(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", stored.Title)
	s.Equal(domain.StageInProgress, stored.Stage)
	s.Equal([]string{"admin"}, stored.Team)
	s.Empty(stored.Assets)
}

func (s *HandlerTestSuite) TestTrashListAndDeleteRestore() {
	keep := s.createTask(s.adminToken, nil)
	drop := s.createTask(s.adminToken, nil)

	w := s.makeRequest("PUT", "/api/task/"+drop.ID, "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.makeRequest("GET", "/api/task", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var active dto.TasksResponse
	s.decode(w, &active)
	s.Require().Len(active.Tasks, 1)
	s.Equal(keep.ID, active.Tasks[0].ID)

	w = s.makeRequest("GET", "/api/task?isTrashed=true", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var trashed dto.TasksResponse
	s.decode(w, &trashed)
	s.Require().Len(trashed.Tasks, 1)
	s.Equal(drop.ID, trashed.Tasks[0].ID)

	w = s.makeRequest("GET", "/api/task?isTrashed=maybe", "", nil)
	s.requireError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.makeRequest("DELETE", "/api/task/delete-restore/"+drop.ID+"?actionType=purge", "", nil)
	s.requireError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.makeRequest("DELETE", "/api/task/delete-restore/all?actionType=deleteAll", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.DeleteRestoreResponse
	s.decode(w, &resp)
	s.True(resp.Status)
	s.Equal(int64(1), resp.Affected)

	w = s.makeRequest("GET", "/api/task?isTrashed=all", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var all dto.TasksResponse
	s.decode(w, &all)
	s.Len(all.Tasks, 1)

	w = s.makeRequest("DELETE", "/api/task/delete-restore/?actionType=restoreAll", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &resp)
	s.Equal(int64(0), resp.Affected)

	w = s.makeRequest("DELETE", "/api/task/delete-restore/?actionType=delete", "", nil)
	s.requireError(w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = s.makeRequest("DELETE", "/api/task/delete-restore/"+drop.ID+"?actionType=restore", "", nil)
	s.requireError(w, http.StatusNotFound, "TASK_NOT_FOUND")
}

func (s *HandlerTestSuite) TestDashboard() {
	s.createTask(s.adminToken, []string{"u1"})
	s.createTask(s.adminToken, []string{"admin"})

	w := s.makeRequest("GET", "/api/task/dashboard", "", nil)
	s.requireError(w, http.StatusUnauthorized, "UNAUTHORIZED")

	w = s.makeRequest("GET", "/api/task/dashboard", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var admin dto.DashboardResponse
	s.decode(w, &admin)
	s.True(admin.Status)
	s.Equal(2, admin.TotalTasks)
	s.Len(admin.Last10Task, 2)
	s.Equal(2, admin.Tasks["todo"])
	s.Equal([]dto.GraphPoint{{Name: "high", Total: 2}}, admin.GraphData)
	s.Len(admin.Users, 2)

	w = s.makeRequest("GET", "/api/task/dashboard", s.memberToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var member dto.DashboardResponse
	s.decode(w, &member)
	s.Equal(1, member.TotalTasks)
	s.Empty(member.Users)
	s.Require().Len(member.Last10Task, 1)
	s.Equal("Bob", member.Last10Task[0].Team[0].Name)
}

func (s *HandlerTestSuite) TestHealthz() {
	w := s.makeRequest("GET", "/healthz", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestIndex() {
	w := s.makeRequest("GET", "/", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Taskboard API")

	w = s.makeRequest("GET", "/nope", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
