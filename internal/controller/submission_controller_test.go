package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizdesk_backend/internal/controller"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"
	"quizdesk_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupSubmissionAPI wires the submission routes behind a stub identity so
// handler behavior can be exercised without a real token exchange.
func setupSubmissionAPI(t *testing.T, studentID uint) (*gin.Engine, *service.AssignmentService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	submissionRepo := repository.NewSubmissionRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	assignments := service.NewAssignmentService(assignmentRepo, nil)
	ctrl := controller.NewSubmissionController(service.NewSubmissionService(submissionRepo, assignmentRepo))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: studentID, Username: "alice", Role: model.Student})
	})
	r.POST("/api/submissions", ctrl.Submit)
	r.PATCH("/api/submissions/grade", ctrl.Regrade)
	r.GET("/api/submissions/:id", ctrl.GetByID)

	return r, assignments
}

func postJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedQuiz(t *testing.T, assignments *service.AssignmentService, correct []int) *model.Assignment {
	t.Helper()

	questions := make([]service.QuestionInput, len(correct))
	for i, c := range correct {
		questions[i] = service.QuestionInput{
			Text:          "question",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: c,
		}
	}
	a, err := assignments.Create(1, service.AssignmentRequest{
		Title:      "Quiz",
		CourseName: "CS101",
		StartDate:  time.Now(),
		EndDate:    time.Now().Add(24 * time.Hour),
		Questions:  questions,
	})
	if err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
	return a
}

func submitBody(a *model.Assignment, chosen []int) map[string]interface{} {
	answers := make([]map[string]interface{}, len(chosen))
	for i, c := range chosen {
		answers[i] = map[string]interface{}{
			"assignmentId": a.ID,
			"questionId":   a.Questions[i].ID,
			"chosenOption": c,
		}
	}
	return map[string]interface{}{"answers": answers}
}

func TestSubmitEndpointGradesAndConflicts(t *testing.T) {
	r, assignments := setupSubmissionAPI(t, 42)
	a := seedQuiz(t, assignments, []int{0, 1, 2})

	w := postJSON(r, http.MethodPost, "/api/submissions", submitBody(a, []int{0, 1, 3}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Score int `json:"score"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != http.StatusCreated {
		t.Errorf("expected envelope code 201, got %d", resp.Code)
	}
	if resp.Data.Score != 2 {
		t.Errorf("expected score 2, got %d", resp.Data.Score)
	}

	// Same student again: the one-attempt rule answers with a conflict.
	w = postJSON(r, http.MethodPost, "/api/submissions", submitBody(a, []int{0, 1, 2}))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestSubmitEndpointUnknownAssignment(t *testing.T) {
	r, _ := setupSubmissionAPI(t, 42)

	body := map[string]interface{}{"answers": []map[string]interface{}{
		{"assignmentId": 999, "questionId": 1, "chosenOption": 0},
	}}
	w := postJSON(r, http.MethodPost, "/api/submissions", body)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSubmitEndpointRejectsEmptyAnswers(t *testing.T) {
	r, _ := setupSubmissionAPI(t, 42)

	w := postJSON(r, http.MethodPost, "/api/submissions", map[string]interface{}{
		"answers": []map[string]interface{}{},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRegradeEndpointReturnsTotal(t *testing.T) {
	r, assignments := setupSubmissionAPI(t, 42)
	a := seedQuiz(t, assignments, []int{0})

	w := postJSON(r, http.MethodPost, "/api/submissions", submitBody(a, []int{0}))
	if w.Code != http.StatusCreated {
		t.Fatalf("submit failed: %d", w.Code)
	}

	var created struct {
		Data struct {
			Submission model.Submission `json:"submission"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	sub := created.Data.Submission

	w = postJSON(r, http.MethodPatch, "/api/submissions/grade", map[string]interface{}{
		"submissionId": sub.ID,
		"grades": []map[string]interface{}{
			{"answerId": sub.Answers[0].ID, "score": 10},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var regraded struct {
		Data struct {
			TotalScore int `json:"totalScore"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &regraded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if regraded.Data.TotalScore != 10 {
		t.Errorf("expected total 10, got %d", regraded.Data.TotalScore)
	}
}

func TestGetSubmissionEndpointNotFound(t *testing.T) {
	r, _ := setupSubmissionAPI(t, 42)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/submissions/%d", 999), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
