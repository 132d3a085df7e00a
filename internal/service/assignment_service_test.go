package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/service"

	"gorm.io/gorm"
)

func newAssignmentService(db *gorm.DB) *service.AssignmentService {
	return service.NewAssignmentService(repository.NewAssignmentRepository(db), nil)
}

func TestCreateAssignmentLinksQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	a, err := svc.Create(7, service.AssignmentRequest{
		Title:       "Week 1 Quiz",
		CourseName:  "CS101",
		Description: "Basics",
		StartDate:   time.Now(),
		EndDate:     time.Now().Add(48 * time.Hour),
		Questions: []service.QuestionInput{
			{Text: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
			{Text: "Q2", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
			{Text: "Q3", Options: []string{"a", "b"}, CorrectAnswer: 1},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if a.ID == 0 {
		t.Fatal("expected assignment id to be assigned")
	}
	if a.LecturerID != 7 {
		t.Errorf("expected lecturer id 7, got %d", a.LecturerID)
	}
	for i, q := range a.Questions {
		if q.AssignmentID != a.ID {
			t.Errorf("question %d points at assignment %d, want %d", i, q.AssignmentID, a.ID)
		}
	}

	loaded, err := svc.GetByID(a.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(loaded.Questions) != 3 {
		t.Fatalf("expected 3 questions preloaded, got %d", len(loaded.Questions))
	}

	opts, err := loaded.Questions[1].OptionList()
	if err != nil {
		t.Fatalf("option decode failed: %v", err)
	}
	if len(opts) != 3 || opts[2] != "c" {
		t.Errorf("expected options [a b c], got %v", opts)
	}
}

func TestUpdateAssignmentPartial(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)
	a := seedAssignment(t, svc, []int{0})

	title := "Renamed Quiz"
	updated, err := svc.Update(a.ID, service.AssignmentUpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Title != "Renamed Quiz" {
		t.Errorf("expected title updated, got %q", updated.Title)
	}
	if updated.CourseName != a.CourseName {
		t.Errorf("course name changed to %q", updated.CourseName)
	}
	if updated.LecturerID != a.LecturerID {
		t.Errorf("lecturer changed to %d", updated.LecturerID)
	}
}

func TestUpdateUnknownAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	title := "x"
	_, err := svc.Update(99, service.AssignmentUpdateRequest{Title: &title})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteAssignmentCascadesQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)
	a := seedAssignment(t, svc, []int{0, 1, 2})

	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.GetByID(a.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected assignment gone, got %v", err)
	}

	qs, err := repository.NewQuestionRepository(db).FindByAssignment(a.ID)
	if err != nil {
		t.Fatalf("question lookup failed: %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("expected questions removed, found %d", len(qs))
	}
}

func TestDeleteUnknownAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)

	if err := svc.Delete(99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetAllWithoutCache(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)
	seedAssignment(t, svc, []int{0})
	seedAssignment(t, svc, []int{1})

	as, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all failed: %v", err)
	}
	if len(as) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(as))
	}
	for _, a := range as {
		if len(a.Questions) != 1 {
			t.Errorf("assignment %d: expected questions preloaded, got %d", a.ID, len(a.Questions))
		}
	}
}

// Deleting an assignment never touches its submissions; results stay
// queryable for the audit trail.
func TestDeleteAssignmentKeepsSubmissions(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(db)
	a := seedAssignment(t, svc, []int{0})

	subSvc, _ := newSubmissionService(db)
	result, err := subSvc.Submit(42, submitAnswers(a, []int{0}))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.Delete(a.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var stored model.Submission
	if err := db.First(&stored, result.Submission.ID).Error; err != nil {
		t.Errorf("expected submission to survive assignment delete: %v", err)
	}
}
