package service_test

import (
	"errors"
	"testing"

	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"gorm.io/gorm"
)

func newQuestionService(db *gorm.DB) (*service.QuestionService, *service.AssignmentService) {
	assignmentRepo := repository.NewAssignmentRepository(db)
	assignments := service.NewAssignmentService(assignmentRepo, nil)
	return service.NewQuestionService(repository.NewQuestionRepository(db), assignmentRepo, assignments), assignments
}

func TestCreateQuestionRequiresAssignment(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newQuestionService(db)

	_, err := svc.Create(service.QuestionRequest{
		AssignmentID:  99,
		Text:          "Q",
		Options:       []string{"a", "b"},
		CorrectAnswer: 0,
	})
	if !errors.Is(err, util.ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestCreateQuestionGrowsAssignment(t *testing.T) {
	db := newTestDB(t)
	svc, assignments := newQuestionService(db)
	a := seedAssignment(t, assignments, []int{0})

	q, err := svc.Create(service.QuestionRequest{
		AssignmentID:  a.ID,
		Text:          "Added later",
		Options:       []string{"a", "b", "c"},
		CorrectAnswer: 2,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if q.AssignmentID != a.ID {
		t.Errorf("question points at assignment %d, want %d", q.AssignmentID, a.ID)
	}

	qs, err := svc.GetByAssignment(a.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("expected 2 questions, got %d", len(qs))
	}

	loaded, err := assignments.GetByID(a.ID)
	if err != nil {
		t.Fatalf("get assignment failed: %v", err)
	}
	if len(loaded.Questions) != 2 {
		t.Errorf("expected question preloaded into assignment, got %d", len(loaded.Questions))
	}
}

func TestUpdateQuestionPartial(t *testing.T) {
	db := newTestDB(t)
	svc, assignments := newQuestionService(db)
	a := seedAssignment(t, assignments, []int{0})

	correct := 1
	updated, err := svc.Update(a.Questions[0].ID, service.QuestionUpdateRequest{CorrectAnswer: &correct})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CorrectAnswer != 1 {
		t.Errorf("expected correct answer 1, got %d", updated.CorrectAnswer)
	}
	if updated.Text != a.Questions[0].Text {
		t.Errorf("text changed to %q", updated.Text)
	}
}

func TestUpdateUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newQuestionService(db)

	text := "x"
	_, err := svc.Update(99, service.QuestionUpdateRequest{Text: &text})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	svc, assignments := newQuestionService(db)
	a := seedAssignment(t, assignments, []int{0, 1})

	if err := svc.Delete(a.Questions[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	qs, err := svc.GetByAssignment(a.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(qs) != 1 {
		t.Errorf("expected 1 question left, got %d", len(qs))
	}
}

func TestDeleteUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newQuestionService(db)

	if err := svc.Delete(99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}
