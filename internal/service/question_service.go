package service

import (
	"encoding/json"
	"errors"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo           *repository.QuestionRepository
	AssignmentRepo *repository.AssignmentRepository
	Assignments    *AssignmentService
}

func NewQuestionService(repo *repository.QuestionRepository, assignmentRepo *repository.AssignmentRepository, assignments *AssignmentService) *QuestionService {
	return &QuestionService{
		Repo:           repo,
		AssignmentRepo: assignmentRepo,
		Assignments:    assignments,
	}
}

type QuestionRequest struct {
	AssignmentID  uint     `json:"assignmentId" binding:"required"`
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"gte=0"`
}

// Create adds a question to an existing assignment. The assignment's
// question set grows by the has-many association; no back-link write is
// needed beyond the question row itself.
func (s *QuestionService) Create(req QuestionRequest) (*model.Question, error) {
	if _, err := s.AssignmentRepo.FindByID(req.AssignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	opts, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		AssignmentID:  req.AssignmentID,
		Text:          req.Text,
		Options:       opts,
		CorrectAnswer: req.CorrectAnswer,
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}

	s.Assignments.InvalidateListCache()
	return q, nil
}

func (s *QuestionService) GetByAssignment(assignmentID uint) ([]model.Question, error) {
	return s.Repo.FindByAssignment(assignmentID)
}

func (s *QuestionService) GetByID(id uint) (*model.Question, error) {
	return s.Repo.FindByID(id)
}

type QuestionUpdateRequest struct {
	Text          *string  `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
}

func (s *QuestionService) Update(id uint, req QuestionUpdateRequest) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		q.Text = *req.Text
	}
	if req.Options != nil {
		opts, err := json.Marshal(req.Options)
		if err != nil {
			return nil, err
		}
		q.Options = opts
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}

	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}

	s.Assignments.InvalidateListCache()
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Assignments.InvalidateListCache()
	return nil
}
