package service

import (
	"errors"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"
	"quizdesk_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// SubmissionService is the grading engine: it scores a student's answers
// against an assignment's question set and persists the result exactly once
// per (assignment, student) pair.
type SubmissionService struct {
	Repo           *repository.SubmissionRepository
	AssignmentRepo *repository.AssignmentRepository
}

func NewSubmissionService(repo *repository.SubmissionRepository, assignmentRepo *repository.AssignmentRepository) *SubmissionService {
	return &SubmissionService{
		Repo:           repo,
		AssignmentRepo: assignmentRepo,
	}
}

type AnswerInput struct {
	AssignmentID uint `json:"assignmentId" binding:"required"`
	QuestionID   uint `json:"questionId" binding:"required"`
	ChosenOption int  `json:"chosenOption" binding:"gte=0"`
}

type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

type SubmitResult struct {
	Score      int               `json:"score"`
	Submission *model.Submission `json:"submission"`
}

// Submit grades the answers and persists a submission with one answer row
// per recognized question. Answers naming a question outside the assignment
// are silently skipped and contribute nothing to the score.
func (s *SubmissionService) Submit(studentID uint, req SubmitRequest) (*SubmitResult, error) {
	assignmentID := req.Answers[0].AssignmentID

	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	if _, err := s.Repo.FindByAssignmentAndStudent(assignmentID, studentID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questions := make(map[uint]model.Question, len(assignment.Questions))
	for _, q := range assignment.Questions {
		questions[q.ID] = q
	}

	totalScore := 0
	var answerRows []model.SubmissionAnswer
	for _, ans := range req.Answers {
		q, ok := questions[ans.QuestionID]
		if !ok {
			continue
		}

		correct := ans.ChosenOption == q.CorrectAnswer
		score := 0
		if correct {
			score = 1
		}
		totalScore += score

		answerRows = append(answerRows, model.SubmissionAnswer{
			QuestionID:   q.ID,
			ChosenOption: ans.ChosenOption,
			IsCorrect:    correct,
			Score:        score,
		})
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Score:        totalScore,
	}

	if err := s.Repo.CreateWithAnswers(submission, answerRows); err != nil {
		// The unique index is the backstop for two submits racing past the
		// existence check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadySubmitted
		}
		return nil, err
	}

	monitoring.SubmissionsGraded.Inc()

	return &SubmitResult{Score: totalScore, Submission: submission}, nil
}

type AnswerGrade struct {
	AnswerID uint `json:"answerId" binding:"required"`
	Score    int  `json:"score"`
}

type RegradeRequest struct {
	SubmissionID uint          `json:"submissionId" binding:"required"`
	Grades       []AnswerGrade `json:"grades" binding:"required,min=1,dive"`
}

// Regrade overwrites per-answer scores and recomputes the submission total
// as the sum over all of its answer rows. Grades naming answers that do not
// belong to the submission are skipped.
func (s *SubmissionService) Regrade(req RegradeRequest) (int, error) {
	if _, err := s.Repo.FindByID(req.SubmissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrSubmissionNotFound
		}
		return 0, err
	}

	for _, g := range req.Grades {
		answer, err := s.Repo.FindAnswerByID(g.AnswerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return 0, err
		}
		if answer.SubmissionID != req.SubmissionID {
			continue
		}
		if err := s.Repo.UpdateAnswerScore(g.AnswerID, g.Score); err != nil {
			return 0, err
		}
	}

	total, err := s.Repo.SumAnswerScores(req.SubmissionID)
	if err != nil {
		return 0, err
	}

	if err := s.Repo.UpdateScore(req.SubmissionID, total); err != nil {
		return 0, err
	}

	return total, nil
}

func (s *SubmissionService) ListByAssignment(assignmentID uint) ([]repository.SubmissionView, error) {
	views, err := s.Repo.FindViewsByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, util.ErrNoSubmissions
	}
	return views, nil
}

func (s *SubmissionService) GetByID(id uint) (*repository.SubmissionView, error) {
	view, err := s.Repo.FindViewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return view, nil
}

func (s *SubmissionService) Delete(id uint) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubmissionNotFound
		}
		return err
	}
	return nil
}
