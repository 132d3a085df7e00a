package service

import (
	"context"
	"encoding/json"
	"time"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	assignmentListCacheKey = "assignments:all"
	assignmentListCacheTTL = 5 * time.Minute
)

type AssignmentService struct {
	Repo  *repository.AssignmentRepository
	Redis *redis.Client
}

func NewAssignmentService(repo *repository.AssignmentRepository, rdb *redis.Client) *AssignmentService {
	return &AssignmentService{Repo: repo, Redis: rdb}
}

type QuestionInput struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"gte=0"`
}

type AssignmentRequest struct {
	Title       string          `json:"title" binding:"required"`
	CourseName  string          `json:"courseName" binding:"required"`
	Description string          `json:"description"`
	StartDate   time.Time       `json:"startDate" binding:"required"`
	EndDate     time.Time       `json:"endDate" binding:"required"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

func (s *AssignmentService) Create(lecturerID uint, req AssignmentRequest) (*model.Assignment, error) {
	a := &model.Assignment{
		LecturerID:  lecturerID,
		Title:       req.Title,
		CourseName:  req.CourseName,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return nil, err
		}
		questions[i] = model.Question{
			Text:          q.Text,
			Options:       opts,
			CorrectAnswer: q.CorrectAnswer,
		}
	}

	if err := s.Repo.CreateWithQuestions(a, questions); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return a, nil
}

func (s *AssignmentService) GetAll(ctx context.Context) ([]model.Assignment, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, assignmentListCacheKey).Result(); err == nil {
			var as []model.Assignment
			if err := json.Unmarshal([]byte(cached), &as); err == nil {
				return as, nil
			}
		}
	}

	as, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(as); err == nil {
			if err := s.Redis.Set(ctx, assignmentListCacheKey, payload, assignmentListCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache assignment list", zap.Error(err))
			}
		}
	}

	return as, nil
}

func (s *AssignmentService) GetByID(id uint) (*model.Assignment, error) {
	return s.Repo.FindByID(id)
}

type AssignmentUpdateRequest struct {
	Title       *string    `json:"title"`
	CourseName  *string    `json:"courseName"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Update applies the provided fields. The owning lecturer never changes.
func (s *AssignmentService) Update(id uint, req AssignmentUpdateRequest) (*model.Assignment, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.CourseName != nil {
		a.CourseName = *req.CourseName
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.StartDate != nil {
		a.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		a.EndDate = *req.EndDate
	}

	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return a, nil
}

func (s *AssignmentService) Delete(id uint) error {
	if err := s.Repo.DeleteWithQuestions(id); err != nil {
		return err
	}
	s.invalidateListCache()
	return nil
}

// InvalidateListCache drops the cached public assignment list. Question
// mutations call this too, since the list carries questions inline.
func (s *AssignmentService) InvalidateListCache() {
	s.invalidateListCache()
}

func (s *AssignmentService) invalidateListCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), assignmentListCacheKey).Err(); err != nil && err != redis.Nil {
		logger.Log.Warn("failed to invalidate assignment cache", zap.Error(err))
	}
}
