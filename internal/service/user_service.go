package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo       *repository.UserRepository
	SubmissionRepo *repository.SubmissionRepository
	Storage        *StorageService
}

func NewUserService(userRepo *repository.UserRepository, submissionRepo *repository.SubmissionRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo:       userRepo,
		SubmissionRepo: submissionRepo,
		Storage:        storage,
	}
}

func (s *UserService) GetUsers() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

func (s *UserService) DeleteUser(id uint) error {
	if err := s.UserRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return nil
}

// Profile is the caller's submission history, joined with assignment titles.
type Profile struct {
	Submissions []repository.SubmissionView `json:"submissions"`
}

func (s *UserService) GetProfile(userID uint) (*Profile, error) {
	views, err := s.SubmissionRepo.FindViewsByStudent(userID)
	if err != nil {
		return nil, err
	}
	return &Profile{Submissions: views}, nil
}

// UpdateAvatar stores the uploaded image and points the user record at it.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeImage}); err != nil {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	filename := "avatars/" + uuid.New().String() + filepath.Ext(file.Filename)
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateImage(userID, url); err != nil {
		return "", err
	}

	return url, nil
}
