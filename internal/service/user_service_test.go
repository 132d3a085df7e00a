package service_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *service.UserService {
	return service.NewUserService(
		repository.NewUserRepository(db),
		repository.NewSubmissionRepository(db),
		nil,
	)
}

func TestGetProfileListsOwnSubmissions(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	alice := &model.User{Username: "alice", Password: "x", Role: model.Student}
	bob := &model.User{Username: "bob", Password: "x", Role: model.Student}
	userRepo := repository.NewUserRepository(db)
	for _, u := range []*model.User{alice, bob} {
		if err := userRepo.Create(u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	subSvc, assignments := newSubmissionService(db)
	a := seedAssignment(t, assignments, []int{0})
	if _, err := subSvc.Submit(alice.ID, submitAnswers(a, []int{0})); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := subSvc.Submit(bob.ID, submitAnswers(a, []int{1})); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	profile, err := svc.GetProfile(alice.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if len(profile.Submissions) != 1 {
		t.Fatalf("expected 1 submission in profile, got %d", len(profile.Submissions))
	}
	if profile.Submissions[0].StudentID != alice.ID {
		t.Errorf("profile holds someone else's submission (student %d)", profile.Submissions[0].StudentID)
	}
	if profile.Submissions[0].AssignmentTitle != a.Title {
		t.Errorf("expected assignment title %q, got %q", a.Title, profile.Submissions[0].AssignmentTitle)
	}
}

func TestGetProfileEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	profile, err := svc.GetProfile(42)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if len(profile.Submissions) != 0 {
		t.Errorf("expected empty profile, got %d submissions", len(profile.Submissions))
	}
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	user := &model.User{Username: "alice", Password: "x", Role: model.Student}
	if err := repository.NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if err := svc.DeleteUser(user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err := repository.NewUserRepository(db).FindByID(user.ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected user gone, got %v", err)
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	if err := svc.DeleteUser(99); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUsersHidesPasswords(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	if err := repository.NewUserRepository(db).Create(&model.User{Username: "alice", Password: "hash", Role: model.Student}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	users, err := svc.GetUsers()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}

	payload, err := json.Marshal(users[0])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(payload), "hash") || strings.Contains(string(payload), "password") {
		t.Errorf("password leaked in serialized user: %s", payload)
	}
}
