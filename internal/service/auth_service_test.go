package service_test

import (
	"errors"
	"testing"
	"time"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *service.AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return service.NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Username: "alice", Password: "s3cret", Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored, err := repository.NewUserRepository(db).FindByUsername("alice")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.Password == "s3cret" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if err := svc.Register(&model.User{Username: "alice", Password: "x", Role: model.Student}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	err := svc.Register(&model.User{Username: "alice", Password: "y", Role: model.Lecturer})
	if !errors.Is(err, util.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Username: "bob", Password: "hunter2", Role: model.Lecturer}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login("bob", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Role != model.Lecturer {
		t.Errorf("expected role LECTURER, got %s", result.Role)
	}

	claims, err := util.ParseJWT(result.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected claim user id %d, got %d", user.ID, claims.UserID)
	}
	if claims.Username != "bob" {
		t.Errorf("expected claim username bob, got %q", claims.Username)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if err := svc.Register(&model.User{Username: "bob", Password: "hunter2", Role: model.Student}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login("bob", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Login("nobody", "x"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
