package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cyber_champions/internal/common"
	"cyber_champions/internal/common/security"
	"cyber_champions/internal/domain/model"
)

func init() {
	security.InitJWT([]byte("service-test-secret"), time.Hour)
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Role != model.RoleUser || resp.User.Password != "" || resp.Token == "" {
		t.Errorf("unexpected response: %+v", resp.User)
	}
	stored := repo.users[resp.User.ID].Password
	if !security.IsHashed(stored) || !security.CheckPassword("hunter22", stored) {
		t.Errorf("stored password is not a bcrypt hash of the input: %q", stored)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{Username: "alice", Email: "other@example.com", Password: "x"})
	if !errors.Is(err, common.ErrAlreadyExists) || err.Error() != msgUserTaken {
		t.Errorf("expected duplicate error %q, got %v", msgUserTaken, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	tests := []RegisterRequest{
		{Username: "", Email: "a@b.uz", Password: "p"},
		{Username: "bob", Email: "not-an-email", Password: "p"},
		{Username: "bob", Email: "bob@b.uz", Password: ""},
		// 40 Cyrillic letters are 80 bytes, past bcrypt's limit.
		{Username: "bob", Email: "bob@b.uz", Password: strings.Repeat("ш", 40)},
	}
	for _, req := range tests {
		if _, err := svc.Register(context.Background(), req); common.HTTPStatusFromError(err) != 400 {
			t.Errorf("%+v: expected a 400 error, got %v", req, err)
		}
	}
}

func TestLoginUpgradesLegacyPassword(t *testing.T) {
	repo := newFakeUserRepo(model.User{ID: 7, Username: "legacy", Email: "l@cyber.uz", Password: "plain123", Role: model.RoleUser})
	svc := NewAuthService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "legacy", Password: "plain123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.ID != 7 || resp.User.Password != "" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
	if !security.IsHashed(repo.updated[7]) {
		t.Errorf("expected plaintext password to be rehashed, got %q", repo.updated[7])
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Username: "legacy", Password: "plain123"}); err != nil {
		t.Errorf("login after upgrade: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := security.HashPassword("right")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewAuthService(newFakeUserRepo(model.User{ID: 1, Username: "eve", Password: hash, Role: model.RoleUser}))

	for _, req := range []LoginRequest{
		{Username: "eve", Password: "wrong"},
		{Username: "ghost", Password: "right"},
		{Username: "eve", Password: ""},
	} {
		_, err := svc.Login(context.Background(), req)
		if !errors.Is(err, common.ErrUnauthorized) || err.Error() != msgBadCredentials {
			t.Errorf("%+v: expected %q, got %v", req, msgBadCredentials, err)
		}
	}
}

func TestRegisterAcceptsMultiBytePasswordWithinLimit(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	password := strings.Repeat("ш", 36) // 72 bytes
	if _, err := svc.Register(context.Background(), RegisterRequest{Username: "botir", Email: "botir@cyber.uz", Password: password}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Username: "botir", Password: password}); err != nil {
		t.Errorf("login with the same password: %v", err)
	}
}
