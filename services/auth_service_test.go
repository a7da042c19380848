package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akinalp/melodi/database"
	"github.com/akinalp/melodi/models"
	"github.com/akinalp/melodi/pkg"
	"github.com/akinalp/melodi/repository"
)

func newTestAuthService(db *database.DB) AuthService {
	return NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		repository.NewSQLiteBanRepo(db.Conn),
		"test-secret",
		15, // access: dakika
		7,  // refresh: gün
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &models.CreateUserRequest{
		Username: "alice",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("Register returned empty tokens")
	}
	if tokens.User.AccessLevelID != models.DefaultAccessLevelID {
		t.Errorf("AccessLevelID = %d, want default %d", tokens.User.AccessLevelID, models.DefaultAccessLevelID)
	}
	if tokens.User.AccessLevel == nil {
		t.Error("registered user missing joined access level")
	}
	if tokens.User.PasswordHash != "" {
		t.Error("password hash leaked in register response")
	}

	// Aynı username ile ikinci kayıt reddedilir.
	if _, err := svc.Register(ctx, &models.CreateUserRequest{Username: "alice", Password: "password123"}); !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Errorf("duplicate register error = %v, want ErrAlreadyExists", err)
	}

	logged, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	claims, err := svc.ValidateAccessToken(logged.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken error: %v", err)
	}
	if claims.UserID != tokens.User.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, tokens.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.CreateUserRequest{Username: "alice", Password: "password123"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "wrong-password"}); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("login error = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "ghost", Password: "password123"}); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("unknown user login error = %v, want ErrUnauthorized", err)
	}
}

func TestLoginBannedUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &models.CreateUserRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	admin := createTestUser(t, db, "admin", models.AdminAccessLevelID)
	moderation := NewModerationService(db.Conn, repository.NewSQLiteBanRepo(db.Conn), &capturingHub{}, nil)
	if decision, err := moderation.BanUser(ctx, tokens.User.ID, admin.ID, banRequest("spam", time.Hour)); err != nil || !decision.Allowed() {
		t.Fatalf("ban: decision=%v err=%v", decision, err)
	}

	// Banlı kullanıcı doğru şifreyle bile giremez.
	if _, err := svc.Login(ctx, &models.LoginRequest{Username: "alice", Password: "password123"}); !errors.Is(err, pkg.ErrForbidden) {
		t.Errorf("banned login error = %v, want ErrForbidden", err)
	}

	// Ban öncesi alınan refresh token da çalışmaz — ban session'ları sildi.
	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("banned refresh error = %v, want ErrUnauthorized", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &models.CreateUserRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	rotated, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Error("refresh token not rotated")
	}

	// Eski refresh token artık geçersiz.
	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("stale refresh error = %v, want ErrUnauthorized", err)
	}

	// Yenisi geçerli.
	if _, err := svc.RefreshToken(ctx, rotated.RefreshToken); err != nil {
		t.Errorf("rotated refresh error: %v", err)
	}
}

func TestLogout(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)
	ctx := context.Background()

	tokens, err := svc.Register(ctx, &models.CreateUserRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := svc.Logout(ctx, tokens.RefreshToken); err != nil {
		t.Fatalf("Logout error: %v", err)
	}

	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Errorf("refresh after logout error = %v, want ErrUnauthorized", err)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := svc.ValidateAccessToken(token); err == nil {
			t.Errorf("ValidateAccessToken(%q) succeeded, want error", token)
		}
	}
}
