package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

func newAuthService(gdb *gorm.DB) AuthService {
	log := testLog()
	cfg := AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
	return NewAuthService(gdb, repos.NewUserRepo(gdb, log), repos.NewUserTokenRepo(gdb, log), nil, cfg, log)
}

func TestRegisterValidation(t *testing.T) {
	gdb := testDB(t)
	authSvc := newAuthService(gdb)
	ctx := context.Background()

	if _, err := authSvc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "longenough"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad email: want=ErrValidation got=%v", err)
	}
	if _, err := authSvc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "short"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("short password: want=ErrValidation got=%v", err)
	}
}

func TestRegisterSetsDefaultsAndRejectsDuplicates(t *testing.T) {
	gdb := testDB(t)
	authSvc := newAuthService(gdb)
	ctx := context.Background()

	result, err := authSvc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "correcthorse", FirstName: "Maria"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("registration must issue both tokens")
	}
	if result.User.PasswordHash == "correcthorse" {
		t.Fatalf("password stored in the clear")
	}
	prefs := result.User.Preferences.Data()
	if !prefs.RAGEnabled || prefs.Difficulty != types.DifficultyBeginner {
		t.Fatalf("default preferences: %+v", prefs)
	}
	if sub := result.User.Subscription.Data(); sub.Plan != "free" || sub.Status != "active" {
		t.Fatalf("default subscription: %+v", sub)
	}
	if stats := result.User.Stats.Data(); stats.CurrentLevel != types.DifficultyBeginner {
		t.Fatalf("default stats level: %q", stats.CurrentLevel)
	}

	if _, err := authSvc.Register(ctx, RegisterInput{Email: "maria@example.com", Password: "correcthorse"}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("duplicate email: want=ErrValidation got=%v", err)
	}
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	gdb := testDB(t)
	authSvc := newAuthService(gdb)
	ctx := context.Background()

	if _, err := authSvc.Register(ctx, RegisterInput{Email: "kenji@example.com", Password: "correcthorse"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := authSvc.Login(ctx, "kenji@example.com", "wrongpassword"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password: want=ErrUnauthorized got=%v", err)
	}
	if _, err := authSvc.Login(ctx, "nobody@example.com", "correcthorse"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown email: want=ErrUnauthorized got=%v", err)
	}

	result, err := authSvc.Login(ctx, "kenji@example.com", "correcthorse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authedCtx, err := authSvc.SetContextFromToken(ctx, result.AccessToken)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	if requestdata.UserID(authedCtx) != result.User.ID {
		t.Fatalf("context carries wrong user")
	}
	if _, err := authSvc.SetContextFromToken(ctx, "garbage.token.here"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("garbage token: want=ErrUnauthorized got=%v", err)
	}
}

func TestRefreshRotatesTheToken(t *testing.T) {
	gdb := testDB(t)
	authSvc := newAuthService(gdb)
	ctx := context.Background()

	registered, err := authSvc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "correcthorse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := authSvc.Refresh(ctx, registered.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Fatalf("refresh must rotate the token")
	}

	// The presented token is revoked in the same transaction.
	if _, err := authSvc.Refresh(ctx, registered.RefreshToken); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("replayed token: want=ErrUnauthorized got=%v", err)
	}
	if _, err := authSvc.Refresh(ctx, refreshed.RefreshToken); err != nil {
		t.Fatalf("rotated token should work: %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	gdb := testDB(t)
	authSvc := newAuthService(gdb)
	ctx := context.Background()

	result, err := authSvc.Register(ctx, RegisterInput{Email: "li@example.com", Password: "correcthorse"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := authSvc.Logout(ctx, result.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := authSvc.Refresh(ctx, result.RefreshToken); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("refresh after logout: want=ErrUnauthorized got=%v", err)
	}

	// Logging out an unknown token is a no-op, not an error.
	if err := authSvc.Logout(ctx, "never-issued"); err != nil {
		t.Fatalf("unknown token logout: %v", err)
	}
}
