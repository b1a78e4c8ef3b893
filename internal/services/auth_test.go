package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openpress/openpress-backend/internal/requestdata"
	"github.com/openpress/openpress-backend/internal/types"
)

type fakeUserTokenRepo struct {
	mu     sync.Mutex
	tokens []*types.UserToken
}

func (f *fakeUserTokenRepo) Create(_ context.Context, _ *gorm.DB, tokens []*types.UserToken) ([]*types.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range tokens {
		if token.ID == uuid.Nil {
			token.ID = uuid.New()
		}
		f.tokens = append(f.tokens, token)
	}
	return tokens, nil
}

func (f *fakeUserTokenRepo) GetByUserIDs(_ context.Context, _ *gorm.DB, userIDs []uuid.UUID) ([]*types.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*types.UserToken
	for _, token := range f.tokens {
		for _, id := range userIDs {
			if token.UserID == id {
				results = append(results, token)
			}
		}
	}
	return results, nil
}

func (f *fakeUserTokenRepo) GetByAccessTokens(_ context.Context, _ *gorm.DB, accessTokens []string) ([]*types.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*types.UserToken
	for _, token := range f.tokens {
		for _, access := range accessTokens {
			if token.AccessToken == access {
				results = append(results, token)
			}
		}
	}
	return results, nil
}

func (f *fakeUserTokenRepo) GetByRefreshTokens(_ context.Context, _ *gorm.DB, refreshTokens []string) ([]*types.UserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var results []*types.UserToken
	for _, token := range f.tokens {
		for _, refresh := range refreshTokens {
			if token.RefreshToken == refresh {
				results = append(results, token)
			}
		}
	}
	return results, nil
}

func (f *fakeUserTokenRepo) DeleteByTokens(_ context.Context, _ *gorm.DB, tokens []*types.UserToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	remaining := f.tokens[:0]
	for _, existing := range f.tokens {
		keep := true
		for _, doomed := range tokens {
			if doomed != nil && existing.ID == doomed.ID {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, existing)
		}
	}
	f.tokens = remaining
	return nil
}

func newAuthFixture() (AuthService, *fakeUserRepo, *fakeUserTokenRepo) {
	userRepo := &fakeUserRepo{}
	tokenRepo := &fakeUserTokenRepo{}
	svc := NewAuthService(userRepo, tokenRepo, "test-secret", 60, 30, testLogger())
	return svc, userRepo, tokenRepo
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "ada@example.org", "ada", "correct horse", "Ada", "Lovelace")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Fatalf("registration must issue a token pair")
	}
	if registered.User.Password == "correct horse" {
		t.Fatalf("password must be stored hashed")
	}
	if registered.User.Name != "Ada Lovelace" {
		t.Fatalf("name: want=%q got=%q", "Ada Lovelace", registered.User.Name)
	}

	if _, err := svc.Register(ctx, "ada@example.org", "ada2", "password123", "", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email: want=%v got=%v", ErrEmailTaken, err)
	}

	if _, err := svc.Login(ctx, "ada@example.org", "wrong"); !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("bad password: want=%v got=%v", ErrInvalidLogin, err)
	}
	loggedIn, err := svc.Login(ctx, "ada@example.org", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.User.ID != registered.User.ID {
		t.Fatalf("login must resolve the registered user")
	}
}

func TestSetContextFromToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	result, err := svc.Register(ctx, "bob@example.org", "bob", "password123", "Bob", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	withSession, err := svc.SetContextFromToken(ctx, result.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if got := requestdata.PrincipalID(withSession); got != result.User.ID {
		t.Fatalf("principal: want=%s got=%s", result.User.ID, got)
	}

	if _, err := svc.SetContextFromToken(ctx, "not-a-token"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("garbage token: want=%v got=%v", ErrNoSession, err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture()
	ctx := context.Background()

	result, err := svc.Register(ctx, "eve@example.org", "eve", "password123", "", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Logout(ctx, result.AccessToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(tokenRepo.tokens) != 0 {
		t.Fatalf("logout must delete the token row, %d remain", len(tokenRepo.tokens))
	}
	if _, err := svc.SetContextFromToken(ctx, result.AccessToken); !errors.Is(err, ErrNoSession) {
		t.Fatalf("revoked token: want=%v got=%v", ErrNoSession, err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture()
	ctx := context.Background()

	result, err := svc.Register(ctx, "kim@example.org", "kim", "password123", "", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	refreshed, err := svc.Refresh(ctx, result.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.User.ID != result.User.ID {
		t.Fatalf("refresh must keep the same user")
	}
	if len(tokenRepo.tokens) != 1 {
		t.Fatalf("refresh must rotate the token row, %d remain", len(tokenRepo.tokens))
	}
	if _, err := svc.Refresh(ctx, result.RefreshToken); !errors.Is(err, ErrNoSession) {
		t.Fatalf("stale refresh token: want=%v got=%v", ErrNoSession, err)
	}
}
