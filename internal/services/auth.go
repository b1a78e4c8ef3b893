package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/openpress/openpress-backend/internal/logger"
	"github.com/openpress/openpress-backend/internal/repos"
	"github.com/openpress/openpress-backend/internal/requestdata"
	"github.com/openpress/openpress-backend/internal/types"
)

type AuthResult struct {
	User         *types.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type AuthService interface {
	Register(ctx context.Context, email, username, password, firstName, lastName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, accessToken string) error
	// SetContextFromToken validates the token, confirms it has not been
	// revoked, and attaches the principal to the returned context.
	SetContextFromToken(ctx context.Context, accessToken string) (context.Context, error)
}

type authService struct {
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	secret        []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	log           *logger.Logger
}

func NewAuthService(userRepo repos.UserRepo, userTokenRepo repos.UserTokenRepo, secret string, accessTTLMinutes, refreshTTLDays int, baseLog *logger.Logger) AuthService {
	return &authService{
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		secret:        []byte(secret),
		accessTTL:     time.Duration(accessTTLMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshTTLDays) * 24 * time.Hour,
		log:           baseLog.With("service", "AuthService"),
	}
}

func (as *authService) Register(ctx context.Context, email, username, password, firstName, lastName string) (*AuthResult, error) {
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	users, err := as.userRepo.Create(ctx, nil, []*types.User{{
		Email:     email,
		Username:  username,
		Password:  string(hash),
		Name:      strings.TrimSpace(firstName + " " + lastName),
		FirstName: firstName,
		LastName:  lastName,
	}})
	if err != nil {
		return nil, err
	}
	return as.issueTokens(ctx, users[0])
}

func (as *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrInvalidLogin
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidLogin
	}
	return as.issueTokens(ctx, user)
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	tokens, err := as.userTokenRepo.GetByRefreshTokens(ctx, nil, []string{refreshToken})
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrNoSession
	}
	token := tokens[0]
	if time.Now().After(token.ExpiresAt) {
		if delErr := as.userTokenRepo.DeleteByTokens(ctx, nil, tokens); delErr != nil {
			as.log.Warn("failed to purge expired token", "error", delErr)
		}
		return nil, ErrNoSession
	}
	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{token.UserID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoSession
	}
	if err := as.userTokenRepo.DeleteByTokens(ctx, nil, tokens); err != nil {
		return nil, err
	}
	return as.issueTokens(ctx, users[0])
}

func (as *authService) Logout(ctx context.Context, accessToken string) error {
	tokens, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{accessToken})
	if err != nil {
		return err
	}
	return as.userTokenRepo.DeleteByTokens(ctx, nil, tokens)
}

func (as *authService) SetContextFromToken(ctx context.Context, accessToken string) (context.Context, error) {
	userID, err := as.parseToken(accessToken)
	if err != nil {
		return ctx, ErrNoSession
	}
	tokens, err := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{accessToken})
	if err != nil {
		return ctx, err
	}
	if len(tokens) == 0 {
		return ctx, ErrNoSession
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: accessToken,
		UserID:      userID,
	}), nil
}

func (as *authService) issueTokens(ctx context.Context, user *types.User) (*AuthResult, error) {
	now := time.Now()
	accessToken, err := as.signToken(user.ID, now, now.Add(as.accessTTL))
	if err != nil {
		return nil, err
	}
	refreshToken, err := as.signToken(user.ID, now, now.Add(as.refreshTTL))
	if err != nil {
		return nil, err
	}
	if _, err := as.userTokenRepo.Create(ctx, nil, []*types.UserToken{{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}}); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) signToken(userID uuid.UUID, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (as *authService) parseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}
	return uuid.Parse(claims.Subject)
}
