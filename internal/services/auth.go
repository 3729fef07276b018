package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/repos"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type RegisterInput struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	EnglishLevel   string `json:"english_level"`
	NativeLanguage string `json:"native_language"`
}

type AuthResult struct {
	User         *types.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db        *gorm.DB
	userRepo  repos.UserRepo
	tokenRepo repos.UserTokenRepo
	avatars   AvatarImageService
	cfg       AuthConfig
	log       *logger.Logger
}

func NewAuthService(db *gorm.DB, userRepo repos.UserRepo, tokenRepo repos.UserTokenRepo, avatars AvatarImageService, cfg AuthConfig, baseLog *logger.Logger) AuthService {
	return &authService{
		db:        db,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		avatars:   avatars,
		cfg:       cfg,
		log:       baseLog.With("service", "AuthService"),
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", apperr.ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperr.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	level := input.EnglishLevel
	if level == "" {
		level = types.DifficultyBeginner
	}
	user := &types.User{
		ID:             uuid.New(),
		Email:          input.Email,
		PasswordHash:   string(hash),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           "user",
		EnglishLevel:   level,
		NativeLanguage: input.NativeLanguage,
	}
	user.Preferences = datatypes.NewJSONType(types.DefaultPreferences())
	user.Subscription = datatypes.NewJSONType(types.DefaultSubscription())
	user.Stats = datatypes.NewJSONType(types.DefaultStats(level))

	var result *AuthResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.GetByEmail(ctx, tx, input.Email); err == nil {
			return fmt.Errorf("%w: email already registered", apperr.ErrValidation)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		r, err := s.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.avatars != nil {
		if key, url, err := s.avatars.Generate(ctx, user); err != nil {
			s.log.Warn("Failed to generate profile avatar", "user_id", user.ID, "error", err)
		} else {
			user.AvatarKey = key
			user.ProfileImageURL = url
			if err := s.userRepo.Update(ctx, nil, user); err != nil {
				s.log.Warn("Failed to persist avatar key", "user_id", user.ID, "error", err)
			}
		}
	}
	return result, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrUnauthorized
	}

	var result *AuthResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		r, err := s.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Refresh rotates the refresh token: the presented row is revoked and a new
// one issued in the same transaction.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	token, err := s.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if !token.Valid(time.Now().UTC()) {
		return nil, apperr.ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, nil, token.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}

	var result *AuthResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.Revoke(ctx, tx, token.ID); err != nil {
			return err
		}
		r, err := s.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	token, err := s.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.tokenRepo.Revoke(ctx, nil, token.ID)
}

// SetContextFromToken validates a bearer token and threads the caller's
// identity into the context.
func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, apperr.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apperr.ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return ctx, apperr.ErrUnauthorized
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
	}), nil
}

func (s *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*AuthResult, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.AccessTokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := randomToken()
	if err != nil {
		return nil, err
	}
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, tx, row); err != nil {
		return nil, err
	}
	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
