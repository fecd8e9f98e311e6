package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"tuiter/internal/dto"
	"tuiter/internal/entity"
	"tuiter/internal/middleware"
	"tuiter/internal/repository"
	"tuiter/internal/search"
	"tuiter/pkg/apperror"
)

type AuthService interface {
	Signup(ctx context.Context, input dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error)
	// Logout revokes the token until its natural expiry.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

type authService struct {
	repo        repository.UserRepository
	redisClient *redis.Client
	searchSvc   search.SearchService
	secret      string
	tokenTTL    time.Duration
}

func NewAuthService(repo repository.UserRepository, redisClient *redis.Client, searchSvc search.SearchService, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:        repo,
		redisClient: redisClient,
		searchSvc:   searchSvc,
		secret:      secret,
		tokenTTL:    tokenTTL,
	}
}

func (s *authService) Signup(ctx context.Context, input dto.SignupRequest) (*dto.AuthResponse, error) {
	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, fmt.Errorf("username %q is taken: %w", input.Username, apperror.ErrConflict)
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("email %q is taken: %w", input.Email, apperror.ErrConflict)
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.searchSvc != nil {
		if err := s.searchSvc.IndexUser(user); err != nil {
			log.Printf("failed to index user %s: %v", user.ID, err)
		}
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s.redisClient == nil || tokenID == "" {
		return nil
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return s.redisClient.Set(ctx, middleware.DenylistKey(tokenID), "1", ttl).Err()
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
		User:        user,
	}, nil
}
