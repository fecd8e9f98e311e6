package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/pkg/apperror"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error)
	Following(ctx context.Context, userID uuid.UUID) ([]*entity.User, error)
	Followers(ctx context.Context, userID uuid.UUID) ([]*entity.User, error)
}

type followService struct {
	repo     repository.FollowRepository
	userRepo repository.UserRepository
}

func NewFollowService(repo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{repo: repo, userRepo: userRepo}
}

func (s *followService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return fmt.Errorf("cannot follow yourself: %w", apperror.ErrBadRequest)
	}

	exists, err := s.userRepo.Exists(ctx, followeeID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user to follow: %w", apperror.ErrNotFound)
	}

	return s.repo.Create(ctx, followerID, followeeID)
}

func (s *followService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error) {
	return s.repo.Delete(ctx, followerID, followeeID)
}

func (s *followService) Following(ctx context.Context, userID uuid.UUID) ([]*entity.User, error) {
	return s.repo.FindFollowing(ctx, userID)
}

func (s *followService) Followers(ctx context.Context, userID uuid.UUID) ([]*entity.User, error) {
	return s.repo.FindFollowers(ctx, userID)
}
