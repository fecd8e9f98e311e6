package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/pkg/apperror"
)

type BookmarkService interface {
	Bookmark(ctx context.Context, userID, tuitID uuid.UUID) error
	Unbookmark(ctx context.Context, userID, tuitID uuid.UUID) (int64, error)
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error)
}

type bookmarkService struct {
	repo     repository.BookmarkRepository
	tuitRepo repository.TuitRepository
}

func NewBookmarkService(repo repository.BookmarkRepository, tuitRepo repository.TuitRepository) BookmarkService {
	return &bookmarkService{repo: repo, tuitRepo: tuitRepo}
}

func (s *bookmarkService) Bookmark(ctx context.Context, userID, tuitID uuid.UUID) error {
	exists, err := s.tuitRepo.Exists(ctx, tuitID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("tuit: %w", apperror.ErrNotFound)
	}

	return s.repo.Create(ctx, userID, tuitID)
}

func (s *bookmarkService) Unbookmark(ctx context.Context, userID, tuitID uuid.UUID) (int64, error) {
	return s.repo.Delete(ctx, userID, tuitID)
}

func (s *bookmarkService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	return s.repo.FindTuitsByUser(ctx, userID)
}
