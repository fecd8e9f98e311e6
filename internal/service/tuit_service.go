package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"tuiter/internal/dto"
	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/internal/search"
	"tuiter/pkg/apperror"
	"tuiter/pkg/storage"
)

type TuitService interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreateTuitRequest, image *dto.ImageFile) (*entity.Tuit, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tuit, error)
	FindAll(ctx context.Context) ([]*entity.Tuit, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error)
	Update(ctx context.Context, id uuid.UUID, patch dto.UpdateTuitRequest, image *dto.ImageFile) (*entity.Tuit, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type tuitService struct {
	repo         repository.TuitRepository
	userRepo     repository.UserRepository
	imageStorage storage.ImageStorage
	searchSvc    search.SearchService
	sanitizer    *bluemonday.Policy
}

func NewTuitService(repo repository.TuitRepository, userRepo repository.UserRepository, imageStorage storage.ImageStorage, searchSvc search.SearchService) TuitService {
	return &tuitService{
		repo:         repo,
		userRepo:     userRepo,
		imageStorage: imageStorage,
		searchSvc:    searchSvc,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *tuitService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreateTuitRequest, image *dto.ImageFile) (*entity.Tuit, error) {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("author: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	text := strings.TrimSpace(s.sanitizer.Sanitize(input.Tuit))
	if text == "" {
		return nil, fmt.Errorf("tuit text is empty: %w", apperror.ErrInvalidInput)
	}

	tuit := &entity.Tuit{
		Tuit:       text,
		PostedByID: author.ID,
		Youtube:    input.Youtube,
	}

	if image != nil {
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, "tuits", image.FileName)
		if err != nil {
			return nil, err
		}
		tuit.Image = &url
	}

	if err := s.repo.Create(ctx, tuit); err != nil {
		return nil, err
	}

	tuit.PostedBy = author
	s.index(tuit)
	return tuit, nil
}

func (s *tuitService) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tuit, error) {
	tuit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return tuit, nil
}

func (s *tuitService) FindAll(ctx context.Context) ([]*entity.Tuit, error) {
	return s.repo.FindAll(ctx)
}

func (s *tuitService) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *tuitService) Update(ctx context.Context, id uuid.UUID, patch dto.UpdateTuitRequest, image *dto.ImageFile) (*entity.Tuit, error) {
	tuit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if patch.Tuit != nil {
		text := strings.TrimSpace(s.sanitizer.Sanitize(*patch.Tuit))
		if text == "" {
			return nil, fmt.Errorf("tuit text is empty: %w", apperror.ErrInvalidInput)
		}
		tuit.Tuit = text
	}
	if patch.Youtube != nil {
		tuit.Youtube = patch.Youtube
	}

	if image != nil {
		url, err := s.imageStorage.UploadImage(ctx, image.Reader, "tuits", image.FileName)
		if err != nil {
			return nil, err
		}

		if tuit.Image != nil {
			if err := s.imageStorage.DeleteImage(ctx, *tuit.Image); err != nil {
				log.Printf("failed to delete replaced image for tuit %s: %v", tuit.ID, err)
			}
		}
		tuit.Image = &url
	}

	if err := s.repo.Update(ctx, tuit); err != nil {
		return nil, err
	}

	s.index(tuit)
	return tuit, nil
}

func (s *tuitService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if affected > 0 && s.searchSvc != nil {
		if err := s.searchSvc.DeleteTuit(id.String()); err != nil {
			log.Printf("failed to remove tuit %s from search index: %v", id, err)
		}
	}

	return affected, nil
}

func (s *tuitService) index(tuit *entity.Tuit) {
	if s.searchSvc == nil {
		return
	}
	if err := s.searchSvc.IndexTuit(tuit); err != nil {
		log.Printf("failed to index tuit %s: %v", tuit.ID, err)
	}
}
