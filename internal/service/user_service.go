package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"

	"tuiter/internal/dto"
	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/internal/search"
	"tuiter/pkg/apperror"
)

type UserService interface {
	Create(ctx context.Context, input dto.CreateUserRequest) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, id uuid.UUID, patch dto.UpdateUserRequest) (*entity.User, error)
	// Delete is idempotent and reports how many rows went away. It does not
	// cascade: the user's tuits, reactions and edges stay behind.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type userService struct {
	repo      repository.UserRepository
	searchSvc search.SearchService
	sanitizer *bluemonday.Policy
}

func NewUserService(repo repository.UserRepository, searchSvc search.SearchService) UserService {
	return &userService{
		repo:      repo,
		searchSvc: searchSvc,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// cleanBiography strips markup the same way tuit text is cleaned before it
// is stored.
func (s *userService) cleanBiography(raw *string) *string {
	if raw == nil {
		return nil
	}
	clean := strings.TrimSpace(s.sanitizer.Sanitize(*raw))
	return &clean
}

func (s *userService) Create(ctx context.Context, input dto.CreateUserRequest) (*entity.User, error) {
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
		Biography:    s.cleanBiography(input.Biography),
		DateOfBirth:  input.DateOfBirth,
	}
	if input.AccountType != "" {
		user.AccountType = entity.AccountType(input.AccountType)
	}
	if input.MaritalStatus != "" {
		user.MaritalStatus = entity.MaritalStatus(input.MaritalStatus)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.index(user)
	return user, nil
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) FindAll(ctx context.Context) ([]*entity.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, patch dto.UpdateUserRequest) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if patch.FirstName != nil {
		user.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = patch.LastName
	}
	if patch.Biography != nil {
		user.Biography = s.cleanBiography(patch.Biography)
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = patch.DateOfBirth
	}
	if patch.AccountType != nil {
		user.AccountType = entity.AccountType(*patch.AccountType)
	}
	if patch.MaritalStatus != nil {
		user.MaritalStatus = entity.MaritalStatus(*patch.MaritalStatus)
	}
	if patch.Salary != nil {
		user.Salary = patch.Salary
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.index(user)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if affected > 0 && s.searchSvc != nil {
		if err := s.searchSvc.DeleteUser(id.String()); err != nil {
			log.Printf("failed to remove user %s from search index: %v", id, err)
		}
	}

	return affected, nil
}

func (s *userService) index(user *entity.User) {
	if s.searchSvc == nil {
		return
	}
	if err := s.searchSvc.IndexUser(user); err != nil {
		log.Printf("failed to index user %s: %v", user.ID, err)
	}
}
