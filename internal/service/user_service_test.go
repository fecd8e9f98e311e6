package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tuiter/internal/dto"
	"tuiter/internal/entity"
	"tuiter/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func TestUserServiceCreate(t *testing.T) {
	t.Run("hashes the password and indexes the user", func(t *testing.T) {
		repo := noopUserRepo()
		var created *entity.User
		repo.createFn = func(_ context.Context, user *entity.User) error {
			user.ID = uuid.New()
			created = user
			return nil
		}

		searchSvc := &searchStub{}
		svc := NewUserService(repo, searchSvc)

		user, err := svc.Create(context.Background(), dto.CreateUserRequest{
			Username:    "bob",
			Email:       "bob@example.com",
			Password:    "hunter22",
			AccountType: "ACADEMIC",
		})
		require.NoError(t, err)

		assert.Equal(t, created, user)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
		assert.Equal(t, entity.AccountAcademic, user.AccountType)
		assert.Equal(t, []string{"bob"}, searchSvc.indexedUsers)
	})

	t.Run("strips markup from the biography", func(t *testing.T) {
		repo := noopUserRepo()
		svc := NewUserService(repo, nil)

		user, err := svc.Create(context.Background(), dto.CreateUserRequest{
			Username:  "bob",
			Email:     "bob@example.com",
			Password:  "hunter22",
			Biography: strPtr(`<script>alert("xss")</script>hello`),
		})
		require.NoError(t, err)
		require.NotNil(t, user.Biography)
		assert.NotContains(t, *user.Biography, "<script>")
		assert.Contains(t, *user.Biography, "hello")
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		repo := noopUserRepo()
		repo.findByUsernameFn = func(_ context.Context, _ string) (*entity.User, error) {
			return &entity.User{Username: "bob"}, nil
		}

		svc := NewUserService(repo, nil)

		_, err := svc.Create(context.Background(), dto.CreateUserRequest{
			Username: "bob",
			Email:    "bob@example.com",
			Password: "hunter22",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		repo := noopUserRepo()
		repo.findByEmailFn = func(_ context.Context, _ string) (*entity.User, error) {
			return &entity.User{Email: "bob@example.com"}, nil
		}
		repo.createFn = func(_ context.Context, _ *entity.User) error {
			t.Fatal("Create must not be called on an email conflict")
			return nil
		}

		svc := NewUserService(repo, nil)

		_, err := svc.Create(context.Background(), dto.CreateUserRequest{
			Username: "newname",
			Email:    "bob@example.com",
			Password: "hunter22",
		})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	bio := "old bio"
	existing := func() *entity.User {
		return &entity.User{
			ID:        uuid.New(),
			Username:  "bob",
			Email:     "bob@example.com",
			FirstName: strPtr("Bob"),
			Biography: &bio,
		}
	}

	t.Run("applies only the fields present in the patch", func(t *testing.T) {
		user := existing()
		repo := noopUserRepo()
		repo.findByIDFn = func(_ context.Context, _ uuid.UUID) (*entity.User, error) {
			return user, nil
		}
		var saved *entity.User
		repo.updateFn = func(_ context.Context, u *entity.User) error {
			saved = u
			return nil
		}

		svc := NewUserService(repo, nil)

		updated, err := svc.Update(context.Background(), user.ID, dto.UpdateUserRequest{
			Biography: strPtr("new bio"),
		})
		require.NoError(t, err)

		assert.Equal(t, saved, updated)
		assert.Equal(t, "new bio", *updated.Biography)
		// Untouched fields survive the patch.
		assert.Equal(t, "bob@example.com", updated.Email)
		assert.Equal(t, "Bob", *updated.FirstName)
	})

	t.Run("strips markup from a patched biography", func(t *testing.T) {
		user := existing()
		repo := noopUserRepo()
		repo.findByIDFn = func(_ context.Context, _ uuid.UUID) (*entity.User, error) {
			return user, nil
		}
		var saved *entity.User
		repo.updateFn = func(_ context.Context, u *entity.User) error {
			saved = u
			return nil
		}

		svc := NewUserService(repo, nil)

		_, err := svc.Update(context.Background(), user.ID, dto.UpdateUserRequest{
			Biography: strPtr(`<script>alert("xss")</script>hello`),
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		require.NotNil(t, saved.Biography)
		assert.NotContains(t, *saved.Biography, "<script>")
		assert.Contains(t, *saved.Biography, "hello")
	})

	t.Run("re-hashes a changed password", func(t *testing.T) {
		user := existing()
		repo := noopUserRepo()
		repo.findByIDFn = func(_ context.Context, _ uuid.UUID) (*entity.User, error) {
			return user, nil
		}

		svc := NewUserService(repo, nil)

		updated, err := svc.Update(context.Background(), user.ID, dto.UpdateUserRequest{
			Password: strPtr("s3cret99"),
		})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("s3cret99")))
	})

	t.Run("reports a missing user", func(t *testing.T) {
		repo := noopUserRepo()
		repo.findByIDFn = func(_ context.Context, _ uuid.UUID) (*entity.User, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewUserService(repo, nil)

		_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateUserRequest{})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestUserServiceDelete(t *testing.T) {
	t.Run("removes the search document when a row went away", func(t *testing.T) {
		id := uuid.New()
		repo := noopUserRepo()
		searchSvc := &searchStub{}
		svc := NewUserService(repo, searchSvc)

		affected, err := svc.Delete(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.Equal(t, []string{id.String()}, searchSvc.deletedUsers)
	})

	t.Run("is a no-op for an already deleted user", func(t *testing.T) {
		repo := noopUserRepo()
		repo.deleteFn = func(_ context.Context, _ uuid.UUID) (int64, error) {
			return 0, nil
		}
		searchSvc := &searchStub{}
		svc := NewUserService(repo, searchSvc)

		affected, err := svc.Delete(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Zero(t, affected)
		assert.Empty(t, searchSvc.deletedUsers)
	})
}

func TestUserServiceFindByUsername(t *testing.T) {
	repo := noopUserRepo()
	svc := NewUserService(repo, nil)

	_, err := svc.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
