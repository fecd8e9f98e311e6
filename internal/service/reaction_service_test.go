package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/pkg/apperror"
)

func TestReactionServiceToggleSequences(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	tuitID := uuid.New()

	t.Run("toggling like twice returns to neutral", func(t *testing.T) {
		repo := newFakeReactionRepo()
		svc := NewReactionService(repo, nil)

		first, err := svc.ToggleLike(context.Background(), alice, tuitID)
		require.NoError(t, err)
		assert.Equal(t, entity.ReactionLike, first.Current)
		assert.Equal(t, int64(1), first.Stats.Likes)

		second, err := svc.ToggleLike(context.Background(), alice, tuitID)
		require.NoError(t, err)
		assert.Equal(t, entity.ReactionLike, second.Previous)
		assert.Empty(t, second.Current)
		assert.Zero(t, second.Stats.Likes)
		assert.Zero(t, second.Stats.Dislikes)
	})

	t.Run("disliking a liked tuit switches sides", func(t *testing.T) {
		repo := newFakeReactionRepo()
		svc := NewReactionService(repo, nil)

		_, err := svc.ToggleLike(context.Background(), alice, tuitID)
		require.NoError(t, err)

		outcome, err := svc.ToggleDislike(context.Background(), alice, tuitID)
		require.NoError(t, err)
		assert.Equal(t, entity.ReactionLike, outcome.Previous)
		assert.Equal(t, entity.ReactionDislike, outcome.Current)
		assert.Zero(t, outcome.Stats.Likes)
		assert.Equal(t, int64(1), outcome.Stats.Dislikes)

		likes, err := svc.CountLikes(context.Background(), tuitID)
		require.NoError(t, err)
		assert.Zero(t, likes)

		dislikes, err := svc.CountDislikes(context.Background(), tuitID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), dislikes)
	})

	t.Run("reactions from different users accumulate", func(t *testing.T) {
		repo := newFakeReactionRepo()
		svc := NewReactionService(repo, nil)

		_, err := svc.ToggleLike(context.Background(), alice, tuitID)
		require.NoError(t, err)
		outcome, err := svc.ToggleLike(context.Background(), bob, tuitID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), outcome.Stats.Likes)

		users, err := svc.UsersWhoLiked(context.Background(), tuitID)
		require.NoError(t, err)
		assert.Len(t, users, 2)

		liked, err := svc.TuitsLikedBy(context.Background(), alice)
		require.NoError(t, err)
		require.Len(t, liked, 1)
		assert.Equal(t, tuitID, liked[0].ID)
	})
}

// toggleErrRepo fails every toggle with the given error.
type toggleErrRepo struct {
	*fakeReactionRepo
	err error
}

func (r *toggleErrRepo) Toggle(_ context.Context, _, _ uuid.UUID, _ entity.ReactionKind) (*repository.ToggleOutcome, error) {
	return nil, r.err
}

func TestReactionServiceToggleMissingTuit(t *testing.T) {
	repo := &toggleErrRepo{fakeReactionRepo: newFakeReactionRepo(), err: gorm.ErrRecordNotFound}
	svc := NewReactionService(repo, nil)

	_, err := svc.ToggleLike(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReactionServiceCountFallsBackToRepo(t *testing.T) {
	// Without Redis the count comes straight from the repository.
	repo := newFakeReactionRepo()
	svc := NewReactionService(repo, nil)

	tuitID := uuid.New()
	_, err := svc.ToggleDislike(context.Background(), uuid.New(), tuitID)
	require.NoError(t, err)

	count, err := svc.CountDislikes(context.Background(), tuitID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.CountLikes(context.Background(), tuitID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
