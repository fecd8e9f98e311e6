package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/pkg/apperror"
)

// reactionCountTTL bounds how long an idle tuit keeps its cached counts.
const reactionCountTTL = 7 * 24 * time.Hour

type ReactionService interface {
	ToggleLike(ctx context.Context, userID, tuitID uuid.UUID) (*repository.ToggleOutcome, error)
	ToggleDislike(ctx context.Context, userID, tuitID uuid.UUID) (*repository.ToggleOutcome, error)
	UsersWhoLiked(ctx context.Context, tuitID uuid.UUID) ([]*entity.User, error)
	UsersWhoDisliked(ctx context.Context, tuitID uuid.UUID) ([]*entity.User, error)
	TuitsLikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error)
	TuitsDislikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error)
	CountLikes(ctx context.Context, tuitID uuid.UUID) (int64, error)
	CountDislikes(ctx context.Context, tuitID uuid.UUID) (int64, error)
}

type reactionService struct {
	repo        repository.ReactionRepository
	redisClient *redis.Client
}

// NewReactionService needs no tuit repository: Toggle locks and reads the
// tuit row itself, so a missing tuit already surfaces from the transaction.
func NewReactionService(repo repository.ReactionRepository, redisClient *redis.Client) ReactionService {
	return &reactionService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func countsKey(tuitID uuid.UUID) string {
	return fmt.Sprintf("counts:tuit:%s", tuitID.String())
}

func (s *reactionService) ToggleLike(ctx context.Context, userID, tuitID uuid.UUID) (*repository.ToggleOutcome, error) {
	return s.toggle(ctx, userID, tuitID, entity.ReactionLike)
}

func (s *reactionService) ToggleDislike(ctx context.Context, userID, tuitID uuid.UUID) (*repository.ToggleOutcome, error) {
	return s.toggle(ctx, userID, tuitID, entity.ReactionDislike)
}

func (s *reactionService) toggle(ctx context.Context, userID, tuitID uuid.UUID, kind entity.ReactionKind) (*repository.ToggleOutcome, error) {
	outcome, err := s.repo.Toggle(ctx, userID, tuitID, kind)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("tuit: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	// Patch the cached counts from the committed transition; the DB is
	// already consistent, so a cache failure is only logged.
	if s.redisClient != nil {
		key := countsKey(tuitID)
		pipe := s.redisClient.Pipeline()
		if outcome.Previous != "" {
			pipe.HIncrBy(ctx, key, string(outcome.Previous), -1)
		}
		if outcome.Current != "" {
			pipe.HIncrBy(ctx, key, string(outcome.Current), 1)
		}
		pipe.Expire(ctx, key, reactionCountTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("redis reaction count update failed for tuit %s: %v", tuitID, err)
		}
	}

	return outcome, nil
}

func (s *reactionService) UsersWhoLiked(ctx context.Context, tuitID uuid.UUID) ([]*entity.User, error) {
	return s.repo.FindUsersByTuit(ctx, tuitID, entity.ReactionLike)
}

func (s *reactionService) UsersWhoDisliked(ctx context.Context, tuitID uuid.UUID) ([]*entity.User, error) {
	return s.repo.FindUsersByTuit(ctx, tuitID, entity.ReactionDislike)
}

func (s *reactionService) TuitsLikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	return s.repo.FindTuitsByUser(ctx, userID, entity.ReactionLike)
}

func (s *reactionService) TuitsDislikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	return s.repo.FindTuitsByUser(ctx, userID, entity.ReactionDislike)
}

func (s *reactionService) CountLikes(ctx context.Context, tuitID uuid.UUID) (int64, error) {
	return s.count(ctx, tuitID, entity.ReactionLike)
}

func (s *reactionService) CountDislikes(ctx context.Context, tuitID uuid.UUID) (int64, error) {
	return s.count(ctx, tuitID, entity.ReactionDislike)
}

// count serves from the Redis hash when warm and rebuilds it from the
// reactions table on a miss.
func (s *reactionService) count(ctx context.Context, tuitID uuid.UUID, kind entity.ReactionKind) (int64, error) {
	if s.redisClient != nil {
		val, err := s.redisClient.HGet(ctx, countsKey(tuitID), string(kind)).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(val, 10, 64); parseErr == nil && count >= 0 {
				return count, nil
			}
		}
	}

	count, err := s.repo.CountByTuit(ctx, tuitID, kind)
	if err != nil {
		return 0, err
	}

	if s.redisClient != nil {
		key := countsKey(tuitID)
		pipe := s.redisClient.Pipeline()
		pipe.HSet(ctx, key, string(kind), count)
		pipe.Expire(ctx, key, reactionCountTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("redis reaction count rebuild failed for tuit %s: %v", tuitID, err)
		}
	}

	return count, nil
}
