package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tuiter/internal/entity"
	"tuiter/internal/repository"
	"tuiter/pkg/apperror"
)

// DMChannel is the Redis pub/sub channel carrying a user's incoming
// direct messages.
func DMChannel(userID uuid.UUID) string {
	return fmt.Sprintf("dm:%s", userID.String())
}

type MessageService interface {
	Send(ctx context.Context, fromID, toID uuid.UUID, body string) (*entity.Message, error)
	Conversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error)
	Sent(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
	Received(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type messageService struct {
	repo        repository.MessageRepository
	userRepo    repository.UserRepository
	redisClient *redis.Client
}

func NewMessageService(repo repository.MessageRepository, userRepo repository.UserRepository, redisClient *redis.Client) MessageService {
	return &messageService{
		repo:        repo,
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func (s *messageService) Send(ctx context.Context, fromID, toID uuid.UUID, body string) (*entity.Message, error) {
	exists, err := s.userRepo.Exists(ctx, toID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("recipient: %w", apperror.ErrNotFound)
	}

	message := &entity.Message{
		FromID:  fromID,
		ToID:    toID,
		Message: body,
	}

	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Push to the recipient's live channel; delivery is best-effort, the
	// message is already persisted.
	if s.redisClient != nil {
		payload, err := json.Marshal(message)
		if err == nil {
			if err := s.redisClient.Publish(ctx, DMChannel(toID), payload).Err(); err != nil {
				log.Printf("failed to publish message %s: %v", message.ID, err)
			}
		}
	}

	return message, nil
}

func (s *messageService) Conversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error) {
	return s.repo.FindConversation(ctx, userA, userB)
}

func (s *messageService) Sent(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	return s.repo.FindSent(ctx, userID)
}

func (s *messageService) Received(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	return s.repo.FindReceived(ctx, userID)
}

func (s *messageService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.repo.Delete(ctx, id)
}
