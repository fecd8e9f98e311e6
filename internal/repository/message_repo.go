package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tuiter/internal/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindConversation lists every message exchanged between the two users,
	// oldest first.
	FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error)
	FindSent(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
	FindReceived(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := r.db.WithContext(ctx).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)",
			userA, userB, userB, userA).
		Order("sent_on ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) FindSent(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := r.db.WithContext(ctx).
		Where("from_id = ?", userID).
		Order("sent_on DESC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) FindReceived(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := r.db.WithContext(ctx).
		Where("to_id = ?", userID).
		Order("sent_on DESC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Message{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
