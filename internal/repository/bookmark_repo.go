package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tuiter/internal/entity"
)

type BookmarkRepository interface {
	// Create saves the bookmark; bookmarking the same tuit twice is a no-op.
	Create(ctx context.Context, userID, tuitID uuid.UUID) error
	Delete(ctx context.Context, userID, tuitID uuid.UUID) (int64, error)
	// FindTuitsByUser lists the tuits a user has bookmarked.
	FindTuitsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, userID, tuitID uuid.UUID) error {
	bookmark := &entity.Bookmark{
		UserID: userID,
		TuitID: tuitID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(bookmark).Error
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, tuitID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND tuit_id = ?", userID, tuitID).
		Delete(&entity.Bookmark{})
	return res.RowsAffected, res.Error
}

func (r *bookmarkRepository) FindTuitsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	var tuits []*entity.Tuit
	err := r.db.WithContext(ctx).
		Model(&entity.Tuit{}).
		Preload("PostedBy").
		Joins("JOIN bookmarks ON bookmarks.tuit_id = tuits.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Find(&tuits).Error
	return tuits, err
}
