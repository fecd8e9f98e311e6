package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tuiter/internal/entity"
)

type FollowRepository interface {
	// Create inserts the edge; a duplicate is a silent no-op.
	Create(ctx context.Context, followerID, followeeID uuid.UUID) error
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error)
	// FindFollowing lists the users followerID follows.
	FindFollowing(ctx context.Context, followerID uuid.UUID) ([]*entity.User, error)
	// FindFollowers lists the users following followeeID.
	FindFollowers(ctx context.Context, followeeID uuid.UUID) ([]*entity.User, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followeeID uuid.UUID) error {
	follow := &entity.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&entity.Follow{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) FindFollowing(ctx context.Context, followerID uuid.UUID) ([]*entity.User, error) {
	var users []*entity.User
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Find(&users).Error
	return users, err
}

func (r *followRepository) FindFollowers(ctx context.Context, followeeID uuid.UUID) ([]*entity.User, error) {
	var users []*entity.User
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", followeeID).
		Find(&users).Error
	return users, err
}
