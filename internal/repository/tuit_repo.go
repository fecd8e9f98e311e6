package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tuiter/internal/entity"
)

type TuitRepository interface {
	Create(ctx context.Context, tuit *entity.Tuit) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tuit, error)
	FindAll(ctx context.Context) ([]*entity.Tuit, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error)
	Update(ctx context.Context, tuit *entity.Tuit) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type tuitRepository struct {
	db *gorm.DB
}

func NewTuitRepository(db *gorm.DB) TuitRepository {
	return &tuitRepository{db: db}
}

func (r *tuitRepository) Create(ctx context.Context, tuit *entity.Tuit) error {
	return r.db.WithContext(ctx).Create(tuit).Error
}

func (r *tuitRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tuit, error) {
	var tuit entity.Tuit
	if err := r.db.WithContext(ctx).
		Preload("PostedBy").
		Where("id = ?", id).
		First(&tuit).Error; err != nil {
		return nil, err
	}

	return &tuit, nil
}

func (r *tuitRepository) FindAll(ctx context.Context) ([]*entity.Tuit, error) {
	var tuits []*entity.Tuit
	if err := r.db.WithContext(ctx).
		Preload("PostedBy").
		Order("posted_on DESC").
		Find(&tuits).Error; err != nil {
		return nil, err
	}

	return tuits, nil
}

func (r *tuitRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tuit, error) {
	var tuits []*entity.Tuit
	if err := r.db.WithContext(ctx).
		Preload("PostedBy").
		Where("posted_by_id = ?", userID).
		Order("posted_on DESC").
		Find(&tuits).Error; err != nil {
		return nil, err
	}

	return tuits, nil
}

func (r *tuitRepository) Update(ctx context.Context, tuit *entity.Tuit) error {
	return r.db.WithContext(ctx).Save(tuit).Error
}

func (r *tuitRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Tuit{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *tuitRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Tuit{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
