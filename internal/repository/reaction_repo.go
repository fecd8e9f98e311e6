package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tuiter/internal/entity"
)

// ToggleOutcome reports the state change a toggle produced, so callers can
// patch cached counts without re-reading the database.
type ToggleOutcome struct {
	// Previous is the kind the pair held before the toggle, empty for neutral.
	Previous entity.ReactionKind
	// Current is the kind the pair holds now, empty for neutral.
	Current entity.ReactionKind
	// Stats is the tuit's reaction summary after the toggle.
	Stats entity.Stats
}

type ReactionRepository interface {
	// Toggle flips the (user, tuit) reaction state for the given kind and
	// updates the tuit's denormalized stats in the same transaction.
	Toggle(ctx context.Context, userID, tuitID uuid.UUID, kind entity.ReactionKind) (*ToggleOutcome, error)
	FindUsersByTuit(ctx context.Context, tuitID uuid.UUID, kind entity.ReactionKind) ([]*entity.User, error)
	FindTuitsByUser(ctx context.Context, userID uuid.UUID, kind entity.ReactionKind) ([]*entity.Tuit, error)
	CountByTuit(ctx context.Context, tuitID uuid.UUID, kind entity.ReactionKind) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Toggle(ctx context.Context, userID, tuitID uuid.UUID, kind entity.ReactionKind) (*ToggleOutcome, error) {
	outcome := &ToggleOutcome{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The tuit row is locked for the duration of the toggle so two
		// concurrent toggles on the same tuit serialize instead of racing.
		var tuit entity.Tuit
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", tuitID).
			First(&tuit).Error; err != nil {
			return err
		}

		// Find with a slice to avoid GORM's record-not-found log noise
		var existing []entity.Reaction
		if err := tx.
			Where("user_id = ? AND tuit_id = ?", userID, tuitID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}

		var current entity.ReactionKind
		if len(existing) > 0 {
			current = existing[0].Kind
		}

		transition := entity.NextReaction(current, kind)
		outcome.Previous = current
		outcome.Current = transition.Next

		switch {
		case transition.Remove:
			if err := tx.Delete(&existing[0]).Error; err != nil {
				return err
			}
		case len(existing) > 0:
			existing[0].Kind = transition.Next
			if err := tx.Save(&existing[0]).Error; err != nil {
				return err
			}
		default:
			reaction := &entity.Reaction{
				UserID: userID,
				TuitID: tuitID,
				Kind:   transition.Next,
			}
			if err := tx.Create(reaction).Error; err != nil {
				return err
			}
		}

		// Stats move with the reaction rows, floored at zero
		if err := tx.Model(&entity.Tuit{}).
			Where("id = ?", tuitID).
			UpdateColumns(map[string]interface{}{
				"stats_likes":    gorm.Expr("GREATEST(stats_likes + ?, 0)", transition.LikesDelta),
				"stats_dislikes": gorm.Expr("GREATEST(stats_dislikes + ?, 0)", transition.DislikesDelta),
			}).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Tuit{}).
			Select("stats_replies AS replies, stats_retuits AS retuits, stats_likes AS likes, stats_dislikes AS dislikes").
			Where("id = ?", tuitID).
			Scan(&outcome.Stats).Error
	})
	if err != nil {
		return nil, err
	}

	return outcome, nil
}

func (r *reactionRepository) FindUsersByTuit(ctx context.Context, tuitID uuid.UUID, kind entity.ReactionKind) ([]*entity.User, error) {
	var users []*entity.User
	err := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN reactions ON reactions.user_id = users.id").
		Where("reactions.tuit_id = ? AND reactions.kind = ?", tuitID, kind).
		Find(&users).Error
	return users, err
}

func (r *reactionRepository) FindTuitsByUser(ctx context.Context, userID uuid.UUID, kind entity.ReactionKind) ([]*entity.Tuit, error) {
	var tuits []*entity.Tuit
	err := r.db.WithContext(ctx).
		Model(&entity.Tuit{}).
		Preload("PostedBy").
		Joins("JOIN reactions ON reactions.tuit_id = tuits.id").
		Where("reactions.user_id = ? AND reactions.kind = ?", userID, kind).
		Find(&tuits).Error
	return tuits, err
}

func (r *reactionRepository) CountByTuit(ctx context.Context, tuitID uuid.UUID, kind entity.ReactionKind) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Reaction{}).
		Where("tuit_id = ? AND kind = ?", tuitID, kind).
		Count(&count).Error
	return count, err
}
