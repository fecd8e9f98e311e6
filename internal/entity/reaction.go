package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Reaction records that a user liked or disliked a tuit. A (user, tuit)
// pair holds at most one row regardless of kind; the unique index makes a
// racing duplicate insert fail instead of double-counting.
type Reaction struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_user_tuit,priority:1" json:"user_id"`
	User      *User        `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	TuitID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_reactions_user_tuit,priority:2;index:idx_reactions_tuit_kind,priority:1" json:"tuit_id"`
	Tuit      *Tuit        `gorm:"constraint:OnDelete:CASCADE" json:"tuit,omitempty"`
	Kind      ReactionKind `gorm:"size:10;not null;index:idx_reactions_tuit_kind,priority:2" json:"kind"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

// ReactionTransition describes what a toggle has to do to move a
// (user, tuit) pair to its next state.
type ReactionTransition struct {
	// Remove is true when the existing reaction row must go away.
	Remove bool
	// Next is the kind the pair ends up with, empty when it ends neutral.
	Next ReactionKind
	// LikesDelta and DislikesDelta are applied to the tuit's stats in the
	// same transaction as the row change.
	LikesDelta    int64
	DislikesDelta int64
}

// NextReaction computes the toggle transition table. current is the kind the
// pair currently holds, empty for neutral; requested is the kind being
// toggled.
//
//	like    + toggle like    -> neutral
//	dislike + toggle like    -> like
//	neutral + toggle like    -> like
//
// and symmetrically for dislike.
func NextReaction(current, requested ReactionKind) ReactionTransition {
	if current == requested {
		// Toggle off
		t := ReactionTransition{Remove: true}
		if requested == ReactionLike {
			t.LikesDelta = -1
		} else {
			t.DislikesDelta = -1
		}
		return t
	}

	t := ReactionTransition{Next: requested}
	if requested == ReactionLike {
		t.LikesDelta = 1
	} else {
		t.DislikesDelta = 1
	}

	// Switching sides also retracts the opposite reaction
	switch current {
	case ReactionLike:
		t.LikesDelta--
	case ReactionDislike:
		t.DislikesDelta--
	}

	return t
}
