package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stats is the denormalized reaction summary carried on every tuit.
// Likes and dislikes are written in the same transaction as the reaction
// records themselves, so they match a live count at every commit boundary.
type Stats struct {
	Replies  int64 `gorm:"default:0" json:"replies"`
	Retuits  int64 `gorm:"default:0" json:"retuits"`
	Likes    int64 `gorm:"default:0" json:"likes"`
	Dislikes int64 `gorm:"default:0" json:"dislikes"`
}

type Tuit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Tuit         string    `gorm:"type:text;not null" json:"tuit"`
	PostedByID   uuid.UUID `gorm:"type:uuid;not null;index" json:"posted_by_id"`
	PostedBy     *User     `gorm:"foreignKey:PostedByID" json:"posted_by,omitempty"`
	PostedOn     time.Time `gorm:"autoCreateTime" json:"posted_on"`
	Image        *string   `gorm:"type:text" json:"image,omitempty"`
	Youtube      *string   `gorm:"type:text" json:"youtube,omitempty"`
	AvatarLogo   *string   `gorm:"type:text" json:"avatar_logo,omitempty"`
	ImageOverlay *string   `gorm:"type:text" json:"image_overlay,omitempty"`
	Stats        Stats     `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
}

func (t *Tuit) TableName() string {
	return "tuits"
}

func (t *Tuit) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}
