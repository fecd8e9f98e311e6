package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a directed private message between two users.
type Message struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FromID  uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_from" json:"from_id"`
	From    *User     `gorm:"foreignKey:FromID;constraint:OnDelete:CASCADE" json:"from,omitempty"`
	ToID    uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_to" json:"to_id"`
	To      *User     `gorm:"foreignKey:ToID;constraint:OnDelete:CASCADE" json:"to,omitempty"`
	Message string    `gorm:"type:text;not null" json:"message"`
	SentOn  time.Time `gorm:"autoCreateTime" json:"sent_on"`
}

func (m *Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}
