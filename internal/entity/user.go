package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountType string

const (
	AccountPersonal     AccountType = "PERSONAL"
	AccountAcademic     AccountType = "ACADEMIC"
	AccountProfessional AccountType = "PROFESSIONAL"
)

type MaritalStatus string

const (
	MaritalSingle  MaritalStatus = "SINGLE"
	MaritalMarried MaritalStatus = "MARRIED"
	MaritalWidowed MaritalStatus = "WIDOWED"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type User struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Username      string        `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email         string        `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash  string        `gorm:"size:255;not null" json:"-"`
	FirstName     *string       `gorm:"size:100" json:"first_name,omitempty"`
	LastName      *string       `gorm:"size:100" json:"last_name,omitempty"`
	ProfilePhoto  *string       `gorm:"type:text" json:"profile_photo,omitempty"`
	HeaderImage   *string       `gorm:"type:text" json:"header_image,omitempty"`
	Biography     *string       `gorm:"type:text" json:"biography,omitempty"`
	DateOfBirth   *time.Time    `json:"date_of_birth,omitempty"`
	AccountType   AccountType   `gorm:"size:20;default:PERSONAL" json:"account_type"`
	MaritalStatus MaritalStatus `gorm:"size:20;default:SINGLE" json:"marital_status"`
	Location      Location      `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Salary        *float64      `json:"salary,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}
