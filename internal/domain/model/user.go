package model

import (
	"time"
)

// User is a known account. BusinessArea is the legacy primary area.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username     string    `gorm:"size:255" json:"username"`
	BusinessArea string    `gorm:"size:100" json:"business_area"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserBusinessArea grants a user access to one business area.
type UserBusinessArea struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_user_business_area" json:"user_id"`
	BusinessArea string    `gorm:"size:100;not null;uniqueIndex:idx_user_business_area" json:"business_area"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UserBusinessArea) TableName() string {
	return "user_business_areas"
}

type BusinessArea struct {
	Name        string    `gorm:"primaryKey;size:100" json:"name" yaml:"name"`
	Description string    `gorm:"type:text" json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

func (BusinessArea) TableName() string {
	return "business_areas"
}
