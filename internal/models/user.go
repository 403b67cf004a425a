package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppUser 移动端用户，本模块只读取，不修改
type AppUser struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"size:255;index" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (AppUser) TableName() string {
	return "app_users"
}

func (u *AppUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// Profile 返回对外公开的最小作者信息
func (u *AppUser) Profile() UserProfile {
	return UserProfile{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// UserProfile 作者快照 (id, firstName, lastName)，随回复和回答一起返回
type UserProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (UserProfile) TableName() string {
	return "app_users"
}
