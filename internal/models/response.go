package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Response 用户对问题的回答。由其他子系统创建，这里只读。
type Response struct {
	ID           string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID       string      `gorm:"type:varchar(36);not null;index" json:"userId"`
	User         UserProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	QuestionID   string      `gorm:"type:varchar(36);index" json:"questionId"`
	ResponseText string      `gorm:"type:text;not null" json:"responseText"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (Response) TableName() string {
	return "responses"
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
