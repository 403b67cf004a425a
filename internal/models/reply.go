package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResponseReply 回答下的回复，只追加，不编辑不删除
type ResponseReply struct {
	ID         string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	ResponseID string      `gorm:"type:varchar(36);not null;index:idx_reply_response_created" json:"responseId"`
	UserID     string      `gorm:"type:varchar(36);not null;index" json:"userId"`
	User       UserProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ReplyText  string      `gorm:"type:text;not null" json:"replyText"`
	CreatedAt  time.Time   `gorm:"index:idx_reply_response_created" json:"createdAt"`

	// 非数据库字段，输出时由 markdown 渲染填充
	ReplyHTML string `gorm:"-" json:"replyHtml"`
}

func (ResponseReply) TableName() string {
	return "response_replies"
}

func (r *ResponseReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
