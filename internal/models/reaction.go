package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionKind 区分点赞和点踩两张表
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Opposite 返回互斥的另一种反应
func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// ResponseLike 存在即表示该用户当前赞了该回答，(user_id, response_id) 唯一
type ResponseLike struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_like_user_response" json:"userId"`
	ResponseID string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_like_user_response" json:"responseId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ResponseLike) TableName() string {
	return "response_likes"
}

func (l *ResponseLike) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

// ResponseDislike 与 ResponseLike 结构相同，同一用户同一回答二者最多存在其一
type ResponseDislike struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_dislike_user_response" json:"userId"`
	ResponseID string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_dislike_user_response" json:"responseId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ResponseDislike) TableName() string {
	return "response_dislikes"
}

func (d *ResponseDislike) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
