package services

import (
	"context"

	"delipucash/internal/models"
	"delipucash/internal/store"
)

// AggregateView 回答本身加上实时计数和请求者的状态，JSON 中平铺输出
type AggregateView struct {
	models.Response
	LikeCount    int64 `json:"likeCount"`
	DislikeCount int64 `json:"dislikeCount"`
	ReplyCount   int64 `json:"replyCount"`
	IsLiked      bool  `json:"isLiked"`
	IsDisliked   bool  `json:"isDisliked"`
}

// AggregateService 只读，没有副作用
type AggregateService struct {
	store store.Store
}

func NewAggregateService(s store.Store) *AggregateService {
	return &AggregateService{store: s}
}

// GetAggregate 读取回答及计数；userID 为空时两个状态均为 false
func (s *AggregateService) GetAggregate(ctx context.Context, responseID, userID string) (*AggregateView, error) {
	const op = "Failed to fetch response data"

	response, err := requireResponse(ctx, s.store, responseID, op)
	if err != nil {
		return nil, err
	}

	view := &AggregateView{Response: *response}
	if view.LikeCount, view.DislikeCount, err = reactionCounts(ctx, s.store, responseID); err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}
	if view.ReplyCount, err = s.store.CountReplies(ctx, responseID); err != nil {
		return nil, &PersistenceError{Op: op, Err: err}
	}

	if userID != "" {
		if view.IsLiked, view.IsDisliked, err = reactionStatus(ctx, s.store, userID, responseID); err != nil {
			return nil, &PersistenceError{Op: op, Err: err}
		}
	}
	return view, nil
}
