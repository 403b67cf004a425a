package services

import (
	"context"

	"delipucash/internal/models"
	"delipucash/internal/store"
)

// requireResponse 校验回答存在，所有写操作之前调用
func requireResponse(ctx context.Context, s store.Store, responseID, op string) (*models.Response, error) {
	response, err := s.FindResponse(ctx, responseID)
	if err != nil {
		return nil, lookupErr(EntityResponse, op, err)
	}
	return response, nil
}

func requireUser(ctx context.Context, s store.Store, userID, op string) (*models.AppUser, error) {
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, lookupErr(EntityUser, op, err)
	}
	return user, nil
}

// reactionStatus 通过行是否存在来判断用户当前的赞/踩状态
func reactionStatus(ctx context.Context, s store.Store, userID, responseID string) (isLiked, isDisliked bool, err error) {
	if isLiked, err = s.HasReaction(ctx, models.ReactionLike, userID, responseID); err != nil {
		return false, false, err
	}
	if isDisliked, err = s.HasReaction(ctx, models.ReactionDislike, userID, responseID); err != nil {
		return false, false, err
	}
	return isLiked, isDisliked, nil
}

func reactionCounts(ctx context.Context, s store.Store, responseID string) (likes, dislikes int64, err error) {
	if likes, err = s.CountReactions(ctx, models.ReactionLike, responseID); err != nil {
		return 0, 0, err
	}
	if dislikes, err = s.CountReactions(ctx, models.ReactionDislike, responseID); err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
